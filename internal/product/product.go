package product

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when no product matches the given id or SKU.
	ErrNotFound = errors.New("product not found")

	// ErrDuplicateSKU is returned when a create would violate SKU uniqueness.
	ErrDuplicateSKU = errors.New("sku already exists")

	// ErrInvalid is returned for malformed product input; wrapped errors
	// carry the specific field problem.
	ErrInvalid = errors.New("invalid product")
)

const defaultLowStockThreshold = 10

// Product is a stockable warehouse item. Quantity is the authoritative
// on-hand count and is only ever changed through movement reconciliation
// or a cycle-count overwrite, never by direct edits.
type Product struct {
	ID                uuid.UUID
	SKU               string
	Name              string
	Category          string
	Tags              string
	Description       string
	Quantity          int
	LowStockThreshold int
	Archived          bool
	CreatedAt         time.Time
	UpdatedAt         *time.Time
}

// LowStock reports whether the product is at or below its alert threshold.
func (p *Product) LowStock() bool {
	return p.Quantity <= p.LowStockThreshold
}
