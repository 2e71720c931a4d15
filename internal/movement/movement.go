package movement

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Kind tells which direction a movement drives stock.
type Kind string

const (
	KindInbound  Kind = "inbound"
	KindOutbound Kind = "outbound"
)

// Valid reports whether k is a known movement kind.
func (k Kind) Valid() bool {
	return k == KindInbound || k == KindOutbound
}

// Effect returns the signed ledger delta a movement of this kind and
// quantity applies to its product: positive for inbound, negative for
// outbound.
func (k Kind) Effect(quantity int) int {
	if k == KindOutbound {
		return -quantity
	}

	return quantity
}

var (
	// ErrNotFound is returned when no movement matches the given id.
	ErrNotFound = errors.New("movement not found")

	// ErrInsufficientStock is returned when applying an outbound effect
	// (or reversing an inbound one) would drive a product's quantity
	// below zero.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInvalidQuantity is returned for zero or negative quantities.
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrInvalidKind is returned for an unknown movement kind.
	ErrInvalidKind = errors.New("invalid movement kind")
)

// Movement records a single inbound receipt or outbound dispatch. The row
// keeps kind, product and quantity so its ledger effect can be reversed
// exactly, without recomputing anything from current state.
type Movement struct {
	ID         uuid.UUID
	ProductID  uuid.UUID
	Kind       Kind
	Quantity   int
	Party      string // supplier for inbound, customer for outbound
	Reference  string // invoice reference / sales-order reference
	OccurredOn time.Time
	CreatedAt  time.Time
}

// Effect returns the signed delta this movement applied to its product.
func (m *Movement) Effect() int {
	return m.Kind.Effect(m.Quantity)
}
