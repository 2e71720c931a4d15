package audit

import (
	"time"

	"github.com/google/uuid"
)

// Action classifies what happened to a product.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Entry is a single append-only audit record. Entries are written inside
// the same database transaction as the change they describe and are never
// updated or deleted afterwards (removing a product removes its trail as
// part of the explicit cascade).
type Entry struct {
	ID          uuid.UUID
	ProductID   uuid.UUID
	ProductName string // joined for display, not stored on the entry
	Action      Action
	PerformedBy string
	Timestamp   time.Time
}
