package cyclecount

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidCount is returned when the counted quantity is negative. A
// physical count is ground truth, but it still has to be a real count.
var ErrInvalidCount = errors.New("counted quantity cannot be negative")

// CycleCount is a physical stock audit. SystemQuantity is the ledger value
// snapshotted under the same product lock as the adjustment, so the
// discrepancy can never be skewed by a concurrent movement. Counts are
// immutable once recorded.
type CycleCount struct {
	ID              uuid.UUID
	ProductID       uuid.UUID
	CountedQuantity int
	SystemQuantity  int
	Discrepancy     int
	Reason          string
	Adjusted        bool
	CountedBy       string
	CountedAt       time.Time
}
