package cyclecount

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rgoodman/depot/internal/audit"
	"github.com/rgoodman/depot/internal/product"
)

type Repository interface {
	Begin(ctx context.Context) (Tx, error)
	ListCounts(ctx context.Context, filter ListFilter) ([]*CycleCount, error)
}

// Tx is the atomic unit a count is recorded in. The product lock taken by
// GetProductForUpdate covers both the snapshot and the overwrite.
type Tx interface {
	GetProductForUpdate(ctx context.Context, productID uuid.UUID) (*product.Product, error)

	// OverwriteQuantity sets the product quantity unconditionally and
	// returns the previous value. Only cycle counts may do this.
	OverwriteQuantity(ctx context.Context, productID uuid.UUID, quantity int) (int, error)

	InsertCount(ctx context.Context, c *CycleCount) error
	InsertAudit(ctx context.Context, productID uuid.UUID, action audit.Action, performedBy string) error

	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type ListFilter struct {
	ProductID *uuid.UUID
}

// Record snapshots the system quantity, persists the count, and when the
// physical count disagrees, overwrites the ledger with it and leaves an
// audit entry attributed to the counter. A matching count changes nothing
// beyond the recorded snapshot.
func (s *Service) Record(ctx context.Context, productID uuid.UUID, counted int, reason, countedBy string) (*CycleCount, error) {
	if counted < 0 {
		return nil, ErrInvalidCount
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin cycle count: %w", err)
	}
	defer tx.Rollback()

	p, err := tx.GetProductForUpdate(ctx, productID)
	if err != nil {
		return nil, err
	}

	discrepancy := counted - p.Quantity

	c := &CycleCount{
		ProductID:       productID,
		CountedQuantity: counted,
		SystemQuantity:  p.Quantity,
		Discrepancy:     discrepancy,
		Reason:          reason,
		Adjusted:        discrepancy != 0,
		CountedBy:       countedBy,
	}

	if err := tx.InsertCount(ctx, c); err != nil {
		return nil, err
	}

	if discrepancy != 0 {
		if _, err := tx.OverwriteQuantity(ctx, productID, counted); err != nil {
			return nil, err
		}

		if err := tx.InsertAudit(ctx, productID, audit.ActionUpdate, countedBy); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit cycle count: %w", err)
	}

	return c, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*CycleCount, error) {
	return s.repo.ListCounts(ctx, filter)
}
