package movement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rgoodman/depot/internal/audit"
	"github.com/rgoodman/depot/internal/product"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=movement
type Repository interface {
	GetMovement(ctx context.Context, id uuid.UUID) (*Movement, error)
	ListMovements(ctx context.Context, filter ListFilter) ([]*Movement, error)

	// Begin opens the atomic unit every mutating operation runs in.
	Begin(ctx context.Context) (Tx, error)
}

// Tx is one all-or-nothing reconciliation unit. GetProductForUpdate takes
// an exclusive lock on the product row which is held until Commit or
// Rollback, so concurrent operations on the same product serialize.
type Tx interface {
	GetProductForUpdate(ctx context.Context, productID uuid.UUID) (*product.Product, error)
	GetMovementForUpdate(ctx context.Context, id uuid.UUID) (*Movement, error)

	// AdjustQuantity applies a signed delta to the product's quantity and
	// returns the new value. It fails with ErrInsufficientStock when the
	// result would be negative, leaving the quantity unchanged.
	AdjustQuantity(ctx context.Context, productID uuid.UUID, delta int) (int, error)

	InsertMovement(ctx context.Context, m *Movement) error
	UpdateMovement(ctx context.Context, m *Movement) error
	DeleteMovement(ctx context.Context, id uuid.UUID) error

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

type CreateParams struct {
	ProductID  uuid.UUID
	Kind       Kind
	Quantity   int
	Party      string
	Reference  string
	OccurredOn time.Time
}

// UpdateParams carries partial edits. The kind of an existing movement is
// fixed; moving stock the other way is a new movement.
type UpdateParams struct {
	ProductID  *uuid.UUID
	Quantity   *int
	Party      *string
	Reference  *string
	OccurredOn *time.Time
}

type ListFilter struct {
	Kind      *Kind
	ProductID *uuid.UUID
}

// Create records a movement and applies its effect to the product ledger.
// Movement row, quantity change and audit entry commit together or not at
// all; an outbound that would overdraw stock fails with
// ErrInsufficientStock and changes nothing.
func (s *Service) Create(ctx context.Context, params CreateParams, actor string) (*Movement, error) {
	if !params.Kind.Valid() {
		return nil, ErrInvalidKind
	}

	if params.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin reconciliation: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.GetProductForUpdate(ctx, params.ProductID); err != nil {
		return nil, err
	}

	if _, err := tx.AdjustQuantity(ctx, params.ProductID, params.Kind.Effect(params.Quantity)); err != nil {
		return nil, err
	}

	m := &Movement{
		ProductID:  params.ProductID,
		Kind:       params.Kind,
		Quantity:   params.Quantity,
		Party:      params.Party,
		Reference:  params.Reference,
		OccurredOn: params.OccurredOn,
	}

	if err := tx.InsertMovement(ctx, m); err != nil {
		return nil, err
	}

	if err := tx.InsertAudit(ctx, params.ProductID, audit.ActionUpdate, actor); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit reconciliation: %w", err)
	}

	return m, nil
}

// Update edits a movement and reconciles the ledger with its new effect.
//
// If the product reference is unchanged, only the net difference between
// the new and old effect is applied, which is equivalent to reversing the
// old effect and applying the new one but takes a single write. If the
// movement moves to another product, the reversal goes to the old product
// and the full new effect to the new one; both rows are locked up front in
// id order so concurrent updates cannot deadlock. Any non-negativity
// violation on either product aborts the whole unit.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams, actor string) (*Movement, error) {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin reconciliation: %w", err)
	}
	defer tx.Rollback()

	m, err := tx.GetMovementForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}

	old := *m

	if params.ProductID != nil {
		m.ProductID = *params.ProductID
	}

	if params.Quantity != nil {
		m.Quantity = *params.Quantity
	}

	if params.Party != nil {
		m.Party = *params.Party
	}

	if params.Reference != nil {
		m.Reference = *params.Reference
	}

	if params.OccurredOn != nil {
		m.OccurredOn = *params.OccurredOn
	}

	if m.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	if m.ProductID == old.ProductID {
		if err := s.reconcileSameProduct(ctx, tx, &old, m); err != nil {
			return nil, err
		}
	} else {
		if err := s.reconcileMovedProduct(ctx, tx, &old, m); err != nil {
			return nil, err
		}
	}

	if err := tx.UpdateMovement(ctx, m); err != nil {
		return nil, err
	}

	if err := tx.InsertAudit(ctx, m.ProductID, audit.ActionUpdate, actor); err != nil {
		return nil, err
	}

	if m.ProductID != old.ProductID {
		if err := tx.InsertAudit(ctx, old.ProductID, audit.ActionUpdate, actor); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit reconciliation: %w", err)
	}

	return m, nil
}

func (s *Service) reconcileSameProduct(ctx context.Context, tx Tx, old, updated *Movement) error {
	if _, err := tx.GetProductForUpdate(ctx, updated.ProductID); err != nil {
		return err
	}

	net := updated.Effect() - old.Effect()
	if net == 0 {
		return nil
	}

	_, err := tx.AdjustQuantity(ctx, updated.ProductID, net)

	return err
}

func (s *Service) reconcileMovedProduct(ctx context.Context, tx Tx, old, updated *Movement) error {
	// Lock both product rows in id order before touching either quantity.
	first, second := old.ProductID, updated.ProductID
	if second.String() < first.String() {
		first, second = second, first
	}

	if _, err := tx.GetProductForUpdate(ctx, first); err != nil {
		return err
	}

	if _, err := tx.GetProductForUpdate(ctx, second); err != nil {
		return err
	}

	if _, err := tx.AdjustQuantity(ctx, old.ProductID, -old.Effect()); err != nil {
		return err
	}

	if _, err := tx.AdjustQuantity(ctx, updated.ProductID, updated.Effect()); err != nil {
		return err
	}

	return nil
}

// Delete reverses the movement's original effect on its product and
// removes the row, atomically.
func (s *Service) Delete(ctx context.Context, id uuid.UUID, actor string) error {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin reconciliation: %w", err)
	}
	defer tx.Rollback()

	m, err := tx.GetMovementForUpdate(ctx, id)
	if err != nil {
		return err
	}

	if _, err := tx.GetProductForUpdate(ctx, m.ProductID); err != nil {
		return err
	}

	if _, err := tx.AdjustQuantity(ctx, m.ProductID, -m.Effect()); err != nil {
		return err
	}

	if err := tx.DeleteMovement(ctx, id); err != nil {
		return err
	}

	if err := tx.InsertAudit(ctx, m.ProductID, audit.ActionUpdate, actor); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit reconciliation: %w", err)
	}

	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Movement, error) {
	return s.repo.GetMovement(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Movement, error) {
	return s.repo.ListMovements(ctx, filter)
}
