package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/rgoodman/depot/internal/audit"
	"github.com/rgoodman/depot/internal/movement"
	"github.com/rgoodman/depot/internal/product"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectMovementColumns = `
	m.id, m.product_id, m.kind, m.quantity, m.party, m.reference, m.occurred_on, m.created_at
`

func scanMovement(s scanner) (*movement.Movement, error) {
	var m movement.Movement

	var kind string

	if err := s.Scan(
		&m.ID, &m.ProductID, &kind, &m.Quantity, &m.Party, &m.Reference,
		&m.OccurredOn, &m.CreatedAt,
	); err != nil {
		return nil, err
	}

	m.Kind = movement.Kind(kind)

	return &m, nil
}

func (s *Store) GetMovement(ctx context.Context, id uuid.UUID) (*movement.Movement, error) {
	query := `SELECT ` + selectMovementColumns + ` FROM movements m WHERE m.id = $1`

	m, err := scanMovement(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, movement.ErrNotFound
		}

		return nil, fmt.Errorf("getting movement: %w", err)
	}

	return m, nil
}

func (s *Store) ListMovements(ctx context.Context, filter movement.ListFilter) ([]*movement.Movement, error) {
	query := `SELECT ` + selectMovementColumns + ` FROM movements m WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.Kind != nil {
		query += fmt.Sprintf(" AND m.kind = $%d", argIdx)

		args = append(args, *filter.Kind)
		argIdx++
	}

	if filter.ProductID != nil {
		query += fmt.Sprintf(" AND m.product_id = $%d", argIdx)

		args = append(args, *filter.ProductID)
		argIdx++
	}

	query += " ORDER BY m.created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing movements: %w", err)
	}
	defer rows.Close()

	var ms []*movement.Movement

	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning movement: %w", err)
		}

		ms = append(ms, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating movement rows: %w", err)
	}

	return ms, nil
}

type reconcileTx struct {
	tx *sql.Tx
}

func (s *Store) Begin(ctx context.Context) (movement.Tx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning reconcile tx: %w", err)
	}

	return &reconcileTx{tx: dbTx}, nil
}

func (t *reconcileTx) Commit() error   { return t.tx.Commit() }
func (t *reconcileTx) Rollback() error { return t.tx.Rollback() }

// GetProductForUpdate locks the product row for the remainder of the
// transaction, serializing concurrent ledger operations per product.
func (t *reconcileTx) GetProductForUpdate(ctx context.Context, productID uuid.UUID) (*product.Product, error) {
	query := `
		SELECT id, sku, name, category, tags, description, quantity,
		       low_stock_threshold, archived, created_at, updated_at
		FROM products
		WHERE id = $1
		FOR UPDATE
	`

	var p product.Product

	err := t.tx.QueryRowContext(ctx, query, productID).Scan(
		&p.ID, &p.SKU, &p.Name, &p.Category, &p.Tags, &p.Description,
		&p.Quantity, &p.LowStockThreshold, &p.Archived, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, product.ErrNotFound
		}

		return nil, fmt.Errorf("locking product: %w", err)
	}

	return &p, nil
}

func (t *reconcileTx) GetMovementForUpdate(ctx context.Context, id uuid.UUID) (*movement.Movement, error) {
	query := `SELECT ` + selectMovementColumns + ` FROM movements m WHERE m.id = $1 FOR UPDATE`

	m, err := scanMovement(t.tx.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, movement.ErrNotFound
		}

		return nil, fmt.Errorf("locking movement: %w", err)
	}

	return m, nil
}

// AdjustQuantity is the ledger's delta application. The WHERE guard makes
// the non-negativity check and the write one statement; callers have
// already locked the row, so zero rows affected can only mean the delta
// would overdraw stock.
func (t *reconcileTx) AdjustQuantity(ctx context.Context, productID uuid.UUID, delta int) (int, error) {
	query := `
		UPDATE products
		SET quantity = quantity + $1, updated_at = NOW()
		WHERE id = $2 AND quantity + $1 >= 0
		RETURNING quantity
	`

	var newQuantity int

	err := t.tx.QueryRowContext(ctx, query, delta, productID).Scan(&newQuantity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, movement.ErrInsufficientStock
		}

		return 0, fmt.Errorf("adjusting quantity: %w", err)
	}

	return newQuantity, nil
}

func (t *reconcileTx) InsertMovement(ctx context.Context, m *movement.Movement) error {
	query := `
		INSERT INTO movements (product_id, kind, quantity, party, reference, occurred_on, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	err := t.tx.QueryRowContext(ctx, query,
		m.ProductID, m.Kind, m.Quantity, m.Party, m.Reference, m.OccurredOn,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting movement: %w", err)
	}

	return nil
}

func (t *reconcileTx) UpdateMovement(ctx context.Context, m *movement.Movement) error {
	query := `
		UPDATE movements
		SET product_id = $1, quantity = $2, party = $3, reference = $4, occurred_on = $5
		WHERE id = $6
	`

	res, err := t.tx.ExecContext(ctx, query,
		m.ProductID, m.Quantity, m.Party, m.Reference, m.OccurredOn, m.ID,
	)
	if err != nil {
		return fmt.Errorf("updating movement: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return movement.ErrNotFound
	}

	return nil
}

func (t *reconcileTx) DeleteMovement(ctx context.Context, id uuid.UUID) error {
	res, err := t.tx.ExecContext(ctx, `DELETE FROM movements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting movement: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return movement.ErrNotFound
	}

	return nil
}

func (t *reconcileTx) InsertAudit(ctx context.Context, productID uuid.UUID, action audit.Action, performedBy string) error {
	query := `
		INSERT INTO audit_log (product_id, action, performed_by, timestamp)
		VALUES ($1, $2, $3, NOW())
	`

	if _, err := t.tx.ExecContext(ctx, query, productID, action, performedBy); err != nil {
		return fmt.Errorf("inserting audit entry: %w", err)
	}

	return nil
}
