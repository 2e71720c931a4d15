package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/rgoodman/depot/internal/audit"
	"github.com/rgoodman/depot/internal/cyclecount"
	"github.com/rgoodman/depot/internal/product"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListCounts(ctx context.Context, filter cyclecount.ListFilter) ([]*cyclecount.CycleCount, error) {
	query := `
		SELECT id, product_id, counted_quantity, system_quantity, discrepancy,
		       reason, adjusted, counted_by, counted_at
		FROM cycle_counts
	`

	var args []any

	if filter.ProductID != nil {
		query += " WHERE product_id = $1"

		args = append(args, *filter.ProductID)
	}

	query += " ORDER BY counted_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing cycle counts: %w", err)
	}
	defer rows.Close()

	var cs []*cyclecount.CycleCount

	for rows.Next() {
		var c cyclecount.CycleCount

		if err := rows.Scan(
			&c.ID, &c.ProductID, &c.CountedQuantity, &c.SystemQuantity,
			&c.Discrepancy, &c.Reason, &c.Adjusted, &c.CountedBy, &c.CountedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning cycle count: %w", err)
		}

		cs = append(cs, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cycle count rows: %w", err)
	}

	return cs, nil
}

type countTx struct {
	tx *sql.Tx
}

func (s *Store) Begin(ctx context.Context) (cyclecount.Tx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning count tx: %w", err)
	}

	return &countTx{tx: dbTx}, nil
}

func (t *countTx) Commit() error   { return t.tx.Commit() }
func (t *countTx) Rollback() error { return t.tx.Rollback() }

func (t *countTx) GetProductForUpdate(ctx context.Context, productID uuid.UUID) (*product.Product, error) {
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

func (t *countTx) OverwriteQuantity(ctx context.Context, productID uuid.UUID, quantity int) (int, error) {
	query := `
		UPDATE products AS p
		SET quantity = $1, updated_at = NOW()
		FROM (SELECT quantity FROM products WHERE id = $2) AS prev
		WHERE p.id = $2
		RETURNING prev.quantity
	`

	var previous int

	err := t.tx.QueryRowContext(ctx, query, quantity, productID).Scan(&previous)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, product.ErrNotFound
		}

		return 0, fmt.Errorf("overwriting quantity: %w", err)
	}

	return previous, nil
}

func (t *countTx) InsertCount(ctx context.Context, c *cyclecount.CycleCount) error {
	query := `
		INSERT INTO cycle_counts (product_id, counted_quantity, system_quantity, discrepancy, reason, adjusted, counted_by, counted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, counted_at
	`

	err := t.tx.QueryRowContext(ctx, query,
		c.ProductID, c.CountedQuantity, c.SystemQuantity, c.Discrepancy,
		c.Reason, c.Adjusted, c.CountedBy,
	).Scan(&c.ID, &c.CountedAt)
	if err != nil {
		return fmt.Errorf("inserting cycle count: %w", err)
	}

	return nil
}

func (t *countTx) InsertAudit(ctx context.Context, productID uuid.UUID, action audit.Action, performedBy string) error {
	query := `
		INSERT INTO audit_log (product_id, action, performed_by, timestamp)
		VALUES ($1, $2, $3, NOW())
	`

	if _, err := t.tx.ExecContext(ctx, query, productID, action, performedBy); err != nil {
		return fmt.Errorf("inserting audit entry: %w", err)
	}

	return nil
}
