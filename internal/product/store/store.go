package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rgoodman/depot/internal/audit"
	"github.com/rgoodman/depot/internal/product"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectProductColumns = `
	p.id, p.sku, p.name, p.category, p.tags, p.description, p.quantity,
	p.low_stock_threshold, p.archived, p.created_at, p.updated_at
`

func scanProduct(s scanner) (*product.Product, error) {
	var p product.Product

	if err := s.Scan(
		&p.ID, &p.SKU, &p.Name, &p.Category, &p.Tags, &p.Description,
		&p.Quantity, &p.LowStockThreshold, &p.Archived, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &p, nil
}

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// CreateProduct inserts the product and its creation audit entry in one
// transaction.
func (s *Store) CreateProduct(ctx context.Context, p *product.Product, actor string) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		INSERT INTO products (sku, name, category, tags, description, quantity, low_stock_threshold, archived, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, created_at
	`

	err = dbTx.QueryRowContext(ctx, query,
		p.SKU, p.Name, p.Category, p.Tags, p.Description,
		p.Quantity, p.LowStockThreshold, p.Archived,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return product.ErrDuplicateSKU
		}

		return fmt.Errorf("creating product: %w", err)
	}

	if err := insertAudit(ctx, dbTx, p.ID, audit.ActionCreate, actor); err != nil {
		return err
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing product create: %w", err)
	}

	return nil
}

func (s *Store) GetProduct(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	query := `SELECT ` + selectProductColumns + ` FROM products p WHERE p.id = $1`

	p, err := scanProduct(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, product.ErrNotFound
		}

		return nil, fmt.Errorf("getting product: %w", err)
	}

	return p, nil
}

func (s *Store) GetProductBySKU(ctx context.Context, sku string) (*product.Product, error) {
	query := `SELECT ` + selectProductColumns + ` FROM products p WHERE p.sku = $1`

	p, err := scanProduct(s.db.QueryRowContext(ctx, query, sku))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, product.ErrNotFound
		}

		return nil, fmt.Errorf("getting product by sku: %w", err)
	}

	return p, nil
}

// UpdateProduct writes descriptive fields only; quantity moves through the
// movement and cycle-count stores.
func (s *Store) UpdateProduct(ctx context.Context, p *product.Product, actor string) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		UPDATE products
		SET sku = $1, name = $2, category = $3, tags = $4, description = $5,
		    low_stock_threshold = $6, archived = $7, updated_at = NOW()
		WHERE id = $8
	`

	res, err := dbTx.ExecContext(ctx, query,
		p.SKU, p.Name, p.Category, p.Tags, p.Description,
		p.LowStockThreshold, p.Archived, p.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return product.ErrDuplicateSKU
		}

		return fmt.Errorf("updating product: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return product.ErrNotFound
	}

	if err := insertAudit(ctx, dbTx, p.ID, audit.ActionUpdate, actor); err != nil {
		return err
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing product update: %w", err)
	}

	return nil
}

// DeleteProduct removes the product and everything hanging off it. The
// dependent rows go first so the foreign keys never dangle; doing it here
// instead of ON DELETE CASCADE keeps the removal visible to this code and
// to anyone reading it.
func (s *Store) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	for _, query := range []string{
		`DELETE FROM movements WHERE product_id = $1`,
		`DELETE FROM cycle_counts WHERE product_id = $1`,
		`DELETE FROM audit_log WHERE product_id = $1`,
	} {
		if _, err := dbTx.ExecContext(ctx, query, id); err != nil {
			return fmt.Errorf("cascading product delete: %w", err)
		}
	}

	res, err := dbTx.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return product.ErrNotFound
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing product delete: %w", err)
	}

	return nil
}

func (s *Store) ListProducts(ctx context.Context, filter product.ListFilter) ([]*product.Product, error) {
	query := `SELECT ` + selectProductColumns + ` FROM products p WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.Query != "" {
		query += fmt.Sprintf(
			" AND (p.name ILIKE $%d OR p.sku ILIKE $%d OR p.category ILIKE $%d OR p.tags ILIKE $%d)",
			argIdx, argIdx, argIdx, argIdx,
		)

		args = append(args, "%"+filter.Query+"%")
		argIdx++
	}

	if filter.LowStock {
		query += " AND p.quantity <= p.low_stock_threshold"
	}

	if filter.Archived != nil {
		query += fmt.Sprintf(" AND p.archived = $%d", argIdx)

		args = append(args, *filter.Archived)
		argIdx++
	}

	query += " ORDER BY p.created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	var ps []*product.Product

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}

		ps = append(ps, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product rows: %w", err)
	}

	return ps, nil
}

func insertAudit(ctx context.Context, dbTx *sql.Tx, productID uuid.UUID, action audit.Action, actor string) error {
	query := `
		INSERT INTO audit_log (product_id, action, performed_by, timestamp)
		VALUES ($1, $2, $3, NOW())
	`

	if _, err := dbTx.ExecContext(ctx, query, productID, action, actor); err != nil {
		return fmt.Errorf("inserting audit entry: %w", err)
	}

	return nil
}
