package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/rgoodman/depot/internal/forecast"
	"github.com/rgoodman/depot/internal/product"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) GetProductBySKU(ctx context.Context, sku string) (*product.Product, error) {
	query := `
		SELECT id, sku, name, category, tags, description, quantity,
		       low_stock_threshold, archived, created_at, updated_at
		FROM products
		WHERE sku = $1
	`

	var p product.Product

	err := s.db.QueryRowContext(ctx, query, sku).Scan(
		&p.ID, &p.SKU, &p.Name, &p.Category, &p.Tags, &p.Description,
		&p.Quantity, &p.LowStockThreshold, &p.Archived, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, product.ErrNotFound
		}

		return nil, fmt.Errorf("getting product by sku: %w", err)
	}

	return &p, nil
}

func (s *Store) OutboundDailyTotals(ctx context.Context, productID uuid.UUID) ([]forecast.DailyTotal, error) {
	query := `
		SELECT occurred_on, SUM(quantity)
		FROM movements
		WHERE product_id = $1 AND kind = 'outbound'
		GROUP BY occurred_on
		ORDER BY occurred_on ASC
	`

	rows, err := s.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("querying outbound totals: %w", err)
	}
	defer rows.Close()

	var totals []forecast.DailyTotal

	for rows.Next() {
		var t forecast.DailyTotal

		if err := rows.Scan(&t.Day, &t.Quantity); err != nil {
			return nil, fmt.Errorf("scanning outbound total: %w", err)
		}

		totals = append(totals, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating outbound totals: %w", err)
	}

	return totals, nil
}
