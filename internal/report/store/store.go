package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rgoodman/depot/internal/audit"
	"github.com/rgoodman/depot/internal/movement"
	"github.com/rgoodman/depot/internal/report"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CountProducts(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting products: %w", err)
	}

	return n, nil
}

func (s *Store) CountLowStock(ctx context.Context) (int, error) {
	var n int

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products WHERE quantity <= low_stock_threshold`,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting low stock: %w", err)
	}

	return n, nil
}

func (s *Store) MovementTotalOn(ctx context.Context, kind movement.Kind, day time.Time) (int, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM movements
		WHERE kind = $1 AND occurred_on = $2
	`

	var total int
	if err := s.db.QueryRowContext(ctx, query, kind, day).Scan(&total); err != nil {
		return 0, fmt.Errorf("summing %s movements: %w", kind, err)
	}

	return total, nil
}

func (s *Store) RecentAudit(ctx context.Context, limit int) ([]*audit.Entry, error) {
	query := `
		SELECT a.id, a.product_id, p.name, a.action, a.performed_by, a.timestamp
		FROM audit_log a
		JOIN products p ON a.product_id = p.id
		ORDER BY a.timestamp DESC
		LIMIT $1
	`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent audit: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func (s *Store) DailyTotals(ctx context.Context, kind movement.Kind) ([]report.DayTotal, error) {
	query := `
		SELECT occurred_on, SUM(quantity)
		FROM movements
		WHERE kind = $1
		GROUP BY occurred_on
		ORDER BY occurred_on ASC
	`

	rows, err := s.db.QueryContext(ctx, query, kind)
	if err != nil {
		return nil, fmt.Errorf("querying daily totals: %w", err)
	}
	defer rows.Close()

	var totals []report.DayTotal

	for rows.Next() {
		var t report.DayTotal

		if err := rows.Scan(&t.Date, &t.Total); err != nil {
			return nil, fmt.Errorf("scanning daily total: %w", err)
		}

		totals = append(totals, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating daily totals: %w", err)
	}

	return totals, nil
}

func scanEntries(rows *sql.Rows) ([]*audit.Entry, error) {
	var entries []*audit.Entry

	for rows.Next() {
		var e audit.Entry

		var action string

		if err := rows.Scan(&e.ID, &e.ProductID, &e.ProductName, &action, &e.PerformedBy, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scanning audit entry: %w", err)
		}

		e.Action = audit.Action(action)
		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating audit rows: %w", err)
	}

	return entries, nil
}
