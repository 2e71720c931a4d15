package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/rgoodman/depot/internal/audit"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Recent returns the newest n audit entries across all products.
func (s *Store) Recent(ctx context.Context, n int) ([]*audit.Entry, error) {
	query := `
		SELECT a.id, a.product_id, p.name, a.action, a.performed_by, a.timestamp
		FROM audit_log a
		JOIN products p ON a.product_id = p.id
		ORDER BY a.timestamp DESC
		LIMIT $1
	`

	rows, err := s.db.QueryContext(ctx, query, n)
	if err != nil {
		return nil, fmt.Errorf("querying audit log: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// ByProduct returns every audit entry for one product, newest first.
func (s *Store) ByProduct(ctx context.Context, productID uuid.UUID) ([]*audit.Entry, error) {
	query := `
		SELECT a.id, a.product_id, p.name, a.action, a.performed_by, a.timestamp
		FROM audit_log a
		JOIN products p ON a.product_id = p.id
		WHERE a.product_id = $1
		ORDER BY a.timestamp DESC
	`

	rows, err := s.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("querying audit log for product: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
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
