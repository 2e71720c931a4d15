package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rgoodman/depot/internal/encoding"
	"github.com/rgoodman/depot/internal/movement"
	"github.com/rgoodman/depot/internal/product"
)

// dateLayout is the fixed MM/DD/YYYY format the upload templates use.
const dateLayout = "01/02/2006"

type ProductService interface {
	Create(ctx context.Context, params product.CreateParams, actor string) (*product.Product, error)
	GetBySKU(ctx context.Context, sku string) (*product.Product, error)
}

type MovementService interface {
	Create(ctx context.Context, params movement.CreateParams, actor string) (*movement.Movement, error)
}

type Service struct {
	products  ProductService
	movements MovementService
}

func NewService(products ProductService, movements MovementService) *Service {
	return &Service{products: products, movements: movements}
}

// colIndex maps trimmed, lower-cased header names to their position.
type colIndex map[string]int

func (c colIndex) value(row []string, name string) string {
	idx, ok := c[name]
	if !ok || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func readRows(r io.Reader) (colIndex, [][]string, error) {
	utf8r, err := encoding.NewUTF8Reader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv: %w", err)
	}

	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("%w: empty file", ErrBadHeader)
	}

	cols := make(colIndex)
	for i, cell := range rows[0] {
		name := strings.ToLower(strings.TrimSpace(cell))
		if name != "" {
			cols[name] = i
		}
	}

	return cols, rows[1:], nil
}

func requireColumns(cols colIndex, names ...string) error {
	for _, name := range names {
		if _, ok := cols[name]; !ok {
			return fmt.Errorf("%w: %q", ErrBadHeader, name)
		}
	}

	return nil
}

// movementColumns are the kind-specific header names; the upload templates
// mirror the single-entry forms.
type movementColumns struct {
	party     string
	reference string
	date      string
}

func columnsFor(kind movement.Kind) movementColumns {
	if kind == movement.KindOutbound {
		return movementColumns{party: "customer", reference: "so_reference", date: "dispatch_date"}
	}

	return movementColumns{party: "supplier", reference: "invoice_reference", date: "received_date"}
}

// Movements applies a CSV of inbound or outbound rows. Each row is
// resolved, validated and created in its own transaction; a bad row is
// reported and skipped without disturbing its neighbors.
func (s *Service) Movements(ctx context.Context, r io.Reader, kind movement.Kind, actor string) (*Report, error) {
	if !kind.Valid() {
		return nil, movement.ErrInvalidKind
	}

	cols, rows, err := readRows(r)
	if err != nil {
		return nil, err
	}

	kindCols := columnsFor(kind)
	if err := requireColumns(cols, "sku", "quantity", kindCols.date); err != nil {
		return nil, err
	}

	report := &Report{}

	for i, row := range rows {
		line := i + 2 // 1-based, after the header

		sku := cols.value(row, "sku")
		if sku == "" {
			report.skip(line, "", "missing sku")
			continue
		}

		p, err := s.products.GetBySKU(ctx, sku)
		if err != nil {
			if errors.Is(err, product.ErrNotFound) {
				report.skip(line, sku, "unknown sku")
				continue
			}

			return nil, fmt.Errorf("row %d: resolving sku: %w", line, err)
		}

		qtyRaw := cols.value(row, "quantity")

		qty, err := strconv.Atoi(qtyRaw)
		if err != nil || qty <= 0 {
			report.skip(line, sku, fmt.Sprintf("invalid quantity %q", qtyRaw))
			continue
		}

		dateRaw := cols.value(row, kindCols.date)

		occurredOn, err := time.Parse(dateLayout, dateRaw)
		if err != nil {
			report.skip(line, sku, fmt.Sprintf("invalid date %q", dateRaw))
			continue
		}

		_, err = s.movements.Create(ctx, movement.CreateParams{
			ProductID:  p.ID,
			Kind:       kind,
			Quantity:   qty,
			Party:      cols.value(row, kindCols.party),
			Reference:  cols.value(row, kindCols.reference),
			OccurredOn: occurredOn,
		}, actor)

		switch {
		case err == nil:
			report.Applied++
		case errors.Is(err, movement.ErrInsufficientStock):
			report.skip(line, sku, "insufficient stock")
		case errors.Is(err, movement.ErrInvalidQuantity):
			report.skip(line, sku, fmt.Sprintf("invalid quantity %q", qtyRaw))
		default:
			return nil, fmt.Errorf("row %d: creating movement: %w", line, err)
		}
	}

	return report, nil
}

// Products inserts new products row by row. Duplicate SKUs are reported
// per row rather than failing the batch; each insert commits on its own.
func (s *Service) Products(ctx context.Context, r io.Reader, actor string) (*Report, error) {
	cols, rows, err := readRows(r)
	if err != nil {
		return nil, err
	}

	if err := requireColumns(cols, "sku", "name", "quantity"); err != nil {
		return nil, err
	}

	report := &Report{}

	for i, row := range rows {
		line := i + 2

		sku := cols.value(row, "sku")
		if sku == "" {
			report.skip(line, "", "missing sku")
			continue
		}

		qtyRaw := cols.value(row, "quantity")

		qty, err := strconv.Atoi(qtyRaw)
		if err != nil || qty < 0 {
			report.skip(line, sku, fmt.Sprintf("invalid quantity %q", qtyRaw))
			continue
		}

		threshold := 0
		if raw := cols.value(row, "low_stock_threshold"); raw != "" {
			threshold, err = strconv.Atoi(raw)
			if err != nil {
				report.skip(line, sku, fmt.Sprintf("invalid low_stock_threshold %q", raw))
				continue
			}
		}

		_, err = s.products.Create(ctx, product.CreateParams{
			SKU:               sku,
			Name:              cols.value(row, "name"),
			Category:          cols.value(row, "category"),
			Tags:              cols.value(row, "tags"),
			Description:       cols.value(row, "description"),
			Quantity:          qty,
			LowStockThreshold: threshold,
		}, actor)

		switch {
		case err == nil:
			report.Applied++
		case errors.Is(err, product.ErrDuplicateSKU):
			report.skip(line, sku, "duplicate sku")
		case errors.Is(err, product.ErrInvalid):
			report.skip(line, sku, err.Error())
		default:
			return nil, fmt.Errorf("row %d: creating product: %w", line, err)
		}
	}

	return report, nil
}
