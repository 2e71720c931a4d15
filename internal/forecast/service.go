package forecast

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rgoodman/depot/internal/product"
)

// ErrNoHistory is returned when a product has no outbound history to
// derive a consumption rate from.
var ErrNoHistory = errors.New("not enough outbound history to forecast")

// movingAverageWindow is the trailing window, in days, for the daily
// consumption average.
const movingAverageWindow = 7

type Repository interface {
	GetProductBySKU(ctx context.Context, sku string) (*product.Product, error)

	// OutboundDailyTotals returns per-day dispatched quantities for the
	// product, ordered by day ascending. Days without dispatches are
	// absent; the service fills the gaps.
	OutboundDailyTotals(ctx context.Context, productID uuid.UUID) ([]DailyTotal, error)
}

type DailyTotal struct {
	Day      time.Time
	Quantity int
}

// Result is a stock-runway estimate. When Unbounded is set the product
// shows no recent usage and DaysLeft is meaningless; callers should
// present "no usage" instead of a number.
type Result struct {
	SKU          string
	Product      string
	Stock        int
	DailyAverage decimal.Decimal
	DaysLeft     int
	Unbounded    bool
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Forecast estimates how many days the current stock lasts at the recent
// consumption rate. The rate is a trailing simple moving average over the
// dense daily dispatch series (gap days count as zero), taken at the last
// observed dispatch day with a window of 7 days and a minimum period of 1.
func (s *Service) Forecast(ctx context.Context, sku string) (*Result, error) {
	p, err := s.repo.GetProductBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}

	totals, err := s.repo.OutboundDailyTotals(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	if len(totals) == 0 {
		return nil, ErrNoHistory
	}

	series := densify(totals)
	average := trailingAverage(series, movingAverageWindow)

	result := &Result{
		SKU:          p.SKU,
		Product:      p.Name,
		Stock:        p.Quantity,
		DailyAverage: average.Round(2),
	}

	if average.IsZero() {
		result.Unbounded = true

		return result, nil
	}

	// Integer truncation toward zero: 87.5 days of stock is 87 full days.
	result.DaysLeft = int(decimal.NewFromInt(int64(p.Quantity)).Div(average).IntPart())

	return result, nil
}

// densify expands the sparse per-day totals into one value per calendar
// day between the first and last observed day, zero-filling the gaps.
func densify(totals []DailyTotal) []int {
	byDay := make(map[string]int, len(totals))
	for _, t := range totals {
		byDay[t.Day.Format(time.DateOnly)] += t.Quantity
	}

	first := totals[0].Day
	last := totals[len(totals)-1].Day

	var series []int
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		series = append(series, byDay[d.Format(time.DateOnly)])
	}

	return series
}

// trailingAverage is the simple moving average at the end of the series,
// using however many of the last `window` values exist.
func trailingAverage(series []int, window int) decimal.Decimal {
	n := len(series)
	if n > window {
		series = series[n-window:]
	}

	sum := int64(0)
	for _, v := range series {
		sum += int64(v)
	}

	return decimal.NewFromInt(sum).Div(decimal.NewFromInt(int64(len(series))))
}
