package forecast_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgoodman/depot/internal/forecast"
	"github.com/rgoodman/depot/internal/product"
)

type fakeRepo struct {
	prod   *product.Product
	totals []forecast.DailyTotal
}

func (f *fakeRepo) GetProductBySKU(_ context.Context, sku string) (*product.Product, error) {
	if f.prod == nil || f.prod.SKU != sku {
		return nil, product.ErrNotFound
	}

	return f.prod, nil
}

func (f *fakeRepo) OutboundDailyTotals(_ context.Context, _ uuid.UUID) ([]forecast.DailyTotal, error) {
	return f.totals, nil
}

func day(n int) time.Time {
	return time.Date(2025, 3, n, 0, 0, 0, 0, time.UTC)
}

func totals(quantitiesByDay map[int]int) []forecast.DailyTotal {
	var ts []forecast.DailyTotal

	for n := 1; n <= 31; n++ {
		if q, ok := quantitiesByDay[n]; ok {
			ts = append(ts, forecast.DailyTotal{Day: day(n), Quantity: q})
		}
	}

	return ts
}

func TestService_Forecast_SevenDayAverage(t *testing.T) {
	// Dispatches of [5,0,0,0,0,0,3] over seven consecutive days with 100
	// in stock: average 8/7 ~ 1.14, runway floor(100/(8/7)) = 87 days.
	repo := &fakeRepo{
		prod:   &product.Product{ID: uuid.New(), SKU: "WID-001", Name: "Widget", Quantity: 100},
		totals: totals(map[int]int{1: 5, 7: 3}),
	}
	svc := forecast.NewService(repo)

	got, err := svc.Forecast(context.Background(), "WID-001")
	require.NoError(t, err)

	assert.False(t, got.Unbounded)
	assert.Equal(t, "1.14", got.DailyAverage.String())
	assert.Equal(t, 87, got.DaysLeft)
	assert.Equal(t, 100, got.Stock)
	assert.Equal(t, "Widget", got.Product)
}

func TestService_Forecast_GapDaysCountAsZero(t *testing.T) {
	// Only two dispatch days, nine days apart. The dense series is ten
	// days long, so the trailing window [0,0,0,0,0,0,10] averages 10/7,
	// not 15/2.
	repo := &fakeRepo{
		prod:   &product.Product{ID: uuid.New(), SKU: "WID-001", Quantity: 10},
		totals: totals(map[int]int{1: 5, 10: 10}),
	}
	svc := forecast.NewService(repo)

	got, err := svc.Forecast(context.Background(), "WID-001")
	require.NoError(t, err)

	assert.Equal(t, "1.43", got.DailyAverage.String())
	assert.Equal(t, 7, got.DaysLeft)
}

func TestService_Forecast_ShortHistoryUsesMinimumPeriod(t *testing.T) {
	// A single dispatch day averages over one day, not seven.
	repo := &fakeRepo{
		prod:   &product.Product{ID: uuid.New(), SKU: "WID-001", Quantity: 9},
		totals: totals(map[int]int{5: 3}),
	}
	svc := forecast.NewService(repo)

	got, err := svc.Forecast(context.Background(), "WID-001")
	require.NoError(t, err)

	assert.Equal(t, "3", got.DailyAverage.String())
	assert.Equal(t, 3, got.DaysLeft)
}

func TestService_Forecast_NoRecentUsageIsUnbounded(t *testing.T) {
	// The last seven days of the series are all zero-fill: old history
	// exists, but nothing recent, so the runway is unbounded rather than
	// a division by zero.
	repo := &fakeRepo{
		prod: &product.Product{ID: uuid.New(), SKU: "WID-001", Quantity: 50},
		totals: []forecast.DailyTotal{
			{Day: day(1), Quantity: 5},
			{Day: day(12), Quantity: 0},
		},
	}

	svc := forecast.NewService(repo)

	got, err := svc.Forecast(context.Background(), "WID-001")
	require.NoError(t, err)

	assert.True(t, got.Unbounded)
	assert.True(t, got.DailyAverage.IsZero())
	assert.Equal(t, 0, got.DaysLeft)
}

func TestService_Forecast_NoHistory(t *testing.T) {
	repo := &fakeRepo{prod: &product.Product{ID: uuid.New(), SKU: "WID-001", Quantity: 50}}
	svc := forecast.NewService(repo)

	_, err := svc.Forecast(context.Background(), "WID-001")
	assert.ErrorIs(t, err, forecast.ErrNoHistory)
}

func TestService_Forecast_UnknownSKU(t *testing.T) {
	svc := forecast.NewService(&fakeRepo{})

	_, err := svc.Forecast(context.Background(), "NOPE-404")
	assert.ErrorIs(t, err, product.ErrNotFound)
}
