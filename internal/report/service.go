package report

import (
	"context"
	"fmt"
	"time"

	"github.com/rgoodman/depot/internal/audit"
	"github.com/rgoodman/depot/internal/movement"
)

// recentActivityLimit caps the dashboard's audit feed.
const recentActivityLimit = 10

type Repository interface {
	CountProducts(ctx context.Context) (int, error)
	CountLowStock(ctx context.Context) (int, error)
	MovementTotalOn(ctx context.Context, kind movement.Kind, day time.Time) (int, error)
	RecentAudit(ctx context.Context, limit int) ([]*audit.Entry, error)
	DailyTotals(ctx context.Context, kind movement.Kind) ([]DayTotal, error)
}

type Summary struct {
	TotalProducts  int
	InboundToday   int
	OutboundToday  int
	LowStockAlerts int
	RecentActivity []*audit.Entry
}

type DayTotal struct {
	Date  time.Time
	Total int
}

// VolumeReport is the per-day movement series the dashboard charts.
type VolumeReport struct {
	Inbound  []DayTotal
	Outbound []DayTotal
}

type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService builds the dashboard read side. now may be nil, in which
// case the wall clock decides what "today" means.
func NewService(repo Repository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}

	return &Service{repo: repo, now: now}
}

func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	today := s.now().Truncate(24 * time.Hour)

	total, err := s.repo.CountProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting products: %w", err)
	}

	inbound, err := s.repo.MovementTotalOn(ctx, movement.KindInbound, today)
	if err != nil {
		return nil, fmt.Errorf("summing inbound: %w", err)
	}

	outbound, err := s.repo.MovementTotalOn(ctx, movement.KindOutbound, today)
	if err != nil {
		return nil, fmt.Errorf("summing outbound: %w", err)
	}

	lowStock, err := s.repo.CountLowStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting low stock: %w", err)
	}

	recent, err := s.repo.RecentAudit(ctx, recentActivityLimit)
	if err != nil {
		return nil, fmt.Errorf("loading recent activity: %w", err)
	}

	return &Summary{
		TotalProducts:  total,
		InboundToday:   inbound,
		OutboundToday:  outbound,
		LowStockAlerts: lowStock,
		RecentActivity: recent,
	}, nil
}

func (s *Service) DailyVolume(ctx context.Context) (*VolumeReport, error) {
	inbound, err := s.repo.DailyTotals(ctx, movement.KindInbound)
	if err != nil {
		return nil, fmt.Errorf("loading inbound volume: %w", err)
	}

	outbound, err := s.repo.DailyTotals(ctx, movement.KindOutbound)
	if err != nil {
		return nil, fmt.Errorf("loading outbound volume: %w", err)
	}

	return &VolumeReport{Inbound: inbound, Outbound: outbound}, nil
}
