package service

import (
	"context"
	"time"

	"fasttrack/internal/analytics"
	"fasttrack/internal/model"
	"fasttrack/internal/repository"

	"github.com/rs/zerolog"
)

// Stock thresholds driving the dashboard alerts.
const (
	lowStockThreshold      = 10
	criticalStockThreshold = 5
)

const (
	criticalStockLimit = 10
	recentOrdersLimit  = 5
	expiryWindow       = 7 * 24 * time.Hour
)

// dashboardService implements DashboardService. Stats are computed live on
// each call; the view varies per requested range so it bypasses the shared
// view cache.
type dashboardService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	logger      zerolog.Logger
	now         func() time.Time
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	logger zerolog.Logger,
) DashboardService {
	return &dashboardService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "dashboard").Logger(),
		now:         time.Now,
	}
}

// Stats computes the dashboard view over the given time range. Every fetch
// failure degrades to a zero value for its section; the dashboard is
// read-only and never propagates errors to the view.
func (s *dashboardService) Stats(ctx context.Context, timeRange analytics.TimeRange) DashboardStats {
	now := s.now()
	stats := DashboardStats{
		CriticalStockItems: []model.Product{},
		RecentOrders:       []model.Order{},
	}

	if total, err := s.orderRepo.TotalRevenue(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("dashboard: revenue fetch failed")
	} else {
		stats.TotalRevenue = total
	}

	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if count, err := s.orderRepo.CountSince(ctx, startOfDay); err != nil {
		s.logger.Warn().Err(err).Msg("dashboard: order count fetch failed")
	} else {
		stats.OrdersToday = count
	}

	if count, err := s.productRepo.Count(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("dashboard: product count fetch failed")
	} else {
		stats.TotalProducts = count
	}

	if count, err := s.productRepo.CountBelowStock(ctx, lowStockThreshold); err != nil {
		s.logger.Warn().Err(err).Msg("dashboard: low-stock count fetch failed")
	} else {
		stats.LowStockCount = count
	}

	if count, err := s.productRepo.CountExpiringWithin(ctx, expiryWindow); err != nil {
		s.logger.Warn().Err(err).Msg("dashboard: expiring count fetch failed")
	} else {
		stats.ExpiringSoonCount = count
	}

	if items, err := s.productRepo.ListBelowStock(ctx, criticalStockThreshold, criticalStockLimit); err != nil {
		s.logger.Warn().Err(err).Msg("dashboard: critical-stock fetch failed")
	} else if items != nil {
		stats.CriticalStockItems = items
	}

	stats.RevenueSeries = s.revenueSeries(ctx, timeRange, now)

	if orders, err := s.orderRepo.ListRecent(ctx, recentOrdersLimit); err != nil {
		s.logger.Warn().Err(err).Msg("dashboard: recent orders fetch failed")
	} else if orders != nil {
		stats.RecentOrders = orders
	}

	return stats
}

// revenueSeries fetches orders within the range and buckets their revenue.
// A fetch failure yields the zero-seeded series.
func (s *dashboardService) revenueSeries(ctx context.Context, timeRange analytics.TimeRange, now time.Time) []analytics.Bucket {
	orders, err := s.orderRepo.ListSince(ctx, now.Add(-timeRange.Duration()))
	if err != nil {
		s.logger.Warn().Err(err).Str("range", string(timeRange)).Msg("dashboard: order series fetch failed")
		return analytics.Series(timeRange, now, nil)
	}

	points := make([]analytics.OrderPoint, len(orders))
	for i, o := range orders {
		points[i] = analytics.OrderPoint{CreatedAt: o.CreatedAt, Amount: o.TotalAmount}
	}

	return analytics.Series(timeRange, now, points)
}
