package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"fasttrack/internal/analytics"
	"fasttrack/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// 2026-03-15 is a Sunday.
var dashboardNow = time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

func newDashboardForTest(orderRepo *MockOrderRepository, productRepo *MockProductRepository) *dashboardService {
	service := NewDashboardService(orderRepo, productRepo, zerolog.Nop()).(*dashboardService)
	service.now = func() time.Time { return dashboardNow }
	return service
}

func TestDashboardService_Stats(t *testing.T) {
	ctx := context.Background()
	mockOrderRepo := new(MockOrderRepository)
	mockProductRepo := new(MockProductRepository)
	service := newDashboardForTest(mockOrderRepo, mockProductRepo)

	startOfDay := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	critical := []model.Product{{ID: 1, Name: "Milk", StockQuantity: 2}}
	recent := []model.Order{{ID: uuid.New(), TotalAmount: 50}}
	inRange := []model.Order{
		{ID: uuid.New(), TotalAmount: 30, CreatedAt: dashboardNow.Add(-2 * time.Hour)},
		{ID: uuid.New(), TotalAmount: 20, CreatedAt: dashboardNow.Add(-26 * time.Hour)},
	}

	mockOrderRepo.On("TotalRevenue", ctx).Return(1234.5, nil)
	mockOrderRepo.On("CountSince", ctx, startOfDay).Return(3, nil)
	mockProductRepo.On("Count", ctx).Return(40, nil)
	mockProductRepo.On("CountBelowStock", ctx, 10).Return(6, nil)
	mockProductRepo.On("CountExpiringWithin", ctx, 7*24*time.Hour).Return(2, nil)
	mockProductRepo.On("ListBelowStock", ctx, 5, 10).Return(critical, nil)
	mockOrderRepo.On("ListSince", ctx, dashboardNow.Add(-7*24*time.Hour)).Return(inRange, nil)
	mockOrderRepo.On("ListRecent", ctx, 5).Return(recent, nil)

	stats := service.Stats(ctx, analytics.Range7D)

	assert.Equal(t, 1234.5, stats.TotalRevenue)
	assert.Equal(t, 3, stats.OrdersToday)
	assert.Equal(t, 40, stats.TotalProducts)
	assert.Equal(t, 6, stats.LowStockCount)
	assert.Equal(t, 2, stats.ExpiringSoonCount)
	assert.Equal(t, critical, stats.CriticalStockItems)
	assert.Equal(t, recent, stats.RecentOrders)

	require.Len(t, stats.RevenueSeries, 7)
	// Daily buckets run oldest to newest; the two orders land on the last
	// two days.
	var total float64
	for _, b := range stats.RevenueSeries {
		total += b.Revenue
	}
	assert.Equal(t, 50.0, total)
	assert.Equal(t, 30.0, stats.RevenueSeries[6].Revenue)
	assert.Equal(t, 20.0, stats.RevenueSeries[5].Revenue)

	mockOrderRepo.AssertExpectations(t)
	mockProductRepo.AssertExpectations(t)
}

func TestDashboardService_Stats_DegradesOnFailure(t *testing.T) {
	ctx := context.Background()
	mockOrderRepo := new(MockOrderRepository)
	mockProductRepo := new(MockProductRepository)
	service := newDashboardForTest(mockOrderRepo, mockProductRepo)

	dbErr := errors.New("connection refused")
	mockOrderRepo.On("TotalRevenue", ctx).Return(0.0, dbErr)
	mockOrderRepo.On("CountSince", ctx, mock.AnythingOfType("time.Time")).Return(0, dbErr)
	mockProductRepo.On("Count", ctx).Return(0, dbErr)
	mockProductRepo.On("CountBelowStock", ctx, 10).Return(0, dbErr)
	mockProductRepo.On("CountExpiringWithin", ctx, 7*24*time.Hour).Return(0, dbErr)
	mockProductRepo.On("ListBelowStock", ctx, 5, 10).Return(nil, dbErr)
	mockOrderRepo.On("ListSince", ctx, mock.AnythingOfType("time.Time")).Return(nil, dbErr)
	mockOrderRepo.On("ListRecent", ctx, 5).Return(nil, dbErr)

	stats := service.Stats(ctx, analytics.Range24H)

	assert.Zero(t, stats.TotalRevenue)
	assert.Zero(t, stats.OrdersToday)
	assert.Zero(t, stats.TotalProducts)
	assert.Zero(t, stats.LowStockCount)
	assert.Zero(t, stats.ExpiringSoonCount)
	assert.Empty(t, stats.CriticalStockItems)
	assert.Empty(t, stats.RecentOrders)

	// The series is still zero-seeded so charts render.
	require.Len(t, stats.RevenueSeries, 24)
	for _, b := range stats.RevenueSeries {
		assert.Zero(t, b.Revenue)
	}
}
