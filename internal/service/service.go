package service

import (
	"context"

	"fasttrack/internal/analytics"
	"fasttrack/internal/model"
	"fasttrack/internal/repository"

	"github.com/google/uuid"
)

// CatalogService defines read operations over the product catalogue.
type CatalogService interface {
	// ListProducts retrieves products matching the filter.
	ListProducts(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error)

	// GetProduct retrieves a single product by ID.
	GetProduct(ctx context.Context, id int64) (*model.Product, error)

	// ListDepartments retrieves all departments.
	ListDepartments(ctx context.Context) ([]model.Department, error)
}

// CheckoutService converts a cart plus shipping form into a persisted order.
type CheckoutService interface {
	// PlaceOrder validates the submission and persists the order with its
	// items. Every failure is converted to a result; nothing propagates.
	PlaceOrder(ctx context.Context, req *model.CheckoutRequest) model.ActionResult

	// GetOrder retrieves an order with its items, or nil if not found.
	GetOrder(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error)

	// ListOrdersByEmail retrieves a customer's order history.
	ListOrdersByEmail(ctx context.Context, email string) ([]model.Order, error)
}

// CreateProductRequest carries the raw admin product form. Price and stock
// arrive as strings and are parsed and bounds-checked here.
type CreateProductRequest struct {
	Name         string `json:"name"`
	Price        string `json:"price"`
	Stock        string `json:"stock"`
	ImageURL     string `json:"image_url"`
	DepartmentID string `json:"department_id"`
}

// RestockRequest carries the raw admin restock form.
type RestockRequest struct {
	ProductID string `json:"product_id"`
	Quantity  string `json:"quantity"`
}

// InventoryService defines admin mutations on the product catalogue. Every
// operation requires a staff session; anything else is rejected with no
// partial effect.
type InventoryService interface {
	CreateProduct(ctx context.Context, session model.Session, req *CreateProductRequest) model.ActionResult
	RestockProduct(ctx context.Context, session model.Session, req *RestockRequest) model.ActionResult
	DeleteProduct(ctx context.Context, session model.Session, productID int64) model.ActionResult
}

// DashboardStats is the staff dashboard aggregate view.
type DashboardStats struct {
	TotalRevenue       float64            `json:"total_revenue"`
	OrdersToday        int                `json:"orders_today"`
	TotalProducts      int                `json:"total_products"`
	LowStockCount      int                `json:"low_stock_count"`
	ExpiringSoonCount  int                `json:"expiring_soon_count"`
	CriticalStockItems []model.Product    `json:"critical_stock_items"`
	RevenueSeries      []analytics.Bucket `json:"revenue_series"`
	RecentOrders       []model.Order      `json:"recent_orders"`
}

// DashboardService produces read-only aggregates for the staff dashboard.
type DashboardService interface {
	// Stats computes the dashboard view over the given time range. Fetch
	// failures degrade to zero values; the dashboard never errors.
	Stats(ctx context.Context, timeRange analytics.TimeRange) DashboardStats
}
