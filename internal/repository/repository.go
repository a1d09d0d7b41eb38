package repository

import (
	"context"
	"time"

	"fasttrack/internal/model"

	"github.com/google/uuid"
)

// ProductFilter narrows catalogue listings.
type ProductFilter struct {
	// DepartmentSlug filters by department; empty or "all" means no filter.
	DepartmentSlug string
	// Search is a case-insensitive substring match on the product name.
	Search string
}

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// List retrieves products matching the filter, newest first.
	List(ctx context.Context, filter ProductFilter) ([]model.Product, error)

	// GetByID retrieves a single product, or nil if it does not exist.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// Create inserts a new product and fills in its generated ID.
	Create(ctx context.Context, p *model.Product) error

	// Delete removes a product row. Existing order items keep their
	// product reference; it simply dangles afterwards.
	Delete(ctx context.Context, id int64) error

	// IncrementStock atomically adds qty to the product's stock level as a
	// single server-side update and returns the resulting stock. It must
	// never be implemented as a read-then-write pair.
	IncrementStock(ctx context.Context, id int64, qty int) (int, error)

	// Count returns the total number of products.
	Count(ctx context.Context) (int, error)

	// CountBelowStock counts products with stock below the threshold.
	CountBelowStock(ctx context.Context, threshold int) (int, error)

	// ListBelowStock lists products with stock below the threshold,
	// ascending by stock, capped at limit.
	ListBelowStock(ctx context.Context, threshold, limit int) ([]model.Product, error)

	// CountExpiringWithin counts products whose expiry date falls between
	// now and now+window.
	CountExpiringWithin(ctx context.Context, window time.Duration) (int, error)

	// ListDepartments retrieves all departments.
	ListDepartments(ctx context.Context) ([]model.Department, error)
}

// OrderRepository defines the interface for order data access operations.
// Order and order-item creation are intentionally separate single-table
// writes, not one transaction: an order whose item insert fails is an
// accepted orphan, never rolled back.
type OrderRepository interface {
	// CreateOrder inserts a new order row.
	CreateOrder(ctx context.Context, order *model.Order) error

	// CreateOrderItems inserts the order's line items.
	CreateOrderItems(ctx context.Context, items []model.OrderItem) error

	// GetByID retrieves an order with its items, or nil if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error)

	// ListByEmail retrieves a customer's orders, newest first.
	ListByEmail(ctx context.Context, email string) ([]model.Order, error)

	// ListSince retrieves orders created at or after the given time,
	// oldest first.
	ListSince(ctx context.Context, since time.Time) ([]model.Order, error)

	// ListRecent retrieves the most recent orders, capped at limit.
	ListRecent(ctx context.Context, limit int) ([]model.Order, error)

	// CountSince counts orders created at or after the given time.
	CountSince(ctx context.Context, since time.Time) (int, error)

	// TotalRevenue sums total_amount over all orders.
	TotalRevenue(ctx context.Context) (float64, error)
}
