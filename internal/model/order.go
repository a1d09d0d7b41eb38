package model

import (
	"time"

	"github.com/google/uuid"
)

// Order statuses. Orders are created as "completed" under the
// cash-on-delivery payment model and are never mutated afterwards.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
	StatusRefunded   = "refunded"
)

// PaymentMethodCOD is the only supported payment method.
const PaymentMethodCOD = "COD"

// Order represents a customer order.
type Order struct {
	ID              uuid.UUID `json:"id" db:"id"`
	CustomerName    string    `json:"customer_name" db:"customer_name"`
	Email           string    `json:"email" db:"email"`
	ShippingAddress string    `json:"shipping_address" db:"shipping_address"`
	City            string    `json:"city" db:"city"`
	Phone           string    `json:"phone" db:"phone"`
	TotalAmount     float64   `json:"total_amount" db:"total_amount"`
	Status          string    `json:"status" db:"status"`
	PaymentMethod   string    `json:"payment_method" db:"payment_method"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// OrderItem is an immutable line item snapshotting the unit price paid
// at submission time, independent of the current catalogue price.
type OrderItem struct {
	ID        uuid.UUID `json:"id" db:"id"`
	OrderID   uuid.UUID `json:"order_id" db:"order_id"`
	ProductID int64     `json:"product_id" db:"product_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
	UnitPrice float64   `json:"unit_price" db:"unit_price"`
}

// CheckoutRequest carries the checkout form submission. Cart holds the
// JSON-serialized cart snapshot as submitted by the client.
type CheckoutRequest struct {
	Email           string `json:"email"`
	CustomerName    string `json:"customer_name"`
	ShippingAddress string `json:"shipping_address"`
	City            string `json:"city"`
	Phone           string `json:"phone"`
	Cart            string `json:"cart"`
}

// OrderResponse is the order detail payload: the order plus its items.
type OrderResponse struct {
	Order Order       `json:"order"`
	Items []OrderItem `json:"items"`
}
