package service

import (
	"context"
	"fmt"
	"time"

	"fasttrack/internal/cache"
	"fasttrack/internal/cart"
	"fasttrack/internal/events"
	"fasttrack/internal/model"
	"fasttrack/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// checkoutService implements CheckoutService.
type checkoutService struct {
	orderRepo repository.OrderRepository
	views     *cache.ViewCache
	publisher events.Publisher
	logger    zerolog.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	orderRepo repository.OrderRepository,
	views *cache.ViewCache,
	publisher events.Publisher,
	logger zerolog.Logger,
) CheckoutService {
	return &checkoutService{
		orderRepo: orderRepo,
		views:     views,
		publisher: publisher,
		logger:    logger.With().Str("service", "checkout").Logger(),
	}
}

// requiredFields lists the checkout form fields that must be non-empty, in
// validation order.
var requiredFields = []struct {
	name  string
	value func(*model.CheckoutRequest) string
}{
	{"customer_name", func(r *model.CheckoutRequest) string { return r.CustomerName }},
	{"email", func(r *model.CheckoutRequest) string { return r.Email }},
	{"shipping_address", func(r *model.CheckoutRequest) string { return r.ShippingAddress }},
	{"city", func(r *model.CheckoutRequest) string { return r.City }},
	{"phone", func(r *model.CheckoutRequest) string { return r.Phone }},
}

// PlaceOrder validates the submission, persists the order, then its items.
// The two writes are deliberately separate single-table operations: if the
// item insert fails after the order row exists, the orphaned order is kept
// as-is. Stock is not decremented here; under the cash-on-delivery model
// inventory is reconciled by restocks.
func (s *checkoutService) PlaceOrder(ctx context.Context, req *model.CheckoutRequest) model.ActionResult {
	if req == nil {
		return model.Failure(model.ErrInvalidCart)
	}

	for _, f := range requiredFields {
		if f.value(req) == "" {
			s.logger.Warn().Str("field", f.name).Msg("checkout missing required field")
			return model.Failure(model.MissingFieldError(f.name))
		}
	}

	items, err := cart.Decode([]byte(req.Cart))
	if err != nil {
		s.logger.Warn().Err(err).Msg("checkout received malformed cart")
		return model.Failure(model.ErrInvalidCart)
	}
	if len(items) == 0 {
		return model.Failure(model.ErrEmptyCart)
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			s.logger.Warn().Int64("product_id", item.Product.ID).Int("quantity", item.Quantity).
				Msg("checkout received non-positive quantity")
			return model.Failure(model.ErrInvalidCart)
		}
	}

	var totalAmount float64
	for _, item := range items {
		totalAmount += item.Product.Price * float64(item.Quantity)
	}

	order := &model.Order{
		ID:              uuid.New(),
		CustomerName:    req.CustomerName,
		Email:           req.Email,
		ShippingAddress: req.ShippingAddress,
		City:            req.City,
		Phone:           req.Phone,
		TotalAmount:     totalAmount,
		Status:          model.StatusCompleted,
		PaymentMethod:   model.PaymentMethodCOD,
		CreatedAt:       time.Now(),
	}

	if err := s.orderRepo.CreateOrder(ctx, order); err != nil {
		s.logger.Error().Err(err).Msg("order creation failed")
		return model.ActionResult{Success: false, Message: "Failed to create order. Please try again."}
	}

	orderItems := make([]model.OrderItem, len(items))
	for i, item := range items {
		orderItems[i] = model.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: item.Product.ID,
			Quantity:  item.Quantity,
			UnitPrice: item.Product.Price,
		}
	}

	if err := s.orderRepo.CreateOrderItems(ctx, orderItems); err != nil {
		// The order row already exists; it stays as an orphan.
		s.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Int("item_count", len(orderItems)).
			Msg("order item creation failed after order was created")
		return model.ActionResult{Success: false, Message: "Failed to add order items. Please try again."}
	}

	s.views.Invalidate(cache.KeyCatalog)
	s.publisher.Publish(ctx, events.Event{Type: events.TypeOrderCreated, EntityID: order.ID.String()})

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Int("item_count", len(orderItems)).
		Float64("total_amount", totalAmount).
		Msg("order placed")

	id := order.ID
	return model.ActionResult{
		Success: true,
		Message: fmt.Sprintf("Order #%s placed successfully! Thank you for shopping with FastTrack.", order.ID),
		OrderID: &id,
	}
}

// GetOrder retrieves an order by its ID with all items.
func (s *checkoutService) GetOrder(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error) {
	order, items, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if order == nil {
		return nil, nil
	}

	resp := OrderResponseOf(order, items)
	return &resp, nil
}

// ListOrdersByEmail retrieves a customer's order history.
func (s *checkoutService) ListOrdersByEmail(ctx context.Context, email string) ([]model.Order, error) {
	if email == "" {
		return []model.Order{}, nil
	}

	orders, err := s.orderRepo.ListByEmail(ctx, email)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list orders by email")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, nil
}

// OrderResponseOf pairs an order with its items.
func OrderResponseOf(order *model.Order, items []model.OrderItem) model.OrderResponse {
	if items == nil {
		items = []model.OrderItem{}
	}
	return model.OrderResponse{Order: *order, Items: items}
}
