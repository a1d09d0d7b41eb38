package handler

import (
	"encoding/json"
	"net/http"

	"fasttrack/internal/middleware"
	"fasttrack/internal/model"
	"fasttrack/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OrderHandler handles checkout and order history HTTP requests.
type OrderHandler struct {
	checkout service.CheckoutService
	logger   zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(checkout service.CheckoutService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		checkout: checkout,
		logger:   logger.With().Str("handler", "order").Logger(),
	}
}

// Create handles POST /api/orders requests. The payload is the checkout
// form: shipping fields plus the serialized cart.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	writeResult(w, h.checkout.PlaceOrder(r.Context(), &req))
}

// GetByID handles GET /api/orders/{id} requests.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order ID format", h.logger)
		return
	}

	order, err := h.checkout.GetOrder(r.Context(), orderID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to retrieve order", h.logger)
		return
	}

	if order == nil {
		writeError(w, http.StatusNotFound, "order not found", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// MyOrders handles GET /api/my-orders requests for the signed-in customer.
func (h *OrderHandler) MyOrders(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFrom(r.Context())
	if !session.IsCustomer() || session.Email == "" {
		writeError(w, http.StatusUnauthorized, "sign in to view your orders", h.logger)
		return
	}

	orders, err := h.checkout.ListOrdersByEmail(r.Context(), session.Email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to retrieve orders", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}
