package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"fasttrack/internal/cart"
	"fasttrack/internal/middleware"
	"fasttrack/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// cartCookieName carries the anonymous cart key for guests.
const cartCookieName = "fasttrack_cart"

const cartCookieMaxAge = 30 * 24 * 60 * 60

// CartHandler handles the session-scoped cart HTTP requests.
type CartHandler struct {
	snapshots cart.SnapshotStore
	logger    zerolog.Logger
}

// NewCartHandler creates a new cart handler backed by the given snapshot
// store.
func NewCartHandler(snapshots cart.SnapshotStore, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		snapshots: snapshots,
		logger:    logger.With().Str("handler", "cart").Logger(),
	}
}

// cartView is the cart response body.
type cartView struct {
	Items     []model.CartItem `json:"items"`
	Total     float64          `json:"total"`
	ItemCount int              `json:"item_count"`
}

// open rehydrates the caller's cart. Signed-in users are keyed by user ID;
// guests get a cart cookie. Staff sessions do not shop, so their carts never
// persist.
func (h *CartHandler) open(w http.ResponseWriter, r *http.Request) *cart.Store {
	session := middleware.SessionFrom(r.Context())

	if session.IsStaff() {
		return cart.Open(r.Context(), "staff", cart.NewNopStore(), h.logger)
	}

	key := ""
	if session.UserID != "" {
		key = "user-" + session.UserID
	} else if c, err := r.Cookie(cartCookieName); err == nil && c.Value != "" {
		key = c.Value
	} else {
		key = uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     cartCookieName,
			Value:    key,
			Path:     "/",
			MaxAge:   cartCookieMaxAge,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	return cart.Open(r.Context(), key, h.snapshots, h.logger)
}

func (h *CartHandler) view(store *cart.Store) cartView {
	return cartView{
		Items:     store.Items(),
		Total:     store.Total(),
		ItemCount: store.ItemCount(),
	}
}

// Get handles GET /api/cart requests.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	store := h.open(w, r)
	writeJSON(w, http.StatusOK, h.view(store))
}

// AddItem handles POST /api/cart/items requests. The body is the product
// snapshot captured at browse time.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var product model.ProductSnapshot
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	if product.ID == 0 {
		writeError(w, http.StatusBadRequest, "product ID is required", h.logger)
		return
	}

	store := h.open(w, r)
	store.Add(r.Context(), product)
	writeJSON(w, http.StatusOK, h.view(store))
}

// RemoveItem handles DELETE /api/cart/items/{id} requests.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product ID", h.logger)
		return
	}

	store := h.open(w, r)
	store.Remove(r.Context(), productID)
	writeJSON(w, http.StatusOK, h.view(store))
}

// DecrementItem handles POST /api/cart/items/{id}/decrement requests.
func (h *CartHandler) DecrementItem(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product ID", h.logger)
		return
	}

	store := h.open(w, r)
	store.Decrement(r.Context(), productID)
	writeJSON(w, http.StatusOK, h.view(store))
}

// SetQuantity handles PUT /api/cart/items/{id} requests.
func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product ID", h.logger)
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	store := h.open(w, r)
	store.SetQuantity(r.Context(), productID, req.Quantity)
	writeJSON(w, http.StatusOK, h.view(store))
}

// Clear handles DELETE /api/cart requests.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	store := h.open(w, r)
	store.Clear(r.Context())
	writeJSON(w, http.StatusOK, h.view(store))
}
