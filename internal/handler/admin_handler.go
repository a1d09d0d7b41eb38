package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"fasttrack/internal/analytics"
	"fasttrack/internal/middleware"
	"fasttrack/internal/model"
	"fasttrack/internal/service"

	"github.com/rs/zerolog"
)

// AdminHandler handles the staff inventory and dashboard HTTP requests.
type AdminHandler struct {
	inventory service.InventoryService
	dashboard service.DashboardService
	logger    zerolog.Logger
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(inventory service.InventoryService, dashboard service.DashboardService, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		inventory: inventory,
		dashboard: dashboard,
		logger:    logger.With().Str("handler", "admin").Logger(),
	}
}

// CreateProduct handles POST /api/admin/products requests.
func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req service.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	session := middleware.SessionFrom(r.Context())
	writeResult(w, h.inventory.CreateProduct(r.Context(), session, &req))
}

// RestockProduct handles POST /api/admin/products/{id}/restock requests.
func (h *AdminHandler) RestockProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Quantity string `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	session := middleware.SessionFrom(r.Context())
	writeResult(w, h.inventory.RestockProduct(r.Context(), session, &service.RestockRequest{
		ProductID: r.PathValue("id"),
		Quantity:  req.Quantity,
	}))
}

// DeleteProduct handles DELETE /api/admin/products/{id} requests.
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeResult(w, model.Failure(model.ErrProductNotFound))
		return
	}

	session := middleware.SessionFrom(r.Context())
	writeResult(w, h.inventory.DeleteProduct(r.Context(), session, productID))
}

// Dashboard handles GET /api/admin/dashboard requests. The range query
// parameter defaults to the last 7 days.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	timeRange := analytics.Range7D
	if s := r.URL.Query().Get("range"); s != "" {
		parsed, err := analytics.ParseRange(s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid range parameter", h.logger)
			return
		}
		timeRange = parsed
	}

	writeJSON(w, http.StatusOK, h.dashboard.Stats(r.Context(), timeRange))
}
