package router

import (
	"net/http"

	"fasttrack/internal/handler"
	"fasttrack/internal/metrics"
	"fasttrack/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	productHandler *handler.ProductHandler,
	orderHandler *handler.OrderHandler,
	cartHandler *handler.CartHandler,
	adminHandler *handler.AdminHandler,
	serverMetrics *metrics.ServerMetrics,
	jwtSecret string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Prometheus scrape endpoint
	mux.Handle("GET /metrics", metrics.Handler())

	// Storefront catalogue
	mux.HandleFunc("GET /api/products", productHandler.List)
	mux.HandleFunc("GET /api/products/{id}", productHandler.GetByID)
	mux.HandleFunc("GET /api/departments", productHandler.Departments)

	// Checkout and order history
	mux.HandleFunc("POST /api/orders", orderHandler.Create)
	mux.HandleFunc("GET /api/orders/{id}", orderHandler.GetByID)
	mux.HandleFunc("GET /api/my-orders", orderHandler.MyOrders)

	// Session cart
	mux.HandleFunc("GET /api/cart", cartHandler.Get)
	mux.HandleFunc("DELETE /api/cart", cartHandler.Clear)
	mux.HandleFunc("POST /api/cart/items", cartHandler.AddItem)
	mux.HandleFunc("PUT /api/cart/items/{id}", cartHandler.SetQuantity)
	mux.HandleFunc("DELETE /api/cart/items/{id}", cartHandler.RemoveItem)
	mux.HandleFunc("POST /api/cart/items/{id}/decrement", cartHandler.DecrementItem)

	// Staff surface, gated on the resolved session role
	staff := middleware.RequireStaff(logger)
	mux.Handle("POST /api/admin/products", staff(http.HandlerFunc(adminHandler.CreateProduct)))
	mux.Handle("POST /api/admin/products/{id}/restock", staff(http.HandlerFunc(adminHandler.RestockProduct)))
	mux.Handle("DELETE /api/admin/products/{id}", staff(http.HandlerFunc(adminHandler.DeleteProduct)))
	mux.Handle("GET /api/admin/dashboard", staff(http.HandlerFunc(adminHandler.Dashboard)))

	// Apply middleware in order: Recovery -> Logging -> Metrics -> CORS -> Session
	var h http.Handler = mux
	h = middleware.Session(jwtSecret, logger)(h)
	h = middleware.CORS(h)
	h = middleware.Metrics(serverMetrics)(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
