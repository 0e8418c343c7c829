package router

import (
	"net/http"

	"bistro/internal/handler"
	"bistro/internal/middleware"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	dishHandler *handler.DishHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	promoHandler *handler.PromoHandler,
	reviewHandler *handler.ReviewHandler,
	favoriteHandler *handler.FavoriteHandler,
	jwtSecret string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	mux.Handle("GET /metrics", promhttp.Handler())

	auth := middleware.BearerAuth(jwtSecret, logger)
	admin := func(h http.HandlerFunc) http.Handler {
		return auth(middleware.RequireAdmin(logger)(h))
	}
	authed := func(h http.HandlerFunc) http.Handler {
		return auth(h)
	}

	// Dish catalogue
	mux.Handle("GET /api/dishes", authed(dishHandler.GetAll))
	mux.Handle("GET /api/dishes/{id}", authed(dishHandler.GetByID))
	mux.Handle("POST /api/dishes", admin(dishHandler.Create))

	// Reviews
	mux.Handle("GET /api/dishes/{id}/reviews", authed(reviewHandler.GetByDish))
	mux.Handle("POST /api/dishes/{id}/reviews", authed(reviewHandler.Create))

	// Cart
	mux.Handle("GET /api/cart", authed(cartHandler.Get))
	mux.Handle("POST /api/cart/{dishID}", authed(cartHandler.Add))
	mux.Handle("PUT /api/cart/items/{itemID}", authed(cartHandler.UpdateQuantity))
	mux.Handle("DELETE /api/cart/items/{itemID}", authed(cartHandler.Remove))

	// Favorites
	mux.Handle("GET /api/favorites", authed(favoriteHandler.Get))
	mux.Handle("POST /api/favorites/{dishID}", authed(favoriteHandler.Add))
	mux.Handle("DELETE /api/favorites/{dishID}", authed(favoriteHandler.Remove))

	// Orders
	mux.Handle("POST /api/orders/checkout", authed(orderHandler.Checkout))
	mux.Handle("GET /api/orders", authed(orderHandler.GetMine))
	mux.Handle("GET /api/orders/{id}", authed(orderHandler.GetByID))
	mux.Handle("PUT /api/orders/{id}/status", admin(orderHandler.UpdateStatus))
	mux.Handle("GET /api/admin/orders", admin(orderHandler.GetAll))

	// Promo codes
	mux.Handle("POST /api/promos/validate", authed(promoHandler.Validate))
	mux.Handle("GET /api/promos", admin(promoHandler.GetAll))
	mux.Handle("POST /api/promos", admin(promoHandler.Create))
	mux.Handle("DELETE /api/promos/{id}", admin(promoHandler.Delete))

	// Apply middleware in order: Recovery -> Logging -> Metrics -> CORS
	var h http.Handler = mux
	h = middleware.CORS(h)
	h = middleware.Metrics(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
