package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/utafrali/shopmobile/pkg/health"
	"github.com/utafrali/shopmobile/pkg/middleware"
)

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(
	handler *StorefrontHandler,
	healthHandler *health.Handler,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Correlation-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Storefront API endpoints
	r.Route("/api/v1/storefront", func(r chi.Router) {
		r.Get("/categories", handler.ListCategories)
		r.Get("/products", handler.SearchProducts)

		r.Get("/cart", handler.GetCart)
		r.Post("/cart/items", handler.AddToCart)

		r.Get("/wishlist", handler.GetWishlist)
		r.Post("/wishlist/toggle", handler.ToggleWishlist)

		r.Post("/checkout", handler.Checkout)
	})

	return r
}
