package router

import (
	"net/http"

	"github.com/evyataryagoni/geolocate/internal/handler"
	"github.com/evyataryagoni/geolocate/internal/limiter"
	"github.com/evyataryagoni/geolocate/internal/logger"
	"github.com/evyataryagoni/geolocate/internal/metrics"
	custommiddleware "github.com/evyataryagoni/geolocate/internal/middleware"
	v1 "github.com/evyataryagoni/geolocate/internal/router/v1"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter creates and configures the chi router with all middleware and
// routes. Middleware order matters: request ID first, then logging, then
// rate limiting, then metrics.
func SetupRouter(locationHandler *handler.LocationHandler, rateLimiter limiter.Limiter, m *metrics.Metrics, log *logger.Logger) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(custommiddleware.LoggingMiddleware(log))
	r.Use(middleware.Recoverer)
	r.Use(custommiddleware.RateLimitMiddleware(rateLimiter))
	r.Use(custommiddleware.MetricsMiddleware(m))

	// Versioned API routes under /v1.
	r.Mount("/v1", v1.SetupRoutes(locationHandler))

	// Health check endpoint for load balancers and monitoring.
	r.Get("/health", healthCheckHandler)

	// Prometheus metrics endpoint.
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
