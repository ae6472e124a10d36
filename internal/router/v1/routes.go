package v1

import (
	"github.com/evyataryagoni/geolocate/internal/handler"
	"github.com/go-chi/chi/v5"
)

// SetupRoutes configures all v1 API routes.
func SetupRoutes(locationHandler *handler.LocationHandler) chi.Router {
	r := chi.NewRouter()

	// GET /v1/locate?ip=<ip>   (ip optional: infer from the request)
	r.Get("/locate", locationHandler.Locate)

	return r
}
