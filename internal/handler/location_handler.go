package handler

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/evyataryagoni/geolocate/internal/geo"
	"github.com/evyataryagoni/geolocate/internal/models"
	"github.com/evyataryagoni/geolocate/internal/service"
)

// LocationHandler handles HTTP requests for location lookups. It deals with
// HTTP concerns only: parse the request, call the service, shape the JSON
// response. No business logic lives here.
type LocationHandler struct {
	service *service.LocationService
}

// NewLocationHandler creates a new location handler with the given service.
func NewLocationHandler(service *service.LocationService) *LocationHandler {
	return &LocationHandler{
		service: service,
	}
}

// Locate handles GET /v1/locate?ip=<ip>
//
// The ip parameter is optional: when omitted, the subject IP is inferred
// from the request itself (X-Forwarded-For when behind a proxy, otherwise
// the peer address), so a bare GET /v1/locate answers "where am I".
func (h *LocationHandler) Locate(w http.ResponseWriter, r *http.Request) {
	overrideIP := r.URL.Query().Get("ip")

	location, err := h.service.Locate(overrideIP, requestMeta(r))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidIP):
			h.respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrNoSubjectIP):
			h.respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrNotFound):
			h.respondError(w, http.StatusNotFound, err.Error())
		default:
			h.respondError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	h.respondJSON(w, http.StatusOK, location)
}

// requestMeta extracts the ambient request context the geo session resolves
// the subject IP from. X-Forwarded-For may carry a proxy chain
// ("client, proxy1, proxy2"); only the client entry matters. The peer
// address is stripped of its port.
func requestMeta(r *http.Request) geo.RequestMeta {
	meta := geo.RequestMeta{}

	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		meta.ForwardedFor = strings.TrimSpace(first)
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		meta.RemoteAddr = host
	} else {
		meta.RemoteAddr = r.RemoteAddr
	}

	return meta
}

// respondJSON writes a JSON response with the given status code.
func (h *LocationHandler) respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already sent; nothing left to do but report.
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// respondError writes an error response with consistent formatting.
func (h *LocationHandler) respondError(w http.ResponseWriter, statusCode int, message string) {
	h.respondJSON(w, statusCode, models.ErrorResponse{Error: message})
}
