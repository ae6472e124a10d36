package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/evyataryagoni/geolocate/internal/models"
	"github.com/evyataryagoni/geolocate/internal/provider"
	"github.com/evyataryagoni/geolocate/internal/service"
)

func newTestHandler(p provider.Provider) *LocationHandler {
	return NewLocationHandler(service.NewLocationService(p, nil, nil))
}

func decodeLocation(t *testing.T, rec *httptest.ResponseRecorder) models.Location {
	t.Helper()

	var location models.Location
	if err := json.NewDecoder(rec.Body).Decode(&location); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return location
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()

	var resp models.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	return resp
}

func TestLocationHandler_Locate_Success(t *testing.T) {
	h := newTestHandler(provider.NewMockProvider())

	req := httptest.NewRequest(http.MethodGet, "/v1/locate?ip=198.51.100.10", nil)
	rec := httptest.NewRecorder()

	h.Locate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON content type, got %q", ct)
	}

	location := decodeLocation(t, rec)
	if location.IP != "198.51.100.10" {
		t.Errorf("unexpected IP: %q", location.IP)
	}
	if location.City == nil || *location.City != "Miami" {
		t.Errorf("unexpected city: %v", location.City)
	}
	if location.CountryCode3 == nil || *location.CountryCode3 != "USA" {
		t.Errorf("unexpected alpha-3 code: %v", location.CountryCode3)
	}
	if location.Formatted != "Miami, Florida" {
		t.Errorf("unexpected formatted value: %q", location.Formatted)
	}
}

func TestLocationHandler_Locate_InvalidIP(t *testing.T) {
	h := newTestHandler(provider.NewMockProvider())

	req := httptest.NewRequest(http.MethodGet, "/v1/locate?ip=not-an-ip", nil)
	rec := httptest.NewRecorder()

	h.Locate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Error == "" {
		t.Error("expected error message in response body")
	}
}

func TestLocationHandler_Locate_NotFound(t *testing.T) {
	h := newTestHandler(provider.NewEmptyMockProvider())

	req := httptest.NewRequest(http.MethodGet, "/v1/locate?ip=203.0.113.99", nil)
	rec := httptest.NewRecorder()

	h.Locate(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestLocationHandler_Locate_InferredFromForwardedFor(t *testing.T) {
	mock := provider.NewMockProvider()
	h := newTestHandler(mock)

	req := httptest.NewRequest(http.MethodGet, "/v1/locate", nil)
	req.Header.Set("X-Forwarded-For", "198.51.100.20, 10.0.0.1")
	rec := httptest.NewRecorder()

	h.Locate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	// Only the client entry of the proxy chain counts.
	if len(mock.RecordCalls) != 1 || mock.RecordCalls[0] != "198.51.100.20" {
		t.Errorf("unexpected record calls: %v", mock.RecordCalls)
	}
	if location := decodeLocation(t, rec); location.City == nil || *location.City != "London" {
		t.Errorf("unexpected city: %v", location.City)
	}
}

func TestLocationHandler_Locate_FallsBackToPeerAddress(t *testing.T) {
	mock := provider.NewMockProvider()
	mock.Records["192.0.2.1"] = mock.Records["198.51.100.10"]
	mock.CountryNames["192.0.2.1"] = "United States"
	mock.CountryCodes2["192.0.2.1"] = "US"
	h := newTestHandler(mock)

	// httptest.NewRequest sets RemoteAddr to 192.0.2.1:1234.
	req := httptest.NewRequest(http.MethodGet, "/v1/locate", nil)
	rec := httptest.NewRecorder()

	h.Locate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	// Port must be stripped before the lookup.
	if len(mock.RecordCalls) != 1 || mock.RecordCalls[0] != "192.0.2.1" {
		t.Errorf("unexpected record calls: %v", mock.RecordCalls)
	}
}

func TestLocationHandler_Locate_OverrideBeatsHeaders(t *testing.T) {
	mock := provider.NewMockProvider()
	h := newTestHandler(mock)

	req := httptest.NewRequest(http.MethodGet, "/v1/locate?ip=198.51.100.10", nil)
	req.Header.Set("X-Forwarded-For", "198.51.100.20")
	rec := httptest.NewRecorder()

	h.Locate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if len(mock.RecordCalls) != 1 || mock.RecordCalls[0] != "198.51.100.10" {
		t.Errorf("expected override IP to win, got calls: %v", mock.RecordCalls)
	}
}

func TestLocationHandler_Locate_NoSubjectIP(t *testing.T) {
	h := newTestHandler(provider.NewMockProvider())

	req := httptest.NewRequest(http.MethodGet, "/v1/locate", nil)
	req.RemoteAddr = ""
	rec := httptest.NewRecorder()

	h.Locate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}
