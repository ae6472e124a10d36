package service

import (
	"errors"
	"testing"

	"github.com/evyataryagoni/geolocate/internal/geo"
	"github.com/evyataryagoni/geolocate/internal/provider"
)

func TestLocationService_Locate_Success(t *testing.T) {
	mock := provider.NewMockProvider()
	svc := NewLocationService(mock, nil, nil)

	location, err := svc.Locate("198.51.100.10", geo.RequestMeta{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if location.IP != "198.51.100.10" {
		t.Errorf("expected subject IP echoed back, got %q", location.IP)
	}
	if location.City == nil || *location.City != "Miami" {
		t.Errorf("unexpected city: %v", location.City)
	}
	if location.Country == nil || *location.Country != "United States" {
		t.Errorf("unexpected country: %v", location.Country)
	}
	if location.CountryCode2 == nil || *location.CountryCode2 != "US" {
		t.Errorf("unexpected alpha-2 code: %v", location.CountryCode2)
	}
	if location.CountryCode3 == nil || *location.CountryCode3 != "USA" {
		t.Errorf("unexpected alpha-3 code: %v", location.CountryCode3)
	}
	if location.Region == nil || *location.Region != "Florida" {
		t.Errorf("unexpected region: %v", location.Region)
	}
	if location.Timezone == nil || *location.Timezone != "America/New_York" {
		t.Errorf("unexpected timezone: %v", location.Timezone)
	}
	if location.Latitude == nil || location.Longitude == nil {
		t.Error("expected coordinates present")
	}
	if location.AreaCode == nil || *location.AreaCode != 305 {
		t.Errorf("unexpected area code: %v", location.AreaCode)
	}
	if location.Formatted != "Miami, Florida" {
		t.Errorf("expected formatted \"Miami, Florida\", got %q", location.Formatted)
	}

	// The whole response must cost exactly one record fetch.
	if len(mock.RecordCalls) != 1 {
		t.Errorf("expected 1 record call, got %d", len(mock.RecordCalls))
	}
}

func TestLocationService_Locate_InvalidIP(t *testing.T) {
	tests := []struct {
		name string
		ip   string
	}{
		{"not an ip", "not-an-ip"},
		{"incomplete", "192.168.1"},
		{"out of range", "300.300.300.300"},
		{"trailing dot", "8.8.8.8."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := provider.NewMockProvider()
			svc := NewLocationService(mock, nil, nil)

			_, err := svc.Locate(tt.ip, geo.RequestMeta{})
			if !errors.Is(err, ErrInvalidIP) {
				t.Errorf("expected ErrInvalidIP, got %v", err)
			}
			if len(mock.RecordCalls) != 0 {
				t.Errorf("expected no provider calls for invalid IP, got %d", len(mock.RecordCalls))
			}
		})
	}
}

func TestLocationService_Locate_NotFound(t *testing.T) {
	svc := NewLocationService(provider.NewEmptyMockProvider(), nil, nil)

	_, err := svc.Locate("203.0.113.99", geo.RequestMeta{})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLocationService_Locate_NoSubjectIP(t *testing.T) {
	svc := NewLocationService(provider.NewMockProvider(), nil, nil)

	_, err := svc.Locate("", geo.RequestMeta{})
	if !errors.Is(err, ErrNoSubjectIP) {
		t.Errorf("expected ErrNoSubjectIP, got %v", err)
	}
}

func TestLocationService_Locate_InferredFromMeta(t *testing.T) {
	mock := provider.NewMockProvider()
	svc := NewLocationService(mock, nil, nil)

	location, err := svc.Locate("", geo.RequestMeta{ForwardedFor: "198.51.100.20"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if location.City == nil || *location.City != "London" {
		t.Errorf("expected London via forwarded-for, got %v", location.City)
	}
	// The inferred IP skips syntax validation entirely, so it goes straight
	// to the provider.
	if len(mock.RecordCalls) != 1 || mock.RecordCalls[0] != "198.51.100.20" {
		t.Errorf("unexpected record calls: %v", mock.RecordCalls)
	}
}

func TestLocationService_Locate_NilProvider(t *testing.T) {
	svc := NewLocationService(nil, nil, nil)

	_, err := svc.Locate("8.8.8.8", geo.RequestMeta{})
	if err == nil {
		t.Fatal("expected configuration error for nil provider, got nil")
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidIP) {
		t.Errorf("configuration error must not masquerade as a lookup outcome: %v", err)
	}
}

func TestLocationService_Close(t *testing.T) {
	mock := provider.NewMockProvider()
	svc := NewLocationService(mock, nil, nil)

	if err := svc.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !mock.CloseCalled {
		t.Error("expected provider Close to be called")
	}
}
