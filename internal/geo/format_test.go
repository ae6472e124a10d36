package geo

import (
	"testing"

	"github.com/evyataryagoni/geolocate/internal/models"
	"github.com/evyataryagoni/geolocate/internal/provider"
)

// formatFixture describes one provider state for a single IP.
type formatFixture struct {
	record      *models.GeoRecord // nil = no record at all
	countryName string
	cc2         string
	regionName  string // entry for cc2 + the record's region code
}

const formatTestIP = "203.0.113.77"

func newFormatSession(t *testing.T, fx formatFixture) *Session {
	t.Helper()

	mock := provider.NewEmptyMockProvider()
	if fx.record != nil {
		fx.record.IP = formatTestIP
		mock.Records[formatTestIP] = fx.record
	}
	if fx.countryName != "" {
		mock.CountryNames[formatTestIP] = fx.countryName
	}
	if fx.cc2 != "" {
		mock.CountryCodes2[formatTestIP] = fx.cc2
	}
	if fx.regionName != "" && fx.record != nil {
		mock.RegionNames[fx.cc2+":"+fx.record.RegionCode] = fx.regionName
	}

	session := newTestSession(t, mock, RequestMeta{})
	session.SetIP(formatTestIP)
	return session
}

func TestSession_Formatted(t *testing.T) {
	tests := []struct {
		name     string
		fixture  formatFixture
		expected string
	}{
		{
			name: "US city and region",
			fixture: formatFixture{
				record:      &models.GeoRecord{City: "Miami", RegionCode: "FL"},
				countryName: "United States",
				cc2:         "US",
				regionName:  "Florida",
			},
			expected: "Miami, Florida",
		},
		{
			name: "CA city and region",
			fixture: formatFixture{
				record:      &models.GeoRecord{City: "Toronto", RegionCode: "ON"},
				countryName: "Canada",
				cc2:         "CA",
				regionName:  "Ontario",
			},
			expected: "Toronto, Ontario",
		},
		{
			name: "US city without region falls back to country",
			fixture: formatFixture{
				record:      &models.GeoRecord{City: "Miami"},
				countryName: "United States",
				cc2:         "US",
			},
			expected: "Miami, United States",
		},
		{
			name: "US city without region or country falls back to code",
			fixture: formatFixture{
				record: &models.GeoRecord{City: "Miami"},
				cc2:    "US",
			},
			expected: "Miami, US",
		},
		{
			name: "US region only with country",
			fixture: formatFixture{
				record:      &models.GeoRecord{RegionCode: "FL"},
				countryName: "United States",
				cc2:         "US",
				regionName:  "Florida",
			},
			expected: "Florida, United States",
		},
		{
			name: "US region only without country",
			fixture: formatFixture{
				record:     &models.GeoRecord{RegionCode: "FL"},
				cc2:        "US",
				regionName: "Florida",
			},
			expected: "Florida, US",
		},
		{
			name: "US country only",
			fixture: formatFixture{
				record:      &models.GeoRecord{},
				countryName: "United States",
				cc2:         "US",
			},
			expected: "United States",
		},
		{
			name: "US code only",
			fixture: formatFixture{
				record: &models.GeoRecord{},
				cc2:    "US",
			},
			expected: "US",
		},
		{
			name: "non-NA city and country",
			fixture: formatFixture{
				record:      &models.GeoRecord{City: "London"},
				countryName: "United Kingdom",
				cc2:         "GB",
			},
			expected: "London, United Kingdom",
		},
		{
			name: "non-NA city with code only",
			fixture: formatFixture{
				record: &models.GeoRecord{City: "London"},
				cc2:    "GB",
			},
			expected: "London, GB",
		},
		{
			name: "non-NA city alone",
			fixture: formatFixture{
				record: &models.GeoRecord{City: "London"},
			},
			expected: "London",
		},
		{
			name: "record present but city empty, country only",
			fixture: formatFixture{
				record:      &models.GeoRecord{},
				countryName: "Egypt",
				cc2:         "EG",
			},
			expected: "Egypt",
		},
		{
			name:     "no record at all",
			fixture:  formatFixture{},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := newFormatSession(t, tt.fixture)
			if got := session.Formatted(); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

// TestSession_FormattedUsesCachedFields tests that the formatter rides the
// same per-field cache as the plain accessors: asking for the label after
// the fields adds no provider calls.
func TestSession_FormattedUsesCachedFields(t *testing.T) {
	mock := provider.NewMockProvider()
	session := newTestSession(t, mock, RequestMeta{})
	session.SetIP("198.51.100.10")

	session.City()
	session.Region()
	session.Country()
	session.CountryCode(2)

	records, regions := len(mock.RecordCalls), len(mock.RegionNameCalls)
	names, codes := len(mock.CountryNameCalls), len(mock.CountryCodeCalls)

	if got := session.Formatted(); got != "Miami, Florida" {
		t.Fatalf("expected \"Miami, Florida\", got %q", got)
	}

	if len(mock.RecordCalls) != records || len(mock.RegionNameCalls) != regions ||
		len(mock.CountryNameCalls) != names || len(mock.CountryCodeCalls) != codes {
		t.Error("expected Formatted to reuse cached fields without new provider calls")
	}
}
