package provider

import (
	"fmt"

	"github.com/evyataryagoni/geolocate/internal/models"
)

// CountryCodeCall records one LookupCountryCode invocation.
type CountryCodeCall struct {
	IP      string
	Letters int
}

// RegionCall records one LookupRegionName or LookupTimezone invocation.
type RegionCall struct {
	CountryCode2 string
	RegionCode   string
}

// MockProvider is a test double for the Provider interface. Every capability
// reads from its own map and logs its calls, so tests can assert both results
// and how often the provider was actually consulted (the caching layer's
// whole contract is about the latter).
//
// Region and timezone maps are keyed "CC2:REGION", e.g. "US:FL".
type MockProvider struct {
	Records       map[string]*models.GeoRecord
	CountryNames  map[string]string
	CountryCodes2 map[string]string
	CountryCodes3 map[string]string
	Continents    map[string]string
	RegionNames   map[string]string
	Timezones     map[string]string

	// Call logs for verification in tests.
	RecordCalls      []string
	CountryNameCalls []string
	CountryCodeCalls []CountryCodeCall
	ContinentCalls   []string
	RegionNameCalls  []RegionCall
	TimezoneCalls    []RegionCall
	CloseCalled      bool

	// Control behavior for error scenarios.
	LookupError error
	CloseError  error
}

func floatPtr(v float64) *float64 { return &v }

// NewMockProvider creates a mock pre-populated with the standard test IPs.
func NewMockProvider() *MockProvider {
	m := NewEmptyMockProvider()

	m.Records["198.51.100.10"] = &models.GeoRecord{
		IP:         "198.51.100.10",
		City:       "Miami",
		RegionCode: "FL",
		PostalCode: "33101",
		Latitude:   floatPtr(25.7743),
		Longitude:  floatPtr(-80.1937),
		AreaCode:   305,
	}
	m.CountryNames["198.51.100.10"] = "United States"
	m.CountryCodes2["198.51.100.10"] = "US"
	m.CountryCodes3["198.51.100.10"] = "USA"
	m.Continents["198.51.100.10"] = "NA"

	m.Records["198.51.100.20"] = &models.GeoRecord{
		IP:         "198.51.100.20",
		City:       "London",
		PostalCode: "EC1A",
		Latitude:   floatPtr(51.5074),
		Longitude:  floatPtr(-0.1278),
	}
	m.CountryNames["198.51.100.20"] = "United Kingdom"
	m.CountryCodes2["198.51.100.20"] = "GB"
	m.CountryCodes3["198.51.100.20"] = "GBR"
	m.Continents["198.51.100.20"] = "EU"

	// Record present but with an empty city.
	m.Records["198.51.100.30"] = &models.GeoRecord{
		IP:        "198.51.100.30",
		Latitude:  floatPtr(30.0444),
		Longitude: floatPtr(31.2357),
	}
	m.CountryNames["198.51.100.30"] = "Egypt"
	m.CountryCodes2["198.51.100.30"] = "EG"
	m.CountryCodes3["198.51.100.30"] = "EGY"
	m.Continents["198.51.100.30"] = "AF"

	m.RegionNames["US:FL"] = "Florida"
	m.Timezones["US:FL"] = "America/New_York"
	m.RegionNames["CA:ON"] = "Ontario"
	m.Timezones["CA:ON"] = "America/Toronto"

	return m
}

// NewEmptyMockProvider creates a mock with no data, for "not found" tests.
func NewEmptyMockProvider() *MockProvider {
	return &MockProvider{
		Records:       map[string]*models.GeoRecord{},
		CountryNames:  map[string]string{},
		CountryCodes2: map[string]string{},
		CountryCodes3: map[string]string{},
		Continents:    map[string]string{},
		RegionNames:   map[string]string{},
		Timezones:     map[string]string{},
	}
}

// LookupRecord implements the Provider interface.
func (m *MockProvider) LookupRecord(ip string) (*models.GeoRecord, error) {
	m.RecordCalls = append(m.RecordCalls, ip)
	if m.LookupError != nil {
		return nil, m.LookupError
	}
	record, exists := m.Records[ip]
	if !exists {
		return nil, ErrNotFound
	}
	return record, nil
}

// LookupCountryName implements the Provider interface.
func (m *MockProvider) LookupCountryName(ip string) (string, error) {
	m.CountryNameCalls = append(m.CountryNameCalls, ip)
	if m.LookupError != nil {
		return "", m.LookupError
	}
	name, exists := m.CountryNames[ip]
	if !exists {
		return "", ErrNotFound
	}
	return name, nil
}

// LookupCountryCode implements the Provider interface.
func (m *MockProvider) LookupCountryCode(ip string, letters int) (string, error) {
	m.CountryCodeCalls = append(m.CountryCodeCalls, CountryCodeCall{IP: ip, Letters: letters})
	if m.LookupError != nil {
		return "", m.LookupError
	}
	var codes map[string]string
	switch letters {
	case 2:
		codes = m.CountryCodes2
	case 3:
		codes = m.CountryCodes3
	default:
		return "", fmt.Errorf("country code length must be 2 or 3, got %d", letters)
	}
	code, exists := codes[ip]
	if !exists {
		return "", ErrNotFound
	}
	return code, nil
}

// LookupContinentCode implements the Provider interface.
func (m *MockProvider) LookupContinentCode(ip string) (string, error) {
	m.ContinentCalls = append(m.ContinentCalls, ip)
	if m.LookupError != nil {
		return "", m.LookupError
	}
	code, exists := m.Continents[ip]
	if !exists {
		return "", ErrNotFound
	}
	return code, nil
}

// LookupRegionName implements the Provider interface.
func (m *MockProvider) LookupRegionName(countryCode2, regionCode string) (string, error) {
	m.RegionNameCalls = append(m.RegionNameCalls, RegionCall{CountryCode2: countryCode2, RegionCode: regionCode})
	if m.LookupError != nil {
		return "", m.LookupError
	}
	name, exists := m.RegionNames[countryCode2+":"+regionCode]
	if !exists {
		return "", ErrNotFound
	}
	return name, nil
}

// LookupTimezone implements the Provider interface.
func (m *MockProvider) LookupTimezone(countryCode2, regionCode string) (string, error) {
	m.TimezoneCalls = append(m.TimezoneCalls, RegionCall{CountryCode2: countryCode2, RegionCode: regionCode})
	if m.LookupError != nil {
		return "", m.LookupError
	}
	tz, exists := m.Timezones[countryCode2+":"+regionCode]
	if !exists {
		return "", ErrNotFound
	}
	return tz, nil
}

// Close implements the Provider interface.
func (m *MockProvider) Close() error {
	m.CloseCalled = true
	return m.CloseError
}
