package provider

import (
	"errors"

	"github.com/evyataryagoni/geolocate/internal/models"
)

// ErrNotFound is returned by every lookup method when the provider has no
// data for the given input. It is the only "expected" lookup outcome besides
// success; the geo session normalizes it (and empty-string results) to an
// absent field rather than an error.
var ErrNotFound = errors.New("no geolocation data found")

// Provider defines the interface for the external geolocation database.
// Allows multiple backends (MaxMind, CSV, MySQL, Redis) and easy testing
// with mocks.
//
// Record lookups and country/continent lookups are separate entry points:
// a backend may know the country of an IP without carrying a full city-level
// record for it. Region-name and timezone lookups are not keyed by IP at all;
// they translate a (country, region) code pair through the provider's region
// tables, which in practice cover only the US and Canada.
type Provider interface {
	// LookupRecord returns the raw city-level record for an IP.
	LookupRecord(ip string) (*models.GeoRecord, error)

	// LookupCountryName returns the full country name for an IP.
	LookupCountryName(ip string) (string, error)

	// LookupCountryCode returns the ISO 3166 country code for an IP.
	// letters selects alpha-2 or alpha-3; any other value is rejected.
	LookupCountryCode(ip string, letters int) (string, error)

	// LookupContinentCode returns the two-letter continent code for an IP.
	LookupContinentCode(ip string) (string, error)

	// LookupRegionName translates a (alpha-2 country, region code) pair into
	// a region name, e.g. ("US", "FL") -> "Florida".
	LookupRegionName(countryCode2, regionCode string) (string, error)

	// LookupTimezone translates a (alpha-2 country, region code) pair into
	// an IANA timezone name, e.g. ("US", "FL") -> "America/New_York".
	LookupTimezone(countryCode2, regionCode string) (string, error)

	// Close cleans up resources (database readers, connections, etc.)
	Close() error
}
