package provider

import (
	"fmt"
	"net"

	"github.com/evyataryagoni/geolocate/internal/models"
	"github.com/evyataryagoni/geolocate/internal/provider/regiondata"
	"github.com/oschwald/geoip2-golang"
)

// MaxMindProvider implements Provider over a GeoLite2/GeoIP2 City database
// file. This is the production backend: lookups are local mmap reads, no
// network involved.
//
// GeoIP2 databases carry no telephone area codes, so LookupRecord always
// reports that field as absent with this backend.
type MaxMindProvider struct {
	reader *geoip2.Reader
}

// NewMaxMindProvider opens the database at path.
func NewMaxMindProvider(path string) (*MaxMindProvider, error) {
	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open MaxMind database: %w", err)
	}
	return &MaxMindProvider{reader: reader}, nil
}

// LookupRecord implements the Provider interface.
func (p *MaxMindProvider) LookupRecord(ip string) (*models.GeoRecord, error) {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return nil, ErrNotFound
	}

	city, err := p.reader.City(parsed)
	if err != nil {
		return nil, fmt.Errorf("MaxMind city lookup failed: %w", err)
	}

	record := &models.GeoRecord{
		IP:         ip,
		City:       city.City.Names["en"],
		PostalCode: city.Postal.Code,
	}
	if len(city.Subdivisions) > 0 {
		record.RegionCode = city.Subdivisions[0].IsoCode
	}
	// The database reports (0, 0) when it has no coordinates for a network.
	if city.Location.Latitude != 0 || city.Location.Longitude != 0 {
		lat, long := city.Location.Latitude, city.Location.Longitude
		record.Latitude = &lat
		record.Longitude = &long
	}

	// An unmapped IP comes back as an all-zero struct rather than an error.
	if record.City == "" && record.RegionCode == "" && record.PostalCode == "" &&
		record.Latitude == nil && city.Country.IsoCode == "" {
		return nil, ErrNotFound
	}

	return record, nil
}

func (p *MaxMindProvider) country(ip string) (*geoip2.Country, error) {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return nil, ErrNotFound
	}

	country, err := p.reader.Country(parsed)
	if err != nil {
		return nil, fmt.Errorf("MaxMind country lookup failed: %w", err)
	}
	if country.Country.IsoCode == "" && country.Continent.Code == "" {
		return nil, ErrNotFound
	}

	return country, nil
}

// LookupCountryName implements the Provider interface.
func (p *MaxMindProvider) LookupCountryName(ip string) (string, error) {
	country, err := p.country(ip)
	if err != nil {
		return "", err
	}
	name := country.Country.Names["en"]
	if name == "" {
		return "", ErrNotFound
	}
	return name, nil
}

// LookupCountryCode implements the Provider interface. MaxMind stores only
// alpha-2 codes; alpha-3 is derived from the ISO dataset.
func (p *MaxMindProvider) LookupCountryCode(ip string, letters int) (string, error) {
	if letters != 2 && letters != 3 {
		return "", fmt.Errorf("country code length must be 2 or 3, got %d", letters)
	}

	country, err := p.country(ip)
	if err != nil {
		return "", err
	}
	if country.Country.IsoCode == "" {
		return "", ErrNotFound
	}
	if letters == 2 {
		return country.Country.IsoCode, nil
	}

	code, ok := countryCode(country.Country.IsoCode, 3)
	if !ok {
		return "", ErrNotFound
	}
	return code, nil
}

// LookupContinentCode implements the Provider interface.
func (p *MaxMindProvider) LookupContinentCode(ip string) (string, error) {
	country, err := p.country(ip)
	if err != nil {
		return "", err
	}
	if country.Continent.Code == "" {
		return "", ErrNotFound
	}
	return country.Continent.Code, nil
}

// LookupRegionName implements the Provider interface.
func (p *MaxMindProvider) LookupRegionName(countryCode2, regionCode string) (string, error) {
	name, ok := regiondata.RegionName(countryCode2, regionCode)
	if !ok {
		return "", ErrNotFound
	}
	return name, nil
}

// LookupTimezone implements the Provider interface.
func (p *MaxMindProvider) LookupTimezone(countryCode2, regionCode string) (string, error) {
	tz, ok := regiondata.Timezone(countryCode2, regionCode)
	if !ok {
		return "", ErrNotFound
	}
	return tz, nil
}

// Close releases the database reader.
func (p *MaxMindProvider) Close() error {
	if p.reader != nil {
		return p.reader.Close()
	}
	return nil
}
