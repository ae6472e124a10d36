package provider

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/evyataryagoni/geolocate/internal/models"
	"github.com/evyataryagoni/geolocate/internal/provider/regiondata"
)

// csvEntry is one parsed row: the raw record plus the alpha-2 country code,
// which lives outside the record because country data is served through the
// dedicated country lookups.
type csvEntry struct {
	record       *models.GeoRecord
	countryCode2 string
}

// CSVProvider implements Provider from a CSV snapshot loaded fully into
// memory. It is the development and test backend; the snapshot is small
// enough that a map lookup per IP beats any clever indexing.
//
// CSV format (header row required):
//
//	ip,city,region_code,postal_code,latitude,longitude,area_code,country_code2
//
// Example:
//
//	8.8.8.8,Mountain View,CA,94035,37.386,-122.0838,650,US
//
// Empty latitude/longitude/area_code cells mean the field is absent. Country
// name, alpha-3 code and continent are derived from the alpha-2 code.
type CSVProvider struct {
	entries map[string]csvEntry
}

// NewCSVProvider reads the snapshot at filePath and returns a ready provider.
func NewCSVProvider(filePath string) (*CSVProvider, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("CSV file is empty")
	}

	p := &CSVProvider{entries: make(map[string]csvEntry)}
	for i, row := range rows {
		// Skip the header row and rows with the wrong shape.
		if i == 0 || len(row) != 8 {
			continue
		}
		record := &models.GeoRecord{
			IP:         row[0],
			City:       row[1],
			RegionCode: row[2],
			PostalCode: row[3],
			Latitude:   parseCoord(row[4]),
			Longitude:  parseCoord(row[5]),
		}
		if code, err := strconv.Atoi(row[6]); err == nil {
			record.AreaCode = code
		}
		p.entries[row[0]] = csvEntry{record: record, countryCode2: row[7]}
	}

	return p, nil
}

func parseCoord(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// LookupRecord implements the Provider interface.
func (p *CSVProvider) LookupRecord(ip string) (*models.GeoRecord, error) {
	entry, exists := p.entries[ip]
	if !exists {
		return nil, ErrNotFound
	}
	return entry.record, nil
}

// LookupCountryName implements the Provider interface.
func (p *CSVProvider) LookupCountryName(ip string) (string, error) {
	entry, exists := p.entries[ip]
	if !exists {
		return "", ErrNotFound
	}
	name, ok := countryName(entry.countryCode2)
	if !ok {
		return "", ErrNotFound
	}
	return name, nil
}

// LookupCountryCode implements the Provider interface.
func (p *CSVProvider) LookupCountryCode(ip string, letters int) (string, error) {
	if letters != 2 && letters != 3 {
		return "", fmt.Errorf("country code length must be 2 or 3, got %d", letters)
	}
	entry, exists := p.entries[ip]
	if !exists {
		return "", ErrNotFound
	}
	code, ok := countryCode(entry.countryCode2, letters)
	if !ok {
		return "", ErrNotFound
	}
	return code, nil
}

// LookupContinentCode implements the Provider interface.
func (p *CSVProvider) LookupContinentCode(ip string) (string, error) {
	entry, exists := p.entries[ip]
	if !exists {
		return "", ErrNotFound
	}
	code, ok := continentCode(entry.countryCode2)
	if !ok {
		return "", ErrNotFound
	}
	return code, nil
}

// LookupRegionName implements the Provider interface.
func (p *CSVProvider) LookupRegionName(countryCode2, regionCode string) (string, error) {
	name, ok := regiondata.RegionName(countryCode2, regionCode)
	if !ok {
		return "", ErrNotFound
	}
	return name, nil
}

// LookupTimezone implements the Provider interface.
func (p *CSVProvider) LookupTimezone(countryCode2, regionCode string) (string, error) {
	tz, ok := regiondata.Timezone(countryCode2, regionCode)
	if !ok {
		return "", ErrNotFound
	}
	return tz, nil
}

// Close implements the Provider interface. All data is in memory, so there
// is nothing to release.
func (p *CSVProvider) Close() error {
	return nil
}
