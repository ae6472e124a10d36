package provider

import (
	"strings"

	"github.com/pariz/gountries"
)

// countryQuery is the shared ISO 3166 dataset. Backends that only store an
// alpha-2 code per IP (CSV, MySQL, Redis) derive the country name, the
// alpha-3 code and the continent from it instead of duplicating the data in
// every row.
var countryQuery = gountries.New()

// continentCodes maps gountries continent names to two-letter codes.
var continentCodes = map[string]string{
	"africa":        "AF",
	"antarctica":    "AN",
	"asia":          "AS",
	"australia":     "OC",
	"europe":        "EU",
	"north america": "NA",
	"oceania":       "OC",
	"south america": "SA",
}

func countryByAlpha2(cc2 string) (gountries.Country, bool) {
	if cc2 == "" {
		return gountries.Country{}, false
	}
	country, err := countryQuery.FindCountryByAlpha(cc2)
	if err != nil {
		return gountries.Country{}, false
	}
	return country, true
}

// countryName returns the common English name for an alpha-2 code.
func countryName(cc2 string) (string, bool) {
	country, ok := countryByAlpha2(cc2)
	if !ok || country.Name.Common == "" {
		return "", false
	}
	return country.Name.Common, true
}

// countryCode converts an alpha-2 code to the requested length.
func countryCode(cc2 string, letters int) (string, bool) {
	country, ok := countryByAlpha2(cc2)
	if !ok {
		return "", false
	}
	switch letters {
	case 2:
		return country.Alpha2, country.Alpha2 != ""
	case 3:
		return country.Alpha3, country.Alpha3 != ""
	}
	return "", false
}

// continentCode returns the two-letter continent code for an alpha-2 country
// code.
func continentCode(cc2 string) (string, bool) {
	country, ok := countryByAlpha2(cc2)
	if !ok {
		return "", false
	}
	code, ok := continentCodes[strings.ToLower(country.Continent)]
	return code, ok
}
