package geo

import "strings"

// Formatted assembles a best-effort, human-presentable label for the subject
// IP from city, region, country and the alpha-2 country code. It never
// reports absence: when there is no data at all the label is the empty
// string.
//
// North American locales are best identified by city and region ("Toronto,
// Ontario"); everywhere else by city and country ("London, United Kingdom"),
// since the provider's region table only covers the US and Canada. The
// asymmetry is deliberate.
func (s *Session) Formatted() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	city, hasCity := s.city()
	region, hasRegion := s.region()
	country, hasCountry := s.country()
	cc2, hasCC2 := s.countryCode(2)

	if hasCC2 {
		switch strings.ToUpper(cc2) {
		case "US", "CA":
			return formatNorthAmerican(city, hasCity, region, hasRegion, country, hasCountry, cc2)
		}
	}
	return formatDefault(city, hasCity, country, hasCountry, cc2, hasCC2)
}

func formatNorthAmerican(city string, hasCity bool, region string, hasRegion bool, country string, hasCountry bool, cc2 string) string {
	switch {
	case hasCity && hasRegion:
		return city + ", " + region
	case hasCity && hasCountry:
		return city + ", " + country
	case hasCity:
		return city + ", " + cc2
	case hasRegion && hasCountry:
		return region + ", " + country
	case hasRegion:
		return region + ", " + cc2
	case hasCountry:
		return country
	}
	return cc2
}

func formatDefault(city string, hasCity bool, country string, hasCountry bool, cc2 string, hasCC2 bool) string {
	switch {
	case hasCity && hasCountry:
		return city + ", " + country
	case hasCity && hasCC2:
		return city + ", " + cc2
	case hasCity:
		return city
	case hasCountry:
		return country
	}
	return ""
}
