package models

// GeoRecord is the raw per-IP bundle of fields returned by a single provider
// lookup. Absence of the whole record (provider found nothing) is signalled by
// provider.ErrNotFound, not by a zero-valued record; individual fields may
// still be empty on a present record, and both cases read as "absent" to
// callers of the geo session.
//
// Latitude and Longitude are pointers so a missing coordinate is
// distinguishable from a real 0.0 (the equator and the prime meridian exist).
type GeoRecord struct {
	IP         string   `json:"-"`
	City       string   `json:"city"`
	RegionCode string   `json:"region_code"`
	PostalCode string   `json:"postal_code"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
	AreaCode   int      `json:"area_code"`
}

// Location is the assembled response for one subject IP: every exposed field,
// resolved and normalized. Pointer fields are null in JSON when the provider
// had no data for them.
type Location struct {
	IP            string   `json:"ip"`
	City          *string  `json:"city"`
	Country       *string  `json:"country"`
	CountryCode2  *string  `json:"country_code2"`
	CountryCode3  *string  `json:"country_code3"`
	ContinentCode *string  `json:"continent_code"`
	Region        *string  `json:"region"`
	PostalCode    *string  `json:"postal_code"`
	AreaCode      *int     `json:"area_code"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	Timezone      *string  `json:"timezone"`
	Formatted     string   `json:"formatted"`
}

// Empty reports whether the provider had no data at all for the subject IP.
// The formatted label is derived from the other fields, so checking the
// pointers is enough.
func (l *Location) Empty() bool {
	return l.City == nil &&
		l.Country == nil &&
		l.CountryCode2 == nil &&
		l.CountryCode3 == nil &&
		l.ContinentCode == nil &&
		l.Region == nil &&
		l.PostalCode == nil &&
		l.AreaCode == nil &&
		l.Latitude == nil &&
		l.Longitude == nil &&
		l.Timezone == nil
}

// ErrorResponse is the standard error response format returned by the HTTP
// layer when something goes wrong.
type ErrorResponse struct {
	Error string `json:"error"`
}
