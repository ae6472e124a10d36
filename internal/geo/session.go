// Package geo implements the resolution-and-caching layer between callers
// and a geolocation provider: it decides which IP is being looked up, fetches
// each piece of data from the provider at most once, and exposes typed
// accessors with uniform absence semantics.
package geo

import (
	"errors"
	"fmt"
	"sync"

	"github.com/evyataryagoni/geolocate/internal/logger"
	"github.com/evyataryagoni/geolocate/internal/metrics"
	"github.com/evyataryagoni/geolocate/internal/models"
	"github.com/evyataryagoni/geolocate/internal/provider"
)

// field identifies one cached lookup kind. Together with the subject IP (and
// the code-length parameter for country codes) it forms the cache key, so
// switching the subject IP mid-session never requires invalidation: entries
// for the old IP simply stop being addressed.
type field int

const (
	fieldCity field = iota
	fieldCountry
	fieldCountryCode
	fieldContinentCode
	fieldRegion
	fieldPostalCode
	fieldAreaCode
	fieldCoordinates
	fieldTimezone
)

// cacheKey is the composite cache key: subject IP, field, and an optional
// integer parameter (country code length).
type cacheKey struct {
	ip    string
	field field
	param int
}

// cacheEntry holds one memoized result. ok is false for a cached miss;
// "the provider has no data" is itself a result worth remembering.
type cacheEntry struct {
	str      string
	num, num2 float64
	n        int
	ok       bool
}

// Session is a request-scoped handle over one provider. It owns the subject
// IP override and the per-(IP, field) cache. Create one session per logical
// request; the internal mutex only covers concurrent field resolution within
// a single request (e.g. assembling several fields in parallel), not sharing
// a session across requests.
//
// Accessors never return an error for missing data: every lookup miss is
// normalized to the comma-ok "absent" form. The only errors a session ever
// produces are configuration errors (nil provider at construction) and
// misuse (an invalid country-code length).
type Session struct {
	provider provider.Provider
	source   RequestMeta
	metrics  *metrics.Metrics
	logger   *logger.Logger

	mu       sync.Mutex
	override string
	cache    map[cacheKey]cacheEntry
	records  map[string]*models.GeoRecord // nil value = provider had no record
}

// NewSession creates a session over the given provider and request context.
// Metrics and logger are optional (nil allowed). A nil provider is a fatal
// configuration error: better to fail here than to silently answer "absent"
// for every field.
func NewSession(p provider.Provider, src RequestMeta, m *metrics.Metrics, log *logger.Logger) (*Session, error) {
	if p == nil {
		return nil, errors.New("geolocation provider is not configured")
	}
	if log == nil {
		log = logger.NewDefault()
	}
	return &Session{
		provider: p,
		source:   src,
		metrics:  m,
		logger:   log.WithComponent("GeoSession"),
		cache:    make(map[cacheKey]cacheEntry),
		records:  make(map[string]*models.GeoRecord),
	}, nil
}

// SetIP overrides the subject IP for all subsequent lookups. The string is
// passed to the provider as-is; no syntax validation. Results already cached
// for a previous subject IP stay cached and become reachable again if that
// IP is re-selected.
func (s *Session) SetIP(ip string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.override = ip
}

// lookup is the single cache gate: on a hit it returns the stored entry
// (present or absent) without touching the provider; on a miss it runs
// compute, stores the result, and returns it.
//
// Callers must hold s.mu.
func (s *Session) lookup(key cacheKey, compute func() cacheEntry) cacheEntry {
	if entry, hit := s.cache[key]; hit {
		if s.metrics != nil {
			s.metrics.SessionCacheEvents.WithLabelValues("hit").Inc()
		}
		return entry
	}
	if s.metrics != nil {
		s.metrics.SessionCacheEvents.WithLabelValues("miss").Inc()
	}
	entry := compute()
	s.cache[key] = entry
	return entry
}

// record returns the raw record for an IP, fetching it from the provider at
// most once. A nil return means the provider had no record.
//
// Callers must hold s.mu.
func (s *Session) record(ip string) *models.GeoRecord {
	if record, fetched := s.records[ip]; fetched {
		return record
	}

	record, err := s.provider.LookupRecord(ip)
	s.countProviderCall("record", err)
	if err != nil {
		if !errors.Is(err, provider.ErrNotFound) {
			s.logger.Error().Err(err).Str("ip", ip).Msg("Provider record lookup failed")
		}
		record = nil
	}
	s.records[ip] = record
	return record
}

func (s *Session) countProviderCall(capability string, err error) {
	if s.metrics == nil {
		return
	}
	status := "success"
	switch {
	case errors.Is(err, provider.ErrNotFound):
		status = "not_found"
	case err != nil:
		status = "error"
	}
	s.metrics.ProviderCalls.WithLabelValues(capability, status).Inc()
}

// normalize converts a provider (value, error) pair into the absence form:
// empty strings and ErrNotFound both read as absent, unexpected errors are
// logged and read as absent too (a lookup miss is never an error to the
// caller).
func (s *Session) normalize(capability, value string, err error) (string, bool) {
	s.countProviderCall(capability, err)
	if err != nil {
		if !errors.Is(err, provider.ErrNotFound) {
			s.logger.Error().Err(err).Str("capability", capability).Msg("Provider lookup failed")
		}
		return "", false
	}
	return value, value != ""
}

// City returns the city name for the subject IP.
func (s *Session) City() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.city()
}

func (s *Session) city() (string, bool) {
	ip, ok := s.subjectIP()
	if !ok {
		return "", false
	}
	entry := s.lookup(cacheKey{ip: ip, field: fieldCity}, func() cacheEntry {
		record := s.record(ip)
		if record == nil {
			return cacheEntry{}
		}
		return cacheEntry{str: record.City, ok: record.City != ""}
	})
	return entry.str, entry.ok
}

// Country returns the full country name for the subject IP.
func (s *Session) Country() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.country()
}

func (s *Session) country() (string, bool) {
	ip, ok := s.subjectIP()
	if !ok {
		return "", false
	}
	entry := s.lookup(cacheKey{ip: ip, field: fieldCountry}, func() cacheEntry {
		name, err := s.provider.LookupCountryName(ip)
		value, present := s.normalize("country_name", name, err)
		return cacheEntry{str: value, ok: present}
	})
	return entry.str, entry.ok
}

// CountryCode returns the ISO 3166 country code for the subject IP in the
// requested length, 2 (alpha-2) or 3 (alpha-3). Each length is cached under
// its own key, so requesting both triggers two independent provider calls.
// Any other length is a misuse error.
func (s *Session) CountryCode(letters int) (string, bool, error) {
	if letters != 2 && letters != 3 {
		return "", false, fmt.Errorf("country code length must be 2 or 3, got %d", letters)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	code, ok := s.countryCode(letters)
	return code, ok, nil
}

func (s *Session) countryCode(letters int) (string, bool) {
	ip, ok := s.subjectIP()
	if !ok {
		return "", false
	}
	entry := s.lookup(cacheKey{ip: ip, field: fieldCountryCode, param: letters}, func() cacheEntry {
		code, err := s.provider.LookupCountryCode(ip, letters)
		value, present := s.normalize("country_code", code, err)
		return cacheEntry{str: value, ok: present}
	})
	return entry.str, entry.ok
}

// ContinentCode returns the two-letter continent code for the subject IP.
func (s *Session) ContinentCode() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ip, ok := s.subjectIP()
	if !ok {
		return "", false
	}
	entry := s.lookup(cacheKey{ip: ip, field: fieldContinentCode}, func() cacheEntry {
		code, err := s.provider.LookupContinentCode(ip)
		value, present := s.normalize("continent_code", code, err)
		return cacheEntry{str: value, ok: present}
	})
	return entry.str, entry.ok
}

// Region returns the region/state name for the subject IP, derived by
// passing the alpha-2 country code and the record's raw region code through
// the provider's region table. Only countries with a region table (US and
// Canada in practice) ever resolve.
func (s *Session) Region() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.region()
}

// Province is a synonym of Region.
func (s *Session) Province() (string, bool) { return s.Region() }

// State is a synonym of Region.
func (s *Session) State() (string, bool) { return s.Region() }

func (s *Session) region() (string, bool) {
	ip, ok := s.subjectIP()
	if !ok {
		return "", false
	}
	entry := s.lookup(cacheKey{ip: ip, field: fieldRegion}, func() cacheEntry {
		cc2, regionCode, ok := s.regionInputs(ip)
		if !ok {
			return cacheEntry{}
		}
		name, err := s.provider.LookupRegionName(cc2, regionCode)
		value, present := s.normalize("region_name", name, err)
		return cacheEntry{str: value, ok: present}
	})
	return entry.str, entry.ok
}

// Timezone returns the IANA timezone for the subject IP, derived the same
// way as Region.
func (s *Session) Timezone() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ip, ok := s.subjectIP()
	if !ok {
		return "", false
	}
	entry := s.lookup(cacheKey{ip: ip, field: fieldTimezone}, func() cacheEntry {
		cc2, regionCode, ok := s.regionInputs(ip)
		if !ok {
			return cacheEntry{}
		}
		tz, err := s.provider.LookupTimezone(cc2, regionCode)
		value, present := s.normalize("timezone", tz, err)
		return cacheEntry{str: value, ok: present}
	})
	return entry.str, entry.ok
}

// regionInputs assembles the (country code, region code) pair the derived
// region and timezone lookups need. Both inputs must be present.
//
// Callers must hold s.mu.
func (s *Session) regionInputs(ip string) (cc2, regionCode string, ok bool) {
	cc2, ok = s.countryCode(2)
	if !ok {
		return "", "", false
	}
	record := s.record(ip)
	if record == nil || record.RegionCode == "" {
		return "", "", false
	}
	return cc2, record.RegionCode, true
}

// PostalCode returns the postal code for the subject IP.
func (s *Session) PostalCode() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ip, ok := s.subjectIP()
	if !ok {
		return "", false
	}
	entry := s.lookup(cacheKey{ip: ip, field: fieldPostalCode}, func() cacheEntry {
		record := s.record(ip)
		if record == nil {
			return cacheEntry{}
		}
		return cacheEntry{str: record.PostalCode, ok: record.PostalCode != ""}
	})
	return entry.str, entry.ok
}

// Zip is a synonym of PostalCode.
func (s *Session) Zip() (string, bool) { return s.PostalCode() }

// ZipCode is a synonym of PostalCode.
func (s *Session) ZipCode() (string, bool) { return s.PostalCode() }

// AreaCode returns the telephone area code for the subject IP.
func (s *Session) AreaCode() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ip, ok := s.subjectIP()
	if !ok {
		return 0, false
	}
	entry := s.lookup(cacheKey{ip: ip, field: fieldAreaCode}, func() cacheEntry {
		record := s.record(ip)
		if record == nil {
			return cacheEntry{}
		}
		return cacheEntry{n: record.AreaCode, ok: record.AreaCode != 0}
	})
	return entry.n, entry.ok
}

// Latitude returns the latitude for the subject IP.
func (s *Session) Latitude() (float64, bool) {
	lat, _, ok := s.Coordinates()
	return lat, ok
}

// Longitude returns the longitude for the subject IP.
func (s *Session) Longitude() (float64, bool) {
	_, long, ok := s.Coordinates()
	return long, ok
}

// Coordinates returns the (latitude, longitude) pair for the subject IP.
// The pair is all-or-nothing: if either coordinate is missing from the
// record, both are reported absent. Latitude and Longitude go through the
// same gate, so a half-present pair can never be observed field by field
// either.
func (s *Session) Coordinates() (lat, long float64, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ip, present := s.subjectIP()
	if !present {
		return 0, 0, false
	}
	entry := s.lookup(cacheKey{ip: ip, field: fieldCoordinates}, func() cacheEntry {
		record := s.record(ip)
		if record == nil || record.Latitude == nil || record.Longitude == nil {
			return cacheEntry{}
		}
		return cacheEntry{num: *record.Latitude, num2: *record.Longitude, ok: true}
	})
	if !entry.ok {
		return 0, 0, false
	}
	return entry.num, entry.num2, true
}
