package service

import (
	"errors"
	"fmt"

	"github.com/evyataryagoni/geolocate/internal/geo"
	"github.com/evyataryagoni/geolocate/internal/logger"
	"github.com/evyataryagoni/geolocate/internal/metrics"
	"github.com/evyataryagoni/geolocate/internal/models"
	"github.com/evyataryagoni/geolocate/internal/provider"
	"github.com/go-playground/validator/v10"
)

var (
	// ErrInvalidIP is returned when an explicitly supplied IP fails syntax
	// validation at the API boundary. The geo session itself never validates
	// IPs; this check exists only for explicit user input.
	ErrInvalidIP = errors.New("invalid IP address format")

	// ErrNotFound is returned when the provider has no data at all for the
	// subject IP.
	ErrNotFound = errors.New("no geolocation data for IP")

	// ErrNoSubjectIP is returned when no override was supplied and the
	// request context carries neither a forwarded-for value nor a peer
	// address.
	ErrNoSubjectIP = errors.New("unable to determine subject IP")
)

// LocationService handles business logic for location lookups. It sits
// between the HTTP handlers and the geo session: validate explicit input,
// run a request-scoped session, assemble the full response.
type LocationService struct {
	provider  provider.Provider
	validator *validator.Validate
	metrics   *metrics.Metrics
	logger    *logger.Logger
}

// NewLocationService creates a new location service. Metrics and logger are
// optional (nil allowed).
func NewLocationService(p provider.Provider, m *metrics.Metrics, log *logger.Logger) *LocationService {
	if log == nil {
		log = logger.NewDefault()
	}
	return &LocationService{
		provider:  p,
		validator: validator.New(),
		metrics:   m,
		logger:    log.WithComponent("LocationService"),
	}
}

// Locate resolves every exposed location field for one logical request.
//
// overrideIP, when non-empty, pins the subject IP and must be syntactically
// valid (it came straight from user input). When empty, the subject IP is
// inferred from meta: forwarded-for first, then the peer address.
func (s *LocationService) Locate(overrideIP string, meta geo.RequestMeta) (*models.Location, error) {
	if overrideIP != "" {
		if err := s.validator.Var(overrideIP, "required,ip"); err != nil {
			s.logger.Warn().Str("ip", overrideIP).Msg("Invalid IP address format")
			if s.metrics != nil {
				s.metrics.LookupsErrors.WithLabelValues("validation").Inc()
			}
			return nil, ErrInvalidIP
		}
	}

	session, err := geo.NewSession(s.provider, meta, s.metrics, s.logger)
	if err != nil {
		if s.metrics != nil {
			s.metrics.LookupsErrors.WithLabelValues("configuration").Inc()
		}
		return nil, fmt.Errorf("failed to create geo session: %w", err)
	}
	if overrideIP != "" {
		session.SetIP(overrideIP)
	}

	subjectIP, ok := session.SubjectIP()
	if !ok {
		s.logger.Warn().Msg("No subject IP available for lookup")
		if s.metrics != nil {
			s.metrics.LookupsErrors.WithLabelValues("no_subject_ip").Inc()
		}
		return nil, ErrNoSubjectIP
	}

	location := s.collect(session, subjectIP)

	if location.Empty() {
		s.logger.Debug().Str("ip", subjectIP).Msg("No geolocation data for IP")
		if s.metrics != nil {
			s.metrics.LookupsNotFound.Inc()
			s.metrics.LookupsTotal.WithLabelValues("not_found").Inc()
		}
		return nil, ErrNotFound
	}

	s.logger.Info().
		Str("ip", subjectIP).
		Str("formatted", location.Formatted).
		Msg("Location lookup successful")
	if s.metrics != nil {
		s.metrics.LookupsTotal.WithLabelValues("success").Inc()
	}
	return location, nil
}

// collect drains every accessor of the session into the response model.
// Each underlying provider capability is hit at most once thanks to the
// session cache, no matter how many fields derive from it.
func (s *LocationService) collect(session *geo.Session, subjectIP string) *models.Location {
	location := &models.Location{IP: subjectIP}

	if city, ok := session.City(); ok {
		location.City = &city
	}
	if country, ok := session.Country(); ok {
		location.Country = &country
	}
	// The lengths are fixed constants here, so the misuse error cannot fire.
	if cc2, ok, _ := session.CountryCode(2); ok {
		location.CountryCode2 = &cc2
	}
	if cc3, ok, _ := session.CountryCode(3); ok {
		location.CountryCode3 = &cc3
	}
	if continent, ok := session.ContinentCode(); ok {
		location.ContinentCode = &continent
	}
	if region, ok := session.Region(); ok {
		location.Region = &region
	}
	if postal, ok := session.PostalCode(); ok {
		location.PostalCode = &postal
	}
	if areaCode, ok := session.AreaCode(); ok {
		location.AreaCode = &areaCode
	}
	if lat, long, ok := session.Coordinates(); ok {
		location.Latitude = &lat
		location.Longitude = &long
	}
	if tz, ok := session.Timezone(); ok {
		location.Timezone = &tz
	}
	location.Formatted = session.Formatted()

	return location
}

// Close cleans up resources, closing the underlying provider.
func (s *LocationService) Close() error {
	return s.provider.Close()
}
