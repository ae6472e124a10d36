package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPResponseSize    *prometheus.HistogramVec

	// Geo session metrics
	SessionCacheEvents *prometheus.CounterVec
	ProviderCalls      *prometheus.CounterVec

	// Lookup outcome metrics
	LookupsTotal    *prometheus.CounterVec
	LookupsNotFound prometheus.Counter
	LookupsErrors   *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),

		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint", "status"},
		),

		HTTPResponseSize: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: prometheus.ExponentialBuckets(100, 10, 7),
			},
			[]string{"method", "endpoint", "status"},
		),

		SessionCacheEvents: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "geo_session_cache_events_total",
				Help: "Per-field cache hits vs misses in geo sessions",
			},
			[]string{"result"},
		),

		ProviderCalls: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "geo_provider_calls_total",
				Help: "Calls into the geolocation provider per capability",
			},
			[]string{"capability", "status"},
		),

		LookupsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "geo_lookups_total",
				Help: "Total number of location lookups",
			},
			[]string{"result"},
		),

		LookupsNotFound: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "geo_lookups_not_found_total",
				Help: "Total number of location lookups with no data at all",
			},
		),

		LookupsErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "geo_lookups_errors_total",
				Help: "Total number of location lookup errors",
			},
			[]string{"error_type"},
		),
	}
}
