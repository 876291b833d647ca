package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors exposed on /metrics.
type Metrics struct {
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	AdsServedTotal        prometheus.Counter
	EventsRegisteredTotal *prometheus.CounterVec
}

// New registers and returns the collectors on the given registerer. Pass
// prometheus.DefaultRegisterer in production; tests use a fresh registry.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		HTTPRequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
		),

		AdsServedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "ads_served_total",
				Help: "Total number of ads matched and served to clients",
			},
		),

		EventsRegisteredTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ad_events_registered_total",
				Help: "Total number of ledger registrations by event type and outcome",
			},
			[]string{"event_type", "status"},
		),
	}
}
