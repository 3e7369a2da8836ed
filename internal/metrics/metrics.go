package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Quote metrics
	QuoteRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hookswap_quote_requests_total",
			Help: "Total number of quote requests",
		},
		[]string{"kind", "status"},
	)

	QuoteDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hookswap_quote_duration_seconds",
			Help:    "Quote request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)

	PriceImpact = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hookswap_price_impact_bps",
			Help:    "Price impact in basis points",
			Buckets: []float64{0, 10, 50, 100, 300, 500, 1000, 5000, 10000},
		},
		[]string{"severity"},
	)

	// Aggregation metrics
	VenueQuoteDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hookswap_venue_quote_duration_seconds",
			Help:    "Per-venue quote fetch duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"venue"},
	)

	VenueFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hookswap_venue_failures_total",
			Help: "Total number of per-venue quote failures during aggregation",
		},
		[]string{"venue", "reason"},
	)

	RoutesReturned = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "hookswap_routes_returned",
		Help:    "Number of routes returned per aggregation call",
		Buckets: []float64{0, 1, 2, 3, 5, 10},
	})

	// Hook metrics
	HookValidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hookswap_hook_validations_total",
			Help: "Total number of hook validations",
		},
		[]string{"result"},
	)

	RegistrySize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hookswap_hook_registry_size",
		Help: "Number of hook programs in the whitelist",
	})

	// HTTP metrics
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hookswap_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hookswap_http_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)
