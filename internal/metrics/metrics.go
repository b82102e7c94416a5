// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPRequests counts completed requests by route pattern, method and status class
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "themesmith_http_requests_total",
		Help: "Total HTTP requests by route, method and status class",
	}, []string{"route", "method", "status"})

	// HTTPDuration tracks request latency by route pattern
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "themesmith_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}, []string{"route"})

	// ThemesGenerated counts generator runs by harmony and outcome
	ThemesGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "themesmith_themes_generated_total",
		Help: "Total theme generations by harmony and outcome",
	}, []string{"harmony", "outcome"})

	// Exports counts rendered exports by format
	Exports = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "themesmith_exports_total",
		Help: "Total theme exports by format",
	}, []string{"format"})

	// StoreOperations counts store mutations by operation
	StoreOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "themesmith_store_operations_total",
		Help: "Total theme store mutations by operation",
	}, []string{"operation"})

	// StoredThemes tracks the size of the theme collection after each mutation
	StoredThemes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "themesmith_stored_themes",
		Help: "Number of themes in the store",
	})

	// ContrastFailures counts generated role pairs below AA
	ContrastFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "themesmith_contrast_failures_total",
		Help: "Generated role pairs failing WCAG AA by mode",
	}, []string{"mode"})

	// RateLimited counts requests rejected by the generation rate limiter
	RateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "themesmith_rate_limited_total",
		Help: "Requests rejected by the generation rate limiter",
	})
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
