// Package metrics provides Prometheus metrics for httpkit responders.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default page size buckets; page sizes are small integers.
var defaultPageSizeBuckets = []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000}

// Manager owns every Prometheus collector used by httpkit.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	pageSizeBuckets  []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error classifier
	apiErrors *prometheus.CounterVec

	// Pagination
	pageSize      prometheus.Histogram
	limitsClamped prometheus.Counter
	pagesWithMore prometheus.Counter

	// Static assets
	staticAssets *prometheus.CounterVec
}

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // process-wide metrics registry

var globalManager = NewManager(WithPrometheusRegistry(customRegistry)) //nolint:gochecknoglobals // singleton used by package-level recorders

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "httpkit",
		subsystem:        "",
		histogramBuckets: prometheus.DefBuckets,
		pageSizeBuckets:  defaultPageSizeBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_requests_total",
		Help:        "Total number of HTTP requests by endpoint, method and status code",
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_request_duration_seconds",
		Help:        "HTTP request duration in seconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.apiErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "api_errors_total",
		Help:        "Total number of rendered API errors by kind and class",
		ConstLabels: m.constLabels,
	}, []string{"kind", "class"})

	m.pageSize = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "pagination_page_size",
		Help:        "Number of items returned per paginated response",
		Buckets:     m.pageSizeBuckets,
		ConstLabels: m.constLabels,
	})

	m.limitsClamped = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "pagination_limits_clamped_total",
		Help:        "Requested page limits reduced to the configured maximum",
		ConstLabels: m.constLabels,
	})

	m.pagesWithMore = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "pagination_pages_with_more_total",
		Help:        "Paginated responses that reported further results",
		ConstLabels: m.constLabels,
	})

	m.staticAssets = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "static_assets_total",
		Help:        "Static asset lookups by outcome (hit, fallback, miss)",
		ConstLabels: m.constLabels,
	}, []string{"outcome"})
}

// RecordHTTPRequest counts one request.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string) {
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration observes a request duration in seconds.
func (m *Manager) RecordHTTPRequestDuration(endpoint, method, statusCode string, seconds float64) {
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(seconds)
}

// RecordAPIError counts one rendered API error.
func (m *Manager) RecordAPIError(kind, class string) {
	m.apiErrors.WithLabelValues(kind, class).Inc()
}

// RecordPage observes one paginated response.
func (m *Manager) RecordPage(size int, hasMore bool) {
	m.pageSize.Observe(float64(size))
	if hasMore {
		m.pagesWithMore.Inc()
	}
}

// RecordLimitClamped counts a limit reduced to the maximum.
func (m *Manager) RecordLimitClamped() { m.limitsClamped.Inc() }

// RecordStaticAsset counts one static lookup outcome.
func (m *Manager) RecordStaticAsset(outcome string) {
	m.staticAssets.WithLabelValues(outcome).Inc()
}

// Package-level recorders delegate to the global manager.

// RecordHTTPRequest counts one request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode)
}

// RecordHTTPRequestDuration observes a request duration in seconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, seconds float64) {
	globalManager.RecordHTTPRequestDuration(endpoint, method, statusCode, seconds)
}

// RecordAPIError counts one rendered API error.
func RecordAPIError(kind, class string) { globalManager.RecordAPIError(kind, class) }

// RecordPage observes one paginated response.
func RecordPage(size int, hasMore bool) { globalManager.RecordPage(size, hasMore) }

// RecordLimitClamped counts a limit reduced to the maximum.
func RecordLimitClamped() { globalManager.RecordLimitClamped() }

// RecordStaticAsset counts one static lookup outcome.
func RecordStaticAsset(outcome string) { globalManager.RecordStaticAsset(outcome) }

// GetRegistry returns the registry backing the package-level recorders.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
