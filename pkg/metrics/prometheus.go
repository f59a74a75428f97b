// Package metrics provides Prometheus metrics for the laureate dashboard.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the dashboard.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Dataset Metrics - what was loaded at startup
	datasetRecords          prometheus.Gauge
	datasetMissingAges      prometheus.Gauge
	datasetAliasedLabels    prometheus.Gauge
	datasetLoads            *prometheus.CounterVec
	datasetLoadDuration     prometheus.Histogram
	datasetSchemaViolations prometheus.Counter

	// Query Metrics - aggregations computed per request
	queries        *prometheus.CounterVec
	queryLatency   *prometheus.HistogramVec
	selectorNoData prometheus.Counter

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error Metrics
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec
	errorLatency        *prometheus.HistogramVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "laureates",
		subsystem:        "dashboard",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		constLabels:      make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// Enabled reports whether recording is active.
func (m *Manager) Enabled() bool { return m.enabled }

func (m *Manager) counter(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) gauge(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogram(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.constLabels,
	}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.datasetRecords = auto.NewGauge(m.gauge("dataset_records", "Number of laureate records loaded"))
	m.datasetMissingAges = auto.NewGauge(m.gauge("dataset_missing_ages", "Records whose age could not be derived"))
	m.datasetAliasedLabels = auto.NewGauge(m.gauge("dataset_aliased_labels", "Records whose category used a non-canonical label"))
	m.datasetLoads = auto.NewCounterVec(m.counter("dataset_loads_total", "Dataset load attempts by outcome"), []string{"outcome"})
	m.datasetLoadDuration = auto.NewHistogram(m.histogram("dataset_load_duration_milliseconds", "Dataset load duration in milliseconds", m.histogramBuckets))
	m.datasetSchemaViolations = auto.NewCounter(m.counter("dataset_schema_violations_total", "Schema violations found while loading"))

	m.queries = auto.NewCounterVec(m.counter("queries_total", "Aggregations computed by kind"), []string{"kind"})
	m.queryLatency = auto.NewHistogramVec(m.histogram("query_latency_milliseconds", "Aggregation latency in milliseconds", m.histogramBuckets), []string{"kind"})
	m.selectorNoData = auto.NewCounter(m.counter("selector_no_data_total", "Category selections that found no ages"))

	m.httpRequests = auto.NewCounterVec(
		m.counter("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogram("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByType = auto.NewCounterVec(m.counter("errors_by_type_total", "Total number of errors by type"), []string{"error_type", "severity"})
	m.errorRateByEndpoint = auto.NewCounterVec(m.counter("errors_by_endpoint_total", "Total number of errors by endpoint"), []string{"endpoint", "method", "error_type"})
	m.errorLatency = auto.NewHistogramVec(
		m.histogram("error_latency_milliseconds", "Latency of failed operations in milliseconds", m.histogramBuckets),
		[]string{"component", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(m.gauge("system_memory_usage_bytes", "System memory usage in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gauge("system_goroutine_count", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogram("system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}))
}

// Dataset Metrics Functions.

// RecordDatasetLoad records a successful load and its shape.
func RecordDatasetLoad(records, missingAges, aliased int, durationMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.datasetLoads.WithLabelValues("success").Inc()
	globalManager.datasetRecords.Set(float64(records))
	globalManager.datasetMissingAges.Set(float64(missingAges))
	globalManager.datasetAliasedLabels.Set(float64(aliased))
	globalManager.datasetLoadDuration.Observe(durationMs)
}

// RecordDatasetLoadFailure records a failed load.
func RecordDatasetLoadFailure(schemaViolations int) {
	if !globalManager.enabled {
		return
	}
	globalManager.datasetLoads.WithLabelValues("failure").Inc()
	globalManager.datasetSchemaViolations.Add(float64(schemaViolations))
}

// Query Metrics Functions.

// RecordQuery records one aggregation of the given kind.
func RecordQuery(kind string, latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.queries.WithLabelValues(kind).Inc()
	globalManager.queryLatency.WithLabelValues(kind).Observe(latencyMs)
}

// RecordSelectorNoData counts selections that returned no category.
func RecordSelectorNoData() {
	if !globalManager.enabled {
		return
	}
	globalManager.selectorNoData.Inc()
}

// HTTP Metrics Functions.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// Error Metrics Functions.

// RecordErrorByType records an error by type and severity.
func RecordErrorByType(errorType, severity string) {
	if !globalManager.enabled {
		return
	}
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error for an endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	if !globalManager.enabled {
		return
	}
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records how long a failing operation took.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// System Metrics Functions.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
