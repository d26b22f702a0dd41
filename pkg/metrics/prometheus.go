// Package metrics provides Prometheus metrics for the tudu todo service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the tudu service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Core business metrics
	todosCreated prometheus.Counter
	todosUpdated prometheus.Counter
	todosDeleted prometheus.Counter
	storeSize    prometheus.Gauge

	// Request quality metrics
	notFoundTotal    prometheus.Counter
	validationErrors prometheus.Counter

	// HTTP performance metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Journal metrics
	journalSize        prometheus.Gauge
	journalCapacity    prometheus.Gauge
	journalUtilization prometheus.Gauge
	journalRecords     prometheus.Counter
	journalDrops       prometheus.Counter

	// Worker metrics
	workerCount    prometheus.Gauge
	changesApplied *prometheus.CounterVec

	// System performance metrics
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
		namespace:        "tudu",
		subsystem:        "todo",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		metricPrefix:     "",
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	m.todosCreated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "created_total",
		Help:      "Total number of todos created",
	})

	m.todosUpdated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "updated_total",
		Help:      "Total number of todos updated",
	})

	m.todosDeleted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "deleted_total",
		Help:      "Total number of todos deleted",
	})

	m.storeSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_size",
		Help:      "Current number of todos held in the store",
	})

	m.notFoundTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "not_found_total",
		Help:      "Total number of lookups that referenced a missing todo id",
	})

	m.validationErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "validation_errors_total",
		Help:      "Total number of requests rejected by schema validation",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by endpoint, method and status",
	}, []string{"endpoint", "method", "status"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "Histogram of HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})

	m.journalSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "journal_size",
		Help:      "Current number of change records waiting in the journal",
	})

	m.journalCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "journal_capacity",
		Help:      "Configured capacity of the change journal",
	})

	m.journalUtilization = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "journal_utilization",
		Help:      "Journal fill ratio between 0 and 1",
	})

	m.journalRecords = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "journal_records_total",
		Help:      "Total number of change records accepted by the journal",
	})

	m.journalDrops = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "journal_drops_total",
		Help:      "Total number of change records dropped because the journal was full or closed",
	})

	m.workerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_count",
		Help:      "Current number of journal workers",
	})

	m.changesApplied = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "changes_applied_total",
		Help:      "Total number of change records folded into the activity tally, by operation",
	}, []string{"op"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_bytes",
		Help:      "Current allocated heap memory in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutines",
		Help:      "Current number of goroutines",
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_gc_pause_milliseconds",
		Help:      "Histogram of average GC pause time in milliseconds",
		Buckets:   m.histogramBuckets,
	})
}

// GetRegistry returns the custom Prometheus registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level helpers operating on the global manager.

// RecordTodoCreated increments the created counter.
func RecordTodoCreated() { globalManager.todosCreated.Inc() }

// RecordTodoUpdated increments the updated counter.
func RecordTodoUpdated() { globalManager.todosUpdated.Inc() }

// RecordTodoDeleted increments the deleted counter.
func RecordTodoDeleted() { globalManager.todosDeleted.Inc() }

// UpdateStoreSize sets the current store size gauge.
func UpdateStoreSize(n int) { globalManager.storeSize.Set(float64(n)) }

// RecordNotFound increments the not-found counter.
func RecordNotFound() { globalManager.notFoundTotal.Inc() }

// RecordValidationError increments the validation error counter.
func RecordValidationError() { globalManager.validationErrors.Inc() }

// RecordHTTPRequest increments the HTTP request counter.
func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, status string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(ms)
}

// UpdateJournalSize sets the journal size gauge.
func UpdateJournalSize(n int) { globalManager.journalSize.Set(float64(n)) }

// UpdateJournalCapacity sets the journal capacity gauge.
func UpdateJournalCapacity(n int) { globalManager.journalCapacity.Set(float64(n)) }

// UpdateJournalUtilization sets the journal fill ratio gauge.
func UpdateJournalUtilization(ratio float64) { globalManager.journalUtilization.Set(ratio) }

// RecordJournalRecord increments the accepted-record counter.
func RecordJournalRecord() { globalManager.journalRecords.Inc() }

// RecordJournalDrop increments the dropped-record counter.
func RecordJournalDrop() { globalManager.journalDrops.Inc() }

// UpdateWorkerCount sets the worker gauge.
func UpdateWorkerCount(n int) { globalManager.workerCount.Set(float64(n)) }

// RecordChangeApplied increments the applied-change counter for an operation.
func RecordChangeApplied(op string) {
	globalManager.changesApplied.WithLabelValues(op).Inc()
}

// UpdateSystemMemoryUsage sets the heap memory gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(n int) {
	globalManager.systemGoroutineCount.Set(float64(n))
}

// RecordSystemGCPauseTime records an average GC pause observation in milliseconds.
func RecordSystemGCPauseTime(ms float64) {
	globalManager.systemGCPauseTime.Observe(ms)
}
