// Package metrics provides Prometheus metrics for the progression and
// pipeline engine.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "ascend"

// Manager owns the metric instruments and their registry.
type Manager struct {
	registry *prometheus.Registry

	// Pipeline metrics
	transitionsApplied   *prometheus.CounterVec
	transitionsRejected  prometheus.Counter
	duplicateTransitions prometheus.Counter
	recordsTracked       prometheus.Gauge
	overdueRecords       prometheus.Gauge

	// Rank metrics
	unknownRankLookups prometheus.Counter

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// NewManager creates a Manager with its own registry.
func NewManager() *Manager {
	m := &Manager{
		registry: prometheus.NewRegistry(),
	}

	m.transitionsApplied = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transitions_applied_total",
		Help:      "Status transitions applied, by target status.",
	}, []string{"status"})

	m.transitionsRejected = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transitions_rejected_total",
		Help:      "Transition attempts rejected for an invalid target status.",
	})

	m.duplicateTransitions = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transitions_duplicate_total",
		Help:      "Transition submissions replayed with a seen request id.",
	})

	m.recordsTracked = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "records_tracked",
		Help:      "Contact records currently held by the store.",
	})

	m.overdueRecords = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "records_overdue",
		Help:      "Prospects past their next action date at last computation.",
	})

	m.unknownRankLookups = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "unknown_rank_lookups_total",
		Help:      "Rank strings that resolved to neither a canonical code nor an alias.",
	})

	m.httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests served, by endpoint, method and status code.",
	}, []string{"endpoint", "method", "status"})

	m.httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
	}, []string{"endpoint", "method"})

	m.registry.MustRegister(
		m.transitionsApplied,
		m.transitionsRejected,
		m.duplicateTransitions,
		m.recordsTracked,
		m.overdueRecords,
		m.unknownRankLookups,
		m.httpRequests,
		m.httpRequestDuration,
	)
	return m
}

// Registry exposes the manager's registry for scraping.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

var (
	defaultManager *Manager
	defaultOnce    sync.Once
)

// Default returns the process-wide Manager, creating it on first use.
func Default() *Manager {
	defaultOnce.Do(func() {
		defaultManager = NewManager()
	})
	return defaultManager
}

// GetRegistry returns the default manager's registry.
func GetRegistry() *prometheus.Registry {
	return Default().Registry()
}

// RecordTransitionApplied counts a successful transition into status.
func RecordTransitionApplied(status string) {
	Default().transitionsApplied.WithLabelValues(status).Inc()
}

// RecordTransitionRejected counts a transition rejected at validation.
func RecordTransitionRejected() {
	Default().transitionsRejected.Inc()
}

// RecordDuplicateTransition counts a replayed transition submission.
func RecordDuplicateTransition() {
	Default().duplicateTransitions.Inc()
}

// UpdateRecordsTracked sets the tracked record gauge.
func UpdateRecordsTracked(n int) {
	Default().recordsTracked.Set(float64(n))
}

// UpdateOverdueRecords sets the overdue prospect gauge.
func UpdateOverdueRecords(n int) {
	Default().overdueRecords.Set(float64(n))
}

// RecordUnknownRank counts an unresolved rank string. Unknown ranks degrade
// rather than error, so the counter is the observability trail.
func RecordUnknownRank() {
	Default().unknownRankLookups.Inc()
}

// RecordHTTPRequest counts a served request.
func RecordHTTPRequest(endpoint, method, status string) {
	Default().httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration observes request latency in milliseconds.
func RecordHTTPRequestDuration(endpoint, method string, durationMS float64) {
	Default().httpRequestDuration.WithLabelValues(endpoint, method).Observe(durationMS)
}
