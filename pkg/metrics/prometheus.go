// Package metrics provides Prometheus metrics for the cartoart service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Resolution metrics - the business outcome that matters
	resolutionsTotal   *prometheus.CounterVec
	resolutionRefusals *prometheus.CounterVec

	// Snapshot metrics - market index rebuilds
	snapshotRebuildDuration prometheus.Histogram
	snapshotPublished       prometheus.Counter
	snapshotStaleDiscarded  prometheus.Counter
	snapshotRecords         prometheus.Gauge
	snapshotSkippedRecords  prometheus.Gauge
	snapshotLastUnix        prometheus.Gauge

	// Valuation feed metrics
	valuationRecords           prometheus.Gauge
	valuationRefreshErrors     prometheus.Counter
	valuationCredentialExpired prometheus.Gauge

	// Roster metrics
	rosterEntries  prometheus.Gauge
	rosterNotFound prometheus.Gauge

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpErrors          *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "cartoart",
		subsystem:        "resolver",
		histogramBuckets: prometheus.DefBuckets,
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
	auto := promauto.With(m.registry)

	m.resolutionsTotal = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "resolutions_total",
		Help:      "Resolved queries by tier (exact or variant)",
	}, []string{"tier"})

	m.resolutionRefusals = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "resolution_refusals_total",
		Help:      "Refused queries by reason (no_candidate, ambiguous, below_threshold, bad_position, no_index)",
	}, []string{"reason"})

	m.snapshotRebuildDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_rebuild_duration_milliseconds",
		Help:      "Histogram of market index rebuild duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.snapshotPublished = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_published_total",
		Help:      "Total number of market snapshots published",
	})

	m.snapshotStaleDiscarded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_stale_discarded_total",
		Help:      "Fetches discarded because a newer snapshot was published first",
	})

	m.snapshotRecords = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_records",
		Help:      "Records indexed in the current market snapshot",
	})

	m.snapshotSkippedRecords = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_skipped_records",
		Help:      "Records excluded from the current snapshot for missing club/position/name",
	})

	m.snapshotLastUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_last_unix",
		Help:      "Unix timestamp of the last published snapshot",
	})

	m.valuationRecords = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "valuation_records",
		Help:      "Records covered by the current valuation feed",
	})

	m.valuationRefreshErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "valuation_refresh_errors_total",
		Help:      "Valuation feed refresh failures (network or auth)",
	})

	m.valuationCredentialExpired = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "valuation_credential_expired",
		Help:      "1 when the valuation feed credential is expired or rejected",
	})

	m.rosterEntries = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "roster_entries",
		Help:      "Entries in the currently stored roster",
	})

	m.rosterNotFound = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "roster_not_found",
		Help:      "Roster entries that did not resolve against the current snapshot",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method and status code",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.httpErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_errors_total",
		Help:      "HTTP error responses by endpoint and error type",
	}, []string{"endpoint", "method", "error_type"})
}

// Package-level helpers operating on the global manager.

// RecordResolution counts a successful resolution by tier ("exact" or "variant").
func RecordResolution(tier string) {
	globalManager.resolutionsTotal.WithLabelValues(tier).Inc()
}

// RecordRefusal counts a refused resolution by reason.
func RecordRefusal(reason string) {
	globalManager.resolutionRefusals.WithLabelValues(reason).Inc()
}

// RecordSnapshotRebuild records the duration of a market index rebuild.
func RecordSnapshotRebuild(durationMs float64) {
	globalManager.snapshotRebuildDuration.Observe(durationMs)
}

// RecordSnapshotPublished counts a published snapshot and stamps its time.
func RecordSnapshotPublished(unixSeconds float64) {
	globalManager.snapshotPublished.Inc()
	globalManager.snapshotLastUnix.Set(unixSeconds)
}

// RecordSnapshotStale counts a fetch discarded by the stale-fetch guard.
func RecordSnapshotStale() {
	globalManager.snapshotStaleDiscarded.Inc()
}

// UpdateSnapshotRecords sets the indexed/skipped record gauges.
func UpdateSnapshotRecords(indexed, skipped int) {
	globalManager.snapshotRecords.Set(float64(indexed))
	globalManager.snapshotSkippedRecords.Set(float64(skipped))
}

// UpdateValuationRecords sets the valuation feed coverage gauge.
func UpdateValuationRecords(count int) {
	globalManager.valuationRecords.Set(float64(count))
}

// RecordValuationRefreshError counts a valuation feed refresh failure.
func RecordValuationRefreshError() {
	globalManager.valuationRefreshErrors.Inc()
}

// SetValuationCredentialExpired flags whether the feed credential is expired.
func SetValuationCredentialExpired(expired bool) {
	if expired {
		globalManager.valuationCredentialExpired.Set(1)
	} else {
		globalManager.valuationCredentialExpired.Set(0)
	}
}

// UpdateRosterCounts sets the stored roster gauges.
func UpdateRosterCounts(entries, notFound int) {
	globalManager.rosterEntries.Set(float64(entries))
	globalManager.rosterNotFound.Set(float64(notFound))
}

// RecordHTTPRequest counts an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records an HTTP request's duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordHTTPError counts an HTTP error response.
func RecordHTTPError(endpoint, method, errorType string) {
	globalManager.httpErrors.WithLabelValues(endpoint, method, errorType).Inc()
}

// GetRegistry returns the custom registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
