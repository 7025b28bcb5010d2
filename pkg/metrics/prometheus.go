// Package metrics provides Prometheus metrics for the swiss tournament service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every collector exposed by the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Tournament flow
	roundsStarted        prometheus.Counter
	pairingsGenerated    prometheus.Counter
	byesAwarded          prometheus.Counter
	repeatPairings       prometheus.Counter
	unpairedCompetitors  prometheus.Counter
	resultsConfirmed     prometheus.Counter
	tournamentsCompleted prometheus.Counter
	validationFailures   *prometheus.CounterVec
	pairingLatency       prometheus.Histogram
	competitors          prometheus.Gauge
	currentRound         prometheus.Gauge

	// Export pipeline
	exports         *prometheus.CounterVec
	exportQueueSize prometheus.Gauge
	archiveWrites   *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByEndpoint    *prometheus.CounterVec
	errorsByComponent   *prometheus.CounterVec
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // registry without default Go collectors

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager. Collectors are registered on the
// configured registry (prometheus.DefaultRegisterer unless overridden).
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "swiss",
		subsystem:        "tournament",
		histogramBuckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      name,
		Help:      help,
	})
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      name,
		Help:      help,
	}, labels)
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      name,
		Help:      help,
	})
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.roundsStarted = m.counter("rounds_started_total", "Rounds paired and started")
	m.pairingsGenerated = m.counter("pairings_generated_total", "Head-to-head pairings produced")
	m.byesAwarded = m.counter("byes_awarded_total", "Byes awarded to an odd competitor out")
	m.repeatPairings = m.counter("repeat_pairings_total", "Pairings that repeat an earlier opponent because no fresh one was left")
	m.unpairedCompetitors = m.counter("unpaired_competitors_total", "Competitors left without an opponent for a round")
	m.resultsConfirmed = m.counter("results_confirmed_total", "Rounds whose results were confirmed")
	m.tournamentsCompleted = m.counter("tournaments_completed_total", "Tournaments that reached their final round")
	m.validationFailures = m.counterVec("validation_failures_total", "Rejected operations by error kind", "kind")
	m.pairingLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pairing_latency_milliseconds",
		Help:      "Time spent producing a round's pairings",
		Buckets:   m.histogramBuckets,
	})
	m.competitors = m.gauge("competitors", "Competitors in the running tournament")
	m.currentRound = m.gauge("current_round", "Current round number, 0 before the first round")

	m.exports = m.counterVec("exports_total", "Export attempts by sink and outcome", "sink", "outcome")
	m.exportQueueSize = m.gauge("export_queue_size", "Export jobs waiting for a worker")
	m.archiveWrites = m.counterVec("archive_writes_total", "Archive writes by outcome", "outcome")

	m.httpRequests = m.counterVec("http_requests_total", "HTTP requests by endpoint, method and status", "endpoint", "method", "status_code")
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})
	m.errorsByEndpoint = m.counterVec("errors_by_endpoint_total", "HTTP errors by endpoint", "endpoint", "method", "error_type")
	m.errorsByComponent = m.counterVec("errors_by_component_total", "Errors by component", "component", "error_type")
}

// RecordRoundStarted counts a started round and publishes the round number.
func RecordRoundStarted(round int) {
	globalManager.roundsStarted.Inc()
	globalManager.currentRound.Set(float64(round))
}

// RecordPairings adds n generated pairings.
func RecordPairings(n int) {
	globalManager.pairingsGenerated.Add(float64(n))
}

// RecordBye counts an awarded bye.
func RecordBye() {
	globalManager.byesAwarded.Inc()
}

// RecordRepeatPairings adds n forced repeat pairings.
func RecordRepeatPairings(n int) {
	globalManager.repeatPairings.Add(float64(n))
}

// RecordUnpaired adds n competitors that sat out a round.
func RecordUnpaired(n int) {
	globalManager.unpairedCompetitors.Add(float64(n))
}

// RecordResultsConfirmed counts a confirmed round.
func RecordResultsConfirmed() {
	globalManager.resultsConfirmed.Inc()
}

// RecordTournamentCompleted counts a finished tournament.
func RecordTournamentCompleted() {
	globalManager.tournamentsCompleted.Inc()
}

// RecordValidationFailure counts a rejected operation by kind.
func RecordValidationFailure(kind string) {
	globalManager.validationFailures.WithLabelValues(kind).Inc()
}

// RecordPairingLatency observes pairing latency in milliseconds.
func RecordPairingLatency(latencyMs float64) {
	globalManager.pairingLatency.Observe(latencyMs)
}

// UpdateCompetitors sets the competitor gauge.
func UpdateCompetitors(n int) {
	globalManager.competitors.Set(float64(n))
}

// UpdateCurrentRound sets the current round gauge.
func UpdateCurrentRound(round int) {
	globalManager.currentRound.Set(float64(round))
}

// RecordExport counts an export attempt on a sink. Outcomes: ok, error,
// skipped, dropped, closed.
func RecordExport(sink, outcome string) {
	globalManager.exports.WithLabelValues(sink, outcome).Inc()
}

// UpdateExportQueueSize sets the export backlog gauge.
func UpdateExportQueueSize(size int) {
	globalManager.exportQueueSize.Set(float64(size))
}

// RecordArchiveWrite counts an archive write; outcome is "ok" or "error".
func RecordArchiveWrite(outcome string) {
	globalManager.archiveWrites.WithLabelValues(outcome).Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordErrorByEndpoint records an HTTP error by endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorByComponent records an error by component.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// GetRegistry returns the custom registry backing the package-level recorders.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
