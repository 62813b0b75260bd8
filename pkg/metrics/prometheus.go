// Package metrics provides Prometheus metrics for the nnx1 diagnostic service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Questionnaire flow
	sessionsStarted       *prometheus.CounterVec
	sessionsCompleted     *prometheus.CounterVec
	answersRecorded       *prometheus.CounterVec
	responseStoreFailures *prometheus.CounterVec
	evaluations           *prometheus.CounterVec
	unknownTool           prometheus.Counter
	phaseAssessments      *prometheus.CounterVec

	// Narrative generation
	narratives         *prometheus.CounterVec
	narrativeLatency   *prometheus.HistogramVec
	narrativeCacheHits prometheus.Counter

	// Report delivery
	deliveries  *prometheus.CounterVec
	pdfFailures prometheus.Counter

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByEndpoint    *prometheus.CounterVec
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // keeps default Go metrics out

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager. Without WithPrometheusRegistry the
// collectors land on the default registerer.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "nnx1",
		subsystem:        "diagnostic",
		histogramBuckets: prometheus.DefBuckets,
		constLabels:      map[string]string{},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogramOpts(name, help string) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
		Buckets:     m.histogramBuckets,
	}
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.sessionsStarted = auto.NewCounterVec(m.counterOpts("sessions_started_total", "Questionnaire sessions started"), []string{"tool"})
	m.sessionsCompleted = auto.NewCounterVec(m.counterOpts("sessions_completed_total", "Questionnaire sessions completed"), []string{"tool"})
	m.answersRecorded = auto.NewCounterVec(m.counterOpts("answers_recorded_total", "Answers appended to sessions"), []string{"tool", "answer"})
	m.responseStoreFailures = auto.NewCounterVec(
		m.counterOpts("response_store_failures_total", "Best-effort response writes that failed"),
		[]string{"backend"},
	)
	m.evaluations = auto.NewCounterVec(m.counterOpts("evaluations_total", "Evaluations computed by tier"), []string{"tool", "tier"})
	m.unknownTool = auto.NewCounter(m.counterOpts("unknown_tool_total", "Classifications that fell back to the default taxonomy"))
	m.phaseAssessments = auto.NewCounterVec(m.counterOpts("phase_assessments_total", "Phase assessments by result"), []string{"phase"})

	m.narratives = auto.NewCounterVec(m.counterOpts("narratives_total", "Narratives produced by source"), []string{"source"})
	m.narrativeLatency = auto.NewHistogramVec(
		m.histogramOpts("narrative_latency_seconds", "Latency of narrative provider calls"),
		[]string{"provider", "outcome"},
	)
	m.narrativeCacheHits = auto.NewCounter(m.counterOpts("narrative_cache_hits_total", "Narratives served from the LRU"))

	m.deliveries = auto.NewCounterVec(m.counterOpts("deliveries_total", "Report deliveries by final status"), []string{"status"})
	m.pdfFailures = auto.NewCounter(m.counterOpts("pdf_failures_total", "PDF renders that failed and were skipped"))

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "HTTP requests by endpoint, method and status"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_seconds", "HTTP request duration"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.errorsByEndpoint = auto.NewCounterVec(
		m.counterOpts("http_errors_total", "HTTP error responses by endpoint and type"),
		[]string{"endpoint", "method", "error_type"},
	)
}

// RecordSessionStarted counts a new session for a tool.
func (m *Manager) RecordSessionStarted(tool string) {
	m.sessionsStarted.WithLabelValues(tool).Inc()
}

func (m *Manager) RecordSessionCompleted(tool string) {
	m.sessionsCompleted.WithLabelValues(tool).Inc()
}

func (m *Manager) RecordAnswer(tool, answer string) {
	m.answersRecorded.WithLabelValues(tool, answer).Inc()
}

func (m *Manager) RecordResponseStoreFailure(backend string) {
	m.responseStoreFailures.WithLabelValues(backend).Inc()
}

func (m *Manager) RecordEvaluation(tool, tier string) {
	m.evaluations.WithLabelValues(tool, tier).Inc()
}

func (m *Manager) RecordUnknownTool() {
	m.unknownTool.Inc()
}

func (m *Manager) RecordPhase(phase string) {
	m.phaseAssessments.WithLabelValues(phase).Inc()
}

func (m *Manager) RecordNarrative(source string) {
	m.narratives.WithLabelValues(source).Inc()
}

func (m *Manager) RecordNarrativeLatency(provider, outcome string, seconds float64) {
	m.narrativeLatency.WithLabelValues(provider, outcome).Observe(seconds)
}

func (m *Manager) RecordNarrativeCacheHit() {
	m.narrativeCacheHits.Inc()
}

func (m *Manager) RecordDelivery(status string) {
	m.deliveries.WithLabelValues(status).Inc()
}

func (m *Manager) RecordPDFFailure() {
	m.pdfFailures.Inc()
}

func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, seconds float64) {
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(seconds)
}

func (m *Manager) RecordHTTPError(endpoint, method, errorType string) {
	m.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// Package-level helpers record on the global manager.

// RecordSessionStarted counts a new session for a tool.
func RecordSessionStarted(tool string) { globalManager.RecordSessionStarted(tool) }

// RecordSessionCompleted counts a completed session for a tool.
func RecordSessionCompleted(tool string) { globalManager.RecordSessionCompleted(tool) }

// RecordAnswer counts one recorded answer.
func RecordAnswer(tool, answer string) { globalManager.RecordAnswer(tool, answer) }

// RecordResponseStoreFailure counts a failed best-effort response write.
func RecordResponseStoreFailure(backend string) { globalManager.RecordResponseStoreFailure(backend) }

// RecordEvaluation counts an evaluation by tier label.
func RecordEvaluation(tool, tier string) { globalManager.RecordEvaluation(tool, tier) }

// RecordUnknownTool counts a fallback to the default taxonomy.
func RecordUnknownTool() { globalManager.RecordUnknownTool() }

// RecordPhase counts a phase assessment.
func RecordPhase(phase string) { globalManager.RecordPhase(phase) }

// RecordNarrative counts a narrative by source.
func RecordNarrative(source string) { globalManager.RecordNarrative(source) }

// RecordNarrativeLatency observes a provider call.
func RecordNarrativeLatency(provider, outcome string, seconds float64) {
	globalManager.RecordNarrativeLatency(provider, outcome, seconds)
}

// RecordNarrativeCacheHit counts a memoised narrative.
func RecordNarrativeCacheHit() { globalManager.RecordNarrativeCacheHit() }

// RecordDelivery counts a delivery by final status.
func RecordDelivery(status string) { globalManager.RecordDelivery(status) }

// RecordPDFFailure counts a skipped PDF attachment.
func RecordPDFFailure() { globalManager.RecordPDFFailure() }

// RecordHTTPRequest counts and times an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string, seconds float64) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode, seconds)
}

// RecordHTTPError counts an HTTP error response.
func RecordHTTPError(endpoint, method, errorType string) {
	globalManager.RecordHTTPError(endpoint, method, errorType)
}

// GetRegistry returns the registry served on /metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
