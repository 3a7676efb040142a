// Package metrics holds the Prometheus instrumentation for the gateway.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the gateway.
type Metrics struct {
	registry *prometheus.Registry

	// Request metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Provider metrics
	ProviderErrorsTotal *prometheus.CounterVec

	// Lead metrics
	LeadsCapturedTotal *prometheus.CounterVec

	// Voice metrics
	TranscriptsTotal    *prometheus.CounterVec
	AudioArtifactsSaved prometheus.Counter

	// Rate limit metrics
	RateLimitHits *prometheus.CounterVec
}

// New creates a Metrics instance with all metrics registered on a private
// registry.
func New(namespace string) *Metrics {
	if namespace == "" {
		namespace = "leadgate"
	}

	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Total number of API requests",
		},
		[]string{"endpoint", "status"},
	)

	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"endpoint"},
	)

	providerErrorsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_errors_total",
			Help:      "Total number of upstream provider failures",
		},
		[]string{"provider"},
	)

	leadsCapturedTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "leads_captured_total",
			Help:      "Total number of complete leads captured",
		},
		[]string{"strategy"},
	)

	transcriptsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transcripts_total",
			Help:      "Total number of voice transcriptions by detected language",
		},
		[]string{"language"},
	)

	audioArtifactsSaved := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audio_artifacts_saved_total",
			Help:      "Total number of synthesized audio artifacts written",
		},
	)

	rateLimitHits := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limit_hits_total",
			Help:      "Total number of rate limit hits",
		},
		[]string{"endpoint"},
	)

	registry.MustRegister(
		requestsTotal,
		requestDuration,
		providerErrorsTotal,
		leadsCapturedTotal,
		transcriptsTotal,
		audioArtifactsSaved,
		rateLimitHits,
	)

	return &Metrics{
		registry:            registry,
		RequestsTotal:       requestsTotal,
		RequestDuration:     requestDuration,
		ProviderErrorsTotal: providerErrorsTotal,
		LeadsCapturedTotal:  leadsCapturedTotal,
		TranscriptsTotal:    transcriptsTotal,
		AudioArtifactsSaved: audioArtifactsSaved,
		RateLimitHits:       rateLimitHits,
	}
}

// Handler returns an HTTP handler for the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordRequest records a completed request.
func (m *Metrics) RecordRequest(endpoint, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(endpoint, status).Inc()
	m.RequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordProviderError records an upstream provider failure.
func (m *Metrics) RecordProviderError(provider string) {
	m.ProviderErrorsTotal.WithLabelValues(provider).Inc()
}

// RecordLead records a captured lead by extraction strategy
// ("marker" or "conversation").
func (m *Metrics) RecordLead(strategy string) {
	m.LeadsCapturedTotal.WithLabelValues(strategy).Inc()
}

// RecordTranscript records a successful transcription.
func (m *Metrics) RecordTranscript(language string) {
	m.TranscriptsTotal.WithLabelValues(language).Inc()
}

// RecordAudioArtifact records a stored synthesis artifact.
func (m *Metrics) RecordAudioArtifact() {
	m.AudioArtifactsSaved.Inc()
}

// RecordRateLimitHit records a rate limit rejection.
func (m *Metrics) RecordRateLimitHit(endpoint string) {
	m.RateLimitHits.WithLabelValues(endpoint).Inc()
}
