package generator

import (
	"time"

	"autoblog/internal/observability/metrics"
)

// GenerationMetricsRecorder records observability metrics for generation
// attempts. It is an interface so tests can capture recordings without a
// Prometheus registry.
type GenerationMetricsRecorder interface {
	// RecordAttempt records the outcome of one completion request against
	// one candidate model. The result is one of the metrics.Attempt*
	// constants.
	RecordAttempt(model, result string)

	// RecordKeyVerification records the outcome of a credential check
	// against the model-listing endpoint: "valid", "invalid" or
	// "unreachable".
	RecordKeyVerification(result string)

	// RecordDuration records the wall-clock duration of a whole Generate
	// call, fallback-only runs included.
	RecordDuration(duration time.Duration)
}

// PrometheusGenerationMetrics forwards recordings to the collectors in the
// shared metrics registry. Collector registration happens once in that
// package, so this type carries no state of its own.
type PrometheusGenerationMetrics struct{}

// NewPrometheusGenerationMetrics returns the production metrics recorder.
func NewPrometheusGenerationMetrics() *PrometheusGenerationMetrics {
	return &PrometheusGenerationMetrics{}
}

// RecordAttempt implements GenerationMetricsRecorder.
func (p *PrometheusGenerationMetrics) RecordAttempt(model, result string) {
	metrics.RecordGenerationAttempt(model, result)
}

// RecordKeyVerification implements GenerationMetricsRecorder.
func (p *PrometheusGenerationMetrics) RecordKeyVerification(result string) {
	metrics.RecordKeyVerification(result)
}

// RecordDuration implements GenerationMetricsRecorder.
func (p *PrometheusGenerationMetrics) RecordDuration(duration time.Duration) {
	metrics.RecordGenerationDuration(duration)
}
