package generator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoblog/internal/observability/metrics"
)

// MockMetricsRecorder captures recordings for assertions in tests.
type MockMetricsRecorder struct {
	RecordedAttempts      []string
	RecordedVerifications []string
	RecordedDurations     []time.Duration
}

func (m *MockMetricsRecorder) RecordAttempt(model, result string) {
	m.RecordedAttempts = append(m.RecordedAttempts, model+"="+result)
}

func (m *MockMetricsRecorder) RecordKeyVerification(result string) {
	m.RecordedVerifications = append(m.RecordedVerifications, result)
}

func (m *MockMetricsRecorder) RecordDuration(duration time.Duration) {
	m.RecordedDurations = append(m.RecordedDurations, duration)
}

// The mock must stay assignable wherever the production recorder is used.
var _ GenerationMetricsRecorder = (*MockMetricsRecorder)(nil)
var _ GenerationMetricsRecorder = (*PrometheusGenerationMetrics)(nil)

func TestNewPrometheusGenerationMetrics(t *testing.T) {
	recorder := NewPrometheusGenerationMetrics()

	require.NotNil(t, recorder)
}

func TestPrometheusGenerationMetrics_RecordAttempt(t *testing.T) {
	recorder := NewPrometheusGenerationMetrics()

	tests := []struct {
		name   string
		model  string
		result string
	}{
		{
			name:   "successful attempt",
			model:  "meta-llama/llama-3.3-70b-instruct:free",
			result: metrics.AttemptSuccess,
		},
		{
			name:   "rate limited attempt",
			model:  "google/gemma-3-27b-it:free",
			result: metrics.AttemptRateLimited,
		},
		{
			name:   "unauthorized attempt",
			model:  "deepseek/deepseek-chat:free",
			result: metrics.AttemptUnauthorized,
		},
		{
			name:   "empty model label",
			model:  "",
			result: metrics.AttemptRequestFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				recorder.RecordAttempt(tt.model, tt.result)
			})
		})
	}
}

func TestPrometheusGenerationMetrics_RecordKeyVerification(t *testing.T) {
	recorder := NewPrometheusGenerationMetrics()

	for _, result := range []string{metrics.KeyValid, metrics.KeyInvalid, metrics.KeyUnreachable} {
		assert.NotPanics(t, func() {
			recorder.RecordKeyVerification(result)
		})
	}
}

func TestPrometheusGenerationMetrics_RecordDuration(t *testing.T) {
	recorder := NewPrometheusGenerationMetrics()

	tests := []struct {
		name     string
		duration time.Duration
	}{
		{
			name:     "fallback-only run",
			duration: 50 * time.Microsecond,
		},
		{
			name:     "single candidate run",
			duration: 2 * time.Second,
		},
		{
			name:     "full sweep run",
			duration: 90 * time.Second,
		},
		{
			name:     "zero duration",
			duration: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				recorder.RecordDuration(tt.duration)
			})
		})
	}
}

func TestMockMetricsRecorder_Captures(t *testing.T) {
	mock := &MockMetricsRecorder{}

	mock.RecordAttempt("model/a", metrics.AttemptSuccess)
	mock.RecordKeyVerification(metrics.KeyValid)
	mock.RecordDuration(time.Second)

	require.Len(t, mock.RecordedAttempts, 1)
	assert.Equal(t, "model/a="+metrics.AttemptSuccess, mock.RecordedAttempts[0])
	require.Len(t, mock.RecordedVerifications, 1)
	assert.Equal(t, metrics.KeyValid, mock.RecordedVerifications[0])
	require.Len(t, mock.RecordedDurations, 1)
	assert.Equal(t, time.Second, mock.RecordedDurations[0])
}
