package config

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

// TestNewConfigMetrics_Registration tests that metrics are registered correctly
func TestNewConfigMetrics_Registration(t *testing.T) {
	// Unique component name avoids duplicate registration across tests
	metrics := NewConfigMetrics("test_component_registration")

	assert.NotNil(t, metrics.LoadTimestamp, "LoadTimestamp should be initialized")
	assert.NotNil(t, metrics.ValidationErrorsTotal, "ValidationErrorsTotal should be initialized")
	assert.NotNil(t, metrics.FallbacksTotal, "FallbacksTotal should be initialized")
	assert.NotNil(t, metrics.FallbackActive, "FallbackActive should be initialized")
	assert.Equal(t, "test_component_registration", metrics.componentName)
}

// TestConfigMetrics_RecordFallback verifies fallback counting by field
func TestConfigMetrics_RecordFallback(t *testing.T) {
	metrics := NewConfigMetrics("test_component_fallback")

	metrics.RecordFallback("cron_schedule")
	metrics.RecordFallback("cron_schedule")
	metrics.RecordFallback("timezone")

	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.FallbacksTotal.WithLabelValues("cron_schedule")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.FallbacksTotal.WithLabelValues("timezone")))
}

// TestConfigMetrics_SetFallbackActive verifies the gauge flips between 0 and 1
func TestConfigMetrics_SetFallbackActive(t *testing.T) {
	metrics := NewConfigMetrics("test_component_active")

	metrics.SetFallbackActive(true)
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.FallbackActive))

	metrics.SetFallbackActive(false)
	assert.Equal(t, float64(0), testutil.ToFloat64(metrics.FallbackActive))
}

// TestConfigMetrics_RecordValidationError verifies error counting by field
func TestConfigMetrics_RecordValidationError(t *testing.T) {
	metrics := NewConfigMetrics("test_component_validation")

	metrics.RecordValidationError("timeout")

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.ValidationErrorsTotal.WithLabelValues("timeout")))
}
