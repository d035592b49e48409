// Package scheduler runs the daily article generation job on a cron
// schedule. One firing produces one article through the same create flow
// the HTTP generate endpoint uses.
package scheduler

import (
	"fmt"
	"log/slog"
	"time"

	"autoblog/internal/pkg/config"
)

// SchedulerConfig controls when and how the generation job fires.
type SchedulerConfig struct {
	// CronSchedule is a standard 5-field cron expression.
	// Default: "0 3 * * *" (every day at 03:00).
	CronSchedule string

	// Timezone is the IANA timezone the schedule is evaluated in.
	// Default: "UTC".
	Timezone string

	// JobTimeout bounds a single firing, covering the full model-candidate
	// chain with retries. Default: 10 minutes.
	JobTimeout time.Duration
}

// DefaultConfig returns the production defaults: one article per day at
// 03:00 UTC, ten minutes to produce it.
func DefaultConfig() SchedulerConfig {
	return SchedulerConfig{
		CronSchedule: "0 3 * * *",
		Timezone:     "UTC",
		JobTimeout:   10 * time.Minute,
	}
}

// Validate checks every field, collecting all failures.
func (c *SchedulerConfig) Validate() error {
	var errs []error

	if err := config.ValidateCronSchedule(c.CronSchedule); err != nil {
		errs = append(errs, fmt.Errorf("cron schedule: %w", err))
	}
	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if err := config.ValidateDuration(c.JobTimeout, time.Minute, time.Hour); err != nil {
		errs = append(errs, fmt.Errorf("job timeout: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed: %v", errs)
	}
	return nil
}

// LoadConfigFromEnv loads the scheduler configuration from GENERATION_CRON,
// SCHEDULER_TIMEZONE, and GENERATION_JOB_TIMEOUT. Loading is fail-open:
// an invalid value falls back to its default with a warning and a metrics
// bump, and the returned config is always valid.
func LoadConfigFromEnv(logger *slog.Logger, metrics *SchedulerMetrics) *SchedulerConfig {
	cfg := DefaultConfig()
	fallbackApplied := false

	result := config.LoadEnvWithFallback("GENERATION_CRON", cfg.CronSchedule, config.ValidateCronSchedule)
	cfg.CronSchedule = result.Value.(string)
	if result.FallbackApplied {
		fallbackApplied = true
		metrics.RecordValidationError("cron_schedule")
		metrics.RecordFallback("cron_schedule")
		logWarnings(logger, "CronSchedule", result.Warnings)
	}

	result = config.LoadEnvWithFallback("SCHEDULER_TIMEZONE", cfg.Timezone, config.ValidateTimezone)
	cfg.Timezone = result.Value.(string)
	if result.FallbackApplied {
		fallbackApplied = true
		metrics.RecordValidationError("timezone")
		metrics.RecordFallback("timezone")
		logWarnings(logger, "Timezone", result.Warnings)
	}

	result = config.LoadEnvDuration("GENERATION_JOB_TIMEOUT", cfg.JobTimeout, func(d time.Duration) error {
		return config.ValidateDuration(d, time.Minute, time.Hour)
	})
	cfg.JobTimeout = result.Value.(time.Duration)
	if result.FallbackApplied {
		fallbackApplied = true
		metrics.RecordValidationError("job_timeout")
		metrics.RecordFallback("job_timeout")
		logWarnings(logger, "JobTimeout", result.Warnings)
	}

	metrics.SetFallbackActive(fallbackApplied)
	metrics.RecordLoadTimestamp()

	return &cfg
}

func logWarnings(logger *slog.Logger, field string, warnings []string) {
	for _, warning := range warnings {
		logger.Warn("Configuration fallback applied",
			slog.String("field", field),
			slog.String("warning", warning))
	}
}
