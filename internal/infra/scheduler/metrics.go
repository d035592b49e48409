package scheduler

import (
	"autoblog/internal/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SchedulerMetrics exposes Prometheus metrics for the cron job, plus the
// embedded configuration fallback metrics.
type SchedulerMetrics struct {
	*config.ConfigMetrics

	// CronJobRunsTotal counts firings by outcome ("success"/"failure").
	CronJobRunsTotal *prometheus.CounterVec

	// CronJobDurationSeconds observes how long each firing took. Buckets
	// cover a fast template fallback up to a slow multi-candidate chain.
	CronJobDurationSeconds prometheus.Histogram

	// CronJobLastSuccessTimestamp is the Unix time of the last successful
	// firing; alert when it falls more than a day behind.
	CronJobLastSuccessTimestamp prometheus.Gauge
}

// NewSchedulerMetrics creates and registers the scheduler metrics.
// Registration happens through promauto, so call this once per process.
func NewSchedulerMetrics() *SchedulerMetrics {
	return &SchedulerMetrics{
		ConfigMetrics: config.NewConfigMetrics("scheduler"),

		CronJobRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "scheduler_cron_job_runs_total",
			Help: "Total number of scheduled generation job runs by status (success/failure)",
		}, []string{"status"}),

		CronJobDurationSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "scheduler_cron_job_duration_seconds",
			Help:    "Duration of scheduled generation job runs in seconds",
			Buckets: []float64{0.1, 1, 5, 15, 60, 180, 600},
		}),

		CronJobLastSuccessTimestamp: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "scheduler_cron_job_last_success_timestamp",
			Help: "Unix timestamp of the last successful scheduled generation job",
		}),
	}
}

// RecordJobRun increments the run counter for the given status.
func (m *SchedulerMetrics) RecordJobRun(status string) {
	m.CronJobRunsTotal.WithLabelValues(status).Inc()
}

// RecordJobDuration observes one firing's duration in seconds.
func (m *SchedulerMetrics) RecordJobDuration(seconds float64) {
	m.CronJobDurationSeconds.Observe(seconds)
}

// RecordLastSuccess marks now as the last successful firing.
func (m *SchedulerMetrics) RecordLastSuccess() {
	m.CronJobLastSuccessTimestamp.SetToCurrentTime()
}
