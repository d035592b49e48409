package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"autoblog/internal/domain/entity"

	"github.com/robfig/cron/v3"
)

// ArticleCreator is the slice of the article use cases the scheduler needs.
// An empty topic selects the configured default.
type ArticleCreator interface {
	Create(ctx context.Context, topic string) (*entity.Article, error)
}

// Scheduler owns the cron runner. Each firing generates and persists one
// article on the default topic.
type Scheduler struct {
	cron    *cron.Cron
	cfg     *SchedulerConfig
	creator ArticleCreator
	logger  *slog.Logger
	metrics *SchedulerMetrics
}

// New builds a scheduler from a validated config. The cron expression and
// timezone were checked at load time, so failures here indicate a config
// constructed by hand.
func New(cfg *SchedulerConfig, creator ArticleCreator, logger *slog.Logger, metrics *SchedulerMetrics) (*Scheduler, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("New: load timezone %q: %w", cfg.Timezone, err)
	}

	s := &Scheduler{
		cron:    cron.New(cron.WithLocation(loc)),
		cfg:     cfg,
		creator: creator,
		logger:  logger,
		metrics: metrics,
	}

	if _, err := s.cron.AddFunc(cfg.CronSchedule, s.runJob); err != nil {
		return nil, fmt.Errorf("New: register cron schedule %q: %w", cfg.CronSchedule, err)
	}

	return s, nil
}

// Start begins firing on schedule. It returns immediately; jobs run on the
// cron goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started",
		slog.String("schedule", s.cfg.CronSchedule),
		slog.String("timezone", s.cfg.Timezone),
		slog.Duration("job_timeout", s.cfg.JobTimeout))
}

// Stop halts future firings and returns a context that is done once any
// in-flight job finishes. Callers wait on it during shutdown.
func (s *Scheduler) Stop() context.Context {
	s.logger.Info("scheduler stopping")
	return s.cron.Stop()
}

// runJob is one firing: generate and persist an article on the default
// topic, bounded by the job timeout. Generation degrades internally, so a
// failure here means the store rejected the write.
func (s *Scheduler) runJob() {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.JobTimeout)
	defer cancel()

	start := time.Now()
	article, err := s.creator.Create(ctx, "")
	duration := time.Since(start)

	s.metrics.RecordJobDuration(duration.Seconds())

	if err != nil {
		s.metrics.RecordJobRun("failure")
		s.logger.Error("scheduled generation failed",
			slog.Duration("duration", duration),
			slog.Any("error", err))
		return
	}

	s.metrics.RecordJobRun("success")
	s.metrics.RecordLastSuccess()
	s.logger.Info("scheduled generation completed",
		slog.Int64("article_id", article.ID),
		slog.String("title", article.Title),
		slog.Duration("duration", duration))
}
