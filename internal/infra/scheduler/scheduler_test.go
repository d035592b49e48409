package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"autoblog/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCreator struct {
	topics []string
	err    error
}

func (s *stubCreator) Create(_ context.Context, topic string) (*entity.Article, error) {
	s.topics = append(s.topics, topic)
	if s.err != nil {
		return nil, s.err
	}
	return &entity.Article{ID: 1, Title: "scheduled", CreatedAt: time.Now().UTC()}, nil
}

func TestNewRejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CronSchedule = "not a schedule"

	_, err := New(&cfg, &stubCreator{}, testLogger(), testMetrics)
	assert.Error(t, err)

	cfg = DefaultConfig()
	cfg.Timezone = "Nowhere/Null"
	_, err = New(&cfg, &stubCreator{}, testLogger(), testMetrics)
	assert.Error(t, err)
}

func TestRunJobUsesDefaultTopic(t *testing.T) {
	cfg := DefaultConfig()
	creator := &stubCreator{}
	s, err := New(&cfg, creator, testLogger(), testMetrics)
	require.NoError(t, err)

	s.runJob()

	require.Len(t, creator.topics, 1)
	assert.Equal(t, "", creator.topics[0], "scheduler passes an empty topic so the service default applies")
}

func TestRunJobSurvivesCreateFailure(t *testing.T) {
	cfg := DefaultConfig()
	creator := &stubCreator{err: errors.New("insert: disk full")}
	s, err := New(&cfg, creator, testLogger(), testMetrics)
	require.NoError(t, err)

	// Must not panic; the failure lands in logs and metrics only.
	s.runJob()

	assert.Len(t, creator.topics, 1)
}

func TestStartStop(t *testing.T) {
	cfg := DefaultConfig()
	s, err := New(&cfg, &stubCreator{}, testLogger(), testMetrics)
	require.NoError(t, err)

	s.Start()
	done := s.Stop()

	select {
	case <-done.Done():
	case <-time.After(time.Second):
		t.Fatal("Stop context not done with no job in flight")
	}
}
