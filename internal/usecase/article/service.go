// Package article provides the article management use cases: listing and
// reading stored articles and creating new ones through a generator.
package article

import (
	"context"
	"fmt"
	"log/slog"

	"autoblog/internal/domain/entity"
	"autoblog/internal/observability/metrics"
	"autoblog/internal/repository"
)

// DefaultTopic is used when a create request carries no topic of its own.
// The scheduled job and topic-less API calls both end up here.
const DefaultTopic = "emerging trends in B2B SaaS and open-source Web3 infrastructure"

// Generator produces a {title, content} pair for a topic. Implementations
// never return an error: when the external service is unreachable or
// exhausted they degrade to a deterministic template article instead.
type Generator interface {
	Generate(ctx context.Context, topic string) entity.GenerationResult
}

// Service provides article use cases. It is the sole writer to the article
// store; reads delegate to the repository, creates run the generate-then-
// persist flow.
type Service struct {
	Repo  repository.ArticleRepository
	Gen   Generator
	Topic string // default topic; empty means DefaultTopic
}

// List retrieves all articles, newest first.
// Returns an error if the repository operation fails.
func (s *Service) List(ctx context.Context) ([]*entity.Article, error) {
	articles, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return articles, nil
}

// Get retrieves a single article by its ID.
// Returns ErrInvalidArticleID if the ID is not positive.
// Returns ErrArticleNotFound if the article does not exist.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Article, error) {
	if id <= 0 {
		return nil, ErrInvalidArticleID
	}

	article, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	if article == nil {
		return nil, ErrArticleNotFound
	}
	return article, nil
}

// Create generates an article for the topic and persists it. An empty topic
// selects the service default. Generation itself cannot fail (the generator
// degrades to a template), so the only error surface is the store: the
// insert and the re-read that returns the stored row with its assigned id
// and timestamp.
func (s *Service) Create(ctx context.Context, topic string) (*entity.Article, error) {
	if topic == "" {
		topic = s.defaultTopic()
	}

	result := s.Gen.Generate(ctx, topic)

	id, err := s.Repo.Insert(ctx, result.Title, result.Content)
	if err != nil {
		return nil, fmt.Errorf("create article: insert: %w", err)
	}

	metrics.RecordArticleGenerated(result.Source, result.Model)
	if count, err := s.Repo.Count(ctx); err == nil {
		metrics.UpdateArticlesTotal(count)
	}

	article, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("create article: read back id %d: %w", id, err)
	}
	if article == nil {
		// The row was just inserted; a miss here means the store is broken.
		return nil, fmt.Errorf("create article: inserted row %d not found", id)
	}

	slog.InfoContext(ctx, "article created",
		slog.Int64("article_id", article.ID),
		slog.String("topic", topic),
		slog.String("source", result.Source),
		slog.String("title", article.Title))

	return article, nil
}

func (s *Service) defaultTopic() string {
	if s.Topic != "" {
		return s.Topic
	}
	return DefaultTopic
}
