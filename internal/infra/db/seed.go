package db

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"

	"autoblog/internal/observability/metrics"
	"autoblog/internal/repository"

	"gopkg.in/yaml.v3"
)

//go:embed seeds/articles.yaml
var seedArticlesYAML []byte

type seedArticle struct {
	Title   string `yaml:"title"`
	Content string `yaml:"content"`
}

// Seed inserts the bundled starter articles when the articles table is
// empty. It runs synchronously at startup so the API never serves an
// empty blog. A non-empty table leaves existing data untouched.
func Seed(ctx context.Context, repo repository.ArticleRepository, logger *slog.Logger) error {
	count, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed: count articles: %w", err)
	}
	if count > 0 {
		logger.Info("seed skipped, articles already present", slog.Int64("count", count))
		metrics.UpdateArticlesTotal(count)
		return nil
	}

	var seeds []seedArticle
	if err := yaml.Unmarshal(seedArticlesYAML, &seeds); err != nil {
		return fmt.Errorf("seed: parse bundled articles: %w", err)
	}

	// シードデータの投入(テーブルが空の場合のみ)
	for _, s := range seeds {
		id, err := repo.Insert(ctx, s.Title, s.Content)
		if err != nil {
			return fmt.Errorf("seed: insert %q: %w", s.Title, err)
		}
		logger.Info("seed article inserted", slog.Int64("article_id", id), slog.String("title", s.Title))
	}

	metrics.UpdateArticlesTotal(int64(len(seeds)))
	logger.Info("seed completed", slog.Int("articles", len(seeds)))
	return nil
}
