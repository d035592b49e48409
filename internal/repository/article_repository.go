package repository

import (
	"context"

	"autoblog/internal/domain/entity"
)

type ArticleRepository interface {
	// Insert creates one article row and returns the assigned ID.
	// The creation timestamp is set by the storage engine.
	Insert(ctx context.Context, title, content string) (int64, error)
	// List retrieves all articles ordered newest first.
	List(ctx context.Context) ([]*entity.Article, error)
	// Get retrieves an article by ID.
	// Returns (nil, nil) if the article is not found.
	Get(ctx context.Context, id int64) (*entity.Article, error)
	// Count returns the total number of stored articles.
	// Used by startup seeding to decide whether the store is empty.
	Count(ctx context.Context) (int64, error)
}
