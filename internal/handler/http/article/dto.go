// Package article provides the HTTP handlers for the article API: listing,
// reading, and on-demand generation.
package article

import (
	"context"
	"time"

	"autoblog/internal/domain/entity"
)

// Service is the slice of the article use cases the handlers need.
type Service interface {
	List(ctx context.Context) ([]*entity.Article, error)
	Get(ctx context.Context, id int64) (*entity.Article, error)
	Create(ctx context.Context, topic string) (*entity.Article, error)
}

// DTO is the JSON shape of an article in API responses.
type DTO struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

func toDTO(a *entity.Article) DTO {
	return DTO{
		ID:        a.ID,
		Title:     a.Title,
		Content:   a.Content,
		CreatedAt: a.CreatedAt.UTC().Format(time.RFC3339),
	}
}
