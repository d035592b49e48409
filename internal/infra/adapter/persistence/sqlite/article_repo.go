// Package sqlite provides the SQLite implementation of the article repository.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"autoblog/internal/domain/entity"
	"autoblog/internal/repository"
)

// ArticleRepo implements the ArticleRepository interface using SQLite.
type ArticleRepo struct{ db *sql.DB }

// NewArticleRepo creates a new SQLite-backed article repository.
func NewArticleRepo(db *sql.DB) repository.ArticleRepository {
	return &ArticleRepo{db: db}
}

// List retrieves all articles ordered by creation date (newest first).
// Ties on created_at break on id so the order stays stable when several
// rows share one timestamp.
func (repo *ArticleRepo) List(ctx context.Context) ([]*entity.Article, error) {
	const query = `
SELECT id, title, content, created_at
FROM articles
ORDER BY created_at DESC, id DESC
`

	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("List: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	// パフォーマンス最適化: メモリ再割り当てを削減するため事前割り当て
	articles := make([]*entity.Article, 0, 100)
	for rows.Next() {
		var article entity.Article
		err := rows.Scan(&article.ID, &article.Title,
			&article.Content, &article.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		articles = append(articles, &article)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("List: rows.Err: %w", err)
	}

	return articles, nil
}

func (repo *ArticleRepo) Get(ctx context.Context, id int64) (*entity.Article, error) {
	const query = `
SELECT id, title, content, created_at
FROM articles
WHERE id = ?
LIMIT 1
`
	var article entity.Article
	err := repo.db.QueryRowContext(ctx, query, id).Scan(
		&article.ID, &article.Title, &article.Content, &article.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("Get: QueryRowContext: %w", err)
	}
	return &article, nil
}

// Insert stores a new article and returns its generated id. The created_at
// column is filled by the schema default.
func (repo *ArticleRepo) Insert(ctx context.Context, title, content string) (int64, error) {
	if err := entity.ValidateArticleFields(title, content); err != nil {
		return 0, err
	}

	const query = `
INSERT INTO articles (title, content)
VALUES (?, ?)
`
	res, err := repo.db.ExecContext(ctx, query, title, content)
	if err != nil {
		return 0, fmt.Errorf("Insert: ExecContext: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("Insert: LastInsertId: %w", err)
	}
	return id, nil
}

func (repo *ArticleRepo) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM articles`

	var count int64
	if err := repo.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("Count: QueryRowContext: %w", err)
	}
	return count, nil
}
