package sqlite_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"

	"autoblog/internal/domain/entity"
	"autoblog/internal/infra/adapter/persistence/sqlite"
)

/* ────────────────────────────  ヘルパ  ──────────────────────────── */

func artRow(a *entity.Article) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "title", "content", "created_at",
	}).AddRow(
		a.ID, a.Title, a.Content, a.CreatedAt,
	)
}

/* ──────────────────────────── 1. Get ──────────────────────────── */

func TestArticleRepo_Get(t *testing.T) {
	t.Parallel()

	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	want := &entity.Article{
		ID: 1, Title: "Why Usage-Based Pricing Is Quietly Rewriting B2B SaaS Contracts",
		Content:   "Per-seat pricing made sense...",
		CreatedAt: now,
	}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT")).
		WithArgs(int64(1)).
		WillReturnRows(artRow(want))

	repo := sqlite.NewArticleRepo(db)
	got, err := repo.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("Get err=%v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Get mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestArticleRepo_Get_NotFound(t *testing.T) {
	t.Parallel()

	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT")).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "content", "created_at"}))

	repo := sqlite.NewArticleRepo(db)
	got, err := repo.Get(context.Background(), 99)
	if err != nil {
		t.Fatalf("Get err=%v", err)
	}
	if got != nil {
		t.Fatalf("Get = %+v, want nil for missing row", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

/* ──────────────────────────── 2. List ──────────────────────────── */

func TestArticleRepo_List(t *testing.T) {
	t.Parallel()

	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "title", "content", "created_at"}).
		AddRow(int64(2), "newer", "body", now).
		AddRow(int64(1), "older", "body", now.Add(-time.Hour))

	mock.ExpectQuery("SELECT.*FROM articles.*ORDER BY created_at DESC, id DESC").
		WillReturnRows(rows)

	repo := sqlite.NewArticleRepo(db)
	arts, err := repo.List(context.Background())
	if err != nil || len(arts) != 2 {
		t.Fatalf("List err=%v len=%d", err, len(arts))
	}
	if arts[0].ID != 2 || arts[1].ID != 1 {
		t.Fatalf("List order = [%d %d], want [2 1]", arts[0].ID, arts[1].ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestArticleRepo_List_Empty(t *testing.T) {
	t.Parallel()

	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("SELECT.*FROM articles").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "content", "created_at"}))

	repo := sqlite.NewArticleRepo(db)
	arts, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List err=%v", err)
	}
	if len(arts) != 0 {
		t.Fatalf("List len=%d, want 0", len(arts))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

/* ──────────────────────────── 3. Insert ──────────────────────────── */

func TestArticleRepo_Insert(t *testing.T) {
	t.Parallel()

	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO articles")).
		WithArgs("title", "content").
		WillReturnResult(sqlmock.NewResult(7, 1))

	repo := sqlite.NewArticleRepo(db)
	id, err := repo.Insert(context.Background(), "title", "content")
	if err != nil {
		t.Fatalf("Insert err=%v", err)
	}
	if id != 7 {
		t.Fatalf("Insert id=%d, want 7", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestArticleRepo_Insert_EmptyTitle(t *testing.T) {
	t.Parallel()

	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	// No query expectation: validation rejects before the database is touched

	repo := sqlite.NewArticleRepo(db)
	_, err := repo.Insert(context.Background(), "", "content")
	if !errors.Is(err, entity.ErrInvalidInput) {
		t.Fatalf("Insert err=%v, want ErrInvalidInput", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestArticleRepo_Insert_EmptyContent(t *testing.T) {
	t.Parallel()

	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	repo := sqlite.NewArticleRepo(db)
	_, err := repo.Insert(context.Background(), "title", "")
	if !errors.Is(err, entity.ErrInvalidInput) {
		t.Fatalf("Insert err=%v, want ErrInvalidInput", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

/* ──────────────────────────── 4. Count ──────────────────────────── */

func TestArticleRepo_Count(t *testing.T) {
	t.Parallel()

	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM articles")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(3)))

	repo := sqlite.NewArticleRepo(db)
	count, err := repo.Count(context.Background())
	if err != nil {
		t.Fatalf("Count err=%v", err)
	}
	if count != 3 {
		t.Fatalf("Count=%d, want 3", count)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestArticleRepo_Count_QueryError(t *testing.T) {
	t.Parallel()

	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM articles")).
		WillReturnError(errors.New("db down"))

	repo := sqlite.NewArticleRepo(db)
	_, err := repo.Count(context.Background())
	if err == nil {
		t.Fatal("Count err=nil, want error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
