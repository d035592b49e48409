package feed

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"autoblog/internal/domain/entity"

	"github.com/mmcdole/gofeed"
)

type stubLister struct {
	articles []*entity.Article
	err      error
}

func (s *stubLister) List(_ context.Context) ([]*entity.Article, error) {
	return s.articles, s.err
}

func testConfig() Config {
	return Config{
		Title:       "Autoblog",
		Description: "Generated articles",
		BaseURL:     "https://blog.example.com",
	}
}

func TestFeedParsesAndCarriesItems(t *testing.T) {
	h := &Handler{
		Svc: &stubLister{articles: []*entity.Article{
			{ID: 2, Title: "Second <post>", Content: "Body & more", CreatedAt: time.Date(2026, 8, 22, 3, 0, 0, 0, time.UTC)},
			{ID: 1, Title: "First post", Content: "Hello", CreatedAt: time.Date(2026, 8, 21, 3, 0, 0, 0, time.UTC)},
		}},
		Cfg: testConfig(),
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/feed.xml", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/rss+xml") {
		t.Errorf("Content-Type = %q", ct)
	}

	parsed, err := gofeed.NewParser().ParseString(rec.Body.String())
	if err != nil {
		t.Fatalf("feed does not parse: %v\n%s", err, rec.Body.String())
	}
	if parsed.Title != "Autoblog" {
		t.Errorf("channel title = %q", parsed.Title)
	}
	if len(parsed.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(parsed.Items))
	}
	if parsed.Items[0].Title != "Second <post>" {
		t.Errorf("first item title = %q, want escaped title round-tripped", parsed.Items[0].Title)
	}
	if parsed.Items[0].Link != "https://blog.example.com/api/articles/2" {
		t.Errorf("first item link = %q", parsed.Items[0].Link)
	}
	if got := parsed.Items[0].Content; got != "Body & more" {
		t.Errorf("content:encoded = %q, want the full body", got)
	}
	if parsed.Items[0].PublishedParsed == nil || !parsed.Items[0].PublishedParsed.Equal(time.Date(2026, 8, 22, 3, 0, 0, 0, time.UTC)) {
		t.Errorf("pubDate = %v", parsed.Items[0].Published)
	}
}

func TestFeedCapsItems(t *testing.T) {
	var articles []*entity.Article
	for i := 30; i >= 1; i-- {
		articles = append(articles, &entity.Article{
			ID:        int64(i),
			Title:     fmt.Sprintf("post %d", i),
			Content:   "body",
			CreatedAt: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
		})
	}
	h := &Handler{Svc: &stubLister{articles: articles}, Cfg: testConfig()}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/feed.xml", nil))

	parsed, err := gofeed.NewParser().ParseString(rec.Body.String())
	if err != nil {
		t.Fatalf("feed does not parse: %v", err)
	}
	if len(parsed.Items) != 20 {
		t.Errorf("items = %d, want 20", len(parsed.Items))
	}
	if parsed.Items[0].Title != "post 30" {
		t.Errorf("first item = %q, want newest", parsed.Items[0].Title)
	}
}

func TestFeedEmptyStore(t *testing.T) {
	h := &Handler{Svc: &stubLister{}, Cfg: testConfig()}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/feed.xml", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	parsed, err := gofeed.NewParser().ParseString(rec.Body.String())
	if err != nil {
		t.Fatalf("feed does not parse: %v", err)
	}
	if len(parsed.Items) != 0 {
		t.Errorf("items = %d, want 0", len(parsed.Items))
	}
}

func TestFeedStoreError(t *testing.T) {
	h := &Handler{Svc: &stubLister{err: errors.New("db down")}, Cfg: testConfig()}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/feed.xml", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}
