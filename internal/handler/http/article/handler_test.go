package article

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"autoblog/internal/domain/entity"
	artUC "autoblog/internal/usecase/article"
)

type stubService struct {
	articles  []*entity.Article
	listErr   error
	getErr    error
	createErr error

	createdTopics []string
}

func (s *stubService) List(_ context.Context) ([]*entity.Article, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.articles, nil
}

func (s *stubService) Get(_ context.Context, id int64) (*entity.Article, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	for _, a := range s.articles {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, artUC.ErrArticleNotFound
}

func (s *stubService) Create(_ context.Context, topic string) (*entity.Article, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.createdTopics = append(s.createdTopics, topic)
	a := &entity.Article{
		ID:        int64(len(s.articles) + 1),
		Title:     "Generated: " + topic,
		Content:   "body",
		CreatedAt: time.Date(2026, 8, 23, 3, 0, 0, 0, time.UTC),
	}
	s.articles = append(s.articles, a)
	return a, nil
}

func newMux(svc Service) *http.ServeMux {
	mux := http.NewServeMux()
	Register(mux, svc)
	mux.Handle("POST /api/articles/generate", &GenerateHandler{Svc: svc})
	return mux
}

func sampleArticles() []*entity.Article {
	return []*entity.Article{
		{ID: 2, Title: "second", Content: "b", CreatedAt: time.Date(2026, 8, 22, 3, 0, 0, 0, time.UTC)},
		{ID: 1, Title: "first", Content: "a", CreatedAt: time.Date(2026, 8, 21, 3, 0, 0, 0, time.UTC)},
	}
}

func TestListHandler(t *testing.T) {
	mux := newMux(&stubService{articles: sampleArticles()})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/articles", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var out []DTO
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("body not JSON: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	if out[0].ID != 2 || out[0].Title != "second" {
		t.Errorf("first element = %+v, want newest article", out[0])
	}
	if out[0].CreatedAt != "2026-08-22T03:00:00Z" {
		t.Errorf("created_at = %q, want RFC3339 UTC", out[0].CreatedAt)
	}
}

func TestListHandlerEmptyIsArray(t *testing.T) {
	mux := newMux(&stubService{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/articles", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("body = %q, want empty JSON array", got)
	}
}

func TestListHandlerStoreError(t *testing.T) {
	mux := newMux(&stubService{listErr: errors.New("db down")})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/articles", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestGetHandler(t *testing.T) {
	mux := newMux(&stubService{articles: sampleArticles()})

	tests := []struct {
		name     string
		path     string
		wantCode int
	}{
		{"found", "/api/articles/1", http.StatusOK},
		{"not found", "/api/articles/99", http.StatusNotFound},
		{"non-numeric id", "/api/articles/abc", http.StatusBadRequest},
		{"zero id", "/api/articles/0", http.StatusBadRequest},
		{"negative id", "/api/articles/-3", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if rec.Code != tt.wantCode {
				t.Fatalf("GET %s = %d, want %d", tt.path, rec.Code, tt.wantCode)
			}
			if tt.wantCode == http.StatusOK {
				var out DTO
				if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
					t.Fatalf("body not JSON: %v", err)
				}
				if out.ID != 1 || out.Title != "first" {
					t.Errorf("body = %+v", out)
				}
			}
		})
	}
}

func TestGenerateHandlerTopics(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantTopic string
	}{
		{"explicit topic", `{"topic":"Rust allocators"}`, "Rust allocators"},
		{"empty topic field", `{"topic":""}`, ""},
		{"empty object", `{}`, ""},
		{"no body", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubService{}
			mux := newMux(svc)

			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/articles/generate", strings.NewReader(tt.body)))

			if rec.Code != http.StatusCreated {
				t.Fatalf("status = %d, want 201 (body %q)", rec.Code, rec.Body.String())
			}
			if len(svc.createdTopics) != 1 || svc.createdTopics[0] != tt.wantTopic {
				t.Errorf("created topics = %v, want [%q]", svc.createdTopics, tt.wantTopic)
			}

			var out DTO
			if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
				t.Fatalf("body not JSON: %v", err)
			}
			if out.ID == 0 {
				t.Error("created article has no id")
			}
		})
	}
}

func TestGenerateHandlerMalformedBody(t *testing.T) {
	svc := &stubService{}
	mux := newMux(svc)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/articles/generate",
		strings.NewReader(`{"topic":`)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if len(svc.createdTopics) != 0 {
		t.Errorf("service was called despite malformed body: %v", svc.createdTopics)
	}
}

func TestGenerateHandlerPersistenceFailure(t *testing.T) {
	mux := newMux(&stubService{createErr: errors.New("insert: disk full")})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/articles/generate", strings.NewReader("{}")))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}
