package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"autoblog/internal/domain/entity"
)

type stubDiagnoser struct {
	report entity.Diagnostics
}

func (s *stubDiagnoser) TestConnection(_ context.Context) entity.Diagnostics {
	return s.report
}

func TestDiagnosticsHandlerSuccess(t *testing.T) {
	handler := &DiagnosticsHandler{Diag: &stubDiagnoser{report: entity.Diagnostics{
		OK:              true,
		KeyPresent:      true,
		ModelsChecked:   true,
		ConfiguredModel: "meta-llama/llama-3.3-70b-instruct:free",
		ModelAvailable:  true,
		Sample:          "Yes, I can produce text.",
		CheckedAt:       time.Now().UTC(),
	}}}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/articles/diagnostics/ai", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body DiagnosticsBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("body not JSON: %v", err)
	}
	if !body.OK || !body.KeyPresent || !body.ModelAvailable {
		t.Errorf("body = %+v, want all-ok report", body)
	}
	if body.Warnings == nil || body.Errors == nil {
		t.Error("warnings/errors should serialize as empty arrays, not null")
	}
}

func TestDiagnosticsHandlerFailureStillOK(t *testing.T) {
	// A failed probe is a 200 with the failure inside the payload.
	handler := &DiagnosticsHandler{Diag: &stubDiagnoser{report: entity.Diagnostics{
		ConfiguredModel: "meta-llama/llama-3.3-70b-instruct:free",
		Errors:          []string{"OPENROUTER_API_KEY is not set"},
		CheckedAt:       time.Now().UTC(),
	}}}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/articles/diagnostics/ai", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body DiagnosticsBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("body not JSON: %v", err)
	}
	if body.OK {
		t.Error("body.OK = true for a failed probe")
	}
	if len(body.Errors) != 1 {
		t.Errorf("errors = %v, want the single probe error", body.Errors)
	}
}
