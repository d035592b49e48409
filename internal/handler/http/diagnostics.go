package http

import (
	"context"
	"net/http"
	"time"

	"autoblog/internal/domain/entity"
	"autoblog/internal/handler/http/respond"
)

// Diagnoser probes the external generation service. It mirrors the
// generator backends' TestConnection: failures are entries in the report,
// never errors.
type Diagnoser interface {
	TestConnection(ctx context.Context) entity.Diagnostics
}

// diagnosticsTimeout bounds the whole probe: one model listing plus one
// live completion.
const diagnosticsTimeout = 90 * time.Second

// DiagnosticsBody is the response shape of GET /api/articles/diagnostics/ai.
type DiagnosticsBody struct {
	OK              bool     `json:"ok"`
	KeyPresent      bool     `json:"key_present"`
	ModelsChecked   bool     `json:"models_checked"`
	ConfiguredModel string   `json:"configured_model"`
	ModelAvailable  bool     `json:"model_available"`
	Sample          string   `json:"sample,omitempty"`
	Warnings        []string `json:"warnings"`
	Errors          []string `json:"errors"`
	CheckedAt       string   `json:"checked_at"`
}

// DiagnosticsHandler runs the generation-service probe and returns its
// report. The report itself carries success or failure; the handler always
// answers 200 once the probe returns.
type DiagnosticsHandler struct {
	Diag Diagnoser
}

func (h *DiagnosticsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r, diagnosticsTimeout)
	defer cancel()

	diag := h.Diag.TestConnection(ctx)

	body := DiagnosticsBody{
		OK:              diag.OK,
		KeyPresent:      diag.KeyPresent,
		ModelsChecked:   diag.ModelsChecked,
		ConfiguredModel: diag.ConfiguredModel,
		ModelAvailable:  diag.ModelAvailable,
		Sample:          diag.Sample,
		Warnings:        diag.Warnings,
		Errors:          diag.Errors,
		CheckedAt:       diag.CheckedAt.UTC().Format(time.RFC3339),
	}
	// Empty slices serialize as [] rather than null.
	if body.Warnings == nil {
		body.Warnings = []string{}
	}
	if body.Errors == nil {
		body.Errors = []string{}
	}

	respond.JSON(w, http.StatusOK, body)
}

// contextWithTimeout derives a deadline-bounded context from the request.
func contextWithTimeout(r *http.Request, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), d)
}
