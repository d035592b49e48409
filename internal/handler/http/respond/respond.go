// Package respond writes JSON responses. Error responses always carry an
// {error, details} body; internal detail is sanitized before it reaches a
// client and logged in full server-side.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// Headers are already sent; the failure can only be logged.
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// Error writes an {error, details} response. The summary names the failed
// operation for the client; the error supplies the details line verbatim.
// Use this for client-caused failures (4xx) whose messages are safe to show.
func Error(w http.ResponseWriter, code int, summary string, err error) {
	details := ""
	if err != nil {
		details = err.Error()
	}
	JSON(w, code, ErrorBody{Error: summary, Details: details})
}

// SafeError writes an {error, details} response with the details run through
// the credential/DSN mask, and logs the unmasked error. Use this wherever the
// error may wrap driver or upstream API messages (5xx paths).
func SafeError(w http.ResponseWriter, code int, summary string, err error) {
	details := ""
	if err != nil {
		details = SanitizeError(err)
		slog.Default().Error(summary,
			slog.Int("code", code),
			slog.String("status", http.StatusText(code)),
			slog.Any("error", err))
	}
	JSON(w, code, ErrorBody{Error: summary, Details: details})
}
