package http

import (
	"database/sql"
	"net/http"
	"time"

	"autoblog/internal/handler/http/respond"
)

// healthProbeTimeout bounds the database ping so a wedged pool cannot hang
// the health endpoint.
const healthProbeTimeout = 5 * time.Second

// HealthBody is the response shape of GET /health.
type HealthBody struct {
	OK        bool   `json:"ok"`
	DB        string `json:"db"` // "connected" or "disconnected"
	Timestamp string `json:"timestamp,omitempty"`
	Error     string `json:"error,omitempty"`
}

// HealthHandler answers GET /health with a trivial store probe: 200 when
// the database responds to a ping, 503 when it does not.
type HealthHandler struct {
	DB *sql.DB
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r, healthProbeTimeout)
	defer cancel()

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")

	if err := h.DB.PingContext(ctx); err != nil {
		respond.JSON(w, http.StatusServiceUnavailable, HealthBody{
			OK:    false,
			DB:    "disconnected",
			Error: respond.SanitizeError(err),
		})
		return
	}

	respond.JSON(w, http.StatusOK, HealthBody{
		OK:        true,
		DB:        "connected",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
