package article

import (
	"net/http"

	"autoblog/internal/handler/http/respond"
)

type ListHandler struct{ Svc Service }

// ServeHTTP answers GET /api/articles with every stored article, newest
// first. An empty store is an empty JSON array, never null.
func (h *ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	articles, err := h.Svc.List(r.Context())
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, "failed to list articles", err)
		return
	}

	out := make([]DTO, 0, len(articles))
	for _, a := range articles {
		out = append(out, toDTO(a))
	}

	respond.JSON(w, http.StatusOK, out)
}
