package article

import (
	"errors"
	"net/http"

	"autoblog/internal/handler/http/pathutil"
	"autoblog/internal/handler/http/respond"
	artUC "autoblog/internal/usecase/article"
)

type GetHandler struct{ Svc Service }

// ServeHTTP answers GET /api/articles/{id} with a single article.
// A non-numeric or non-positive id is a 400; a missing row is a 404.
func (h *GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid article id", err)
		return
	}

	article, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, artUC.ErrInvalidArticleID):
			respond.Error(w, http.StatusBadRequest, "invalid article id", err)
		case errors.Is(err, artUC.ErrArticleNotFound):
			respond.Error(w, http.StatusNotFound, "article not found", err)
		default:
			respond.SafeError(w, http.StatusInternalServerError, "failed to get article", err)
		}
		return
	}

	respond.JSON(w, http.StatusOK, toDTO(article))
}
