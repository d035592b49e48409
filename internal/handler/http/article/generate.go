package article

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"autoblog/internal/handler/http/respond"
)

// generateRequest is the optional body of POST /api/articles/generate.
// A missing body, an empty object, and an empty topic all mean "use the
// configured default topic".
type generateRequest struct {
	Topic string `json:"topic"`
}

type GenerateHandler struct{ Svc Service }

// ServeHTTP answers POST /api/articles/generate: generate an article for
// the requested (or default) topic, persist it, and return the stored row
// with 201. Generation runs on a context detached from the client so a
// dropped connection does not abandon an in-flight model call.
func (h *GenerateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req, err := decodeGenerateRequest(r.Body)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	ctx := context.WithoutCancel(r.Context())
	article, err := h.Svc.Create(ctx, req.Topic)
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, "failed to generate article", err)
		return
	}

	respond.JSON(w, http.StatusCreated, toDTO(article))
}

func decodeGenerateRequest(body io.Reader) (generateRequest, error) {
	var req generateRequest
	err := json.NewDecoder(body).Decode(&req)
	if errors.Is(err, io.EOF) {
		// No body at all.
		return generateRequest{}, nil
	}
	if err != nil {
		return generateRequest{}, errors.New("body must be a JSON object with an optional topic field")
	}
	return req, nil
}
