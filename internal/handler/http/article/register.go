package article

import "net/http"

// Register mounts the read-only article routes. The generate route is
// mounted separately by the server so it can sit outside the request
// timeout wrapper (model calls legitimately run for minutes).
func Register(mux *http.ServeMux, svc Service) {
	mux.Handle("GET /api/articles", &ListHandler{Svc: svc})
	mux.Handle("GET /api/articles/{id}", &GetHandler{Svc: svc})
}
