// Package requestid assigns each HTTP request a unique ID so one request
// can be followed across log lines.
package requestid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// contextKey is unexported so no other package can collide with it.
type contextKey struct{}

// Header is the HTTP header the ID is read from and echoed back on.
const Header = "X-Request-ID"

// FromContext returns the request ID stored in the context, or "" when the
// request never passed through the middleware.
func FromContext(ctx context.Context) string {
	if id, ok := ctx.Value(contextKey{}).(string); ok {
		return id
	}
	return ""
}

// NewContext returns a context carrying the request ID.
func NewContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// Middleware propagates an incoming X-Request-ID or generates a UUID when
// the client sent none. The ID is set on the response header and stored in
// the request context for handlers and the logging middleware.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if id == "" {
			id = uuid.New().String()
		}

		w.Header().Set(Header, id)
		next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), id)))
	})
}
