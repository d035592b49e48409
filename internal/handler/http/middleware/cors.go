// Package middleware holds cross-cutting HTTP middleware that does not
// belong to a specific handler, currently just CORS.
package middleware

import (
	"net/http"
	"strconv"
	"strings"

	pkgcfg "autoblog/pkg/config"
)

// CORSConfig holds the CORS policy.
type CORSConfig struct {
	// AllowedOrigins is the origin whitelist. A single "*" allows any origin.
	AllowedOrigins []string

	// AllowedMethods and AllowedHeaders are echoed on preflight responses.
	AllowedMethods []string
	AllowedHeaders []string

	// MaxAge is how long (seconds) a browser may cache a preflight result.
	MaxAge int
}

// LoadCORSConfig reads the CORS policy from CORS_ALLOWED_ORIGINS
// (comma-separated). The default is the permissive "*", which fits a
// read-mostly public API.
func LoadCORSConfig() CORSConfig {
	return CORSConfig{
		AllowedOrigins: pkgcfg.GetEnvStringList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		MaxAge:         86400,
	}
}

func (c CORSConfig) allowAny() bool {
	return len(c.AllowedOrigins) == 1 && c.AllowedOrigins[0] == "*"
}

func (c CORSConfig) allows(origin string) bool {
	if c.allowAny() {
		return true
	}
	for _, o := range c.AllowedOrigins {
		if strings.EqualFold(o, origin) {
			return true
		}
	}
	return false
}

// CORS returns middleware applying the policy. Same-origin requests (no
// Origin header) pass through untouched; disallowed origins get no CORS
// headers and the browser blocks the response; preflights answer 204
// without reaching the handler.
func CORS(config CORSConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !config.allows(origin) {
				next.ServeHTTP(w, r)
				return
			}

			if config.allowAny() {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			} else {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
				w.Header().Set("Access-Control-Allow-Headers", strings.Join(config.AllowedHeaders, ", "))
				w.Header().Set("Access-Control-Max-Age", strconv.Itoa(config.MaxAge))
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
