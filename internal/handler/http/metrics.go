package http

import (
	"net/http"
	"strconv"
	"time"

	"autoblog/internal/handler/http/pathutil"
	"autoblog/internal/handler/http/responsewriter"
	"autoblog/internal/observability/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsMiddleware records request count, duration, sizes, and in-flight
// gauge for every request. Paths are normalized first so /api/articles/123
// and /api/articles/456 land on one label.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.ActiveConnections.Inc()
		defer metrics.ActiveConnections.Dec()

		path := pathutil.NormalizePath(r.URL.Path)
		wrapped := responsewriter.Wrap(w)

		start := time.Now()
		next.ServeHTTP(wrapped, r)
		duration := time.Since(start)

		requestSize := 0
		if r.ContentLength > 0 {
			requestSize = int(r.ContentLength)
		}
		metrics.RecordHTTPRequest(r.Method, path,
			strconv.Itoa(wrapped.StatusCode()), duration,
			requestSize, wrapped.BytesWritten())
	})
}

// MetricsHandler returns the Prometheus scrape endpoint handler.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
