// Package responsewriter wraps http.ResponseWriter to capture the status
// code and byte count for the logging and metrics middleware.
package responsewriter

import "net/http"

// ResponseWriter records what was written through it.
type ResponseWriter struct {
	http.ResponseWriter
	status  int
	bytes   int
	started bool
}

// Wrap returns a recording wrapper around w. The status defaults to 200,
// matching net/http's implicit WriteHeader.
func Wrap(w http.ResponseWriter) *ResponseWriter {
	return &ResponseWriter{ResponseWriter: w, status: http.StatusOK}
}

// WriteHeader records the first status code written; later calls are
// ignored like the underlying writer would warn about them.
func (w *ResponseWriter) WriteHeader(status int) {
	if w.started {
		return
	}
	w.started = true
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *ResponseWriter) Write(b []byte) (int, error) {
	if !w.started {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// StatusCode returns the recorded status code.
func (w *ResponseWriter) StatusCode() int { return w.status }

// BytesWritten returns the number of body bytes written.
func (w *ResponseWriter) BytesWritten() int { return w.bytes }

// Unwrap exposes the underlying writer for http.ResponseController.
func (w *ResponseWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
