// Package tracing provides OpenTelemetry tracing integration.
//
// Incoming HTTP requests carry W3C Trace Context headers which the
// middleware extracts before starting a server span. The span's trace ID
// is echoed back in the X-Trace-Id response header so clients can
// correlate their requests with server-side telemetry.
//
// Example usage:
//
//	import "autoblog/internal/observability/tracing"
//
//	func processRequest(ctx context.Context) {
//	    ctx, span := tracing.GetTracer().Start(ctx, "process-request")
//	    defer span.End()
//	    // ... process request ...
//	}
package tracing
