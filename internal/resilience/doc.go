// Package resilience provides reliability and fault tolerance patterns for the application.
// It includes circuit breaker and retry implementations used around the
// external generation API and database startup.
//
// The package supports:
//   - Circuit breakers for chat-completion calls (OpenRouter)
//   - Retry logic with exponential backoff and jitter for database connectivity
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.OpenRouterConfig())
//	result, err := cb.Execute(func() (interface{}, error) {
//	    return callExternalService()
//	})
//
//	err := retry.WithBackoff(ctx, retry.DBConfig(), func() error {
//	    return db.PingContext(ctx)
//	})
package resilience
