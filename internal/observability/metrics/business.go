package metrics

import (
	"time"
)

// Attempt results for RecordGenerationAttempt.
const (
	AttemptSuccess         = "success"
	AttemptUnauthorized    = "unauthorized"
	AttemptRateLimited     = "rate_limited"
	AttemptInvalidResponse = "invalid_response"
	AttemptRequestFailed   = "request_failed"
)

// Verification results for RecordKeyVerification.
const (
	KeyValid       = "valid"
	KeyInvalid     = "invalid"
	KeyUnreachable = "unreachable"
)

// RecordArticleGenerated records a completed article generation.
// Source should be "ai" or "fallback". Model is the candidate that produced
// the text; the fallback template records under model "none".
func RecordArticleGenerated(source, model string) {
	if model == "" {
		model = "none"
	}
	ArticlesGeneratedTotal.WithLabelValues(source, model).Inc()
}

// RecordGenerationDuration records the time taken by a full generation run.
// This covers API key verification and every candidate model attempt.
func RecordGenerationDuration(duration time.Duration) {
	GenerationDuration.Observe(duration.Seconds())
}

// RecordGenerationAttempt records the outcome of a single chat completion
// attempt against one candidate model.
func RecordGenerationAttempt(model, result string) {
	GenerationAttemptsTotal.WithLabelValues(model, result).Inc()
}

// RecordKeyVerification records the outcome of an API key verification call.
// Result should be "valid", "invalid", or "unreachable".
func RecordKeyVerification(result string) {
	KeyVerificationsTotal.WithLabelValues(result).Inc()
}

// UpdateArticlesTotal updates the total count of articles in the database.
// This gauge should be updated after seeding and after each insert.
func UpdateArticlesTotal(count int64) {
	ArticlesTotal.Set(float64(count))
}

// RecordDBQuery records the duration of a database query operation.
// Operation should describe the query type (e.g., "select_articles", "insert_article").
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}
