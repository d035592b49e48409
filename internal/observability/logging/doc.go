// Package logging provides structured logging utilities built on log/slog.
//
// All log output is JSON formatted for machine parsing. The log level is
// controlled through the LOG_LEVEL environment variable (debug, info, warn,
// error). Loggers can be enriched with request IDs and arbitrary structured
// fields, and passed through the application via context.
//
// Example usage:
//
//	logger := logging.NewLogger()
//	logger = logging.WithRequestID(ctx, logger)
//	logger.Info("article created", "article_id", id)
package logging
