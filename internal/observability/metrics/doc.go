// Package metrics provides centralized Prometheus metrics for the application.
//
// Metrics are registered once at package initialization via promauto and
// recorded through helper functions. Components with their own lifecycle
// (config loading, the generation scheduler) register component-scoped
// metrics locally instead.
package metrics
