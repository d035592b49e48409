package generator

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimiter implements a token bucket over outbound completion requests.
// Free-tier models reject bursts aggressively, so every request to the API
// waits for a token before it is sent.
type RateLimiter struct {
	rate    rate.Limit
	burst   int
	limiter *rate.Limiter
}

// NewRateLimiter creates a RateLimiter with the given sustained rate and
// burst capacity.
//
// Parameters:
//   - requestsPerSecond: Maximum sustained request rate (e.g. 1.0)
//   - burst: Maximum number of requests allowed at once (e.g. 5)
//
// Up to 'burst' requests pass immediately; afterwards tokens refill at
// 'requestsPerSecond'.
func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	r := rate.Limit(requestsPerSecond)
	l := rate.NewLimiter(r, burst)

	return &RateLimiter{
		rate:    r,
		burst:   burst,
		limiter: l,
	}
}

// Allow blocks until a token is available or the context is canceled.
// It must be called before each request to the completion API.
//
// Returns a non-nil error only when the context was canceled or its
// deadline passed while waiting.
func (r *RateLimiter) Allow(ctx context.Context) error {
	return r.limiter.Wait(ctx)
}
