package gemini

import "golang.org/x/time/rate"

// Limiter is the client-side admission gate in front of the AI backend: a
// token bucket refilled at the configured calls-per-minute rate. It is owned
// by whoever constructs the client, not package state, so tests can inject
// their own and a future deployment can swap in a shared backing store.
type Limiter struct {
	bucket *rate.Limiter
}

func NewLimiter(perMinute, burst int) *Limiter {
	return &Limiter{
		bucket: rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), burst),
	}
}

// Allow reports whether one more upstream call fits the budget right now.
// It never waits; over-budget callers fall back locally instead of queueing.
func (l *Limiter) Allow() bool {
	if l == nil {
		return true
	}
	return l.bucket.Allow()
}
