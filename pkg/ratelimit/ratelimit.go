// Package ratelimit implements the login attempt throttle: a
// fixed-size attempt counter per client identifier that resets once the
// window has fully elapsed. A burst across a window boundary can exceed
// the nominal rate; that imprecision is accepted for this use.
package ratelimit

import (
	"context"
	"time"
)

// Attempt tracks login attempts for one identifier.
type Attempt struct {
	Count       int
	LastAttempt time.Time
}

// Store persists per-identifier attempt records. Implementations must
// treat a missing record as "no attempts yet" and return (nil, nil).
type Store interface {
	Get(ctx context.Context, id string) (*Attempt, error)
	Set(ctx context.Context, id string, a Attempt, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

// Limiter bounds attempts per identifier within a sliding window.
type Limiter struct {
	store       Store
	maxAttempts int
	window      time.Duration

	now func() time.Time
}

// New creates a limiter backed by the given store.
func New(store Store, maxAttempts int, window time.Duration) *Limiter {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &Limiter{
		store:       store,
		maxAttempts: maxAttempts,
		window:      window,
		now:         time.Now,
	}
}

// Allow records an attempt for id and reports whether it is allowed.
// When blocked, retryAfter is the remaining wait until the window
// expires. Store failures fail open: throttling is a best-effort
// control, not a reason to lock out logins.
func (l *Limiter) Allow(ctx context.Context, id string) (allowed bool, retryAfter time.Duration) {
	now := l.now()

	a, err := l.store.Get(ctx, id)
	if err != nil {
		return true, 0
	}

	// First attempt, or the window has fully elapsed since the last one.
	if a == nil || now.Sub(a.LastAttempt) > l.window {
		_ = l.store.Set(ctx, id, Attempt{Count: 1, LastAttempt: now}, l.window)
		return true, 0
	}

	if a.Count >= l.maxAttempts {
		remaining := l.window - now.Sub(a.LastAttempt)
		if remaining < 0 {
			remaining = 0
		}
		return false, remaining
	}

	a.Count++
	a.LastAttempt = now
	_ = l.store.Set(ctx, id, *a, l.window)
	return true, 0
}

// Reset clears the attempt record for id, e.g. after a successful login.
func (l *Limiter) Reset(ctx context.Context, id string) {
	_ = l.store.Delete(ctx, id)
}
