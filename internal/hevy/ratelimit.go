package hevy

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"
)

// ErrBadAPIKey is returned when the API rejects the configured key.
var ErrBadAPIKey = errors.New("hevy: api key rejected")

// The API does not publish hard limits; these are conservative enough
// that a full-history sync never trips a 429 in practice.
const (
	windowLimit    = 60
	windowDuration = time.Minute
	minInterval    = 200 * time.Millisecond
)

// RateLimiter throttles outgoing requests to a fixed budget per rolling
// window plus a minimum spacing between consecutive requests.
type RateLimiter struct {
	mu sync.Mutex

	usage       int
	windowEnds  time.Time
	lastRequest time.Time
	backoffTill time.Time
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{windowEnds: time.Now().Add(windowDuration)}
}

// Wait blocks until a request may be sent, or until ctx is cancelled.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if now.After(r.windowEnds) {
		r.usage = 0
		r.windowEnds = now.Add(windowDuration)
	}

	var wait time.Duration
	if r.usage >= windowLimit {
		wait = time.Until(r.windowEnds)
	}
	if until := time.Until(r.backoffTill); until > wait {
		wait = until
	}
	if sinceLast := time.Since(r.lastRequest); minInterval-sinceLast > wait {
		wait = minInterval - sinceLast
	}

	if wait > 0 {
		r.mu.Unlock()
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			r.mu.Lock()
			return ctx.Err()
		}
		r.mu.Lock()
		if now := time.Now(); now.After(r.windowEnds) {
			r.usage = 0
			r.windowEnds = now.Add(windowDuration)
		}
	}

	r.usage++
	r.lastRequest = time.Now()
	return nil
}

// Backoff pauses further requests per a 429 Retry-After header. An
// empty or malformed value falls back to a short fixed delay.
func (r *RateLimiter) Backoff(retryAfter string) {
	delay := 5 * time.Second
	if secs, err := strconv.Atoi(retryAfter); err == nil && secs > 0 {
		delay = time.Duration(secs) * time.Second
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if till := time.Now().Add(delay); till.After(r.backoffTill) {
		r.backoffTill = till
	}
}
