// Package cache provides an in-memory memoization layer for derived
// analytics. Results are keyed by a stable name plus a fingerprint of the
// inputs that produced them; a fingerprint change invalidates the entry
// immediately, a TTL bounds staleness otherwise.
package cache

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultTTL bounds how long a memoized result is served without
// recomputation even when its fingerprint still matches.
const DefaultTTL = 10 * time.Minute

type entry struct {
	fingerprint string
	value       any
	expiresAt   time.Time
}

// Memo is a concurrency-safe memoization cache. The zero value is not
// usable; construct with New.
type Memo struct {
	mu      sync.RWMutex
	entries map[string]entry
	group   singleflight.Group

	now func() time.Time
}

func New() *Memo {
	return &Memo{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// GetOrCompute returns the cached value for key if its fingerprint matches
// and the entry has not expired. Otherwise compute runs, its result is
// stored, and the result is returned. Concurrent callers with the same key
// and fingerprint share a single compute invocation. A compute error is
// returned to all waiting callers and nothing is stored. A non-positive
// ttl falls back to DefaultTTL.
func (m *Memo) GetOrCompute(key, fingerprint string, ttl time.Duration, compute func() (any, error)) (any, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if v, ok := m.get(key, fingerprint); ok {
		return v, nil
	}

	// The singleflight key includes the fingerprint so a stale in-flight
	// computation never satisfies a caller holding newer inputs.
	v, err, _ := m.group.Do(key+"\x00"+fingerprint, func() (any, error) {
		if v, ok := m.get(key, fingerprint); ok {
			return v, nil
		}
		v, err := compute()
		if err != nil {
			return nil, err
		}
		m.mu.Lock()
		m.entries[key] = entry{
			fingerprint: fingerprint,
			value:       v,
			expiresAt:   m.now().Add(ttl),
		}
		m.mu.Unlock()
		return v, nil
	})
	return v, err
}

func (m *Memo) get(key, fingerprint string) (any, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[key]
	if !ok || e.fingerprint != fingerprint || m.now().After(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

// Invalidate drops the entry for key if present.
func (m *Memo) Invalidate(key string) {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
}

// Clear drops every entry.
func (m *Memo) Clear() {
	m.mu.Lock()
	m.entries = make(map[string]entry)
	m.mu.Unlock()
}

// Len reports the number of stored entries, expired or not.
func (m *Memo) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
