// Package ratelimit keeps one token bucket per client key.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyedLimiter rate limits each key independently. Keys idle for longer than
// the idle timeout are dropped by Sweep.
type KeyedLimiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	limit   rate.Limit
	burst   int
	idle    time.Duration
	now     func() time.Time
}

// New creates a limiter allowing rps requests per second with the given burst per key
func New(rps float64, burst int, idle time.Duration) *KeyedLimiter {
	return &KeyedLimiter{
		entries: make(map[string]*entry),
		limit:   rate.Limit(rps),
		burst:   burst,
		idle:    idle,
		now:     time.Now,
	}
}

// Allow reports whether a request for key may proceed now
func (l *KeyedLimiter) Allow(key string) bool {
	l.mu.Lock()
	e, ok := l.entries[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.entries[key] = e
	}
	now := l.now()
	e.lastSeen = now
	l.mu.Unlock()

	return e.limiter.AllowN(now, 1)
}

// Sweep removes keys that have been idle past the idle timeout and returns how many were removed
func (l *KeyedLimiter) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.idle)
	removed := 0
	for key, e := range l.entries {
		if e.lastSeen.Before(cutoff) {
			delete(l.entries, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked keys
func (l *KeyedLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
