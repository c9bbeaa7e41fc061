package ratelimit

import (
	"sync"
	"time"
)

// Limiter is the admission gate in front of bulk sends.
type Limiter interface {
	Allow(key string) bool
}

// FixedWindowLimiter counts admissions per key in a trailing window.
// Eviction is lazy: stale timestamps are pruned the next time that key is
// checked, so memory for a key that stops appearing is only reclaimed if
// it shows up again. Acceptable at this scale; the Redis limiter covers
// multi-instance deployments.
type FixedWindowLimiter struct {
	mu     sync.Mutex
	hits   map[string][]time.Time
	limit  int
	window time.Duration
	now    func() time.Time
}

func NewFixedWindowLimiter(limit int, window time.Duration) *FixedWindowLimiter {
	return &FixedWindowLimiter{
		hits:   make(map[string][]time.Time),
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

func (l *FixedWindowLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	recent := l.hits[key][:0]
	for _, t := range l.hits[key] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}

	if len(recent) >= l.limit {
		l.hits[key] = recent
		return false
	}

	l.hits[key] = append(recent, now)
	return true
}
