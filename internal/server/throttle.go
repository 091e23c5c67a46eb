package server

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// throttle hands out one token bucket per key. Buckets idle for longer than
// idle are dropped on the next sweep.
type throttle struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	idle     time.Duration
	now      func() time.Time
	limiters map[string]*throttleEntry
	sweeps   int
}

type throttleEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newThrottle(perSecond float64, burst int, idle time.Duration) *throttle {
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}
	return &throttle{
		limit:    limit,
		burst:    burst,
		idle:     idle,
		now:      time.Now,
		limiters: make(map[string]*throttleEntry),
	}
}

// Allow reports whether key may proceed now.
func (t *throttle) Allow(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	entry, ok := t.limiters[key]
	if !ok {
		entry = &throttleEntry{limiter: rate.NewLimiter(t.limit, t.burst)}
		t.limiters[key] = entry
	}
	entry.lastSeen = now

	t.sweeps++
	if t.sweeps >= 256 {
		t.sweeps = 0
		t.sweepLocked(now)
	}
	return entry.limiter.AllowN(now, 1)
}

func (t *throttle) sweepLocked(now time.Time) {
	if t.idle <= 0 {
		return
	}
	for key, entry := range t.limiters {
		if now.Sub(entry.lastSeen) > t.idle {
			delete(t.limiters, key)
		}
	}
}
