// Package ratelimit implements a per-client sliding-window rate limiter.
// State is in-memory and single-process.
package ratelimit

import (
	"sync"
	"time"
)

type Config struct {
	// Window is the sliding interval the limits apply over.
	Window time.Duration

	// Operational bounds for the in-memory map (single-process only).
	MaxEntries int
	EntryTTL   time.Duration
}

type Limiter struct {
	cfg Config

	mu sync.Mutex
	m  map[string]*clientWindow
}

type clientWindow struct {
	stamps   []time.Time
	lastSeen time.Time
}

func New(cfg Config) *Limiter {
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = 10_000
	}
	if cfg.EntryTTL <= 0 {
		cfg.EntryTTL = 30 * time.Minute
	}
	return &Limiter{
		cfg: cfg,
		m:   make(map[string]*clientWindow),
	}
}

type Decision struct {
	Allowed    bool
	RetryAfter int // seconds; 0 when allowed
}

// Allow records one request under key when it fits inside limit for the
// configured window. Key identity is the caller's concern; the limiter is
// typically keyed by client IP plus endpoint so text and voice budgets stay
// independent.
func (l *Limiter) Allow(key string, limit int, now time.Time) Decision {
	if limit <= 0 {
		return Decision{Allowed: true}
	}
	if key == "" {
		key = "anonymous"
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	cw := l.m[key]
	if cw == nil {
		if len(l.m) >= l.cfg.MaxEntries {
			l.evictStaleLocked(now)
		}
		cw = &clientWindow{}
		l.m[key] = cw
	}
	cw.lastSeen = now

	cutoff := now.Add(-l.cfg.Window)
	kept := cw.stamps[:0]
	for _, ts := range cw.stamps {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	cw.stamps = kept

	if len(cw.stamps) >= limit {
		retry := int(cw.stamps[0].Sub(cutoff).Seconds()) + 1
		return Decision{Allowed: false, RetryAfter: retry}
	}

	cw.stamps = append(cw.stamps, now)
	return Decision{Allowed: true}
}

// evictStaleLocked drops entries idle past EntryTTL. Called with l.mu held
// when the map is at capacity; under sustained pressure from distinct keys
// the map may briefly exceed MaxEntries, which is acceptable for a
// single-process gateway.
func (l *Limiter) evictStaleLocked(now time.Time) {
	cutoff := now.Add(-l.cfg.EntryTTL)
	for key, cw := range l.m {
		if cw.lastSeen.Before(cutoff) {
			delete(l.m, key)
		}
	}
}

// Sweep removes idle entries. Intended to be called periodically from a
// background goroutine.
func (l *Limiter) Sweep(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.evictStaleLocked(now)
}

// Len reports the number of tracked clients.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.m)
}
