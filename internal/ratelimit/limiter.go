// Package ratelimit caps authentication attempts per client key over a fixed
// window. A fixed window admits up to twice the configured maximum across a
// window boundary; the counter state stays O(1) per client in exchange.
package ratelimit

import (
	"sync"
	"time"

	"github.com/elskow/gatekeeper/internal/config"
)

// Store tracks attempt counts per client key. The in-memory implementation
// below serves a single instance; multi-instance deployments can inject a
// shared store instead.
type Store interface {
	// Increment records an attempt for key and returns the attempt count
	// within the window containing now, starting a new window if the
	// previous one has elapsed.
	Increment(key string, now time.Time, window time.Duration) int
}

type counter struct {
	count       int
	windowStart time.Time
}

type memoryStore struct {
	mu       sync.Mutex
	counters map[string]*counter
}

func NewMemoryStore() Store {
	return &memoryStore{
		counters: make(map[string]*counter),
	}
}

func (s *memoryStore) Increment(key string, now time.Time, window time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, exists := s.counters[key]
	if !exists || now.Sub(c.windowStart) >= window {
		c = &counter{windowStart: now}
		s.counters[key] = c
	}
	c.count++
	return c.count
}

type Limiter struct {
	config *config.RateLimitConfig
	store  Store
	now    func() time.Time
}

func NewLimiter(config *config.RateLimitConfig, store Store) *Limiter {
	return &Limiter{
		config: config,
		store:  store,
		now:    time.Now,
	}
}

// Allow reports whether the client key is still within its attempt budget
// for the current window.
func (l *Limiter) Allow(key string) bool {
	attempts := l.store.Increment(key, l.now(), l.config.Window)
	return attempts <= l.config.MaxAttempts
}
