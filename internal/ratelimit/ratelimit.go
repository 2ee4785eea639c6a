// Package ratelimit provides per-key token bucket limiters with idle eviction.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultIdleTTL is how long a key may go unused before its limiter is dropped.
const DefaultIdleTTL = 10 * time.Minute

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyedRateLimiter manages per-key rate limiting. Each key, usually a client
// IP, gets its own limiter; limiters idle for longer than the TTL are evicted.
type KeyedRateLimiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	limit   rate.Limit
	burst   int
	ttl     time.Duration
	now     func() time.Time

	done     chan struct{}
	stopOnce sync.Once
}

// Option configures a KeyedRateLimiter.
type Option func(*KeyedRateLimiter)

// WithIdleTTL sets how long unused keys are kept.
func WithIdleTTL(ttl time.Duration) Option {
	return func(k *KeyedRateLimiter) { k.ttl = ttl }
}

// WithClock replaces time.Now. Tests use it to age entries.
func WithClock(now func() time.Time) Option {
	return func(k *KeyedRateLimiter) { k.now = now }
}

// New creates a keyed rate limiter allowing rps requests per second with the
// given burst, and starts the eviction loop. Call Stop to end it.
func New(rps float64, burst int, opts ...Option) *KeyedRateLimiter {
	krl := &KeyedRateLimiter{
		entries: make(map[string]*entry),
		limit:   rate.Limit(rps),
		burst:   burst,
		ttl:     DefaultIdleTTL,
		now:     time.Now,
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(krl)
	}

	go krl.cleanupLoop()

	return krl
}

// Allow reports whether a request for key may proceed now.
func (krl *KeyedRateLimiter) Allow(key string) bool {
	return krl.getLimiter(key).AllowN(krl.now(), 1)
}

// Reserve returns how long the caller would have to wait for the next token
// for key, without consuming it.
func (krl *KeyedRateLimiter) Reserve(key string) time.Duration {
	now := krl.now()
	r := krl.getLimiter(key).ReserveN(now, 1)
	delay := r.DelayFrom(now)
	r.CancelAt(now)
	return delay
}

// size returns the number of tracked keys.
func (krl *KeyedRateLimiter) size() int {
	krl.mu.Lock()
	defer krl.mu.Unlock()
	return len(krl.entries)
}

func (krl *KeyedRateLimiter) getLimiter(key string) *rate.Limiter {
	krl.mu.Lock()
	defer krl.mu.Unlock()

	e, ok := krl.entries[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(krl.limit, krl.burst)}
		krl.entries[key] = e
	}
	e.lastSeen = krl.now()
	return e.limiter
}

// Evict drops limiters idle for longer than the TTL and returns how many
// were removed.
func (krl *KeyedRateLimiter) Evict() int {
	cutoff := krl.now().Add(-krl.ttl)

	krl.mu.Lock()
	defer krl.mu.Unlock()

	n := 0
	for key, e := range krl.entries {
		if e.lastSeen.Before(cutoff) {
			delete(krl.entries, key)
			n++
		}
	}
	return n
}

// Stop ends the eviction loop. It is safe to call more than once.
func (krl *KeyedRateLimiter) Stop() {
	krl.stopOnce.Do(func() {
		close(krl.done)
	})
}

func (krl *KeyedRateLimiter) cleanupLoop() {
	interval := krl.ttl / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			krl.Evict()
		case <-krl.done:
			return
		}
	}
}
