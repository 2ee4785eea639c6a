package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func TestKeyedRateLimiter_Allow(t *testing.T) {
	tests := []struct {
		name     string
		rps      float64
		burst    int
		calls    int
		wantPass int
	}{
		{"burst allows initial requests", 1, 3, 3, 3},
		{"exceeding burst blocks", 1, 2, 5, 2},
		{"single token", 1, 1, 4, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := newFakeClock()
			rl := New(tt.rps, tt.burst, WithClock(clock.Now))
			defer rl.Stop()

			passed := 0
			for range tt.calls {
				if rl.Allow("10.0.0.1") {
					passed++
				}
			}
			assert.Equal(t, tt.wantPass, passed)
		})
	}
}

func TestKeyedRateLimiter_KeysAreIndependent(t *testing.T) {
	clock := newFakeClock()
	rl := New(1, 1, WithClock(clock.Now))
	defer rl.Stop()

	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))
	assert.True(t, rl.Allow("b"))
	assert.Equal(t, 2, rl.size())
}

func TestKeyedRateLimiter_Refill(t *testing.T) {
	clock := newFakeClock()
	rl := New(2, 1, WithClock(clock.Now))
	defer rl.Stop()

	require.True(t, rl.Allow("a"))
	require.False(t, rl.Allow("a"))

	assert.Equal(t, 500*time.Millisecond, rl.Reserve("a"))

	clock.Advance(500 * time.Millisecond)
	assert.True(t, rl.Allow("a"))
}

func TestKeyedRateLimiter_ReserveDoesNotConsume(t *testing.T) {
	clock := newFakeClock()
	rl := New(1, 1, WithClock(clock.Now))
	defer rl.Stop()

	assert.Equal(t, time.Duration(0), rl.Reserve("a"))
	assert.True(t, rl.Allow("a"))
}

func TestKeyedRateLimiter_Evict(t *testing.T) {
	clock := newFakeClock()
	rl := New(1, 1, WithClock(clock.Now), WithIdleTTL(time.Minute))
	defer rl.Stop()

	rl.Allow("old")
	clock.Advance(45 * time.Second)
	rl.Allow("fresh")
	clock.Advance(30 * time.Second)

	assert.Equal(t, 1, rl.Evict())
	assert.Equal(t, 1, rl.size())

	// An evicted key starts over with a full bucket.
	assert.True(t, rl.Allow("old"))
}

func TestKeyedRateLimiter_StopIsIdempotent(t *testing.T) {
	rl := New(1, 1)
	rl.Stop()
	assert.NotPanics(t, rl.Stop)
}

func TestKeyedRateLimiter_Concurrent(t *testing.T) {
	rl := New(1, 50)
	defer rl.Stop()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if rl.Allow("shared") {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.GreaterOrEqual(t, allowed, 50)
	assert.LessOrEqual(t, allowed, 52)
}
