package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is advanced by hand so refills are deterministic
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestLimiter(cfg *Config) (*Limiter, *fakeClock) {
	cfg.CleanupInterval = 0
	l := NewLimiter(cfg)
	clock := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	l.now = clock.Now
	return l, clock
}

func TestLimiter_DefaultLimit(t *testing.T) {
	l, clock := newTestLimiter(NewConfig(60, 3, nil))
	defer l.Stop()

	for i := 0; i < 3; i++ {
		allowed, info := l.Allow("1.2.3.4", "/score", "POST")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 60, info.Limit)
		assert.Equal(t, 2-i, info.Remaining)
	}

	allowed, info := l.Allow("1.2.3.4", "/score", "POST")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Equal(t, time.Second, info.RetryAfter)
	assert.Equal(t, clock.Now().Add(3*time.Second), info.ResetTime)

	clock.Advance(time.Second)
	allowed, _ = l.Allow("1.2.3.4", "/score", "POST")
	assert.True(t, allowed, "one token refills after a second")
}

func TestLimiter_DeniedRequestConsumesNothing(t *testing.T) {
	l, clock := newTestLimiter(NewConfig(60, 1, nil))
	defer l.Stop()

	allowed, _ := l.Allow("client", "/score", "POST")
	require.True(t, allowed)
	for i := 0; i < 5; i++ {
		allowed, _ = l.Allow("client", "/score", "POST")
		assert.False(t, allowed)
	}

	clock.Advance(time.Second)
	allowed, _ = l.Allow("client", "/score", "POST")
	assert.True(t, allowed)
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(NewConfig(60, 1, nil))
	defer l.Stop()

	allowed, _ := l.Allow("a", "/score", "POST")
	assert.True(t, allowed)
	allowed, _ = l.Allow("a", "/score", "POST")
	assert.False(t, allowed)
	allowed, _ = l.Allow("b", "/score", "POST")
	assert.True(t, allowed)
}

func TestLimiter_TailorEndpointIsStricter(t *testing.T) {
	l, clock := newTestLimiter(NewConfig(1000, 100, nil))
	defer l.Stop()

	for i := 0; i < 2; i++ {
		allowed, info := l.Allow("c", "/tailor", "POST")
		require.True(t, allowed)
		assert.Equal(t, 10, info.Limit)
	}
	allowed, info := l.Allow("c", "/tailor", "POST")
	assert.False(t, allowed)
	assert.Equal(t, 6*time.Minute, info.RetryAfter)

	allowed, _ = l.Allow("c", "/tailor/stream", "POST")
	assert.True(t, allowed, "prefix config keeps its own bucket")

	clock.Advance(6 * time.Minute)
	allowed, _ = l.Allow("c", "/tailor", "POST")
	assert.True(t, allowed)
}

func TestLimiter_HealthIsUnlimited(t *testing.T) {
	l, _ := newTestLimiter(NewConfig(1, 1, nil))
	defer l.Stop()

	for i := 0; i < 20; i++ {
		allowed, _ := l.Allow("c", "/health", "GET")
		require.True(t, allowed)
	}
	assert.Equal(t, 0, l.Len())
}

func TestLimiter_Disabled(t *testing.T) {
	l := NewLimiter(NewConfig(0, 0, nil))
	defer l.Stop()

	for i := 0; i < 100; i++ {
		allowed, info := l.Allow("c", "/tailor", "POST")
		require.True(t, allowed)
		assert.Zero(t, info.Limit)
	}

	nilCfg := NewLimiter(nil)
	allowed, _ := nilCfg.Allow("c", "/score", "POST")
	assert.True(t, allowed)
}

func TestLimiter_Whitelist(t *testing.T) {
	l, _ := newTestLimiter(NewConfig(1, 1, []string{" 10.0.0.1 ", ""}))
	defer l.Stop()

	for i := 0; i < 10; i++ {
		allowed, _ := l.Allow("10.0.0.1", "/score", "POST")
		require.True(t, allowed)
	}
	allowed, _ := l.Allow("10.0.0.2", "/score", "POST")
	assert.True(t, allowed)
	allowed, _ = l.Allow("10.0.0.2", "/score", "POST")
	assert.False(t, allowed)
}

func TestLimiter_Sweep(t *testing.T) {
	l, clock := newTestLimiter(NewConfig(60, 5, nil))
	defer l.Stop()

	l.Allow("old", "/score", "POST")
	clock.Advance(2 * time.Hour)
	l.Allow("new", "/score", "POST")
	require.Equal(t, 2, l.Len())

	l.sweep(clock.Now())
	assert.Equal(t, 1, l.Len())
}

func TestLimiter_Concurrent(t *testing.T) {
	l, _ := newTestLimiter(NewConfig(60, 50, nil))
	defer l.Stop()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := l.Allow("shared", "/score", "POST"); ok {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, allowedCount)
}

func TestLimiter_StopTwice(t *testing.T) {
	l := NewLimiter(NewConfig(60, 5, nil))
	l.Stop()
	assert.NotPanics(t, l.Stop)
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/tailor", Method: "POST", Limit: 10},
		{Path: "/tailor/", Method: "POST", Limit: 5},
	}

	tests := []struct {
		path, method string
		wantOK       bool
		wantLimit    int
	}{
		{"/tailor", "POST", true, 10},
		{"/tailor/stream", "POST", true, 5},
		{"/tailor", "GET", false, 0},
		{"/score", "POST", false, 0},
		{"/health", "GET", true, 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s %s", tt.method, tt.path), func(t *testing.T) {
			cfg, ok := MatchEndpoint(tt.path, tt.method, configs)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantLimit, cfg.Limit)
		})
	}
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig(30, 0, []string{"127.0.0.1"})
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 30, cfg.DefaultBurst, "burst defaults to the limit")
	assert.Equal(t, time.Minute, cfg.DefaultWindow)
	assert.True(t, cfg.Whitelist["127.0.0.1"])
	assert.NotEmpty(t, cfg.EndpointConfigs)

	assert.False(t, NewConfig(-1, 5, nil).Enabled)
}
