package fetch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingFetcher struct {
	mu    sync.Mutex
	calls map[string]int
	fail  bool
}

func (f *countingFetcher) Job(_ context.Context, urlStr string) (*Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[urlStr]++
	if f.fail {
		return nil, &Error{URL: urlStr, Message: "HTTP status 503"}
	}
	return &Result{URL: urlStr, Text: "Backend Engineer", StatusCode: 200}, nil
}

func TestCachedFetcher_ReusesFreshResults(t *testing.T) {
	inner := &countingFetcher{}
	cache := NewCachedFetcher(inner, time.Minute)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	first, err := cache.Job(context.Background(), "https://jobs.example.com/1")
	require.NoError(t, err)
	second, err := cache.Job(context.Background(), "https://jobs.example.com/1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.calls["https://jobs.example.com/1"])

	// callers get their own copy
	second.Text = "changed"
	third, err := cache.Job(context.Background(), "https://jobs.example.com/1")
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", third.Text)

	now = now.Add(time.Minute)
	_, err = cache.Job(context.Background(), "https://jobs.example.com/1")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls["https://jobs.example.com/1"])
}

func TestCachedFetcher_DoesNotCacheFailures(t *testing.T) {
	inner := &countingFetcher{fail: true}
	cache := NewCachedFetcher(inner, 0)
	assert.Equal(t, DefaultCacheTTL, cache.ttl)

	for i := 0; i < 2; i++ {
		_, err := cache.Job(context.Background(), "https://jobs.example.com/down")
		var fetchErr *Error
		require.True(t, errors.As(err, &fetchErr))
	}
	assert.Equal(t, 2, inner.calls["https://jobs.example.com/down"])
	assert.Equal(t, 0, cache.Len())
}

func TestCachedFetcher_Invalidate(t *testing.T) {
	inner := &countingFetcher{}
	cache := NewCachedFetcher(inner, time.Hour)

	_, err := cache.Job(context.Background(), "https://jobs.example.com/2")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Len())

	cache.Invalidate("https://jobs.example.com/2")
	assert.Equal(t, 0, cache.Len())
	_, err = cache.Job(context.Background(), "https://jobs.example.com/2")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls["https://jobs.example.com/2"])
}
