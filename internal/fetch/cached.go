package fetch

import (
	"context"
	"sync"
	"time"
)

// DefaultCacheTTL is how long a fetched posting is reused.
const DefaultCacheTTL = 30 * time.Minute

// CachedFetcher wraps a Fetcher with an in-memory TTL cache keyed by URL.
// Failed fetches are not cached.
type CachedFetcher struct {
	inner Fetcher
	ttl   time.Duration
	now   func() time.Time

	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	result  *Result
	expires time.Time
}

// NewCachedFetcher creates a cached fetcher. A non-positive ttl uses DefaultCacheTTL.
func NewCachedFetcher(inner Fetcher, ttl time.Duration) *CachedFetcher {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedFetcher{
		inner:   inner,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

// Job returns a cached result while it is fresh, otherwise fetches and stores it.
func (f *CachedFetcher) Job(ctx context.Context, urlStr string) (*Result, error) {
	if result, ok := f.lookup(urlStr); ok {
		return result, nil
	}
	result, err := f.inner.Job(ctx, urlStr)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.entries[urlStr] = cacheEntry{result: result, expires: f.now().Add(f.ttl)}
	f.mu.Unlock()
	return copyResult(result), nil
}

// Invalidate drops a URL from the cache.
func (f *CachedFetcher) Invalidate(urlStr string) {
	f.mu.Lock()
	delete(f.entries, urlStr)
	f.mu.Unlock()
}

// Len reports the number of cached entries, fresh or not.
func (f *CachedFetcher) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries)
}

func (f *CachedFetcher) lookup(urlStr string) (*Result, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry, ok := f.entries[urlStr]
	if !ok {
		return nil, false
	}
	if !f.now().Before(entry.expires) {
		delete(f.entries, urlStr)
		return nil, false
	}
	return copyResult(entry.result), true
}

func copyResult(r *Result) *Result {
	out := *r
	return &out
}
