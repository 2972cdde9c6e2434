// README: In-memory distance cache with lazy expiry and an injectable clock.
package distance

import (
	"context"
	"sync"
	"time"
)

type memEntry struct {
	res       Result
	expiresAt time.Time
}

// MemoryCache is a map-backed Cache. It exists so the resolver can be
// tested with a fake clock; production wiring uses RedisCache.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryCache returns a cache with the given TTL. now may be nil, in
// which case time.Now is used.
func NewMemoryCache(ttl time.Duration, now func() time.Time) *MemoryCache {
	if now == nil {
		now = time.Now
	}
	return &MemoryCache{
		entries: make(map[string]memEntry),
		ttl:     ttl,
		now:     now,
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) (Result, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return Result{}, false, nil
	}
	if !c.now().Before(e.expiresAt) {
		delete(c.entries, key)
		return Result{}, false, nil
	}
	return e.res, true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, res Result) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = memEntry{res: res, expiresAt: c.now().Add(c.ttl)}
	return nil
}

// CleanupExpired removes every expired entry and reports how many went.
func (c *MemoryCache) CleanupExpired(_ context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var removed int
	now := c.now()
	for key, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed, nil
}

// Len reports the number of live entries; used by tests.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
