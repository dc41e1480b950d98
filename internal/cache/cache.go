package cache

import (
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/example/phishcheck/internal/verdict"
)

// Cache is a read-through TTL store for final verdicts, keyed by the
// normalized URL. It tracks hit/miss counters for the health endpoint.
type Cache struct {
	inner  *gocache.Cache
	hits   atomic.Int64
	misses atomic.Int64
}

// Stats is a point-in-time snapshot of cache activity.
type Stats struct {
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
	Entries int   `json:"entries"`
}

// New creates a cache whose entries expire after ttl.
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Cache{inner: gocache.New(ttl, 2*time.Minute)}
}

// Get returns the cached verdict for key, if present and fresh.
func (c *Cache) Get(key string) (verdict.Verdict, bool) {
	v, ok := c.inner.Get(key)
	if !ok {
		c.misses.Add(1)
		return verdict.Verdict{}, false
	}
	c.hits.Add(1)
	return v.(verdict.Verdict), true
}

// Set stores a verdict under key with the default TTL.
func (c *Cache) Set(key string, v verdict.Verdict) {
	c.inner.SetDefault(key, v)
}

// Flush removes every entry.
func (c *Cache) Flush() {
	c.inner.Flush()
}

// Stats returns current counters.
func (c *Cache) Stats() Stats {
	return Stats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Entries: c.inner.ItemCount(),
	}
}
