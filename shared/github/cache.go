package github

import (
	"sync"
	"time"
)

// contentCache keeps directory listings and file contents fetched from the contents API for a fixed TTL.
type contentCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]cachedContent
}

type cachedContent struct {
	names   []string
	data    []byte
	fetched time.Time
}

func newContentCache(ttl time.Duration) *contentCache {
	return &contentCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cachedContent),
	}
}

func (c *contentCache) get(key string) (cachedContent, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || c.now().Sub(entry.fetched) >= c.ttl {
		return cachedContent{}, false
	}
	return entry, true
}

func (c *contentCache) putNames(key string, names []string) {
	c.put(key, cachedContent{names: append([]string(nil), names...)})
}

func (c *contentCache) putData(key string, data []byte) {
	c.put(key, cachedContent{data: append([]byte(nil), data...)})
}

func (c *contentCache) put(key string, entry cachedContent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry.fetched = c.now()
	c.entries[key] = entry
}

// invalidate clears the cache so the next read goes to GitHub.
func (c *contentCache) invalidate() {
	c.mu.Lock()
	c.entries = make(map[string]cachedContent)
	c.mu.Unlock()
}
