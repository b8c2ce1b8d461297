// Package cache provides an in-memory response cache with per-entry TTL.
package cache

import (
	"sync"
	"time"
)

// DefaultTTL is the time-to-live applied by callers that have no better policy.
const DefaultTTL = 5 * time.Minute

type entry struct {
	payload  []byte
	storedAt time.Time
	ttl      time.Duration
}

// Stats describes the current cache contents.
type Stats struct {
	Count int
	Keys  []string
}

// Cache maps request keys to cached payloads. Entries expire lazily: an entry
// whose age has reached its TTL is deleted on the next lookup. There is no
// background sweeper and no capacity bound.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// NewWithClock creates a cache whose notion of time comes from now.
// Tests use this to control entry age.
func NewWithClock(now func() time.Time) *Cache {
	if now == nil {
		now = time.Now
	}
	return &Cache{
		entries: make(map[string]entry),
		now:     now,
	}
}

// Get returns the payload stored under key, or ok=false if the key is absent
// or its entry has expired. Expired entries are evicted here.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.storedAt) >= e.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return e.payload, true
}

// Set stores payload under key with the given TTL, replacing any prior entry.
func (c *Cache) Set(key string, payload []byte, ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{
		payload:  payload,
		storedAt: c.now(),
		ttl:      ttl,
	}
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]entry)
}

// Stats returns the live entry count and keys. Expired but not yet evicted
// entries are excluded.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{Keys: make([]string, 0, len(c.entries))}
	for key, e := range c.entries {
		if c.now().Sub(e.storedAt) >= e.ttl {
			continue
		}
		s.Count++
		s.Keys = append(s.Keys, key)
	}
	return s
}
