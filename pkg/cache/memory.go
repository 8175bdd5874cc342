package cache

import (
	"context"
	"sync"
	"time"

	"github.com/estantedev/estante/pkg/interfaces"
)

type entry struct {
	value      []byte
	expiration time.Time
}

// InMemoryCache is a simple in-memory cache implementation.
type InMemoryCache struct {
	entries map[string]entry
	mu      sync.RWMutex
}

// NewInMemoryCache creates a new in-memory cache.
func NewInMemoryCache() *InMemoryCache {
	return &InMemoryCache{entries: make(map[string]entry)}
}

var _ interfaces.Cache = (*InMemoryCache)(nil)

// Get retrieves a value from the cache. A miss or an expired entry
// returns (nil, nil).
func (c *InMemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	e, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists || time.Now().After(e.expiration) {
		return nil, nil
	}
	return e.value, nil
}

// Set stores a value in the cache with a TTL.
func (c *InMemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{value: value, expiration: time.Now().Add(ttl)}
	return nil
}

// Delete removes a value from the cache.
func (c *InMemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
	return nil
}

// Clear removes all values from the cache.
func (c *InMemoryCache) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]entry)
	return nil
}
