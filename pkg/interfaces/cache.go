package interfaces

import (
	"context"
	"time"
)

// Cache defines a generic caching interface.
type Cache interface {
	// Get retrieves a value from the cache; (nil, nil) means a miss
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in the cache with a TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from the cache
	Delete(ctx context.Context, key string) error

	// Clear removes all values from the cache
	Clear(ctx context.Context) error
}
