// Package cache provides a small TTL key-value cache used by the stats
// service. A Redis-backed implementation is used when a Redis address is
// configured; otherwise an in-process map serves the same interface.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned when a key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// Cache is a TTL key-value store for JSON-serializable values.
type Cache interface {
	// Get unmarshals the cached value for key into dest. Returns
	// ErrCacheMiss when the key is absent or expired.
	Get(ctx context.Context, key string, dest interface{}) error

	// Set stores value under key for the given TTL. A zero TTL means the
	// entry does not expire.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
