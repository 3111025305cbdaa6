package cache

import (
	"context"
	"time"
)

// Cache defines the contract for the cache layer
// Redis in production, miniredis in tests
type Cache interface {
	// Get loads the value stored at key and unmarshals it into dest
	// found=false on miss, dest is left untouched
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value as JSON with ttl (0 = no expiry)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	Delete(ctx context.Context, keys ...string) error
	DeletePattern(ctx context.Context, pattern string) error

	Ping(ctx context.Context) error

	// Counters used for rate limiting
	Increment(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error

	// Publish sends a message on a pub/sub channel
	Publish(ctx context.Context, channel string, message string) error
}
