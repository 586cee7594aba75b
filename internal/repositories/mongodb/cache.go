package mongodb

import (
	"context"
	"time"
)

// CacheService is the slice of the cache the repositories need. Share rows
// are deliberately never cached: an expired share must never resolve from a
// stale cached level.
type CacheService interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeletePattern(ctx context.Context, pattern string) error
}
