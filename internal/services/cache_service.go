package services

import (
	"context"
	"fmt"
	"time"

	"venuehub/pkg/cache"
	"venuehub/pkg/logger"
)

// CacheService wraps Redis for the repository layer. Failures are surfaced
// to callers, who treat the cache as best-effort.
type CacheService interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeletePattern(ctx context.Context, pattern string) error
	Exists(ctx context.Context, key string) (bool, error)
	Ping(ctx context.Context) error
}

type cacheService struct {
	redis      *cache.RedisCache
	logger     *logger.Logger
	defaultTTL time.Duration
}

func NewCacheService(redis *cache.RedisCache, logger *logger.Logger, defaultTTL time.Duration) CacheService {
	return &cacheService{
		redis:      redis,
		logger:     logger,
		defaultTTL: defaultTTL,
	}
}

func (s *cacheService) Get(ctx context.Context, key string, dest interface{}) error {
	if err := s.redis.Get(ctx, key, dest); err != nil {
		return fmt.Errorf("failed to get cache key %s: %w", key, err)
	}

	s.logger.WithField("cache_key", key).Debug("Cache hit")
	return nil
}

func (s *cacheService) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if expiration == 0 {
		expiration = s.defaultTTL
	}

	if err := s.redis.Set(ctx, key, value, expiration); err != nil {
		return fmt.Errorf("failed to set cache key %s: %w", key, err)
	}

	s.logger.WithField("cache_key", key).
		WithField("expiration", expiration).
		Debug("Cache set")

	return nil
}

func (s *cacheService) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	if err := s.redis.Delete(ctx, keys...); err != nil {
		return fmt.Errorf("failed to delete cache keys: %w", err)
	}

	s.logger.WithField("cache_keys", keys).Debug("Cache keys deleted")
	return nil
}

// DeletePattern drops every key matching the pattern. Used on mutations to
// invalidate listing collections without tracking individual list keys.
func (s *cacheService) DeletePattern(ctx context.Context, pattern string) error {
	keys, err := s.redis.Keys(ctx, pattern)
	if err != nil {
		return fmt.Errorf("failed to scan cache pattern %s: %w", pattern, err)
	}

	if len(keys) == 0 {
		return nil
	}

	if err := s.redis.Delete(ctx, keys...); err != nil {
		return fmt.Errorf("failed to delete cache pattern %s: %w", pattern, err)
	}

	s.logger.WithField("cache_pattern", pattern).
		WithField("deleted", len(keys)).
		Debug("Cache pattern invalidated")

	return nil
}

func (s *cacheService) Exists(ctx context.Context, key string) (bool, error) {
	exists, err := s.redis.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("failed to check cache key existence: %w", err)
	}

	return exists, nil
}

func (s *cacheService) Ping(ctx context.Context) error {
	return s.redis.Ping(ctx)
}
