package cache

import (
	"context"
	"fmt"
	"time"

	apporder "github.com/marketplace/backend/internal/application/order"
	"github.com/marketplace/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// TrackingCacheFactory creates tracking caches based on configuration
type TrackingCacheFactory struct {
	redisConfig           config.RedisConfig
	ttl                   time.Duration
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// TrackingCacheFactoryOption is a functional option for configuring the factory
type TrackingCacheFactoryOption func(*TrackingCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) TrackingCacheFactoryOption {
	return func(f *TrackingCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to the in-memory cache when Redis is unavailable.
// Default is true.
func WithInMemoryFallback(allow bool) TrackingCacheFactoryOption {
	return func(f *TrackingCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewTrackingCacheFactory creates a new factory
func NewTrackingCacheFactory(redisCfg config.RedisConfig, ttl time.Duration, opts ...TrackingCacheFactoryOption) *TrackingCacheFactory {
	f := &TrackingCacheFactory{
		redisConfig:           redisCfg,
		ttl:                   ttl,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateRedisCache creates a Redis-backed tracking cache
func (f *TrackingCacheFactory) CreateRedisCache(ctx context.Context) (*RedisTrackingCache, error) {
	c, err := NewRedisTrackingCache(ctx, RedisConfig{
		Addr:     f.redisConfig.Addr(),
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	}, f.ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis tracking cache: %w", err)
	}
	return c, nil
}

// CreateCache returns a Redis cache when Redis is enabled and reachable.
// Otherwise it falls back to the in-memory cache if allowed.
func (f *TrackingCacheFactory) CreateCache(ctx context.Context) (apporder.TrackingCache, error) {
	if !f.redisConfig.Enabled {
		f.logger.Info("Redis disabled, using in-memory tracking cache")
		return NewInMemoryTrackingCache(f.ttl), nil
	}

	c, err := f.CreateRedisCache(ctx)
	if err == nil {
		f.logger.Info("using Redis tracking cache", zap.String("addr", f.redisConfig.Addr()))
		return c, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for tracking cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory tracking cache. "+
		"Instances will not share cached tracking views.",
		zap.Error(err),
	)
	return NewInMemoryTrackingCache(f.ttl), nil
}
