package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	apporder "github.com/marketplace/backend/internal/application/order"
	"github.com/redis/go-redis/v9"
)

const defaultTrackingKeyPrefix = "order:tracking:"

// RedisTrackingCache implements TrackingCache using Redis.
// Views are stored as JSON under a tenant-scoped key with a fixed TTL.
type RedisTrackingCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisTrackingCache creates a cache and verifies the connection
func NewRedisTrackingCache(ctx context.Context, cfg RedisConfig, ttl time.Duration) (*RedisTrackingCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisTrackingCacheWithClient(client, "", ttl), nil
}

// NewRedisTrackingCacheWithClient wraps an existing client without pinging it
func NewRedisTrackingCacheWithClient(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisTrackingCache {
	if keyPrefix == "" {
		keyPrefix = defaultTrackingKeyPrefix
	}
	if ttl <= 0 {
		ttl = defaultTrackingTTL
	}
	return &RedisTrackingCache{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
	}
}

func (c *RedisTrackingCache) key(tenantID, orderID uuid.UUID) string {
	return c.keyPrefix + tenantID.String() + ":" + orderID.String()
}

// Get returns the cached view or (nil, nil) when the key is absent
func (c *RedisTrackingCache) Get(ctx context.Context, tenantID, orderID uuid.UUID) (*apporder.TrackingView, error) {
	data, err := c.client.Get(ctx, c.key(tenantID, orderID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read tracking view: %w", err)
	}

	var view apporder.TrackingView
	if err := json.Unmarshal(data, &view); err != nil {
		return nil, fmt.Errorf("failed to decode tracking view: %w", err)
	}
	return &view, nil
}

// Set stores the view. A nil view is ignored.
func (c *RedisTrackingCache) Set(ctx context.Context, tenantID, orderID uuid.UUID, view *apporder.TrackingView) error {
	if view == nil {
		return nil
	}
	data, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("failed to encode tracking view: %w", err)
	}
	if err := c.client.Set(ctx, c.key(tenantID, orderID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write tracking view: %w", err)
	}
	return nil
}

// Delete removes the view for an order
func (c *RedisTrackingCache) Delete(ctx context.Context, tenantID, orderID uuid.UUID) error {
	if err := c.client.Del(ctx, c.key(tenantID, orderID)).Err(); err != nil {
		return fmt.Errorf("failed to delete tracking view: %w", err)
	}
	return nil
}

// Ping checks connectivity, used by the health endpoint
func (c *RedisTrackingCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis client
func (c *RedisTrackingCache) Close() error {
	return c.client.Close()
}

var _ apporder.TrackingCache = (*RedisTrackingCache)(nil)
