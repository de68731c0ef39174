package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	apporder "github.com/marketplace/backend/internal/application/order"
)

const defaultTrackingTTL = 5 * time.Minute

type trackingKey struct {
	tenantID uuid.UUID
	orderID  uuid.UUID
}

type cacheEntry struct {
	view      apporder.TrackingView
	expiresAt time.Time
}

func (e cacheEntry) isExpired(now time.Time) bool {
	return now.After(e.expiresAt)
}

// InMemoryTrackingCache implements TrackingCache with a process-local map.
// Entries expire lazily on read; there is no background sweeper.
type InMemoryTrackingCache struct {
	mu      sync.RWMutex
	entries map[trackingKey]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewInMemoryTrackingCache creates an in-memory cache with the given TTL
func NewInMemoryTrackingCache(ttl time.Duration) *InMemoryTrackingCache {
	if ttl <= 0 {
		ttl = defaultTrackingTTL
	}
	return &InMemoryTrackingCache{
		entries: make(map[trackingKey]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *InMemoryTrackingCache) Get(_ context.Context, tenantID, orderID uuid.UUID) (*apporder.TrackingView, error) {
	k := trackingKey{tenantID: tenantID, orderID: orderID}

	c.mu.RLock()
	entry, ok := c.entries[k]
	c.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if entry.isExpired(c.now()) {
		c.mu.Lock()
		delete(c.entries, k)
		c.mu.Unlock()
		return nil, nil
	}

	view := entry.view
	return &view, nil
}

func (c *InMemoryTrackingCache) Set(_ context.Context, tenantID, orderID uuid.UUID, view *apporder.TrackingView) error {
	if view == nil {
		return nil
	}
	c.mu.Lock()
	c.entries[trackingKey{tenantID: tenantID, orderID: orderID}] = cacheEntry{
		view:      *view,
		expiresAt: c.now().Add(c.ttl),
	}
	c.mu.Unlock()
	return nil
}

func (c *InMemoryTrackingCache) Delete(_ context.Context, tenantID, orderID uuid.UUID) error {
	c.mu.Lock()
	delete(c.entries, trackingKey{tenantID: tenantID, orderID: orderID})
	c.mu.Unlock()
	return nil
}

// Len returns the number of stored entries, including expired ones not yet read
func (c *InMemoryTrackingCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

var _ apporder.TrackingCache = (*InMemoryTrackingCache)(nil)
