package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// DashboardCache is a short-TTL Redis cache in front of the dashboard
// aggregation. All failures are soft: callers fall back to a fresh
// aggregation when the cache misbehaves.
type DashboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

// GlobalDashboardCache is the global instance; nil disables caching.
var GlobalDashboardCache *DashboardCache

// NewDashboardCache creates a Redis-backed dashboard cache.
func NewDashboardCache(redisURL string, ttl time.Duration) (*DashboardCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	if ttl <= 0 {
		ttl = time.Minute
	}

	return &DashboardCache{client: client, ttl: ttl}, nil
}

func dashboardKey(userID string) string {
	return fmt.Sprintf("dashboard:%s", userID)
}

// Get returns the cached snapshot as raw JSON, or nil on a miss. The cache
// does not know the snapshot's shape; callers own the (un)marshalling.
func (dc *DashboardCache) Get(ctx context.Context, userID string) (json.RawMessage, error) {
	if userID == "" {
		return nil, fmt.Errorf("userID cannot be empty")
	}

	data, err := dc.client.Get(ctx, dashboardKey(userID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get dashboard from cache: %v", err)
	}
	return json.RawMessage(data), nil
}

// Set stores the snapshot under the cache TTL.
func (dc *DashboardCache) Set(ctx context.Context, userID string, snapshot any) error {
	if snapshot == nil {
		return fmt.Errorf("cannot cache nil snapshot")
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal dashboard: %v", err)
	}

	if err := dc.client.Set(ctx, dashboardKey(userID), data, dc.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache dashboard: %v", err)
	}
	return nil
}

// Invalidate drops the cached snapshot, called after any study activity
// write so the next dashboard read is fresh.
func (dc *DashboardCache) Invalidate(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("userID cannot be empty")
	}
	return dc.client.Del(ctx, dashboardKey(userID)).Err()
}

// InvalidateDashboard drops the cached snapshot through the global cache.
// Safe to call when caching is disabled; failures are logged and swallowed
// because a stale snapshot expires on its own within the TTL.
func InvalidateDashboard(ctx context.Context, userID string) {
	if GlobalDashboardCache == nil {
		return
	}
	if err := GlobalDashboardCache.Invalidate(ctx, userID); err != nil {
		log.Printf("Warning: failed to invalidate dashboard cache for user %s: %v", userID, err)
	}
}

// IsConnected checks if the Redis connection is alive
func (dc *DashboardCache) IsConnected() bool {
	if dc == nil || dc.client == nil {
		return false
	}
	ctx := context.Background()
	return dc.client.Ping(ctx).Err() == nil
}

// Close closes the Redis connection
func (dc *DashboardCache) Close() error {
	return dc.client.Close()
}
