package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/adminhub/identity-system/internal/core/ports"
)

const (
	statsKey = "stats:users"
	statsTTL = time.Minute
)

// StatsCache caches the user statistics summary in Redis with a short TTL, so
// repeated dashboard polls do not hit the users collection.
type StatsCache struct {
	client *redis.Client
}

func NewStatsCache(client *redis.Client) *StatsCache {
	return &StatsCache{client: client}
}

// Get returns the cached statistics, or nil on a cache miss.
func (c *StatsCache) Get(ctx context.Context) (*ports.UserStatistics, error) {
	raw, err := c.client.Get(ctx, statsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("stats cache get: %w", err)
	}

	var stats ports.UserStatistics
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, fmt.Errorf("stats cache decode: %w", err)
	}
	return &stats, nil
}

// Put stores the statistics, replacing any previous value (expires after statsTTL).
func (c *StatsCache) Put(ctx context.Context, stats ports.UserStatistics) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("stats cache encode: %w", err)
	}
	return c.client.Set(ctx, statsKey, raw, statsTTL).Err()
}
