package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mojavemfg/mfgdashboard-sub000/internal/config"
	"github.com/mojavemfg/mfgdashboard-sub000/internal/domain"
)

const regionalStatsKey = "analytics:regions"

// AnalyticsCache caches the derived regional aggregation between
// ingestions. Forecast results are cheap to recompute and carry infinite
// sentinels that do not survive a JSON round trip, so they are never
// cached.
type AnalyticsCache interface {
	GetRegionalStats(ctx context.Context) (*domain.RegionalStats, bool, error)
	SetRegionalStats(ctx context.Context, stats *domain.RegionalStats) error
	Invalidate(ctx context.Context) error
}

type redisAnalyticsCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopAnalyticsCache struct{}

func NewAnalyticsCache(cfg config.CacheConfig) (AnalyticsCache, error) {
	if !cfg.Enabled {
		return &noopAnalyticsCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisAnalyticsCache{client: client, ttl: ttl}, nil
}

func NewNoopAnalyticsCache() AnalyticsCache {
	return &noopAnalyticsCache{}
}

func (c *redisAnalyticsCache) GetRegionalStats(ctx context.Context) (*domain.RegionalStats, bool, error) {
	payload, err := c.client.Get(ctx, regionalStatsKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var stats domain.RegionalStats
	if err := json.Unmarshal(payload, &stats); err != nil {
		return nil, false, fmt.Errorf("decode regional stats cache: %w", err)
	}

	return &stats, true, nil
}

func (c *redisAnalyticsCache) SetRegionalStats(ctx context.Context, stats *domain.RegionalStats) error {
	payload, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("encode regional stats cache: %w", err)
	}

	if err := c.client.Set(ctx, regionalStatsKey, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisAnalyticsCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, regionalStatsKey).Err()
}

func (n *noopAnalyticsCache) GetRegionalStats(ctx context.Context) (*domain.RegionalStats, bool, error) {
	return nil, false, nil
}

func (n *noopAnalyticsCache) SetRegionalStats(ctx context.Context, stats *domain.RegionalStats) error {
	return nil
}

func (n *noopAnalyticsCache) Invalidate(ctx context.Context) error {
	return nil
}
