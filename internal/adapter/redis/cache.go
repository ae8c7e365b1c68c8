package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"campaign-optimizer/internal/core/domain"
	"campaign-optimizer/internal/reference"
)

// MarketCache keeps market intelligence as JSON under
// "market:{industry}:{geography}". Keys expire with the entry, so Get never
// sees a stale value.
type MarketCache struct {
	client *redis.Client
	now    func() time.Time
}

// NewMarketCache returns a cache backed by client. The client is owned by
// the caller and is not closed by the cache.
func NewMarketCache(client *redis.Client) *MarketCache {
	return &MarketCache{client: client, now: time.Now}
}

func marketKey(industry, geography string) string {
	return fmt.Sprintf("market:%s:%s", reference.Normalize(industry), reference.Normalize(geography))
}

// Get returns nil, nil when the key is absent or has expired.
func (c *MarketCache) Get(ctx context.Context, industry, geography string) (*domain.MarketIntelligence, error) {
	raw, err := c.client.Get(ctx, marketKey(industry, geography)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var mi domain.MarketIntelligence
	if err = json.Unmarshal(raw, &mi); err != nil {
		return nil, fmt.Errorf("decode cached market %s/%s: %w", industry, geography, err)
	}
	if !mi.ExpiresAt.After(c.now()) {
		return nil, nil
	}
	return &mi, nil
}

// Put stores mi until its ExpiresAt. Already expired entries are ignored.
func (c *MarketCache) Put(ctx context.Context, mi domain.MarketIntelligence) error {
	ttl := mi.ExpiresAt.Sub(c.now())
	if ttl <= 0 {
		return nil
	}
	raw, err := json.Marshal(mi)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, marketKey(mi.Industry, mi.Geography), raw, ttl).Err()
}
