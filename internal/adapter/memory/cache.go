package memory

import (
	"context"
	"sync"
	"time"

	"campaign-optimizer/internal/core/domain"
	"campaign-optimizer/internal/reference"
)

// MarketCache keeps one market intelligence entry per (industry, geography).
type MarketCache struct {
	mu      sync.RWMutex
	entries map[string]domain.MarketIntelligence
	now     func() time.Time
}

// NewMarketCache returns an empty cache. A nil clock means time.Now.
func NewMarketCache(now func() time.Time) *MarketCache {
	if now == nil {
		now = time.Now
	}
	return &MarketCache{entries: make(map[string]domain.MarketIntelligence), now: now}
}

func cacheKey(industry, geography string) string {
	return reference.Normalize(industry) + "|" + reference.Normalize(geography)
}

// Get returns the entry for the pair while it is still usable. Expired and
// missing entries both yield nil, nil.
func (c *MarketCache) Get(_ context.Context, industry, geography string) (*domain.MarketIntelligence, error) {
	c.mu.RLock()
	mi, ok := c.entries[cacheKey(industry, geography)]
	c.mu.RUnlock()
	if !ok || !mi.Usable(c.now()) {
		return nil, nil
	}
	return &mi, nil
}

// Put replaces the entry for the pair of mi. Expiry is taken from
// mi.ExpiresAt.
func (c *MarketCache) Put(_ context.Context, mi domain.MarketIntelligence) error {
	c.mu.Lock()
	c.entries[cacheKey(mi.Industry, mi.Geography)] = mi
	c.mu.Unlock()
	return nil
}
