package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"campaign-optimizer/internal/core/domain"
	"campaign-optimizer/internal/reference"
)

// MarketCache stores market intelligence in the market_intelligence table,
// one row per (industry, geography).
type MarketCache struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewMarketCache returns a cache backed by the market_intelligence table.
// The pool is owned by the caller.
func NewMarketCache(pool *pgxpool.Pool) *MarketCache {
	return &MarketCache{pool: pool, now: time.Now}
}

// Get returns nil, nil when there is no unexpired row.
func (c *MarketCache) Get(ctx context.Context, industry, geography string) (*domain.MarketIntelligence, error) {
	var payload []byte
	err := c.pool.QueryRow(ctx, `SELECT payload FROM market_intelligence
WHERE industry = $1 AND geography = $2 AND expires_at > $3`,
		reference.Normalize(industry), reference.Normalize(geography), c.now()).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var mi domain.MarketIntelligence
	if err = json.Unmarshal(payload, &mi); err != nil {
		return nil, err
	}
	return &mi, nil
}

// Put upserts the entry; the last writer wins.
func (c *MarketCache) Put(ctx context.Context, mi domain.MarketIntelligence) error {
	payload, err := json.Marshal(mi)
	if err != nil {
		return err
	}
	_, err = c.pool.Exec(ctx, `INSERT INTO market_intelligence
    (industry, geography, payload, source, confidence_score, fetched_at, expires_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (industry, geography) DO UPDATE
SET payload = EXCLUDED.payload, source = EXCLUDED.source, confidence_score = EXCLUDED.confidence_score,
    fetched_at = EXCLUDED.fetched_at, expires_at = EXCLUDED.expires_at`,
		reference.Normalize(mi.Industry), reference.Normalize(mi.Geography), payload,
		string(mi.Source), mi.ConfidenceScore, mi.FetchedAt, mi.ExpiresAt)
	return err
}
