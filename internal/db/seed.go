package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"campaign-optimizer/internal/core/domain"
)

// DemoUser owns the seeded campaigns.
const DemoUser = "demo-user"

type seedOrg struct {
	id, name, industry string
}

var seedOrgs = []seedOrg{
	{"org-retail", "Northwind Outfitters", "retail"},
	{"org-tech", "Lumen Software", "technology"},
}

type seedCampaign struct {
	id, org, campaignType, objective, status string
	daily                                    int64
	ageOffset                                int
	interests                                []string
}

var seedCampaigns = []seedCampaign{
	{"camp-retail-search", "org-retail", "search", "sales", "draft", 150, -10, []string{"shopping"}},
	{"camp-retail-display", "org-retail", "display", "awareness", "completed", 80, -200, []string{"fashion"}},
	{"camp-retail-video", "org-retail", "video", "traffic", "active", 60, -40, nil},
	{"camp-tech-search", "org-tech", "search", "leads", "draft", 400, -5, []string{"software"}},
}

// Seed inserts demo organizations and campaigns owned by DemoUser in one
// transaction. Existing rows are left untouched.
func Seed(ctx context.Context, pool *pgxpool.Pool) error {
	tx, err := pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, o := range seedOrgs {
		if _, err = tx.Exec(ctx, `INSERT INTO organizations (id, name, industry)
VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`, o.id, o.name, o.industry); err != nil {
			return fmt.Errorf("seed organization %s: %w", o.id, err)
		}
	}

	now := time.Now().UTC()
	for _, c := range seedCampaigns {
		targeting, err := json.Marshal(domain.Targeting{
			AgeRange:  &domain.AgeRange{Min: 25, Max: 54},
			Locations: []string{"Toronto", "Vancouver"},
			Interests: c.interests,
		})
		if err != nil {
			return err
		}
		creative, err := json.Marshal(domain.CreativeAssets{
			AssetCount:      3,
			MessagingThemes: []string{"quality", "price"},
			CallToAction:    "Shop Now",
		})
		if err != nil {
			return err
		}
		daily := decimal.NewFromInt(c.daily)
		created := now.AddDate(0, 0, c.ageOffset)
		if _, err = tx.Exec(ctx, `INSERT INTO campaigns
    (id, org_id, user_id, name, campaign_type, status, primary_objective, daily_budget, total_budget,
     currency, targeting, creative, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 'CAD', $10, $11, $12, $12) ON CONFLICT DO NOTHING`,
			c.id, c.org, DemoUser, c.id, c.campaignType, c.status, c.objective,
			daily, daily.Mul(decimal.NewFromInt(30)), targeting, creative, created); err != nil {
			return fmt.Errorf("seed campaign %s: %w", c.id, err)
		}
	}
	return tx.Commit(ctx)
}
