package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"campaign-optimizer/internal/core/domain"
	"campaign-optimizer/internal/core/port"
)

// CampaignRepository implements port.CampaignRepository using pgxpool.
type CampaignRepository struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository returns a new repository instance.
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{pool: pool}
}

const campaignColumns = `id, org_id, user_id, name, campaign_type, platform, status, primary_objective,
	total_budget, daily_budget, currency, start_date, end_date, targeting, creative, created_at, updated_at`

// GetCampaign returns a campaign by id, or nil when it does not exist.
func (r *CampaignRepository) GetCampaign(ctx context.Context, id string) (*domain.Campaign, error) {
	var (
		c                       domain.Campaign
		targeting, creativeJSON []byte
	)
	err := r.pool.QueryRow(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE id = $1`, id).Scan(
		&c.ID, &c.OrgID, &c.UserID, &c.Name, &c.CampaignType, &c.Platform, &c.Status, &c.PrimaryObjective,
		&c.TotalBudget, &c.DailyBudget, &c.Currency, &c.StartDate, &c.EndDate, &targeting, &creativeJSON,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err = json.Unmarshal(targeting, &c.Targeting); err != nil {
		return nil, err
	}
	if err = json.Unmarshal(creativeJSON, &c.Creative); err != nil {
		return nil, err
	}
	return &c, nil
}

// GetOrganization returns an organization by id, or nil when absent.
func (r *CampaignRepository) GetOrganization(ctx context.Context, id string) (*domain.Organization, error) {
	var o domain.Organization
	err := r.pool.QueryRow(ctx, `SELECT id, name, industry FROM organizations WHERE id = $1`, id).
		Scan(&o.ID, &o.Name, &o.Industry)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// UpdateCampaign writes back the fields recommendations may change.
func (r *CampaignRepository) UpdateCampaign(ctx context.Context, c domain.Campaign) error {
	targeting, err := json.Marshal(c.Targeting)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `UPDATE campaigns
SET start_date = $2, end_date = $3, platform = $4, total_budget = $5, daily_budget = $6, targeting = $7, updated_at = $8
WHERE id = $1`,
		c.ID, c.StartDate, c.EndDate, c.Platform, c.TotalBudget, c.DailyBudget, targeting, c.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return port.ErrCampaignNotFound
	}
	return nil
}

// CountPriorCampaigns counts completed or active campaigns of an
// organization created since the given time.
func (r *CampaignRepository) CountPriorCampaigns(ctx context.Context, orgID, excludeID string, since time.Time) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM campaigns
WHERE org_id = $1 AND id <> $2 AND created_at >= $3 AND status IN ('completed', 'active')`,
		orgID, excludeID, since).Scan(&n)
	return n, err
}
