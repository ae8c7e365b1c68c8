package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Campaign represents an advertising campaign. Campaigns are owned by the
// surrounding application; the optimizer reads them and, when a user applies
// recommendations, writes a subset of fields back.
// Budgets are decimal currency amounts; an invalid NullDecimal means unset.
type Campaign struct {
	ID               string              `json:"id" validate:"required"`
	OrgID            string              `json:"org_id" validate:"required"`
	UserID           string              `json:"user_id" validate:"required"`
	Name             string              `json:"name"`
	CampaignType     string              `json:"campaign_type"` // search, display, video, shopping
	Platform         string              `json:"platform"`
	Status           string              `json:"status"`            // draft, active, paused, completed
	PrimaryObjective string              `json:"primary_objective"` // awareness, traffic, leads, sales
	TotalBudget      decimal.NullDecimal `json:"total_budget"`
	DailyBudget      decimal.NullDecimal `json:"daily_budget"`
	Currency         string              `json:"currency" validate:"omitempty,len=3"`
	StartDate        *time.Time          `json:"start_date,omitempty"`
	EndDate          *time.Time          `json:"end_date,omitempty"`
	Targeting        Targeting           `json:"targeting"`
	Creative         CreativeAssets      `json:"creative"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

// TotalBudgetFloat returns the total budget as a float, or 0 when unset.
func (c Campaign) TotalBudgetFloat() float64 {
	if !c.TotalBudget.Valid {
		return 0
	}
	return c.TotalBudget.Decimal.InexactFloat64()
}

// DailyBudgetFloat returns the daily budget as a float, or 0 when unset.
func (c Campaign) DailyBudgetFloat() float64 {
	if !c.DailyBudget.Valid {
		return 0
	}
	return c.DailyBudget.Decimal.InexactFloat64()
}

// Organization is the owner of campaigns. Industry drives the market data
// and the industry-specific questionnaire section.
type Organization struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Industry string `json:"industry"`
}

// CreativeAssets summarises the creative material attached to a campaign.
type CreativeAssets struct {
	Formats         []string `json:"formats"`
	AssetCount      int      `json:"asset_count"`
	MessagingThemes []string `json:"messaging_themes"`
	CallToAction    string   `json:"call_to_action"`
	LandingPageURL  string   `json:"landing_page_url"`
}
