// Package analysis turns a campaign, its questionnaire answers and market
// intelligence into the five recommendation dimensions. Everything here is
// deterministic for a given Input.
package analysis

import (
	"time"

	"campaign-optimizer/internal/core/domain"
	"campaign-optimizer/internal/core/scoring"
	"campaign-optimizer/internal/reference"
)

// Questionnaire keys read by the analyses.
const (
	KeyUrgency            = "campaign_urgency"
	KeyBudgetFlexibility  = "budget_flexibility"
	KeySuccessMetric      = "primary_success_metric"
	KeyMarketMaturity     = "target_market_maturity"
	KeyPreviousPerf       = "previous_campaign_performance"
	KeyLargeBudget        = "large_budget_allocation"
	KeyAudienceExpansion  = "audience_expansion"
	KeyGeographicPriority = "geographic_priorities"
)

// Input is everything an analysis run may look at.
type Input struct {
	Campaign       domain.Campaign
	Org            domain.Organization
	Responses      domain.Responses
	Market         domain.MarketIntelligence
	PriorCampaigns int
	Now            time.Time
}

// Analyzer runs the analyses against a set of reference tables.
type Analyzer struct {
	tables *reference.Tables
}

// New returns an Analyzer. A nil tables uses the embedded defaults.
func New(tables *reference.Tables) *Analyzer {
	if tables == nil {
		tables = reference.Default()
	}
	return &Analyzer{tables: tables}
}

// Run executes all five analyses and aggregates their confidence.
func (a *Analyzer) Run(in Input) (domain.Recommendations, domain.ConfidenceScores) {
	timing := a.Timing(in)
	platform := a.Platform(in)
	budget := a.Budget(in, platform)
	recs := domain.Recommendations{
		Timing:   timing,
		Platform: platform,
		Budget:   budget,
		Creative: Creative(in),
		Audience: a.Audience(in),
	}
	scores := scoring.Aggregate(scoring.ConfidenceInputs{
		DataQuality: scoring.DataQuality(in.Market.Source),
		Historical:  scoring.HistoricalConfidence(in.PriorCampaigns),
		Timing:      recs.Timing.Confidence,
		Platform:    recs.Platform.Confidence,
		Budget:      recs.Budget.Confidence,
	})
	return recs, scores
}

// objective resolves the scoring objective from the campaign, falling back
// to the declared success metric.
func objective(in Input) string {
	if o := reference.Normalize(in.Campaign.PrimaryObjective); o != "" {
		return o
	}
	switch in.Responses.String(KeySuccessMetric, "") {
	case "brand_awareness", "engagement":
		return "awareness"
	case "website_traffic":
		return "traffic"
	case "lead_generation":
		return "leads"
	case "sales_revenue", "customer_acquisition":
		return "sales"
	}
	return ""
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func contains[T comparable](xs []T, v T) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}
