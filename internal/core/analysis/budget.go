package analysis

import (
	"math"

	"github.com/shopspring/decimal"

	"campaign-optimizer/internal/core/domain"
)

const (
	minDailyClicks      = 10
	defaultDurationDays = 30
	defaultCurrency     = "CAD"

	growthThreshold = 2.0
	growthUplift    = 1.05
	growthCut       = 0.95

	peakAdjustment = 1.20
	lowAdjustment  = 0.85

	strongSeasonality = 0.5
)

// Gap identifiers reported by the budget analysis.
const (
	GapIncreaseBudget = "increase_budget"
	GapNoBudget       = "set_budget"
)

// flexibilityCap bounds how far the recommendation may exceed the current
// daily budget. Zero means no cap.
var flexibilityCap = map[string]float64{
	"fixed":    1.0,
	"limited":  1.10,
	"moderate": 1.25,
	"high":     0,
}

// Budget sizes the daily and total spend and splits it like the platform
// recommendation.
func (a *Analyzer) Budget(in Input, platform domain.PlatformRecommendation) domain.BudgetRecommendation {
	c := in.Campaign
	days := durationDays(c)

	current := c.DailyBudgetFloat()
	if current == 0 && c.TotalBudgetFloat() > 0 {
		current = c.TotalBudgetFloat() / float64(days)
	}

	var cpc float64
	if b, ok := a.tables.Platform(platform.PrimaryPlatform); ok {
		cpc = b.MeanCPC()
	}

	rec := domain.BudgetRecommendation{
		Currency:            c.Currency,
		Gaps:                []string{},
		PlatformAllocation:  make(map[string]decimal.Decimal),
		SeasonalAdjustments: make(map[int]float64),
		Confidence:          0.7,
	}
	if rec.Currency == "" {
		rec.Currency = defaultCurrency
	}

	if cpc > 0 {
		rec.EstimatedDailyClicks = math.Round(current/cpc*10) / 10
	}
	switch {
	case current == 0:
		rec.Gaps = append(rec.Gaps, GapNoBudget, GapIncreaseBudget)
	case rec.EstimatedDailyClicks < minDailyClicks:
		rec.Gaps = append(rec.Gaps, GapIncreaseBudget)
	}

	daily := max(current, minDailyClicks*cpc)
	switch g := in.Market.Retail.GrowthRate; {
	case g > growthThreshold:
		daily *= growthUplift
	case g < -growthThreshold:
		daily *= growthCut
	}
	flex := in.Responses.String(KeyBudgetFlexibility, "moderate")
	if limit, ok := flexibilityCap[flex]; ok && limit > 0 && current > 0 {
		daily = min(daily, current*limit)
	}

	dailyDec := decimal.NewFromFloat(daily).Round(2)
	totalDec := dailyDec.Mul(decimal.NewFromInt(int64(days))).Round(2)
	rec.RecommendedDaily = dailyDec
	rec.RecommendedTotal = totalDec

	for p, share := range platform.BudgetAllocation {
		rec.PlatformAllocation[p] = totalDec.Mul(decimal.NewFromFloat(share)).Round(2)
	}

	seasonal := in.Market.Seasonal
	for _, m := range seasonal.PeakMonths {
		rec.SeasonalAdjustments[m] = peakAdjustment
	}
	for _, m := range seasonal.LowMonths {
		if _, peak := rec.SeasonalAdjustments[m]; !peak {
			rec.SeasonalAdjustments[m] = lowAdjustment
		}
	}

	rec.Pacing = pacing(in, seasonal)

	if current > 0 && in.Market.Source != domain.SourceFallback {
		rec.Confidence = 0.8
	}
	return rec
}

func pacing(in Input, seasonal domain.SeasonalPattern) string {
	switch in.Responses.String(KeyLargeBudget, "") {
	case "aggressive_start":
		return domain.PacingFrontLoaded
	case "steady_pace":
		return domain.PacingEven
	case "test_and_scale":
		return domain.PacingTestScale
	case "seasonal_focus":
		return domain.PacingSeasonal
	}
	if seasonal.Strength >= strongSeasonality {
		return domain.PacingSeasonal
	}
	if in.Responses.String(KeyUrgency, "") == "immediate" {
		return domain.PacingFrontLoaded
	}
	return domain.PacingEven
}

func durationDays(c domain.Campaign) int {
	if c.StartDate == nil || c.EndDate == nil {
		return defaultDurationDays
	}
	d := int(math.Ceil(c.EndDate.Sub(*c.StartDate).Hours() / 24))
	if d < 1 {
		return defaultDurationDays
	}
	return d
}
