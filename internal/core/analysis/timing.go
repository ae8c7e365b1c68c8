package analysis

import (
	"fmt"
	"time"

	"campaign-optimizer/internal/core/domain"
	"campaign-optimizer/internal/core/scoring"
)

const (
	immediateLeadTime = 7 * 24 * time.Hour
	defaultLeadTime   = 14 * 24 * time.Hour
	searchHorizon     = 12
	alternativeCount  = 2
)

// Timing decides between launching now and waiting for a recommended
// month.
func (a *Analyzer) Timing(in Input) domain.TimingRecommendation {
	seasonal := in.Market.Seasonal
	urgency := in.Responses.String(KeyUrgency, "flexible")
	risk := in.Market.Timing.Economic.RiskLevel
	if risk == "" {
		risk = domain.RiskLow
	}
	now := in.Now.UTC()

	rec := domain.TimingRecommendation{
		AvoidMonths: append([]int(nil), seasonal.AvoidMonths...),
		RiskLevel:   risk,
	}
	rec.ImmediateLaunch = urgency == "immediate" ||
		(urgency == "soon" && risk == domain.RiskLow && !seasonal.Avoid(now.Month()))

	candidates := recommendedStarts(seasonal, now)
	switch {
	case rec.ImmediateLaunch:
		rec.OptimalLaunchDate = now.Add(immediateLeadTime).Truncate(24 * time.Hour)
		rec.AlternativeDates = take(candidates, alternativeCount)
	case len(candidates) > 0:
		rec.OptimalLaunchDate = candidates[0]
		rec.AlternativeDates = take(candidates[1:], alternativeCount)
	default:
		rec.OptimalLaunchDate = now.Add(defaultLeadTime).Truncate(24 * time.Hour)
	}
	if rec.AlternativeDates == nil {
		rec.AlternativeDates = []time.Time{}
	}

	month := rec.OptimalLaunchDate.Month()
	if in.Campaign.StartDate != nil {
		month = in.Campaign.StartDate.Month()
	}
	rec.SeasonalMultiplier = seasonal.Multiplier(month)

	for _, name := range in.Market.Timing.Economic.DecliningIndicators {
		rec.EconomicRiskFactors = append(rec.EconomicRiskFactors, name+" decreasing")
	}
	if ind, ok := in.Market.Economic.Indicators["inflation_rate"]; ok && ind.Trend == domain.TrendIncreasing {
		rec.EconomicRiskFactors = append(rec.EconomicRiskFactors, "inflation_rate increasing")
	}
	if rec.EconomicRiskFactors == nil {
		rec.EconomicRiskFactors = []string{}
	}

	conf := 0.5
	if seasonal.Live {
		conf += 0.2
	}
	if in.Market.LiveIndicators() >= 2 {
		conf += 0.1
	}
	if urgency == "flexible" || urgency == "strategic" {
		conf += 0.1
	}
	rec.Confidence = scoring.Clamp01(conf)
	rec.Reasoning = timingReasoning(rec, urgency, seasonal)
	return rec
}

// recommendedStarts lists the first day of each upcoming recommended month
// that is not an avoid month, nearest first, within a year.
func recommendedStarts(p domain.SeasonalPattern, now time.Time) []time.Time {
	var out []time.Time
	start := firstOfMonth(now)
	for i := 1; i <= searchHorizon; i++ {
		d := start.AddDate(0, i, 0)
		m := int(d.Month())
		if contains(p.RecommendedMonths, m) && !contains(p.AvoidMonths, m) {
			out = append(out, d)
		}
	}
	return out
}

func take(ts []time.Time, n int) []time.Time {
	if len(ts) > n {
		ts = ts[:n]
	}
	return append([]time.Time(nil), ts...)
}

func timingReasoning(rec domain.TimingRecommendation, urgency string, p domain.SeasonalPattern) []string {
	var out []string
	if rec.ImmediateLaunch {
		out = append(out, fmt.Sprintf("Launch soon: urgency is %s and economic risk is %s", urgency, rec.RiskLevel))
	} else {
		out = append(out, fmt.Sprintf("Launch in %s to align with a recommended seasonal window", rec.OptimalLaunchDate.Month()))
	}
	if len(p.PeakMonths) > 0 {
		out = append(out, fmt.Sprintf("Peak demand months: %v", p.PeakMonths))
	}
	if len(p.AvoidMonths) > 0 {
		out = append(out, fmt.Sprintf("Avoid launching in months %v", p.AvoidMonths))
	}
	if !p.Live {
		out = append(out, "Seasonality is based on industry defaults")
	}
	if len(rec.EconomicRiskFactors) > 0 {
		out = append(out, fmt.Sprintf("Economic headwinds: %v", rec.EconomicRiskFactors))
	}
	return out
}
