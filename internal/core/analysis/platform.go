package analysis

import (
	"fmt"

	"campaign-optimizer/internal/core/domain"
	"campaign-optimizer/internal/core/scoring"
)

const secondaryCount = 2

// Platform ranks the benchmark platforms for the campaign and splits the
// budget over the top three.
func (a *Analyzer) Platform(in Input) domain.PlatformRecommendation {
	obj := objective(in)
	target := in.Campaign.Targeting.Age()
	scores := scoring.RankPlatforms(a.tables.Platforms, a.tables.ObjectiveMultipliers, obj, target)

	rec := domain.PlatformRecommendation{
		Scores:               scores,
		SecondaryPlatforms:   []string{},
		BudgetAllocation:     make(map[string]float64),
		ChannelMix:           make(map[string]float64),
		CreativeRequirements: make(map[string][]string),
		Confidence:           0.6,
	}
	if len(scores) == 0 {
		return rec
	}
	rec.Confidence = 0.8
	rec.PrimaryPlatform = scores[0].Platform
	for _, s := range scores[1:min(1+secondaryCount, len(scores))] {
		rec.SecondaryPlatforms = append(rec.SecondaryPlatforms, s.Platform)
	}

	split := a.tables.BudgetSplit
	n := min(len(split), len(scores))
	for i := 0; i < n; i++ {
		rec.BudgetAllocation[scores[i].Platform] = split[i]
	}
	// fewer platforms than split slots: the rest goes to the primary
	for _, rest := range split[n:] {
		rec.BudgetAllocation[rec.PrimaryPlatform] += rest
	}

	for p, share := range rec.BudgetAllocation {
		channel := a.tables.PlatformChannels[p]
		if channel == "" {
			channel = "other"
		}
		rec.ChannelMix[channel] += share
		if formats, ok := a.tables.PlatformCreatives[p]; ok {
			rec.CreativeRequirements[p] = append([]string(nil), formats...)
		}
	}

	top := scores[0]
	rec.Reasoning = []string{
		fmt.Sprintf("%s scores highest (%.1f) for objective %q", top.Platform, top.Total, displayObjective(obj)),
		fmt.Sprintf("Target ages %d-%d give %s a demographic fit of %.1f", target.Min, target.Max, top.Platform, top.Demographic),
	}
	if len(rec.SecondaryPlatforms) > 0 {
		rec.Reasoning = append(rec.Reasoning, fmt.Sprintf("Secondary reach through %v", rec.SecondaryPlatforms))
	}
	return rec
}

func displayObjective(o string) string {
	if o == "" {
		return "unspecified"
	}
	return o
}
