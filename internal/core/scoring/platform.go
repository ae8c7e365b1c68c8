// Package scoring ranks advertising platforms and aggregates confidence.
// It does no I/O; reference data is passed in.
package scoring

import (
	"sort"

	"campaign-optimizer/internal/core/domain"
)

const (
	baseObjectiveScore = 50.0

	objectiveWeight   = 0.4
	demographicWeight = 0.3
	efficiencyWeight  = 0.3

	// mean(conversion)/mean(cpc) is scaled by 1000 for readability and by
	// 10 onto the 0-100 range.
	efficiencyScale = 1000 * 10
)

// AdFormat is the historical benchmark of one ad format on a platform.
type AdFormat struct {
	Name           string  `yaml:"name" json:"name"`
	CTR            float64 `yaml:"ctr" json:"ctr"`
	CPC            float64 `yaml:"cpc" json:"cpc"`
	ConversionRate float64 `yaml:"conversion_rate" json:"conversion_rate"`
}

// PlatformBenchmark is the static profile of an advertising platform.
type PlatformBenchmark struct {
	Platform string          `yaml:"platform" json:"platform"`
	Formats  []AdFormat      `yaml:"formats" json:"formats"`
	AgeBand  domain.AgeRange `yaml:"age_band" json:"age_band"`
	Strength float64         `yaml:"strength" json:"strength"`
}

// MeanCPC averages cost-per-click over the formats.
func (b PlatformBenchmark) MeanCPC() float64 {
	if len(b.Formats) == 0 {
		return 0
	}
	var s float64
	for _, f := range b.Formats {
		s += f.CPC
	}
	return s / float64(len(b.Formats))
}

// MeanConversion averages conversion rate over the formats.
func (b PlatformBenchmark) MeanConversion() float64 {
	if len(b.Formats) == 0 {
		return 0
	}
	var s float64
	for _, f := range b.Formats {
		s += f.ConversionRate
	}
	return s / float64(len(b.Formats))
}

// MeanCTR averages click-through rate over the formats.
func (b PlatformBenchmark) MeanCTR() float64 {
	if len(b.Formats) == 0 {
		return 0
	}
	var s float64
	for _, f := range b.Formats {
		s += f.CTR
	}
	return s / float64(len(b.Formats))
}

// ObjectiveWeightTable maps objective -> platform -> multiplier.
type ObjectiveWeightTable map[string]map[string]float64

// Multiplier returns the multiplier for the pair or 1.0 when unknown.
func (t ObjectiveWeightTable) Multiplier(objective, platform string) float64 {
	if m, ok := t[objective][platform]; ok {
		return m
	}
	return 1.0
}

// ObjectiveFit scales the base score by the objective multiplier.
func ObjectiveFit(t ObjectiveWeightTable, objective, platform string) float64 {
	return baseObjectiveScore * t.Multiplier(objective, platform)
}

// DemographicFit scores how much of the wider of the two age bands is
// shared, weighted by the platform strength.
func DemographicFit(target domain.AgeRange, b PlatformBenchmark) float64 {
	maxRange := max(target.Span(), b.AgeBand.Span())
	overlap := 0.5
	if maxRange > 0 {
		overlap = float64(target.Overlap(b.AgeBand)) / float64(maxRange)
	}
	return overlap * b.Strength * 100
}

// Efficiency rewards high conversion at low cost, capped at 100.
func Efficiency(b PlatformBenchmark) float64 {
	cpc := b.MeanCPC()
	if cpc <= 0 {
		return 0
	}
	return min(100, b.MeanConversion()/cpc*efficiencyScale)
}

// ScorePlatform computes the weighted suitability of one platform.
func ScorePlatform(b PlatformBenchmark, t ObjectiveWeightTable, objective string, target domain.AgeRange) domain.PlatformScore {
	s := domain.PlatformScore{
		Platform:    b.Platform,
		Objective:   ObjectiveFit(t, objective, b.Platform),
		Demographic: DemographicFit(target, b),
		Efficiency:  Efficiency(b),
	}
	s.Total = objectiveWeight*s.Objective + demographicWeight*s.Demographic + efficiencyWeight*s.Efficiency
	return s
}

// RankPlatforms scores every benchmark and orders them by total score,
// highest first. Equal scores keep the benchmark order.
func RankPlatforms(benchmarks []PlatformBenchmark, t ObjectiveWeightTable, objective string, target domain.AgeRange) []domain.PlatformScore {
	scores := make([]domain.PlatformScore, len(benchmarks))
	for i, b := range benchmarks {
		scores[i] = ScorePlatform(b, t, objective, target)
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].Total > scores[j].Total })
	return scores
}
