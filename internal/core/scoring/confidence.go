package scoring

import (
	"math"

	"campaign-optimizer/internal/core/domain"
)

// Weights of the overall confidence. They sum to one.
const (
	WeightDataQuality = 0.3
	WeightHistorical  = 0.2
	WeightTiming      = 0.2
	WeightPlatform    = 0.2
	WeightBudget      = 0.1
)

// ConfidenceInputs are the per-dimension confidences before aggregation.
type ConfidenceInputs struct {
	DataQuality float64
	Historical  float64
	Timing      float64
	Platform    float64
	Budget      float64
}

// DataQuality scores where the market intelligence came from.
func DataQuality(src domain.MarketSource) float64 {
	switch src {
	case domain.SourceFetched:
		return 0.9
	case domain.SourceFallback:
		return 0.5
	default:
		return 0.7
	}
}

// HistoricalConfidence grows with the number of prior campaigns.
func HistoricalConfidence(priorCampaigns int) float64 {
	return min(0.9, 0.1*float64(priorCampaigns)+0.3)
}

// Clamp01 bounds v to [0,1]. NaN maps to 0.
func Clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Aggregate clamps each input, forms the weighted overall score and rounds
// everything to two decimals.
func Aggregate(in ConfidenceInputs) domain.ConfidenceScores {
	dq := Clamp01(in.DataQuality)
	hist := Clamp01(in.Historical)
	timing := Clamp01(in.Timing)
	platform := Clamp01(in.Platform)
	budget := Clamp01(in.Budget)

	overall := WeightDataQuality*dq +
		WeightHistorical*hist +
		WeightTiming*timing +
		WeightPlatform*platform +
		WeightBudget*budget

	return domain.ConfidenceScores{
		Overall:     round2(Clamp01(overall)),
		Timing:      round2(timing),
		Platform:    round2(platform),
		Budget:      round2(budget),
		DataQuality: round2(dq),
	}
}
