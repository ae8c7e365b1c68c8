package scoring

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaign-optimizer/internal/core/domain"
)

var testBenchmarks = []PlatformBenchmark{
	{
		Platform: "google_ads",
		Formats: []AdFormat{
			{Name: "search", CTR: 0.035, CPC: 2.50, ConversionRate: 0.045},
			{Name: "display", CTR: 0.008, CPC: 0.85, ConversionRate: 0.012},
			{Name: "video", CTR: 0.025, CPC: 0.30, ConversionRate: 0.008},
		},
		AgeBand:  domain.AgeRange{Min: 25, Max: 65},
		Strength: 0.9,
	},
	{
		Platform: "facebook",
		Formats: []AdFormat{
			{Name: "feed", CTR: 0.018, CPC: 1.20, ConversionRate: 0.025},
			{Name: "stories", CTR: 0.022, CPC: 0.95, ConversionRate: 0.018},
			{Name: "video", CTR: 0.031, CPC: 0.40, ConversionRate: 0.015},
		},
		AgeBand:  domain.AgeRange{Min: 30, Max: 60},
		Strength: 0.8,
	},
	{
		Platform: "instagram",
		Formats: []AdFormat{
			{Name: "feed", CTR: 0.024, CPC: 1.40, ConversionRate: 0.028},
			{Name: "stories", CTR: 0.035, CPC: 1.10, ConversionRate: 0.022},
			{Name: "reels", CTR: 0.045, CPC: 0.80, ConversionRate: 0.020},
		},
		AgeBand:  domain.AgeRange{Min: 18, Max: 45},
		Strength: 0.9,
	},
	{
		Platform: "linkedin",
		Formats: []AdFormat{
			{Name: "sponsored_content", CTR: 0.012, CPC: 4.50, ConversionRate: 0.065},
			{Name: "message_ads", CTR: 0.008, CPC: 6.20, ConversionRate: 0.085},
		},
		AgeBand:  domain.AgeRange{Min: 25, Max: 55},
		Strength: 0.85,
	},
}

var testWeights = ObjectiveWeightTable{
	"awareness": {"google_ads": 0.8, "facebook": 1.2, "instagram": 1.3, "linkedin": 0.7},
	"sales":     {"google_ads": 1.4, "facebook": 1.0, "instagram": 0.9, "linkedin": 0.9},
}

func platforms(scores []domain.PlatformScore) []string {
	out := make([]string, len(scores))
	for i, s := range scores {
		out[i] = s.Platform
	}
	return out
}

func TestScorePlatform(t *testing.T) {
	s := ScorePlatform(testBenchmarks[0], testWeights, "sales", domain.DefaultTargetAge)
	assert.InDelta(t, 70.0, s.Objective, 1e-9)
	assert.InDelta(t, 45.0, s.Demographic, 1e-9)
	assert.InDelta(t, 100.0, s.Efficiency, 1e-9)
	assert.InDelta(t, 71.5, s.Total, 1e-9)
}

func TestRankPlatforms(t *testing.T) {
	tests := []struct {
		objective string
		want      []string
	}{
		{"sales", []string{"google_ads", "instagram", "linkedin", "facebook"}},
		{"awareness", []string{"instagram", "facebook", "linkedin", "google_ads"}},
	}
	for _, tt := range tests {
		t.Run(tt.objective, func(t *testing.T) {
			got := RankPlatforms(testBenchmarks, testWeights, tt.objective, domain.DefaultTargetAge)
			assert.Equal(t, tt.want, platforms(got))
		})
	}
}

func TestRankPlatformsDeterministic(t *testing.T) {
	target := domain.AgeRange{Min: 18, Max: 34}
	first := RankPlatforms(testBenchmarks, testWeights, "awareness", target)
	for n := 0; n < 20; n++ {
		got := RankPlatforms(testBenchmarks, testWeights, "awareness", target)
		if diff := cmp.Diff(first, got); diff != "" {
			t.Fatalf("ranking changed (-first +got):\n%s", diff)
		}
	}
}

func TestRankPlatformsStableOnTies(t *testing.T) {
	same := testBenchmarks[1]
	a, b, c := same, same, same
	a.Platform, b.Platform, c.Platform = "a", "b", "c"
	got := RankPlatforms([]PlatformBenchmark{a, b, c}, nil, "unknown", domain.DefaultTargetAge)
	assert.Equal(t, []string{"a", "b", "c"}, platforms(got))
}

func TestDemographicFitDegenerateBands(t *testing.T) {
	b := PlatformBenchmark{AgeBand: domain.AgeRange{Min: 30, Max: 30}, Strength: 0.8}
	assert.InDelta(t, 40.0, DemographicFit(domain.AgeRange{Min: 30, Max: 30}, b), 1e-9)
	assert.Zero(t, DemographicFit(domain.AgeRange{Min: 60, Max: 70}, testBenchmarks[2]))
}

func TestEfficiencyWithoutFormats(t *testing.T) {
	assert.Zero(t, Efficiency(PlatformBenchmark{}))
}

func TestObjectiveMultiplierDefault(t *testing.T) {
	assert.Equal(t, 1.0, testWeights.Multiplier("traffic", "google_ads"))
	assert.Equal(t, 1.0, testWeights.Multiplier("sales", "tiktok"))
}

func TestAggregateIsConvex(t *testing.T) {
	assert.InDelta(t, 1.0, WeightDataQuality+WeightHistorical+WeightTiming+WeightPlatform+WeightBudget, 1e-12)

	r := rand.New(rand.NewSource(42))
	for n := 0; n < 500; n++ {
		in := ConfidenceInputs{
			DataQuality: r.Float64(),
			Historical:  r.Float64(),
			Timing:      r.Float64(),
			Platform:    r.Float64(),
			Budget:      r.Float64(),
		}
		got := Aggregate(in)
		want := 0.3*in.DataQuality + 0.2*in.Historical + 0.2*in.Timing + 0.2*in.Platform + 0.1*in.Budget

		require.InDelta(t, want, got.Overall, 0.005+1e-9)
		for _, v := range []float64{got.Overall, got.Timing, got.Platform, got.Budget, got.DataQuality} {
			require.GreaterOrEqual(t, v, 0.0)
			require.LessOrEqual(t, v, 1.0)
		}
		lo := min(in.DataQuality, in.Historical, in.Timing, in.Platform, in.Budget)
		hi := max(in.DataQuality, in.Historical, in.Timing, in.Platform, in.Budget)
		require.GreaterOrEqual(t, got.Overall, lo-0.005)
		require.LessOrEqual(t, got.Overall, hi+0.005)
	}
}

func TestAggregateClampsOutOfRange(t *testing.T) {
	got := Aggregate(ConfidenceInputs{DataQuality: 2, Historical: -1, Timing: 1.3, Platform: 0.8, Budget: 0.7})
	assert.Equal(t, 1.0, got.DataQuality)
	assert.Equal(t, 1.0, got.Timing)
	assert.InDelta(t, 0.3+0+0.2+0.16+0.07, got.Overall, 1e-9)
	assert.NoError(t, domain.Validator().Struct(got))
}

func TestDataQualityAndHistorical(t *testing.T) {
	assert.Equal(t, 0.9, DataQuality(domain.SourceFetched))
	assert.Equal(t, 0.5, DataQuality(domain.SourceFallback))
	assert.Equal(t, 0.7, DataQuality(domain.SourceFresh))

	assert.InDelta(t, 0.3, HistoricalConfidence(0), 1e-9)
	assert.InDelta(t, 0.6, HistoricalConfidence(3), 1e-9)
	assert.Equal(t, 0.9, HistoricalConfidence(50))
}
