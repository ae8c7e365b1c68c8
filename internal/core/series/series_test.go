package series

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaign-optimizer/internal/core/domain"
)

func monthly(start time.Time, values ...float64) []domain.Observation {
	out := make([]domain.Observation, len(values))
	for i, v := range values {
		out[i] = domain.Observation{Period: start.AddDate(0, i, 0), Value: v}
	}
	return out
}

func TestDirection(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   domain.Trend
	}{
		{"empty", nil, domain.TrendInsufficient},
		{"single", []float64{1}, domain.TrendInsufficient},
		{"increasing", []float64{1, 2, 3}, domain.TrendIncreasing},
		{"decreasing", []float64{3, 2, 1}, domain.TrendDecreasing},
		{"flat within threshold", []float64{100, 100.01, 100.02}, domain.TrendStable},
		// only the last six values count: 10 -> 10
		{"window", []float64{1, 2, 10, 50, 3, 4, 5, 10}, domain.TrendStable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Direction(tt.values))
		})
	}
}

func TestGrowthRate(t *testing.T) {
	assert.Zero(t, GrowthRate(nil))
	assert.Zero(t, GrowthRate([]float64{5}))
	assert.Zero(t, GrowthRate([]float64{0, 10}))
	assert.Zero(t, GrowthRate([]float64{-1, 10}))
	assert.InDelta(t, 10.0, GrowthRate([]float64{100, 110, 121}), 1e-9)
	assert.InDelta(t, 100.0, GrowthRate([]float64{1, 2}), 1e-9)
}

func TestChangePercentage(t *testing.T) {
	assert.Zero(t, ChangePercentage([]float64{1}))
	assert.Zero(t, ChangePercentage([]float64{0, 5}))
	assert.InDelta(t, -50.0, ChangePercentage([]float64{7, 4, 2}), 1e-9)
}

func TestVolatility(t *testing.T) {
	assert.InDelta(t, 0.0, Volatility([]float64{100, 110, 121}), 1e-9, "constant growth has no spread")
	assert.Zero(t, Volatility(nil))
	// changes +10% and -10%: mean 0, deviation 10
	assert.InDelta(t, 10.0, Volatility([]float64{100, 110, 99}), 1e-9)
}

func TestMergeAveragesSharedPeriods(t *testing.T) {
	jan := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	feb := jan.AddDate(0, 1, 0)
	merged := Merge([]domain.Series{
		{ID: "a", Observations: []domain.Observation{{Period: feb, Value: 4}, {Period: jan, Value: 2}}},
		{ID: "b", Observations: []domain.Observation{{Period: jan, Value: 4}}},
	})
	require.Len(t, merged, 2)
	assert.Equal(t, jan, merged[0].Period)
	assert.Equal(t, 3.0, merged[0].Value)
	assert.Equal(t, 4.0, merged[1].Value)
}

func TestDecomposeInjectedSeasonality(t *testing.T) {
	values := make([]float64, 24)
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range values {
		switch time.Month(i%12 + 1) {
		case time.December:
			values[i] = 200
		case time.July:
			values[i] = 50
		default:
			values[i] = 100
		}
	}

	p, ok := Decompose(monthly(start, values...))
	require.True(t, ok)
	assert.Contains(t, p.PeakMonths, 12)
	assert.Contains(t, p.LowMonths, 7)
	assert.Equal(t, 12, p.PeakMonths[0])
	assert.Equal(t, 7, p.LowMonths[0])
	assert.InDelta(t, 1.5, p.Strength, 0.1)
	assert.Len(t, p.RecommendedMonths, 6)
	assert.Len(t, p.AvoidMonths, 2)
	assert.Len(t, p.Multipliers, 12)
	assert.True(t, p.Live)
}

func TestDecomposeDegenerate(t *testing.T) {
	jan := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	_, ok := Decompose(nil)
	assert.False(t, ok)

	// two observations in the same calendar month
	_, ok = Decompose([]domain.Observation{{Period: jan, Value: 1}, {Period: jan.AddDate(1, 0, 0), Value: 2}})
	assert.False(t, ok)

	_, ok = Decompose(monthly(jan, 0, 0, 0))
	assert.False(t, ok, "zero mean")

	p, ok := Decompose(monthly(jan, 1, 3))
	require.True(t, ok)
	assert.Equal(t, []int{2, 1}, p.PeakMonths)
	assert.Equal(t, []int{1, 2}, p.LowMonths)
	assert.False(t, math.IsNaN(p.Strength))
	assert.InDelta(t, 1.0, p.Strength, 1e-9)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 0.68, Round2(0.675000001))
	assert.Equal(t, 1.0, Round2(0.999))
}
