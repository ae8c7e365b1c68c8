// Package series holds the time-series arithmetic used by market
// intelligence. All functions are pure and never divide by zero.
package series

import (
	"math"
	"sort"

	"campaign-optimizer/internal/core/domain"
)

const (
	trendWindow    = 6
	trendThreshold = 0.01
)

// Values extracts observation values in order.
func Values(obs []domain.Observation) []float64 {
	out := make([]float64, len(obs))
	for i, o := range obs {
		out[i] = o.Value
	}
	return out
}

// Direction classifies the slope over the last six values.
func Direction(values []float64) domain.Trend {
	if len(values) < 2 {
		return domain.TrendInsufficient
	}
	if len(values) > trendWindow {
		values = values[len(values)-trendWindow:]
	}
	slope := (values[len(values)-1] - values[0]) / float64(len(values))
	switch {
	case slope > trendThreshold:
		return domain.TrendIncreasing
	case slope < -trendThreshold:
		return domain.TrendDecreasing
	default:
		return domain.TrendStable
	}
}

// GrowthRate is the compound per-period growth from the first to the last
// value in percent. Degenerate input yields 0.
func GrowthRate(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	first, last := values[0], values[n-1]
	if first <= 0 || last < 0 {
		return 0
	}
	return (math.Pow(last/first, 1/float64(n-1)) - 1) * 100
}

// ChangePercentage compares the last value with the previous one.
func ChangePercentage(values []float64) float64 {
	n := len(values)
	if n < 2 || values[n-2] == 0 {
		return 0
	}
	return (values[n-1] - values[n-2]) / values[n-2] * 100
}

// Volatility is the population standard deviation of period-over-period
// percentage changes. Steps from a zero value are skipped.
func Volatility(values []float64) float64 {
	changes := make([]float64, 0, len(values))
	for i := 1; i < len(values); i++ {
		if values[i-1] == 0 {
			continue
		}
		changes = append(changes, (values[i]-values[i-1])/values[i-1]*100)
	}
	if len(changes) == 0 {
		return 0
	}
	var mean float64
	for _, c := range changes {
		mean += c
	}
	mean /= float64(len(changes))
	var sq float64
	for _, c := range changes {
		sq += (c - mean) * (c - mean)
	}
	return math.Sqrt(sq / float64(len(changes)))
}

// Merge collapses several series into one by averaging the values that
// share a period. The result is ordered by period.
func Merge(list []domain.Series) []domain.Observation {
	type acc struct {
		obs   domain.Observation
		sum   float64
		count int
	}
	byPeriod := make(map[int64]*acc)
	for _, s := range list {
		for _, o := range s.Observations {
			k := o.Period.Unix()
			a, ok := byPeriod[k]
			if !ok {
				a = &acc{obs: domain.Observation{SeriesID: s.ID, Period: o.Period}}
				byPeriod[k] = a
			}
			a.sum += o.Value
			a.count++
		}
	}
	out := make([]domain.Observation, 0, len(byPeriod))
	for _, a := range byPeriod {
		a.obs.Value = a.sum / float64(a.count)
		out = append(out, a.obs)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period.Before(out[j].Period) })
	return out
}

// Round2 rounds to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
