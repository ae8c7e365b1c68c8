package series

import (
	"sort"

	"campaign-optimizer/internal/core/domain"
)

const (
	peakCount        = 3
	lowCount         = 3
	recommendedCount = 6
	avoidCount       = 2
)

// Decompose groups observations by calendar month and derives the seasonal
// index of each populated month (month average over the mean of the month
// averages). ok is false when fewer than two months are populated or the
// mean is zero; callers then use their static pattern.
func Decompose(obs []domain.Observation) (domain.SeasonalPattern, bool) {
	sums := make(map[int]float64)
	counts := make(map[int]int)
	for _, o := range obs {
		m := int(o.Period.Month())
		sums[m] += o.Value
		counts[m]++
	}
	if len(counts) < 2 {
		return domain.SeasonalPattern{}, false
	}

	avgs := make(map[int]float64, len(counts))
	var mean float64
	for m, c := range counts {
		avgs[m] = sums[m] / float64(c)
		mean += avgs[m]
	}
	mean /= float64(len(avgs))
	if mean == 0 {
		return domain.SeasonalPattern{}, false
	}

	type ranked struct {
		month int
		index float64
	}
	idx := make([]ranked, 0, len(avgs))
	multipliers := make(map[int]float64, len(avgs))
	for m, a := range avgs {
		idx = append(idx, ranked{month: m, index: a / mean})
		multipliers[m] = a / mean
	}
	// descending by index, ties by month
	sort.Slice(idx, func(i, j int) bool {
		if idx[i].index != idx[j].index {
			return idx[i].index > idx[j].index
		}
		return idx[i].month < idx[j].month
	})

	months := func(rs []ranked) []int {
		out := make([]int, len(rs))
		for i, r := range rs {
			out[i] = r.month
		}
		return out
	}
	ascending := make([]ranked, len(idx))
	copy(ascending, idx)
	sort.SliceStable(ascending, func(i, j int) bool {
		if ascending[i].index != ascending[j].index {
			return ascending[i].index < ascending[j].index
		}
		return ascending[i].month < ascending[j].month
	})

	return domain.SeasonalPattern{
		PeakMonths:        months(idx[:min(peakCount, len(idx))]),
		LowMonths:         months(ascending[:min(lowCount, len(ascending))]),
		RecommendedMonths: months(idx[:min(recommendedCount, len(idx))]),
		AvoidMonths:       months(ascending[:min(avoidCount, len(ascending))]),
		Strength:          idx[0].index - idx[len(idx)-1].index,
		Multipliers:       multipliers,
		Live:              true,
	}, true
}
