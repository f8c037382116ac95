package aggregate

import (
	"math"
	"sort"

	"github.com/Latifa2025-star/311calls/internal/types"
)

// ResolutionSummaries computes closure-time statistics for the given
// categories, in the given order (callers pass the top-N names to keep
// box plots legible). Records with a nil ResolutionHours are excluded
// here and only here; categories left with no observations are omitted.
//
// Median and quartiles are computed on unclipped durations. DisplayMax
// carries the 99th percentile so a renderer can clip the plotted axis
// without changing the statistics.
func ResolutionSummaries(records []types.Record, categories []string) []types.ResolutionSummary {
	byCategory := map[string][]float64{}
	for _, r := range records {
		if r.ResolutionHours == nil {
			continue
		}
		byCategory[r.Category] = append(byCategory[r.Category], *r.ResolutionHours)
	}

	out := make([]types.ResolutionSummary, 0, len(categories))
	for _, c := range categories {
		values := byCategory[c]
		if len(values) == 0 {
			continue
		}
		sort.Float64s(values)
		out = append(out, types.ResolutionSummary{
			Category:   c,
			Count:      len(values),
			Median:     quantile(values, 0.5),
			Q1:         quantile(values, 0.25),
			Q3:         quantile(values, 0.75),
			DisplayMax: quantile(values, 0.99),
		})
	}
	return out
}

// quantile returns the q-th quantile of sorted values using linear
// interpolation between closest ranks.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
