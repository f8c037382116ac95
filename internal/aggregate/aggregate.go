// Package aggregate computes the descriptive summaries behind each view.
// Every function is deterministic (ties broken by name or key ascending)
// and returns an empty, well-typed table on empty input.
package aggregate

import (
	"sort"

	"github.com/Latifa2025-star/311calls/internal/types"
)

// CategoryCounts groups by category and counts, sorted count descending
// with ties broken by category name ascending. topN > 0 truncates the
// table; topN <= 0 keeps every category.
func CategoryCounts(records []types.Record, topN int) []types.CategoryCount {
	counts := map[string]int{}
	for _, r := range records {
		counts[r.Category]++
	}
	out := make([]types.CategoryCount, 0, len(counts))
	for c, n := range counts {
		out = append(out, types.CategoryCount{Category: c, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Category < out[j].Category
	})
	if topN > 0 && len(out) > topN {
		out = out[:topN]
	}
	return out
}

// TopCategories returns the names of the k leading categories of the
// given (already filtered) set, in aggregate order.
func TopCategories(records []types.Record, k int) []string {
	top := CategoryCounts(records, k)
	names := make([]string, len(top))
	for i, c := range top {
		names[i] = c.Category
	}
	return names
}

// StatusCounts groups by raw status (case-preserving; missing values were
// already defaulted at normalization), untruncated. Sorted like the
// category table so reruns are byte-identical.
func StatusCounts(records []types.Record) []types.StatusCount {
	counts := map[string]int{}
	for _, r := range records {
		counts[r.Status]++
	}
	out := make([]types.StatusCount, 0, len(counts))
	for s, n := range counts {
		out = append(out, types.StatusCount{Status: s, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Status < out[j].Status
	})
	return out
}

// BoroughCounts groups by borough, sorted count descending, name ascending.
func BoroughCounts(records []types.Record) []types.BoroughCount {
	counts := map[string]int{}
	for _, r := range records {
		counts[r.Borough]++
	}
	out := make([]types.BoroughCount, 0, len(counts))
	for b, n := range counts {
		out = append(out, types.BoroughCount{Borough: b, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Borough < out[j].Borough
	})
	return out
}

// DailyCounts groups by creation date, ascending. Records without a
// creation timestamp are skipped.
func DailyCounts(records []types.Record) []types.DailyCount {
	counts := map[string]int{}
	for _, r := range records {
		if r.CreatedAt == nil {
			continue
		}
		counts[r.CreatedAt.Format("2006-01-02")]++
	}
	out := make([]types.DailyCount, 0, len(counts))
	for d, n := range counts {
		out = append(out, types.DailyCount{Date: d, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// ComputeKPIs derives the headline metric row. PeakHour is -1 when no
// record carries an hour.
func ComputeKPIs(records []types.Record) types.KPIs {
	kpis := types.KPIs{
		Total:       len(records),
		TopCategory: types.UnknownLabel,
		TopBorough:  types.UnknownLabel,
		PeakHour:    -1,
	}
	if len(records) == 0 {
		return kpis
	}

	closed := 0
	hours := make([]int, 0, len(records))
	durations := make([]float64, 0, len(records))
	for _, r := range records {
		if r.IsClosed {
			closed++
		}
		if r.Hour != nil {
			hours = append(hours, *r.Hour)
		}
		if r.ResolutionHours != nil {
			durations = append(durations, *r.ResolutionHours)
		}
	}
	kpis.PctClosed = float64(closed) / float64(len(records)) * 100
	if len(durations) > 0 {
		sort.Float64s(durations)
		kpis.MedianHours = quantile(durations, 0.5)
	}

	if top := CategoryCounts(records, 1); len(top) > 0 {
		kpis.TopCategory = top[0].Category
	}
	if top := BoroughCounts(records); len(top) > 0 {
		kpis.TopBorough = top[0].Borough
	}

	if len(hours) > 0 {
		byHour := make([]int, types.HoursPerDay)
		for _, h := range hours {
			byHour[h]++
		}
		peak, best := 0, byHour[0]
		for h := 1; h < types.HoursPerDay; h++ {
			if byHour[h] > best {
				peak, best = h, byHour[h]
			}
		}
		kpis.PeakHour = peak
	}
	return kpis
}
