// Package narrative turns aggregate tables into short descriptive
// strings. Every function degrades to a fixed fallback on empty input
// and never panics, so an empty filtered view renders as text instead
// of a broken chart caption.
package narrative

import (
	"fmt"

	"github.com/Latifa2025-star/311calls/internal/types"
)

// Fallback is emitted whenever the relevant aggregate has zero rows.
const Fallback = "No data for current filters."

// AtAGlance summarizes the KPI row.
func AtAGlance(k types.KPIs) string {
	if k.Total == 0 {
		return Fallback
	}
	peak := "an unknown hour"
	if k.PeakHour >= 0 {
		peak = fmt.Sprintf("%d:00", k.PeakHour)
	}
	return fmt.Sprintf(
		"Requests peak around %s. Most common issue: %s. Median closure time: %.1f hours. Top borough (by count): %s.",
		peak, k.TopCategory, k.MedianHours, k.TopBorough)
}

// Categories describes the leading category. The lead is the first row of
// the category table, which the aggregator already sorted count
// descending then name ascending, so selection is deterministic.
func Categories(counts []types.CategoryCount) string {
	if len(counts) == 0 {
		return Fallback
	}
	total := 0
	for _, c := range counts {
		total += c.Count
	}
	return fmt.Sprintf(
		"%s leads with %d requests. Together, the top %d categories account for %d reports in the selected slice.",
		counts[0].Category, counts[0].Count, len(counts), total)
}

// Resolution names the fastest and slowest categories by median closure
// time. Ties keep the earlier row of the summary table.
func Resolution(summaries []types.ResolutionSummary) string {
	if len(summaries) == 0 {
		return Fallback
	}
	fastest, slowest := summaries[0], summaries[0]
	for _, s := range summaries[1:] {
		if s.Median < fastest.Median {
			fastest = s
		}
		if s.Median > slowest.Median {
			slowest = s
		}
	}
	return fmt.Sprintf(
		"Fastest to close (median) appears to be %s, while %s tends to take the longest.",
		fastest.Category, slowest.Category)
}

// Animation names the peak hour within the animated categories, summing
// cells per hour. Ties keep the earliest hour.
func Animation(cells []types.AnimationCell) string {
	if len(cells) == 0 {
		return Fallback
	}
	byHour := make([]int, types.HoursPerDay)
	for _, c := range cells {
		if c.Hour >= 0 && c.Hour < types.HoursPerDay {
			byHour[c.Hour] += c.Count
		}
	}
	peak, best := 0, byHour[0]
	for h := 1; h < types.HoursPerDay; h++ {
		if byHour[h] > best {
			peak, best = h, byHour[h]
		}
	}
	return fmt.Sprintf("Within these categories, overall activity peaks around %d:00.", peak)
}

// All assembles the narrative block for one explore pass.
func All(res types.ExploreResult) types.Narratives {
	return types.Narratives{
		AtAGlance:  AtAGlance(res.KPIs),
		Categories: Categories(res.Categories),
		Resolution: Resolution(res.Resolution),
		Animation:  Animation(res.Animation),
	}
}
