package narrative

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Latifa2025-star/311calls/internal/types"
)

func TestAtAGlance(t *testing.T) {
	k := types.KPIs{
		Total: 120, PctClosed: 75, MedianHours: 1.5,
		TopCategory: "Noise", TopBorough: "BROOKLYN", PeakHour: 22,
	}
	got := AtAGlance(k)
	assert.Contains(t, got, "22:00")
	assert.Contains(t, got, "Noise")
	assert.Contains(t, got, "1.5 hours")
	assert.Contains(t, got, "BROOKLYN")
}

func TestAtAGlance_NoHourData(t *testing.T) {
	k := types.KPIs{Total: 3, TopCategory: "Noise", TopBorough: "QUEENS", PeakHour: -1}
	got := AtAGlance(k)
	assert.NotEmpty(t, got)
	assert.NotContains(t, got, "-1")
}

func TestCategories(t *testing.T) {
	counts := []types.CategoryCount{
		{Category: "Noise", Count: 12},
		{Category: "Water", Count: 8},
	}
	got := Categories(counts)
	assert.Contains(t, got, "Noise leads with 12 requests")
	assert.Contains(t, got, "top 2 categories")
	assert.Contains(t, got, "20 reports")
}

func TestCategories_TieBreakIsFirstRow(t *testing.T) {
	// the aggregator sorts ties by name ascending, so the first row wins
	counts := []types.CategoryCount{
		{Category: "Heat", Count: 5},
		{Category: "Noise", Count: 5},
	}
	assert.Contains(t, Categories(counts), "Heat leads")
}

func TestResolution(t *testing.T) {
	summaries := []types.ResolutionSummary{
		{Category: "Noise", Median: 2},
		{Category: "Water", Median: 48},
		{Category: "Heat", Median: 0.5},
	}
	got := Resolution(summaries)
	assert.Contains(t, got, "Fastest to close (median) appears to be Heat")
	assert.Contains(t, got, "Water tends to take the longest")
}

func TestResolution_TieKeepsEarlierRow(t *testing.T) {
	summaries := []types.ResolutionSummary{
		{Category: "Noise", Median: 2},
		{Category: "Water", Median: 2},
	}
	got := Resolution(summaries)
	assert.Contains(t, got, "appears to be Noise")
	assert.Contains(t, got, "Noise tends to take the longest")
}

func TestAnimation(t *testing.T) {
	cells := []types.AnimationCell{
		{Hour: 9, Category: "Noise", Count: 3},
		{Hour: 9, Category: "Water", Count: 2},
		{Hour: 14, Category: "Noise", Count: 4},
	}
	assert.Contains(t, Animation(cells), "peaks around 9:00")
}

func TestEmptyInputsNeverPanicAndFallBack(t *testing.T) {
	assert.Equal(t, Fallback, AtAGlance(types.KPIs{}))
	assert.Equal(t, Fallback, Categories(nil))
	assert.Equal(t, Fallback, Resolution(nil))
	assert.Equal(t, Fallback, Animation(nil))
}

func TestAll_AlwaysNonEmpty(t *testing.T) {
	// empty result: every narrative degrades, none is empty
	n := All(types.ExploreResult{})
	for _, s := range []string{n.AtAGlance, n.Categories, n.Resolution, n.Animation} {
		assert.NotEmpty(t, s)
	}
}
