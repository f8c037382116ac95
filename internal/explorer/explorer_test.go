package explorer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Latifa2025-star/311calls/internal/narrative"
	"github.com/Latifa2025-star/311calls/internal/normalize"
	"github.com/Latifa2025-star/311calls/internal/types"
)

// scenarioRecords is the concrete three-record scenario: two Noise
// requests (one closed in 2h in Brooklyn, one open in Queens) and one
// Water request closed in 1h in Brooklyn.
func scenarioRecords(t *testing.T) []types.Record {
	t.Helper()
	const layout = "2006-01-02T15:04:05"
	build := func(category, status, borough, created, closed string) types.Record {
		r := types.Record{Category: category, Status: status, Borough: borough}
		if created != "" {
			ts, err := time.Parse(layout, created)
			require.NoError(t, err)
			r.CreatedAt = &ts
		}
		if closed != "" {
			ts, err := time.Parse(layout, closed)
			require.NoError(t, err)
			r.ClosedAt = &ts
		}
		normalize.Derive(&r)
		return r
	}
	return []types.Record{
		build("Noise", "Closed", "BROOKLYN", "2024-01-01T08:00:00", "2024-01-01T10:00:00"),
		build("Noise", "Open", "QUEENS", "2024-01-01T09:00:00", ""),
		build("Water", "Closed", "BROOKLYN", "2024-01-02T08:00:00", "2024-01-02T09:00:00"),
	}
}

func TestExplore_BrooklynScenario(t *testing.T) {
	exp := New(scenarioRecords(t), "test-v1")

	spec := types.DefaultFilter()
	spec.Boroughs = []string{"BROOKLYN"}
	res := exp.Explore(spec)

	assert.Equal(t, 2, res.Total)
	assert.Equal(t, []types.CategoryCount{
		{Category: "Noise", Count: 1},
		{Category: "Water", Count: 1},
	}, res.Categories, "count tie broken alphabetically")
	assert.InDelta(t, 100.0, res.KPIs.PctClosed, 1e-9)
	assert.InDelta(t, 1.5, res.KPIs.MedianHours, 1e-9)
	assert.Len(t, res.Heatmap, 168)
	assert.NotEqual(t, narrative.Fallback, res.Narratives.AtAGlance)
	assert.Contains(t, res.Narratives.Categories, "Noise leads with 1 requests")
}

func TestExplore_EmptySliceDegradesGracefully(t *testing.T) {
	exp := New(scenarioRecords(t), "test-v1")

	// all records were created at 8 or 9; this range matches nothing
	spec := types.DefaultFilter()
	spec.HourMin, spec.HourMax = 20, 23
	res := exp.Explore(spec)

	assert.Zero(t, res.Total)
	assert.Empty(t, res.Categories)
	assert.Empty(t, res.Statuses)
	assert.Empty(t, res.Resolution)
	assert.Empty(t, res.Animation)
	assert.Empty(t, res.Daily)
	assert.Empty(t, res.Boroughs)
	assert.Empty(t, res.MapPoints)
	assert.Len(t, res.Heatmap, 168, "heatmap keeps its dense zero-filled axis")
	assert.Equal(t, narrative.Fallback, res.Narratives.AtAGlance)
	assert.Equal(t, narrative.Fallback, res.Narratives.Categories)
	assert.Equal(t, narrative.Fallback, res.Narratives.Resolution)
	assert.Equal(t, narrative.Fallback, res.Narratives.Animation)
}

func TestExplore_CachedResultIsIdentical(t *testing.T) {
	exp := New(scenarioRecords(t), "test-v1")

	spec := types.DefaultFilter()
	spec.Boroughs = []string{"brooklyn"}
	first := exp.Explore(spec)

	// same selection with different borough casing hits the same key
	spec2 := types.DefaultFilter()
	spec2.Boroughs = []string{"BROOKLYN"}
	second := exp.Explore(spec2)

	assert.Equal(t, first.Total, second.Total)
	assert.Equal(t, first.Categories, second.Categories)
	assert.Equal(t, first.Narratives, second.Narratives)
}

func TestExplore_DoesNotMutateRecords(t *testing.T) {
	records := scenarioRecords(t)
	snapshot := make([]types.Record, len(records))
	copy(snapshot, records)

	exp := New(records, "test-v1")
	spec := types.DefaultFilter()
	spec.Day = "Monday"
	_ = exp.Explore(spec)
	_ = exp.Explore(types.DefaultFilter())

	assert.Equal(t, snapshot, records, "the working set is read-only")
}

func TestMeta(t *testing.T) {
	exp := New(scenarioRecords(t), "test-v1")
	meta := exp.Meta()

	assert.Equal(t, "test-v1", meta.Version)
	assert.Equal(t, 3, meta.Rows)
	assert.Equal(t, []string{"BROOKLYN", "QUEENS"}, meta.Boroughs)
	assert.Equal(t, types.DayOrder, meta.Days)
}
