package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Latifa2025-star/311calls/internal/normalize"
	"github.com/Latifa2025-star/311calls/internal/types"
)

// rec builds a derived record created at the given weekday-bearing time.
func rec(t *testing.T, category, borough string, created string) types.Record {
	t.Helper()
	r := types.Record{Category: category, Status: "Open", Borough: borough}
	if created != "" {
		ts, err := time.Parse("2006-01-02T15:04:05", created)
		require.NoError(t, err)
		r.CreatedAt = &ts
	}
	normalize.Derive(&r)
	return r
}

func testRecords(t *testing.T) []types.Record {
	t.Helper()
	return []types.Record{
		rec(t, "Noise", "BROOKLYN", "2024-01-01T08:00:00"),  // Monday 8
		rec(t, "Noise", "QUEENS", "2024-01-01T22:00:00"),    // Monday 22
		rec(t, "Water", "BROOKLYN", "2024-01-02T08:00:00"),  // Tuesday 8
		rec(t, "Heat", "MANHATTAN", "2024-01-06T14:00:00"),  // Saturday 14
		rec(t, "Heat", "BROOKLYN", ""),                      // no timestamp
	}
}

func TestApply_NoRestrictionKeepsEverything(t *testing.T) {
	records := testRecords(t)
	got := Apply(records, types.DefaultFilter())
	assert.Len(t, got, len(records), "default filter keeps records with and without timestamps")
}

func TestApply_DayPredicate(t *testing.T) {
	records := testRecords(t)
	spec := types.DefaultFilter()
	spec.Day = "Monday"

	got := Apply(records, spec)
	require.Len(t, got, 2)
	for _, r := range got {
		assert.Equal(t, "Monday", r.DayOfWeek)
	}
}

func TestApply_HourRangeExcludesNullHours(t *testing.T) {
	records := testRecords(t)
	spec := types.DefaultFilter()
	spec.HourMin, spec.HourMax = 6, 12

	got := Apply(records, spec)
	require.Len(t, got, 2)
	for _, r := range got {
		require.NotNil(t, r.Hour, "a narrowed hour range cannot admit null hours")
		assert.GreaterOrEqual(t, *r.Hour, 6)
		assert.LessOrEqual(t, *r.Hour, 12)
	}
}

func TestApply_MidnightOnlyHourRange(t *testing.T) {
	records := []types.Record{
		rec(t, "Noise", "BROOKLYN", "2024-01-01T00:30:00"), // midnight hour
		rec(t, "Water", "BROOKLYN", "2024-01-01T08:00:00"),
	}
	spec := types.DefaultFilter()
	spec.HourMin, spec.HourMax = 0, 0

	got := Apply(records, spec)
	require.Len(t, got, 1, "[0,0] selects the midnight hour only")
	assert.Equal(t, "Noise", got[0].Category)
}

func TestApply_BoroughPredicate(t *testing.T) {
	records := testRecords(t)

	spec := types.DefaultFilter()
	spec.Boroughs = []string{"brooklyn"} // case-insensitive
	got := Apply(records, spec)
	assert.Len(t, got, 3)

	spec.Boroughs = []string{"All"}
	assert.Len(t, Apply(records, spec), len(records), `"All" disables the borough predicate`)

	spec.Boroughs = nil
	assert.Len(t, Apply(records, spec), len(records), "empty set disables the borough predicate")
}

func TestApply_OutputIsSubsetOfInput(t *testing.T) {
	records := testRecords(t)
	spec := types.FilterSpec{Day: "Monday", HourMin: 0, HourMax: 23, Boroughs: []string{"QUEENS"}, TopN: 5}

	got := Apply(records, spec)
	byID := func(r types.Record) string { return r.Category + "|" + r.Borough + "|" + r.DayOfWeek }
	inputSet := map[string]bool{}
	for _, r := range records {
		inputSet[byID(r)] = true
	}
	for _, r := range got {
		assert.True(t, inputSet[byID(r)], "filter must never fabricate records")
	}
}

func TestApply_SequentialNarrowingEqualsConjunction(t *testing.T) {
	records := testRecords(t)

	dayOnly := types.DefaultFilter()
	dayOnly.Day = "Monday"
	boroughOnly := types.DefaultFilter()
	boroughOnly.Boroughs = []string{"BROOKLYN"}
	both := types.DefaultFilter()
	both.Day = "Monday"
	both.Boroughs = []string{"BROOKLYN"}

	sequential := Apply(Apply(records, dayOnly), boroughOnly)
	conjunction := Apply(records, both)
	assert.Equal(t, conjunction, sequential)

	// commutative: predicate order does not matter
	reversed := Apply(Apply(records, boroughOnly), dayOnly)
	assert.Equal(t, conjunction, reversed)
}

func TestApply_EmptyResultIsValid(t *testing.T) {
	records := testRecords(t)
	spec := types.DefaultFilter()
	spec.Boroughs = []string{"STATEN ISLAND"}

	got := Apply(records, spec)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
