// Package filter applies a FilterSpec to a normalized record set.
package filter

import (
	"strings"

	"github.com/Latifa2025-star/311calls/internal/types"
)

// Apply returns the subset of records satisfying spec. The predicates are
// a pure conjunction, evaluated cheapest-first; an empty result is a
// valid output, not an error.
//
// A record with no CreatedAt has no hour or day, so it can only pass the
// hour predicate when the range is the full 0-23 and the day predicate
// when the day is All; unrestricted filters keep such records so they
// still count toward category aggregates.
func Apply(records []types.Record, spec types.FilterSpec) []types.Record {
	spec = spec.Normalized()

	fullHours := spec.FullHourRange()
	anyDay := spec.Day == types.DayAll
	boroughs := spec.BoroughSet()

	out := make([]types.Record, 0, len(records))
	for _, r := range records {
		if !anyDay && r.DayOfWeek != spec.Day {
			continue
		}
		if !fullHours {
			if r.Hour == nil || *r.Hour < spec.HourMin || *r.Hour > spec.HourMax {
				continue
			}
		}
		if boroughs != nil {
			if _, ok := boroughs[strings.ToLower(r.Borough)]; !ok {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}
