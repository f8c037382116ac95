package normalize

import (
	"strings"

	"github.com/Latifa2025-star/311calls/internal/types"
)

// Derive computes the per-record derived attributes in place: hour and
// day of week from CreatedAt, resolution duration, and the closed flag.
// Pure function of the normalized fields, so re-deriving an already
// derived record yields the same values.
func Derive(r *types.Record) {
	if r.CreatedAt != nil {
		h := r.CreatedAt.Hour()
		r.Hour = &h
		r.DayOfWeek = r.CreatedAt.Weekday().String()
	} else {
		r.Hour = nil
		r.DayOfWeek = ""
	}

	// Negative spans are clock-skew artifacts: nulled, never clamped.
	r.ResolutionHours = nil
	if r.CreatedAt != nil && r.ClosedAt != nil {
		hours := r.ClosedAt.Sub(*r.CreatedAt).Hours()
		if hours >= 0 {
			r.ResolutionHours = &hours
		}
	}

	r.IsClosed = strings.Contains(strings.ToLower(r.Status), "closed")
}
