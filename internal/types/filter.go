package types

import (
	"fmt"
	"sort"
	"strings"
)

// DayAll disables the day predicate.
const DayAll = "All"

const (
	DefaultTopN     = 20
	DefaultAnimTopK = 6
)

// FilterSpec is the user-chosen predicate set. Constructed fresh per
// interaction and never mutated after Normalized.
type FilterSpec struct {
	Day      string   `json:"day"`
	HourMin  int      `json:"hour_min"`
	HourMax  int      `json:"hour_max"`
	Boroughs []string `json:"boroughs,omitempty"`
	TopN     int      `json:"top_n"`
}

// DefaultFilter matches every record.
func DefaultFilter() FilterSpec {
	return FilterSpec{Day: DayAll, HourMin: 0, HourMax: HoursPerDay - 1, TopN: DefaultTopN}
}

// Normalized returns a copy with both hour bounds clamped to [0,23],
// min<=max, an empty day mapped to All and a zero TopN defaulted.
// HourMax = 0 is the valid single-hour range ending at midnight, not
// "unset"; absence is handled where the spec is constructed
// (DefaultFilter, query parsing).
func (f FilterSpec) Normalized() FilterSpec {
	if f.Day == "" {
		f.Day = DayAll
	}
	f.HourMin = clampHour(f.HourMin)
	f.HourMax = clampHour(f.HourMax)
	if f.HourMin > f.HourMax {
		f.HourMin, f.HourMax = f.HourMax, f.HourMin
	}
	if f.TopN <= 0 {
		f.TopN = DefaultTopN
	}
	return f
}

func clampHour(h int) int {
	if h < 0 {
		return 0
	}
	if h > HoursPerDay-1 {
		return HoursPerDay - 1
	}
	return h
}

// FullHourRange reports whether the hour predicate imposes no restriction.
func (f FilterSpec) FullHourRange() bool {
	return f.HourMin <= 0 && f.HourMax >= HoursPerDay-1
}

// BoroughSet returns the lowercased borough restriction, or nil when the
// selection is empty or contains "All".
func (f FilterSpec) BoroughSet() map[string]struct{} {
	if len(f.Boroughs) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(f.Boroughs))
	for _, b := range f.Boroughs {
		b = strings.ToLower(strings.TrimSpace(b))
		if b == "" {
			continue
		}
		if b == strings.ToLower(DayAll) {
			return nil
		}
		set[b] = struct{}{}
	}
	if len(set) == 0 {
		return nil
	}
	return set
}

// Key is a canonical cache key: equal filters yield equal keys regardless
// of borough order or casing.
func (f FilterSpec) Key() string {
	f = f.Normalized()
	boroughs := make([]string, 0, len(f.Boroughs))
	for b := range f.BoroughSet() {
		boroughs = append(boroughs, b)
	}
	sort.Strings(boroughs)
	return fmt.Sprintf("day=%s|h=%d-%d|b=%s|n=%d",
		f.Day, f.HourMin, f.HourMax, strings.Join(boroughs, ","), f.TopN)
}
