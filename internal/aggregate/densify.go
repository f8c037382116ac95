package aggregate

import "github.com/Latifa2025-star/311calls/internal/types"

// densify walks the full Cartesian key space in order and emits one cell
// per combination, zero-filled where counts has no entry. Both dense
// matrices go through here so no chart ever drops a frame or cell for a
// combination with zero observations.
func densify[O, I comparable, R any](
	outers []O, inners []I,
	counts map[O]map[I]int,
	cell func(o O, i I, n int) R,
) []R {
	out := make([]R, 0, len(outers)*len(inners))
	for _, o := range outers {
		for _, i := range inners {
			out = append(out, cell(o, i, counts[o][i]))
		}
	}
	return out
}

func hourAxis() []int {
	hours := make([]int, types.HoursPerDay)
	for h := range hours {
		hours[h] = h
	}
	return hours
}

// DayHourMatrix counts requests per (day of week, hour) and densifies to
// all 7x24 cells, Monday through Sunday then hour 0 through 23. Records
// without a creation timestamp are skipped.
func DayHourMatrix(records []types.Record) []types.HeatmapCell {
	counts := map[string]map[int]int{}
	for _, r := range records {
		if r.DayOfWeek == "" || r.Hour == nil {
			continue
		}
		if counts[r.DayOfWeek] == nil {
			counts[r.DayOfWeek] = map[int]int{}
		}
		counts[r.DayOfWeek][*r.Hour]++
	}
	return densify(types.DayOrder, hourAxis(), counts,
		func(day string, hour, n int) types.HeatmapCell {
			return types.HeatmapCell{Day: day, Hour: hour, Count: n}
		})
}

// HourCategoryMatrix counts requests per (hour, category) over the top k
// categories of the filtered set and densifies to all 24xk cells, hour
// 0 through 23 outermost so each hour is one animation frame.
func HourCategoryMatrix(records []types.Record, k int) []types.AnimationCell {
	chosen := TopCategories(records, k)
	if len(chosen) == 0 {
		return []types.AnimationCell{}
	}
	keep := make(map[string]struct{}, len(chosen))
	for _, c := range chosen {
		keep[c] = struct{}{}
	}

	counts := map[int]map[string]int{}
	for _, r := range records {
		if r.Hour == nil {
			continue
		}
		if _, ok := keep[r.Category]; !ok {
			continue
		}
		if counts[*r.Hour] == nil {
			counts[*r.Hour] = map[string]int{}
		}
		counts[*r.Hour][r.Category]++
	}
	return densify(hourAxis(), chosen, counts,
		func(hour int, category string, n int) types.AnimationCell {
			return types.AnimationCell{Hour: hour, Category: category, Count: n}
		})
}
