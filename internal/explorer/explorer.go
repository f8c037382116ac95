// Package explorer is the single entry point of the pipeline: recompute
// every aggregate and narrative for one FilterSpec over the cached,
// read-only record set.
package explorer

import (
	"sort"
	"sync"
	"time"

	"github.com/Latifa2025-star/311calls/internal/aggregate"
	"github.com/Latifa2025-star/311calls/internal/filter"
	"github.com/Latifa2025-star/311calls/internal/logger"
	"github.com/Latifa2025-star/311calls/internal/narrative"
	"github.com/Latifa2025-star/311calls/internal/types"
)

// Explorer owns a normalized, derived record set. The set is never
// mutated after construction; filtering and aggregation build new tables,
// so concurrent readers need no coordination beyond the result cache.
type Explorer struct {
	records []types.Record
	version string

	mu    sync.RWMutex
	cache map[string]types.ExploreResult
}

// New wraps an immutable record set. version identifies the dataset
// (source path or URL) and scopes the result cache.
func New(records []types.Record, version string) *Explorer {
	return &Explorer{
		records: records,
		version: version,
		cache:   make(map[string]types.ExploreResult),
	}
}

// Explore runs Filter -> Aggregator -> Narrative for spec. Results are
// cached by FilterSpec key and dataset version, so an unchanged selection
// is served without recomputation. An empty filtered set yields empty
// tables and fallback narratives, never an error.
func (e *Explorer) Explore(spec types.FilterSpec) types.ExploreResult {
	spec = spec.Normalized()
	key := e.version + "|" + spec.Key()

	e.mu.RLock()
	cached, ok := e.cache[key]
	e.mu.RUnlock()
	if ok {
		return cached
	}

	start := time.Now()
	filtered := filter.Apply(e.records, spec)

	res := types.ExploreResult{Filter: spec, Total: len(filtered)}
	res.KPIs = aggregate.ComputeKPIs(filtered)
	res.Categories = aggregate.CategoryCounts(filtered, spec.TopN)
	res.Statuses = aggregate.StatusCounts(filtered)
	res.Resolution = aggregate.ResolutionSummaries(filtered,
		aggregate.TopCategories(filtered, spec.TopN))
	res.Heatmap = aggregate.DayHourMatrix(filtered)
	res.Animation = aggregate.HourCategoryMatrix(filtered, types.DefaultAnimTopK)
	res.Daily = aggregate.DailyCounts(filtered)
	res.Boroughs = aggregate.BoroughCounts(filtered)
	res.MapPoints = aggregate.MapPoints(filtered, aggregate.DefaultMapSample)
	res.Narratives = narrative.All(res)

	logger.New().WithComponent("explorer").
		WithField("filter", spec.Key()).
		WithField("rows", len(filtered)).
		WithField("duration_ms", time.Since(start).Milliseconds()).
		Info("aggregates recomputed")

	e.mu.Lock()
	e.cache[key] = res
	e.mu.Unlock()
	return res
}

// Meta describes the loaded dataset for building filter controls.
type Meta struct {
	Version  string   `json:"version"`
	Rows     int      `json:"rows"`
	Boroughs []string `json:"boroughs"`
	Days     []string `json:"days"`
}

// Meta lists the distinct boroughs (sorted) and the fixed day axis.
func (e *Explorer) Meta() Meta {
	seen := map[string]struct{}{}
	for _, r := range e.records {
		seen[r.Borough] = struct{}{}
	}
	boroughs := make([]string, 0, len(seen))
	for b := range seen {
		boroughs = append(boroughs, b)
	}
	sort.Strings(boroughs)
	return Meta{
		Version:  e.version,
		Rows:     len(e.records),
		Boroughs: boroughs,
		Days:     types.DayOrder,
	}
}
