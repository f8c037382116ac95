package types

// Aggregate result rows. Each slice is a tidy table handed to a chart
// consumer; an empty slice (never nil semantics relied upon) is the
// well-typed "no data" value.

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// ResolutionSummary holds per-category closure-time statistics in hours.
// Median and quartiles are computed on unclipped data; DisplayMax is the
// 99th percentile, meant only for clipping a plot axis.
type ResolutionSummary struct {
	Category   string  `json:"category"`
	Count      int     `json:"count"`
	Median     float64 `json:"median_hours"`
	Q1         float64 `json:"q1_hours"`
	Q3         float64 `json:"q3_hours"`
	DisplayMax float64 `json:"display_max_hours"`
}

// HeatmapCell is one cell of the dense day-by-hour matrix.
type HeatmapCell struct {
	Day   string `json:"day"`
	Hour  int    `json:"hour"`
	Count int    `json:"count"`
}

// AnimationCell is one frame cell of the dense hour-by-category matrix.
type AnimationCell struct {
	Hour     int    `json:"hour"`
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type DailyCount struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"count"`
}

type BoroughCount struct {
	Borough string `json:"borough"`
	Count   int    `json:"count"`
}

// MapPoint is one marker for the geographic scatter. ColorBucket is
// "closed", "in_progress" or "open" following the original status legend.
type MapPoint struct {
	Latitude        float64  `json:"lat"`
	Longitude       float64  `json:"lon"`
	Category        string   `json:"category"`
	Status          string   `json:"status"`
	ColorBucket     string   `json:"color"`
	ResolutionHours *float64 `json:"resolution_hours,omitempty"`
}

// KPIs is the headline metric row.
type KPIs struct {
	Total       int     `json:"total"`
	PctClosed   float64 `json:"pct_closed"`
	MedianHours float64 `json:"median_hours_to_close"`
	TopCategory string  `json:"top_category"`
	TopBorough  string  `json:"top_borough"`
	PeakHour    int     `json:"peak_hour"`
}

// Narratives are the short derived descriptions shown beside each chart.
type Narratives struct {
	AtAGlance  string `json:"at_a_glance"`
	Categories string `json:"categories"`
	Resolution string `json:"resolution"`
	Animation  string `json:"animation"`
}

// ExploreResult is everything one filter interaction produces.
type ExploreResult struct {
	Filter     FilterSpec          `json:"filter"`
	Total      int                 `json:"total"`
	KPIs       KPIs                `json:"kpis"`
	Categories []CategoryCount     `json:"categories"`
	Statuses   []StatusCount       `json:"statuses"`
	Resolution []ResolutionSummary `json:"resolution"`
	Heatmap    []HeatmapCell       `json:"heatmap"`
	Animation  []AnimationCell     `json:"animation"`
	Daily      []DailyCount        `json:"daily"`
	Boroughs   []BoroughCount      `json:"boroughs"`
	MapPoints  []MapPoint          `json:"map_points"`
	Narratives Narratives          `json:"narratives"`
}
