package normalize

import (
	"strconv"
	"strings"
	"time"

	"github.com/Latifa2025-star/311calls/internal/dataset"
	"github.com/Latifa2025-star/311calls/internal/logger"
	"github.com/Latifa2025-star/311calls/internal/types"
)

// SchemaError marks a structurally unusable input: not tabular, or
// missing the category identity column. It is the only fatal error the
// pipeline produces.
type SchemaError struct {
	Reason string
}

func (e *SchemaError) Error() string {
	return "schema error: " + e.Reason
}

// Timestamp layouts seen across the 311 export variants (portal CSV,
// Socrata JSON, spreadsheet exports).
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"01/02/2006 03:04:05 PM",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// columnIndex holds detected positions for the expected schema; -1 means
// the column is absent and its values default.
type columnIndex struct {
	id, created, closed, category, status, borough, lat, lon int
}

func detectColumns(header []string) columnIndex {
	idx := columnIndex{-1, -1, -1, -1, -1, -1, -1, -1}
	for i, h := range header {
		l := strings.ToLower(strings.TrimSpace(h))
		switch {
		case idx.category == -1 && (strings.Contains(l, "complaint") || strings.Contains(l, "category")):
			idx.category = i
		case idx.created == -1 && strings.Contains(l, "created"):
			idx.created = i
		case idx.closed == -1 && strings.Contains(l, "closed"):
			idx.closed = i
		case idx.status == -1 && strings.Contains(l, "status"):
			idx.status = i
		case idx.borough == -1 && strings.Contains(l, "borough"):
			idx.borough = i
		case idx.lat == -1 && (strings.Contains(l, "latitude") || l == "lat"):
			idx.lat = i
		case idx.lon == -1 && (strings.Contains(l, "longitude") || l == "lon" || l == "lng"):
			idx.lon = i
		case idx.id == -1 && (strings.Contains(l, "unique") || strings.Contains(l, "key") || l == "id"):
			idx.id = i
		}
	}
	return idx
}

// Batch turns a raw tabular read into normalized, derived records.
// Every record that survives satisfies the full Record contract: non-empty
// category, status and borough, parsed-or-nil timestamps and coordinates.
// Rows with a blank category are dropped; unparseable cells become nil,
// never errors.
func Batch(batch dataset.RawBatch) ([]types.Record, error) {
	if len(batch.Columns) == 0 {
		return nil, &SchemaError{Reason: "input has no columns"}
	}
	idx := detectColumns(batch.Columns)
	if idx.category == -1 {
		return nil, &SchemaError{Reason: "no category column found"}
	}

	log := logger.New().WithComponent("normalize")
	records := make([]types.Record, 0, len(batch.Rows))
	dropped := 0
	for _, row := range batch.Rows {
		category := strings.TrimSpace(cell(row, idx.category))
		if category == "" {
			dropped++
			continue
		}
		rec := types.Record{
			ID:        strings.TrimSpace(cell(row, idx.id)),
			Category:  category,
			Status:    defaulted(cell(row, idx.status)),
			Borough:   defaulted(cell(row, idx.borough)),
			CreatedAt: parseTime(cell(row, idx.created)),
			ClosedAt:  parseTime(cell(row, idx.closed)),
			Latitude:  parseFloat(cell(row, idx.lat)),
			Longitude: parseFloat(cell(row, idx.lon)),
		}
		Derive(&rec)
		records = append(records, rec)
	}
	log.WithField("rows", len(records)).WithField("dropped_no_category", dropped).
		Info("batch normalized")
	return records, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func defaulted(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return types.Unspecified
	}
	return v
}

func parseTime(v string) *time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return &t
		}
	}
	return nil
}

func parseFloat(v string) *float64 {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &f
}
