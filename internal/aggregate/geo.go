package aggregate

import (
	"math/rand"
	"strings"

	"github.com/Latifa2025-star/311calls/internal/types"
)

// DefaultMapSample caps the scatter at a renderable point count.
const DefaultMapSample = 1500

// mapSeed fixes the sample so the same filtered set always yields the
// same points.
const mapSeed = 42

// MapPoints extracts the geographic scatter: records with coordinates,
// down-sampled deterministically to at most max points.
func MapPoints(records []types.Record, max int) []types.MapPoint {
	if max <= 0 {
		max = DefaultMapSample
	}
	geo := make([]types.Record, 0, len(records))
	for _, r := range records {
		if r.HasGeo() {
			geo = append(geo, r)
		}
	}
	if len(geo) > max {
		rng := rand.New(rand.NewSource(mapSeed))
		rng.Shuffle(len(geo), func(i, j int) { geo[i], geo[j] = geo[j], geo[i] })
		geo = geo[:max]
	}

	out := make([]types.MapPoint, 0, len(geo))
	for _, r := range geo {
		out = append(out, types.MapPoint{
			Latitude:        *r.Latitude,
			Longitude:       *r.Longitude,
			Category:        r.Category,
			Status:          r.Status,
			ColorBucket:     statusBucket(r.Status),
			ResolutionHours: r.ResolutionHours,
		})
	}
	return out
}

// statusBucket maps a raw status onto the three-color map legend.
func statusBucket(status string) string {
	l := strings.ToLower(strings.TrimSpace(status))
	switch {
	case l == "closed":
		return "closed"
	case strings.Contains(l, "progress"):
		return "in_progress"
	default:
		return "open"
	}
}
