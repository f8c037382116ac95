package types

import "time"

// Defaults applied at normalization so downstream code never re-checks
// for missing values.
const (
	Unspecified  = "Unspecified"
	UnknownLabel = "(Unknown)"
)

// DayOrder fixes the day axis Monday through Sunday for every
// day-keyed aggregate.
var DayOrder = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// HoursPerDay is the size of the hour axis (0..23).
const HoursPerDay = 24

// Record is one service request after normalization and derivation.
// Category, Status and Borough are never empty; pointer fields are nil
// when the source value was missing or unparseable.
type Record struct {
	ID        string     `json:"id"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	ClosedAt  *time.Time `json:"closed_at,omitempty"`
	Category  string     `json:"category"`
	Status    string     `json:"status"`
	Borough   string     `json:"borough"`
	Latitude  *float64   `json:"latitude,omitempty"`
	Longitude *float64   `json:"longitude,omitempty"`

	// Derived once after normalization, never re-derived per filter pass.
	Hour            *int     `json:"hour,omitempty"`
	DayOfWeek       string   `json:"day_of_week,omitempty"`
	ResolutionHours *float64 `json:"resolution_hours,omitempty"`
	IsClosed        bool     `json:"is_closed"`
}

// HasGeo reports whether the record carries usable coordinates.
func (r Record) HasGeo() bool {
	return r.Latitude != nil && r.Longitude != nil
}
