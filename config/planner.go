package config

import (
	"time"

	"github.com/kuhyx/kinoplan/core/planner"
)

// PlannerConfig carries the default planning constraints. Command line
// flags override individual fields per invocation.
type PlannerConfig struct {
	// BufferMinutes is the minimum gap between consecutive showings.
	BufferMinutes int `json:"buffer_minutes" validate:"gte=0"`
	// MaxSchedules caps the number of returned candidates.
	MaxSchedules int `json:"max_schedules" validate:"gte=0"`
	// ExcludedTitles lists title patterns to drop entirely.
	ExcludedTitles []string `json:"excluded_titles"`
	// ExcludedGenres lists genre labels to drop.
	ExcludedGenres []string `json:"excluded_genres"`
	// AllGenres suppresses the default genre exclusion.
	AllGenres bool `json:"all_genres"`
	// MustWatch is a title pattern every schedule must contain.
	MustWatch string `json:"must_watch"`
	// Workers sets the search parallelism; 0 or 1 runs serially.
	Workers int `json:"workers" validate:"gte=0"`
}

// SetDefaults applies sane defaults.
func (c *PlannerConfig) SetDefaults() {
	if c.MaxSchedules == 0 {
		c.MaxSchedules = planner.DefaultMaxSchedules
	}
}

// Constraints maps the configuration into a planner ConstraintSet.
func (c PlannerConfig) Constraints() planner.ConstraintSet {
	return planner.ConstraintSet{
		ExcludedTitles: c.ExcludedTitles,
		ExcludedGenres: c.ExcludedGenres,
		AllGenres:      c.AllGenres,
		Buffer:         time.Duration(c.BufferMinutes) * time.Minute,
		MustWatch:      c.MustWatch,
		MaxSchedules:   c.MaxSchedules,
		Workers:        c.Workers,
	}
}
