package planner

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultMaxSchedules is the documented default for the number of
// returned candidates.
const DefaultMaxSchedules = 5

// DefaultExcludedGenres is applied when the caller neither lists excluded
// genres nor asks for all genres.
var DefaultExcludedGenres = []string{"Horror"}

// ErrInvalidConstraints is returned for configuration errors. They are
// surfaced before any search runs and are never retried.
var ErrInvalidConstraints = errors.New("planner: invalid constraints")

// ConstraintSet parametrizes one planning run.
type ConstraintSet struct {
	ExcludedTitles []string      // title patterns to drop entirely
	ExcludedGenres []string      // genre labels to drop
	AllGenres      bool          // suppress the default genre exclusion
	Buffer         time.Duration // minimum gap between consecutive showings
	MustWatch      string        // title pattern every schedule must contain
	MaxSchedules   int           // cap on returned candidates
	Workers        int           // search parallelism, <=1 runs serially
}

// DefaultConstraints returns a ConstraintSet with the documented defaults.
func DefaultConstraints() ConstraintSet {
	return ConstraintSet{MaxSchedules: DefaultMaxSchedules}
}

// Resolved returns a copy with the default genre exclusion applied. The
// default is resolved here exactly once, never read as ambient state by
// the search: an explicit exclusion list wins, the AllGenres flag stands
// for explicitly passing the empty set, and only a fully unspecified set
// falls back to DefaultExcludedGenres.
func (c ConstraintSet) Resolved() ConstraintSet {
	out := c
	out.ExcludedTitles = append([]string(nil), c.ExcludedTitles...)
	switch {
	case len(c.ExcludedGenres) > 0:
		out.ExcludedGenres = append([]string(nil), c.ExcludedGenres...)
	case c.AllGenres:
		out.ExcludedGenres = nil
	default:
		out.ExcludedGenres = append([]string(nil), DefaultExcludedGenres...)
	}
	return out
}

// Validate checks the constraint invariants. It does not apply defaults,
// so a zero MaxSchedules is rejected; use DefaultConstraints or the config
// layer to obtain defaults.
func (c ConstraintSet) Validate() error {
	if c.Buffer < 0 {
		return fmt.Errorf("%w: buffer must not be negative, got %s", ErrInvalidConstraints, c.Buffer)
	}
	if c.MaxSchedules < 1 {
		return fmt.Errorf("%w: max schedules must be at least 1, got %d", ErrInvalidConstraints, c.MaxSchedules)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidConstraints, c.Workers)
	}
	for _, p := range c.ExcludedTitles {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("%w: blank excluded title pattern", ErrInvalidConstraints)
		}
	}
	for _, g := range c.ExcludedGenres {
		if strings.TrimSpace(g) == "" {
			return fmt.Errorf("%w: blank excluded genre", ErrInvalidConstraints)
		}
	}
	if c.MustWatch != "" && strings.TrimSpace(c.MustWatch) == "" {
		return fmt.Errorf("%w: blank must-watch pattern", ErrInvalidConstraints)
	}
	return nil
}
