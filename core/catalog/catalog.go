// Package catalog holds the immutable set of showings for one cinema day.
// A Catalog is constructed once from parsed program data and validated up
// front, so downstream planning code can rely on its ordering invariants.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/kuhyx/kinoplan/core/model"
)

var (
	// ErrInvalidInterval is returned when a showing ends at or before
	// its start time.
	ErrInvalidInterval = errors.New("catalog: showing interval is not positive")
	// ErrUnsorted is returned when showings are not in ascending start
	// order. The planner's pruning bound assumes sorted input, so the
	// catalog rejects violations instead of fixing them silently.
	ErrUnsorted = errors.New("catalog: showings not sorted by start time")
	// ErrDuplicateID is returned when two showings share an identifier.
	ErrDuplicateID = errors.New("catalog: duplicate showing id")
)

// Catalog is an immutable, start-time ordered collection of showings.
type Catalog struct {
	showings []model.Showing
	byID     map[string]int
}

// New validates the given showings and builds a catalog. The input must
// already be sorted ascending by start time; adapters producing showings
// in arbitrary order should call SortShowings first.
func New(showings []model.Showing) (*Catalog, error) {
	owned := make([]model.Showing, len(showings))
	copy(owned, showings)

	byID := make(map[string]int, len(owned))
	for i, s := range owned {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInterval, err)
		}
		if i > 0 && s.Start.Before(owned[i-1].Start) {
			return nil, fmt.Errorf("%w: %s starts before %s", ErrUnsorted, s.ID, owned[i-1].ID)
		}
		if _, dup := byID[s.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, s.ID)
		}
		byID[s.ID] = i
	}
	return &Catalog{showings: owned, byID: byID}, nil
}

// SortShowings orders showings by start time, ties broken by end time
// and then ID so the resulting order is deterministic regardless of
// input order.
func SortShowings(showings []model.Showing) {
	sort.Slice(showings, func(i, j int) bool {
		a, b := showings[i], showings[j]
		if !a.Start.Equal(b.Start) {
			return a.Start.Before(b.Start)
		}
		if !a.End.Equal(b.End) {
			return a.End.Before(b.End)
		}
		return a.ID < b.ID
	})
}

// Len returns the number of showings in the catalog.
func (c *Catalog) Len() int {
	return len(c.showings)
}

// At returns the showing at position i in start-time order. The pointer
// references catalog-owned data and must be treated as read-only.
func (c *Catalog) At(i int) *model.Showing {
	return &c.showings[i]
}

// Showings returns the ordered showings as borrowed references.
func (c *Catalog) Showings() []*model.Showing {
	out := make([]*model.Showing, len(c.showings))
	for i := range c.showings {
		out[i] = &c.showings[i]
	}
	return out
}

// ByID looks up a showing by identifier.
func (c *Catalog) ByID(id string) (*model.Showing, bool) {
	i, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	return &c.showings[i], true
}

// Genres returns the distinct genre labels present in the catalog,
// sorted alphabetically.
func (c *Catalog) Genres() []string {
	seen := make(map[string]struct{})
	for _, s := range c.showings {
		if s.Genre != "" {
			seen[s.Genre] = struct{}{}
		}
	}
	genres := make([]string, 0, len(seen))
	for g := range seen {
		genres = append(genres, g)
	}
	sort.Strings(genres)
	return genres
}

// Day returns the calendar day of the earliest showing, truncated to
// midnight in that showing's location. The zero time is returned for an
// empty catalog.
func (c *Catalog) Day() time.Time {
	if len(c.showings) == 0 {
		return time.Time{}
	}
	s := c.showings[0].Start
	return time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, s.Location())
}
