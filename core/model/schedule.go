package model

import (
	"strings"
	"time"
)

// Schedule is an ordered chain of showings a single person can attend
// back to back. Showings are sorted by start time and never overlap.
// The slice borrows catalog-owned showings and must not mutate them.
type Schedule struct {
	Showings []*Showing
}

// Len returns the number of showings in the schedule.
func (s Schedule) Len() int {
	return len(s.Showings)
}

// Start returns the start time of the first showing, or the zero time
// for an empty schedule.
func (s Schedule) Start() time.Time {
	if len(s.Showings) == 0 {
		return time.Time{}
	}
	return s.Showings[0].Start
}

// End returns the end time of the last showing, or the zero time for
// an empty schedule.
func (s Schedule) End() time.Time {
	if len(s.Showings) == 0 {
		return time.Time{}
	}
	return s.Showings[len(s.Showings)-1].End
}

// TotalIdle sums the gaps between consecutive showings. Buffer time
// spent between screenings counts as idle.
func (s Schedule) TotalIdle() time.Duration {
	var idle time.Duration
	for i := 1; i < len(s.Showings); i++ {
		idle += s.Showings[i].Start.Sub(s.Showings[i-1].End)
	}
	return idle
}

// ContainsTitle reports whether any showing in the schedule matches the
// given title, using the same case-insensitive containment rule applied
// by the constraint filter.
func (s Schedule) ContainsTitle(title string) bool {
	for _, sh := range s.Showings {
		if TitleMatches(sh.Title, title) {
			return true
		}
	}
	return false
}

// IDs returns the showing identifiers in schedule order.
func (s Schedule) IDs() []string {
	ids := make([]string, len(s.Showings))
	for i, sh := range s.Showings {
		ids[i] = sh.ID
	}
	return ids
}

// Titles returns the showing titles in schedule order.
func (s Schedule) Titles() []string {
	titles := make([]string, len(s.Showings))
	for i, sh := range s.Showings {
		titles[i] = sh.Title
	}
	return titles
}

// Key returns a canonical identity for the schedule derived from its
// showing IDs. Two schedules with the same showings share a key.
func (s Schedule) Key() string {
	return strings.Join(s.IDs(), "|")
}

// TitleMatches reports whether a showing title matches a user-supplied
// pattern. Matching is case-insensitive containment, so "batman"
// matches "The Batman Returns".
func TitleMatches(title, pattern string) bool {
	if pattern == "" {
		return false
	}
	return strings.Contains(strings.ToLower(title), strings.ToLower(pattern))
}
