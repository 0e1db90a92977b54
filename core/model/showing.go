package model

import (
	"fmt"
	"time"
)

// Showing represents a single screening of a movie in a cinema room.
type Showing struct {
	ID    string    // stable identifier, unique within a catalog
	Title string    // movie title as printed in the program
	Genre string    // genre label, e.g. "Drama" or "Horror"
	Room  string    // room or screen name, informational only
	Start time.Time // moment the screening begins
	End   time.Time // moment the screening ends, strictly after Start
}

// Duration returns how long the screening lasts.
func (s Showing) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// Validate checks that the showing describes a real interval.
// In particular End must be strictly after Start.
func (s Showing) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("showing has empty id")
	}
	if s.Title == "" {
		return fmt.Errorf("showing %s has empty title", s.ID)
	}
	if !s.End.After(s.Start) {
		return fmt.Errorf("showing %s (%s) ends at or before it starts", s.ID, s.Title)
	}
	return nil
}

// Overlaps returns true if the two screenings share any instant.
// Touching endpoints do not count as overlap.
func (s Showing) Overlaps(o Showing) bool {
	return s.Start.Before(o.End) && o.Start.Before(s.End)
}

// String returns a compact human-readable description of the showing.
func (s Showing) String() string {
	return fmt.Sprintf("%s %s-%s %s", s.Title, s.Start.Format("15:04"), s.End.Format("15:04"), s.Room)
}
