package events

import "time"

// RunEvent is published when a planning run starts searching.
type RunEvent struct {
	Day         time.Time
	CatalogSize int
	Eligible    int
	Buffer      time.Duration
	MustWatch   string
}
