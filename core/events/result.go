package events

import "time"

// ResultEvent is published when a planning run completes with its ranked
// schedule list.
type ResultEvent struct {
	Schedules int
	BestCount int
	BestIdle  time.Duration
	Elapsed   time.Duration
}
