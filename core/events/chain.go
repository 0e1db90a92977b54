package events

import "time"

// ChainEvent is emitted for search progress under one starting showing.
// Action can be "retained", "pruned", or "mustwatch_cut".
type ChainEvent struct {
	RootID string
	Action string
	Length int
	Idle   time.Duration
}
