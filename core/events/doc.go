// Package events defines the planning related events emitted on the event bus.
//
// Available event types:
//   - RunEvent: a planning run started on a filtered catalog
//   - ChainEvent: a maximal chain was retained or a branch was cut
//   - ResultEvent: ranked schedules are ready
package events
