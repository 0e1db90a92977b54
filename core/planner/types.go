package planner

import (
	"time"

	"github.com/kuhyx/kinoplan/core/catalog"
	"github.com/kuhyx/kinoplan/core/model"
)

// ShowingFilter selects the eligible subset of the catalog for one run.
type ShowingFilter interface {
	Filter(showings []*model.Showing, constraints ConstraintSet) []*model.Showing
}

// Searcher enumerates candidate schedules over the eligible showings.
// Constraints are resolved and validated before Search is called.
type Searcher interface {
	Search(eligible []*model.Showing, constraints ConstraintSet) ([]model.Schedule, SearchStats)
}

// Ranker orders candidate schedules, drops duplicates and truncates to
// the requested count.
type Ranker interface {
	Rank(candidates []model.Schedule, constraints ConstraintSet) []model.Schedule
}

// SearchStats summarizes the work performed by one search. With more than
// one worker the explored and pruned counts depend on scheduling, the
// retained candidate list does not.
type SearchStats struct {
	Eligible      int
	Roots         int
	Edges         int
	Explored      int
	Retained      int
	Pruned        int
	MustWatchCuts int
	Elapsed       time.Duration
}

// PlanResult contains the outcome of a planning run.
type PlanResult struct {
	Schedules []model.Schedule
	Eligible  []*model.Showing
	Stats     SearchStats
}

// PlanRequest asks a running Planner for one plan. Reply is optional.
type PlanRequest struct {
	Catalog     *catalog.Catalog
	Constraints ConstraintSet
	Reply       chan<- PlanResult
}
