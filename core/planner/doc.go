// Package planner computes ranked same-day cinema schedules. Starting from
// a validated catalog, a constraint filter selects the eligible showings,
// a compatibility model turns them into a precedence DAG, a depth-first
// search enumerates the maximal attendable chains with branch-and-bound
// pruning, and a ranker orders the surviving candidates.
//
// The Planner type orchestrates the stages behind small strategy
// interfaces (ShowingFilter, Searcher, Ranker) so each one can be swapped
// or tested in isolation.
package planner
