package planner

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kuhyx/kinoplan/core/events"
	"github.com/kuhyx/kinoplan/core/model"
	"github.com/kuhyx/kinoplan/internal/eventbus"
)

// DFSSearcher enumerates maximal compatible chains by depth-first search
// over the precedence DAG. Chains start at every root, extend only to
// successors with nothing insertable in the gap, and end at showings with
// no successor at all; together those three rules yield exactly the
// chains no eligible showing can be added to.
//
// Workers sets the default parallelism when the constraints leave it
// unset. Bus, when non-nil, receives a ChainEvent per retained chain and
// per cut branch.
type DFSSearcher struct {
	Workers int
	Bus     eventbus.EventBus
}

// Search implements Searcher.
func (s DFSSearcher) Search(eligible []*model.Showing, cs ConstraintSet) ([]model.Schedule, SearchStats) {
	start := time.Now()
	g := newCompatGraph(eligible, cs.Buffer, cs.MustWatch)
	st := &searchState{
		g:         g,
		mustWatch: cs.MustWatch != "",
		board:     newRetentionBoard(cs.MaxSchedules),
		bus:       s.Bus,
	}
	roots := g.roots()

	workers := cs.Workers
	if workers == 0 {
		workers = s.Workers
	}
	if workers <= 1 || len(roots) < 2 {
		for _, root := range roots {
			st.explore([]int{root}, root, g.watchAt[root])
		}
	} else {
		if workers > len(roots) {
			workers = len(roots)
		}
		work := make(chan int)
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for root := range work {
					st.explore([]int{root}, root, st.g.watchAt[root])
				}
			}()
		}
		for _, root := range roots {
			work <- root
		}
		close(work)
		wg.Wait()
	}

	// Canonical order regardless of worker scheduling.
	sort.Slice(st.retained, func(i, j int) bool {
		return st.retained[i].Key() < st.retained[j].Key()
	})

	stats := SearchStats{
		Eligible:      len(eligible),
		Roots:         len(roots),
		Edges:         g.edges,
		Explored:      int(st.explored.Load()),
		Retained:      len(st.retained),
		Pruned:        int(st.pruned.Load()),
		MustWatchCuts: int(st.watchCuts.Load()),
		Elapsed:       time.Since(start),
	}
	return st.retained, stats
}

// searchState is shared across the workers of one search. The only
// contended values are the retained slice, guarded by mu, and the
// retention board, whose cached threshold is monotonically tightened so
// a stale read can only over-retain.
type searchState struct {
	g         *compatGraph
	mustWatch bool
	board     *retentionBoard
	bus       eventbus.EventBus

	explored  atomic.Int64
	pruned    atomic.Int64
	watchCuts atomic.Int64

	mu       sync.Mutex
	retained []model.Schedule
}

// explore extends the chain ending at node, recursing over every tight
// successor. chain always contains node as its last element.
func (st *searchState) explore(chain []int, node int, hasWatch bool) {
	st.explored.Add(1)
	chainsExplored.Inc()

	fa := st.g.firstAfter[node]
	if !st.board.viable(len(chain), st.g.remainingAfter(node)) {
		st.pruned.Add(1)
		branchesPruned.Inc()
		st.publish(events.ChainEvent{RootID: st.g.at(chain[0]).ID, Action: "pruned", Length: len(chain)})
		return
	}
	if st.mustWatch && !hasWatch && !st.g.watchFrom[fa] {
		st.watchCuts.Add(1)
		mustWatchCuts.Inc()
		st.publish(events.ChainEvent{RootID: st.g.at(chain[0]).ID, Action: "mustwatch_cut", Length: len(chain)})
		return
	}
	if fa == st.g.size() {
		st.retain(chain)
		return
	}

	// Walk the successor suffix keeping the minimum end seen so far:
	// a successor is a tight step exactly when no earlier successor
	// could still fit before it.
	var minEnd time.Time
	for q := fa; q < st.g.size(); q++ {
		sq := st.g.at(q)
		if minEnd.IsZero() || minEnd.Add(st.g.buffer).After(sq.Start) {
			st.explore(append(chain, q), q, hasWatch || st.g.watchAt[q])
		}
		if minEnd.IsZero() || sq.End.Before(minEnd) {
			minEnd = sq.End
		}
	}
}

// retain records a complete maximal chain as a candidate schedule.
func (st *searchState) retain(chain []int) {
	if !st.g.isMaximal(chain) {
		return
	}
	owned := make([]int, len(chain))
	copy(owned, chain)
	sched := st.g.schedule(owned)

	st.board.add(len(owned))
	st.mu.Lock()
	st.retained = append(st.retained, sched)
	st.mu.Unlock()

	chainsRetained.Inc()
	st.publish(events.ChainEvent{
		RootID: st.g.at(owned[0]).ID,
		Action: "retained",
		Length: len(owned),
		Idle:   sched.TotalIdle(),
	})
}

func (st *searchState) publish(ev events.ChainEvent) {
	if st.bus != nil {
		st.bus.Publish(ev)
	}
}

// retentionBoard tracks the lengths of the best MaxSchedules chains
// retained so far. Once full, its cached threshold is the smallest of
// those lengths; a branch whose best possible length falls below it can
// never displace a ranked candidate. The threshold only ever tightens,
// so concurrent workers reading a stale value over-retain, never the
// reverse, and the ranked output stays deterministic.
type retentionBoard struct {
	capacity  int
	threshold atomic.Int64

	mu      sync.Mutex
	lengths []int // ascending
}

func newRetentionBoard(capacity int) *retentionBoard {
	return &retentionBoard{capacity: capacity}
}

// viable reports whether a chain of the given length, extendable by at
// most remaining further showings, could still enter the board.
func (b *retentionBoard) viable(length, remaining int) bool {
	return int64(length+remaining) >= b.threshold.Load()
}

// add records a retained chain length and tightens the threshold.
func (b *retentionBoard) add(length int) {
	if b.capacity <= 0 {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.lengths) < b.capacity {
		b.lengths = insertSorted(b.lengths, length)
		if len(b.lengths) == b.capacity {
			b.threshold.Store(int64(b.lengths[0]))
		}
		return
	}
	if length <= b.lengths[0] {
		return
	}
	b.lengths = insertSorted(b.lengths[1:], length)
	b.threshold.Store(int64(b.lengths[0]))
}

func insertSorted(lengths []int, v int) []int {
	i := sort.SearchInts(lengths, v)
	lengths = append(lengths, 0)
	copy(lengths[i+1:], lengths[i:])
	lengths[i] = v
	return lengths
}
