package planner

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/graph/simple"

	"github.com/kuhyx/kinoplan/core/model"
)

// Compatible reports whether a viewer can attend b after a: a must end
// and the buffer must pass before b starts. Zero-duration showings are
// never compatible regardless of buffer, and neither are two showings
// starting at the same instant.
func Compatible(a, b *model.Showing, buffer time.Duration) bool {
	if !a.End.After(a.Start) || !b.End.After(b.Start) {
		return false
	}
	return !a.End.Add(buffer).After(b.Start)
}

// compatGraph materializes the precedence relation over the time-sorted
// eligible showings as a DAG. Node IDs are positions in the slice.
// Because the slice is sorted by start time the successors of a node form
// a suffix: everything from firstAfter[i] on is attendable after showing
// i, and nothing before it is.
type compatGraph struct {
	showings []*model.Showing
	buffer   time.Duration
	dag      *simple.DirectedGraph
	edges    int

	// firstAfter[i] is the first index attendable after showing i,
	// len(showings) when nothing fits. The remaining tables are sized
	// n+1 so firstAfter can index them directly.
	firstAfter []int
	reachable  []int  // longest chain length starting at i
	suffixBest []int  // max reachable[j] for j >= i
	watchAt    []bool // showing i matches the must-watch pattern
	watchFrom  []bool // some showing j >= i matches the must-watch pattern
}

func newCompatGraph(eligible []*model.Showing, buffer time.Duration, mustWatch string) *compatGraph {
	n := len(eligible)
	g := &compatGraph{
		showings:   eligible,
		buffer:     buffer,
		dag:        simple.NewDirectedGraph(),
		firstAfter: make([]int, n),
		reachable:  make([]int, n+1),
		suffixBest: make([]int, n+1),
		watchAt:    make([]bool, n+1),
		watchFrom:  make([]bool, n+1),
	}
	for i := 0; i < n; i++ {
		g.dag.AddNode(simple.Node(i))
	}
	for i := 0; i < n; i++ {
		after := eligible[i].End.Add(buffer)
		g.firstAfter[i] = sort.Search(n, func(j int) bool {
			return !eligible[j].Start.Before(after)
		})
		for j := g.firstAfter[i]; j < n; j++ {
			g.dag.SetEdge(simple.Edge{F: simple.Node(i), T: simple.Node(j)})
			g.edges++
		}
	}
	for i := n - 1; i >= 0; i-- {
		g.reachable[i] = 1 + g.suffixBest[g.firstAfter[i]]
		g.suffixBest[i] = max(g.reachable[i], g.suffixBest[i+1])
		g.watchAt[i] = mustWatch != "" && model.TitleMatches(eligible[i].Title, mustWatch)
		g.watchFrom[i] = g.watchFrom[i+1] || g.watchAt[i]
	}
	return g
}

func (g *compatGraph) size() int { return len(g.showings) }

func (g *compatGraph) at(i int) *model.Showing { return g.showings[i] }

// roots returns the nodes no eligible showing can precede. Every maximal
// chain starts at one of them.
func (g *compatGraph) roots() []int {
	var roots []int
	for i := range g.showings {
		if g.dag.To(int64(i)).Len() == 0 {
			roots = append(roots, i)
		}
	}
	return roots
}

// remainingAfter bounds how many further showings any chain continuing
// from node i can still collect. Used as the branch-and-bound estimate.
func (g *compatGraph) remainingAfter(i int) int {
	return g.suffixBest[g.firstAfter[i]]
}

// canInsertBetween reports whether some eligible showing fits strictly
// between p and q, which would make a chain stepping p -> q non-maximal.
func (g *compatGraph) canInsertBetween(p, q int) bool {
	for r := g.firstAfter[p]; r < q; r++ {
		if g.dag.HasEdgeFromTo(int64(r), int64(q)) {
			return true
		}
	}
	return false
}

// isMaximal reports whether no eligible showing can be inserted before,
// between or after the chain's showings. The search only produces such
// chains; this guards the invariant on retained candidates.
func (g *compatGraph) isMaximal(chain []int) bool {
	if len(chain) == 0 {
		return false
	}
	if g.dag.To(int64(chain[0])).Len() != 0 {
		return false
	}
	for i := 0; i < len(chain)-1; i++ {
		if g.canInsertBetween(chain[i], chain[i+1]) {
			return false
		}
	}
	return g.firstAfter[chain[len(chain)-1]] == len(g.showings)
}

// schedule copies the chain out of the graph as a Schedule borrowing the
// eligible showing references.
func (g *compatGraph) schedule(chain []int) model.Schedule {
	showings := make([]*model.Showing, len(chain))
	for i, idx := range chain {
		showings[i] = g.showings[idx]
	}
	return model.Schedule{Showings: showings}
}
