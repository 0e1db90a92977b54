package planner

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	planRuns       *prometheus.CounterVec
	planDuration   prometheus.Histogram
	eligibleGauge  prometheus.Gauge
	chainsExplored prometheus.Counter
	chainsRetained prometheus.Counter
	branchesPruned prometheus.Counter
	mustWatchCuts  prometheus.Counter
)

// newCollectors creates new metric collectors.
func newCollectors() (*prometheus.CounterVec, prometheus.Histogram, prometheus.Gauge, prometheus.Counter, prometheus.Counter, prometheus.Counter, prometheus.Counter) {
	runs := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plan_runs_total",
			Help: "Number of planning runs by outcome",
		},
		[]string{"outcome"},
	)
	dur := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "plan_duration_seconds",
			Help:    "Wall time of a full planning run",
			Buckets: prometheus.DefBuckets,
		},
	)
	elig := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "eligible_showings",
			Help: "Number of showings surviving the constraint filter",
		},
	)
	exp := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "search_chains_explored_total",
			Help: "Number of partial chains expanded by the search",
		},
	)
	ret := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "search_chains_retained_total",
			Help: "Number of maximal chains retained as candidates",
		},
	)
	pru := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "search_branches_pruned_total",
			Help: "Number of branches abandoned by the length bound",
		},
	)
	mwc := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "search_mustwatch_cuts_total",
			Help: "Number of branches cut because the must-watch title was unreachable",
		},
	)
	return runs, dur, elig, exp, ret, pru, mwc
}

func init() {
	planRuns, planDuration, eligibleGauge, chainsExplored, chainsRetained, branchesPruned, mustWatchCuts = newCollectors()
	MustRegisterMetrics(nil)
}

// MustRegisterMetrics registers planner metrics on the provided registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func MustRegisterMetrics(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(planRuns, planDuration, eligibleGauge, chainsExplored, chainsRetained, branchesPruned, mustWatchCuts)
}

// ResetMetrics reinitializes metrics collectors for testing purposes and
// registers them on the provided registry if not nil.
func ResetMetrics(reg prometheus.Registerer) {
	planRuns, planDuration, eligibleGauge, chainsExplored, chainsRetained, branchesPruned, mustWatchCuts = newCollectors()
	if reg != nil {
		MustRegisterMetrics(reg)
	}
}
