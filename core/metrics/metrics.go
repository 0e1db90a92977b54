package metrics

import (
	"time"
)

// PlanRun summarizes one completed planning run to be recorded.
type PlanRun struct {
	Day               time.Time
	CatalogSize       int
	EligibleCount     int
	ChainsExplored    int
	ChainsRetained    int
	BranchesPruned    int
	SchedulesReturned int
	BestCount         int
	BestIdle          time.Duration
	Buffer            time.Duration
	MustWatch         string
	Workers           int
	Elapsed           time.Duration
	Time              time.Time
}

// MetricsSink records planning runs for observability purposes.
type MetricsSink interface {
	RecordPlanRun(run PlanRun) error
}

// ScheduleRecord represents one ranked schedule produced by a run.
type ScheduleRecord struct {
	Rank     int
	Showings int
	Idle     time.Duration
	Start    time.Time
	End      time.Time
	Titles   []string
	Time     time.Time
}

// ScheduleRecorder is implemented by sinks able to record the ranked
// schedules themselves, not just run totals.
type ScheduleRecorder interface {
	RecordSchedules(recs []ScheduleRecord) error
}

// ChainStats captures search effort under one starting showing.
type ChainStats struct {
	RootID   string
	Explored int
	Retained int
	Pruned   int
	Time     time.Time
}

// ChainRecorder records per-root search statistics.
type ChainRecorder interface {
	RecordChainStats(stats []ChainStats) error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordPlanRun(PlanRun) error { return nil }

// Ensure NopSink implements ScheduleRecorder.
func (NopSink) RecordSchedules([]ScheduleRecord) error { return nil }

// Ensure NopSink implements ChainRecorder.
func (NopSink) RecordChainStats([]ChainStats) error { return nil }
