package planner

import (
	"context"
	"errors"
	"time"

	"github.com/kuhyx/kinoplan/core/catalog"
	"github.com/kuhyx/kinoplan/core/events"
	"github.com/kuhyx/kinoplan/core/logger"
	"github.com/kuhyx/kinoplan/core/metrics"
	"github.com/kuhyx/kinoplan/core/model"
	"github.com/kuhyx/kinoplan/internal/eventbus"
)

// Planner runs the full pipeline for one day: filter the catalog,
// search the precedence DAG for maximal chains, rank the survivors.
// The three stages are pluggable so alternative search or ranking
// strategies can be swapped in without touching the orchestration.
type Planner struct {
	filter   ShowingFilter
	searcher Searcher
	ranker   Ranker
	log      logger.Logger
	sink     metrics.MetricsSink
	bus      eventbus.EventBus
}

// NewPlanner assembles a planner from its strategies. filter, searcher
// and ranker are required; log, sink and bus may be nil.
func NewPlanner(filter ShowingFilter, searcher Searcher, ranker Ranker, log logger.Logger, sink metrics.MetricsSink, bus eventbus.EventBus) (*Planner, error) {
	if filter == nil || searcher == nil || ranker == nil {
		return nil, errors.New("planner: nil parameter provided to NewPlanner")
	}
	if log == nil {
		log = nopLog{}
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Planner{
		filter:   filter,
		searcher: searcher,
		ranker:   ranker,
		log:      log,
		sink:     sink,
		bus:      bus,
	}, nil
}

// NewDefaultPlanner wires the constraint filter, the depth-first
// searcher and the density ranker.
func NewDefaultPlanner(workers int, log logger.Logger, sink metrics.MetricsSink, bus eventbus.EventBus) (*Planner, error) {
	return NewPlanner(ConstraintFilter{}, DFSSearcher{Workers: workers, Bus: bus}, DensityRanker{}, log, sink, bus)
}

// Plan computes the ranked schedules for the given catalog under the
// given constraints. An empty catalog or one filtered down to nothing
// yields an empty result, not an error.
func (p *Planner) Plan(cat *catalog.Catalog, cs ConstraintSet) (PlanResult, error) {
	if cat == nil {
		return PlanResult{}, errors.New("planner: nil catalog")
	}
	if err := cs.Validate(); err != nil {
		planRuns.WithLabelValues("invalid").Inc()
		return PlanResult{}, err
	}
	rc := cs.Resolved()

	start := time.Now()
	eligible := p.filter.Filter(cat.Showings(), rc)
	eligibleGauge.Set(float64(len(eligible)))
	p.publish(events.RunEvent{
		Day:         cat.Day(),
		CatalogSize: cat.Len(),
		Eligible:    len(eligible),
		Buffer:      rc.Buffer,
		MustWatch:   rc.MustWatch,
	})
	p.log.Debugw("planning day", map[string]any{
		"catalog":  cat.Len(),
		"eligible": len(eligible),
		"buffer":   rc.Buffer.String(),
		"watch":    rc.MustWatch,
	})

	if len(eligible) == 0 {
		p.log.Warnf("no eligible showings left from a catalog of %d", cat.Len())
		planDuration.Observe(time.Since(start).Seconds())
		planRuns.WithLabelValues("empty").Inc()
		res := PlanResult{Eligible: eligible}
		p.record(cat, rc, res, time.Since(start))
		return res, nil
	}

	candidates, stats := p.searcher.Search(eligible, rc)
	ranked := p.ranker.Rank(candidates, rc)

	elapsed := time.Since(start)
	planDuration.Observe(elapsed.Seconds())
	planRuns.WithLabelValues("ok").Inc()

	res := PlanResult{Schedules: ranked, Eligible: eligible, Stats: stats}
	p.record(cat, rc, res, elapsed)
	p.publish(resultEvent(res, elapsed))
	p.log.Infof("retained %d chains, ranked %d schedule(s) in %s", stats.Retained, len(ranked), elapsed)
	return res, nil
}

// Eligible applies validation, defaults and filtering without searching.
// The shows listing uses it to answer "what could I even see today".
func (p *Planner) Eligible(cat *catalog.Catalog, cs ConstraintSet) ([]*model.Showing, error) {
	if cat == nil {
		return nil, errors.New("planner: nil catalog")
	}
	if err := cs.Validate(); err != nil {
		return nil, err
	}
	return p.filter.Filter(cat.Showings(), cs.Resolved()), nil
}

// Run serves plan requests until ctx is cancelled or reqs is closed.
// Each request gets its reply on its own channel; replies are dropped
// when the requester has gone away.
func (p *Planner) Run(ctx context.Context, reqs <-chan PlanRequest) {
	for {
		select {
		case <-ctx.Done():
			return
		case req, ok := <-reqs:
			if !ok {
				return
			}
			res, err := p.Plan(req.Catalog, req.Constraints)
			if err != nil {
				p.log.Errorf("plan request failed: %v", err)
			}
			if req.Reply == nil {
				continue
			}
			select {
			case req.Reply <- res:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (p *Planner) record(cat *catalog.Catalog, cs ConstraintSet, res PlanResult, elapsed time.Duration) {
	run := metrics.PlanRun{
		Day:               cat.Day(),
		CatalogSize:       cat.Len(),
		EligibleCount:     len(res.Eligible),
		ChainsExplored:    res.Stats.Explored,
		ChainsRetained:    res.Stats.Retained,
		BranchesPruned:    res.Stats.Pruned,
		SchedulesReturned: len(res.Schedules),
		Buffer:            cs.Buffer,
		MustWatch:         cs.MustWatch,
		Workers:           cs.Workers,
		Elapsed:           elapsed,
		Time:              time.Now(),
	}
	if len(res.Schedules) > 0 {
		run.BestCount = res.Schedules[0].Len()
		run.BestIdle = res.Schedules[0].TotalIdle()
	}
	if err := p.sink.RecordPlanRun(run); err != nil {
		p.log.Errorf("failed to record plan run: %v", err)
	}

	rec, ok := p.sink.(metrics.ScheduleRecorder)
	if !ok || len(res.Schedules) == 0 {
		return
	}
	now := time.Now()
	recs := make([]metrics.ScheduleRecord, 0, len(res.Schedules))
	for i, sched := range res.Schedules {
		recs = append(recs, metrics.ScheduleRecord{
			Rank:     i + 1,
			Showings: sched.Len(),
			Idle:     sched.TotalIdle(),
			Start:    sched.Start(),
			End:      sched.End(),
			Titles:   sched.Titles(),
			Time:     now,
		})
	}
	if err := rec.RecordSchedules(recs); err != nil {
		p.log.Errorf("failed to record schedules: %v", err)
	}
}

func (p *Planner) publish(ev eventbus.Event) {
	if p.bus != nil {
		p.bus.Publish(ev)
	}
}

func resultEvent(res PlanResult, elapsed time.Duration) events.ResultEvent {
	ev := events.ResultEvent{Schedules: len(res.Schedules), Elapsed: elapsed}
	if len(res.Schedules) > 0 {
		ev.BestCount = res.Schedules[0].Len()
		ev.BestIdle = res.Schedules[0].TotalIdle()
	}
	return ev
}

// nopLog is the default when no logger is supplied. Core packages do
// not depend on the infra implementations.
type nopLog struct{}

func (nopLog) Debugf(string, ...any)         {}
func (nopLog) Debugw(string, map[string]any) {}
func (nopLog) Infof(string, ...any)          {}
func (nopLog) Warnf(string, ...any)          {}
func (nopLog) Errorf(string, ...any)         {}
