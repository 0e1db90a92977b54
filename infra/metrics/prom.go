package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kuhyx/kinoplan/core/metrics"
)

// PromSink records plan runs in Prometheus metrics.
type PromSink struct {
	runs     *prometheus.CounterVec
	elapsed  *prometheus.HistogramVec
	best     prometheus.Gauge
	bestIdle prometheus.Gauge
}

// NewPromSink registers planning metrics on the provided Prometheus
// registerer. If reg is nil, the default registerer is used. If the
// collectors are already registered, the existing ones are reused.
func NewPromSink(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "schedule_plan_runs_total",
		Help: "Total number of recorded planning runs",
	}, []string{"day"})
	elapsed := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "schedule_plan_duration_seconds",
		Help:    "Wall time of recorded planning runs",
		Buckets: prometheus.DefBuckets,
	}, []string{"day"})
	best := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "schedule_best_showings",
		Help: "Showings in the best schedule of the last recorded run",
	})
	bestIdle := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "schedule_best_idle_minutes",
		Help: "Idle minutes in the best schedule of the last recorded run",
	})

	if err := reg.Register(runs); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			runs = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(elapsed); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			elapsed = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(best); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			best = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(bestIdle); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			bestIdle = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}

	return &PromSink{runs: runs, elapsed: elapsed, best: best, bestIdle: bestIdle}, nil
}

// RecordPlanRun increments the run counter and updates the best-schedule
// gauges.
func (s *PromSink) RecordPlanRun(run coremetrics.PlanRun) error {
	day := run.Day.Format("2006-01-02")
	s.runs.WithLabelValues(day).Inc()
	s.elapsed.WithLabelValues(day).Observe(run.Elapsed.Seconds())
	s.best.Set(float64(run.BestCount))
	s.bestIdle.Set(run.BestIdle.Minutes())
	return nil
}
