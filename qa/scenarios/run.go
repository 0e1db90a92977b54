package scenarios

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kuhyx/kinoplan/core/catalog"
	"github.com/kuhyx/kinoplan/core/model"
	"github.com/kuhyx/kinoplan/core/planner"
	"github.com/kuhyx/kinoplan/infra/logger"
	"github.com/kuhyx/kinoplan/infra/metrics"
	"github.com/kuhyx/kinoplan/internal/eventbus"
)

func RunScenario(t *testing.T, sc *Scenario) {
	reg := prometheus.NewRegistry()
	sink, err := metrics.NewPromSink(reg)
	if err != nil {
		t.Fatalf("prom sink: %v", err)
	}

	day, err := sc.day()
	if err != nil {
		t.Fatalf("scenario day: %v", err)
	}
	showings := make([]model.Showing, len(sc.Showings))
	for i, def := range sc.Showings {
		if showings[i], err = def.ToModel(day); err != nil {
			t.Fatalf("scenario showing: %v", err)
		}
	}
	catalog.SortShowings(showings)
	cat, err := catalog.New(showings)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}

	bus := eventbus.New()
	defer bus.Close()
	pl, err := planner.NewDefaultPlanner(sc.Constraints.Workers, logger.NopLogger{}, sink, bus)
	if err != nil {
		t.Fatalf("planner: %v", err)
	}

	res, err := pl.Plan(cat, sc.Constraints.ToModel())
	if err != nil {
		t.Fatalf("plan: %v", err)
	}

	if got := len(res.Schedules); got != sc.Expected.Schedules {
		t.Errorf("scenario %s expected %d schedules, got %d", sc.Name, sc.Expected.Schedules, got)
	}
	if len(sc.Expected.Best) == 0 {
		return
	}
	if len(res.Schedules) == 0 {
		t.Fatalf("scenario %s expected best chain %v, got none", sc.Name, sc.Expected.Best)
	}
	got := strings.Join(res.Schedules[0].Titles(), "|")
	want := strings.Join(sc.Expected.Best, "|")
	if got != want {
		t.Errorf("scenario %s best chain = %s, want %s", sc.Name, got, want)
	}
}
