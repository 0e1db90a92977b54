package metrics_test

import (
	"strings"
	"testing"

	"github.com/kuhyx/kinoplan/core/factory"
	metrics "github.com/kuhyx/kinoplan/core/metrics"
	_ "github.com/kuhyx/kinoplan/infra/metrics"
)

func TestNewMetricsSinkDefaultsToNop(t *testing.T) {
	s, err := metrics.NewMetricsSink(nil)
	if err != nil {
		t.Fatalf("create default: %v", err)
	}
	if _, ok := s.(metrics.NopSink); !ok {
		t.Fatalf("expected NopSink, got %T", s)
	}
}

func TestNewMetricsSinkSingleUnwrapped(t *testing.T) {
	s, err := metrics.NewMetricsSink([]factory.ModuleConfig{{Type: "nop"}})
	if err != nil {
		t.Fatalf("create nop: %v", err)
	}
	// One sink must not be wrapped in a MultiSink.
	if _, ok := s.(metrics.NopSink); !ok {
		t.Fatalf("expected bare NopSink, got %T", s)
	}
}

func TestNewMetricsSinkFansOut(t *testing.T) {
	cfgs := []factory.ModuleConfig{{Type: "nop"}, {Type: "nop"}}
	s, err := metrics.NewMetricsSink(cfgs)
	if err != nil {
		t.Fatalf("create multi: %v", err)
	}
	m, ok := s.(*metrics.MultiSink)
	if !ok {
		t.Fatalf("expected MultiSink, got %T", s)
	}
	if len(m.Sinks) != 2 {
		t.Fatalf("expected 2 sinks, got %d", len(m.Sinks))
	}
}

func TestNewMetricsSinkUnknownType(t *testing.T) {
	_, err := metrics.NewMetricsSink([]factory.ModuleConfig{{Type: "statsd"}})
	if err == nil {
		t.Fatal("expected error for unregistered sink type")
	}
	if !strings.Contains(err.Error(), "statsd") {
		t.Fatalf("error should name the offending type: %v", err)
	}
}
