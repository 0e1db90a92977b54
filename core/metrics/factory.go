package metrics

import (
	"fmt"

	"github.com/kuhyx/kinoplan/core/factory"
)

var sinkRegistry = factory.NewRegistry[MetricsSink]()

// RegisterMetricsSink adds a sink factory under the given type name.
// The built-in sinks register themselves from infra/metrics.
func RegisterMetricsSink(name string, f factory.Factory[MetricsSink]) error {
	return sinkRegistry.Register(name, f)
}

// NewMetricsSink builds the sink the config asks for: no sinks means a
// NopSink, a single sink is returned as is, several are fanned out
// behind a MultiSink.
func NewMetricsSink(cfgs []factory.ModuleConfig) (MetricsSink, error) {
	sinks := make([]MetricsSink, 0, len(cfgs))
	for _, cfg := range cfgs {
		s, err := sinkRegistry.Create(cfg)
		if err != nil {
			return nil, fmt.Errorf("metrics sink %q: %w", cfg.Type, err)
		}
		sinks = append(sinks, s)
	}
	switch len(sinks) {
	case 0:
		return NopSink{}, nil
	case 1:
		return sinks[0], nil
	default:
		return NewMultiSink(sinks...), nil
	}
}
