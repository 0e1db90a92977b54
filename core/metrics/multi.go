package metrics

import "io"

// MultiSink fans planning records out to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordPlanRun forwards the run to all sinks, returning the first error
// encountered.
func (m *MultiSink) RecordPlanRun(run PlanRun) error {
	for _, s := range m.Sinks {
		if err := s.RecordPlanRun(run); err != nil {
			return err
		}
	}
	return nil
}

// RecordSchedules forwards schedule records when supported by the sink.
func (m *MultiSink) RecordSchedules(recs []ScheduleRecord) error {
	for _, s := range m.Sinks {
		if sr, ok := s.(ScheduleRecorder); ok {
			if err := sr.RecordSchedules(recs); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordChainStats forwards chain statistics when supported by the sink.
func (m *MultiSink) RecordChainStats(stats []ChainStats) error {
	for _, s := range m.Sinks {
		if cr, ok := s.(ChainRecorder); ok {
			if err := cr.RecordChainStats(stats); err != nil {
				return err
			}
		}
	}
	return nil
}

// Close closes every sink that holds resources, returning the first
// error encountered.
func (m *MultiSink) Close() error {
	var first error
	for _, s := range m.Sinks {
		if c, ok := s.(io.Closer); ok {
			if err := c.Close(); err != nil && first == nil {
				first = err
			}
		}
	}
	return first
}
