// Package metrics defines the planning metrics domain: the records a
// run produces (PlanRun, ScheduleRecord, ChainStats), the sink
// interfaces that receive them, and the registry-backed factory that
// builds sinks from configuration. Concrete sinks live in
// infra/metrics; several sinks combine behind a MultiSink.
package metrics
