package metrics

import (
	"context"
	"sort"
	"time"

	"github.com/kuhyx/kinoplan/core/events"
	coremetrics "github.com/kuhyx/kinoplan/core/metrics"
	"github.com/kuhyx/kinoplan/internal/eventbus"
)

// StartEventCollector subscribes to the event bus and aggregates chain
// events into per-root search statistics, flushed to the sink when the
// run's result event arrives. It stops when the context is canceled or
// the bus closes; the returned channel closes once the collector has
// drained its subscription, so one-shot callers can wait for the flush.
func StartEventCollector(ctx context.Context, bus eventbus.EventBus, sink coremetrics.MetricsSink) <-chan struct{} {
	done := make(chan struct{})
	if bus == nil || sink == nil {
		close(done)
		return done
	}
	// Chain events arrive in bursts, one per explored root outcome.
	sub := bus.SubscribeBuffered(64)
	go func() {
		defer close(done)
		defer bus.Unsubscribe(sub)
		perRoot := make(map[string]*coremetrics.ChainStats)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				switch e := ev.(type) {
				case events.ChainEvent:
					st := perRoot[e.RootID]
					if st == nil {
						st = &coremetrics.ChainStats{RootID: e.RootID}
						perRoot[e.RootID] = st
					}
					st.Explored++
					switch e.Action {
					case "retained":
						st.Retained++
					case "pruned", "mustwatch_cut":
						st.Pruned++
					}
				case events.ResultEvent:
					if r, ok := sink.(coremetrics.ChainRecorder); ok && len(perRoot) > 0 {
						_ = r.RecordChainStats(drain(perRoot))
					}
					perRoot = make(map[string]*coremetrics.ChainStats)
				}
			}
		}
	}()
	return done
}

// drain flattens the per-root map into a stable, root-ordered slice.
func drain(perRoot map[string]*coremetrics.ChainStats) []coremetrics.ChainStats {
	now := time.Now()
	out := make([]coremetrics.ChainStats, 0, len(perRoot))
	for _, st := range perRoot {
		st.Time = now
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RootID < out[j].RootID })
	return out
}
