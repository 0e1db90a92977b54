package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kuhyx/kinoplan/core/metrics"
	"github.com/kuhyx/kinoplan/infra/logger"
)

// InfluxSink writes planning events to an InfluxDB instance using the
// official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.MetricsSink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordPlanRun writes one planning run as a line protocol point.
func (s *InfluxSink) RecordPlanRun(run coremetrics.PlanRun) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("plan_run").
		AddTag("day", run.Day.Format("2006-01-02")).
		AddTag("component", "planner")
	if run.MustWatch != "" {
		p = p.AddTag("mustwatch", run.MustWatch)
	}
	p = p.AddField("catalog_size", run.CatalogSize).
		AddField("eligible", run.EligibleCount).
		AddField("chains_explored", run.ChainsExplored).
		AddField("chains_retained", run.ChainsRetained).
		AddField("branches_pruned", run.BranchesPruned).
		AddField("schedules", run.SchedulesReturned).
		AddField("best_count", run.BestCount).
		AddField("best_idle_minutes", round3(run.BestIdle.Minutes())).
		AddField("buffer_minutes", round3(run.Buffer.Minutes())).
		AddField("workers", run.Workers).
		AddField("elapsed_ms", round3(float64(run.Elapsed.Microseconds())/1000)).
		SetTime(run.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordSchedules writes the ranked candidates as line protocol points.
func (s *InfluxSink) RecordSchedules(recs []coremetrics.ScheduleRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, r := range recs {
		p := write.NewPointWithMeasurement("schedule_candidate").
			AddTag("rank", strconv.Itoa(r.Rank)).
			AddTag("component", "planner").
			AddField("showings", r.Showings).
			AddField("idle_minutes", round3(r.Idle.Minutes())).
			AddField("start", r.Start.Format(time.RFC3339)).
			AddField("end", r.End.Format(time.RFC3339)).
			AddField("titles", strings.Join(r.Titles, "|")).
			SetTime(r.Time)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// RecordChainStats persists the per-root search counters.
func (s *InfluxSink) RecordChainStats(stats []coremetrics.ChainStats) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, st := range stats {
		p := write.NewPointWithMeasurement("chain_search").
			AddTag("root_id", st.RootID).
			AddTag("component", "planner").
			AddField("explored", st.Explored).
			AddField("retained", st.Retained).
			AddField("pruned", st.Pruned).
			SetTime(st.Time)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close shuts down the underlying InfluxDB client.
func (s *InfluxSink) Close() error {
	s.client.Close()
	return nil
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
