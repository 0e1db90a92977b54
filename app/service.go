package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/kuhyx/kinoplan/config"
	"github.com/kuhyx/kinoplan/core/catalog"
	coremetrics "github.com/kuhyx/kinoplan/core/metrics"
	"github.com/kuhyx/kinoplan/core/planner"
	"github.com/kuhyx/kinoplan/infra/logger"
	"github.com/kuhyx/kinoplan/infra/metrics"
	"github.com/kuhyx/kinoplan/internal/eventbus"
	"github.com/kuhyx/kinoplan/program"
)

// Service wires the planner to its configured collaborators: logger,
// metrics sinks, event bus and program source.
type Service struct {
	Planner *planner.Planner
	cfg     *config.Config
	bus     eventbus.EventBus
	sink    coremetrics.MetricsSink
	log     logger.Logger

	collectorDone <-chan struct{}
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	if cfg == nil {
		return nil, errors.New("app: nil config")
	}
	logg := logger.NewWithOptions("service", cfg.Logging.Level, cfg.Logging.Pretty)
	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	bus := eventbus.New()
	pl, err := planner.NewDefaultPlanner(cfg.Planner.Workers, logg, sink, bus)
	if err != nil {
		return nil, fmt.Errorf("planner: %w", err)
	}
	return &Service{Planner: pl, cfg: cfg, bus: bus, sink: sink, log: logg}, nil
}

// Start launches the background helpers: the chain-event collector and,
// when a listen address is configured, the Prometheus scrape endpoint.
// It returns immediately; both helpers stop with the context.
func (s *Service) Start(ctx context.Context) {
	s.collectorDone = metrics.StartEventCollector(ctx, s.bus, s.sink)
	if s.cfg.Metrics.Listen == "" {
		return
	}
	go func() {
		if err := metrics.StartPromServer(ctx, s.cfg.Metrics.Listen); err != nil {
			s.log.Errorf("prom server: %v", err)
		}
	}()
}

// LoadCatalog reads the day's program from the configured source: the
// explicit file when one is set, otherwise the most recently modified
// match in the program directory.
func (s *Service) LoadCatalog() (*catalog.Catalog, error) {
	loc, err := s.cfg.Program.Location()
	if err != nil {
		return nil, err
	}
	path := s.cfg.Program.File
	if path == "" {
		path, err = program.LatestFile(s.cfg.Program.Dir, s.cfg.Program.Pattern)
		if err != nil {
			return nil, err
		}
	}
	showings, err := program.Load(path, today(loc), loc)
	if err != nil {
		return nil, err
	}
	s.log.Infof("loaded %d showings from %s", len(showings), path)
	return catalog.New(showings)
}

// Constraints returns the constraint set derived from the configuration.
func (s *Service) Constraints() planner.ConstraintSet {
	return s.cfg.Planner.Constraints()
}

// Close releases resources held by the service. The event bus closes
// first so the collector can drain and flush before the sink goes away.
func (s *Service) Close() error {
	s.bus.Close()
	if s.collectorDone != nil {
		select {
		case <-s.collectorDone:
		case <-time.After(2 * time.Second):
			s.log.Warnf("event collector did not drain in time")
		}
	}
	if c, ok := s.sink.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func today(loc *time.Location) time.Time {
	now := time.Now().In(loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
}
