package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/kuhyx/kinoplan/app"
	"github.com/kuhyx/kinoplan/config"
	"github.com/kuhyx/kinoplan/infra/logger"
	"github.com/kuhyx/kinoplan/pkg/export"
	"github.com/kuhyx/kinoplan/pkg/render"
)

var (
	cfgPath       string
	scheduleFile  string
	programDir    string
	excludes      []string
	excludeGenres []string
	allGenres     bool
	bufferMin     int
	mustWatch     string
	maxSchedules  int
	workers       int
	asJSON        bool
	asCSV         bool
	noColor       bool
	metricsListen string
)

var rootCmd = &cobra.Command{
	Use:   "kinoplan",
	Short: "Plan a day of back-to-back cinema showings",
	RunE:  run,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgPath, "config", "c", "", "configuration file")
	pf.StringVarP(&scheduleFile, "schedule", "f", "", "program file to plan from")
	pf.StringVarP(&programDir, "dir", "d", "", "directory holding program files")
	pf.StringArrayVarP(&excludes, "exclude", "x", nil, "exclude showings whose title contains this (repeatable)")
	pf.StringArrayVarP(&excludeGenres, "exclude-genre", "g", nil, "exclude this genre (repeatable)")
	pf.BoolVarP(&allGenres, "all-genres", "A", false, "lift the default genre exclusions")
	pf.IntVarP(&bufferMin, "buffer", "b", 0, "minutes to keep free between showings")
	pf.StringVarP(&mustWatch, "must-watch", "m", "", "only keep schedules containing this title")
	pf.IntVarP(&maxSchedules, "max", "n", 0, "number of ranked schedules to report")
	pf.IntVar(&workers, "workers", 0, "parallel search workers (0 = serial)")
	pf.BoolVar(&asJSON, "json", false, "write JSON instead of styled output")
	pf.BoolVar(&noColor, "no-color", false, "disable styled output")
	pf.StringVar(&metricsListen, "metrics-listen", "", "expose Prometheus metrics on this address")
	rootCmd.Flags().BoolVar(&asCSV, "csv", false, "write CSV instead of styled output")
}

// Execute runs the CLI. A .env file in the working directory seeds the
// environment before the configuration loads.
func Execute() error {
	_ = godotenv.Load()
	return rootCmd.Execute()
}

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := newService(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()
	svc.Start(ctx)

	cat, err := svc.LoadCatalog()
	if err != nil {
		return err
	}
	res, err := svc.Planner.Plan(cat, svc.Constraints())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case asJSON:
		return export.WriteJSON(out, res.Schedules)
	case asCSV:
		return export.WriteCSV(out, res.Schedules)
	default:
		return render.New(noColor).Schedules(out, res)
	}
}

func newService(cmd *cobra.Command) (*app.Service, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	applyFlags(cmd, cfg)
	return app.New(cfg)
}

// applyFlags lays explicitly set flags over the loaded configuration.
// Exclusion flags add to the configured lists rather than replacing
// them.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("schedule") {
		cfg.Program.File = scheduleFile
	}
	if f.Changed("dir") {
		cfg.Program.Dir = programDir
	}
	if f.Changed("exclude") {
		cfg.Planner.ExcludedTitles = append(cfg.Planner.ExcludedTitles, excludes...)
	}
	if f.Changed("exclude-genre") {
		cfg.Planner.ExcludedGenres = append(cfg.Planner.ExcludedGenres, excludeGenres...)
	}
	if f.Changed("all-genres") {
		cfg.Planner.AllGenres = allGenres
	}
	if f.Changed("buffer") {
		cfg.Planner.BufferMinutes = bufferMin
	}
	if f.Changed("must-watch") {
		cfg.Planner.MustWatch = mustWatch
	}
	if f.Changed("max") {
		cfg.Planner.MaxSchedules = maxSchedules
	}
	if f.Changed("workers") {
		cfg.Planner.Workers = workers
	}
	if f.Changed("metrics-listen") {
		cfg.Metrics.Listen = metricsListen
	}
}
