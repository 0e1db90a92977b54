package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kuhyx/kinoplan/infra/logger"
	"github.com/kuhyx/kinoplan/pkg/export"
	"github.com/kuhyx/kinoplan/pkg/render"
)

var showsCmd = &cobra.Command{
	Use:   "shows",
	Short: "List the eligible showings without planning",
	RunE:  runShows,
}

func init() {
	rootCmd.AddCommand(showsCmd)
}

func runShows(cmd *cobra.Command, args []string) error {
	svc, err := newService(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()

	cat, err := svc.LoadCatalog()
	if err != nil {
		return err
	}
	eligible, err := svc.Planner.Eligible(cat, svc.Constraints())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		return export.WriteShowingsJSON(out, eligible)
	}
	return render.New(noColor).Showings(out, cat.Day(), eligible)
}
