package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"billig/internal/report"
	"billig/internal/storage"
)

const timeLayout = "2006-01-02 15:04"

func newHistoryCmd(a *app) *cobra.Command {
	var (
		limit  int
		remove bool
	)
	cmd := &cobra.Command{
		Use:   "history [RUN]",
		Short: "List archived reports or show one of them",
		Long:  "Without argument, lists the reports stored with 'report --store', newest first. With a run id, prints its summaries; --delete removes it instead.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if remove && len(args) == 0 {
				return errors.New("--delete needs a run id")
			}
			ctx, cancel := a.context(cmd)
			defer cancel()

			repo, err := a.openArchive()
			if err != nil {
				return err
			}
			defer repo.Close()

			out := cmd.OutOrStdout()
			switch {
			case remove:
				if err := repo.DeleteRun(ctx, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(out, "Deleted %s\n", args[0])
				return nil
			case len(args) == 1:
				summaries, err := repo.Summaries(ctx, args[0])
				if err != nil {
					return err
				}
				return report.RenderGrids(out, summaryGrids(summaries), a.cfg.DiagColor)
			}

			runs, err := repo.Runs(ctx, limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No archived reports")
				return nil
			}
			g := &report.Grid{Header: []string{"Run", "Ledger", "Period", "Created", "Buckets"}}
			for _, run := range runs {
				g.Rows = append(g.Rows, []string{
					run.ID, run.Ledger, run.Period,
					run.CreatedAt.Local().Format(timeLayout),
					strconv.Itoa(run.Summaries),
				})
			}
			return g.Render(out, a.cfg.DiagColor)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Number of runs listed")
	cmd.Flags().BoolVar(&remove, "delete", false, "Delete the given run")
	return cmd
}

// summaryGrids makes one grid per duration, in archive order.
func summaryGrids(summaries []storage.StoredSummary) []*report.Grid {
	var grids []*report.Grid
	for _, s := range summaries {
		if len(grids) == 0 || grids[len(grids)-1].Title != s.Duration {
			grids = append(grids, report.NewSummaryGrid(s.Duration))
		}
		grids[len(grids)-1].AddSummary(s.Period, s.Total, s.Query)
	}
	return grids
}
