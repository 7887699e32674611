package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"billig/internal/core"
	"billig/internal/log"
	"billig/internal/report"
	"billig/internal/services"
)

func newReportCmd(a *app) *cobra.Command {
	var (
		from, to, step string
		publish, store bool
	)
	cmd := &cobra.Command{
		Use:   "report [FILE]",
		Short: "Print per-category summaries of a ledger",
		Long: `Aggregates the entries of the ledger over the period from..to, one table per step.
Bounds are partial dates such as 2021, 2021-Mar or Mar-15; missing years are
taken from today. An empty --to repeats --from.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("from") {
				from = a.cfg.ReportFrom
			}
			if !flags.Changed("to") {
				to = a.cfg.ReportTo
			}
			if !flags.Changed("step") {
				step = a.cfg.ReportSteps
			}
			if !flags.Changed("store") {
				store = a.cfg.StoreReports
			}

			today, err := core.FromTime(time.Now())
			if err != nil {
				return err
			}
			period, err := report.ParsePeriod(from, to, today)
			if err != nil {
				return err
			}
			durations, err := report.ParseDurations(step)
			if err != nil {
				return err
			}

			var publisher services.Publisher
			if publish {
				if publisher, err = a.newPublisher(a.cfg, a.logger); err != nil {
					return fmt.Errorf("connect publisher: %w", err)
				}
			}

			ctx, cancel := a.context(cmd)
			defer cancel()

			svc, name, err := a.ledgerService(a.ledgerPath(args), publisher)
			if err != nil {
				if publisher != nil {
					if cerr := publisher.Close(); cerr != nil {
						a.logger.Warn("Failed to close publisher", log.FieldError, cerr)
					}
				}
				return err
			}
			defer func() {
				if err := svc.Close(); err != nil {
					a.logger.Warn("Failed to close publisher", log.FieldError, err)
				}
			}()

			res, rep, err := svc.Report(ctx, name, period, durations)
			if res != nil {
				fatal, perr := a.printDiagnostics(cmd.ErrOrStderr(), res)
				if perr != nil {
					return perr
				}
				if fatal {
					return errFatalDiagnostics
				}
			}
			if err != nil {
				if errors.Is(err, services.ErrInvalidLedger) {
					return errFatalDiagnostics
				}
				return err
			}

			if err := report.Render(cmd.OutOrStdout(), rep, a.cfg.DiagColor); err != nil {
				return err
			}
			if store {
				repo, err := a.openArchive()
				if err != nil {
					return err
				}
				defer repo.Close()
				id, err := svc.WithArchive(repo).Store(ctx, name, rep)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Report stored as %s\n", id)
			}
			if publish {
				return svc.Publish(ctx, rep)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "First period of the report (or set REPORT_FROM)")
	cmd.Flags().StringVar(&to, "to", "", "Last period of the report (or set REPORT_TO)")
	cmd.Flags().StringVar(&step, "step", "", "Comma separated table steps: day, week, month, year (or set REPORT_STEPS)")
	cmd.Flags().BoolVar(&publish, "publish", false, "Publish every summary over AMQP")
	cmd.Flags().BoolVar(&store, "store", false, "Archive the report in the database (or set BILLIG_STORE)")
	return cmd
}
