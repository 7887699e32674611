package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check [FILE]",
		Short: "Check a ledger and its imports",
		Long:  "Loads the ledger, instantiates every template and prints the diagnostics. Exits with status 1 when an error is found.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.context(cmd)
			defer cancel()

			svc, name, err := a.ledgerService(a.ledgerPath(args), nil)
			if err != nil {
				return err
			}
			res, err := svc.Check(ctx, name)
			if err != nil {
				return err
			}
			fatal, err := a.printDiagnostics(cmd.ErrOrStderr(), res)
			if err != nil {
				return err
			}
			if fatal {
				return errFatalDiagnostics
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d entries from %d files\n", name, len(res.Entries), res.Files)
			return nil
		},
	}
}
