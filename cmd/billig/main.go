// Command billig checks ledger files and prints per-category summaries.
//
// Usage:
//
//	billig check ledger.yaml
//	billig report ledger.yaml --from 2021-Jan --to 2021-Jun --step week,month
//	billig report ledger.yaml --from 2021 --publish
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"billig/internal/cli"
)

func main() {
	// Load .env file for local development
	cli.LoadEnvFile()
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the exit status.
func run(args []string, stdout, stderr io.Writer) int {
	return execute(newApp(), args, stdout, stderr)
}

func execute(a *app, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		// Diagnostics have already been printed.
		if !errors.Is(err, errFatalDiagnostics) {
			fmt.Fprintln(stderr, "Error:", err)
		}
		return 1
	}
	return 0
}
