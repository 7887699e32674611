package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"billig/internal/amqp"
	"billig/internal/cli"
	"billig/internal/config"
	"billig/internal/diag"
	"billig/internal/log"
	"billig/internal/services"
	"billig/internal/storage"
)

// errFatalDiagnostics makes the process exit with status 1 once the
// diagnostics of a ledger have been shown.
var errFatalDiagnostics = errors.New("ledger has fatal diagnostics")

type app struct {
	cfg    *config.Config
	logger *log.Logger

	// global flags
	logLevel  string
	noColor   bool
	maxErrors int

	newPublisher func(cfg *config.Config, logger *log.Logger) (services.Publisher, error)
}

func newApp() *app {
	return &app{newPublisher: dialPublisher}
}

func dialPublisher(cfg *config.Config, logger *log.Logger) (services.Publisher, error) {
	if cfg.AMQPURL == "" {
		return nil, errors.New("AMQP_URL must be set to publish summaries")
	}
	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "billig",
		Short:         "Check household ledgers and summarize them",
		Long:          "billig reads YAML ledgers of entries, templates and instances, reports mistakes with their location and prints per-category summaries over weeks, months or years.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn or error (or set LOG_LEVEL)")
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable colors in diagnostics and tables")
	root.PersistentFlags().IntVar(&a.maxErrors, "max-errors", 0, "Number of diagnostics shown in full (or set DIAG_MAX_SHOWN)")

	root.AddCommand(newCheckCmd(a))
	root.AddCommand(newReportCmd(a))
	root.AddCommand(newHistoryCmd(a))
	return root
}

// setup loads the configuration, applies the flags over it and builds
// the logger.
func (a *app) setup(cmd *cobra.Command) error {
	flags := cmd.Flags()
	cfg, err := cli.LoadAndValidateConfig(func(cfg *config.Config) {
		if flags.Changed("log-level") {
			cfg.LogLevel = a.logLevel
		}
		if flags.Changed("no-color") {
			cfg.DiagColor = !a.noColor
		}
		if flags.Changed("max-errors") {
			cfg.DiagMaxShown = a.maxErrors
		}
	})
	if err != nil {
		return err
	}
	logger, err := cli.SetupLogger(cfg)
	if err != nil {
		return err
	}
	a.cfg, a.logger = cfg, logger
	a.logger.Debug("Configuration loaded", log.FieldOperation, log.OpStartup, log.FieldFile, cfg.LedgerPath)
	return nil
}

// context bounds a command by the configured timeout and by signals.
func (a *app) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := cli.SignalContext(log.NewContext(parent, a.logger), a.logger)
	ctx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	return ctx, func() {
		cancel()
		stop()
	}
}

func (a *app) openArchive() (*storage.SQLiteRepository, error) {
	repo, err := storage.NewSQLiteRepository(a.cfg.DBPath, a.logger)
	if err != nil {
		return nil, fmt.Errorf("open report archive: %w", err)
	}
	return repo, nil
}

func (a *app) ledgerPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return a.cfg.LedgerPath
}

func (a *app) ledgerService(path string, publisher services.Publisher) (*services.LedgerService, string, error) {
	fsys, name, err := cli.LedgerFS(path)
	if err != nil {
		return nil, "", err
	}
	return services.NewLedgerService(fsys, publisher, a.logger), name, nil
}

// printDiagnostics shows the diagnostics of res and reports whether any
// of them is fatal.
func (a *app) printDiagnostics(w io.Writer, res *services.Result) (bool, error) {
	p := diag.NewPrinter(res.Sources, a.cfg.DiagColor)
	p.MaxShown = a.cfg.DiagMaxShown
	if err := p.Fprint(w, res.Record); err != nil {
		return false, fmt.Errorf("print diagnostics: %w", err)
	}
	return res.Record.IsFatal(), nil
}
