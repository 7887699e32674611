// Package services ties the ledger pipeline together: loading files,
// turning items into entries, building reports and publishing them.
package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"billig/internal/core"
	"billig/internal/diag"
	"billig/internal/loader"
	"billig/internal/log"
	"billig/internal/report"
	"billig/internal/template"
)

var (
	// ErrInvalidLedger is returned when a ledger has fatal diagnostics.
	ErrInvalidLedger = errors.New("ledger has errors")
	// ErrNoPublisher is returned by Publish when no publisher is configured.
	ErrNoPublisher = errors.New("no publisher configured")
	// ErrNoArchive is returned by Store when no archive is configured.
	ErrNoArchive = errors.New("no report archive configured")
)

// Publisher sends report summaries out of the process.
type Publisher interface {
	PublishSummaries(ctx context.Context, rep *report.Report) error
	Close() error
}

// Archive keeps generated reports for later inspection.
type Archive interface {
	SaveReport(ctx context.Context, ledger string, rep *report.Report) (string, error)
}

// Result is the outcome of reading a ledger.
type Result struct {
	Record  *diag.Record
	Sources *diag.Sources
	Entries []core.Entry
	Files   int
}

// LedgerService orchestrates ledger operations over a file system and an
// optional publisher.
type LedgerService struct {
	fsys      fs.FS
	publisher Publisher
	archive   Archive
	logger    *log.Logger
}

func NewLedgerService(fsys fs.FS, publisher Publisher, logger *log.Logger) *LedgerService {
	if logger == nil {
		logger = log.Discard()
	}
	return &LedgerService{
		fsys:      fsys,
		publisher: publisher,
		logger:    logger.WithComponent(log.ComponentLedger),
	}
}

// WithArchive makes Store save reports into a.
func (s *LedgerService) WithArchive(a Archive) *LedgerService {
	s.archive = a
	return s
}

// Check loads path and its imports and instantiates every entry. Problems
// in the ledger are diagnostics in the result, not errors.
func (s *LedgerService) Check(ctx context.Context, path string) (*Result, error) {
	start := time.Now()
	res := &Result{Record: diag.NewRecord(), Sources: diag.NewSources()}

	l := loader.New(s.fsys, res.Sources, s.logger)
	items := l.Load(res.Record, path)
	res.Files = l.Files()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.logger.DebugContext(ctx, "Instantiating ledger items",
		log.FieldOperation, log.OpInstantiate,
		log.FieldFile, path,
		log.FieldItems, len(items))
	res.Entries = template.Instantiate(res.Record, items)

	fields := log.NewFields().
		WithOperation(log.OpValidate).
		WithDiagnostics(res.Record.CountErrors(), res.Record.CountWarnings())
	fields[log.FieldFile] = path
	fields[log.FieldItems] = len(items)
	fields[log.FieldEntries] = len(res.Entries)
	fields[log.FieldDuration] = time.Since(start).Milliseconds()
	if res.Record.IsFatal() {
		s.logger.WarnContext(ctx, "Ledger has errors", fields.ToSlice()...)
	} else {
		s.logger.InfoContext(ctx, "Ledger checked", fields.ToSlice()...)
	}
	return res, nil
}

// Report checks path then aggregates its entries over period. No report
// is built when the ledger has fatal diagnostics: the result is returned
// along with ErrInvalidLedger so that they can be shown.
func (s *LedgerService) Report(ctx context.Context, path string, period core.Period, durations []core.Duration) (*Result, *report.Report, error) {
	res, err := s.Check(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	if res.Record.IsFatal() {
		return res, nil, fmt.Errorf("%w: %d errors", ErrInvalidLedger, res.Record.CountErrors())
	}

	start := time.Now()
	rep, err := report.Build(ctx, res.Entries, period, durations)
	if err != nil {
		return res, nil, err
	}
	buckets := 0
	for _, t := range rep.Tables {
		buckets += t.Calendar.Len()
	}
	s.logger.InfoContext(ctx, "Report built",
		log.FieldOperation, log.OpReport,
		log.FieldPeriod, core.FormatPeriod(period),
		log.FieldBuckets, buckets,
		log.FieldDuration, time.Since(start).Milliseconds(),
	)
	return res, rep, nil
}

// Publish hands the report to the publisher.
func (s *LedgerService) Publish(ctx context.Context, rep *report.Report) error {
	if s.publisher == nil {
		return ErrNoPublisher
	}
	if err := s.publisher.PublishSummaries(ctx, rep); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish report",
			log.NewFields().WithOperation(log.OpPublish).WithError(err).ToSlice()...)
		return fmt.Errorf("publish report: %w", err)
	}
	return nil
}

// Store archives the report built from ledger and returns its run id.
func (s *LedgerService) Store(ctx context.Context, ledger string, rep *report.Report) (string, error) {
	if s.archive == nil {
		return "", ErrNoArchive
	}
	id, err := s.archive.SaveReport(ctx, ledger, rep)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to archive report",
			log.NewFields().WithOperation(log.OpArchive).WithError(err).ToSlice()...)
		return "", fmt.Errorf("archive report: %w", err)
	}
	return id, nil
}

// Close closes the publisher, if any.
func (s *LedgerService) Close() error {
	if s.publisher == nil {
		return nil
	}
	if err := s.publisher.Close(); err != nil {
		return fmt.Errorf("close ledger service: %w", err)
	}
	return nil
}
