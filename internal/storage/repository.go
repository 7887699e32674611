// Package storage archives generated reports in SQLite so that earlier
// summaries can be listed and compared after the ledger has changed.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"billig/internal/core"
	"billig/internal/log"
	"billig/internal/report"
)

// ErrRunNotFound is returned when no archived report has the requested id.
var ErrRunNotFound = errors.New("report run not found")

// Run describes one archived report.
type Run struct {
	ID        string
	Ledger    string
	Period    string
	CreatedAt time.Time
	Summaries int
}

// StoredSummary is one archived calendar bucket. Categories only holds
// nonzero subtotals.
type StoredSummary struct {
	Duration   string
	Period     string
	Total      core.Amount
	Categories map[string]core.Amount
}

// Query is the archived subtotal of category c.
func (s StoredSummary) Query(c core.Category) core.Amount {
	return s.Categories[c.String()]
}

type SQLiteRepository struct {
	db     *sql.DB
	logger *log.Logger
}

func NewSQLiteRepository(dbPath string, logger *log.Logger) (*SQLiteRepository, error) {
	if logger == nil {
		logger = log.Discard()
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	version, err := RunMigrations(dbPath)
	if err != nil {
		db.Close()
		return nil, err
	}

	// Cascading deletes need foreign keys, which SQLite enables per connection
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	repo := &SQLiteRepository{
		db:     db,
		logger: logger.WithComponent(log.ComponentStorage),
	}
	repo.logger.Debug("Report archive opened", log.FieldFile, dbPath, "schema_version", version)
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// SaveReport archives every bucket of rep in a single transaction and
// returns the id of the new run.
func (r *SQLiteRepository) SaveReport(ctx context.Context, ledger string, rep *report.Report) (string, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	id := uuid.NewString()
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO report_runs (id, ledger, period, created_at) VALUES (?, ?, ?, ?)",
		id, ledger, core.FormatPeriod(rep.Period), time.Now().UTC()); err != nil {
		return "", fmt.Errorf("create report run: %w", err)
	}

	count := 0
	for _, t := range rep.Tables {
		for _, s := range t.Calendar.Contents() {
			if err := insertSummary(ctx, tx, id, t.Duration, s); err != nil {
				return "", err
			}
			count++
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit report run: %w", err)
	}

	r.logger.InfoContext(ctx, "Report archived",
		"id", id,
		log.FieldFile, ledger,
		log.FieldPeriod, core.FormatPeriod(rep.Period),
		log.FieldBuckets, count)
	return id, nil
}

func insertSummary(ctx context.Context, tx *sql.Tx, runID string, d core.Duration, s core.Summary) error {
	res, err := tx.ExecContext(ctx,
		"INSERT INTO summaries (run_id, duration, lo_index, period, total_cents) VALUES (?, ?, ?, ?, ?)",
		runID, d.String(), s.Period.Lo.Index(), core.FormatPeriod(s.Period), int64(s.Total))
	if err != nil {
		return fmt.Errorf("create summary %s: %w", core.FormatPeriod(s.Period), err)
	}
	summaryID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("summary id: %w", err)
	}
	for _, c := range core.Categories() {
		v := s.Query(c)
		if v == 0 {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO summary_categories (summary_id, category, amount_cents) VALUES (?, ?, ?)",
			summaryID, c.String(), int64(v)); err != nil {
			return fmt.Errorf("create %s subtotal: %w", c, err)
		}
	}
	return nil
}

// Runs lists the most recent archived reports first, at most limit of them.
func (r *SQLiteRepository) Runs(ctx context.Context, limit int) ([]Run, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT r.id, r.ledger, r.period, r.created_at, COUNT(s.id)
		FROM report_runs r
		LEFT JOIN summaries s ON s.run_id = r.id
		GROUP BY r.id
		ORDER BY r.rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list report runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.Ledger, &run.Period, &run.CreatedAt, &run.Summaries); err != nil {
			return nil, fmt.Errorf("scan report run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Summaries returns the buckets of run id, grouped by duration in the order
// they were archived and sorted by date within each duration.
func (r *SQLiteRepository) Summaries(ctx context.Context, id string) ([]StoredSummary, error) {
	var exists int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM report_runs WHERE id = ?", id).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("find report run: %w", err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT s.id, s.duration, s.period, s.total_cents, c.category, c.amount_cents
		FROM summaries s
		LEFT JOIN summary_categories c ON c.summary_id = s.id
		WHERE s.run_id = ?
		ORDER BY (SELECT MIN(f.id) FROM summaries f WHERE f.run_id = s.run_id AND f.duration = s.duration), s.lo_index`, id)
	if err != nil {
		return nil, fmt.Errorf("list summaries: %w", err)
	}
	defer rows.Close()

	var (
		out    []StoredSummary
		lastID int64 = -1
	)
	for rows.Next() {
		var (
			summaryID int64
			s         StoredSummary
			total     int64
			category  sql.NullString
			amount    sql.NullInt64
		)
		if err := rows.Scan(&summaryID, &s.Duration, &s.Period, &total, &category, &amount); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		if summaryID != lastID {
			s.Total = core.Amount(total)
			s.Categories = make(map[string]core.Amount)
			out = append(out, s)
			lastID = summaryID
		}
		if category.Valid {
			out[len(out)-1].Categories[category.String] = core.Amount(amount.Int64)
		}
	}
	return out, rows.Err()
}

// DeleteRun removes an archived report and its summaries.
func (r *SQLiteRepository) DeleteRun(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM report_runs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete report run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete report run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	r.logger.InfoContext(ctx, "Report run deleted", "id", id)
	return nil
}
