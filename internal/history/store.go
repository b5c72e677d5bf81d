// Package history records finished cleaning runs in a SQLite database so
// that past results and failures can be listed and queried later.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/harrison/rclean/internal/models"
)

// ErrRunNotFound is returned when no recorded run matches an ID
var ErrRunNotFound = errors.New("run not found")

// ErrAmbiguousRun is returned when an ID prefix matches more than one run
var ErrAmbiguousRun = errors.New("run ID prefix is ambiguous")

// timeLayout is how run start times are stored; it sorts lexically
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// RunRecord is the summary row of one recorded run
type RunRecord struct {
	ID             string
	Root           string
	StartedAt      time.Time
	Duration       time.Duration
	DryRun         bool
	Cancelled      bool
	StatsMode      bool
	TotalCount     int
	TotalSize      int64
	Removed        int
	WouldRemove    int
	SkippedOverlap int
	Failed         int
}

// RunDetail is a run with its per-pattern stats and failures
type RunDetail struct {
	RunRecord
	Stats    []models.PatternStat
	Failures []models.FailedDeletion
}

// FailureRecord is a failed deletion together with the run it belongs to
type FailureRecord struct {
	RunID     string
	Root      string
	StartedAt time.Time
	models.FailedDeletion
}

// Store manages the SQLite run history database
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore creates a new Store instance and initializes the database
func NewStore(dbPath string) (*Store, error) {
	if dbPath == ":memory:" {
		return openAndInitStore(dbPath)
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	return openAndInitStore(dbPath)
}

func openAndInitStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Every pooled connection to :memory: would see its own empty database
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	// busy_timeout must come first so later statements wait on locks
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}

	for _, pragma := range pragmas {
		if err := execWithRetry(db, pragma, 5, 10*time.Millisecond); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	store := &Store{
		db:     db,
		dbPath: dbPath,
	}

	if err := store.ApplyMigrations(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}

	return store, nil
}

// execWithRetry executes a SQL statement with exponential backoff on lock errors
func execWithRetry(db *sql.DB, sql string, maxRetries int, baseDelay time.Duration) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err := db.Exec(sql)
		if err == nil {
			return nil
		}

		if !strings.Contains(err.Error(), "database is locked") {
			return err
		}

		lastErr = err
		time.Sleep(baseDelay * time.Duration(1<<attempt))
	}
	return lastErr
}

// Path returns the database file path
func (s *Store) Path() string {
	return s.dbPath
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordRun stores a finished run with its stats and failures
func (s *Store) RecordRun(ctx context.Context, r *models.Report) error {
	if r.RunID == "" {
		return errors.New("record run: report has no run ID")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `INSERT INTO runs
		(id, root, started_at, duration_ms, dry_run, cancelled, stats_mode, total_count, total_size, removed, would_remove, skipped_overlap, failed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID,
		r.Root,
		r.StartedAt.UTC().Format(timeLayout),
		r.Duration.Milliseconds(),
		r.DryRun,
		r.Cancelled,
		r.StatsMode,
		r.TotalCount,
		r.TotalSize,
		r.Removed,
		r.WouldRemove,
		r.SkippedOverlap,
		len(r.Failures),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for i, st := range r.Stats {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO run_stats (run_id, position, pattern, count, total_size) VALUES (?, ?, ?, ?, ?)`,
			r.RunID, i, st.Pattern, st.Count, st.TotalSize)
		if err != nil {
			return fmt.Errorf("insert run stat: %w", err)
		}
	}

	for _, f := range r.Failures {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO run_failures (run_id, path, error, kind) VALUES (?, ?, ?, ?)`,
			r.RunID, f.Path, f.Error, f.Kind)
		if err != nil {
			return fmt.Errorf("insert run failure: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

const runColumns = `id, root, started_at, duration_ms, dry_run, cancelled, stats_mode, total_count, total_size, removed, would_remove, skipped_overlap, failed`

// ListRuns returns recorded runs, most recent first.
// A limit of zero or less returns every run.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs ORDER BY started_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []RunRecord{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// GetRun returns one run with its stats and failures. The ID may be a
// unique prefix of a recorded run ID.
func (s *Store) GetRun(ctx context.Context, id string) (*RunDetail, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: empty ID", ErrRunNotFound)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE id = ? OR substr(id, 1, ?) = ? LIMIT 2`,
		id, len(id), id)
	if err != nil {
		return nil, fmt.Errorf("query run: %w", err)
	}

	var found []RunRecord
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		found = append(found, run)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run: %w", err)
	}

	switch {
	case len(found) == 0:
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	case len(found) > 1:
		return nil, fmt.Errorf("%w: %s", ErrAmbiguousRun, id)
	}

	detail := &RunDetail{RunRecord: found[0]}
	if detail.Stats, err = s.runStats(ctx, detail.ID); err != nil {
		return nil, err
	}
	if detail.Failures, err = s.runFailures(ctx, detail.ID); err != nil {
		return nil, err
	}
	return detail, nil
}

func (s *Store) runStats(ctx context.Context, runID string) ([]models.PatternStat, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT pattern, count, total_size FROM run_stats WHERE run_id = ? ORDER BY position ASC`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run stats: %w", err)
	}
	defer rows.Close()

	stats := []models.PatternStat{}
	for rows.Next() {
		var st models.PatternStat
		if err := rows.Scan(&st.Pattern, &st.Count, &st.TotalSize); err != nil {
			return nil, fmt.Errorf("scan run stat: %w", err)
		}
		stats = append(stats, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run stats: %w", err)
	}
	return stats, nil
}

func (s *Store) runFailures(ctx context.Context, runID string) ([]models.FailedDeletion, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT path, error, kind FROM run_failures WHERE run_id = ? ORDER BY id ASC`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run failures: %w", err)
	}
	defer rows.Close()

	failures := []models.FailedDeletion{}
	for rows.Next() {
		var f models.FailedDeletion
		if err := rows.Scan(&f.Path, &f.Error, &f.Kind); err != nil {
			return nil, fmt.Errorf("scan run failure: %w", err)
		}
		failures = append(failures, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run failures: %w", err)
	}
	return failures, nil
}

// QueryFailures returns recorded failed deletions, most recent run first.
// An empty root matches every run; limit <= 0 means no limit.
func (s *Store) QueryFailures(ctx context.Context, root string, limit int) ([]FailureRecord, error) {
	if limit <= 0 {
		limit = -1
	}

	query := `SELECT r.id, r.root, r.started_at, f.path, f.error, f.kind
		FROM run_failures f
		JOIN runs r ON r.id = f.run_id
		WHERE (? = '' OR r.root = ?)
		ORDER BY r.started_at DESC, f.id ASC
		LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, root, root, limit)
	if err != nil {
		return nil, fmt.Errorf("query failures: %w", err)
	}
	defer rows.Close()

	records := []FailureRecord{}
	for rows.Next() {
		var rec FailureRecord
		var started string
		if err := rows.Scan(&rec.RunID, &rec.Root, &started, &rec.Path, &rec.Error, &rec.Kind); err != nil {
			return nil, fmt.Errorf("scan failure: %w", err)
		}
		if rec.StartedAt, err = time.Parse(timeLayout, started); err != nil {
			return nil, fmt.Errorf("parse started_at %q: %w", started, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate failures: %w", err)
	}
	return records, nil
}

// Clear deletes all recorded runs and returns how many were removed
func (s *Store) Clear(ctx context.Context) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"run_failures", "run_stats"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return 0, fmt.Errorf("clear %s: %w", table, err)
		}
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM runs")
	if err != nil {
		return 0, fmt.Errorf("clear runs: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("get rows affected: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit clear: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row rowScanner) (RunRecord, error) {
	var run RunRecord
	var started string
	var durationMs int64
	err := row.Scan(
		&run.ID,
		&run.Root,
		&started,
		&durationMs,
		&run.DryRun,
		&run.Cancelled,
		&run.StatsMode,
		&run.TotalCount,
		&run.TotalSize,
		&run.Removed,
		&run.WouldRemove,
		&run.SkippedOverlap,
		&run.Failed,
	)
	if err != nil {
		return RunRecord{}, fmt.Errorf("scan run: %w", err)
	}

	run.StartedAt, err = time.Parse(timeLayout, started)
	if err != nil {
		return RunRecord{}, fmt.Errorf("parse started_at %q: %w", started, err)
	}
	run.Duration = time.Duration(durationMs) * time.Millisecond
	return run, nil
}
