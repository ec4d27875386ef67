// Package history keeps a SQLite record of past scans: their counters,
// extension tallies, issue counts and where the report was written.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/harrison/dirtally/internal/models"
)

// ErrRunNotFound is returned by GetRun for an unknown id.
var ErrRunNotFound = errors.New("run not found")

// Run is one recorded scan.
type Run struct {
	ID           string
	Root         string
	StartedAt    time.Time
	FinishedAt   time.Time
	Counters     models.Counters
	Total        int
	Files        int // FileRecords registered
	IssueCount   int
	ReportPath   string
	ReportFormat string

	// Filled by GetRun only.
	Extensions []models.ExtensionCount
	Issues     map[string]int
}

// Duration returns how long the scan took.
func (r *Run) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Store is the run history database.
type Store struct {
	db     *sql.DB
	dbPath string
}

// Open opens (creating if needed) the history database at dbPath and
// brings its schema up to date. ":memory:" opens a private in-memory store.
func Open(ctx context.Context, dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Every connection to ":memory:" is a separate database, and the CLI
	// is the only writer anyway.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA busy_timeout=5000", // Must be first
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if err := execWithRetry(ctx, db, pragma, 5, 10*time.Millisecond); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	s := &Store{db: db, dbPath: dbPath}
	if err := s.ApplyMigrations(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

// execWithRetry executes a statement with exponential backoff on lock errors.
func execWithRetry(ctx context.Context, db *sql.DB, stmt string, maxRetries int, baseDelay time.Duration) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err := db.ExecContext(ctx, stmt)
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

// Path returns the database path the store was opened with.
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

// RecordRun stores run together with its extensions and issue counts in a
// single transaction. An empty run.ID is replaced by a fresh UUID, which is
// returned.
func (s *Store) RecordRun(ctx context.Context, run *Run) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	c := run.Counters
	_, err = tx.ExecContext(ctx, `
INSERT INTO runs (
    id, root, started_at, finished_at,
    directories, files, symlinks, block_devices, char_devices,
    fifos, sockets, junctions, unknown,
    total, registered_files, issue_count, report_path, report_format
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Root, formatTime(run.StartedAt), formatTime(run.FinishedAt),
		c.Directories, c.Files, c.Symlinks, c.BlockDevices, c.CharDevices,
		c.Fifos, c.Sockets, c.Junctions, c.Unknown,
		run.Total, run.Files, run.IssueCount, nullString(run.ReportPath), nullString(run.ReportFormat),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	for _, ext := range run.Extensions {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_extensions (run_id, extension, count) VALUES (?, ?, ?)`,
			run.ID, ext.Extension, ext.Count); err != nil {
			return "", fmt.Errorf("insert extension %q: %w", ext.Extension, err)
		}
	}

	for kind, count := range run.Issues {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_issues (run_id, kind, count) VALUES (?, ?, ?)`,
			run.ID, kind, count); err != nil {
			return "", fmt.Errorf("insert issue count %q: %w", kind, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit run: %w", err)
	}
	return run.ID, nil
}

const runColumns = `id, root, started_at, finished_at,
    directories, files, symlinks, block_devices, char_devices,
    fifos, sockets, junctions, unknown,
    total, registered_files, issue_count, report_path, report_format`

// ListRuns returns up to limit runs, newest first. A limit <= 0 returns all.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC, id`
	var args []interface{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
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

// GetRun returns the run with id, including its extension tally (sorted)
// and issue counts. Unknown ids yield ErrRunNotFound.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT extension, count FROM run_extensions WHERE run_id = ? ORDER BY extension`, id)
	if err != nil {
		return nil, fmt.Errorf("query extensions: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var ext models.ExtensionCount
		if err := rows.Scan(&ext.Extension, &ext.Count); err != nil {
			return nil, fmt.Errorf("scan extension: %w", err)
		}
		run.Extensions = append(run.Extensions, ext)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate extensions: %w", err)
	}
	// SQLite collation is bytewise already; keep the order independent of it.
	sort.SliceStable(run.Extensions, func(i, j int) bool {
		return run.Extensions[i].Extension < run.Extensions[j].Extension
	})

	issueRows, err := s.db.QueryContext(ctx, `SELECT kind, count FROM run_issues WHERE run_id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("query issues: %w", err)
	}
	defer issueRows.Close()
	run.Issues = make(map[string]int)
	for issueRows.Next() {
		var kind string
		var count int
		if err := issueRows.Scan(&kind, &count); err != nil {
			return nil, fmt.Errorf("scan issue: %w", err)
		}
		run.Issues[kind] = count
	}
	if err := issueRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate issues: %w", err)
	}

	return run, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(sc scanner) (*Run, error) {
	var (
		run                 Run
		started, finished   string
		reportPath, reportF sql.NullString
	)
	c := &run.Counters
	err := sc.Scan(
		&run.ID, &run.Root, &started, &finished,
		&c.Directories, &c.Files, &c.Symlinks, &c.BlockDevices, &c.CharDevices,
		&c.Fifos, &c.Sockets, &c.Junctions, &c.Unknown,
		&run.Total, &run.Files, &run.IssueCount, &reportPath, &reportF,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scan run: %w", err)
	}

	if run.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
		return nil, fmt.Errorf("parse started_at %q: %w", started, err)
	}
	if run.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
		return nil, fmt.Errorf("parse finished_at %q: %w", finished, err)
	}
	run.ReportPath = reportPath.String
	run.ReportFormat = reportF.String
	return &run, nil
}

// timeLayout is fixed width so that ORDER BY on the text column is
// chronological.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
