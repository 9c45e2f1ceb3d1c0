// Package history persists validation runs to a SQLite database so dataset
// exports can be compared over time.
package history

import (
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/tabletop-vision/posecheck/internal/dataset"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store wraps the run archive database.
type Store struct {
	*sql.DB
}

// Open opens (or creates) the archive at path and applies any pending schema
// migrations.
func Open(path string) (*Store, error) {
	s, err := OpenDB(path)
	if err != nil {
		return nil, err
	}
	if err := s.MigrateUp(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// OpenDB opens the archive without touching the schema. Used by the migrate
// subcommand, which manages the schema itself.
func OpenDB(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	return &Store{db}, nil
}

// Run is one archived validation run.
type Run struct {
	ID           string
	DatasetPath  string
	StartedAt    time.Time
	Passed       bool
	ErrorCount   int
	WarningCount int
}

// RecordRun archives a validation report and its diagnostics, returning the
// generated run id.
func (s *Store) RecordRun(report dataset.ReportData, startedAt time.Time) (string, error) {
	runID := uuid.NewString()

	tx, err := s.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO runs (run_id, dataset_path, started_at, passed, error_count, warning_count)
		VALUES (?, ?, ?, ?, ?, ?)`,
		runID, report.DatasetPath, startedAt.UTC().Format(time.RFC3339),
		report.Passed, len(report.Errors), len(report.Warnings))
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO diagnostics (run_id, severity, category, message)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("failed to prepare diagnostic insert: %w", err)
	}
	defer stmt.Close()

	for _, d := range report.Errors {
		if _, err := stmt.Exec(runID, string(d.Severity), string(d.Category), d.Message); err != nil {
			return "", fmt.Errorf("failed to insert diagnostic: %w", err)
		}
	}
	for _, d := range report.Warnings {
		if _, err := stmt.Exec(runID, string(d.Severity), string(d.Category), d.Message); err != nil {
			return "", fmt.Errorf("failed to insert diagnostic: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(limit int) ([]Run, error) {
	rows, err := s.Query(`
		SELECT run_id, dataset_path, started_at, passed, error_count, warning_count
		FROM runs ORDER BY started_at DESC, run_id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var started string
		if err := rows.Scan(&r.ID, &r.DatasetPath, &started, &r.Passed, &r.ErrorCount, &r.WarningCount); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, started); err == nil {
			r.StartedAt = t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RunDiagnostics returns the archived diagnostics for one run, in the order
// they were recorded.
func (s *Store) RunDiagnostics(runID string) ([]dataset.Diagnostic, error) {
	rows, err := s.Query(`
		SELECT severity, category, message FROM diagnostics
		WHERE run_id = ? ORDER BY diagnostic_id`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query diagnostics: %w", err)
	}
	defer rows.Close()

	var diags []dataset.Diagnostic
	for rows.Next() {
		var severity, category string
		var d dataset.Diagnostic
		if err := rows.Scan(&severity, &category, &d.Message); err != nil {
			return nil, fmt.Errorf("failed to scan diagnostic: %w", err)
		}
		d.Severity = dataset.Severity(severity)
		d.Category = dataset.Category(category)
		diags = append(diags, d)
	}
	return diags, rows.Err()
}
