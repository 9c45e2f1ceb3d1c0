package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabletop-vision/posecheck/internal/dataset"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err, "failed to open history store")
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleReport(passed bool) dataset.ReportData {
	report := dataset.ReportData{
		DatasetPath: "/data/yolo_dataset",
		Passed:      passed,
	}
	if !passed {
		report.Errors = []dataset.Diagnostic{{
			Severity: dataset.SeverityError,
			Category: dataset.CategoryClass,
			Message:  "train/a.txt:1 - invalid class id: 5 (must be 0-0)",
		}}
	}
	report.Warnings = []dataset.Diagnostic{{
		Severity: dataset.SeverityWarning,
		Category: dataset.CategoryOverlap,
		Message:  "train/a.txt - high overlap (68%) between instances 1 and 2 - verify not duplicate",
	}}
	return report
}

func TestOpen_AppliesMigrations(t *testing.T) {
	store := openTestStore(t)

	version, dirty, err := store.MigrateVersion()
	require.NoError(t, err)
	assert.False(t, dirty)
	assert.Equal(t, uint(1), version)
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopening an already-migrated database is a no-op, not an error.
	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()
}

func TestRecordRun_RoundTrip(t *testing.T) {
	store := openTestStore(t)
	started := time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)

	runID, err := store.RecordRun(sampleReport(false), started)
	require.NoError(t, err)
	require.NotEmpty(t, runID)

	runs, err := store.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	run := runs[0]
	assert.Equal(t, runID, run.ID)
	assert.Equal(t, "/data/yolo_dataset", run.DatasetPath)
	assert.False(t, run.Passed)
	assert.Equal(t, 1, run.ErrorCount)
	assert.Equal(t, 1, run.WarningCount)
	assert.True(t, run.StartedAt.Equal(started))

	diags, err := store.RunDiagnostics(runID)
	require.NoError(t, err)
	require.Len(t, diags, 2)
	// Errors are archived before warnings, preserving report order.
	assert.Equal(t, dataset.CategoryClass, diags[0].Category)
	assert.Equal(t, dataset.SeverityError, diags[0].Severity)
	assert.Equal(t, dataset.CategoryOverlap, diags[1].Category)
	assert.Equal(t, dataset.SeverityWarning, diags[1].Severity)
}

func TestListRuns_NewestFirst(t *testing.T) {
	store := openTestStore(t)

	older := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 8, 23, 9, 0, 0, 0, time.UTC)

	_, err := store.RecordRun(sampleReport(true), older)
	require.NoError(t, err)
	newestID, err := store.RecordRun(sampleReport(false), newer)
	require.NoError(t, err)

	runs, err := store.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, newestID, runs[0].ID)

	limited, err := store.ListRuns(1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, newestID, limited[0].ID)
}

func TestRunDiagnostics_UnknownRun(t *testing.T) {
	store := openTestStore(t)

	diags, err := store.RunDiagnostics("no-such-run")
	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestMigrateDown_RemovesSchema(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.MigrateDown())

	version, dirty, err := store.MigrateVersion()
	require.NoError(t, err)
	assert.False(t, dirty)
	assert.Equal(t, uint(0), version)
}
