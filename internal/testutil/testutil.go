// Package testutil provides shared test utilities and fixtures.
//
// This package centralises dataset fixture builders so validation tests do
// not repeat directory scaffolding.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tabletop-vision/posecheck/internal/fsutil"
)

// DefaultDataYAML is a minimal valid data.yaml for a single-class pose
// dataset.
const DefaultDataYAML = `train: images/train
val: images/val
nc: 1
names: ["miniature"]
kpt_shape: [4, 3]
`

// SplitDirs are the four directories a dataset export must contain.
var SplitDirs = []string{
	"images/train",
	"images/val",
	"labels/train",
	"labels/val",
}

// NewMemDataset builds an in-memory dataset tree with the four split
// directories and the given data.yaml content (skipped when empty).
func NewMemDataset(root, dataYAML string) *fsutil.MemoryFileSystem {
	fs := fsutil.NewMemoryFileSystem()
	for _, dir := range SplitDirs {
		fs.MkdirAll(filepath.Join(root, dir))
	}
	if dataYAML != "" {
		fs.WriteFile(filepath.Join(root, "data.yaml"), []byte(dataYAML))
	}
	return fs
}

// WriteImage adds an image placeholder to a split of an in-memory dataset.
func WriteImage(fs *fsutil.MemoryFileSystem, root, split, name string) {
	fs.WriteFile(filepath.Join(root, "images", split, name), []byte("img"))
}

// WriteLabel adds a label file to a split of an in-memory dataset.
func WriteLabel(fs *fsutil.MemoryFileSystem, root, split, name, content string) {
	fs.WriteFile(filepath.Join(root, "labels", split, name), []byte(content))
}

// MakeDatasetDir creates an on-disk dataset tree under a temp directory and
// returns its root. Used by tests that exercise the OS filesystem path.
func MakeDatasetDir(t *testing.T, dataYAML string) string {
	t.Helper()

	root := t.TempDir()
	for _, dir := range SplitDirs {
		if err := os.MkdirAll(filepath.Join(root, dir), 0755); err != nil {
			t.Fatalf("failed to create %s: %v", dir, err)
		}
	}
	if dataYAML != "" {
		WriteFile(t, filepath.Join(root, "data.yaml"), dataYAML)
	}
	return root
}

// WriteFile writes a file for a test, failing the test on error.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}
