package dataset

import (
	"fmt"
	"path/filepath"

	"github.com/tabletop-vision/posecheck/internal/fsutil"
	"github.com/tabletop-vision/posecheck/internal/monitoring"
)

// requiredDirs are the split directories every exported dataset must carry.
var requiredDirs = []string{
	"images/train",
	"images/val",
	"labels/train",
	"labels/val",
}

// Splits enumerates the dataset partitions validated per run.
var Splits = []string{"train", "val"}

// Validator runs the four-stage pre-flight pipeline over one dataset root and
// accumulates diagnostics in insertion order. Create one per dataset path and
// discard it after reading the report.
type Validator struct {
	root string
	fs   fsutil.FileSystem

	errors    []Diagnostic
	warnings  []Diagnostic
	summaries []SplitSummary
}

// New creates a validator for the dataset rooted at path, backed by the host
// filesystem.
func New(root string) *Validator {
	return NewWithFS(root, fsutil.OSFileSystem{})
}

// NewWithFS creates a validator using the given filesystem, for tests that
// build datasets in memory.
func NewWithFS(root string, fs fsutil.FileSystem) *Validator {
	return &Validator{root: root, fs: fs}
}

// Root returns the dataset root path the validator was created with.
func (v *Validator) Root() string { return v.root }

func (v *Validator) join(parts ...string) string {
	return filepath.Join(append([]string{v.root}, parts...)...)
}

func (v *Validator) addError(cat Category, format string, args ...any) {
	v.errors = append(v.errors, Diagnostic{
		Severity: SeverityError,
		Category: cat,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (v *Validator) addWarning(cat Category, format string, args ...any) {
	v.warnings = append(v.warnings, Diagnostic{
		Severity: SeverityWarning,
		Category: cat,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Errors returns a copy of the accumulated error diagnostics.
func (v *Validator) Errors() []Diagnostic {
	out := make([]Diagnostic, len(v.errors))
	copy(out, v.errors)
	return out
}

// Warnings returns a copy of the accumulated warning diagnostics.
func (v *Validator) Warnings() []Diagnostic {
	out := make([]Diagnostic, len(v.warnings))
	copy(out, v.warnings)
	return out
}

// Summaries returns the per-split summaries gathered by the last Validate.
func (v *Validator) Summaries() []SplitSummary {
	out := make([]SplitSummary, len(v.summaries))
	copy(out, v.summaries)
	return out
}

// Passed reports whether no errors have been recorded.
func (v *Validator) Passed() bool { return len(v.errors) == 0 }

// CheckStructure verifies the four required split directories exist, adding
// one error per missing path. It is a hard gate: callers must not run later
// stages when it returns false.
func (v *Validator) CheckStructure() bool {
	monitoring.Logf("checking directory structure under %s", v.root)

	ok := true
	for _, dir := range requiredDirs {
		path := v.join(dir)
		if !v.fs.IsDir(path) {
			v.addError(CategoryStructure, "missing directory: %s", dir)
			ok = false
			continue
		}
		if entries, err := v.fs.ReadDir(path); err == nil {
			monitoring.Logf("  %s: %d files", dir, len(entries))
		}
	}
	return ok
}

// Validate runs all stages in order: structure, schema, both splits. The two
// hard gates (missing directories, missing or unparsable data.yaml) abort the
// run immediately. Returns true only when no errors were recorded.
func (v *Validator) Validate() bool {
	if !v.CheckStructure() {
		return false
	}

	cfg := v.LoadConfig()
	if cfg == nil {
		return false
	}

	v.summaries = v.summaries[:0]
	for _, split := range Splits {
		v.summaries = append(v.summaries, v.ValidateSplit(split, cfg))
	}

	return v.Passed()
}
