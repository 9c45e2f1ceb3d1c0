package dataset

import (
	"fmt"
	"io"
	"strings"
)

// reportDisplayLimit caps how many diagnostics of each severity are printed;
// the remainder is summarised as a count.
const reportDisplayLimit = 20

// ReportData is the machine-readable form of a validation run, suitable for
// JSON export.
type ReportData struct {
	DatasetPath string         `json:"dataset_path"`
	Passed      bool           `json:"passed"`
	Errors      []Diagnostic   `json:"errors"`
	Warnings    []Diagnostic   `json:"warnings"`
	Splits      []SplitSummary `json:"splits,omitempty"`
}

// ReportData snapshots the validator's accumulated state.
func (v *Validator) ReportData() ReportData {
	return ReportData{
		DatasetPath: v.root,
		Passed:      v.Passed(),
		Errors:      v.Errors(),
		Warnings:    v.Warnings(),
		Splits:      v.Summaries(),
	}
}

// Report writes the textual validation report: errors first, then warnings
// (each capped at reportDisplayLimit with a remainder count), then a one-line
// verdict.
func (v *Validator) Report(w io.Writer) {
	rule := strings.Repeat("=", 60)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "VALIDATION REPORT")
	fmt.Fprintln(w, rule)

	writeDiagnostics(w, "ERRORS", v.errors)
	writeDiagnostics(w, "WARNINGS", v.warnings)

	switch {
	case len(v.errors) == 0 && len(v.warnings) == 0:
		fmt.Fprintln(w, "\nPASS: dataset validation passed, no errors or warnings")
	case len(v.errors) == 0:
		fmt.Fprintln(w, "\nPASS: no errors found; review warnings before training")
	default:
		fmt.Fprintln(w, "\nFAIL: fix errors before training")
	}
	fmt.Fprintln(w, rule)
}

func writeDiagnostics(w io.Writer, heading string, diags []Diagnostic) {
	if len(diags) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%d %s:\n", len(diags), heading)
	for i, d := range diags {
		if i == reportDisplayLimit {
			fmt.Fprintf(w, "  ... and %d more\n", len(diags)-reportDisplayLimit)
			break
		}
		fmt.Fprintf(w, "  %d. %s\n", i+1, d.Message)
	}
}
