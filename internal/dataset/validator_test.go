package dataset

import (
	"os"
	"testing"

	"github.com/tabletop-vision/posecheck/internal/fsutil"
	"github.com/tabletop-vision/posecheck/internal/monitoring"
	"github.com/tabletop-vision/posecheck/internal/testutil"
)

func TestMain(m *testing.M) {
	monitoring.Mute()
	os.Exit(m.Run())
}

const testRoot = "/data/yolo_dataset"

func newTestValidator(dataYAML string) (*Validator, *fsutil.MemoryFileSystem) {
	fs := testutil.NewMemDataset(testRoot, dataYAML)
	return NewWithFS(testRoot, fs), fs
}

func errorCategories(v *Validator) map[Category]int {
	counts := make(map[Category]int)
	for _, d := range v.Errors() {
		counts[d.Category]++
	}
	return counts
}

func warningCategories(v *Validator) map[Category]int {
	counts := make(map[Category]int)
	for _, d := range v.Warnings() {
		counts[d.Category]++
	}
	return counts
}

func TestCheckStructure_AllPresent(t *testing.T) {
	v, _ := newTestValidator(testutil.DefaultDataYAML)
	if !v.CheckStructure() {
		t.Fatalf("CheckStructure failed: %v", v.Errors())
	}
	if len(v.Errors()) != 0 {
		t.Errorf("unexpected errors: %v", v.Errors())
	}
}

func TestCheckStructure_MissingDirectories(t *testing.T) {
	fs := fsutil.NewMemoryFileSystem()
	fs.MkdirAll(testRoot + "/images/train")
	fs.MkdirAll(testRoot + "/labels/train")
	v := NewWithFS(testRoot, fs)

	if v.CheckStructure() {
		t.Fatal("CheckStructure passed with missing directories")
	}
	if got := errorCategories(v)[CategoryStructure]; got != 2 {
		t.Errorf("structure errors = %d, want 2 (images/val, labels/val)", got)
	}
}

func TestCheckStructure_NonexistentRoot(t *testing.T) {
	fs := testutil.NewMemDataset(testRoot, "")
	v := NewWithFS(testRoot+"/missing", fs)

	if v.CheckStructure() {
		t.Fatal("CheckStructure passed for nonexistent root")
	}
	if got := errorCategories(v)[CategoryStructure]; got != 4 {
		t.Errorf("structure errors = %d, want 4", got)
	}
}

func TestValidate_CleanDataset(t *testing.T) {
	v, fs := newTestValidator(testutil.DefaultDataYAML)
	testutil.WriteImage(fs, testRoot, "train", "a.jpg")
	testutil.WriteLabel(fs, testRoot, "train", "a.txt", "0 0.5 0.5 0.3 0.2\n")
	testutil.WriteImage(fs, testRoot, "val", "b.png")
	testutil.WriteLabel(fs, testRoot, "val", "b.txt",
		"0 0.5 0.5 0.3 0.2 0.4 0.4 1 0.6 0.4 1 0.6 0.6 1 0.4 0.6 1\n")

	if !v.Validate() {
		t.Fatalf("Validate failed: %v", v.Errors())
	}
	if len(v.Warnings()) != 0 {
		t.Errorf("unexpected warnings: %v", v.Warnings())
	}

	summaries := v.Summaries()
	if len(summaries) != 2 {
		t.Fatalf("summaries = %d, want 2", len(summaries))
	}
	if summaries[0].Split != "train" || summaries[1].Split != "val" {
		t.Errorf("summary order = %s, %s; want train, val", summaries[0].Split, summaries[1].Split)
	}
	if summaries[1].PoseInstances != 1 {
		t.Errorf("val pose instances = %d, want 1", summaries[1].PoseInstances)
	}
}

func TestValidate_StructureGateStopsRun(t *testing.T) {
	fs := fsutil.NewMemoryFileSystem()
	v := NewWithFS(testRoot, fs)

	if v.Validate() {
		t.Fatal("Validate passed without any directories")
	}
	// Only structure errors: the config and split stages must not have run.
	for _, d := range v.Errors() {
		if d.Category != CategoryStructure {
			t.Errorf("unexpected diagnostic after structure gate: %+v", d)
		}
	}
	if len(v.Summaries()) != 0 {
		t.Errorf("split summaries recorded despite structure gate")
	}
}

func TestValidate_ConfigGateStopsRun(t *testing.T) {
	v, _ := newTestValidator("") // directories present, no data.yaml

	if v.Validate() {
		t.Fatal("Validate passed without data.yaml")
	}
	if got := errorCategories(v)[CategoryConfig]; got != 1 {
		t.Errorf("config errors = %d, want 1 (missing data.yaml)", got)
	}
	if len(v.Summaries()) != 0 {
		t.Errorf("split summaries recorded despite config gate")
	}
}

func TestValidate_ErrorsInSplitsFailRun(t *testing.T) {
	v, fs := newTestValidator(testutil.DefaultDataYAML)
	testutil.WriteImage(fs, testRoot, "train", "a.jpg")
	testutil.WriteLabel(fs, testRoot, "train", "a.txt", "5 0.5 0.5 0.3 0.2\n")

	if v.Validate() {
		t.Fatal("Validate passed with an out-of-range class id")
	}
	if v.Passed() {
		t.Error("Passed() = true with recorded errors")
	}
}

func TestValidator_AccessorsReturnCopies(t *testing.T) {
	v, _ := newTestValidator("")
	v.Validate()

	errs := v.Errors()
	if len(errs) == 0 {
		t.Fatal("expected at least one error")
	}
	errs[0].Message = "mutated"
	if v.Errors()[0].Message == "mutated" {
		t.Error("Errors() exposed internal state")
	}
}

func TestValidator_DiagnosticOrderStable(t *testing.T) {
	run := func() []Diagnostic {
		v, fs := newTestValidator(testutil.DefaultDataYAML)
		for _, name := range []string{"c", "a", "b"} {
			testutil.WriteImage(fs, testRoot, "train", name+".jpg")
			testutil.WriteLabel(fs, testRoot, "train", name+".txt", "9 0.5 0.5 0.3 0.2\n")
		}
		v.Validate()
		return v.Errors()
	}

	first := run()
	second := run()
	if len(first) != len(second) {
		t.Fatalf("diagnostic counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("diagnostic %d differs between runs: %q vs %q",
				i, first[i].Message, second[i].Message)
		}
	}
}
