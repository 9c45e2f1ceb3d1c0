package dataset

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/tabletop-vision/posecheck/internal/monitoring"
)

// imageExtensions are the image file types matched to label files by stem.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// labelExtension is the annotation file type.
const labelExtension = ".txt"

// exampleStemLimit caps how many missing-label stems are surfaced.
const exampleStemLimit = 5

// SplitSummary reports the reconciliation and content tallies for one split.
type SplitSummary struct {
	Split         string  `json:"split"`
	Images        int     `json:"images"`
	Labels        int     `json:"labels"`
	MissingLabels int     `json:"missing_labels"`
	OrphanLabels  int     `json:"orphan_labels"`
	ValidLabels   int     `json:"valid_labels"`
	Instances     int     `json:"instances"`
	PoseInstances int     `json:"pose_instances"`
	PoseCoverage  float64 `json:"pose_coverage_pct"`

	Stats SplitStats `json:"stats"`
}

// ValidateSplit reconciles the image and label sets for one split and
// validates every label file present. It records diagnostics but never aborts
// the run, even for splits with no files at all.
func (v *Validator) ValidateSplit(split string, cfg *DataConfig) SplitSummary {
	monitoring.Logf("validating %s split", split)

	summary := SplitSummary{Split: split}

	imagesDir := v.join("images", split)
	labelsDir := v.join("labels", split)
	if !v.fs.IsDir(imagesDir) || !v.fs.IsDir(labelsDir) {
		return summary
	}

	images := v.filesByStem(imagesDir, isImageFile)
	labels := v.filesByStem(labelsDir, isLabelFile)
	summary.Images = len(images)
	summary.Labels = len(labels)
	monitoring.Logf("  images: %d", len(images))
	monitoring.Logf("  labels: %d", len(labels))

	missing := stemsNotIn(images, labels)
	if len(missing) > 0 {
		summary.MissingLabels = len(missing)
		v.addError(CategoryMissingLabels,
			"%s: %d images without labels (e.g. %s)",
			split, len(missing), strings.Join(firstN(missing, exampleStemLimit), ", "))
	}

	orphaned := stemsNotIn(labels, images)
	if len(orphaned) > 0 {
		summary.OrphanLabels = len(orphaned)
		v.addWarning(CategoryOrphanLabels,
			"%s: %d labels without images", split, len(orphaned))
	}

	// Sorted filename order keeps diagnostic order reproducible run to run.
	stems := make([]string, 0, len(labels))
	for stem := range labels {
		stems = append(stems, stem)
	}
	sort.Strings(stems)

	var areas []float64
	var instanceCounts []float64
	for _, stem := range stems {
		res := v.checkLabelFile(filepath.Join(labelsDir, labels[stem]), cfg.NumClasses(), split)
		if !res.issues.Empty() {
			continue
		}
		summary.ValidLabels++
		summary.Instances += res.instances
		summary.PoseInstances += res.poseInstances
		instanceCounts = append(instanceCounts, float64(res.instances))
		for _, box := range res.boxes {
			areas = append(areas, box.Area())
		}
	}

	summary.PoseCoverage = coveragePct(summary.PoseInstances, summary.Instances)
	summary.Stats = summarizeSplit(areas, instanceCounts)

	monitoring.Logf("  valid labels: %d/%d", summary.ValidLabels, len(labels))
	monitoring.Logf("  total instances: %d", summary.Instances)
	monitoring.Logf("  instances with pose: %d (%.1f%%)",
		summary.PoseInstances, summary.PoseCoverage)

	return summary
}

// filesByStem maps filename stems to filenames for files matching keep.
// A stem that appears with multiple extensions keeps the last entry in
// directory order; duplicates of that kind do not occur in real exports.
func (v *Validator) filesByStem(dir string, keep func(string) bool) map[string]string {
	entries, err := v.fs.ReadDir(dir)
	if err != nil {
		return nil
	}

	files := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || !keep(entry.Name()) {
			continue
		}
		stem := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		files[stem] = entry.Name()
	}
	return files
}

func isImageFile(name string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(name))]
}

func isLabelFile(name string) bool {
	return strings.ToLower(filepath.Ext(name)) == labelExtension
}

// stemsNotIn returns the sorted stems present in a but absent from b.
func stemsNotIn(a, b map[string]string) []string {
	var out []string
	for stem := range a {
		if _, ok := b[stem]; !ok {
			out = append(out, stem)
		}
	}
	sort.Strings(out)
	return out
}

func firstN(s []string, n int) []string {
	if len(s) < n {
		return s
	}
	return s[:n]
}

func coveragePct(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
