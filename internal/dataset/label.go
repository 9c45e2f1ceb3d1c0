package dataset

import (
	"path/filepath"
	"strconv"
	"strings"
)

// Field counts for the two accepted label line forms: bbox only, or bbox plus
// four (x, y, visibility) keypoint triples.
const (
	bboxFieldCount = 5
	poseFieldCount = 17
	keypointCount  = 4
	keypointValues = 12
)

// Keypoint order convention: top-left, top-right, bottom-right, bottom-left.
const (
	kptTopLeft = iota
	kptTopRight
	kptBottomRight
	kptBottomLeft
)

// fileResult is the outcome of validating one label file.
type fileResult struct {
	issues        CategorySet
	boxes         []BBox
	instances     int
	poseInstances int
}

// ValidateLabelFile validates one label file and returns the set of issue
// categories found; an empty set means the file is fully valid. Diagnostics
// for each finding are recorded on the validator.
func (v *Validator) ValidateLabelFile(path string, numClasses int, split string) CategorySet {
	return v.checkLabelFile(path, numClasses, split).issues
}

func (v *Validator) checkLabelFile(path string, numClasses int, split string) fileResult {
	res := fileResult{issues: NewCategorySet()}
	name := filepath.Base(path)

	data, err := v.fs.ReadFile(path)
	if err != nil {
		v.addError(CategoryReadError, "%s/%s: failed to read file: %v", split, name, err)
		res.issues.Add(CategoryReadError)
		return res
	}

	var lines []string
	for _, raw := range strings.Split(string(data), "\n") {
		if trimmed := strings.TrimSpace(raw); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}

	// An empty file is a valid image with zero instances.
	if len(lines) == 0 {
		return res
	}

	for lineNum, line := range lines {
		fields := strings.Fields(line)

		if len(fields) != bboxFieldCount && len(fields) != poseFieldCount {
			v.addError(CategoryFormat,
				"%s/%s:%d - invalid format: expected 5 (bbox) or 17 (bbox+pose) values, got %d",
				split, name, lineNum+1, len(fields))
			res.issues.Add(CategoryFormat)
			continue
		}

		res.instances++
		if len(fields) == poseFieldCount {
			res.poseInstances++
		}

		v.checkClassID(fields[0], numClasses, split, name, lineNum+1, res.issues)

		if box, ok := v.checkBBox(fields[1:5], split, name, lineNum+1, res.issues); ok {
			res.boxes = append(res.boxes, box)
		}

		if len(fields) == poseFieldCount {
			v.checkKeypoints(fields[5:], split, name, lineNum+1, res.issues)
		}
	}

	if len(lines) > 1 {
		res.issues.Merge(v.checkOverlaps(res.boxes, name, split))
	}

	return res
}

// checkClassID validates the class id field: an integer in [0, numClasses).
func (v *Validator) checkClassID(field string, numClasses int, split, name string, line int, issues CategorySet) {
	classID, err := strconv.Atoi(field)
	if err != nil {
		v.addError(CategoryClass,
			"%s/%s:%d - class id must be integer, got: %s", split, name, line, field)
		issues.Add(CategoryClass)
		return
	}
	if classID < 0 || classID >= numClasses {
		v.addError(CategoryClass,
			"%s/%s:%d - invalid class id: %d (must be 0-%d)",
			split, name, line, classID, numClasses-1)
		issues.Add(CategoryClass)
	}
}

// checkBBox validates the four bbox fields and returns the parsed box when
// all four parse, even if a range check failed; overlap detection only needs
// geometry, not validity.
func (v *Validator) checkBBox(fields []string, split, name string, line int, issues CategorySet) (BBox, bool) {
	vals := make([]float64, len(fields))
	for i, f := range fields {
		parsed, err := strconv.ParseFloat(f, 64)
		if err != nil {
			v.addError(CategoryBBoxParse,
				"%s/%s:%d - invalid bbox coordinates: %q", split, name, line, f)
			issues.Add(CategoryBBoxParse)
			return BBox{}, false
		}
		vals[i] = parsed
	}

	box := BBox{CX: vals[0], CY: vals[1], W: vals[2], H: vals[3]}

	if box.CX < 0 || box.CX > 1 || box.CY < 0 || box.CY > 1 {
		v.addError(CategoryBBoxCenter,
			"%s/%s:%d - bbox center out of range: x=%.3f, y=%.3f (must be 0-1)",
			split, name, line, box.CX, box.CY)
		issues.Add(CategoryBBoxCenter)
	}

	if box.W <= 0 || box.W > 1 || box.H <= 0 || box.H > 1 {
		v.addError(CategoryBBoxSize,
			"%s/%s:%d - bbox size invalid: w=%.3f, h=%.3f (must be 0-1, >0)",
			split, name, line, box.W, box.H)
		issues.Add(CategoryBBoxSize)
	}

	return box, true
}

// checkKeypoints validates the 12 trailing keypoint fields of a pose line.
func (v *Validator) checkKeypoints(fields []string, split, name string, line int, issues CategorySet) {
	kpts := make([]float64, 0, keypointValues)
	for _, f := range fields {
		parsed, err := strconv.ParseFloat(f, 64)
		if err != nil {
			v.addError(CategoryKptCount,
				"%s/%s:%d - invalid keypoint data: %q", split, name, line, f)
			issues.Add(CategoryKptCount)
			return
		}
		kpts = append(kpts, parsed)
	}
	if len(kpts) != keypointValues {
		v.addError(CategoryKptCount,
			"%s/%s:%d - invalid keypoint count: %d values (expected %d)",
			split, name, line, len(kpts), keypointValues)
		issues.Add(CategoryKptCount)
		return
	}

	for i := 0; i < keypointCount; i++ {
		kx := kpts[i*3]
		ky := kpts[i*3+1]
		kv := kpts[i*3+2]

		if kx < 0 || kx > 1 || ky < 0 || ky > 1 {
			v.addError(CategoryKptCoords,
				"%s/%s:%d - keypoint %d out of range: (%.3f, %.3f)",
				split, name, line, i, kx, ky)
			issues.Add(CategoryKptCoords)
		}

		if kv != 0 && kv != 1 {
			v.addError(CategoryKptVisibility,
				"%s/%s:%d - keypoint %d invalid visibility: %g (must be 0 or 1)",
				split, name, line, i, kv)
			issues.Add(CategoryKptVisibility)
		}
	}

	// Weak ordering heuristic: the top-right corner should sit to the right
	// of the top-left. It will not catch swapped bottom corners.
	if kpts[kptTopRight*3] < kpts[kptTopLeft*3] {
		v.addWarning(CategoryKptOrder,
			"%s/%s:%d - keypoint order suspicious: TR not right of TL",
			split, name, line)
		issues.Add(CategoryKptOrder)
	}
}

// checkOverlaps scans all unordered box pairs and warns on any pair with
// IoU above 0.5. Indices in the message are 1-based over the parsed boxes.
func (v *Validator) checkOverlaps(boxes []BBox, name, split string) CategorySet {
	issues := NewCategorySet()
	for i := 0; i < len(boxes); i++ {
		for j := i + 1; j < len(boxes); j++ {
			iou := CalculateIoU(boxes[i], boxes[j])
			if iou > 0.5 {
				v.addWarning(CategoryOverlap,
					"%s/%s - high overlap (%.0f%%) between instances %d and %d - verify not duplicate",
					split, name, iou*100, i+1, j+1)
				issues.Add(CategoryOverlap)
			}
		}
	}
	return issues
}
