// Package dataset implements pre-flight validation for YOLO-pose training
// datasets: directory structure, data.yaml schema, per-label-line semantics
// and pairwise bounding-box overlap.
package dataset

// Category is a closed classification of validation findings. Callers assert
// on the category rather than parsing message text.
type Category string

const (
	CategoryStructure     Category = "structure"
	CategoryConfig        Category = "config"
	CategoryMissingLabels Category = "missing_labels"
	CategoryOrphanLabels  Category = "orphan_labels"
	CategoryReadError     Category = "read_error"
	CategoryFormat        Category = "format"
	CategoryClass         Category = "class"
	CategoryBBoxCenter    Category = "bbox_center"
	CategoryBBoxSize      Category = "bbox_size"
	CategoryBBoxParse     Category = "bbox_parse"
	CategoryKptCount      Category = "kpt_count"
	CategoryKptCoords     Category = "kpt_coords"
	CategoryKptVisibility Category = "kpt_visibility"
	CategoryKptOrder      Category = "kpt_order"
	CategoryOverlap       Category = "overlap"
)

// Severity separates findings that block training from advisory ones.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Diagnostic is a single validation finding.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Category Category `json:"category"`
	Message  string   `json:"message"`
}

func (d Diagnostic) String() string { return d.Message }

// CategorySet collects the distinct issue categories found in one label file.
type CategorySet map[Category]struct{}

// NewCategorySet builds a set from the given categories.
func NewCategorySet(cats ...Category) CategorySet {
	s := make(CategorySet, len(cats))
	for _, c := range cats {
		s.Add(c)
	}
	return s
}

// Add records a category in the set.
func (s CategorySet) Add(c Category) { s[c] = struct{}{} }

// Has reports whether the category is present.
func (s CategorySet) Has(c Category) bool {
	_, ok := s[c]
	return ok
}

// Merge folds the other set into this one.
func (s CategorySet) Merge(other CategorySet) {
	for c := range other {
		s[c] = struct{}{}
	}
}

// Empty reports whether no categories were recorded.
func (s CategorySet) Empty() bool { return len(s) == 0 }
