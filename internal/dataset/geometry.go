package dataset

// BBox is a bounding box in normalized YOLO form: center plus size, all
// values expressed as fractions of the image dimensions.
type BBox struct {
	CX float64
	CY float64
	W  float64
	H  float64
}

// Area returns the normalized area of the box.
func (b BBox) Area() float64 { return b.W * b.H }

// corners converts center+size form to (x1, y1, x2, y2) corner form.
func (b BBox) corners() (x1, y1, x2, y2 float64) {
	return b.CX - b.W/2, b.CY - b.H/2, b.CX + b.W/2, b.CY + b.H/2
}

// CalculateIoU computes the Intersection-over-Union of two normalized boxes.
// Disjoint boxes yield exactly 0; identical boxes yield 1. Returns 0 when the
// union is zero, which cannot happen for boxes with positive size.
func CalculateIoU(a, b BBox) float64 {
	ax1, ay1, ax2, ay2 := a.corners()
	bx1, by1, bx2, by2 := b.corners()

	ix1 := max(ax1, bx1)
	iy1 := max(ay1, by1)
	ix2 := min(ax2, bx2)
	iy2 := min(ay2, by2)

	if ix2 < ix1 || iy2 < iy1 {
		return 0
	}

	intersection := (ix2 - ix1) * (iy2 - iy1)
	union := a.Area() + b.Area() - intersection
	if union <= 0 {
		return 0
	}
	return intersection / union
}
