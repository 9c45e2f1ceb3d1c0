package dataset

import (
	"math"
	"testing"
)

func TestCalculateIoU_IdenticalBoxes(t *testing.T) {
	b := BBox{CX: 0.5, CY: 0.5, W: 0.2, H: 0.2}
	if iou := CalculateIoU(b, b); math.Abs(iou-1.0) > 1e-9 {
		t.Errorf("IoU of identical boxes = %v, want 1.0", iou)
	}
}

func TestCalculateIoU_DisjointBoxes(t *testing.T) {
	tests := []struct {
		name string
		a, b BBox
	}{
		{
			name: "separated horizontally",
			a:    BBox{CX: 0.2, CY: 0.5, W: 0.1, H: 0.1},
			b:    BBox{CX: 0.8, CY: 0.5, W: 0.1, H: 0.1},
		},
		{
			name: "separated vertically",
			a:    BBox{CX: 0.5, CY: 0.1, W: 0.1, H: 0.1},
			b:    BBox{CX: 0.5, CY: 0.9, W: 0.1, H: 0.1},
		},
		{
			name: "diagonal corners",
			a:    BBox{CX: 0.1, CY: 0.1, W: 0.1, H: 0.1},
			b:    BBox{CX: 0.9, CY: 0.9, W: 0.1, H: 0.1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if iou := CalculateIoU(tt.a, tt.b); iou != 0 {
				t.Errorf("IoU of disjoint boxes = %v, want 0", iou)
			}
		})
	}
}

func TestCalculateIoU_Symmetric(t *testing.T) {
	a := BBox{CX: 0.5, CY: 0.5, W: 0.3, H: 0.2}
	b := BBox{CX: 0.55, CY: 0.52, W: 0.25, H: 0.3}

	if CalculateIoU(a, b) != CalculateIoU(b, a) {
		t.Errorf("IoU not symmetric: %v vs %v", CalculateIoU(a, b), CalculateIoU(b, a))
	}
}

func TestCalculateIoU_NearDuplicates(t *testing.T) {
	// The overlap-detector scenario: slightly shifted copies overlap well
	// above the 0.5 threshold.
	a := BBox{CX: 0.5, CY: 0.5, W: 0.2, H: 0.2}
	b := BBox{CX: 0.52, CY: 0.52, W: 0.2, H: 0.2}

	iou := CalculateIoU(a, b)
	if iou <= 0.5 {
		t.Errorf("IoU of near-duplicate boxes = %v, want > 0.5", iou)
	}
	if iou >= 1 {
		t.Errorf("IoU of shifted boxes = %v, want < 1", iou)
	}
}

func TestCalculateIoU_TouchingEdges(t *testing.T) {
	// Boxes sharing only an edge have zero intersection area.
	a := BBox{CX: 0.25, CY: 0.5, W: 0.5, H: 0.5}
	b := BBox{CX: 0.75, CY: 0.5, W: 0.5, H: 0.5}

	if iou := CalculateIoU(a, b); iou != 0 {
		t.Errorf("IoU of edge-touching boxes = %v, want 0", iou)
	}
}

func TestCalculateIoU_ContainedBox(t *testing.T) {
	outer := BBox{CX: 0.5, CY: 0.5, W: 0.4, H: 0.4}
	inner := BBox{CX: 0.5, CY: 0.5, W: 0.2, H: 0.2}

	want := inner.Area() / outer.Area()
	if iou := CalculateIoU(outer, inner); math.Abs(iou-want) > 1e-9 {
		t.Errorf("IoU of contained box = %v, want %v", iou, want)
	}
}

func TestBBoxArea(t *testing.T) {
	b := BBox{CX: 0.5, CY: 0.5, W: 0.25, H: 0.4}
	if got := b.Area(); math.Abs(got-0.1) > 1e-9 {
		t.Errorf("Area = %v, want 0.1", got)
	}
}
