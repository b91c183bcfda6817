package query

import "testing"

func TestSimplifyKeepsEndpoints(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4}
	y := []float64{0, 0.0001, 0, 0.0001, 0}
	mask := Simplify(x, y, DefaultEpsilon)
	if !mask[0] || !mask[len(mask)-1] {
		t.Fatal("endpoints must always be kept")
	}
}

func TestSimplifyRemovesNearlyCollinearPoint(t *testing.T) {
	// A point that lies almost exactly on the line between its
	// neighbors has near-zero effective area and should be dropped at a
	// generous epsilon.
	x := []float64{0, 1, 2}
	y := []float64{0, 0, 0}
	mask := Simplify(x, y, 1.0)
	if mask[1] {
		t.Fatal("collinear midpoint should be removed")
	}
}

func TestSimplifyPreservesSignificantPoint(t *testing.T) {
	x := []float64{0, 1, 2}
	y := []float64{0, 10, 0}
	mask := Simplify(x, y, DefaultEpsilon)
	if !mask[1] {
		t.Fatal("a point far off the baseline should be kept at default epsilon")
	}
}

func TestApplyMaskFiltersByIndex(t *testing.T) {
	vs := []int{1, 2, 3, 4}
	mask := []bool{true, false, true, false}
	got := ApplyMask(vs, mask)
	if len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Fatalf("ApplyMask = %v, want [1 3]", got)
	}
}
