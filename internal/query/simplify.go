package query

import "math"

// DefaultEpsilon is the effective-area threshold Visvalingam-Whyatt
// simplification uses by default, in degrees² (spec §4.15).
const DefaultEpsilon = 1e-4

// triangleArea returns the unsigned area of the triangle (a, b, c), half
// the magnitude of the cross product: the effective area VW assigns b.
func triangleArea(ax, ay, bx, by, cx, cy float64) float64 {
	return math.Abs((bx-ax)*(cy-ay)-(cx-ax)*(by-ay)) / 2
}

// Simplify runs Visvalingam-Whyatt on the (x, y) polyline and returns a
// boolean mask the same length as x/y: true for points to keep. The
// first and last points are always kept. epsilon is the effective-area
// threshold below which a point is eligible for removal.
func Simplify(x, y []float64, epsilon float64) []bool {
	n := len(x)
	keep := make([]bool, n)
	for i := range keep {
		keep[i] = true
	}
	if n <= 2 {
		return keep
	}

	// area[i] is the effective area of point i among currently-kept
	// points; recomputed lazily as neighbors are removed.
	area := make([]float64, n)
	area[0] = math.Inf(1)
	area[n-1] = math.Inf(1)

	prev := make([]int, n)
	next := make([]int, n)
	for i := range prev {
		prev[i] = i - 1
		next[i] = i + 1
	}

	computeArea := func(i int) float64 {
		if i == 0 || i == n-1 {
			return math.Inf(1)
		}
		p, nx := prev[i], next[i]
		return triangleArea(x[p], y[p], x[i], y[i], x[nx], y[nx])
	}
	for i := 1; i < n-1; i++ {
		area[i] = computeArea(i)
	}

	for {
		minIdx := -1
		minArea := math.Inf(1)
		for i := 1; i < n-1; i++ {
			if keep[i] && area[i] < minArea {
				minArea = area[i]
				minIdx = i
			}
		}
		if minIdx == -1 || minArea >= epsilon {
			break
		}

		keep[minIdx] = false
		p, nx := prev[minIdx], next[minIdx]
		next[p] = nx
		prev[nx] = p
		if p != 0 {
			area[p] = computeArea(p)
		}
		if nx != n-1 {
			area[nx] = computeArea(nx)
		}
	}

	return keep
}

// ApplyMask filters vs to the entries where mask is true, preserving
// order. Used to keep every vector column in a track consistent after
// Simplify (spec §4.15: "apply that mask to every vector column").
func ApplyMask[T any](vs []T, mask []bool) []T {
	out := make([]T, 0, len(vs))
	for i, v := range vs {
		if i < len(mask) && mask[i] {
			out = append(out, v)
		}
	}
	return out
}
