package query

import "math"

// DefaultPrecision is the rounding precision applied to float vector
// columns in track responses (spec §4.15).
const DefaultPrecision = 1e-4

// RoundValue multiplies v by round(1/precision), rounds to the nearest
// integer, and divides back — spec §4.15's exact rounding rule. Integer
// and string columns pass through unrounded; callers only call this for
// float columns.
func RoundValue(v, precision float64) float64 {
	scale := math.Round(1 / precision)
	return math.Round(v*scale) / scale
}

// RoundSlice applies RoundValue to every element of vs.
func RoundSlice(vs []float64, precision float64) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = RoundValue(v, precision)
	}
	return out
}
