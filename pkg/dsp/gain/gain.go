// Package gain provides decibel conversion and block gain operations.
package gain

import (
	"math"

	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/floats"
)

// DbToLinear converts decibels to linear amplitude. Anything at or below
// floor is treated as silence.
func DbToLinear(db, floor float64) float64 {
	if db <= floor {
		return 0
	}
	return math.Pow(10, db/20)
}

// LinearToDb converts linear amplitude to decibels, never returning less than floor.
func LinearToDb(linear, floor float64) float64 {
	if linear <= 0 {
		return floor
	}
	return max(20*math.Log10(linear), floor)
}

// Apply writes src scaled by a fixed gain to dst.
func Apply(dst, src []float64, gain float64) {
	f64.Scale(dst, src, gain)
}

// Ramp writes src multiplied sample by sample with gains to dst.
// All three slices must have the same length.
func Ramp(dst, src, gains []float64) {
	floats.MulTo(dst, src, gains)
}

// DryWet blends dry and wet into dst. mix is the wet fraction in [0, 1].
func DryWet(dst, dry, wet []float64, mix float64) {
	f64.Scale(dst, dry, 1-mix)
	floats.AddScaled(dst, mix, wet)
}
