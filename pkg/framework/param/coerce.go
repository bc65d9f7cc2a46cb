package param

import "math"

// IntegerPadding is added (or subtracted, for negative values) before truncating
// a float to an integer, so that 2.9999999 lands on 3 rather than 2.
const IntegerPadding = 0.001

// floatEpsilon is DBL_EPSILON.
const floatEpsilon = 0x1p-52

// FloatToInt interprets a float as an integer using IntegerPadding.
func FloatToInt(x float64) int64 {
	if x < 0 {
		return int64(x - IntegerPadding)
	}
	return int64(x + IntegerPadding)
}

// FloatToBool reports whether x is meaningfully non-zero.
func FloatToBool(x float64) bool {
	return math.Abs(x) > floatEpsilon
}

// IntToBool reports whether x is non-zero.
func IntToBool(x int64) bool {
	return x != 0
}

// BoolToFloat returns 1 for true and 0 for false.
func BoolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// BoolToInt returns 1 for true and 0 for false.
func BoolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// SqrtSafe is math.Sqrt with negative input clamped to zero.
func SqrtSafe(x float64) float64 {
	return math.Sqrt(math.Max(x, 0))
}

// PowSafe is math.Pow with a negative base clamped to zero.
func PowSafe(base, exp float64) float64 {
	return math.Pow(math.Max(base, 0), exp)
}

// LogSafe is math.Log with input clamped to the smallest positive float64,
// so it never yields -Inf or NaN.
func LogSafe(x float64) float64 {
	return math.Log(math.Max(x, math.SmallestNonzeroFloat64))
}
