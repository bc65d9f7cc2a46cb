package param

import (
	"fmt"
	"math"
	"strings"
)

// Curve is the distribution of values along a control, used when mapping
// between a generic 0..1 value and the real parameter range.
type Curve uint8

const (
	Linear Curve = iota
	// Stepped expands to whole numbers only.
	Stepped
	SquareRoot
	Squared
	Cubed
	// Pow uses the curve spec as its exponent.
	Pow
	Exp
	// Log requires a positive minimum.
	Log
)

// DefaultCurveSpec is the curve spec used when none is given.
const DefaultCurveSpec = 1.0

var curveNames = [...]string{
	Linear:     "linear",
	Stepped:    "stepped",
	SquareRoot: "sqrt",
	Squared:    "squared",
	Cubed:      "cubed",
	Pow:        "pow",
	Exp:        "exp",
	Log:        "log",
}

func (c Curve) String() string {
	if int(c) < len(curveNames) {
		return curveNames[c]
	}
	return fmt.Sprintf("Curve(%d)", uint8(c))
}

// ParseCurve looks up a curve by its String name.
func ParseCurve(s string) (Curve, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range curveNames {
		if name == s {
			return Curve(i), nil
		}
	}
	return Linear, fmt.Errorf("unknown curve: %q", s)
}

var logTwo = math.Log(2)

// Expand weights a generic 0..1 value by the curve and scales it into [min, max].
// A zero range, or a non-positive minimum for Log, is not guarded and yields NaN or Inf.
func Expand(gen, min, max float64, curve Curve, curveSpec float64) float64 {
	valueRange := max - min

	switch curve {
	case Stepped:
		return float64(FloatToInt(gen*valueRange + min))
	case SquareRoot:
		return SqrtSafe(gen)*valueRange + min
	case Squared:
		return gen*gen*valueRange + min
	case Cubed:
		return gen*gen*gen*valueRange + min
	case Pow:
		return PowSafe(gen, curveSpec)*valueRange + min
	case Exp:
		return math.Exp(LogSafe(valueRange+1)*gen) + min - 1
	case Log:
		return min * math.Pow(2, gen*LogSafe(max/min)/logTwo)
	default:
		return gen*valueRange + min
	}
}

// Contract maps a real value in [min, max] back to a generic 0..1 value, undoing the curve weighting.
//
// SquareRoot is the exception: it applies the same weighting as Expand rather than its inverse.
// Stored presets depend on that, so it is kept.
func Contract(value, min, max float64, curve Curve, curveSpec float64) float64 {
	valueRange := max - min

	switch curve {
	case SquareRoot:
		return SqrtSafe(value)*valueRange + min
	case Squared:
		return SqrtSafe((value - min) / valueRange)
	case Cubed:
		return PowSafe((value-min)/valueRange, 1.0/3.0)
	case Pow:
		return PowSafe((value-min)/valueRange, 1/curveSpec)
	case Exp:
		return LogSafe(1-min+value) / LogSafe(1-min+max)
	case Log:
		return (LogSafe(value/min) / logTwo) / (LogSafe(max/min) / logTwo)
	default:
		// Linear and Stepped
		return (value - min) / valueRange
	}
}
