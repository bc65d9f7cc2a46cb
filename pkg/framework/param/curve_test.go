package param

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats/scalar"
)

const curveTolerance = 1e-5

func TestCurveRoundTrip(t *testing.T) {
	tests := []struct {
		curve    Curve
		min, max float64
		spec     float64
	}{
		{Linear, -10, 30, DefaultCurveSpec},
		{Squared, 0, 1, DefaultCurveSpec},
		{Squared, -24, 24, DefaultCurveSpec},
		{Cubed, 0, 4, DefaultCurveSpec},
		{Pow, 0, 1, 2},
		{Pow, 1, 100, 0.35},
		{Exp, 0, 1000, DefaultCurveSpec},
		{Exp, 20, 200, DefaultCurveSpec},
		{Log, 20, 20000, DefaultCurveSpec},
		{Log, 0.01, 1, DefaultCurveSpec},
	}

	for _, tt := range tests {
		t.Run(tt.curve.String(), func(t *testing.T) {
			for i := 0; i <= 100; i++ {
				gen := float64(i) / 100
				expanded := Expand(gen, tt.min, tt.max, tt.curve, tt.spec)
				back := Contract(expanded, tt.min, tt.max, tt.curve, tt.spec)
				assert.True(t, scalar.EqualWithinAbs(gen, back, curveTolerance),
					"contract(expand(%v)) = %v over [%v, %v]", gen, back, tt.min, tt.max)

				v := tt.min + (tt.max-tt.min)*gen
				again := Expand(Contract(v, tt.min, tt.max, tt.curve, tt.spec), tt.min, tt.max, tt.curve, tt.spec)
				assert.True(t, scalar.EqualWithinAbs(v, again, curveTolerance*math.Max(1, math.Abs(v))),
					"expand(contract(%v)) = %v", v, again)
			}
		})
	}
}

func TestCurveEndpoints(t *testing.T) {
	for _, c := range []Curve{Linear, Stepped, Squared, Cubed, Pow, Exp, Log} {
		assert.InDelta(t, 20.0, Expand(0, 20, 20000, c, 2), curveTolerance, c.String())
		assert.InDelta(t, 20000.0, Expand(1, 20, 20000, c, 2), 1e-6, c.String())
	}
}

func TestSteppedCurve(t *testing.T) {
	for v := int64(-3); v <= 7; v++ {
		gen := Contract(float64(v), -3, 7, Stepped, DefaultCurveSpec)
		assert.Equal(t, float64(v), Expand(gen, -3, 7, Stepped, DefaultCurveSpec))
	}
	// values between steps fall to a whole number
	assert.Equal(t, 2.0, Expand(0.25, 0, 10, Stepped, DefaultCurveSpec))
}

func TestSquareRootCurveIsNotInverse(t *testing.T) {
	assert.InDelta(t, 0.5, Expand(0.25, 0, 1, SquareRoot, DefaultCurveSpec), 1e-12)
	assert.InDelta(t, math.Sqrt(0.5), Contract(0.5, 0, 1, SquareRoot, DefaultCurveSpec), 1e-12)

	// the contract weighting is applied to the raw value, then scaled into the range again
	assert.InDelta(t, 20.0, Contract(4, 0, 10, SquareRoot, DefaultCurveSpec), 1e-12)
	assert.InDelta(t, 5.0, Expand(0.25, 0, 10, SquareRoot, DefaultCurveSpec), 1e-12)
}

func TestDegenerateRangePropagates(t *testing.T) {
	assert.True(t, math.IsNaN(Contract(1, 1, 1, Linear, DefaultCurveSpec)))
	assert.True(t, math.IsNaN(Contract(5, 0, 10, Log, DefaultCurveSpec)))
}

func TestParseCurve(t *testing.T) {
	for c := Linear; c <= Log; c++ {
		got, err := ParseCurve(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	got, err := ParseCurve(" Log ")
	require.NoError(t, err)
	assert.Equal(t, Log, got)

	_, err = ParseCurve("sigmoid")
	assert.Error(t, err)
}
