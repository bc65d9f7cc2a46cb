package param

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFloatParam(t *testing.T, initial, def, min, max float64, curve Curve) *Parameter {
	t.Helper()
	p := &Parameter{}
	p.InitFloat([]string{"Test"}, initial, def, min, max, UnitGeneric, curve)
	require.True(t, p.Initialized())
	return p
}

func TestParameterInit(t *testing.T) {
	t.Run("SwapsReversedRange", func(t *testing.T) {
		p := newFloatParam(t, 0.5, 0.5, 1, 0, Linear)
		assert.Equal(t, 0.0, p.MinFloat())
		assert.Equal(t, 1.0, p.MaxFloat())

		var q Parameter
		q.InitInt([]string{"Steps"}, 3, 3, 10, 2, UnitGeneric, Stepped)
		assert.Equal(t, int64(2), q.MinInt())
		assert.Equal(t, int64(10), q.MaxInt())
	})

	t.Run("RecentersDefault", func(t *testing.T) {
		p := newFloatParam(t, 0, 50, -10, 10, Linear)
		assert.Equal(t, 0.0, p.DefaultFloat())

		p = newFloatParam(t, 0, -11, 0, 10, Linear)
		assert.Equal(t, 5.0, p.DefaultFloat(), "default is moved to the middle, not the nearest edge")

		var q Parameter
		q.InitInt([]string{"Steps"}, 0, 99, 0, 9, UnitGeneric, Stepped)
		assert.Equal(t, int64(4), q.DefaultInt())
	})

	t.Run("InitialValue", func(t *testing.T) {
		p := newFloatParam(t, 0.25, 0.5, 0, 1, Linear)
		assert.Equal(t, Float, p.ValueType())
		assert.Equal(t, 0.25, p.GetFloat())
		assert.True(t, p.Changed(), "a fresh parameter reports a change")
		assert.False(t, p.Touched())
		assert.False(t, p.EnforceValueLimits())
	})

	t.Run("Boolean", func(t *testing.T) {
		var p Parameter
		p.InitBool([]string{"Bypass"}, true, false, UnitGeneric)
		assert.Equal(t, Boolean, p.ValueType())
		assert.True(t, p.GetBool())
		assert.False(t, p.DefaultBool())
		assert.True(t, p.EnforceValueLimits())
		assert.False(t, p.Min().Bool())
		assert.True(t, p.Max().Bool())
	})

	t.Run("ListEnforcesLimits", func(t *testing.T) {
		var p Parameter
		p.InitList([]string{"Mode"}, 7, 0, 3, UnitList)
		assert.True(t, p.EnforceValueLimits())
		assert.True(t, p.UseValueStrings())
		assert.Equal(t, int64(2), p.GetInt(), "initial value is clamped")
		assert.Equal(t, Stepped, p.Curve())
	})
}

func TestParameterChangedFlag(t *testing.T) {
	p := newFloatParam(t, 0.5, 0.5, 0, 1, Linear)
	p.SetChanged(false)

	p.SetFloat(0.5)
	assert.False(t, p.Changed(), "setting the same value is not a change")
	assert.True(t, p.Touched(), "but it is a touch")

	p.SetFloat(0.75)
	assert.True(t, p.SetChanged(false))
	assert.False(t, p.SetChanged(false))

	assert.True(t, p.SetTouched(false))
	assert.False(t, p.Touched())
}

func TestParameterSignedZeroIsNotAChange(t *testing.T) {
	p := newFloatParam(t, 0, 0, -1, 1, Linear)
	p.SetChanged(false)

	p.SetFloat(math.Copysign(0, -1))
	assert.False(t, p.Changed(), "-0 equals +0")
	assert.True(t, p.Touched())

	p.SetFloat(0.25)
	assert.True(t, p.Changed())
}

func TestParameterSetCoerces(t *testing.T) {
	var p Parameter
	p.InitInt([]string{"Voices"}, 1, 1, 1, 16, UnitGeneric, Stepped)

	p.SetFloat(2.9999999)
	assert.Equal(t, int64(3), p.GetInt())
	assert.Equal(t, Int, p.Get().Type())

	p.SetBool(true)
	assert.Equal(t, int64(1), p.GetInt())

	p.Set(FloatValue(-4.2))
	assert.Equal(t, int64(-4), p.GetInt(), "limits are not enforced by default")
}

func TestParameterEnforceLimits(t *testing.T) {
	p := newFloatParam(t, 0.5, 0.5, 0, 1, Linear)
	p.SetFloat(3)
	assert.Equal(t, 3.0, p.GetFloat())

	p.SetChanged(false)
	p.SetTouched(false)
	p.SetEnforceValueLimits(true)
	assert.Equal(t, 1.0, p.GetFloat(), "turning limits on clamps immediately")
	assert.True(t, p.Changed())
	assert.True(t, p.Touched())

	p.SetFloat(-2)
	assert.Equal(t, 0.0, p.GetFloat())

	p.SetEnforceValueLimits(false)
	p.SetFloat(-2)
	assert.Equal(t, -2.0, p.GetFloat())
}

func TestParameterQuietSetters(t *testing.T) {
	p := newFloatParam(t, 0.5, 0.5, 0, 1, Linear)
	p.SetEnforceValueLimits(true)
	p.SetChanged(false)
	p.SetTouched(false)

	p.SetFloatQuietly(0.9)
	p.SetIntQuietly(5)
	assert.Equal(t, 5.0, p.GetFloat(), "quiet setters do not limit")
	assert.False(t, p.Changed())
	assert.False(t, p.Touched())

	p.SetBoolQuietly(false)
	assert.Equal(t, 0.0, p.GetFloat())
}

func TestParameterGeneric(t *testing.T) {
	p := newFloatParam(t, 0.5, 0.5, 0, 1, Pow)
	p.SetCurveSpec(2)

	p.SetGeneric(0.5)
	assert.InDelta(t, 0.5, p.GetGeneric(), 1e-5)
	assert.InDelta(t, 0.25, p.GetFloat(), 1e-12)

	f := &Parameter{}
	f.InitFloat([]string{"Cutoff"}, 1000, 1000, 20, 20000, UnitHz, Log)
	f.SetGeneric(0)
	assert.InDelta(t, 20, f.GetFloat(), 1e-9)
	f.SetGeneric(1)
	assert.InDelta(t, 20000, f.GetFloat(), 1e-6)
}

func TestParameterPack(t *testing.T) {
	var p Parameter
	p.InitInt([]string{"Steps"}, 0, 0, 0, 9, UnitGeneric, Stepped)

	assert.Equal(t, IntValue(3), p.PackFloat(2.9999))
	assert.Equal(t, IntValue(1), p.PackBool(true))
	assert.Equal(t, IntValue(-8), p.PackInt(-8))
}

func TestParameterUnitString(t *testing.T) {
	var p Parameter
	p.InitFloat([]string{"Gain"}, 0, 0, -60, 6, UnitDecibels, Linear)
	assert.Equal(t, "dB", p.UnitString())

	var c Parameter
	c.InitFloat([]string{"Wobble"}, 0, 0, 0, 1, UnitCustom, Linear)
	assert.Equal(t, "", c.UnitString())
	c.SetCustomUnitString("wobbles")
	assert.Equal(t, "wobbles", c.UnitString())

	long := make([]byte, MaxUnitStringLength+40)
	for i := range long {
		long[i] = 'x'
	}
	c.SetCustomUnitString(string(long))
	assert.Len(t, c.UnitString(), MaxUnitStringLength)
}

func TestParameterAttributes(t *testing.T) {
	p := newFloatParam(t, 0, 0, 0, 1, Linear)
	assert.False(t, p.IsHidden())

	p.AddAttributes(AttributeUnused | AttributeOmitFromRandomizeAll)
	assert.True(t, p.IsHidden())
	assert.True(t, p.HasAttributes(AttributeOmitFromRandomizeAll))

	p.RemoveAttributes(AttributeUnused)
	assert.False(t, p.IsHidden())
	assert.Equal(t, AttributeOmitFromRandomizeAll, p.Attributes())
}

func TestParameterConcurrentAccess(t *testing.T) {
	p := newFloatParam(t, 1.5, 0, -10, 10, Linear)
	values := [...]float64{1.5, -2.25}

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				p.SetFloat(values[(i+w)%2])
			}
		}(w)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	for {
		select {
		case <-done:
			assert.Contains(t, values[:], p.GetFloat())
			return
		default:
			got := p.GetFloat()
			if got != values[0] && got != values[1] {
				t.Fatalf("observed torn value %v", got)
			}
			p.SetChanged(false)
		}
	}
}
