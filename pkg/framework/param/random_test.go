package param

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomizeStaysInRange(t *testing.T) {
	src := rand.New(rand.NewPCG(1, 2))

	f := FrequencyParameter("Cutoff", 20, 20000, 1000).Build()
	i := NewInt("Voices", 1, 8, 4).Build()
	b := NewBool("Freeze", false).Build()

	seen := map[int64]bool{}
	for n := 0; n < 500; n++ {
		v := Randomize(f, src)
		assert.GreaterOrEqual(t, v.Float(), 20.0-1e-9)
		assert.LessOrEqual(t, v.Float(), 20000.0+1e-6)

		v = Randomize(i, src)
		assert.Equal(t, Int, v.Type())
		assert.GreaterOrEqual(t, v.Int(), int64(1))
		assert.LessOrEqual(t, v.Int(), int64(8))
		seen[v.Int()] = true

		assert.Equal(t, Boolean, Randomize(b, src).Type())
	}
	assert.Len(t, seen, 8, "every integer value is reachable")
}

func TestRandomizeMarksChanged(t *testing.T) {
	p := NewInt("Fixed", 3, 3, 3).Build()
	p.SetChanged(false)
	p.SetTouched(false)

	v := Randomize(p, rand.New(rand.NewPCG(7, 7)))
	assert.Equal(t, IntValue(3), v)
	assert.True(t, p.Changed(), "randomizing marks a change even when the value is the same")
	assert.True(t, p.Touched())
}

type fixedSource float64

func (f fixedSource) Float64() float64   { return float64(f) }
func (fixedSource) Int64N(n int64) int64 { return n - 1 }

func TestRandomizeFullIntRange(t *testing.T) {
	p := NewInt("Seed", math.MinInt64, math.MaxInt64, 0).Build()
	require.Equal(t, int64(0), p.GetInt())

	v := Randomize(p, fixedSource(0.75))
	assert.Equal(t, int64(1)<<62, v.Int(), "drawn through the generic range")
	assert.Equal(t, v, p.Get())
}
