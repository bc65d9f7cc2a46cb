package param

// RandomSource supplies random numbers to Randomize. *rand.Rand from math/rand/v2 satisfies it.
type RandomSource interface {
	Float64() float64
	Int64N(n int64) int64
}

// Randomize sets p to a random value and returns it.
// Float values are drawn through the generic range, so the curve weights the distribution;
// integers are uniform over [min, max]. The parameter is marked changed and touched.
func Randomize(p *Parameter, src RandomSource) Value {
	switch p.ValueType() {
	case Int:
		if span := p.MaxInt() - p.MinInt() + 1; span > 0 {
			p.SetInt(src.Int64N(span) + p.MinInt())
		} else {
			// the span overflows int64
			p.SetGeneric(src.Float64())
		}
	case Boolean:
		p.SetBool(src.Int64N(2) == 1)
	default:
		p.SetGeneric(src.Float64())
	}

	p.SetChanged(true)
	p.SetTouched(true)
	return p.Get()
}
