// Package param provides typed plugin parameters with curve-mapped generic access.
//
// A Parameter keeps its current value in one of three native types (float, int, boolean)
// and accepts or returns any of them, converting as needed. It can also be driven through
// a generic 0..1 value that is weighted by its distribution Curve. The current value and
// the changed/touched flags are atomics, so an audio thread and a UI thread may get and
// set concurrently. Everything else is configuration, set during Init and read afterwards.
package param

import (
	"math"
	"sync/atomic"

	"github.com/justyntemme/dfxparam/pkg/framework/debug"
)

// Length limits for text handed to hosts, which often have fixed-size buffers.
const (
	MaxNameLength        = 64
	MaxValueStringLength = 256
	MaxUnitStringLength  = 256
)

// Attribute is a bit mask of miscellaneous parameter properties.
type Attribute uint32

const (
	// AttributeHidden parameters are internal and not exposed to host automation.
	AttributeHidden Attribute = 1 << iota
	// AttributeUnused parameters are placeholders and are not revealed to anyone.
	AttributeUnused
	// AttributeOmitFromRandomizeAll parameters are skipped when randomizing every parameter.
	AttributeOmitFromRandomizeAll
)

// Parameter is a single plugin parameter. The zero value is uninitialized;
// call exactly one of the Init methods before using it.
type Parameter struct {
	name       string
	fullName   string // name before truncation to MaxNameLength
	shortNames []string // ascending by length

	valueType    ValueType
	value        atomic.Uint64 // payload bits of valueType
	defaultValue Value
	minValue     Value
	maxValue     Value

	unit             Unit
	customUnitString string
	curve            Curve
	curveSpec        float64
	attributes       Attribute

	enforceLimits atomic.Bool
	changed       atomic.Bool
	touched       atomic.Bool

	valueStrings []string

	formatFunc func(float64) string
	parseFunc  func(string) (float64, error)
}

// Init sets up the parameter. initial, def, min and max must share one value type,
// which becomes the native type. Names must have distinct lengths; the longest is the
// full name and the others are used when a host asks for something shorter.
//
// A reversed min/max is swapped, and a default outside the range is moved to the
// middle of the range. Boolean and UnitList parameters always enforce their limits.
func (p *Parameter) Init(names []string, initial, def, min, max Value, unit Unit, curve Curve) {
	if !debug.Assert(!p.Initialized(), "parameter %q initialized twice", p.name) {
		return
	}
	if !debug.Assert(len(names) > 0, "parameter initialized without a name") {
		return
	}
	typ := initial.Type()
	debug.Assert(typ.Valid(), "invalid value type %v", typ)
	debug.Assert(def.Type() == typ && min.Type() == typ && max.Type() == typ,
		"parameter %v: mismatched init value types %v/%v/%v/%v", names, initial.Type(), def.Type(), min.Type(), max.Type())
	debug.Assert(initial.IsFinite() && def.IsFinite() && min.IsFinite() && max.IsFinite(),
		"parameter %v: non-finite init value", names)

	p.initNames(names)
	p.valueType = typ
	p.unit = unit
	p.curve = curve
	p.curveSpec = DefaultCurveSpec

	def, min, max = def.As(typ), min.As(typ), max.As(typ)
	switch typ {
	case Int:
		if min.Int() > max.Int() {
			min, max = max, min
		}
		if def.Int() < min.Int() || def.Int() > max.Int() {
			def = IntValue((max.Int()-min.Int())/2 + min.Int())
		}
	case Boolean:
		min, max = BoolValue(false), BoolValue(true)
	default:
		if min.Float() > max.Float() {
			min, max = max, min
		}
		if def.Float() < min.Float() || def.Float() > max.Float() {
			def = FloatValue((max.Float()-min.Float())*0.5 + min.Float())
		}
	}
	p.defaultValue, p.minValue, p.maxValue = def, min, max

	if typ == Boolean || unit == UnitList {
		p.enforceLimits.Store(true)
	}

	bits := initial.As(typ).Bits()
	if p.enforceLimits.Load() {
		bits = p.clamp(bits)
	}
	p.value.Store(bits)
	p.changed.Store(true)
}

// InitFloat initializes a float parameter.
func (p *Parameter) InitFloat(names []string, initial, def, min, max float64, unit Unit, curve Curve) {
	p.Init(names, FloatValue(initial), FloatValue(def), FloatValue(min), FloatValue(max), unit, curve)
}

// InitInt initializes an integer parameter. Integer parameters usually want the Stepped curve.
func (p *Parameter) InitInt(names []string, initial, def, min, max int64, unit Unit, curve Curve) {
	p.Init(names, IntValue(initial), IntValue(def), IntValue(min), IntValue(max), unit, curve)
}

// InitBool initializes a boolean parameter.
func (p *Parameter) InitBool(names []string, initial, def bool, unit Unit) {
	p.Init(names, BoolValue(initial), BoolValue(def), BoolValue(false), BoolValue(true), unit, Linear)
}

// InitList initializes an integer parameter indexing numItems value strings.
func (p *Parameter) InitList(names []string, initial, def, numItems int64, unit Unit) {
	p.InitInt(names, initial, def, 0, numItems-1, unit, Stepped)
	p.SetUseValueStrings(true)
}

// Initialized reports whether one of the Init methods has run.
func (p *Parameter) Initialized() bool {
	return p.name != ""
}

// ValueType returns the native value type.
func (p *Parameter) ValueType() ValueType { return p.valueType }

// Get returns the current value in the native type.
func (p *Parameter) Get() Value {
	return Value{typ: p.valueType, bits: p.value.Load()}
}

func (p *Parameter) GetFloat() float64 { return p.Get().Float() }
func (p *Parameter) GetInt() int64 { return p.Get().Int() }
func (p *Parameter) GetBool() bool { return p.Get().Bool() }

func (p *Parameter) Min() Value { return p.minValue }
func (p *Parameter) MinFloat() float64 { return p.minValue.Float() }
func (p *Parameter) MinInt() int64 { return p.minValue.Int() }
func (p *Parameter) Max() Value { return p.maxValue }
func (p *Parameter) MaxFloat() float64 { return p.maxValue.Float() }
func (p *Parameter) MaxInt() int64 { return p.maxValue.Int() }
func (p *Parameter) Default() Value { return p.defaultValue }
func (p *Parameter) DefaultFloat() float64 { return p.defaultValue.Float() }
func (p *Parameter) DefaultInt() int64 { return p.defaultValue.Int() }
func (p *Parameter) DefaultBool() bool { return p.defaultValue.Bool() }

// PackFloat converts f into a Value of the native type.
func (p *Parameter) PackFloat(f float64) Value { return FloatValue(f).As(p.valueType) }

// PackInt converts i into a Value of the native type.
func (p *Parameter) PackInt(i int64) Value { return IntValue(i).As(p.valueType) }

// PackBool converts b into a Value of the native type.
func (p *Parameter) PackBool(b bool) Value { return BoolValue(b).As(p.valueType) }

// Set replaces the current value, converting v to the native type and limiting it if
// limits are enforced. Changed is raised only if the stored value differs; touched always is.
func (p *Parameter) Set(v Value) {
	if !debug.Assert(v.IsFinite(), "parameter %q: non-finite value %v", p.name, v) {
		return
	}
	p.store(v.As(p.valueType).Bits())
}

func (p *Parameter) SetFloat(f float64) { p.Set(FloatValue(f)) }
func (p *Parameter) SetInt(i int64) { p.Set(IntValue(i)) }
func (p *Parameter) SetBool(b bool) { p.Set(BoolValue(b)) }

// SetFloatQuietly converts and stores f without limiting and without raising changed or touched.
// It is meant for a plugin writing back state it generated itself.
func (p *Parameter) SetFloatQuietly(f float64) {
	if !debug.Assert(!math.IsNaN(f) && !math.IsInf(f, 0), "parameter %q: non-finite value %v", p.name, f) {
		return
	}
	p.value.Store(p.PackFloat(f).Bits())
}

func (p *Parameter) SetIntQuietly(i int64) { p.value.Store(p.PackInt(i).Bits()) }
func (p *Parameter) SetBoolQuietly(b bool) { p.value.Store(p.PackBool(b).Bits()) }

func (p *Parameter) store(bits uint64) {
	if p.enforceLimits.Load() {
		bits = p.clamp(bits)
	}
	// a single swap tells us whether this write changed anything
	if old := p.value.Swap(bits); old != bits && !p.sameFloat(old, bits) {
		p.changed.Store(true)
	}
	p.touched.Store(true)
}

// sameFloat reports whether two Float payloads compare equal, as -0 and +0 do.
func (p *Parameter) sameFloat(a, b uint64) bool {
	return p.valueType == Float && math.Float64frombits(a) == math.Float64frombits(b)
}

// Expand maps a generic 0..1 value into this parameter's range using its curve.
func (p *Parameter) Expand(gen float64) float64 {
	return Expand(gen, p.MinFloat(), p.MaxFloat(), p.curve, p.curveSpec)
}

// Contract maps a real value in this parameter's range to a generic 0..1 value.
func (p *Parameter) Contract(value float64) float64 {
	return Contract(value, p.MinFloat(), p.MaxFloat(), p.curve, p.curveSpec)
}

// GetGeneric returns the current value contracted to 0..1.
func (p *Parameter) GetGeneric() float64 {
	return p.Contract(p.GetFloat())
}

// SetGeneric sets the current value from a generic 0..1 value.
func (p *Parameter) SetGeneric(gen float64) {
	p.SetFloat(p.Expand(gen))
}

// SetEnforceValueLimits turns range limiting on or off. Turning it on clamps the
// current value immediately. Boolean parameters cannot turn it off.
func (p *Parameter) SetEnforceValueLimits(enforce bool) {
	if !enforce && !debug.Assert(p.valueType != Boolean, "parameter %q: boolean parameters always enforce limits", p.name) {
		return
	}
	p.enforceLimits.Store(enforce)
	if enforce {
		p.limit()
	}
}

// EnforceValueLimits reports whether values are clamped into [min, max].
func (p *Parameter) EnforceValueLimits() bool {
	return p.enforceLimits.Load()
}

// limit clamps the current value and reports whether it moved.
func (p *Parameter) limit() bool {
	if !p.enforceLimits.Load() {
		return false
	}
	for {
		old := p.value.Load()
		clamped := p.clamp(old)
		if clamped == old {
			return false
		}
		if p.value.CompareAndSwap(old, clamped) {
			p.changed.Store(true)
			p.touched.Store(true)
			return true
		}
	}
}

func (p *Parameter) clamp(bits uint64) uint64 {
	switch p.valueType {
	case Int:
		return uint64(min(max(int64(bits), p.minValue.Int()), p.maxValue.Int()))
	case Boolean:
		return bits
	default:
		f := math.Float64frombits(bits)
		return math.Float64bits(min(max(f, p.minValue.Float()), p.maxValue.Float()))
	}
}

// Changed reports whether the value changed since the flag was last cleared.
func (p *Parameter) Changed() bool { return p.changed.Load() }

// SetChanged stores the changed flag and returns its previous state,
// so SetChanged(false) reads and clears it in one step.
func (p *Parameter) SetChanged(changed bool) bool { return p.changed.Swap(changed) }

// Touched reports whether the value was set at all, whether or not it differed.
func (p *Parameter) Touched() bool { return p.touched.Load() }

// SetTouched stores the touched flag and returns its previous state.
func (p *Parameter) SetTouched(touched bool) bool { return p.touched.Swap(touched) }

func (p *Parameter) Unit() Unit { return p.unit }

// UnitString returns the display label for the parameter's unit.
func (p *Parameter) UnitString() string {
	if p.unit == UnitCustom {
		return p.customUnitString
	}
	return p.unit.DisplayString()
}

// SetCustomUnitString sets the label shown for UnitCustom.
func (p *Parameter) SetCustomUnitString(text string) {
	p.customUnitString = Truncate(text, MaxUnitStringLength)
}

func (p *Parameter) Curve() Curve { return p.curve }
func (p *Parameter) SetCurve(curve Curve) { p.curve = curve }
func (p *Parameter) CurveSpec() float64 { return p.curveSpec }
func (p *Parameter) SetCurveSpec(spec float64) { p.curveSpec = spec }

func (p *Parameter) Attributes() Attribute { return p.attributes }
func (p *Parameter) SetAttributes(flags Attribute) { p.attributes = flags }
func (p *Parameter) AddAttributes(flags Attribute) { p.attributes |= flags }
func (p *Parameter) RemoveAttributes(flags Attribute) { p.attributes &^= flags }
func (p *Parameter) HasAttributes(flags Attribute) bool { return p.attributes&flags == flags }

// IsHidden reports whether the parameter is hidden or unused.
func (p *Parameter) IsHidden() bool { return p.attributes&(AttributeHidden|AttributeUnused) != 0 }
