package param

// Builder provides a fluent API for initializing parameters
type Builder struct {
	names        []string
	initial      Value
	hasInitial   bool
	def          Value
	min          Value
	max          Value
	unit         Unit
	curve        Curve
	curveSpec    float64
	customUnit   string
	attributes   Attribute
	enforce      bool
	valueStrings []string
	formatFunc   func(float64) string
	parseFunc    func(string) (float64, error)
}

// NewFloat starts a float parameter with a linear curve
func NewFloat(name string, min, max, def float64) *Builder {
	return &Builder{
		names:     []string{name},
		def:       FloatValue(def),
		min:       FloatValue(min),
		max:       FloatValue(max),
		curve:     Linear,
		curveSpec: DefaultCurveSpec,
	}
}

// NewInt starts an integer parameter with a stepped curve
func NewInt(name string, min, max, def int64) *Builder {
	return &Builder{
		names:     []string{name},
		def:       IntValue(def),
		min:       IntValue(min),
		max:       IntValue(max),
		curve:     Stepped,
		curveSpec: DefaultCurveSpec,
	}
}

// NewBool starts a boolean switch
func NewBool(name string, def bool) *Builder {
	return &Builder{
		names:     []string{name},
		def:       BoolValue(def),
		min:       BoolValue(false),
		max:       BoolValue(true),
		curve:     Linear,
		curveSpec: DefaultCurveSpec,
	}
}

// NewList starts an indexed list parameter, one value string per item
func NewList(name string, items ...string) *Builder {
	b := NewInt(name, 0, int64(len(items))-1, 0)
	b.unit = UnitList
	b.valueStrings = items
	return b
}

// ShortNames adds alternate names for hosts with short name fields
func (b *Builder) ShortNames(names ...string) *Builder {
	b.names = append(b.names, names...)
	return b
}

// Initial sets the starting value; by default the parameter starts at its default
func (b *Builder) Initial(v Value) *Builder {
	b.initial = v
	b.hasInitial = true
	return b
}

// Default replaces the default value, converted to the builder's type
func (b *Builder) Default(v Value) *Builder {
	b.def = v.As(b.def.Type())
	return b
}

// Unit sets the unit
func (b *Builder) Unit(unit Unit) *Builder {
	b.unit = unit
	return b
}

// CustomUnit sets UnitCustom with the given label
func (b *Builder) CustomUnit(label string) *Builder {
	b.unit = UnitCustom
	b.customUnit = label
	return b
}

// Curve sets the value distribution curve
func (b *Builder) Curve(curve Curve) *Builder {
	b.curve = curve
	return b
}

// CurveSpec sets the exponent used by the Pow curve
func (b *Builder) CurveSpec(spec float64) *Builder {
	b.curveSpec = spec
	return b
}

// Attributes adds attribute flags
func (b *Builder) Attributes(flags Attribute) *Builder {
	b.attributes |= flags
	return b
}

// Hidden marks the parameter as hidden
func (b *Builder) Hidden() *Builder {
	return b.Attributes(AttributeHidden)
}

// EnforceLimits clamps every set into [min, max]
func (b *Builder) EnforceLimits() *Builder {
	b.enforce = true
	return b
}

// ValueStrings sets display strings for the integer values starting at min
func (b *Builder) ValueStrings(items ...string) *Builder {
	b.valueStrings = items
	return b
}

// Formatter sets custom value formatting and parsing
func (b *Builder) Formatter(format func(float64) string, parse func(string) (float64, error)) *Builder {
	b.formatFunc = format
	b.parseFunc = parse
	return b
}

// Init initializes p from the builder
func (b *Builder) Init(p *Parameter) {
	initial := b.def
	if b.hasInitial {
		initial = b.initial.As(b.def.Type())
	}
	p.Init(b.names, initial, b.def, b.min, b.max, b.unit, b.curve)
	if !p.Initialized() {
		return
	}

	p.SetCurveSpec(b.curveSpec)
	p.SetAttributes(b.attributes)
	if b.customUnit != "" {
		p.SetCustomUnitString(b.customUnit)
	}
	if b.enforce {
		p.SetEnforceValueLimits(true)
	}
	if len(b.valueStrings) > 0 {
		p.SetUseValueStrings(true)
		for i, s := range b.valueStrings {
			p.SetValueString(p.MinInt()+int64(i), s)
		}
	}
	p.SetFormatter(b.formatFunc, b.parseFunc)
}

// Build returns a newly initialized parameter
func (b *Builder) Build() *Parameter {
	p := &Parameter{}
	b.Init(p)
	return p
}
