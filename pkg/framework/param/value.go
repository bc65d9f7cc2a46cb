package param

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ValueType is the variable type a parameter declares as its native type.
type ValueType uint8

const (
	Float ValueType = iota
	Int
	Boolean
)

// String returns the name of the value type.
func (t ValueType) String() string {
	switch t {
	case Float:
		return "float"
	case Int:
		return "int"
	case Boolean:
		return "boolean"
	default:
		return fmt.Sprintf("ValueType(%d)", uint8(t))
	}
}

// Valid reports whether t is one of the known value types.
func (t ValueType) Valid() bool {
	return t <= Boolean
}

// Value holds exactly one of float64, int64 or bool.
// The payload is a single 64-bit word whose interpretation depends on the type tag,
// which is what lets a parameter store its current value in an atomic.Uint64.
// The zero Value is Float 0.
type Value struct {
	typ  ValueType
	bits uint64
}

// FloatValue returns a Float-typed Value.
func FloatValue(f float64) Value {
	return Value{typ: Float, bits: math.Float64bits(f)}
}

// IntValue returns an Int-typed Value.
func IntValue(i int64) Value {
	return Value{typ: Int, bits: uint64(i)}
}

// BoolValue returns a Boolean-typed Value.
func BoolValue(b bool) Value {
	return Value{typ: Boolean, bits: uint64(BoolToInt(b))}
}

// ValueFromBits rebuilds a Value from its type tag and payload word.
func ValueFromBits(t ValueType, bits uint64) Value {
	if t == Boolean && bits != 0 {
		bits = 1
	}
	return Value{typ: t, bits: bits}
}

// Type returns the active representation.
func (v Value) Type() ValueType { return v.typ }

// Bits returns the payload word.
func (v Value) Bits() uint64 { return v.bits }

// Float derives the value as a float64, converting if the stored type differs.
func (v Value) Float() float64 {
	switch v.typ {
	case Int:
		return float64(int64(v.bits))
	case Boolean:
		return BoolToFloat(v.bits != 0)
	default:
		return math.Float64frombits(v.bits)
	}
}

// Int derives the value as an int64, converting if the stored type differs.
func (v Value) Int() int64 {
	switch v.typ {
	case Int:
		return int64(v.bits)
	case Boolean:
		return BoolToInt(v.bits != 0)
	default:
		return FloatToInt(math.Float64frombits(v.bits))
	}
}

// Bool derives the value as a bool, converting if the stored type differs.
func (v Value) Bool() bool {
	switch v.typ {
	case Int:
		return IntToBool(int64(v.bits))
	case Boolean:
		return v.bits != 0
	default:
		return FloatToBool(math.Float64frombits(v.bits))
	}
}

// As converts v into the given type using the derive rules.
func (v Value) As(t ValueType) Value {
	if v.typ == t {
		return v
	}
	switch t {
	case Int:
		return IntValue(v.Int())
	case Boolean:
		return BoolValue(v.Bool())
	default:
		return FloatValue(v.Float())
	}
}

// IsFinite reports false only for a Float holding NaN or an infinity.
func (v Value) IsFinite() bool {
	if v.typ != Float {
		return true
	}
	f := math.Float64frombits(v.bits)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// String formats the value according to its type.
func (v Value) String() string {
	switch v.typ {
	case Int:
		return strconv.FormatInt(int64(v.bits), 10)
	case Boolean:
		return strconv.FormatBool(v.bits != 0)
	default:
		return formatFloatLiteral(math.Float64frombits(v.bits))
	}
}

// formatFloatLiteral always includes a decimal point or exponent so the text
// cannot be mistaken for an integer.
func formatFloatLiteral(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if strings.ContainsAny(s, ".eEnN") {
		return s
	}
	return s + ".0"
}

// MarshalYAML encodes the value as a scalar with an explicit type tag.
func (v Value) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.ScalarNode, Value: v.String()}
	switch v.typ {
	case Int:
		node.Tag = "!!int"
	case Boolean:
		node.Tag = "!!bool"
	default:
		if !v.IsFinite() {
			return nil, fmt.Errorf("cannot encode non-finite value %s", v)
		}
		node.Tag = "!!float"
	}
	return node, nil
}

// UnmarshalYAML decodes a scalar using its resolved or explicit tag.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: parameter value must be a scalar", node.Line)
	}
	switch node.ShortTag() {
	case "!!int":
		i, err := strconv.ParseInt(node.Value, 0, 64)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*v = IntValue(i)
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return err
		}
		*v = BoolValue(b)
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return err
		}
		fv := FloatValue(f)
		if !fv.IsFinite() {
			return fmt.Errorf("line %d: non-finite parameter value %q", node.Line, node.Value)
		}
		*v = fv
	default:
		return fmt.Errorf("line %d: unsupported parameter value %q (%s)", node.Line, node.Value, node.ShortTag())
	}
	return nil
}
