// Package preset holds named snapshots of parameter values.
package preset

import (
	"github.com/justyntemme/dfxparam/pkg/framework/param"
)

// MaxNameLength bounds preset names, in bytes.
const MaxNameLength = 64

// Preset is a name plus one Value per parameter index.
// It does no synchronization of its own.
type Preset struct {
	name   string
	values []param.Value
}

// New creates an unnamed preset holding numParameters zero values.
func New(numParameters int) *Preset {
	return &Preset{values: make([]param.Value, max(numParameters, 0))}
}

// Len returns the number of parameter slots.
func (p *Preset) Len() int { return len(p.values) }

// SetValue stores v for parameter index. Out-of-range indexes are ignored.
func (p *Preset) SetValue(index int, v param.Value) {
	if index >= 0 && index < len(p.values) {
		p.values[index] = v
	}
}

// Value returns the stored value for parameter index, or the zero Value when out of range.
func (p *Preset) Value(index int) param.Value {
	if index >= 0 && index < len(p.values) {
		return p.values[index]
	}
	return param.Value{}
}

// SetName sets the name, truncated to MaxNameLength.
func (p *Preset) SetName(name string) {
	p.name = param.Truncate(name, MaxNameLength)
}

func (p *Preset) Name() string { return p.name }
