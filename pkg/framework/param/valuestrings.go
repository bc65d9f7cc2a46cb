package param

import (
	"slices"

	"github.com/justyntemme/dfxparam/pkg/framework/debug"
)

// MaxValueStrings bounds the value-string array so a wide integer range cannot
// allocate without limit.
const MaxValueStrings = 1 << 16

// SetUseValueStrings allocates (or frees) one display string per integer value in
// [min, max]. Enabling it also enforces value limits so the index stays in bounds.
// Not safe to call concurrently with ValueString or SetValueString.
func (p *Parameter) SetUseValueStrings(use bool) {
	p.valueStrings = nil
	if !use {
		return
	}
	count := p.MaxInt() - p.MinInt() + 1
	if !debug.Assert(count > 0 && count <= MaxValueStrings,
		"parameter %q: cannot allocate %d value strings", p.name, count) {
		return
	}
	p.valueStrings = make([]string, count)
	p.SetEnforceValueLimits(true)
}

// UseValueStrings reports whether the parameter displays values through value strings.
func (p *Parameter) UseValueStrings() bool {
	return len(p.valueStrings) > 0
}

func (p *Parameter) valueStringIndexIsValid(index int64) bool {
	return p.UseValueStrings() && index >= p.MinInt() && index <= p.MaxInt()
}

// SetValueString sets the text shown for the value index.
// It returns false if value strings are off or index is outside [min, max].
func (p *Parameter) SetValueString(index int64, text string) bool {
	if !p.valueStringIndexIsValid(index) {
		return false
	}
	p.valueStrings[index-p.MinInt()] = Truncate(text, MaxValueStringLength)
	return true
}

// ValueString returns the text for the value index, if there is one.
func (p *Parameter) ValueString(index int64) (string, bool) {
	if !p.valueStringIndexIsValid(index) {
		return "", false
	}
	return p.valueStrings[index-p.MinInt()], true
}

// ValueStrings returns a copy of every value string, ordered from min to max.
func (p *Parameter) ValueStrings() []string {
	return slices.Clone(p.valueStrings)
}
