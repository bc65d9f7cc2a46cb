// Package host converts parameter values and metadata into the forms plugin hosts expect.
// It covers only the numeric and string conversions; the host ABIs themselves live elsewhere.
package host

import (
	"strconv"

	"github.com/justyntemme/dfxparam/pkg/framework/param"
)

// VSTMaxParamStrLen is the VST 2 limit for parameter names, labels and display text.
const VSTMaxParamStrLen = 8

// VSTGetParameter returns the parameter's generic value, which is what VST hosts automate.
func VSTGetParameter(p *param.Parameter) float32 {
	return float32(p.GetGeneric())
}

// VSTSetParameter sets the parameter from a host's generic value.
func VSTSetParameter(p *param.Parameter, value float32) {
	p.SetGeneric(float64(value))
}

// VSTParameterName returns the most descriptive name that fits the VST buffer.
func VSTParameterName(p *param.Parameter) string {
	return p.NameFitting(VSTMaxParamStrLen)
}

// VSTParameterLabel returns the unit label cut to the VST buffer.
func VSTParameterLabel(p *param.Parameter) string {
	return param.Truncate(p.UnitString(), VSTMaxParamStrLen)
}

// VSTParameterDisplay returns the value text: the value string if the parameter uses them,
// otherwise "%.3f" for floats, the integer, or on/off.
func VSTParameterDisplay(p *param.Parameter) string {
	var text string
	if p.UseValueStrings() {
		text, _ = p.ValueString(p.GetInt())
	} else {
		switch p.ValueType() {
		case param.Int:
			text = strconv.FormatInt(p.GetInt(), 10)
		case param.Boolean:
			text = "off"
			if p.GetBool() {
				text = "on"
			}
		default:
			text = strconv.FormatFloat(p.GetFloat(), 'f', 3, 64)
		}
	}
	return param.Truncate(text, VSTMaxParamStrLen)
}
