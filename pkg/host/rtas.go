package host

import (
	"math"

	"github.com/justyntemme/dfxparam/pkg/framework/param"
)

// RTAS reserves control 1 for the master bypass, so plugin parameters start at 2.
const (
	RTASMasterBypassID    = 1
	RTASParameterIDOffset = RTASMasterBypassID + 1
)

// RTASShortNameLength is the length used for control short names.
const RTASShortNameLength = 4

const controlSpan = float64(math.MaxInt32) - float64(math.MinInt32)

// ParameterIDToRTAS converts a parameter index to an RTAS control index.
func ParameterIDToRTAS(index int) int { return index + RTASParameterIDOffset }

// ParameterIDFromRTAS converts an RTAS control index back to a parameter index.
func ParameterIDFromRTAS(control int) int { return control - RTASParameterIDOffset }

// GenericToControl maps a 0..1 value across the full int32 control range.
func GenericToControl(gen float64) int32 {
	gen = min(max(gen, 0), 1)
	return int32(math.Round(gen*controlSpan + math.MinInt32))
}

// ControlToGeneric maps an int32 control value back to 0..1.
func ControlToGeneric(control int32) float64 {
	return (float64(control) - math.MinInt32) / controlSpan
}

// ContinuousToControl contracts a real value through the parameter's curve into a control value.
func ContinuousToControl(p *param.Parameter, value float64) int32 {
	return GenericToControl(p.Contract(value))
}

// ControlToContinuous expands a control value through the parameter's curve.
func ControlToContinuous(p *param.Parameter, control int32) float64 {
	return p.Expand(ControlToGeneric(control))
}

// RTASShortName returns a name fitting an RTAS short name field.
func RTASShortName(p *param.Parameter) string {
	return p.NameFitting(RTASShortNameLength)
}
