package host

import (
	"github.com/justyntemme/dfxparam/pkg/framework/param"
)

// AUUnit is an AudioUnitParameterUnit code.
type AUUnit uint32

const (
	AUUnitGeneric AUUnit = iota
	AUUnitIndexed
	AUUnitBoolean
	AUUnitPercent
	AUUnitSeconds
	AUUnitSampleFrames
	AUUnitPhase
	AUUnitRate
	AUUnitHertz
	AUUnitCents
	AUUnitRelativeSemiTones
	AUUnitMIDINoteNumber
	AUUnitMIDIController
	AUUnitDecibels
	AUUnitLinearGain
	AUUnitDegrees
	AUUnitEqualPowerCrossfade
	AUUnitMixerFaderCurve1
	AUUnitPan
	AUUnitMeters
	AUUnitAbsoluteCents
	AUUnitOctaves
	AUUnitBPM
	AUUnitBeats
	AUUnitMilliseconds
	AUUnitRatio
	AUUnitCustomUnit
)

// AUFlag is an AudioUnitParameterOptions bit.
type AUFlag uint32

const (
	AUFlagDisplaySquareRoot  AUFlag = 1 << 16
	AUFlagDisplaySquared     AUFlag = 2 << 16
	AUFlagDisplayCubed       AUFlag = 3 << 16
	AUFlagDisplayCubeRoot    AUFlag = 4 << 16
	AUFlagDisplayExponential AUFlag = 5 << 16
	AUFlagValuesHaveStrings  AUFlag = 1 << 21
	AUFlagDisplayLogarithmic AUFlag = 1 << 22
	AUFlagIsHighResolution   AUFlag = 1 << 23
	AUFlagHasName            AUFlag = 1 << 27
	AUFlagIsReadable         AUFlag = 1 << 30
	AUFlagIsWritable         AUFlag = 1 << 31
)

// AUNameLength is the usable size of the fixed C name field in AudioUnitParameterInfo.
const AUNameLength = 51

// AUParameterInfo mirrors the fields of AudioUnitParameterInfo a plugin fills in.
type AUParameterInfo struct {
	Name         string // fits AUNameLength
	FullName     string // untruncated
	Unit         AUUnit
	UnitName     string // only for AUUnitCustomUnit
	MinValue     float32
	MaxValue     float32
	DefaultValue float32
	Flags        AUFlag
}

var auCurveFlags = map[param.Curve]AUFlag{
	param.Log:        AUFlagDisplayLogarithmic,
	param.SquareRoot: AUFlagDisplaySquared,
	param.Squared:    AUFlagDisplaySquareRoot,
	param.Cubed:      AUFlagDisplayCubeRoot,
	param.Exp:        AUFlagDisplayExponential,
}

var auUnits = map[param.Unit]AUUnit{
	param.UnitPercent:      AUUnitPercent,
	param.UnitLinearGain:   AUUnitLinearGain,
	param.UnitDecibels:     AUUnitDecibels,
	param.UnitDryWetMix:    AUUnitEqualPowerCrossfade,
	param.UnitHz:           AUUnitHertz,
	param.UnitSeconds:      AUUnitSeconds,
	param.UnitMilliseconds: AUUnitMilliseconds,
	param.UnitSamples:      AUUnitSampleFrames,
	param.UnitScalar:       AUUnitRate,
	param.UnitDivisor:      AUUnitGeneric,
	param.UnitExponent:     AUUnitGeneric,
	param.UnitSemitones:    AUUnitRelativeSemiTones,
	param.UnitOctaves:      AUUnitOctaves,
	param.UnitCents:        AUUnitCents,
	param.UnitNotes:        AUUnitMIDINoteNumber,
	param.UnitPan:          AUUnitPan,
	param.UnitBPM:          AUUnitBPM,
	param.UnitBeats:        AUUnitBeats,
	param.UnitList:         AUUnitIndexed,
	param.UnitCustom:       AUUnitCustomUnit,
}

// NewAUParameterInfo describes p the way an Audio Unit reports it to a host.
func NewAUParameterInfo(p *param.Parameter) AUParameterInfo {
	info := AUParameterInfo{
		Name:         param.Truncate(p.Name(), AUNameLength),
		FullName:     p.FullName(),
		MinValue:     float32(p.MinFloat()),
		MaxValue:     float32(p.MaxFloat()),
		DefaultValue: float32(p.DefaultFloat()),
		Flags:        AUFlagHasName,
	}

	if !p.IsHidden() {
		info.Flags |= AUFlagIsReadable | AUFlagIsWritable
	}
	info.Flags |= auCurveFlags[p.Curve()]
	if p.ValueType() == param.Float {
		info.Flags |= AUFlagIsHighResolution
	}

	switch {
	case p.UseValueStrings():
		info.Unit = AUUnitIndexed
		info.Flags |= AUFlagValuesHaveStrings
	case p.Unit() == param.UnitGeneric:
		switch p.ValueType() {
		case param.Boolean:
			info.Unit = AUUnitBoolean
		case param.Int:
			info.Unit = AUUnitIndexed
		default:
			info.Unit = AUUnitGeneric
		}
	default:
		info.Unit = auUnits[p.Unit()]
		if info.Unit == AUUnitCustomUnit {
			info.UnitName = p.UnitString()
		}
	}
	return info
}
