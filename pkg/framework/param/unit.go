package param

import (
	"fmt"
	"strings"
)

// Unit classifies what a parameter's values measure. It only drives display text.
type Unit uint8

const (
	UnitGeneric Unit = iota
	UnitPercent      // typically 0-100
	UnitLinearGain
	UnitDecibels
	UnitDryWetMix // typically 0-100
	UnitHz
	UnitSeconds
	UnitMilliseconds
	UnitSamples
	UnitScalar
	UnitDivisor
	UnitExponent
	UnitSemitones
	UnitOctaves
	UnitCents
	UnitNotes
	UnitPan // typically -1 to +1
	UnitBPM
	UnitBeats
	// UnitList marks a value that indexes into an array.
	UnitList
	// UnitCustom displays the parameter's custom unit string.
	UnitCustom
)

var unitInfo = [...]struct {
	name    string
	display string
}{
	UnitGeneric:      {"generic", ""},
	UnitPercent:      {"percent", "%"},
	UnitLinearGain:   {"lineargain", ""},
	UnitDecibels:     {"decibels", "dB"},
	UnitDryWetMix:    {"drywetmix", ""},
	UnitHz:           {"hz", "Hz"},
	UnitSeconds:      {"seconds", "seconds"},
	UnitMilliseconds: {"ms", "ms"},
	UnitSamples:      {"samples", "samples"},
	UnitScalar:       {"scalar", ""},
	UnitDivisor:      {"divisor", ""},
	UnitExponent:     {"exponent", "exponent"},
	UnitSemitones:    {"semitones", "semitones"},
	UnitOctaves:      {"octaves", "octaves"},
	UnitCents:        {"cents", "cents"},
	UnitNotes:        {"notes", ""},
	UnitPan:          {"pan", ""},
	UnitBPM:          {"bpm", "bpm"},
	UnitBeats:        {"beats", "per beat"},
	UnitList:         {"list", ""},
	UnitCustom:       {"custom", ""},
}

func (u Unit) String() string {
	if int(u) < len(unitInfo) {
		return unitInfo[u].name
	}
	return fmt.Sprintf("Unit(%d)", uint8(u))
}

// DisplayString is the fixed label for the unit. UnitCustom has none of its own.
func (u Unit) DisplayString() string {
	if int(u) < len(unitInfo) {
		return unitInfo[u].display
	}
	return ""
}

// ParseUnit looks up a unit by its String name.
func ParseUnit(s string) (Unit, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, info := range unitInfo {
		if info.name == s {
			return Unit(i), nil
		}
	}
	return UnitGeneric, fmt.Errorf("unknown unit: %q", s)
}
