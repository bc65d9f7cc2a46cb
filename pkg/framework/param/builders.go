package param

import (
	"fmt"
	"strings"
)

// Common parameter helpers

// GainParameter creates a standard gain parameter (-inf to +12dB)
func GainParameter(name string) *Builder {
	return NewFloat(name, -80, 12, 0).
		Unit(UnitDecibels).
		Formatter(func(v float64) string {
			if v <= -80 {
				return "-∞ dB"
			}
			return fmt.Sprintf("%.1f dB", v)
		}, func(s string) (float64, error) {
			if strings.Contains(strings.ToLower(s), "inf") || strings.Contains(s, "∞") {
				return -80, nil
			}
			return DecibelParser(s)
		})
}

// LinearGainParameter creates a gain parameter stored as a linear factor,
// with a cubed curve so the useful range gets most of the travel
func LinearGainParameter(name string, maxGain float64) *Builder {
	return NewFloat(name, 0, maxGain, 1).
		Unit(UnitLinearGain).
		Curve(Cubed)
}

// MixParameter creates a standard dry/wet parameter (0-100%)
func MixParameter(name string) *Builder {
	return NewFloat(name, 0, 100, 100).
		Unit(UnitDryWetMix)
}

// FrequencyParameter creates a standard frequency parameter with logarithmic scaling
func FrequencyParameter(name string, min, max, defaultVal float64) *Builder {
	return NewFloat(name, min, max, defaultVal).
		Unit(UnitHz).
		Curve(Log)
}

// TimeParameter creates a time parameter in milliseconds
func TimeParameter(name string, minMs, maxMs, defaultMs float64) *Builder {
	return NewFloat(name, minMs, maxMs, defaultMs).
		Unit(UnitMilliseconds).
		Curve(Squared)
}

// RatioParameter creates a compression/expansion ratio parameter
func RatioParameter(name string, minRatio, maxRatio, defaultRatio float64) *Builder {
	return NewFloat(name, minRatio, maxRatio, defaultRatio).
		Curve(Pow).
		CurveSpec(2).
		Formatter(func(v float64) string {
			if v >= 100 {
				return "∞:1"
			}
			return fmt.Sprintf("%.1f:1", v)
		}, func(s string) (float64, error) {
			s = strings.TrimSpace(strings.ToLower(s))
			if strings.Contains(s, "inf") || strings.Contains(s, "∞") {
				return 100, nil
			}
			return parseFloat(strings.TrimSpace(strings.TrimSuffix(s, ":1")))
		})
}

// PanParameter creates a stereo pan parameter (-1 left, +1 right)
func PanParameter(name string) *Builder {
	return NewFloat(name, -1, 1, 0).
		Unit(UnitPan)
}

// SemitonesParameter creates a transpose parameter in whole semitones
func SemitonesParameter(name string, span int64) *Builder {
	return NewInt(name, -span, span, 0).
		Unit(UnitSemitones)
}

// BypassParameter creates a bypass on/off switch
func BypassParameter(name string) *Builder {
	return NewBool(name, false).
		ValueStrings("Active", "Bypassed")
}

// Choice creates an indexed list parameter
func Choice(name string, options ...string) *Builder {
	return NewList(name, options...)
}

func parseFloat(s string) (float64, error) {
	var value float64
	_, err := fmt.Sscanf(s, "%f", &value)
	if err != nil {
		return 0, fmt.Errorf("invalid number: %s", s)
	}
	return value, nil
}
