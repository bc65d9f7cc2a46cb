package param

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Common value formatters and parsers, selected by unit when a parameter has none of its own.

// FrequencyFormatter formats frequency values with Hz/kHz
func FrequencyFormatter(hz float64) string {
	if hz >= 1000 {
		return fmt.Sprintf("%.2f kHz", hz/1000)
	}
	return fmt.Sprintf("%.1f Hz", hz)
}

// FrequencyParser parses frequency strings
func FrequencyParser(str string) (float64, error) {
	str = strings.TrimSpace(str)

	if strings.HasSuffix(str, "kHz") || strings.HasSuffix(str, "khz") {
		numStr := strings.TrimSuffix(strings.TrimSuffix(str, "kHz"), "khz")
		val, err := strconv.ParseFloat(strings.TrimSpace(numStr), 64)
		if err != nil {
			return 0, err
		}
		return val * 1000, nil
	}

	str = strings.TrimSuffix(strings.TrimSuffix(str, "Hz"), "hz")
	return strconv.ParseFloat(strings.TrimSpace(str), 64)
}

// DecibelFormatter formats dB values
func DecibelFormatter(db float64) string {
	if db <= -96 {
		return "-∞ dB"
	}
	return fmt.Sprintf("%.1f dB", db)
}

// DecibelParser parses dB strings
func DecibelParser(str string) (float64, error) {
	if strings.Contains(str, "∞") || strings.Contains(strings.ToLower(str), "inf") {
		return -96.0, nil
	}
	str = strings.TrimSuffix(strings.TrimSpace(str), "dB")
	str = strings.TrimSuffix(strings.TrimSpace(str), "db")
	return strconv.ParseFloat(strings.TrimSpace(str), 64)
}

// PercentFormatter formats percentage values
func PercentFormatter(value float64) string {
	return fmt.Sprintf("%.0f%%", value)
}

// PercentParser parses percentage strings
func PercentParser(str string) (float64, error) {
	str = strings.TrimSuffix(strings.TrimSpace(str), "%")
	return strconv.ParseFloat(strings.TrimSpace(str), 64)
}

// MillisecondsFormatter formats millisecond values, switching to seconds above 1000
func MillisecondsFormatter(ms float64) string {
	if ms >= 1000 {
		return fmt.Sprintf("%.2f s", ms/1000)
	}
	return fmt.Sprintf("%.1f ms", ms)
}

// MillisecondsParser parses "12 ms" or "1.5 s" into milliseconds
func MillisecondsParser(str string) (float64, error) {
	str = strings.TrimSpace(strings.ToLower(str))

	if strings.HasSuffix(str, "s") && !strings.HasSuffix(str, "ms") {
		val, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(str, "s")), 64)
		if err != nil {
			return 0, err
		}
		return val * 1000, nil
	}

	str = strings.TrimSuffix(str, "ms")
	return strconv.ParseFloat(strings.TrimSpace(str), 64)
}

// PanFormatter formats a -1..+1 pan position
func PanFormatter(pan float64) string {
	if math.Abs(pan) < 0.01 {
		return "C"
	} else if pan < 0 {
		return fmt.Sprintf("%.0fL", -pan*100)
	}
	return fmt.Sprintf("%.0fR", pan*100)
}

// PanParser parses pan position strings
func PanParser(str string) (float64, error) {
	str = strings.ToUpper(strings.TrimSpace(str))

	if str == "C" || str == "CENTER" {
		return 0, nil
	}
	if numStr, ok := strings.CutSuffix(str, "L"); ok {
		val, err := strconv.ParseFloat(strings.TrimSpace(numStr), 64)
		if err != nil {
			return 0, err
		}
		return -val / 100, nil
	}
	if numStr, ok := strings.CutSuffix(str, "R"); ok {
		val, err := strconv.ParseFloat(strings.TrimSpace(numStr), 64)
		if err != nil {
			return 0, err
		}
		return val / 100, nil
	}
	return strconv.ParseFloat(str, 64)
}

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteFormatter formats MIDI note numbers
func NoteFormatter(noteNumber float64) string {
	n := int(FloatToInt(noteNumber))
	if n < 0 {
		return strconv.Itoa(n)
	}
	return fmt.Sprintf("%s%d", noteNames[n%12], n/12-1)
}

// SetFormatter overrides how float values are displayed and parsed.
// Either function may be nil to keep the unit's default.
func (p *Parameter) SetFormatter(format func(float64) string, parse func(string) (float64, error)) {
	p.formatFunc = format
	p.parseFunc = parse
}

func (p *Parameter) formatter() func(float64) string {
	if p.formatFunc != nil {
		return p.formatFunc
	}
	switch p.unit {
	case UnitHz:
		return FrequencyFormatter
	case UnitDecibels:
		return DecibelFormatter
	case UnitPercent, UnitDryWetMix:
		return PercentFormatter
	case UnitMilliseconds:
		return MillisecondsFormatter
	case UnitPan:
		return PanFormatter
	case UnitNotes:
		return NoteFormatter
	}
	return nil
}

func (p *Parameter) parser() func(string) (float64, error) {
	if p.parseFunc != nil {
		return p.parseFunc
	}
	switch p.unit {
	case UnitHz:
		return FrequencyParser
	case UnitDecibels:
		return DecibelParser
	case UnitPercent, UnitDryWetMix:
		return PercentParser
	case UnitMilliseconds:
		return MillisecondsParser
	case UnitPan:
		return PanParser
	}
	return nil
}

// DisplayString formats the current value for display.
func (p *Parameter) DisplayString() string {
	return p.FormatValue(p.Get())
}

// FormatValue formats v as this parameter would display it: its value string if it
// has one, otherwise a number with the unit label.
func (p *Parameter) FormatValue(v Value) string {
	v = v.As(p.valueType)
	if s, ok := p.ValueString(v.Int()); ok && s != "" {
		return s
	}
	if p.valueType == Boolean {
		if v.Bool() {
			return "on"
		}
		return "off"
	}
	if format := p.formatter(); format != nil {
		return format(v.Float())
	}

	var text string
	if p.valueType == Int {
		text = strconv.FormatInt(v.Int(), 10)
	} else {
		text = strconv.FormatFloat(v.Float(), 'f', 3, 64)
	}
	if unit := p.UnitString(); unit != "" {
		text += " " + unit
	}
	return text
}

// ParseValue converts display text back into a native-typed Value.
// Value strings match case-insensitively before any numeric parsing.
func (p *Parameter) ParseValue(text string) (Value, error) {
	trimmed := strings.TrimSpace(text)
	for i, s := range p.valueStrings {
		if s != "" && strings.EqualFold(s, trimmed) {
			return p.PackInt(p.MinInt() + int64(i)), nil
		}
	}

	if p.valueType == Boolean {
		switch strings.ToLower(trimmed) {
		case "on", "true", "yes", "1":
			return BoolValue(true), nil
		case "off", "false", "no", "0":
			return BoolValue(false), nil
		}
		return Value{}, fmt.Errorf("parameter %q: cannot parse %q as boolean", p.name, text)
	}

	var (
		f   float64
		err error
	)
	if parse := p.parser(); parse != nil {
		f, err = parse(trimmed)
	} else {
		trimmed = strings.TrimSpace(strings.TrimSuffix(trimmed, p.UnitString()))
		f, err = strconv.ParseFloat(trimmed, 64)
	}
	if err != nil {
		return Value{}, fmt.Errorf("parameter %q: cannot parse %q: %w", p.name, text, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}, fmt.Errorf("parameter %q: non-finite value %q", p.name, text)
	}
	return p.PackFloat(f), nil
}
