package param

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatters(t *testing.T) {
	tests := []struct {
		name   string
		format func(float64) string
		value  float64
		want   string
	}{
		{"hz", FrequencyFormatter, 440, "440.0 Hz"},
		{"khz", FrequencyFormatter, 2500, "2.50 kHz"},
		{"db", DecibelFormatter, -6.02, "-6.0 dB"},
		{"db floor", DecibelFormatter, -120, "-∞ dB"},
		{"percent", PercentFormatter, 42.4, "42%"},
		{"ms", MillisecondsFormatter, 12.5, "12.5 ms"},
		{"seconds", MillisecondsFormatter, 1500, "1.50 s"},
		{"center", PanFormatter, 0.001, "C"},
		{"left", PanFormatter, -0.5, "50L"},
		{"right", PanFormatter, 1, "100R"},
		{"note", NoteFormatter, 60, "C4"},
		{"note sharp", NoteFormatter, 70, "A#4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.format(tt.value))
		})
	}
}

func TestParsers(t *testing.T) {
	tests := []struct {
		name  string
		parse func(string) (float64, error)
		input string
		want  float64
	}{
		{"hz", FrequencyParser, "440 Hz", 440},
		{"khz", FrequencyParser, "2.5kHz", 2500},
		{"db", DecibelParser, "-6 dB", -6},
		{"db inf", DecibelParser, "-inf", -96},
		{"percent", PercentParser, "75%", 75},
		{"ms", MillisecondsParser, "20 ms", 20},
		{"seconds", MillisecondsParser, "1.5 s", 1500},
		{"center", PanParser, "center", 0},
		{"left", PanParser, "25L", -0.25},
		{"right", PanParser, "100R", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.parse(tt.input)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}

	_, err := FrequencyParser("loud")
	assert.Error(t, err)
}

func TestDisplayString(t *testing.T) {
	t.Run("Plain", func(t *testing.T) {
		var p Parameter
		p.InitFloat([]string{"Depth"}, 0.5, 0.5, 0, 1, UnitGeneric, Linear)
		assert.Equal(t, "0.500", p.DisplayString())
	})

	t.Run("UnitLabel", func(t *testing.T) {
		var p Parameter
		p.InitInt([]string{"Shift"}, 3, 0, -12, 12, UnitSemitones, Stepped)
		assert.Equal(t, "3 semitones", p.DisplayString())
	})

	t.Run("UnitFormatter", func(t *testing.T) {
		var p Parameter
		p.InitFloat([]string{"Cutoff"}, 2500, 1000, 20, 20000, UnitHz, Log)
		assert.Equal(t, "2.50 kHz", p.DisplayString())
	})

	t.Run("CustomFormatter", func(t *testing.T) {
		var p Parameter
		p.InitFloat([]string{"Drive"}, 0.5, 0.5, 0, 1, UnitGeneric, Linear)
		p.SetFormatter(func(v float64) string { return "x" + FloatValue(v*10).String() }, nil)
		assert.Equal(t, "x5.0", p.DisplayString())
	})

	t.Run("ValueStrings", func(t *testing.T) {
		var p Parameter
		p.InitList([]string{"Shape"}, 1, 0, 3, UnitList)
		p.SetValueString(0, "sine")
		p.SetValueString(1, "square")
		assert.Equal(t, "square", p.DisplayString())

		// an empty value string falls back to the number
		p.SetInt(2)
		assert.Equal(t, "2", p.DisplayString())
	})

	t.Run("Boolean", func(t *testing.T) {
		var p Parameter
		p.InitBool([]string{"Freeze"}, true, false, UnitGeneric)
		assert.Equal(t, "on", p.DisplayString())
		assert.Equal(t, "off", p.FormatValue(BoolValue(false)))
	})
}

func TestParseValue(t *testing.T) {
	t.Run("ValueStringsIgnoreCase", func(t *testing.T) {
		p := BypassParameter("Bypass").Build()
		v, err := p.ParseValue(" bypassed ")
		require.NoError(t, err)
		assert.Equal(t, BoolValue(true), v)
	})

	t.Run("Boolean", func(t *testing.T) {
		var p Parameter
		p.InitBool([]string{"Freeze"}, false, false, UnitGeneric)
		v, err := p.ParseValue("On")
		require.NoError(t, err)
		assert.Equal(t, BoolValue(true), v)

		_, err = p.ParseValue("maybe")
		assert.Error(t, err)
	})

	t.Run("NumberWithUnit", func(t *testing.T) {
		var p Parameter
		p.InitInt([]string{"Shift"}, 0, 0, -12, 12, UnitSemitones, Stepped)
		v, err := p.ParseValue("7 semitones")
		require.NoError(t, err)
		assert.Equal(t, IntValue(7), v)
	})

	t.Run("UnitParser", func(t *testing.T) {
		var p Parameter
		p.InitFloat([]string{"Time"}, 10, 10, 1, 2000, UnitMilliseconds, Squared)
		v, err := p.ParseValue("1.2 s")
		require.NoError(t, err)
		assert.InDelta(t, 1200.0, v.Float(), 1e-9)
	})

	t.Run("Rejects", func(t *testing.T) {
		var p Parameter
		p.InitFloat([]string{"Depth"}, 0, 0, 0, 1, UnitGeneric, Linear)
		_, err := p.ParseValue("NaN")
		assert.Error(t, err)
		_, err = p.ParseValue("deep")
		assert.Error(t, err)
	})
}
