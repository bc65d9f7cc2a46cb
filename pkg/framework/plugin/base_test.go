package plugin

import (
	"bytes"
	"math/rand/v2"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap/zaptest"

	"github.com/justyntemme/dfxparam/pkg/framework/param"
)

const (
	paramGain = iota
	paramMix
	paramMode
	paramFreeze
	numParams
)

type update struct {
	index int
	value param.Value
}

func newTestBase(t *testing.T, opts ...Option) (*Base, *[]update) {
	t.Helper()
	var updates []update
	opts = append([]Option{
		WithLogger(zaptest.NewLogger(t)),
		WithListener(func(index int, v param.Value) {
			updates = append(updates, update{index, v})
		}),
	}, opts...)

	b := NewBase(Info{ID: "Test", Name: "Test"}, numParams, 3, opts...)
	require.NoError(t, b.InitParameterFloat(paramGain, []string{"Gain"}, 1, 1, 0, 2, param.UnitLinearGain, param.Cubed))
	require.NoError(t, b.InitParameter(paramMix, param.MixParameter("Mix")))
	require.NoError(t, b.InitParameterList(paramMode, []string{"Mode"}, 0, 0, 3, param.UnitList))
	require.NoError(t, b.InitParameterBool(paramFreeze, []string{"Freeze"}, false, false, param.UnitGeneric))
	require.NoError(t, b.InitErr())
	return b, &updates
}

func TestInitSeedsUnnamedPresets(t *testing.T) {
	b := NewBase(Info{ID: "Test", Name: "Test"}, 2, 2)
	b.SetPresetName(1, "Named")
	b.SetPresetParameter(1, 0, param.FloatValue(9))

	require.NoError(t, b.InitParameterFloat(0, []string{"Level"}, 0.25, 0.5, 0, 1, param.UnitGeneric, param.Linear))
	assert.Equal(t, param.FloatValue(0.25), b.PresetParameter(0, 0), "unnamed preset takes the initial value")
	assert.Equal(t, param.FloatValue(9), b.PresetParameter(1, 0), "named preset is left alone")
}

func TestInitErrorsAreCollected(t *testing.T) {
	b := NewBase(Info{ID: "Test", Name: "Test"}, 1, 0)
	assert.Error(t, b.InitParameterBool(4, []string{"Nope"}, false, false, param.UnitGeneric))
	require.NoError(t, b.InitParameterBool(0, []string{"One"}, false, false, param.UnitGeneric))
	assert.Error(t, b.InitParameterBool(0, []string{"Again"}, false, false, param.UnitGeneric))
	assert.Len(t, multierr.Errors(b.InitErr()), 2)
}

func TestSetParameterPublishes(t *testing.T) {
	b, updates := newTestBase(t)

	b.SetParameterFloat(paramGain, 1.5)
	b.SetParameterInt(paramMode, 2)
	b.SetParameterBool(paramFreeze, true)
	b.SetParameterGeneric(paramMix, 0.5)
	b.SetParameter(99, param.IntValue(1))

	require.Len(t, *updates, 4)
	assert.Equal(t, update{paramGain, param.FloatValue(1.5)}, (*updates)[0])
	assert.Equal(t, update{paramMode, param.IntValue(2)}, (*updates)[1])
	assert.Equal(t, param.FloatValue(50), b.Get(paramMix))

	assert.Equal(t, param.FloatValue(1.5), b.PresetParameter(0, paramGain), "writes go through to the current preset")
	assert.Equal(t, param.BoolValue(true), b.PresetParameter(0, paramFreeze))
}

func TestParameterScalar(t *testing.T) {
	b, _ := newTestBase(t)
	b.SetParameterFloat(paramMix, 40)
	b.SetParameterFloat(paramGain, 1)

	assert.InDelta(t, 0.4, b.ParameterScalar(paramMix), 1e-12)
	assert.InDelta(t, 0.5, b.ParameterScalar(paramGain), 1e-12)
	assert.Equal(t, 0.0, b.ParameterScalar(-1))
}

func TestParameterIfChanged(t *testing.T) {
	b, _ := newTestBase(t)

	_, ok := b.ParameterIfChangedFloat(paramGain)
	assert.True(t, ok, "fresh parameters report a change")

	b.ProcessParameters(nil)
	_, ok = b.ParameterIfChangedFloat(paramGain)
	assert.False(t, ok)

	b.SetParameterInt(paramMode, 1)
	mode, ok := b.ParameterIfChangedInt(paramMode)
	assert.True(t, ok)
	assert.Equal(t, int64(1), mode)

	_, ok = b.ParameterIfChangedBool(paramFreeze)
	assert.False(t, ok)
	_, ok = b.ParameterIfChangedScalar(paramMix)
	assert.False(t, ok)
}

func TestProcessParametersClearsAfterRefresh(t *testing.T) {
	b, _ := newTestBase(t)
	b.SetParameterFloat(paramGain, 0.5)

	var seen float64
	var sawChange bool
	b.ProcessParameters(func() {
		seen, sawChange = b.ParameterIfChangedFloat(paramGain)
	})
	assert.True(t, sawChange)
	assert.Equal(t, 0.5, seen)
	assert.False(t, b.ParameterChanged(paramGain))
}

func TestProcessParametersSmoothing(t *testing.T) {
	b, _ := newTestBase(t)
	sp := param.NewSmoothedParameter(b.Parameter(paramGain), param.LinearSmoothing, 4)
	b.AddSmoothedValue(sp)

	b.SetParameterFloat(paramGain, 2)
	b.ProcessParameters(nil)
	assert.Equal(t, 2.0, sp.Next(), "the first block after a reset snaps")

	b.SetParameterFloat(paramGain, 0)
	b.ProcessParameters(nil)
	assert.InDelta(t, 1.5, sp.Next(), 1e-12, "later blocks ramp")
}

func TestResetSnapsNextBlock(t *testing.T) {
	b, _ := newTestBase(t)
	sp := param.NewSmoothedParameter(b.Parameter(paramGain), param.LinearSmoothing, 4)
	b.AddSmoothedValue(sp)
	b.ProcessParameters(nil)

	// resets come from the control thread while blocks keep running
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range 100 {
			b.Reset()
		}
	}()
	for range 100 {
		b.ProcessParameters(nil)
	}
	wg.Wait()

	b.SetParameterFloat(paramGain, 2)
	b.Reset()
	b.ProcessParameters(nil)
	assert.Equal(t, 2.0, sp.Next())
}

func TestRandomizeParameters(t *testing.T) {
	b, updates := newTestBase(t, WithRandomSource(rand.New(rand.NewPCG(3, 4))))
	b.Parameter(paramFreeze).AddAttributes(param.AttributeOmitFromRandomizeAll)

	for n := 0; n < 50; n++ {
		*updates = (*updates)[:0]
		b.RandomizeParameters()
		for _, u := range *updates {
			assert.NotEqual(t, paramFreeze, u.index)
		}
		assert.Len(t, *updates, numParams-1)

		gain := b.ParameterFloat(paramGain)
		assert.True(t, gain >= 0 && gain <= 2, "gain %v", gain)
		mode := b.ParameterInt(paramMode)
		assert.True(t, mode >= 0 && mode <= 2, "mode %v", mode)
	}

	b.RandomizeParameter(paramFreeze)
	assert.Equal(t, paramFreeze, (*updates)[len(*updates)-1].index)
}

func TestLoadPreset(t *testing.T) {
	b, updates := newTestBase(t)
	b.SetPresetName(1, "Bright")
	b.SetPresetParameterFloat(1, paramGain, 0.5)
	b.SetPresetParameterFloat(1, paramMode, 1.9999)
	b.SetPresetParameterBool(1, paramFreeze, true)
	b.SetPresetParameterGeneric(1, paramMix, 1)

	assert.Equal(t, param.IntValue(2), b.PresetParameter(1, paramMode), "preset values use the native type")
	assert.True(t, b.PresetNameIsValid(1))
	assert.False(t, b.PresetNameIsValid(2))
	assert.False(t, b.LoadPreset(3))

	*updates = (*updates)[:0]
	require.True(t, b.LoadPreset(1))
	assert.Equal(t, 1, b.CurrentPreset())
	assert.Equal(t, 0.5, b.ParameterFloat(paramGain))
	assert.Equal(t, int64(2), b.ParameterInt(paramMode))
	assert.True(t, b.ParameterBool(paramFreeze))
	assert.Equal(t, 100.0, b.ParameterFloat(paramMix))
	assert.Len(t, *updates, numParams)

	// later sets land in the newly loaded preset
	b.SetParameterFloat(paramGain, 0.75)
	assert.Equal(t, 0.75, b.PresetParameterFloat(1, paramGain))
	assert.Equal(t, 1.0, b.PresetParameterFloat(0, paramGain))
	assert.Equal(t, "Bright", b.PresetName(1))
}

func TestStateRoundTrip(t *testing.T) {
	b, _ := newTestBase(t)
	b.SetParameterFloat(paramGain, 1.25)
	b.SetParameterInt(paramMode, 2)

	var buf bytes.Buffer
	require.NoError(t, b.SaveState(&buf))

	other, updates := newTestBase(t)
	require.NoError(t, other.LoadState(&buf))
	assert.Equal(t, 1.25, other.ParameterFloat(paramGain))
	assert.Equal(t, int64(2), other.ParameterInt(paramMode))
	assert.Len(t, *updates, numParams)

	assert.Error(t, other.LoadState(bytes.NewBufferString("garbage")))
}

func TestPresetBankFiles(t *testing.T) {
	b, _ := newTestBase(t)
	b.SetPresetName(0, "Init")
	b.SetPresetName(2, "Wide")
	b.SetPresetParameterFloat(2, paramMix, 25)

	path := filepath.Join(t.TempDir(), "bank.yaml")
	require.NoError(t, b.SavePresetBank(path))

	other, _ := newTestBase(t)
	require.NoError(t, other.LoadPresetBank(path))
	assert.Equal(t, "Wide", other.PresetName(2))
	assert.Equal(t, 25.0, other.PresetParameterFloat(2, paramMix))
}

func TestProcess(t *testing.T) {
	b, _ := newTestBase(t)
	require.NoError(t, b.Initialize(48000, 64))
	assert.Equal(t, 48000.0, b.SampleRate())
	assert.Equal(t, 64, b.MaxBlockSize())

	resets := 0
	b.OnReset(func() { resets++ })
	require.NoError(t, b.SetActive(true))
	assert.True(t, b.IsActive())

	in := [][]float64{{1, 1}}
	out := [][]float64{{0, 0}}
	b.Process(SimpleProcessor(func(input, output [][]float64) {
		gain := b.ParameterFloat(paramGain)
		for i := range input[0] {
			output[0][i] = input[0][i] * gain
		}
	}), in, out)
	assert.Equal(t, []float64{1, 1}, out[0])
	assert.False(t, b.ParameterChanged(paramGain))

	require.NoError(t, b.SetActive(false))
	assert.Equal(t, 1, resets)
}
