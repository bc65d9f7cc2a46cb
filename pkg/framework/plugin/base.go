// Package plugin provides the parameter and preset layer shared by every plugin.
//
// Base owns a fixed set of parameters and presets addressed by index. Parameter values
// may be read and written from any thread; preset storage is guarded by a mutex and is
// never touched by ProcessParameters, so the audio thread does not wait on it.
package plugin

import (
	"fmt"
	"io"
	"math/rand/v2"
	"sync"
	"sync/atomic"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/justyntemme/dfxparam/pkg/framework/debug"
	"github.com/justyntemme/dfxparam/pkg/framework/param"
	"github.com/justyntemme/dfxparam/pkg/framework/preset"
	"github.com/justyntemme/dfxparam/pkg/framework/state"
)

// Listener is told about every parameter value set through Base.
type Listener func(index int, value param.Value)

// Option configures a Base.
type Option func(*Base)

// WithLogger replaces the package logger for this plugin.
func WithLogger(l *zap.Logger) Option {
	return func(b *Base) {
		if l != nil {
			b.log = l
		}
	}
}

// WithRandomSource sets the source used by RandomizeParameter.
func WithRandomSource(src param.RandomSource) Option {
	return func(b *Base) {
		if src != nil {
			b.rng = src
		}
	}
}

// WithListener registers a parameter listener.
func WithListener(fn Listener) Option {
	return func(b *Base) {
		b.AddListener(fn)
	}
}

type globalSource struct{}

func (globalSource) Float64() float64     { return rand.Float64() }
func (globalSource) Int64N(n int64) int64 { return rand.Int64N(n) }

// Base provides core functionality for all plugins
type Base struct {
	Info Info

	params *param.Registry
	state  *state.Manager
	log    *zap.Logger

	presetMu      sync.Mutex
	presets       *preset.Bank
	currentPreset int

	listenerMu sync.RWMutex
	listeners  []Listener

	rngMu sync.Mutex
	rng   param.RandomSource

	smoothed         []*param.SmoothedParameter
	firstRenderReset atomic.Bool // written by Reset, consumed by the audio thread

	initErrs error

	processorState
}

// NewBase creates a plugin base with numParameters parameter slots and numPresets empty presets.
func NewBase(info Info, numParameters, numPresets int, opts ...Option) *Base {
	b := &Base{
		Info:    info,
		params:  param.NewRegistry(numParameters),
		presets: preset.NewBank(numPresets, numParameters),
		log:     debug.Named("plugin").With(zap.String("plugin", info.Name)),
		rng:     globalSource{},
	}
	b.firstRenderReset.Store(true)
	b.state = state.NewManager(b.params)
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Parameters returns the parameter registry
func (b *Base) Parameters() *param.Registry { return b.params }

// State returns the state manager, for registering custom state.
func (b *Base) State() *state.Manager { return b.state }

func (b *Base) NumParameters() int { return b.params.Len() }

func (b *Base) NumPresets() int { return b.presets.Len() }

// ParameterIsValid reports whether index addresses a parameter slot.
func (b *Base) ParameterIsValid(index int) bool { return b.params.IsValid(index) }

// Parameter returns the parameter at index, or nil.
func (b *Base) Parameter(index int) *param.Parameter { return b.params.Get(index) }

// InitErr returns every problem recorded while initializing parameters.
func (b *Base) InitErr() error { return b.initErrs }

// InitParameter initializes the parameter at index from a builder and seeds every
// unnamed preset with its initial value.
func (b *Base) InitParameter(index int, builder *param.Builder) error {
	_, err := b.params.Init(index, builder)
	return b.finishInit(index, err)
}

// InitParameterFloat initializes a float parameter.
func (b *Base) InitParameterFloat(index int, names []string, initial, def, min, max float64, unit param.Unit, curve param.Curve) error {
	return b.initDirect(index, func(p *param.Parameter) {
		p.InitFloat(names, initial, def, min, max, unit, curve)
	})
}

// InitParameterInt initializes an integer parameter.
func (b *Base) InitParameterInt(index int, names []string, initial, def, min, max int64, unit param.Unit, curve param.Curve) error {
	return b.initDirect(index, func(p *param.Parameter) {
		p.InitInt(names, initial, def, min, max, unit, curve)
	})
}

// InitParameterBool initializes a boolean parameter.
func (b *Base) InitParameterBool(index int, names []string, initial, def bool, unit param.Unit) error {
	return b.initDirect(index, func(p *param.Parameter) {
		p.InitBool(names, initial, def, unit)
	})
}

// InitParameterList initializes an indexed list parameter. Its value strings are set afterwards
// through Parameter(index).SetValueString.
func (b *Base) InitParameterList(index int, names []string, initial, def, numItems int64, unit param.Unit) error {
	return b.initDirect(index, func(p *param.Parameter) {
		p.InitList(names, initial, def, numItems, unit)
	})
}

func (b *Base) initDirect(index int, init func(p *param.Parameter)) error {
	p := b.params.Get(index)
	if p == nil {
		return b.finishInit(index, fmt.Errorf("parameter index %d out of range [0, %d)", index, b.params.Len()))
	}
	if p.Initialized() {
		return b.finishInit(index, fmt.Errorf("parameter %d already initialized as %q", index, p.Name()))
	}
	init(p)
	return b.finishInit(index, b.params.Added(index))
}

func (b *Base) finishInit(index int, err error) error {
	if err != nil {
		b.initErrs = multierr.Append(b.initErrs, err)
		b.log.Warn("parameter init failed", zap.Int("index", index), zap.Error(err))
		return err
	}
	b.initPresetsParameter(index)
	return nil
}

// initPresetsParameter copies the current value into every preset that has no name yet,
// so unfilled presets never hold stale values.
func (b *Base) initPresetsParameter(index int) {
	v := b.params.Get(index).Get()

	b.presetMu.Lock()
	defer b.presetMu.Unlock()
	for i := 0; i < b.presets.Len(); i++ {
		if !b.presets.NameIsValid(i) {
			b.presets.Preset(i).SetValue(index, v)
		}
	}
}

// AddListener registers fn for parameter updates.
func (b *Base) AddListener(fn Listener) {
	if fn == nil {
		return
	}
	b.listenerMu.Lock()
	defer b.listenerMu.Unlock()
	b.listeners = append(b.listeners, fn)
}

// SetParameter sets the parameter at index and publishes the change.
func (b *Base) SetParameter(index int, v param.Value) {
	if p := b.params.Get(index); p != nil {
		p.Set(v)
		b.updateParameter(index)
	}
}

func (b *Base) SetParameterFloat(index int, f float64) {
	if p := b.params.Get(index); p != nil {
		p.SetFloat(f)
		b.updateParameter(index)
	}
}

func (b *Base) SetParameterInt(index int, i int64) {
	if p := b.params.Get(index); p != nil {
		p.SetInt(i)
		b.updateParameter(index)
	}
}

func (b *Base) SetParameterBool(index int, v bool) {
	if p := b.params.Get(index); p != nil {
		p.SetBool(v)
		b.updateParameter(index)
	}
}

// SetParameterGeneric sets the parameter at index from a 0..1 value.
func (b *Base) SetParameterGeneric(index int, gen float64) {
	if p := b.params.Get(index); p != nil {
		p.SetGeneric(gen)
		b.updateParameter(index)
	}
}

// updateParameter writes the value through to the current preset and tells listeners.
func (b *Base) updateParameter(index int) {
	v := b.params.Get(index).Get()

	b.presetMu.Lock()
	if p := b.presets.Preset(b.currentPreset); p != nil {
		p.SetValue(index, v)
	}
	b.presetMu.Unlock()

	b.listenerMu.RLock()
	defer b.listenerMu.RUnlock()
	for _, fn := range b.listeners {
		fn(index, v)
	}
}

// Get returns the current value of the parameter at index, or the zero Value.
func (b *Base) Get(index int) param.Value {
	if p := b.params.Get(index); p != nil {
		return p.Get()
	}
	return param.Value{}
}

func (b *Base) ParameterFloat(index int) float64 { return b.Get(index).Float() }
func (b *Base) ParameterInt(index int) int64     { return b.Get(index).Int() }
func (b *Base) ParameterBool(index int) bool     { return b.Get(index).Bool() }

// ParameterScalar returns the value as a rough 0..1 scalar: percentages are divided by 100,
// UnitScalar is returned as is, and everything else is divided by the maximum.
func (b *Base) ParameterScalar(index int) float64 {
	p := b.params.Get(index)
	if p == nil {
		return 0
	}
	switch p.Unit() {
	case param.UnitPercent, param.UnitDryWetMix:
		return p.GetFloat() * 0.01
	case param.UnitScalar:
		return p.GetFloat()
	default:
		return p.GetFloat() / p.MaxFloat()
	}
}

// ParameterChanged reports the changed flag without clearing it.
func (b *Base) ParameterChanged(index int) bool {
	p := b.params.Get(index)
	return p != nil && p.Changed()
}

// ParameterIfChangedFloat returns the value only if the parameter changed since the last block.
func (b *Base) ParameterIfChangedFloat(index int) (float64, bool) {
	if !b.ParameterChanged(index) {
		return 0, false
	}
	return b.ParameterFloat(index), true
}

func (b *Base) ParameterIfChangedInt(index int) (int64, bool) {
	if !b.ParameterChanged(index) {
		return 0, false
	}
	return b.ParameterInt(index), true
}

func (b *Base) ParameterIfChangedBool(index int) (bool, bool) {
	if !b.ParameterChanged(index) {
		return false, false
	}
	return b.ParameterBool(index), true
}

func (b *Base) ParameterIfChangedScalar(index int) (float64, bool) {
	if !b.ParameterChanged(index) {
		return 0, false
	}
	return b.ParameterScalar(index), true
}

// RandomizeParameter sets the parameter at index to a random value.
func (b *Base) RandomizeParameter(index int) {
	p := b.params.Get(index)
	if p == nil || !p.Initialized() {
		return
	}
	b.rngMu.Lock()
	param.Randomize(p, b.rng)
	b.rngMu.Unlock()
	b.updateParameter(index)
}

// RandomizeParameters randomizes every parameter except those marked OmitFromRandomizeAll.
func (b *Base) RandomizeParameters() {
	for i, p := range b.params.All() {
		if p.HasAttributes(param.AttributeOmitFromRandomizeAll) {
			continue
		}
		b.RandomizeParameter(i)
	}
}

// AddSmoothedValue registers a smoother to be synced on every ProcessParameters.
// Register them before processing starts.
func (b *Base) AddSmoothedValue(sp *param.SmoothedParameter) {
	b.smoothed = append(b.smoothed, sp)
}

// ProcessParameters runs refresh at the start of a block, brings smoothers up to date,
// then clears every changed flag so the next block only sees new changes.
func (b *Base) ProcessParameters(refresh func()) {
	if refresh != nil {
		refresh()
	}

	snap := b.firstRenderReset.Swap(false)
	for _, sp := range b.smoothed {
		if snap {
			sp.Snap()
		} else {
			sp.Sync()
		}
	}

	for _, p := range b.params.All() {
		p.SetChanged(false)
	}
}

// Reset makes the next block start its smoothers at their targets.
func (b *Base) Reset() {
	b.firstRenderReset.Store(true)
}

// SaveState writes the live parameter values.
func (b *Base) SaveState(w io.Writer) error {
	if err := b.state.Save(w); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

// LoadState restores values written by SaveState and publishes each one.
func (b *Base) LoadState(r io.Reader) error {
	if err := b.state.Load(r); err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	for i := 0; i < b.params.Len(); i++ {
		if b.params.Get(i).Initialized() {
			b.updateParameter(i)
		}
	}
	return nil
}
