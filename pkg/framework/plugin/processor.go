package plugin

// AudioProcessor is the interface plugins implement for audio processing
type AudioProcessor interface {
	// ProcessAudio processes one block; it must not allocate.
	ProcessAudio(input, output [][]float64)
}

// ParameterProcessor is implemented by plugins that refresh DSP state from parameters
// at the start of each block.
type ParameterProcessor interface {
	ProcessParameters()
}

type processorState struct {
	sampleRate   float64
	maxBlockSize int
	active       bool

	onInitialize func(sampleRate float64, maxBlockSize int) error
	onSetActive  func(active bool) error
	onReset      func()
}

// Initialize records the stream format and runs the OnInitialize callback.
func (b *Base) Initialize(sampleRate float64, maxBlockSize int) error {
	b.sampleRate = sampleRate
	b.maxBlockSize = maxBlockSize
	b.Reset()

	if b.onInitialize != nil {
		return b.onInitialize(sampleRate, maxBlockSize)
	}
	return nil
}

// SetActive starts or stops processing. Deactivating runs the OnReset callback.
func (b *Base) SetActive(active bool) error {
	if !active {
		b.Reset()
		if b.onReset != nil {
			b.onReset()
		}
	}
	b.active = active

	if b.onSetActive != nil {
		return b.onSetActive(active)
	}
	return nil
}

func (b *Base) SampleRate() float64 { return b.sampleRate }

func (b *Base) MaxBlockSize() int { return b.maxBlockSize }

func (b *Base) IsActive() bool { return b.active }

// OnInitialize sets a callback for initialization
func (b *Base) OnInitialize(fn func(sampleRate float64, maxBlockSize int) error) {
	b.onInitialize = fn
}

// OnSetActive sets a callback for activation/deactivation
func (b *Base) OnSetActive(fn func(active bool) error) {
	b.onSetActive = fn
}

// OnReset sets a callback for when the processor should reset its state
func (b *Base) OnReset(fn func()) {
	b.onReset = fn
}

// Process runs one block: parameter refresh (if proc implements ParameterProcessor),
// then audio.
func (b *Base) Process(proc AudioProcessor, input, output [][]float64) {
	var refresh func()
	if pp, ok := proc.(ParameterProcessor); ok {
		refresh = pp.ProcessParameters
	}
	b.ProcessParameters(refresh)
	proc.ProcessAudio(input, output)
}

// SimpleProcessor adapts a plain function to AudioProcessor
type SimpleProcessor func(input, output [][]float64)

func (f SimpleProcessor) ProcessAudio(input, output [][]float64) { f(input, output) }
