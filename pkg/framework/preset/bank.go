package preset

// Bank is a fixed-size, ordered list of presets sharing one parameter count.
type Bank struct {
	presets       []*Preset
	numParameters int
}

// NewBank creates numPresets unnamed presets of numParameters values each.
func NewBank(numPresets, numParameters int) *Bank {
	b := &Bank{
		presets:       make([]*Preset, max(numPresets, 0)),
		numParameters: max(numParameters, 0),
	}
	for i := range b.presets {
		b.presets[i] = New(numParameters)
	}
	return b
}

// Len returns the number of presets.
func (b *Bank) Len() int { return len(b.presets) }

// NumParameters returns the number of values in each preset.
func (b *Bank) NumParameters() int { return b.numParameters }

// IsValid reports whether index addresses a preset.
func (b *Bank) IsValid(index int) bool {
	return index >= 0 && index < len(b.presets)
}

// NameIsValid reports whether the preset at index exists and has a name.
func (b *Bank) NameIsValid(index int) bool {
	return b.IsValid(index) && b.presets[index].Name() != ""
}

// Preset returns the preset at index, or nil.
func (b *Bank) Preset(index int) *Preset {
	if !b.IsValid(index) {
		return nil
	}
	return b.presets[index]
}
