// Package state saves and restores the live parameter values of a plugin as a binary chunk.
package state

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"go.uber.org/zap"

	"github.com/justyntemme/dfxparam/pkg/framework/debug"
	"github.com/justyntemme/dfxparam/pkg/framework/param"
)

const magic = "DFXGO1"

// Version is the chunk layout version written by Save.
const Version uint32 = 1

var (
	// ErrInvalidFormat is returned when a chunk does not start with the expected header.
	ErrInvalidFormat = errors.New("invalid state format")
	// ErrVersion is returned for chunks written by a newer layout.
	ErrVersion = errors.New("unsupported state version")
)

// Manager handles plugin state saving and loading
type Manager struct {
	version    uint32
	registry   *param.Registry
	customSave CustomSaveFunc
	customLoad CustomLoadFunc
}

// CustomSaveFunc allows plugins to save additional state beyond parameters
type CustomSaveFunc func(w io.Writer) error

// CustomLoadFunc reads back what the matching CustomSaveFunc wrote
type CustomLoadFunc func(r io.Reader) error

// NewManager creates a new state manager
func NewManager(registry *param.Registry) *Manager {
	return &Manager{
		version:  Version,
		registry: registry,
	}
}

// SetCustomState sets functions for saving and loading custom state
func (m *Manager) SetCustomState(save CustomSaveFunc, load CustomLoadFunc) {
	m.customSave = save
	m.customLoad = load
}

type entry struct {
	Type    uint8
	Payload uint64
}

// Save writes the plugin state to a writer. Every parameter slot is written in index
// order as its value type and payload word.
func (m *Manager) Save(w io.Writer) error {
	if _, err := io.WriteString(w, magic); err != nil {
		return err
	}
	header := struct {
		Version uint32
		Count   int32
	}{m.version, int32(m.registry.Len())}
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return err
	}

	entries := make([]entry, m.registry.Len())
	for i, p := range m.registry.All() {
		v := p.Get()
		entries[i] = entry{Type: uint8(v.Type()), Payload: v.Bits()}
	}
	if err := binary.Write(w, binary.LittleEndian, entries); err != nil {
		return err
	}

	if m.customSave == nil {
		return binary.Write(w, binary.LittleEndian, uint32(0))
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(1)); err != nil {
		return err
	}
	return m.customSave(w)
}

// Load reads the plugin state from a reader.
//
// Entries past the registry's size are ignored and parameters without an entry keep
// their value. An entry whose type differs from the parameter's native type is converted.
// A non-finite float entry fails the load; entries before it have already been applied.
func (m *Manager) Load(r io.Reader) error {
	header := make([]byte, len(magic))
	if _, err := io.ReadFull(r, header); err != nil {
		return fmt.Errorf("read state header: %w", err)
	}
	if string(header) != magic {
		return ErrInvalidFormat
	}

	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return fmt.Errorf("read state version: %w", err)
	}
	if version > m.version {
		return fmt.Errorf("%w: %d is newer than %d", ErrVersion, version, m.version)
	}

	var count int32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return fmt.Errorf("read parameter count: %w", err)
	}
	if count < 0 {
		return fmt.Errorf("%w: negative parameter count %d", ErrInvalidFormat, count)
	}

	for i := 0; i < int(count); i++ {
		var e entry
		if err := binary.Read(r, binary.LittleEndian, &e); err != nil {
			return fmt.Errorf("read parameter %d: %w", i, err)
		}
		typ := param.ValueType(e.Type)
		if !typ.Valid() {
			return fmt.Errorf("%w: parameter %d has value type %d", ErrInvalidFormat, i, e.Type)
		}
		v := param.ValueFromBits(typ, e.Payload)
		if !v.IsFinite() {
			return fmt.Errorf("parameter %d: non-finite value %v", i, math.Float64frombits(e.Payload))
		}

		p := m.registry.Get(i)
		if p == nil || !p.Initialized() {
			continue
		}
		p.Set(v)
	}

	if int(count) != m.registry.Len() {
		debug.Named("state").Warn("parameter count mismatch",
			zap.Int32("stored", count),
			zap.Int("current", m.registry.Len()))
	}

	var hasCustom uint32
	if err := binary.Read(r, binary.LittleEndian, &hasCustom); err != nil {
		return fmt.Errorf("read custom state marker: %w", err)
	}
	if hasCustom == 0 {
		return nil
	}
	if m.customLoad == nil {
		debug.Named("state").Warn("ignoring custom state with no loader")
		return nil
	}
	return m.customLoad(r)
}
