package preset

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/justyntemme/dfxparam/pkg/framework/debug"
	"github.com/justyntemme/dfxparam/pkg/framework/param"
)

// FileVersion is the bank file schema version written by SaveYAML.
const FileVersion = 1

// ErrUnsupportedVersion is returned for bank files newer than FileVersion.
var ErrUnsupportedVersion = errors.New("unsupported preset file version")

// File is the YAML schema for a preset bank.
type File struct {
	Version int           `yaml:"version"`
	Presets []PresetEntry `yaml:"presets"`
}

// PresetEntry is one preset in a bank file. Values are keyed by full parameter name;
// parameters left out keep whatever the bank already holds.
type PresetEntry struct {
	Name   string                 `yaml:"name"`
	Values map[string]param.Value `yaml:"values,omitempty"`
}

// Names maps parameter indexes to names and back.
// *param.Registry satisfies it.
type Names interface {
	Name(index int) string
	Lookup(name string) (int, bool)
}

// Encode captures every preset in b as a File.
func (b *Bank) Encode(names Names) *File {
	f := &File{Version: FileVersion, Presets: make([]PresetEntry, 0, b.Len())}
	for _, p := range b.presets {
		entry := PresetEntry{Name: p.Name(), Values: make(map[string]param.Value, p.Len())}
		for i := 0; i < p.Len(); i++ {
			if name := names.Name(i); name != "" {
				entry.Values[name] = p.Value(i)
			}
		}
		f.Presets = append(f.Presets, entry)
	}
	return f
}

// Apply copies the presets in f into b, in order. Everything that can be applied is,
// and every problem (extra presets, unknown parameter names) is reported in the returned error.
func (b *Bank) Apply(f *File, names Names) error {
	if f == nil {
		return nil
	}
	if f.Version > FileVersion {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, f.Version)
	}

	var errs error
	for i, entry := range f.Presets {
		p := b.Preset(i)
		if p == nil {
			errs = multierr.Append(errs, fmt.Errorf("preset %d (%q): bank holds only %d presets", i, entry.Name, b.Len()))
			continue
		}
		p.SetName(entry.Name)
		for name, v := range entry.Values {
			index, ok := names.Lookup(name)
			if !ok || index >= p.Len() {
				errs = multierr.Append(errs, fmt.Errorf("preset %d (%q): unknown parameter %q", i, entry.Name, name))
				continue
			}
			p.SetValue(index, v)
		}
	}
	return errs
}

// ReadYAML decodes a bank file. Unknown fields are rejected.
func ReadYAML(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &File{Version: FileVersion}, nil
		}
		return nil, fmt.Errorf("decode preset bank: %w", err)
	}
	return &f, nil
}

// WriteYAML encodes a bank file.
func WriteYAML(w io.Writer, f *File) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encode preset bank: %w", err)
	}
	return enc.Close()
}

// LoadYAML reads the bank file at path into b.
func LoadYAML(path string, b *Bank, names Names) error {
	fh, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open preset bank: %w", err)
	}
	defer fh.Close()

	f, err := ReadYAML(fh)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	err = b.Apply(f, names)

	debug.Named("preset").Info("loaded preset bank",
		zap.String("path", path),
		zap.Int("presets", len(f.Presets)),
		zap.Int("problems", len(multierr.Errors(err))))
	return err
}

// SaveYAML writes b to path, creating parent directories as needed.
func SaveYAML(path string, b *Bank, names Names) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create preset directory: %w", err)
	}
	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create preset bank: %w", err)
	}
	defer func() {
		err = multierr.Append(err, fh.Close())
	}()

	return WriteYAML(fh, b.Encode(names))
}
