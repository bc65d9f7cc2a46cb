package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/justyntemme/dfxparam/pkg/framework/param"
	"github.com/justyntemme/dfxparam/pkg/framework/plugin"
)

// Definition describes a plugin's parameters in YAML.
type Definition struct {
	Plugin     PluginDef  `yaml:"plugin"`
	Presets    int        `yaml:"presets"`
	Parameters []ParamDef `yaml:"parameters"`
}

// PluginDef holds the plugin metadata of a definition file.
type PluginDef struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Version  string `yaml:"version"`
	Vendor   string `yaml:"vendor"`
	Category string `yaml:"category"`
}

// ParamDef is one parameter. Type is float, int, bool or list; float is assumed when empty.
type ParamDef struct {
	Name          string       `yaml:"name"`
	ShortNames    []string     `yaml:"shortNames"`
	Type          string       `yaml:"type"`
	Min           *param.Value `yaml:"min"`
	Max           *param.Value `yaml:"max"`
	Default       *param.Value `yaml:"default"`
	Initial       *param.Value `yaml:"initial"`
	Unit          string       `yaml:"unit"`
	CustomUnit    string       `yaml:"customUnit"`
	Curve         string       `yaml:"curve"`
	CurveSpec     *float64     `yaml:"curveSpec"`
	Values        []string     `yaml:"values"`
	Hidden        bool         `yaml:"hidden"`
	EnforceLimits bool         `yaml:"enforceLimits"`
	NoRandomize   bool         `yaml:"noRandomize"`
}

// ReadDefinition decodes a definition, rejecting unknown keys.
func ReadDefinition(r io.Reader) (*Definition, error) {
	var def Definition
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty definition")
		}
		return nil, fmt.Errorf("decode definition: %w", err)
	}
	if len(def.Parameters) == 0 {
		return nil, errors.New("definition has no parameters")
	}
	if def.Presets < 0 {
		return nil, fmt.Errorf("invalid preset count %d", def.Presets)
	}
	return &def, nil
}

// LoadDefinition reads a definition file.
func LoadDefinition(path string) (*Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	def, err := ReadDefinition(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// Builder converts the definition of one parameter into a param.Builder.
func (d ParamDef) Builder() (*param.Builder, error) {
	if d.Name == "" {
		return nil, errors.New("parameter has no name")
	}

	var b *param.Builder
	switch strings.ToLower(d.Type) {
	case "", "float":
		b = param.NewFloat(d.Name, floatOr(d.Min, 0), floatOr(d.Max, 1), floatOr(d.Default, floatOr(d.Min, 0)))
	case "int":
		b = param.NewInt(d.Name, intOr(d.Min, 0), intOr(d.Max, 1), intOr(d.Default, intOr(d.Min, 0)))
	case "bool":
		b = param.NewBool(d.Name, d.Default != nil && d.Default.Bool())
	case "list":
		if len(d.Values) == 0 {
			return nil, fmt.Errorf("list parameter %q has no values", d.Name)
		}
		b = param.NewList(d.Name, d.Values...)
		if d.Default != nil {
			b.Default(*d.Default)
		}
	default:
		return nil, fmt.Errorf("parameter %q: unknown type %q", d.Name, d.Type)
	}

	b.ShortNames(d.ShortNames...)
	if d.Initial != nil {
		b.Initial(*d.Initial)
	}

	if d.Unit != "" {
		unit, err := param.ParseUnit(d.Unit)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", d.Name, err)
		}
		b.Unit(unit)
	}
	if d.CustomUnit != "" {
		b.CustomUnit(d.CustomUnit)
	}
	if d.Curve != "" {
		curve, err := param.ParseCurve(d.Curve)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", d.Name, err)
		}
		b.Curve(curve)
	}
	if d.CurveSpec != nil {
		b.CurveSpec(*d.CurveSpec)
	}
	if len(d.Values) > 0 && !strings.EqualFold(d.Type, "list") {
		b.ValueStrings(d.Values...)
	}
	if d.Hidden {
		b.Hidden()
	}
	if d.EnforceLimits {
		b.EnforceLimits()
	}
	if d.NoRandomize {
		b.Attributes(param.AttributeOmitFromRandomizeAll)
	}
	return b, nil
}

// NewBase builds a plugin base holding every parameter of the definition.
// All parameter problems are reported together.
func (d *Definition) NewBase(opts ...plugin.Option) (*plugin.Base, error) {
	info := plugin.Info{
		ID:       d.Plugin.ID,
		Name:     d.Plugin.Name,
		Version:  d.Plugin.Version,
		Vendor:   d.Plugin.Vendor,
		Category: d.Plugin.Category,
	}
	if err := info.Validate(); err != nil {
		return nil, err
	}

	numPresets := max(d.Presets, 1)
	base := plugin.NewBase(info, len(d.Parameters), numPresets, opts...)

	var errs error
	for i, pd := range d.Parameters {
		b, err := pd.Builder()
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("parameter %d: %w", i, err))
			continue
		}
		// InitParameter failures are also collected by the base
		_ = base.InitParameter(i, b)
	}
	if err := multierr.Append(errs, base.InitErr()); err != nil {
		return nil, err
	}
	return base, nil
}

func floatOr(v *param.Value, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return v.Float()
}

func intOr(v *param.Value, fallback int64) int64 {
	if v == nil {
		return fallback
	}
	return v.Int()
}
