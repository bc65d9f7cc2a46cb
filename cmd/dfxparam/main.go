// Command dfxparam inspects a plugin parameter definition and its preset bank.
//
// It builds the parameters described by a YAML definition file, optionally loads a
// preset bank and a preset, applies -set assignments, and prints the resulting
// parameter and preset tables. With -watch it redraws whenever the bank file changes.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/justyntemme/dfxparam/pkg/framework/debug"
	"github.com/justyntemme/dfxparam/pkg/framework/plugin"
)

type config struct {
	defPath   string
	bankPath  string
	preset    int
	sets      []string
	randomize bool
	seed      uint64
	saveBank  string
	statePath string
	width     int
	watch     bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.defPath, "def", "", "Parameter definition file (YAML)")
	flag.StringVar(&cfg.bankPath, "bank", "", "Preset bank file to load (YAML)")
	flag.IntVar(&cfg.preset, "preset", -1, "Preset to load after the bank")
	flag.Func("set", "Set a parameter, as name=value (repeatable)", func(s string) error {
		cfg.sets = append(cfg.sets, s)
		return nil
	})
	flag.BoolVar(&cfg.randomize, "randomize", false, "Randomize every parameter")
	flag.Uint64Var(&cfg.seed, "seed", 0, "Seed for -randomize (0 uses a random seed)")
	flag.StringVar(&cfg.saveBank, "save-bank", "", "Write the preset bank to this file")
	flag.StringVar(&cfg.statePath, "state", "", "Write the binary parameter state to this file")
	flag.IntVar(&cfg.width, "width", 0, "Table width (defaults to the terminal width)")
	flag.BoolVar(&cfg.watch, "watch", false, "Reload and redraw when the bank file changes")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()

	if cfg.defPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: dfxparam -def <params.yaml> [-bank bank.yaml] [-preset n] [-set name=value ...]")
		fmt.Fprintln(os.Stderr, "       dfxparam -def <params.yaml> -bank bank.yaml -watch")
		flag.PrintDefaults()
		os.Exit(2)
	}

	level := zapcore.WarnLevel
	if *verbose {
		level = zapcore.DebugLevel
	}
	log, err := debug.NewDevelopmentLogger(level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck
	debug.SetLogger(log)

	if cfg.width <= 0 {
		cfg.width = terminalWidth()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, os.Stdout, log); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config, out io.Writer, log *zap.Logger) error {
	if cfg.watch && cfg.bankPath == "" {
		return errors.New("-watch needs -bank")
	}
	def, err := LoadDefinition(cfg.defPath)
	if err != nil {
		return err
	}

	opts := []plugin.Option{plugin.WithLogger(log)}
	if cfg.seed != 0 {
		opts = append(opts, plugin.WithRandomSource(rand.New(rand.NewPCG(cfg.seed, cfg.seed))))
	}
	base, err := def.NewBase(opts...)
	if err != nil {
		return err
	}

	if cfg.bankPath != "" {
		if err := base.LoadPresetBank(cfg.bankPath); err != nil {
			return err
		}
	}
	if cfg.preset >= 0 && !base.LoadPreset(cfg.preset) {
		return fmt.Errorf("preset %d out of range [0, %d)", cfg.preset, base.NumPresets())
	}
	if err := applySets(base, cfg.sets); err != nil {
		return err
	}
	if cfg.randomize {
		base.RandomizeParameters()
	}

	if cfg.saveBank != "" {
		if err := base.SavePresetBank(cfg.saveBank); err != nil {
			return err
		}
	}
	if cfg.statePath != "" {
		if err := writeState(base, cfg.statePath); err != nil {
			return err
		}
	}

	draw(out, base, cfg.width)
	if !cfg.watch {
		return nil
	}

	return watchFile(ctx, cfg.bankPath, log, func() error {
		if err := base.LoadPresetBank(cfg.bankPath); err != nil {
			return err
		}
		base.LoadPreset(base.CurrentPreset())
		log.Info("bank reloaded", zap.String("path", cfg.bankPath))
		draw(out, base, cfg.width)
		return nil
	})
}

// draw prints both tables, then clears the changed flags so the next draw only
// highlights what changed in between.
func draw(out io.Writer, base *plugin.Base, width int) {
	fmt.Fprintln(out, renderParameters(base, width))
	fmt.Fprintln(out, renderPresets(base))
	base.ProcessParameters(nil)
}

// applySets parses name=value assignments through each parameter's own value parser.
func applySets(base *plugin.Base, sets []string) error {
	for _, s := range sets {
		name, text, ok := strings.Cut(s, "=")
		if !ok {
			return fmt.Errorf("bad assignment %q, want name=value", s)
		}
		index, ok := base.Parameters().Lookup(strings.TrimSpace(name))
		if !ok {
			return fmt.Errorf("unknown parameter %q", name)
		}
		v, err := base.Parameter(index).ParseValue(strings.TrimSpace(text))
		if err != nil {
			return fmt.Errorf("parameter %q: %w", name, err)
		}
		base.SetParameter(index, v)
	}
	return nil
}

func writeState(base *plugin.Base, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer multierr.AppendInvoke(&err, multierr.Close(f))
	return base.SaveState(f)
}
