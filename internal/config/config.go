// Package config loads the signature-resolver.toml project file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"signature-resolver/internal/plan"
)

// FileName is the project configuration file looked up by Find.
const FileName = "signature-resolver.toml"

// Output color modes.
const (
	ColorAuto = "auto"
	ColorOn   = "on"
	ColorOff  = "off"
)

// Output formats.
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// Config is the content of a project configuration file.
type Config struct {
	Resolver ResolverConfig `toml:"resolver"`
	Output   OutputConfig   `toml:"output"`
}

// ResolverConfig mirrors plan.ResolutionConfig.
type ResolverConfig struct {
	Workers        int  `toml:"workers"`
	Strict         bool `toml:"strict"`
	MaxSuggestions int  `toml:"max_suggestions"`
}

// OutputConfig controls how results are rendered.
type OutputConfig struct {
	Color  string `toml:"color"`
	Format string `toml:"format"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	rc := plan.DefaultConfig()

	return Config{
		Resolver: ResolverConfig{
			Workers:        rc.Workers,
			Strict:         rc.StrictMode,
			MaxSuggestions: rc.MaxSuggestions,
		},
		Output: OutputConfig{
			Color:  ColorAuto,
			Format: FormatText,
		},
	}
}

// Load decodes the file at path on top of Default. Unknown keys are errors.
func Load(path string) (Config, error) {
	cfg := Default()

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}

		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Find looks for FileName in startDir and its parents.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}

		dir = parent
	}
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	var errs []error

	if c.Resolver.Workers < 0 {
		errs = append(errs, fmt.Errorf("[resolver].workers must not be negative, got %d", c.Resolver.Workers))
	}

	if c.Resolver.MaxSuggestions < 0 {
		errs = append(errs, fmt.Errorf("[resolver].max_suggestions must not be negative, got %d",
			c.Resolver.MaxSuggestions))
	}

	switch c.Output.Color {
	case ColorAuto, ColorOn, ColorOff:
	default:
		errs = append(errs, fmt.Errorf("[output].color must be auto, on or off, got %q", c.Output.Color))
	}

	switch c.Output.Format {
	case FormatText, FormatYAML:
	default:
		errs = append(errs, fmt.Errorf("[output].format must be text or yaml, got %q", c.Output.Format))
	}

	return errors.Join(errs...)
}

// ResolutionConfig converts the resolver section.
func (c Config) ResolutionConfig() plan.ResolutionConfig {
	return plan.ResolutionConfig{
		Workers:        c.Resolver.Workers,
		StrictMode:     c.Resolver.Strict,
		MaxSuggestions: c.Resolver.MaxSuggestions,
	}
}
