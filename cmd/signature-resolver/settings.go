package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"signature-resolver/internal/config"
)

// settings is the configuration file merged with command-line flags.
type settings struct {
	config  config.Config
	printer *printer
}

func loadSettings(cmd *cobra.Command) (*settings, error) {
	flags := cmd.Flags()

	path, err := flags.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}

	if path == "" {
		found, ok, err := config.Find(".")
		if err != nil {
			return nil, err
		}

		if ok {
			path = found
		}
	}

	cfg := config.Default()

	if path != "" {
		cfg, err = config.Load(path)
		if err != nil {
			return nil, err
		}
	}

	if flags.Changed("workers") {
		if cfg.Resolver.Workers, err = flags.GetInt("workers"); err != nil {
			return nil, fmt.Errorf("failed to get workers flag: %w", err)
		}
	}

	if flags.Changed("strict") {
		if cfg.Resolver.Strict, err = flags.GetBool("strict"); err != nil {
			return nil, fmt.Errorf("failed to get strict flag: %w", err)
		}
	}

	if flags.Changed("color") {
		if cfg.Output.Color, err = flags.GetString("color"); err != nil {
			return nil, fmt.Errorf("failed to get color flag: %w", err)
		}
	}

	if flags.Changed("format") {
		if cfg.Output.Format, err = flags.GetString("format"); err != nil {
			return nil, fmt.Errorf("failed to get format flag: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	out := cmd.OutOrStdout()

	return &settings{
		config:  cfg,
		printer: newPrinter(out, colorEnabled(cfg.Output.Color, out)),
	}, nil
}

func colorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorOn:
		return true
	case config.ColorOff:
		return false
	}

	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
