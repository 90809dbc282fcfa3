package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signature-resolver/internal/plan"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, ColorAuto, cfg.Output.Color)
	assert.Equal(t, FormatText, cfg.Output.Format)
	assert.Equal(t, plan.DefaultConfig(), cfg.ResolutionConfig())
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
[resolver]
workers = 4
strict = true

[output]
format = "yaml"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, plan.ResolutionConfig{Workers: 4, StrictMode: true, MaxSuggestions: 3}, cfg.ResolutionConfig(),
		"keys missing from the file keep their defaults")
	assert.Equal(t, OutputConfig{Color: ColorAuto, Format: FormatYAML}, cfg.Output)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"malformed", "[resolver\n", "failed to parse TOML"},
		{"unknown key", "[resolver]\nthreads = 2\n", "unknown keys: resolver.threads"},
		{"negative workers", "[resolver]\nworkers = -1\n", "[resolver].workers must not be negative"},
		{"bad color", "[output]\ncolor = \"always\"\n", `[output].color must be auto, on or off, got "always"`},
		{"bad format", "[output]\nformat = \"json\"\n", `[output].format must be text or yaml, got "json"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.content)

			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestFind(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	_, ok, err := Find(nested)
	require.NoError(t, err)
	assert.False(t, ok)

	want := writeConfig(t, root, "")

	got, ok, err := Find(nested)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)
}
