package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoad_OverridesDefaults(t *testing.T) {
	yml := `
detect:
  angle_tolerance: 5
  edge_margin: 60
extract:
  workers: 2
  timeout: 5s
  cache_ttl: 1m
  language: deu
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5.0, cfg.Detect.AngleTolerance)
	assert.Equal(t, 60, cfg.Detect.EdgeMargin)
	assert.Equal(t, 2, cfg.Extract.Workers)
	assert.Equal(t, 5*time.Second, cfg.Extract.Timeout.Std())
	assert.Equal(t, time.Minute, cfg.Extract.CacheTTL.Std())
	assert.Equal(t, "deu", cfg.Extract.Language)

	// Untouched settings keep their defaults.
	assert.Equal(t, 70, cfg.Detect.HoughThreshold)
	assert.Equal(t, 11, cfg.Preprocess.ThresholdWindow)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("detect: ["), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"even threshold window", func(c *Config) { c.Preprocess.ThresholdWindow = 10 }},
		{"tiny threshold window", func(c *Config) { c.Preprocess.ThresholdWindow = 1 }},
		{"no erosion kernels", func(c *Config) { c.Detect.KernelDivisors = nil }},
		{"mismatched kernel widths", func(c *Config) { c.Detect.MinKernelWidths = []int{10} }},
		{"zero workers", func(c *Config) { c.Extract.Workers = 0 }},
		{"zero verse bound", func(c *Config) { c.Score.MaxVerse = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestDuration_UnmarshalForms(t *testing.T) {
	var d struct {
		A Duration `yaml:"a"`
		B Duration `yaml:"b"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("a: 1h30m\nb: 250ms\n"), &d))
	assert.Equal(t, 90*time.Minute, d.A.Std())
	assert.Equal(t, 250*time.Millisecond, d.B.Std())
}

func TestDuration_RejectsGarbage(t *testing.T) {
	var d struct {
		A Duration `yaml:"a"`
	}
	assert.Error(t, yaml.Unmarshal([]byte("a: not-a-duration\n"), &d))
}
