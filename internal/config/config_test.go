package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mjscore.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	require.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, `
engine {
  ruleset      = "house"
  ruleset_file = "rules/local.hcl"
  log_level    = "debug"
}

batch {
  workers = 3
  output  = "scores.tsv"
}
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "house", cfg.Engine.Ruleset)
	assert.Equal(t, "rules/local.hcl", cfg.Engine.RulesetFile)
	assert.Equal(t, 3, cfg.Batch.Workers)
	assert.Equal(t, "scores.tsv", cfg.Batch.Output)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, log.DebugLevel, level)
}

func TestLoadPartial(t *testing.T) {
	t.Parallel()
	cfg, err := Load(writeConfig(t, `batch { workers = 2 }`))
	require.NoError(t, err)
	assert.Equal(t, "classical", cfg.Engine.Ruleset)
	assert.Equal(t, "warn", cfg.Engine.LogLevel)
	assert.Equal(t, 2, cfg.Batch.Workers)
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()
	_, err := Load(writeConfig(t, `engine {`))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, `engine { colour = "red" }`))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"empty ruleset", func(c *Config) { c.Engine.Ruleset = "" }},
		{"bad log level", func(c *Config) { c.Engine.LogLevel = "loud" }},
		{"no workers", func(c *Config) { c.Batch.Workers = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
