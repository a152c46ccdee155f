// Package config loads the mjscore configuration file.
package config

import (
	"fmt"
	"os"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config represents the complete configuration
type Config struct {
	Engine EngineSettings `hcl:"engine,block"`
	Batch  BatchSettings  `hcl:"batch,block"`
}

// EngineSettings selects the rule set and logging
type EngineSettings struct {
	Ruleset     string `hcl:"ruleset,optional"`
	RulesetFile string `hcl:"ruleset_file,optional"`
	LogLevel    string `hcl:"log_level,optional"`
}

// BatchSettings configures batch scoring
type BatchSettings struct {
	Workers int    `hcl:"workers,optional"`
	Output  string `hcl:"output,optional"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		Engine: EngineSettings{
			Ruleset:  "classical",
			LogLevel: "warn",
		},
		Batch: BatchSettings{
			Workers: runtime.NumCPU(),
		},
	}
}

// Load loads the configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	// Blocks are optional, so decode into a struct with pointers first.
	var raw struct {
		Engine *EngineSettings `hcl:"engine,block"`
		Batch  *BatchSettings  `hcl:"batch,block"`
	}
	diags = gohcl.DecodeBody(file.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config := Default()
	if raw.Engine != nil {
		if raw.Engine.Ruleset != "" {
			config.Engine.Ruleset = raw.Engine.Ruleset
		}
		if raw.Engine.LogLevel != "" {
			config.Engine.LogLevel = raw.Engine.LogLevel
		}
		config.Engine.RulesetFile = raw.Engine.RulesetFile
	}
	if raw.Batch != nil {
		if raw.Batch.Workers != 0 {
			config.Batch.Workers = raw.Batch.Workers
		}
		config.Batch.Output = raw.Batch.Output
	}
	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Engine.Ruleset == "" {
		return fmt.Errorf("ruleset name cannot be empty")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.Batch.Workers < 1 {
		return fmt.Errorf("invalid batch workers: %d", c.Batch.Workers)
	}
	return nil
}

// Level parses the configured log level
func (c *Config) Level() (log.Level, error) {
	level, err := log.ParseLevel(c.Engine.LogLevel)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("invalid log level %q: %w", c.Engine.LogLevel, err)
	}
	return level, nil
}
