package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/lox/mahjongg/internal/config"
	"github.com/lox/mahjongg/internal/rule"
	"github.com/lox/mahjongg/internal/ruleset"
)

// Globals are flags shared by every command
type Globals struct {
	Config      string `kong:"default='mjscore.hcl',type='path',help='Configuration file'"`
	Ruleset     string `kong:"short='r',help='Ruleset name (overrides config)'"`
	RulesetFile string `kong:"type='path',help='HCL file with additional rulesets'"`
	LogLevel    string `kong:"help='Log level: debug, info, warn, error'"`
	NoColor     bool   `kong:"help='Disable colored output'"`
}

// env is everything a command needs after flags and config are resolved
type env struct {
	config   *config.Config
	logger   *log.Logger
	rulesets *ruleset.Set
	ruleset  *rule.Ruleset
}

func (g *Globals) setup() (*env, error) {
	if g.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if g.Ruleset != "" {
		cfg.Engine.Ruleset = g.Ruleset
	}
	if g.RulesetFile != "" {
		cfg.Engine.RulesetFile = g.RulesetFile
	}
	if g.LogLevel != "" {
		cfg.Engine.LogLevel = g.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	level, _ := cfg.Level()
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: level})

	set, err := ruleset.Default()
	if err != nil {
		return nil, err
	}
	if cfg.Engine.RulesetFile != "" {
		set, err = ruleset.Load(cfg.Engine.RulesetFile, set)
		if err != nil {
			return nil, err
		}
		logger.Debug("Loaded rulesets", "file", cfg.Engine.RulesetFile, "names", set.Names())
	}

	rs, err := set.Get(cfg.Engine.Ruleset)
	if err != nil {
		return nil, err
	}

	return &env{
		config:   cfg,
		logger:   logger,
		rulesets: set,
		ruleset:  rs,
	}, nil
}
