// Copyright (C) 2025 Idiomatic JS Project (maintainers@idiomaticjs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package config loads and validates the checker configuration.
//
// Configuration comes from a YAML file (.stylecheck.yaml by default),
// with documented defaults embedded in the binary so a project needs
// no file at all. Decoding is strict: unknown keys are rejected so
// typos fail loudly instead of silently disabling rules.
//
// Thread Safety:
//
//	All exported functions are safe for concurrent use. A loaded
//	Config is immutable by convention.
package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gopkg.in/yaml.v3"

	"github.com/idiomaticjs/stylecheck/lint"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// DefaultFileName is the per-project configuration file name.
	DefaultFileName = ".stylecheck.yaml"

	// MaxConfigFileSize caps configuration reads (1MB).
	MaxConfigFileSize = 1024 * 1024
)

// =============================================================================
// Embedded Defaults
// =============================================================================

//go:embed default_config.yaml
var defaultConfigYAML []byte

// =============================================================================
// Prometheus Metrics
// =============================================================================

var (
	configLoadErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stylecheck_config_load_errors_total",
		Help: "Total configuration load errors",
	})

	configLoadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "stylecheck_config_load_duration_seconds",
		Help:    "Duration of configuration loading",
		Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5},
	})
)

// =============================================================================
// Types
// =============================================================================

// RuleConfig is the common per-rule toggle and severity override.
type RuleConfig struct {
	// Enabled turns the rule on or off. Nil means enabled.
	Enabled *bool `yaml:"enabled"`

	// Severity overrides the rule's default severity.
	Severity string `yaml:"severity" validate:"omitempty,oneof=error warning info"`
}

// IsEnabled resolves the nil-means-enabled default.
func (r RuleConfig) IsEnabled() bool {
	return r.Enabled == nil || *r.Enabled
}

// QuotesConfig configures the quotes rule.
type QuotesConfig struct {
	RuleConfig `yaml:",inline"`

	// Preferred is the preferred delimiter: single or double.
	Preferred string `yaml:"preferred" validate:"omitempty,oneof=single double"`
}

// IndentConfig configures the indent rule.
type IndentConfig struct {
	RuleConfig `yaml:",inline"`

	// Style is space or tab.
	Style string `yaml:"style" validate:"omitempty,oneof=space tab"`

	// Width is the space count per level. Ignored for tabs.
	Width int `yaml:"width" validate:"omitempty,min=1,max=16"`
}

// EqeqeqConfig configures the eqeqeq rule.
type EqeqeqConfig struct {
	RuleConfig `yaml:",inline"`

	// AllowNull permits `== null` as the null-or-undefined idiom.
	AllowNull bool `yaml:"allow_null"`
}

// GlobalsConfig configures the no-implicit-globals rule.
type GlobalsConfig struct {
	RuleConfig `yaml:",inline"`

	// Strict also flags var declarations at program scope.
	Strict bool `yaml:"strict"`
}

// PathsConfig selects which files a directory check collects.
//
// Globs match a file's base name or its slash-separated path relative
// to the checked directory.
type PathsConfig struct {
	// Include limits collection to matching paths. Empty means every
	// JavaScript file.
	Include []string `yaml:"include"`

	// Exclude removes matching paths from collection.
	Exclude []string `yaml:"exclude"`
}

// RulesConfig holds the per-rule sections.
type RulesConfig struct {
	Naming            RuleConfig    `yaml:"naming"`
	BraceStyle        RuleConfig    `yaml:"brace-style"`
	Quotes            QuotesConfig  `yaml:"quotes"`
	Indent            IndentConfig  `yaml:"indent"`
	Semi              RuleConfig    `yaml:"semi"`
	Eqeqeq            EqeqeqConfig  `yaml:"eqeqeq"`
	NoImplicitGlobals GlobalsConfig `yaml:"no-implicit-globals"`
}

// Config is the root configuration document.
type Config struct {
	// Version is the config schema version. Only 1 exists.
	Version int `yaml:"version" validate:"required,eq=1"`

	// MaxFileSize caps source reads in bytes.
	MaxFileSize int64 `yaml:"max_file_size" validate:"omitempty,min=1"`

	// Paths selects which files directory checks collect.
	Paths PathsConfig `yaml:"paths"`

	// Rules holds the per-rule sections.
	Rules RulesConfig `yaml:"rules"`
}

// =============================================================================
// Loading
// =============================================================================

// Default returns the embedded default configuration.
func Default() *Config {
	cfg, err := parse(defaultConfigYAML)
	if err != nil {
		// The embedded document is validated by tests; reaching here is
		// a build defect.
		panic(fmt.Sprintf("embedded default config invalid: %v", err))
	}
	return cfg
}

// Load reads and validates a configuration file.
//
// Description:
//
//	Reads the file with a size cap, strictly decodes it, and runs
//	struct validation. Unknown YAML keys are an error.
//
// Inputs:
//
//	path - Path to the YAML file
//
// Outputs:
//
//	*Config - The validated configuration
//	error - Non-nil when the file is missing, oversized, or invalid
func Load(path string) (*Config, error) {
	start := time.Now()
	defer func() {
		configLoadDuration.Observe(time.Since(start).Seconds())
	}()

	info, err := os.Stat(path)
	if err != nil {
		configLoadErrors.Inc()
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if info.Size() > MaxConfigFileSize {
		configLoadErrors.Inc()
		return nil, fmt.Errorf("config file %s exceeds %d bytes", path, MaxConfigFileSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		configLoadErrors.Inc()
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg, err := parse(data)
	if err != nil {
		configLoadErrors.Inc()
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault loads a config file when it exists, falling back to
// the embedded defaults when it doesn't.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// parse strictly decodes and validates a config document.
func parse(data []byte) (*Config, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var cfg Config
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validating: %w", err)
	}
	return &cfg, nil
}

// =============================================================================
// Conversion
// =============================================================================

// Settings converts the config to the rule settings the engine needs.
func (c *Config) Settings() *lint.Settings {
	settings := lint.DefaultSettings()
	if c.Rules.Quotes.Preferred != "" {
		settings.Quote = c.Rules.Quotes.Preferred
	}
	if c.Rules.Indent.Style != "" {
		settings.IndentStyle = c.Rules.Indent.Style
	}
	if c.Rules.Indent.Width > 0 {
		settings.IndentWidth = c.Rules.Indent.Width
	}
	settings.AllowEqNull = c.Rules.Eqeqeq.AllowNull
	settings.StrictGlobals = c.Rules.NoImplicitGlobals.Strict
	return settings
}

// Policy converts the per-rule severities and toggles into a policy.
func (c *Config) Policy() *lint.RulePolicy {
	policy := &lint.RulePolicy{}

	add := func(id string, rc RuleConfig) {
		if !rc.IsEnabled() {
			policy.Ignore = append(policy.Ignore, id)
			return
		}
		switch rc.Severity {
		case "error":
			policy.BlockOn = append(policy.BlockOn, id)
		case "warning":
			policy.WarnOn = append(policy.WarnOn, id)
		case "info":
			policy.InfoOn = append(policy.InfoOn, id)
		}
	}

	add("naming", c.Rules.Naming)
	add("brace-style", c.Rules.BraceStyle)
	add("quotes", c.Rules.Quotes.RuleConfig)
	add("indent", c.Rules.Indent.RuleConfig)
	add("semi", c.Rules.Semi)
	add("eqeqeq", c.Rules.Eqeqeq.RuleConfig)
	add("no-implicit-globals", c.Rules.NoImplicitGlobals.RuleConfig)
	return policy
}

// DisabledRules returns the rule IDs turned off by the config, in the
// shape CheckOptions.ExcludeRules expects.
func (c *Config) DisabledRules() []string {
	disabled := make([]string, 0)

	check := func(id string, rc RuleConfig) {
		if !rc.IsEnabled() {
			disabled = append(disabled, id)
		}
	}

	check("naming", c.Rules.Naming)
	check("brace-style", c.Rules.BraceStyle)
	check("quotes", c.Rules.Quotes.RuleConfig)
	check("indent", c.Rules.Indent.RuleConfig)
	check("semi", c.Rules.Semi)
	check("eqeqeq", c.Rules.Eqeqeq.RuleConfig)
	check("no-implicit-globals", c.Rules.NoImplicitGlobals.RuleConfig)
	return disabled
}
