// Copyright (C) 2025 Idiomatic JS Project (maintainers@idiomaticjs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/idiomaticjs/stylecheck/config"
	"github.com/idiomaticjs/stylecheck/lint"
	"github.com/idiomaticjs/stylecheck/pkg/logging"
	"github.com/idiomaticjs/stylecheck/report"
	"github.com/idiomaticjs/stylecheck/rules"
	"github.com/idiomaticjs/stylecheck/scanner"
)

// runCheck checks the given paths and reports findings.
func runCheck(cmd *cobra.Command, args []string) {
	logger := newLogger("cli")
	defer logger.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(args[0], logger)
	if err != nil {
		logger.Error("config load failed", "error", err.Error())
		os.Exit(exitFailure)
	}

	engine := buildEngine(cfg)
	opts := buildCheckOptions(cfg)

	start := time.Now()
	results, err := checkPaths(ctx, engine, args, opts)
	if err != nil {
		logger.Error("check failed", "error", err.Error())
		os.Exit(exitFailure)
	}

	if diffPath != "" {
		patch, err := os.ReadFile(diffPath)
		if err != nil {
			logger.Error("diff unreadable", "path", diffPath, "error", err.Error())
			os.Exit(exitFailure)
		}
		filter, err := report.NewDiffFilter(patch)
		if err != nil {
			logger.Error("diff unparseable", "path", diffPath, "error", err.Error())
			os.Exit(exitFailure)
		}
		results = filter.Apply(results)
	}

	summary := report.NewSummary(results, time.Since(start))
	logger.Info("check completed",
		"files", summary.FileCount,
		"errors", summary.ErrorCount,
		"warnings", summary.WarningCount,
		"duration_ms", summary.Duration.Milliseconds(),
	)

	if err := buildReporter().Report(os.Stdout, summary); err != nil {
		logger.Error("report failed", "error", err.Error())
		os.Exit(exitFailure)
	}

	os.Exit(report.ExitCode(summary, lint.SeverityFromString(failOnName)))
}

// checkPaths dispatches each argument to the engine, directories and
// files alike, and concatenates results in argument order.
func checkPaths(ctx context.Context, engine *lint.Engine, paths []string, opts lint.CheckOptions) ([]*lint.Result, error) {
	var results []*lint.Result

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}

		if info.IsDir() {
			dirResults, err := engine.CheckDirectory(ctx, path, opts)
			if err != nil {
				return nil, err
			}
			results = append(results, dirResults...)
			continue
		}

		result, err := engine.CheckFile(ctx, path, opts)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	return results, nil
}

// buildEngine assembles the engine from config and flags.
func buildEngine(cfg *config.Config) *lint.Engine {
	opts := []lint.Option{
		lint.WithRegistry(rules.DefaultRegistry()),
		lint.WithPolicy(cfg.Policy()),
		lint.WithSettings(cfg.Settings()),
	}
	if cfg.MaxFileSize > 0 {
		opts = append(opts, lint.WithScanner(scanner.New(scanner.WithMaxFileSize(cfg.MaxFileSize))))
	}
	if concurrency > 0 {
		opts = append(opts, lint.WithConcurrency(concurrency))
	}
	return lint.NewEngine(opts...)
}

// buildCheckOptions merges rule selection flags with config toggles.
func buildCheckOptions(cfg *config.Config) lint.CheckOptions {
	opts := lint.DefaultCheckOptions()
	opts.Rules = onlyRules
	opts.ExcludeRules = append(cfg.DisabledRules(), excludeRules...)
	opts.IncludeGlobs = cfg.Paths.Include
	opts.ExcludeGlobs = cfg.Paths.Exclude
	return opts
}

// buildReporter picks the output format from flags.
func buildReporter() report.Reporter {
	if formatName == "json" {
		return report.NewJSONReporter()
	}

	switch colorMode {
	case "always":
		return report.NewTextReporter(report.WithColor(true))
	case "never":
		return report.NewTextReporter(report.WithColor(false))
	default:
		return report.NewTextReporter()
	}
}

// loadConfig resolves the config file for a run.
//
// An explicit --config path must load successfully. Otherwise the
// nearest .stylecheck.yaml found walking up from the first input path
// is used, falling back to embedded defaults.
func loadConfig(inputPath string, logger *logging.Logger) (*config.Config, error) {
	if configPath != "" {
		return config.Load(configPath)
	}

	if found := findConfig(inputPath); found != "" {
		logger.Debug("config found", "path", found)
		return config.Load(found)
	}

	logger.Debug("using default config")
	return config.Default(), nil
}

// findConfig walks up from start looking for the default config file.
func findConfig(start string) string {
	dir, err := filepath.Abs(start)
	if err != nil {
		return ""
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		dir = filepath.Dir(dir)
	}

	for {
		candidate := filepath.Join(dir, config.DefaultFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// newLogger builds the CLI logger from global flags.
func newLogger(service string) *logging.Logger {
	level := logging.LevelInfo
	if verbose {
		level = logging.LevelDebug
	}
	return logging.New(logging.Config{
		Level:   level,
		LogDir:  logDir,
		Service: service,
		Quiet:   quiet,
	})
}
