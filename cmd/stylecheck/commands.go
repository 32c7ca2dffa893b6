// Copyright (C) 2025 Idiomatic JS Project (maintainers@idiomaticjs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idiomaticjs/stylecheck/report"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// exitFailure is the exit code for operational failures, as opposed to
// runs that completed and found issues.
const exitFailure = report.ExitFailure

// --- Global Command Variables ---
var (
	configPath   string
	logDir       string
	formatName   string
	failOnName   string
	onlyRules    []string
	excludeRules []string
	diffPath     string
	concurrency  int
	colorMode    string
	verbose      bool
	quiet        bool

	debounceMillis int

	rootCmd = &cobra.Command{
		Use:   "stylecheck",
		Short: "A style and convention checker for JavaScript sources",
		Long: `stylecheck scans JavaScript files and reports deviations from
the house style: naming conventions, brace placement, quoting,
indentation, semicolons, strict equality, and implicit globals.`,
	}

	checkCmd = &cobra.Command{
		Use:   "check [path...]",
		Short: "Check files or directories and report style findings",
		Args:  cobra.MinimumNArgs(1),
		Run:   runCheck, // Defined in cmd_check.go
	}

	watchCmd = &cobra.Command{
		Use:   "watch [path]",
		Short: "Watch a directory and re-check JavaScript files as they change",
		Args:  cobra.ExactArgs(1),
		Run:   runWatch, // Defined in cmd_watch.go
	}

	rulesCmd = &cobra.Command{
		Use:   "rules",
		Short: "List the available rules with their default severities",
		Run:   runRules, // Defined in cmd_rules.go
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the stylecheck version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("stylecheck %s\n", Version)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"Path to a .stylecheck.yaml config file (default: search upward from the input)")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "",
		"Directory for JSON log files (default: no file logging)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"Suppress log output (findings are still reported)")

	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVarP(&formatName, "format", "f", "text",
		"Output format: text or json")
	checkCmd.Flags().StringVar(&failOnName, "fail-on", "warning",
		"Lowest severity that causes a non-zero exit: info, warning, or error")
	checkCmd.Flags().StringSliceVar(&onlyRules, "rules", nil,
		"Run only these rule IDs (comma-separated)")
	checkCmd.Flags().StringSliceVar(&excludeRules, "exclude-rules", nil,
		"Skip these rule IDs (comma-separated)")
	checkCmd.Flags().StringVar(&diffPath, "diff", "",
		"Unified diff file; only report findings on added or changed lines")
	checkCmd.Flags().IntVar(&concurrency, "max-concurrency", 0,
		"Maximum number of files checked in parallel (0 uses the default)")
	checkCmd.Flags().StringVar(&colorMode, "color", "auto",
		"Colorize text output: auto, always, or never")

	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().IntVar(&debounceMillis, "debounce", 200,
		"Debounce window in milliseconds before re-checking changed files")
	watchCmd.Flags().StringVar(&colorMode, "color", "auto",
		"Colorize text output: auto, always, or never")

	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(versionCmd)
}
