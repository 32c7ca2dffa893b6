// Copyright (C) 2025 Idiomatic JS Project (maintainers@idiomaticjs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package report formats check results for humans and machines.
//
// A Summary aggregates per-file results into one run record with a
// generated run ID. Reporters render the summary: TextReporter for
// terminals, JSONReporter for tooling. ExitCode maps a summary onto
// the process exit convention (0 clean, 1 findings, 2 operational
// failure).
package report

import (
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/idiomaticjs/stylecheck/lint"
)

// =============================================================================
// SUMMARY
// =============================================================================

// Summary aggregates the results of one check run.
//
// Thread Safety: Immutable after creation.
type Summary struct {
	// RunID uniquely identifies this run.
	RunID string `json:"run_id"`

	// Results are the per-file outcomes in check order.
	Results []*lint.Result `json:"results"`

	// FileCount is the number of files checked.
	FileCount int `json:"file_count"`

	// ErrorCount is the total blocking issues across files.
	ErrorCount int `json:"error_count"`

	// WarningCount is the total warnings across files.
	WarningCount int `json:"warning_count"`

	// InfoCount is the total informational issues across files.
	InfoCount int `json:"info_count"`

	// Duration is the wall-clock time of the whole run.
	Duration time.Duration `json:"duration"`
}

// NewSummary builds a summary over per-file results.
func NewSummary(results []*lint.Result, duration time.Duration) *Summary {
	s := &Summary{
		RunID:    uuid.NewString(),
		Results:  make([]*lint.Result, 0, len(results)),
		Duration: duration,
	}
	for _, result := range results {
		if result == nil {
			continue
		}
		s.Results = append(s.Results, result)
		s.FileCount++
		s.ErrorCount += len(result.Errors)
		s.WarningCount += len(result.Warnings)
		s.InfoCount += len(result.Infos)
	}
	return s
}

// Clean reports whether the run produced no issues at all.
func (s *Summary) Clean() bool {
	return s.ErrorCount == 0 && s.WarningCount == 0 && s.InfoCount == 0
}

// IssueCount returns the total issues of all severities.
func (s *Summary) IssueCount() int {
	return s.ErrorCount + s.WarningCount + s.InfoCount
}

// =============================================================================
// REPORTER
// =============================================================================

// Reporter renders a run summary to a writer.
type Reporter interface {
	// Report writes the summary. Implementations must not retain w.
	Report(w io.Writer, summary *Summary) error
}

// =============================================================================
// EXIT CODES
// =============================================================================

// Process exit codes.
const (
	// ExitClean indicates no findings at or above the threshold.
	ExitClean = 0

	// ExitFindings indicates style findings at or above the threshold.
	ExitFindings = 1

	// ExitFailure indicates the run itself failed.
	ExitFailure = 2
)

// ExitCode maps a summary to a process exit code.
//
// Description:
//
//	failOn is the minimum severity that fails the run. With
//	SeverityWarning, warnings and errors fail; with SeverityError only
//	errors do; with SeverityInfo any finding fails.
//
// Inputs:
//
//	summary - The run summary
//	failOn - Minimum failing severity
//
// Outputs:
//
//	int - ExitClean or ExitFindings
func ExitCode(summary *Summary, failOn lint.Severity) int {
	if summary.ErrorCount > 0 {
		return ExitFindings
	}
	if failOn <= lint.SeverityWarning && summary.WarningCount > 0 {
		return ExitFindings
	}
	if failOn <= lint.SeverityInfo && summary.InfoCount > 0 {
		return ExitFindings
	}
	return ExitClean
}
