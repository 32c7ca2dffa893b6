// Copyright (C) 2025 Idiomatic JS Project (maintainers@idiomaticjs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package lint

import (
	"path/filepath"
	"strconv"
	"time"
)

// =============================================================================
// SEVERITY
// =============================================================================

// Severity represents the severity level of a style issue.
type Severity int

const (
	// SeverityInfo represents informational/style notes.
	SeverityInfo Severity = iota

	// SeverityWarning represents issues worth fixing that don't fail by default.
	SeverityWarning

	// SeverityError represents issues that fail the run.
	SeverityError
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// SeverityFromString parses a severity string.
//
// Description:
//
//	Accepts the common spellings. Unknown values default to
//	SeverityWarning.
//
// Inputs:
//
//	s - Severity string (e.g., "error", "warning", "info")
//
// Outputs:
//
//	Severity - The parsed severity level
func SeverityFromString(s string) Severity {
	switch s {
	case "error", "err", "fatal", "critical":
		return SeverityError
	case "warning", "warn":
		return SeverityWarning
	case "info", "note", "style", "hint":
		return SeverityInfo
	default:
		return SeverityWarning
	}
}

// =============================================================================
// ISSUE
// =============================================================================

// Issue represents a single style violation found by a rule.
//
// Thread Safety: Immutable after creation.
type Issue struct {
	// File is the path to the file containing the issue.
	File string `json:"file"`

	// Line is the 1-indexed line number where the issue occurs.
	Line int `json:"line"`

	// Column is the 1-indexed column number where the issue occurs.
	// May be 0 when the rule has no column information.
	Column int `json:"column,omitempty"`

	// EndLine is the ending line for multi-line issues.
	EndLine int `json:"end_line,omitempty"`

	// EndColumn is the ending column for the issue.
	EndColumn int `json:"end_column,omitempty"`

	// Rule is the rule identifier that triggered (e.g., "quotes").
	Rule string `json:"rule"`

	// Severity is the severity level of the issue.
	Severity Severity `json:"severity"`

	// Message is the human-readable description of the issue.
	Message string `json:"message"`

	// Suggestion is a suggested fix if available.
	Suggestion string `json:"suggestion,omitempty"`
}

// Location returns a formatted location string (file:line:col).
func (i *Issue) Location() string {
	if i.Column > 0 {
		return i.File + ":" + strconv.Itoa(i.Line) + ":" + strconv.Itoa(i.Column)
	}
	return i.File + ":" + strconv.Itoa(i.Line)
}

// =============================================================================
// RESULT
// =============================================================================

// Result contains the outcome of checking one file.
//
// Thread Safety: Immutable after creation by the engine.
type Result struct {
	// Valid is true if no blocking errors were found.
	Valid bool `json:"valid"`

	// Errors are issues with SeverityError after policy.
	Errors []Issue `json:"errors"`

	// Warnings are issues with SeverityWarning after policy.
	Warnings []Issue `json:"warnings"`

	// Infos are informational issues.
	Infos []Issue `json:"infos,omitempty"`

	// Duration is how long the check took, scan included.
	Duration time.Duration `json:"duration"`

	// FilePath is the file that was checked.
	FilePath string `json:"file_path,omitempty"`

	// Hash is the hex SHA-256 of the bytes that were checked.
	Hash string `json:"hash,omitempty"`

	// SyntaxErrors is true when the scan reported parse errors and the
	// result may be partial.
	SyntaxErrors bool `json:"syntax_errors,omitempty"`
}

// HasErrors returns true if there are any blocking errors.
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings returns true if there are any warnings.
func (r *Result) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// HasIssues returns true if there are any issues of any severity.
func (r *Result) HasIssues() bool {
	return len(r.Errors) > 0 || len(r.Warnings) > 0 || len(r.Infos) > 0
}

// AllIssues returns all issues combined.
func (r *Result) AllIssues() []Issue {
	total := len(r.Errors) + len(r.Warnings) + len(r.Infos)
	issues := make([]Issue, 0, total)
	issues = append(issues, r.Errors...)
	issues = append(issues, r.Warnings...)
	issues = append(issues, r.Infos...)
	return issues
}

// IssueCount returns the total number of issues.
func (r *Result) IssueCount() int {
	return len(r.Errors) + len(r.Warnings) + len(r.Infos)
}

// =============================================================================
// CHECK OPTIONS
// =============================================================================

// CheckOptions configures a single check operation.
type CheckOptions struct {
	// Rules limits checking to specific rule IDs. Empty means all rules.
	Rules []string

	// ExcludeRules excludes specific rule IDs from checking.
	ExcludeRules []string

	// IncludeGlobs limits directory collection to matching paths.
	// Empty means every JavaScript file. A glob matches against the
	// file's base name or its slash-separated path relative to the
	// walked directory.
	IncludeGlobs []string

	// ExcludeGlobs removes matching paths from directory collection.
	ExcludeGlobs []string
}

// DefaultCheckOptions returns the default options.
func DefaultCheckOptions() CheckOptions {
	return CheckOptions{}
}

// ruleEnabled reports whether a rule ID passes the include/exclude
// filters.
func (o CheckOptions) ruleEnabled(id string) bool {
	for _, excluded := range o.ExcludeRules {
		if excluded == id {
			return false
		}
	}
	if len(o.Rules) == 0 {
		return true
	}
	for _, included := range o.Rules {
		if included == id {
			return true
		}
	}
	return false
}

// pathSelected reports whether a collected file passes the
// include/exclude globs. relPath is relative to the walked directory.
func (o CheckOptions) pathSelected(relPath string) bool {
	for _, glob := range o.ExcludeGlobs {
		if globMatches(glob, relPath) {
			return false
		}
	}
	if len(o.IncludeGlobs) == 0 {
		return true
	}
	for _, glob := range o.IncludeGlobs {
		if globMatches(glob, relPath) {
			return true
		}
	}
	return false
}

// globMatches matches a glob against the base name or the full
// relative path. Malformed patterns match nothing.
func globMatches(glob, relPath string) bool {
	if ok, _ := filepath.Match(glob, filepath.Base(relPath)); ok {
		return true
	}
	ok, _ := filepath.Match(glob, filepath.ToSlash(relPath))
	return ok
}
