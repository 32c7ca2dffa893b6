// Copyright (C) 2025 Idiomatic JS Project (maintainers@idiomaticjs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package report

import (
	"encoding/json"
	"io"

	"github.com/idiomaticjs/stylecheck/lint"
)

// =============================================================================
// JSON SCHEMA
// =============================================================================

// jsonMessage is one issue in the machine-readable schema. The field
// names follow the ESLint JSON formatter so existing CI tooling can
// consume the output unchanged.
type jsonMessage struct {
	RuleID     string `json:"ruleId"`
	Severity   int    `json:"severity"`
	Message    string `json:"message"`
	Line       int    `json:"line"`
	Column     int    `json:"column"`
	EndLine    int    `json:"endLine,omitempty"`
	EndColumn  int    `json:"endColumn,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// jsonFile is one checked file in the machine-readable schema.
type jsonFile struct {
	FilePath     string        `json:"filePath"`
	Messages     []jsonMessage `json:"messages"`
	ErrorCount   int           `json:"errorCount"`
	WarningCount int           `json:"warningCount"`
	Hash         string        `json:"hash,omitempty"`
}

// jsonReport is the root document.
type jsonReport struct {
	RunID        string     `json:"runId"`
	Files        []jsonFile `json:"files"`
	ErrorCount   int        `json:"errorCount"`
	WarningCount int        `json:"warningCount"`
	DurationMs   int64      `json:"durationMs"`
}

// =============================================================================
// JSON REPORTER
// =============================================================================

// JSONReporter renders a summary as a stable JSON document.
//
// Thread Safety: Safe for concurrent use.
type JSONReporter struct {
	// Indent enables pretty-printing.
	Indent bool
}

// NewJSONReporter creates a JSON reporter.
func NewJSONReporter() *JSONReporter {
	return &JSONReporter{}
}

// Report writes the summary as JSON.
func (r *JSONReporter) Report(w io.Writer, summary *Summary) error {
	doc := jsonReport{
		RunID:        summary.RunID,
		Files:        make([]jsonFile, 0, len(summary.Results)),
		ErrorCount:   summary.ErrorCount,
		WarningCount: summary.WarningCount,
		DurationMs:   summary.Duration.Milliseconds(),
	}

	for _, result := range summary.Results {
		file := jsonFile{
			FilePath:     result.FilePath,
			Messages:     make([]jsonMessage, 0, result.IssueCount()),
			ErrorCount:   len(result.Errors),
			WarningCount: len(result.Warnings),
			Hash:         result.Hash,
		}
		for _, issue := range result.AllIssues() {
			file.Messages = append(file.Messages, jsonMessage{
				RuleID:     issue.Rule,
				Severity:   severityCode(issue.Severity),
				Message:    issue.Message,
				Line:       issue.Line,
				Column:     issue.Column,
				EndLine:    issue.EndLine,
				EndColumn:  issue.EndColumn,
				Suggestion: issue.Suggestion,
			})
		}
		doc.Files = append(doc.Files, file)
	}

	encoder := json.NewEncoder(w)
	if r.Indent {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(doc)
}

// severityCode maps severities onto the ESLint numeric convention:
// 1 for warnings, 2 for errors. Infos share the warning code.
func severityCode(s lint.Severity) int {
	if s == lint.SeverityError {
		return 2
	}
	return 1
}

// Ensure JSONReporter implements Reporter.
var _ Reporter = (*JSONReporter)(nil)
