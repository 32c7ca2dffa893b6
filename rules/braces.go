// Copyright (C) 2025 Idiomatic JS Project (maintainers@idiomaticjs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package rules

import (
	"github.com/idiomaticjs/stylecheck/lint"
	"github.com/idiomaticjs/stylecheck/scanner"
)

// BraceStyleRule enforces one-true-brace style: the opening brace sits
// on the same line as its construct header, and `else` cuddles against
// the closing brace of the preceding block.
type BraceStyleRule struct{}

// ID returns the rule identifier.
func (r *BraceStyleRule) ID() string { return "brace-style" }

// Description returns the rule summary.
func (r *BraceStyleRule) Description() string {
	return "opening braces on the declaration line, else on the closing-brace line"
}

// DefaultSeverity returns the severity assigned without policy.
func (r *BraceStyleRule) DefaultSeverity() lint.Severity { return lint.SeverityWarning }

// Check evaluates the rule against a model.
func (r *BraceStyleRule) Check(model *scanner.Model, settings *lint.Settings) []lint.Issue {
	issues := make([]lint.Issue, 0)

	for _, block := range model.Blocks {
		if block.Line == block.HeaderLine {
			continue
		}
		issues = append(issues, lint.Issue{
			File:       model.FilePath,
			Line:       block.Line,
			Column:     block.Column,
			Rule:       r.ID(),
			Severity:   r.DefaultSeverity(),
			Message:    "opening brace must be on the same line as its declaration",
			Suggestion: "move the brace up to the end of the preceding line",
		})
	}

	for _, elseClause := range model.Elses {
		if elseClause.Line == elseClause.PriorEndLine {
			continue
		}
		issues = append(issues, lint.Issue{
			File:       model.FilePath,
			Line:       elseClause.Line,
			Column:     elseClause.Column,
			Rule:       r.ID(),
			Severity:   r.DefaultSeverity(),
			Message:    "else must be on the same line as the closing brace",
			Suggestion: "write `} else {`",
		})
	}

	return issues
}
