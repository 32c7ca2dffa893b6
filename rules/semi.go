// Copyright (C) 2025 Idiomatic JS Project (maintainers@idiomaticjs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package rules

import (
	"fmt"
	"strings"

	"github.com/idiomaticjs/stylecheck/lint"
	"github.com/idiomaticjs/stylecheck/scanner"
)

// SemiRule requires explicit semicolon termination rather than relying
// on automatic semicolon insertion.
type SemiRule struct{}

// ID returns the rule identifier.
func (r *SemiRule) ID() string { return "semi" }

// Description returns the rule summary.
func (r *SemiRule) Description() string {
	return "statements end with an explicit semicolon"
}

// DefaultSeverity returns the severity assigned without policy.
func (r *SemiRule) DefaultSeverity() lint.Severity { return lint.SeverityError }

// Check evaluates the rule against a model.
func (r *SemiRule) Check(model *scanner.Model, settings *lint.Settings) []lint.Issue {
	issues := make([]lint.Issue, 0)
	for _, stmt := range model.Statements {
		if stmt.Terminated {
			continue
		}
		issues = append(issues, lint.Issue{
			File:       model.FilePath,
			Line:       stmt.EndLine,
			Column:     stmt.EndColumn,
			EndLine:    stmt.EndLine,
			EndColumn:  stmt.EndColumn,
			Rule:       r.ID(),
			Severity:   r.DefaultSeverity(),
			Message:    fmt.Sprintf("missing semicolon after %s", friendlyKind(stmt.Kind)),
			Suggestion: "add a semicolon",
		})
	}
	return issues
}

// friendlyKind renders a tree-sitter statement type for humans.
func friendlyKind(kind string) string {
	return strings.ReplaceAll(strings.TrimSuffix(kind, "_statement"), "_", " ")
}
