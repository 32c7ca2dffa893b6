// Copyright (C) 2025 Idiomatic JS Project (maintainers@idiomaticjs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package rules

import (
	"fmt"

	"github.com/idiomaticjs/stylecheck/lint"
	"github.com/idiomaticjs/stylecheck/scanner"
)

// EqeqeqRule forbids the coercing equality operators. With AllowEqNull
// set, `== null` / `!= null` pass as the combined null-or-undefined
// check.
type EqeqeqRule struct{}

// ID returns the rule identifier.
func (r *EqeqeqRule) ID() string { return "eqeqeq" }

// Description returns the rule summary.
func (r *EqeqeqRule) Description() string {
	return "strict equality operators (=== and !==) only"
}

// DefaultSeverity returns the severity assigned without policy.
func (r *EqeqeqRule) DefaultSeverity() lint.Severity { return lint.SeverityError }

// Check evaluates the rule against a model.
func (r *EqeqeqRule) Check(model *scanner.Model, settings *lint.Settings) []lint.Issue {
	allowNull := settings != nil && settings.AllowEqNull

	issues := make([]lint.Issue, 0)
	for _, eq := range model.Equalities {
		var strict string
		switch eq.Operator {
		case "==":
			strict = "==="
		case "!=":
			strict = "!=="
		default:
			continue
		}
		if allowNull && eq.NullOperand {
			continue
		}
		issues = append(issues, lint.Issue{
			File:       model.FilePath,
			Line:       eq.Line,
			Column:     eq.Column,
			Rule:       r.ID(),
			Severity:   r.DefaultSeverity(),
			Message:    fmt.Sprintf("expected %q and instead saw %q", strict, eq.Operator),
			Suggestion: strict,
		})
	}
	return issues
}
