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

// NoImplicitGlobalsRule flags assignments to names no enclosing scope
// declares. With StrictGlobals set it also flags `var` declarations at
// program scope, which become properties of the global object in
// non-module code.
type NoImplicitGlobalsRule struct{}

// ID returns the rule identifier.
func (r *NoImplicitGlobalsRule) ID() string { return "no-implicit-globals" }

// Description returns the rule summary.
func (r *NoImplicitGlobalsRule) Description() string {
	return "no assignments to undeclared names"
}

// DefaultSeverity returns the severity assigned without policy.
func (r *NoImplicitGlobalsRule) DefaultSeverity() lint.Severity { return lint.SeverityError }

// Check evaluates the rule against a model.
func (r *NoImplicitGlobalsRule) Check(model *scanner.Model, settings *lint.Settings) []lint.Issue {
	issues := make([]lint.Issue, 0)

	for _, assign := range model.Assignments {
		if assign.Declared {
			continue
		}
		issues = append(issues, lint.Issue{
			File:       model.FilePath,
			Line:       assign.Line,
			Column:     assign.Column,
			Rule:       r.ID(),
			Severity:   r.DefaultSeverity(),
			Message:    fmt.Sprintf("assignment to undeclared name %q creates an implicit global", assign.Name),
			Suggestion: "declare it with var, let, or const in the intended scope",
		})
	}

	if settings != nil && settings.StrictGlobals {
		for _, decl := range model.Declarations {
			if decl.Kind != scanner.DeclVar || decl.FunctionDepth != 0 {
				continue
			}
			issues = append(issues, lint.Issue{
				File:       model.FilePath,
				Line:       decl.Line,
				Column:     decl.Column,
				Rule:       r.ID() + "/top-level-var",
				Severity:   r.DefaultSeverity(),
				Message:    fmt.Sprintf("var %q at program scope pollutes the global object", decl.Name),
				Suggestion: "wrap it in a module closure or use let/const",
			})
		}
	}

	return issues
}
