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

// IndentRule enforces a consistent indentation unit: spaces of a
// configured width, or tabs. Mixed tabs and spaces are always flagged.
// Continuation lines inside multi-line strings and comments are exempt.
type IndentRule struct{}

// ID returns the rule identifier.
func (r *IndentRule) ID() string { return "indent" }

// Description returns the rule summary.
func (r *IndentRule) Description() string {
	return "consistent indentation unit on every line"
}

// DefaultSeverity returns the severity assigned without policy.
func (r *IndentRule) DefaultSeverity() lint.Severity { return lint.SeverityWarning }

// Check evaluates the rule against a model.
func (r *IndentRule) Check(model *scanner.Model, settings *lint.Settings) []lint.Issue {
	style := lint.IndentSpace
	width := 2
	if settings != nil {
		if settings.IndentStyle != "" {
			style = settings.IndentStyle
		}
		if settings.IndentWidth > 0 {
			width = settings.IndentWidth
		}
	}

	issues := make([]lint.Issue, 0)
	for _, info := range model.Lines {
		if info.Blank || info.Exempt || info.Indent == "" {
			continue
		}

		if info.HasTabs && info.HasSpaces {
			issues = append(issues, r.issue(model, info,
				"line mixes tabs and spaces in its indentation",
				fmt.Sprintf("indent with %s only", styleName(style, width))))
			continue
		}

		switch style {
		case lint.IndentTab:
			if info.HasSpaces {
				issues = append(issues, r.issue(model, info,
					"line is indented with spaces",
					"indent with tabs"))
			}
		default:
			if info.HasTabs {
				issues = append(issues, r.issue(model, info,
					"line is indented with tabs",
					fmt.Sprintf("indent with %d spaces per level", width)))
			} else if len(info.Indent)%width != 0 {
				issues = append(issues, r.issue(model, info,
					fmt.Sprintf("indentation of %d spaces is not a multiple of %d", len(info.Indent), width),
					fmt.Sprintf("indent with %d spaces per level", width)))
			}
		}
	}
	return issues
}

// issue builds an indent issue at the start of a line.
func (r *IndentRule) issue(model *scanner.Model, info scanner.LineInfo, message, suggestion string) lint.Issue {
	return lint.Issue{
		File:       model.FilePath,
		Line:       info.Number,
		Column:     1,
		Rule:       r.ID(),
		Severity:   r.DefaultSeverity(),
		Message:    message,
		Suggestion: suggestion,
	}
}

// styleName formats an indent style for messages.
func styleName(style string, width int) string {
	if style == lint.IndentTab {
		return "tabs"
	}
	return fmt.Sprintf("%d spaces", width)
}
