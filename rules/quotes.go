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

// QuotesRule enforces the preferred string delimiter. Strings whose
// content contains the preferred quote are exempt, so nobody is forced
// into escape sequences. Template literals never participate.
type QuotesRule struct{}

// ID returns the rule identifier.
func (r *QuotesRule) ID() string { return "quotes" }

// Description returns the rule summary.
func (r *QuotesRule) Description() string {
	return "string literals use the configured quote style"
}

// DefaultSeverity returns the severity assigned without policy.
func (r *QuotesRule) DefaultSeverity() lint.Severity { return lint.SeverityWarning }

// Check evaluates the rule against a model.
func (r *QuotesRule) Check(model *scanner.Model, settings *lint.Settings) []lint.Issue {
	preferred, preferredName, otherName := quotePreference(settings)

	issues := make([]lint.Issue, 0)
	for _, str := range model.Strings {
		if str.Quote == preferred {
			continue
		}
		if strings.IndexByte(str.Content(), preferred) >= 0 {
			// Switching delimiters would force escapes.
			continue
		}
		issues = append(issues, lint.Issue{
			File:       model.FilePath,
			Line:       str.Line,
			Column:     str.Column,
			Rule:       r.ID(),
			Severity:   r.DefaultSeverity(),
			Message:    fmt.Sprintf("string uses %s quotes; prefer %s quotes", otherName, preferredName),
			Suggestion: string(preferred) + str.Content() + string(preferred),
		})
	}
	return issues
}

// quotePreference resolves the configured delimiter and display names.
func quotePreference(settings *lint.Settings) (preferred byte, preferredName, otherName string) {
	if settings != nil && settings.Quote == lint.QuoteDouble {
		return '"', "double", "single"
	}
	return '\'', "single", "double"
}
