// Copyright (C) 2025 Idiomatic JS Project (maintainers@idiomaticjs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/idiomaticjs/stylecheck/lint"
	"github.com/idiomaticjs/stylecheck/scanner"
)

var (
	camelCasePattern  = regexp.MustCompile(`^[a-z][a-zA-Z0-9]*$`)
	pascalCasePattern = regexp.MustCompile(`^[A-Z][a-zA-Z0-9]*$`)
	upperSnakePattern = regexp.MustCompile(`^[A-Z][A-Z0-9]*(_[A-Z0-9]+)*$`)
)

// exemptNames are conventional identifiers the naming rule ignores.
// "_" and "$" are established library globals; "constructor" is syntax.
var exemptNames = map[string]bool{
	"_":           true,
	"$":           true,
	"constructor": true,
}

// NamingRule enforces the guide's identifier conventions: camelCase
// for variables, functions, and parameters; PascalCase for classes and
// constructor functions; UPPER_SNAKE permitted for constants. Dangling
// underscores are flagged on every kind.
type NamingRule struct{}

// ID returns the rule identifier.
func (r *NamingRule) ID() string { return "naming" }

// Description returns the rule summary.
func (r *NamingRule) Description() string {
	return "identifiers use camelCase, constructors and classes use PascalCase"
}

// DefaultSeverity returns the severity assigned without policy.
func (r *NamingRule) DefaultSeverity() lint.Severity { return lint.SeverityWarning }

// Check evaluates the rule against a model.
func (r *NamingRule) Check(model *scanner.Model, settings *lint.Settings) []lint.Issue {
	issues := make([]lint.Issue, 0)

	for _, decl := range model.Declarations {
		name := decl.Name
		if exemptNames[name] {
			continue
		}

		if strings.HasPrefix(name, "_") || strings.HasSuffix(name, "_") {
			issues = append(issues, r.issue(model, decl,
				fmt.Sprintf("identifier %q has a dangling underscore", name),
				"drop the underscore; privacy is expressed through closures, not naming"))
			continue
		}

		switch decl.Kind {
		case scanner.DeclClass:
			if !pascalCasePattern.MatchString(name) {
				issues = append(issues, r.issue(model, decl,
					fmt.Sprintf("class %q is not PascalCase", name),
					"rename to "+toPascalCase(name)))
			}

		case scanner.DeclFunction:
			if camelCasePattern.MatchString(name) {
				continue
			}
			if pascalCasePattern.MatchString(name) && model.IsConstructor(name) {
				continue
			}
			issues = append(issues, r.issue(model, decl,
				fmt.Sprintf("function %q is not camelCase", name),
				"rename to "+toCamelCase(name)))

		case scanner.DeclConst:
			if camelCasePattern.MatchString(name) || upperSnakePattern.MatchString(name) {
				continue
			}
			if pascalCasePattern.MatchString(name) && model.IsConstructor(name) {
				continue
			}
			issues = append(issues, r.issue(model, decl,
				fmt.Sprintf("constant %q is neither camelCase nor UPPER_SNAKE", name),
				"rename to "+toCamelCase(name)))

		case scanner.DeclVar, scanner.DeclLet, scanner.DeclParam, scanner.DeclMethod:
			if !camelCasePattern.MatchString(name) {
				issues = append(issues, r.issue(model, decl,
					fmt.Sprintf("identifier %q is not camelCase", name),
					"rename to "+toCamelCase(name)))
			}
		}
	}

	return issues
}

// issue builds a naming issue at a declaration site.
func (r *NamingRule) issue(model *scanner.Model, decl scanner.Declaration, message, suggestion string) lint.Issue {
	return lint.Issue{
		File:       model.FilePath,
		Line:       decl.Line,
		Column:     decl.Column,
		Rule:       r.ID(),
		Severity:   r.DefaultSeverity(),
		Message:    message,
		Suggestion: suggestion,
	}
}

// toCamelCase converts snake_case or PascalCase names to camelCase.
func toCamelCase(name string) string {
	parts := splitWords(name)
	if len(parts) == 0 {
		return name
	}
	out := strings.ToLower(parts[0])
	for _, part := range parts[1:] {
		out += capitalize(part)
	}
	return out
}

// toPascalCase converts a name to PascalCase.
func toPascalCase(name string) string {
	parts := splitWords(name)
	out := ""
	for _, part := range parts {
		out += capitalize(part)
	}
	if out == "" {
		return name
	}
	return out
}

// splitWords splits an identifier on underscores and case boundaries.
func splitWords(name string) []string {
	name = strings.Trim(name, "_")
	var words []string
	for _, chunk := range strings.Split(name, "_") {
		if chunk == "" {
			continue
		}
		start := 0
		for i := 1; i < len(chunk); i++ {
			if chunk[i] >= 'A' && chunk[i] <= 'Z' && chunk[i-1] >= 'a' && chunk[i-1] <= 'z' {
				words = append(words, chunk[start:i])
				start = i
			}
		}
		words = append(words, chunk[start:])
	}
	return words
}

// capitalize upper-cases the first byte and lower-cases the rest.
func capitalize(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
}
