// Copyright (C) 2025 Idiomatic JS Project (maintainers@idiomaticjs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package rules

import (
	"strings"
	"testing"

	"github.com/idiomaticjs/stylecheck/lint"
)

func TestQuotesRule_PreferSingle(t *testing.T) {
	rule := &QuotesRule{}

	tests := []struct {
		name       string
		src        string
		wantIssues int
	}{
		{"single quotes pass", "var a = 'hello';\n", 0},
		{"double quotes flagged", "var a = \"hello\";\n", 1},
		{"double containing single allowed", "var a = \"it's here\";\n", 0},
		{"template string ignored", "var a = `hello`;\n", 0},
		{"two violations", "var a = \"one\";\nvar b = \"two\";\n", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := mustModel(t, tt.src)
			issues := rule.Check(model, defaults())

			if len(issues) != tt.wantIssues {
				t.Fatalf("issue count = %d, want %d (%+v)", len(issues), tt.wantIssues, issues)
			}
		})
	}
}

func TestQuotesRule_PreferDouble(t *testing.T) {
	rule := &QuotesRule{}
	settings := defaults()
	settings.Quote = lint.QuoteDouble

	model := mustModel(t, "var a = 'hello';\n")
	issues := rule.Check(model, settings)
	if len(issues) != 1 {
		t.Fatalf("issue count = %d, want 1", len(issues))
	}
	if !strings.Contains(issues[0].Message, "prefer double") {
		t.Errorf("message = %q, want prefer double", issues[0].Message)
	}

	model = mustModel(t, "var a = \"hello\";\n")
	if issues := rule.Check(model, settings); len(issues) != 0 {
		t.Errorf("double quotes flagged under double preference: %+v", issues)
	}
}

func TestQuotesRule_Suggestion(t *testing.T) {
	rule := &QuotesRule{}

	model := mustModel(t, "var a = \"hello\";\n")
	issues := rule.Check(model, defaults())
	if len(issues) != 1 {
		t.Fatalf("issue count = %d, want 1", len(issues))
	}
	if issues[0].Suggestion != "'hello'" {
		t.Errorf("suggestion = %q, want 'hello'", issues[0].Suggestion)
	}
}
