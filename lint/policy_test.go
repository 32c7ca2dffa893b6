// Copyright (C) 2025 Idiomatic JS Project (maintainers@idiomaticjs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package lint

import "testing"

func TestRulePolicy_Matching(t *testing.T) {
	policy := &RulePolicy{
		BlockOn: []string{"semi", "no-implicit-globals"},
		WarnOn:  []string{"naming"},
		InfoOn:  []string{"quotes"},
		Ignore:  []string{"indent"},
	}

	tests := []struct {
		rule string
		want Severity
	}{
		{"semi", SeverityError},
		{"no-implicit-globals", SeverityError},
		{"no-implicit-globals/top-level-var", SeverityError}, // hierarchy prefix
		{"naming", SeverityWarning},
		{"naming/underscore", SeverityWarning},
		{"quotes", SeverityInfo},
		{"brace-style", SeverityWarning}, // unmatched keeps fallback
	}

	for _, tt := range tests {
		t.Run(tt.rule, func(t *testing.T) {
			got := policy.GetSeverity(tt.rule, SeverityWarning)
			if got != tt.want {
				t.Errorf("GetSeverity(%q) = %v, want %v", tt.rule, got, tt.want)
			}
		})
	}

	if !policy.ShouldIgnore("indent") {
		t.Error("ShouldIgnore(indent) = false")
	}
	if policy.ShouldIgnore("semi") {
		t.Error("ShouldIgnore(semi) = true")
	}
}

func TestRulePolicy_PrefixDoesNotMatchSubstring(t *testing.T) {
	policy := &RulePolicy{BlockOn: []string{"semi"}}

	// "semicolons" shares a prefix but is a different rule.
	if policy.ShouldBlock("semicolons") {
		t.Error("prefix matched without hierarchy separator")
	}
	if !policy.ShouldBlock("semi/trailing") {
		t.Error("hierarchy child did not match parent pattern")
	}
}

func TestApplyPolicy(t *testing.T) {
	issues := []Issue{
		{Rule: "semi", Severity: SeverityError},
		{Rule: "quotes", Severity: SeverityWarning},
		{Rule: "indent", Severity: SeverityWarning},
		{Rule: "custom", Severity: SeverityInfo},
	}
	policy := &RulePolicy{
		BlockOn: []string{"quotes"},
		Ignore:  []string{"indent"},
	}

	errs, warnings, infos := ApplyPolicy(issues, policy)

	if len(errs) != 2 {
		t.Errorf("errors = %d, want 2 (semi kept, quotes escalated)", len(errs))
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %d, want 0", len(warnings))
	}
	if len(infos) != 1 {
		t.Errorf("infos = %d, want 1 (unmatched custom keeps its severity)", len(infos))
	}

	for _, issue := range errs {
		if issue.Severity != SeverityError {
			t.Errorf("error-bucket issue %q has severity %v", issue.Rule, issue.Severity)
		}
	}
}

func TestApplyPolicy_NilPolicy(t *testing.T) {
	issues := []Issue{
		{Rule: "semi", Severity: SeverityError},
		{Rule: "quotes", Severity: SeverityWarning},
	}

	errs, warnings, infos := ApplyPolicy(issues, nil)

	if len(errs) != 1 || len(warnings) != 1 || len(infos) != 0 {
		t.Errorf("buckets = %d/%d/%d, want 1/1/0", len(errs), len(warnings), len(infos))
	}
}

func TestDefaultPolicy(t *testing.T) {
	for _, rule := range []string{"no-implicit-globals", "eqeqeq", "semi"} {
		if !DefaultPolicy.ShouldBlock(rule) {
			t.Errorf("DefaultPolicy does not block %q", rule)
		}
	}
	for _, rule := range []string{"naming", "brace-style", "quotes", "indent"} {
		if !DefaultPolicy.ShouldWarn(rule) {
			t.Errorf("DefaultPolicy does not warn on %q", rule)
		}
	}
}
