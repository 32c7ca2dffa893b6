// Copyright (C) 2025 Idiomatic JS Project (maintainers@idiomaticjs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package lint

import (
	"strings"
)

// =============================================================================
// RULE POLICY
// =============================================================================

// RulePolicy re-buckets specific rules during a run.
//
// Description:
//
//	Rules are matched by exact ID or hierarchy prefix: "naming" matches
//	"naming" and "naming/underscore". Issues from rules in no list keep
//	the severity the rule itself assigned.
//
// Thread Safety: Treat as immutable after creation.
type RulePolicy struct {
	// BlockOn are rules escalated to errors.
	BlockOn []string

	// WarnOn are rules demoted or promoted to warnings.
	WarnOn []string

	// InfoOn are rules demoted to informational notes.
	InfoOn []string

	// Ignore are rules to drop entirely.
	Ignore []string
}

// ShouldBlock returns true if the rule is escalated to an error.
func (p *RulePolicy) ShouldBlock(rule string) bool {
	return matchesAny(rule, p.BlockOn)
}

// ShouldWarn returns true if the rule is bucketed as a warning.
func (p *RulePolicy) ShouldWarn(rule string) bool {
	return matchesAny(rule, p.WarnOn)
}

// ShouldInfo returns true if the rule is demoted to informational.
func (p *RulePolicy) ShouldInfo(rule string) bool {
	return matchesAny(rule, p.InfoOn)
}

// ShouldIgnore returns true if the rule is dropped.
func (p *RulePolicy) ShouldIgnore(rule string) bool {
	return matchesAny(rule, p.Ignore)
}

// GetSeverity returns the severity for a rule under this policy.
//
// Description:
//
//	Ignore takes precedence, then BlockOn, WarnOn, InfoOn. A rule in
//	no list keeps the provided fallback severity.
//
// Inputs:
//
//	rule - The rule identifier
//	fallback - Severity to keep when no list matches
//
// Outputs:
//
//	Severity - The effective severity
func (p *RulePolicy) GetSeverity(rule string, fallback Severity) Severity {
	switch {
	case p.ShouldBlock(rule):
		return SeverityError
	case p.ShouldWarn(rule):
		return SeverityWarning
	case p.ShouldInfo(rule):
		return SeverityInfo
	default:
		return fallback
	}
}

// matchesAny checks a rule against a pattern list.
func matchesAny(rule string, patterns []string) bool {
	rule = strings.ToLower(rule)
	for _, pattern := range patterns {
		if matchesRule(rule, strings.ToLower(pattern)) {
			return true
		}
	}
	return false
}

// matchesRule checks if a rule matches a pattern.
// Matching is exact or by hierarchy prefix.
// Examples:
//   - "quotes" matches "quotes"
//   - "naming/underscore" matches "naming"
func matchesRule(rule, pattern string) bool {
	if rule == pattern {
		return true
	}
	return strings.HasPrefix(rule, pattern+"/")
}

// =============================================================================
// DEFAULT POLICY
// =============================================================================

// DefaultPolicy reflects the documented weight of each convention:
// correctness-adjacent rules block, formatting rules warn.
var DefaultPolicy = RulePolicy{
	BlockOn: []string{
		// Accidental globals are bugs, not taste.
		"no-implicit-globals",
		// Loose equality coerces; the guide forbids it outright.
		"eqeqeq",
		// ASI hazards.
		"semi",
	},
	WarnOn: []string{
		"naming",
		"brace-style",
		"quotes",
		"indent",
	},
}

// =============================================================================
// APPLY POLICY
// =============================================================================

// ApplyPolicy categorizes raw rule issues into severity buckets.
//
// Description:
//
//	Takes the issues produced by the rules and re-buckets them per the
//	policy. Ignored rules are dropped. Unmatched rules keep the
//	severity the rule assigned.
//
// Inputs:
//
//	issues - Raw issues from the rules
//	policy - The policy to apply; nil applies no overrides
//
// Outputs:
//
//	errors - Issues that fail the run
//	warnings - Issues that warn
//	infos - Informational issues
func ApplyPolicy(issues []Issue, policy *RulePolicy) (errors, warnings, infos []Issue) {
	errors = make([]Issue, 0)
	warnings = make([]Issue, 0)
	infos = make([]Issue, 0)

	for _, issue := range issues {
		severity := issue.Severity
		if policy != nil {
			if policy.ShouldIgnore(issue.Rule) {
				continue
			}
			severity = policy.GetSeverity(issue.Rule, issue.Severity)
			issue.Severity = severity
		}

		switch severity {
		case SeverityError:
			errors = append(errors, issue)
		case SeverityWarning:
			warnings = append(warnings, issue)
		default:
			infos = append(infos, issue)
		}
	}

	return errors, warnings, infos
}
