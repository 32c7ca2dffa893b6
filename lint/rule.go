// Copyright (C) 2025 Idiomatic JS Project (maintainers@idiomaticjs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package lint

import (
	"fmt"
	"sync"

	"github.com/idiomaticjs/stylecheck/scanner"
)

// =============================================================================
// RULE
// =============================================================================

// Rule checks one documented convention against a scanned model.
//
// Implementations must be pure: no I/O, no retained state, no mutation
// of the model or settings. The same rule value is invoked from many
// goroutines over different models.
type Rule interface {
	// ID returns the stable rule identifier (e.g., "quotes").
	ID() string

	// Description returns a one-line summary of the convention.
	Description() string

	// DefaultSeverity returns the severity assigned when no policy
	// overrides the rule.
	DefaultSeverity() Severity

	// Check evaluates the rule against a model and returns the
	// violations found. The returned issues carry DefaultSeverity;
	// policy may re-bucket them later.
	Check(model *scanner.Model, settings *Settings) []Issue
}

// =============================================================================
// REGISTRY
// =============================================================================

// Registry holds the named, independent rules available to the engine.
//
// Rules are immutable once registered. Registration normally happens
// during startup; lookups happen on every check.
//
// Thread Safety: Safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]Rule
	order []string
}

// NewRegistry creates an empty rule registry.
func NewRegistry() *Registry {
	return &Registry{
		rules: make(map[string]Rule),
	}
}

// Register adds a rule to the registry.
//
// Description:
//
//	Rule IDs must be unique; re-registering an ID is rejected rather
//	than silently replacing the earlier rule.
//
// Inputs:
//
//	rule - The rule to register. Must not be nil.
//
// Outputs:
//
//	error - ErrInvalidInput for nil rules, ErrDuplicateRule for reused IDs.
func (r *Registry) Register(rule Rule) error {
	if rule == nil {
		return fmt.Errorf("%w: rule must not be nil", ErrInvalidInput)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	id := rule.ID()
	if id == "" {
		return fmt.Errorf("%w: rule ID must not be empty", ErrInvalidInput)
	}
	if _, exists := r.rules[id]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateRule, id)
	}

	r.rules[id] = rule
	r.order = append(r.order, id)
	return nil
}

// MustRegister registers a rule and panics on failure.
//
// Intended for building the default registry at startup where a
// failure is a programming error.
func (r *Registry) MustRegister(rule Rule) {
	if err := r.Register(rule); err != nil {
		panic(err)
	}
}

// Get returns the rule with the given ID, or nil if not registered.
func (r *Registry) Get(id string) Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.rules[id]
}

// IDs returns the registered rule IDs in registration order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}

// List returns the registered rules in registration order.
func (r *Registry) List() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rules := make([]Rule, 0, len(r.order))
	for _, id := range r.order {
		rules = append(rules, r.rules[id])
	}
	return rules
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rules)
}
