// Copyright (C) 2025 Idiomatic JS Project (maintainers@idiomaticjs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package lint

import (
	"errors"
	"testing"

	"github.com/idiomaticjs/stylecheck/scanner"
)

// stubRule is a minimal Rule for registry and engine tests.
type stubRule struct {
	id     string
	issues []Issue
}

func (r *stubRule) ID() string                { return r.id }
func (r *stubRule) Description() string       { return "stub rule " + r.id }
func (r *stubRule) DefaultSeverity() Severity { return SeverityWarning }

func (r *stubRule) Check(model *scanner.Model, settings *Settings) []Issue {
	out := make([]Issue, len(r.issues))
	copy(out, r.issues)
	for i := range out {
		out[i].File = model.FilePath
	}
	return out
}

func TestRegistry_Register(t *testing.T) {
	registry := NewRegistry()

	if err := registry.Register(&stubRule{id: "alpha"}); err != nil {
		t.Fatalf("Register(alpha) error = %v", err)
	}
	if err := registry.Register(&stubRule{id: "beta"}); err != nil {
		t.Fatalf("Register(beta) error = %v", err)
	}

	if got := registry.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}
	if registry.Get("alpha") == nil {
		t.Error("Get(alpha) = nil")
	}
	if registry.Get("missing") != nil {
		t.Error("Get(missing) != nil")
	}
}

func TestRegistry_RejectsDuplicates(t *testing.T) {
	registry := NewRegistry()

	if err := registry.Register(&stubRule{id: "alpha"}); err != nil {
		t.Fatalf("first Register error = %v", err)
	}

	err := registry.Register(&stubRule{id: "alpha"})
	if !errors.Is(err, ErrDuplicateRule) {
		t.Errorf("duplicate Register error = %v, want ErrDuplicateRule", err)
	}
}

func TestRegistry_RejectsInvalid(t *testing.T) {
	registry := NewRegistry()

	if err := registry.Register(nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Register(nil) error = %v, want ErrInvalidInput", err)
	}
	if err := registry.Register(&stubRule{id: ""}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Register(empty id) error = %v, want ErrInvalidInput", err)
	}
}

func TestRegistry_OrderPreserved(t *testing.T) {
	registry := NewRegistry()
	for _, id := range []string{"zeta", "alpha", "mid"} {
		registry.MustRegister(&stubRule{id: id})
	}

	ids := registry.IDs()
	want := []string{"zeta", "alpha", "mid"}
	for i, id := range want {
		if ids[i] != id {
			t.Errorf("IDs()[%d] = %q, want %q", i, ids[i], id)
		}
	}

	rules := registry.List()
	for i, rule := range rules {
		if rule.ID() != want[i] {
			t.Errorf("List()[%d].ID() = %q, want %q", i, rule.ID(), want[i])
		}
	}
}

func TestRegistry_MustRegisterPanics(t *testing.T) {
	registry := NewRegistry()
	registry.MustRegister(&stubRule{id: "alpha"})

	defer func() {
		if recover() == nil {
			t.Error("MustRegister with duplicate ID did not panic")
		}
	}()
	registry.MustRegister(&stubRule{id: "alpha"})
}
