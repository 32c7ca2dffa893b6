// Copyright (C) 2025 Idiomatic JS Project (maintainers@idiomaticjs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package lint

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

// testEngine builds an engine with two stub rules and no policy
// overrides.
func testEngine(t *testing.T) *Engine {
	t.Helper()

	registry := NewRegistry()
	registry.MustRegister(&stubRule{
		id:     "blocker",
		issues: []Issue{{Line: 1, Rule: "blocker", Severity: SeverityError, Message: "boom"}},
	})
	registry.MustRegister(&stubRule{
		id:     "advisor",
		issues: []Issue{{Line: 2, Rule: "advisor", Severity: SeverityWarning, Message: "hmm"}},
	})

	return NewEngine(WithRegistry(registry), WithPolicy(&RulePolicy{}))
}

func TestEngine_Check(t *testing.T) {
	engine := testEngine(t)

	result, err := engine.Check(context.Background(), []byte("var a = 1;\n"), "app.js", DefaultCheckOptions())
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}

	if result.Valid {
		t.Error("Valid = true with a blocking issue")
	}
	if len(result.Errors) != 1 || len(result.Warnings) != 1 {
		t.Errorf("errors/warnings = %d/%d, want 1/1", len(result.Errors), len(result.Warnings))
	}
	if result.FilePath != "app.js" {
		t.Errorf("FilePath = %q, want app.js", result.FilePath)
	}
	if result.Hash == "" {
		t.Error("Hash is empty")
	}
	if result.Errors[0].File != "app.js" {
		t.Errorf("issue file = %q, want app.js", result.Errors[0].File)
	}
}

func TestEngine_Check_RuleFilters(t *testing.T) {
	engine := testEngine(t)
	ctx := context.Background()
	content := []byte("var a = 1;\n")

	only, err := engine.Check(ctx, content, "app.js", CheckOptions{Rules: []string{"advisor"}})
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if len(only.Errors) != 0 || len(only.Warnings) != 1 {
		t.Errorf("include filter: errors/warnings = %d/%d, want 0/1", len(only.Errors), len(only.Warnings))
	}
	if !only.Valid {
		t.Error("Valid = false with blocker excluded")
	}

	excluded, err := engine.Check(ctx, content, "app.js", CheckOptions{ExcludeRules: []string{"advisor"}})
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if len(excluded.Warnings) != 0 {
		t.Errorf("exclude filter left %d warnings", len(excluded.Warnings))
	}
}

func TestEngine_Check_NilContext(t *testing.T) {
	engine := testEngine(t)

	//nolint:staticcheck // nil context is the case under test
	if _, err := engine.Check(nil, []byte("var a;\n"), "app.js", DefaultCheckOptions()); err == nil {
		t.Error("Check(nil ctx) error = nil")
	}
}

func TestEngine_Check_PolicyApplied(t *testing.T) {
	registry := NewRegistry()
	registry.MustRegister(&stubRule{
		id:     "advisor",
		issues: []Issue{{Line: 1, Rule: "advisor", Severity: SeverityWarning}},
	})

	engine := NewEngine(
		WithRegistry(registry),
		WithPolicy(&RulePolicy{BlockOn: []string{"advisor"}}),
	)

	result, err := engine.Check(context.Background(), []byte("var a;\n"), "app.js", DefaultCheckOptions())
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if len(result.Errors) != 1 {
		t.Errorf("escalated issue not in errors: %+v", result)
	}
}

func TestEngine_CheckFiles_OrderPreserved(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"a.js", "b.js", "c.js"} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("var x = 1;\n"), 0644); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, path)
	}

	engine := testEngine(t)
	results, err := engine.CheckFiles(context.Background(), paths, DefaultCheckOptions())
	if err != nil {
		t.Fatalf("CheckFiles() error = %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("result count = %d, want 3", len(results))
	}
	for i, result := range results {
		if result.FilePath != paths[i] {
			t.Errorf("results[%d].FilePath = %q, want %q", i, result.FilePath, paths[i])
		}
	}
}

func TestEngine_CheckFiles_MissingFile(t *testing.T) {
	engine := testEngine(t)

	_, err := engine.CheckFiles(context.Background(), []string{"/does/not/exist.js"}, DefaultCheckOptions())
	if err == nil {
		t.Error("CheckFiles() with missing file returned nil error")
	}
}

func TestEngine_CheckDirectory(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"app.js":                 "var a = 1;\n",
		"util.mjs":               "var b = 2;\n",
		"notes.txt":              "not javascript\n",
		"node_modules/dep.js":    "var c = 3;\n",
		".hidden/secret.js":      "var d = 4;\n",
		"vendor/third_party.js":  "var e = 5;\n",
		"nested/deep/feature.js": "var f = 6;\n",
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	engine := testEngine(t)
	results, err := engine.CheckDirectory(context.Background(), dir, DefaultCheckOptions())
	if err != nil {
		t.Fatalf("CheckDirectory() error = %v", err)
	}

	// app.js, util.mjs, nested/deep/feature.js
	if len(results) != 3 {
		var got []string
		for _, r := range results {
			got = append(got, r.FilePath)
		}
		t.Errorf("result count = %d (%v), want 3", len(results), got)
	}
}

func TestEngine_CheckDirectory_Globs(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"app.js":               "var a = 1;\n",
		"app.test.js":          "var b = 2;\n",
		"nested/feature.js":    "var c = 3;\n",
		"nested/helper.gen.js": "var d = 4;\n",
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	engine := testEngine(t)

	t.Run("exclude glob", func(t *testing.T) {
		opts := DefaultCheckOptions()
		opts.ExcludeGlobs = []string{"*.test.js", "*.gen.js"}

		results, err := engine.CheckDirectory(context.Background(), dir, opts)
		if err != nil {
			t.Fatalf("CheckDirectory() error = %v", err)
		}
		if len(results) != 2 {
			t.Errorf("result count = %d, want 2 (app.js, nested/feature.js)", len(results))
		}
	})

	t.Run("include glob on relative path", func(t *testing.T) {
		opts := DefaultCheckOptions()
		opts.IncludeGlobs = []string{"nested/*"}

		results, err := engine.CheckDirectory(context.Background(), dir, opts)
		if err != nil {
			t.Fatalf("CheckDirectory() error = %v", err)
		}
		if len(results) != 2 {
			t.Errorf("result count = %d, want 2 (nested files only)", len(results))
		}
	})

	t.Run("exclude wins over include", func(t *testing.T) {
		opts := DefaultCheckOptions()
		opts.IncludeGlobs = []string{"*.js"}
		opts.ExcludeGlobs = []string{"app.js"}

		results, err := engine.CheckDirectory(context.Background(), dir, opts)
		if err != nil {
			t.Fatalf("CheckDirectory() error = %v", err)
		}
		for _, r := range results {
			if filepath.Base(r.FilePath) == "app.js" {
				t.Errorf("excluded file checked: %s", r.FilePath)
			}
		}
	})
}

func TestIsJSFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"app.js", true},
		{"module.mjs", true},
		{"legacy.cjs", true},
		{"APP.JS", true},
		{"style.css", false},
		{"app.jsx", false},
		{"app", false},
	}

	for _, tt := range tests {
		if got := IsJSFile(tt.path); got != tt.want {
			t.Errorf("IsJSFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestSortIssues(t *testing.T) {
	issues := []Issue{
		{Line: 5, Column: 1, Rule: "b"},
		{Line: 1, Column: 9, Rule: "z"},
		{Line: 1, Column: 2, Rule: "a"},
		{Line: 1, Column: 2, Rule: "A2"},
	}
	sortIssues(issues)

	if issues[0].Rule != "A2" || issues[1].Rule != "a" {
		t.Errorf("tie break by rule failed: %+v", issues[:2])
	}
	if issues[2].Rule != "z" || issues[3].Rule != "b" {
		t.Errorf("line/column ordering failed: %+v", issues)
	}
}
