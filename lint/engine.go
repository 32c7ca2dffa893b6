// Copyright (C) 2025 Idiomatic JS Project (maintainers@idiomaticjs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package lint

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/idiomaticjs/stylecheck/scanner"
)

// =============================================================================
// ENGINE
// =============================================================================

// Engine evaluates registered rules against source files.
//
// Description:
//
//	One Engine is built per run. It owns a scanner, a rule registry, a
//	policy, and settings, and fans the enabled rules out over the model
//	produced for each file. Each file's pass is synchronous and
//	stateless; files may be checked concurrently.
//
// Thread Safety: Safe for concurrent use.
type Engine struct {
	registry    *Registry
	policy      *RulePolicy
	settings    *Settings
	scanner     *scanner.Scanner
	concurrency int
}

// Option configures the Engine.
type Option func(*Engine)

// WithRegistry sets the rule registry.
func WithRegistry(registry *Registry) Option {
	return func(e *Engine) {
		if registry != nil {
			e.registry = registry
		}
	}
}

// WithPolicy sets the rule policy.
func WithPolicy(policy *RulePolicy) Option {
	return func(e *Engine) {
		e.policy = policy
	}
}

// WithSettings sets the rule settings.
func WithSettings(settings *Settings) Option {
	return func(e *Engine) {
		if settings != nil {
			e.settings = settings
		}
	}
}

// WithScanner sets a custom scanner.
func WithScanner(s *scanner.Scanner) Option {
	return func(e *Engine) {
		if s != nil {
			e.scanner = s
		}
	}
}

// WithConcurrency caps how many files are checked in parallel.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// NewEngine creates an engine with default or custom configuration.
//
// Description:
//
//	Without options the engine has an empty registry and the default
//	policy and settings. Callers normally pass WithRegistry with the
//	built-in rules.
//
// Inputs:
//
//	opts - Optional configuration options
//
// Outputs:
//
//	*Engine - The configured engine
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		registry:    NewRegistry(),
		policy:      &DefaultPolicy,
		settings:    DefaultSettings(),
		scanner:     scanner.New(),
		concurrency: 8,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Registry returns the engine's rule registry.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Settings returns the engine's rule settings.
func (e *Engine) Settings() *Settings {
	return e.settings
}

// =============================================================================
// CHECK OPERATIONS
// =============================================================================

// Check evaluates all enabled rules against source content.
//
// Description:
//
//	Scans the content into a model, runs each enabled rule over it,
//	applies the policy, and assembles a Result. The model is created
//	for this pass and discarded before returning.
//
// Inputs:
//
//	ctx - Context for cancellation
//	content - Raw source bytes
//	filePath - Path used for reporting
//	opts - Rule include/exclude filters
//
// Outputs:
//
//	*Result - The categorized result
//	error - Non-nil when the scan failed
//
// Thread Safety: Safe for concurrent use.
func (e *Engine) Check(ctx context.Context, content []byte, filePath string, opts CheckOptions) (*Result, error) {
	if ctx == nil {
		return nil, fmt.Errorf("%w: ctx must not be nil", ErrInvalidInput)
	}

	ctx, span := startCheckSpan(ctx, filePath)
	defer span.End()
	start := time.Now()

	model, err := e.scanner.Scan(ctx, content, filePath)
	if err != nil {
		recordCheckMetrics(ctx, time.Since(start), 0, 0, false)
		return nil, NewCheckError(filePath, fmt.Errorf("%w: %v", ErrScanFailed, err))
	}

	issues := make([]Issue, 0)
	for _, rule := range e.registry.List() {
		if !opts.ruleEnabled(rule.ID()) {
			continue
		}
		issues = append(issues, rule.Check(model, e.settings)...)
	}

	sortIssues(issues)
	errs, warnings, infos := ApplyPolicy(issues, e.policy)

	result := &Result{
		Valid:        len(errs) == 0,
		Errors:       errs,
		Warnings:     warnings,
		Infos:        infos,
		Duration:     time.Since(start),
		FilePath:     filePath,
		Hash:         model.Hash,
		SyntaxErrors: model.HasSyntaxErrors,
	}

	setCheckSpanResult(span, len(errs), len(warnings), model.HasSyntaxErrors)
	recordCheckMetrics(ctx, result.Duration, len(errs), len(warnings), true)

	slog.Debug("check completed",
		slog.String("file", filePath),
		slog.Duration("duration", result.Duration),
		slog.Int("errors", len(errs)),
		slog.Int("warnings", len(warnings)),
	)

	return result, nil
}

// CheckFile reads and checks a single file from disk.
//
// Inputs:
//
//	ctx - Context for cancellation
//	filePath - Path to the file to check
//	opts - Rule include/exclude filters
//
// Outputs:
//
//	*Result - The categorized result
//	error - Non-nil when the read or scan failed
//
// Thread Safety: Safe for concurrent use.
func (e *Engine) CheckFile(ctx context.Context, filePath string, opts CheckOptions) (*Result, error) {
	if ctx == nil {
		return nil, fmt.Errorf("%w: ctx must not be nil", ErrInvalidInput)
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, NewCheckError(filePath, err)
	}
	return e.Check(ctx, content, filePath, opts)
}

// CheckFiles checks multiple files with bounded concurrency.
//
// Description:
//
//	Results are returned in the same order as the input paths. The
//	first error cancels outstanding work.
//
// Inputs:
//
//	ctx - Context for cancellation
//	filePaths - Paths to check
//	opts - Rule include/exclude filters
//
// Outputs:
//
//	[]*Result - Results in input order
//	error - First failure, if any
//
// Thread Safety: Safe for concurrent use.
func (e *Engine) CheckFiles(ctx context.Context, filePaths []string, opts CheckOptions) ([]*Result, error) {
	if ctx == nil {
		return nil, fmt.Errorf("%w: ctx must not be nil", ErrInvalidInput)
	}

	results := make([]*Result, len(filePaths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for i, path := range filePaths {
		g.Go(func() error {
			result, err := e.CheckFile(gctx, path, opts)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// CheckDirectory checks all JavaScript files under a directory.
//
// Description:
//
//	Recursively collects .js, .mjs, and .cjs files, skipping hidden
//	directories, node_modules, and vendor and applying the options'
//	include/exclude globs, then checks them with bounded concurrency.
//
// Inputs:
//
//	ctx - Context for cancellation
//	dirPath - Root directory to walk
//	opts - Rule include/exclude filters
//
// Outputs:
//
//	[]*Result - One result per file found, in walk order
//	error - Non-nil if the walk or any check failed
//
// Thread Safety: Safe for concurrent use.
func (e *Engine) CheckDirectory(ctx context.Context, dirPath string, opts CheckOptions) ([]*Result, error) {
	if ctx == nil {
		return nil, fmt.Errorf("%w: ctx must not be nil", ErrInvalidInput)
	}

	files, err := CollectFiles(dirPath, opts)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	return e.CheckFiles(ctx, files, opts)
}

// =============================================================================
// FILE COLLECTION
// =============================================================================

// jsExtensions are the file extensions the checker handles.
var jsExtensions = map[string]bool{
	".js":  true,
	".mjs": true,
	".cjs": true,
}

// IsJSFile reports whether a path has a checkable extension.
func IsJSFile(path string) bool {
	return jsExtensions[strings.ToLower(filepath.Ext(path))]
}

// CollectFiles walks a directory and returns the checkable files.
//
// Skips hidden directories, node_modules, and vendor, then applies the
// options' include/exclude globs against each file's path relative to
// dirPath.
func CollectFiles(dirPath string, opts CheckOptions) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dirPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != dirPath && (strings.HasPrefix(name, ".") || name == "vendor" || name == "node_modules") {
				return filepath.SkipDir
			}
			return nil
		}
		if !IsJSFile(path) {
			return nil
		}
		rel, relErr := filepath.Rel(dirPath, path)
		if relErr != nil {
			rel = path
		}
		if opts.pathSelected(rel) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory: %w", err)
	}
	return files, nil
}

// sortIssues orders issues by position, then rule ID for stable output.
func sortIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Line != issues[j].Line {
			return issues[i].Line < issues[j].Line
		}
		if issues[i].Column != issues[j].Column {
			return issues[i].Column < issues[j].Column
		}
		return issues[i].Rule < issues[j].Rule
	})
}
