// Copyright (C) 2025 Idiomatic JS Project (maintainers@idiomaticjs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package report

import (
	"fmt"
	"strings"

	"github.com/sourcegraph/go-diff/diff"

	"github.com/idiomaticjs/stylecheck/lint"
)

// =============================================================================
// DIFF FILTER
// =============================================================================

// DiffFilter restricts results to lines touched by a unified diff.
//
// Description:
//
//	Built from a patch, the filter keeps only issues whose line was
//	added or modified by the patch. This backs review workflows where
//	pre-existing style debt must not fail a change that didn't touch
//	it.
//
// Thread Safety: Safe for concurrent use after construction.
type DiffFilter struct {
	// changed maps a file path to the set of new-side line numbers the
	// patch introduced.
	changed map[string]map[int]bool
}

// NewDiffFilter parses a unified diff and builds a filter.
//
// Inputs:
//
//	patch - Unified diff bytes (git diff or diff -u output)
//
// Outputs:
//
//	*DiffFilter - The filter
//	error - Non-nil when the patch cannot be parsed
func NewDiffFilter(patch []byte) (*DiffFilter, error) {
	fileDiffs, err := diff.ParseMultiFileDiff(patch)
	if err != nil {
		return nil, fmt.Errorf("parsing diff: %w", err)
	}

	changed := make(map[string]map[int]bool)
	for _, fd := range fileDiffs {
		path := stripDiffPrefix(fd.NewName)
		if path == "" || path == "/dev/null" {
			continue
		}
		lines := changed[path]
		if lines == nil {
			lines = make(map[int]bool)
			changed[path] = lines
		}
		for _, hunk := range fd.Hunks {
			collectAddedLines(hunk, lines)
		}
	}

	return &DiffFilter{changed: changed}, nil
}

// collectAddedLines walks a hunk body accumulating new-side lines.
func collectAddedLines(hunk *diff.Hunk, lines map[int]bool) {
	newLine := int(hunk.NewStartLine)
	for _, body := range strings.Split(string(hunk.Body), "\n") {
		if body == "" {
			continue
		}
		switch body[0] {
		case '+':
			lines[newLine] = true
			newLine++
		case '-':
			// Removed line: new side does not advance.
		default:
			newLine++
		}
	}
}

// Apply filters per-file results down to issues on changed lines.
//
// Description:
//
//	Files absent from the diff keep no issues. Validity is recomputed
//	from the surviving errors.
//
// Inputs:
//
//	results - Per-file results from the engine
//
// Outputs:
//
//	[]*lint.Result - Filtered copies; inputs are not mutated
func (f *DiffFilter) Apply(results []*lint.Result) []*lint.Result {
	filtered := make([]*lint.Result, 0, len(results))
	for _, result := range results {
		if result == nil {
			continue
		}
		lines := f.linesFor(result.FilePath)

		out := &lint.Result{
			Valid:        true,
			Errors:       keepOnLines(result.Errors, lines),
			Warnings:     keepOnLines(result.Warnings, lines),
			Infos:        keepOnLines(result.Infos, lines),
			Duration:     result.Duration,
			FilePath:     result.FilePath,
			Hash:         result.Hash,
			SyntaxErrors: result.SyntaxErrors,
		}
		out.Valid = len(out.Errors) == 0
		filtered = append(filtered, out)
	}
	return filtered
}

// linesFor resolves the changed-line set for a result path, matching
// exactly first and then by path suffix to bridge relative paths.
func (f *DiffFilter) linesFor(path string) map[int]bool {
	if lines, ok := f.changed[path]; ok {
		return lines
	}
	for candidate, lines := range f.changed {
		if strings.HasSuffix(path, "/"+candidate) || strings.HasSuffix(candidate, "/"+path) {
			return lines
		}
	}
	return nil
}

// keepOnLines returns the issues whose line is in the changed set.
func keepOnLines(issues []lint.Issue, lines map[int]bool) []lint.Issue {
	kept := make([]lint.Issue, 0)
	if lines == nil {
		return kept
	}
	for _, issue := range issues {
		if lines[issue.Line] {
			kept = append(kept, issue)
		}
	}
	return kept
}

// stripDiffPrefix removes the conventional a/ and b/ diff prefixes.
func stripDiffPrefix(name string) string {
	name = strings.TrimPrefix(name, "a/")
	name = strings.TrimPrefix(name, "b/")
	return name
}
