// Copyright (C) 2025 Idiomatic JS Project (maintainers@idiomaticjs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package lint

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS
// =============================================================================

var (
	// ErrInvalidInput indicates a nil or malformed argument.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownRule indicates a rule ID that is not registered.
	ErrUnknownRule = errors.New("unknown rule")

	// ErrDuplicateRule indicates a rule ID registered twice.
	ErrDuplicateRule = errors.New("duplicate rule")

	// ErrScanFailed indicates the scanner could not produce a model.
	ErrScanFailed = errors.New("scan failed")
)

// =============================================================================
// CHECK ERROR
// =============================================================================

// CheckError wraps a failure to check one file with its context.
//
// Thread Safety: Immutable after creation.
type CheckError struct {
	// FilePath is the file being checked when the failure occurred.
	FilePath string

	// Err is the underlying error.
	Err error
}

// NewCheckError creates a CheckError for a file.
func NewCheckError(filePath string, err error) *CheckError {
	return &CheckError{FilePath: filePath, Err: err}
}

// Error implements the error interface.
func (e *CheckError) Error() string {
	return fmt.Sprintf("checking %s: %v", e.FilePath, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As.
func (e *CheckError) Unwrap() error {
	return e.Err
}
