// Copyright (C) 2025 Idiomatic JS Project (maintainers@idiomaticjs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package scanner turns JavaScript source text into the syntactic model
// consumed by style rules.
//
// The scanner uses tree-sitter to parse source files and extracts the
// narrow set of facts the rules need: declarations, string literals,
// equality operators, brace placement, statement termination, per-line
// indentation, and assignment targets with scope resolution. The raw
// tree is discarded before Scan returns; rules never see tree-sitter
// nodes.
//
// # Error Tolerance
//
// Parsing is error-tolerant. Syntactically invalid input produces a
// partial model with HasSyntaxErrors set rather than a hard failure,
// so a style run never aborts on a half-saved file.
//
// # Usage
//
//	s := scanner.New()
//	model, err := s.Scan(ctx, content, "src/app.js")
//	if err != nil {
//	    return err
//	}
//	for _, decl := range model.Declarations {
//	    fmt.Println(decl.Name, decl.Line)
//	}
//
// # Thread Safety
//
// Scanner is safe for concurrent use. Each Scan call creates its own
// tree-sitter parser instance internally.
package scanner
