// Copyright (C) 2025 Idiomatic JS Project (maintainers@idiomaticjs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package rules holds the built-in convention checks.
//
// Each rule enforces one section of the documented style guide:
//
//	| Rule                | Convention                                  |
//	|---------------------|---------------------------------------------|
//	| naming              | camelCase vars/functions, PascalCase types  |
//	| brace-style         | opening brace on the declaration line       |
//	| quotes              | consistent string delimiter                 |
//	| indent              | consistent indentation unit                 |
//	| semi                | explicit statement termination              |
//	| eqeqeq              | strict equality operators                   |
//	| no-implicit-globals | no assignment to undeclared names           |
//
// Rules are pure functions over the scanned model. They carry no state
// and perform no I/O, so a single rule value serves every goroutine.
//
// DefaultRegistry returns a lint.Registry pre-populated with all of
// the above.
package rules
