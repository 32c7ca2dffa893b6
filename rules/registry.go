// Copyright (C) 2025 Idiomatic JS Project (maintainers@idiomaticjs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package rules

import (
	"github.com/idiomaticjs/stylecheck/lint"
)

// DefaultRegistry returns a registry with every built-in rule.
//
// Registration order is the order issues tie-break in, so it follows
// the guide's own ordering: naming first, formatting, then semantics.
func DefaultRegistry() *lint.Registry {
	registry := lint.NewRegistry()
	registry.MustRegister(&NamingRule{})
	registry.MustRegister(&BraceStyleRule{})
	registry.MustRegister(&QuotesRule{})
	registry.MustRegister(&IndentRule{})
	registry.MustRegister(&SemiRule{})
	registry.MustRegister(&EqeqeqRule{})
	registry.MustRegister(&NoImplicitGlobalsRule{})
	return registry
}
