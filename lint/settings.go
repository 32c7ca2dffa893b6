// Copyright (C) 2025 Idiomatic JS Project (maintainers@idiomaticjs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package lint

// =============================================================================
// RULE SETTINGS
// =============================================================================

// Quote and indent style constants used by Settings.
const (
	// QuoteSingle prefers single-quoted strings.
	QuoteSingle = "single"

	// QuoteDouble prefers double-quoted strings.
	QuoteDouble = "double"

	// IndentSpace indents with spaces.
	IndentSpace = "space"

	// IndentTab indents with tabs.
	IndentTab = "tab"
)

// Settings carries the tunable knobs rules consult during a check.
//
// One Settings value is shared by every rule in a pass, so rules must
// treat it as read-only.
//
// Thread Safety: Treat as immutable after creation.
type Settings struct {
	// Quote is the preferred string delimiter, QuoteSingle or
	// QuoteDouble.
	Quote string

	// IndentStyle is IndentSpace or IndentTab.
	IndentStyle string

	// IndentWidth is the space count per indent level. Ignored for
	// tab indentation.
	IndentWidth int

	// AllowEqNull permits `== null` / `!= null` as the idiomatic
	// null-or-undefined check.
	AllowEqNull bool

	// StrictGlobals additionally flags `var` declarations at program
	// scope, not just assignments to undeclared names.
	StrictGlobals bool
}

// DefaultSettings returns the documented convention defaults: single
// quotes, two-space indentation, strict equality everywhere.
func DefaultSettings() *Settings {
	return &Settings{
		Quote:       QuoteSingle,
		IndentStyle: IndentSpace,
		IndentWidth: 2,
	}
}

// Clone returns a copy of the settings.
func (s *Settings) Clone() *Settings {
	clone := *s
	return &clone
}
