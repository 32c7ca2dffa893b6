// Copyright (C) 2025 Idiomatic JS Project (maintainers@idiomaticjs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package scanner

// =============================================================================
// DECLARATION
// =============================================================================

// DeclKind classifies a declared binding.
type DeclKind int

const (
	// DeclUnknown indicates an unrecognized declaration form.
	DeclUnknown DeclKind = iota

	// DeclVar is a `var` declarator.
	DeclVar

	// DeclLet is a `let` declarator.
	DeclLet

	// DeclConst is a `const` declarator.
	DeclConst

	// DeclFunction is a named function declaration.
	DeclFunction

	// DeclClass is a class declaration.
	DeclClass

	// DeclParam is a function, method, arrow, or catch parameter.
	DeclParam

	// DeclMethod is a method definition inside a class body.
	DeclMethod
)

// String returns the string representation of the declaration kind.
func (k DeclKind) String() string {
	switch k {
	case DeclVar:
		return "var"
	case DeclLet:
		return "let"
	case DeclConst:
		return "const"
	case DeclFunction:
		return "function"
	case DeclClass:
		return "class"
	case DeclParam:
		return "param"
	case DeclMethod:
		return "method"
	default:
		return "unknown"
	}
}

// Declaration records one named binding introduced by the source text.
//
// Thread Safety: Immutable after Scan returns.
type Declaration struct {
	// Name is the declared identifier.
	Name string

	// Kind classifies the declaration form.
	Kind DeclKind

	// Line is the 1-indexed line of the identifier.
	Line int

	// Column is the 1-indexed column of the identifier.
	Column int

	// FunctionDepth is the number of enclosing function scopes.
	// Zero means program (module) scope.
	FunctionDepth int
}

// =============================================================================
// STRING LITERAL
// =============================================================================

// StringLiteral records one quoted string in the source.
//
// Template literals are not recorded; they are exempt from quote rules.
type StringLiteral struct {
	// Quote is the delimiter character, '\'' or '"'.
	Quote byte

	// Line is the 1-indexed line of the opening quote.
	Line int

	// Column is the 1-indexed column of the opening quote.
	Column int

	// Raw is the literal text including delimiters.
	Raw string
}

// Content returns the text between the delimiters.
func (s StringLiteral) Content() string {
	if len(s.Raw) < 2 {
		return ""
	}
	return s.Raw[1 : len(s.Raw)-1]
}

// =============================================================================
// EXPRESSION FACTS
// =============================================================================

// Equality records one equality comparison operator.
type Equality struct {
	// Operator is one of "==", "!=", "===", "!==".
	Operator string

	// Line is the 1-indexed line of the operator.
	Line int

	// Column is the 1-indexed column of the operator.
	Column int

	// NullOperand is true when either operand is the `null` literal.
	NullOperand bool
}

// Assignment records an assignment whose target is a bare identifier.
type Assignment struct {
	// Name is the identifier being assigned.
	Name string

	// Line is the 1-indexed line of the identifier.
	Line int

	// Column is the 1-indexed column of the identifier.
	Column int

	// Declared is true when some enclosing scope declares the name.
	// False indicates an implicit global.
	Declared bool
}

// =============================================================================
// STRUCTURE FACTS
// =============================================================================

// Block records the opening brace of a statement block or class body.
type Block struct {
	// Line is the 1-indexed line of the opening brace.
	Line int

	// Column is the 1-indexed column of the opening brace.
	Column int

	// HeaderLine is the 1-indexed line where the construct header ends
	// (the closing paren of a condition, the class name, etc.).
	HeaderLine int

	// Owner is the tree-sitter type of the construct owning the block
	// (e.g., "if_statement", "function_declaration").
	Owner string
}

// ElseClause records the placement of an `else` keyword.
type ElseClause struct {
	// Line is the 1-indexed line of the `else` keyword.
	Line int

	// Column is the 1-indexed column of the `else` keyword.
	Column int

	// PriorEndLine is the 1-indexed end line of the preceding
	// consequence block.
	PriorEndLine int
}

// Statement records a statement that requires explicit termination.
type Statement struct {
	// Kind is the tree-sitter node type (e.g., "expression_statement").
	Kind string

	// Line is the 1-indexed starting line.
	Line int

	// Column is the 1-indexed starting column.
	Column int

	// EndLine is the 1-indexed ending line.
	EndLine int

	// EndColumn is the 1-indexed ending column.
	EndColumn int

	// Terminated is true when the statement ends with an explicit
	// semicolon.
	Terminated bool
}

// LineInfo records the indentation facts for one physical line.
type LineInfo struct {
	// Number is the 1-indexed line number.
	Number int

	// Indent is the leading whitespace of the line.
	Indent string

	// HasTabs is true when the indent contains a tab.
	HasTabs bool

	// HasSpaces is true when the indent contains a space.
	HasSpaces bool

	// Blank is true when the line is empty or whitespace-only.
	Blank bool

	// Exempt is true for continuation lines inside multi-line strings,
	// template literals, or comments. Indentation rules skip these.
	Exempt bool
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the read-only syntactic view of one source file.
//
// A Model corresponds 1:1 to the exact bytes that were scanned; Hash
// records a SHA-256 of the input so callers can verify the pairing.
//
// Thread Safety: Immutable after Scan returns. Safe to share across
// goroutines; rules must never mutate it.
type Model struct {
	// FilePath is the path the content was scanned under.
	FilePath string

	// Hash is the hex SHA-256 of the scanned bytes.
	Hash string

	// LineCount is the number of physical lines.
	LineCount int

	// Lines holds per-line indentation facts, index 0 is line 1.
	Lines []LineInfo

	// Declarations are the named bindings in source order.
	Declarations []Declaration

	// Strings are the quoted string literals in source order.
	Strings []StringLiteral

	// Equalities are the equality comparisons in source order.
	Equalities []Equality

	// Blocks are opening braces with their construct headers.
	Blocks []Block

	// Elses are else-keyword placements.
	Elses []ElseClause

	// Statements are the statements subject to semicolon checks.
	Statements []Statement

	// Assignments are identifier assignment targets with resolution.
	Assignments []Assignment

	// NewTargets holds identifiers invoked with `new` anywhere in the
	// file; used to recognize constructor functions.
	NewTargets map[string]bool

	// HasSyntaxErrors is true when tree-sitter reported parse errors.
	HasSyntaxErrors bool

	// Diagnostics are parse-level notes (not style violations).
	Diagnostics []string

	// ScannedAtMilli is when the scan completed, as UnixMilli.
	ScannedAtMilli int64
}

// IsConstructor reports whether a function name is used with `new`
// somewhere in the file.
func (m *Model) IsConstructor(name string) bool {
	return m.NewTargets[name]
}
