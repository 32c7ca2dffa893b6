// Copyright (C) 2025 Idiomatic JS Project (maintainers@idiomaticjs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package scanner

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
)

// =============================================================================
// CONSTANTS AND ERRORS
// =============================================================================

const (
	// DefaultMaxFileSize is the default maximum input size (10MB).
	DefaultMaxFileSize = 10 * 1024 * 1024

	// WarnFileSize triggers a log warning for large inputs (1MB).
	WarnFileSize = 1024 * 1024
)

var (
	// ErrFileTooLarge indicates the input exceeds the configured limit.
	ErrFileTooLarge = errors.New("file too large")

	// ErrInvalidContent indicates the input is not valid UTF-8.
	ErrInvalidContent = errors.New("invalid content")
)

// =============================================================================
// SCANNER
// =============================================================================

// Option configures a Scanner instance.
type Option func(*Scanner)

// WithMaxFileSize sets the maximum input size the scanner will accept.
func WithMaxFileSize(bytes int64) Option {
	return func(s *Scanner) {
		if bytes > 0 {
			s.maxFileSize = bytes
		}
	}
}

// Scanner parses JavaScript source into the rule-facing Model.
//
// Description:
//
//	Scanner wraps tree-sitter's JavaScript grammar. Each Scan call
//	creates its own parser instance, so one Scanner may be shared by
//	any number of goroutines.
//
// Thread Safety: Safe for concurrent use.
type Scanner struct {
	maxFileSize int64
}

// New creates a Scanner with the given options.
func New(opts ...Option) *Scanner {
	s := &Scanner{
		maxFileSize: DefaultMaxFileSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan parses source content and extracts the syntactic model.
//
// Description:
//
//	Parses the content with tree-sitter's JavaScript grammar and walks
//	the tree once, extracting the facts the style rules consume. The
//	parse is error-tolerant: invalid syntax yields a partial model with
//	HasSyntaxErrors set rather than an error.
//
// Inputs:
//
//	ctx - Context for cancellation. Checked before and after parsing.
//	content - Raw source bytes. Must be valid UTF-8.
//	filePath - Path used for reporting. Not read from disk.
//
// Outputs:
//
//	*Model - The extracted model. Never nil on success.
//	error - ErrFileTooLarge, ErrInvalidContent, or a context error.
//
// Thread Safety: Safe for concurrent use.
func (s *Scanner) Scan(ctx context.Context, content []byte, filePath string) (*Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("scan canceled before start: %w", err)
	}

	if int64(len(content)) > s.maxFileSize {
		return nil, fmt.Errorf("%w: size %d exceeds limit %d", ErrFileTooLarge, len(content), s.maxFileSize)
	}

	if len(content) > WarnFileSize {
		slog.Warn("scanning large file",
			slog.String("file", filePath),
			slog.Int("size_bytes", len(content)))
	}

	if !utf8.Valid(content) {
		return nil, fmt.Errorf("%w: content is not valid UTF-8", ErrInvalidContent)
	}

	hash := sha256.Sum256(content)

	parser := sitter.NewParser()
	parser.SetLanguage(javascript.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse failed: %w", err)
	}
	defer tree.Close()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("scan canceled after parse: %w", err)
	}

	model := &Model{
		FilePath:     filePath,
		Hash:         hex.EncodeToString(hash[:]),
		Declarations: make([]Declaration, 0),
		Strings:      make([]StringLiteral, 0),
		Equalities:   make([]Equality, 0),
		Blocks:       make([]Block, 0),
		Elses:        make([]ElseClause, 0),
		Statements:   make([]Statement, 0),
		Assignments:  make([]Assignment, 0),
		NewTargets:   make(map[string]bool),
		Diagnostics:  make([]string, 0),
	}

	s.extractLines(content, model)

	root := tree.RootNode()
	if root == nil {
		model.Diagnostics = append(model.Diagnostics, "tree-sitter returned nil root node")
		model.ScannedAtMilli = time.Now().UnixMilli()
		return model, nil
	}

	if root.HasError() {
		model.HasSyntaxErrors = true
		model.Diagnostics = append(model.Diagnostics, "source contains syntax errors")
	}

	s.extract(root, content, model, 0)
	resolveAssignments(root, content, model)

	model.ScannedAtMilli = time.Now().UnixMilli()
	return model, nil
}

// =============================================================================
// LINE FACTS
// =============================================================================

// extractLines records per-line indentation facts.
func (s *Scanner) extractLines(content []byte, model *Model) {
	lines := strings.Split(string(content), "\n")
	model.LineCount = len(lines)
	model.Lines = make([]LineInfo, len(lines))

	for i, line := range lines {
		info := LineInfo{Number: i + 1}

		j := 0
		for j < len(line) && (line[j] == ' ' || line[j] == '\t') {
			if line[j] == ' ' {
				info.HasSpaces = true
			} else {
				info.HasTabs = true
			}
			j++
		}
		info.Indent = line[:j]
		info.Blank = j == len(line)

		model.Lines[i] = info
	}
}

// markExemptLines marks continuation lines of a multi-line node so the
// indent rule skips them. The first line stays checkable.
func markExemptLines(node *sitter.Node, model *Model) {
	start := int(node.StartPoint().Row)
	end := int(node.EndPoint().Row)
	for line := start + 1; line <= end && line < len(model.Lines); line++ {
		model.Lines[line].Exempt = true
	}
}

// =============================================================================
// TREE EXTRACTION
// =============================================================================

// statementKinds are node types subject to the semicolon check.
var statementKinds = map[string]bool{
	"expression_statement": true,
	"variable_declaration": true,
	"lexical_declaration":  true,
	"return_statement":     true,
	"throw_statement":      true,
	"break_statement":      true,
	"continue_statement":   true,
	"do_statement":         true,
	"import_statement":     true,
}

// blockOwners are parents whose statement_block participates in the
// brace placement check.
var blockOwners = map[string]bool{
	"function_declaration":           true,
	"generator_function_declaration": true,
	"function":                       true,
	"function_expression":            true,
	"arrow_function":                 true,
	"method_definition":              true,
	"if_statement":                   true,
	"else_clause":                    true,
	"for_statement":                  true,
	"for_in_statement":               true,
	"while_statement":                true,
	"do_statement":                   true,
	"try_statement":                  true,
	"catch_clause":                   true,
	"finally_clause":                 true,
}

// extract walks the tree once, populating the model. functionDepth
// counts enclosing function scopes, with program scope at zero.
func (s *Scanner) extract(node *sitter.Node, src []byte, model *Model, functionDepth int) {
	childDepth := functionDepth

	switch node.Type() {
	case "variable_declaration", "lexical_declaration":
		s.extractDeclarators(node, src, model, functionDepth)
		if parent := node.Parent(); parent == nil || !isForHeader(parent.Type()) {
			s.recordStatement(node, model)
		}

	case "function_declaration", "generator_function_declaration":
		if name := node.ChildByFieldName("name"); name != nil {
			model.Declarations = append(model.Declarations, Declaration{
				Name:          name.Content(src),
				Kind:          DeclFunction,
				Line:          line(name),
				Column:        column(name),
				FunctionDepth: functionDepth,
			})
		}
		childDepth = functionDepth + 1

	case "function", "function_expression", "arrow_function", "method_definition":
		if node.Type() == "method_definition" {
			if name := node.ChildByFieldName("name"); name != nil {
				model.Declarations = append(model.Declarations, Declaration{
					Name:          name.Content(src),
					Kind:          DeclMethod,
					Line:          line(name),
					Column:        column(name),
					FunctionDepth: functionDepth,
				})
			}
		}
		if node.Type() == "arrow_function" {
			// A bare arrow parameter (`x => ...`) has no
			// formal_parameters node. It binds in the arrow's own scope.
			if param := node.ChildByFieldName("parameter"); param != nil && param.Type() == "identifier" {
				model.Declarations = append(model.Declarations, Declaration{
					Name:          param.Content(src),
					Kind:          DeclParam,
					Line:          line(param),
					Column:        column(param),
					FunctionDepth: functionDepth + 1,
				})
			}
		}
		childDepth = functionDepth + 1

	case "class_declaration":
		if name := node.ChildByFieldName("name"); name != nil {
			model.Declarations = append(model.Declarations, Declaration{
				Name:          name.Content(src),
				Kind:          DeclClass,
				Line:          line(name),
				Column:        column(name),
				FunctionDepth: functionDepth,
			})
		}

	case "formal_parameters":
		// Parameters belong to the scope of the function that owns them.
		for i := 0; i < int(node.NamedChildCount()); i++ {
			param := node.NamedChild(i)
			if param != nil && param.Type() == "identifier" {
				model.Declarations = append(model.Declarations, Declaration{
					Name:          param.Content(src),
					Kind:          DeclParam,
					Line:          line(param),
					Column:        column(param),
					FunctionDepth: functionDepth,
				})
			}
		}

	case "catch_clause":
		if param := node.ChildByFieldName("parameter"); param != nil && param.Type() == "identifier" {
			model.Declarations = append(model.Declarations, Declaration{
				Name:          param.Content(src),
				Kind:          DeclParam,
				Line:          line(param),
				Column:        column(param),
				FunctionDepth: functionDepth,
			})
		}

	case "string":
		raw := node.Content(src)
		if len(raw) >= 2 {
			model.Strings = append(model.Strings, StringLiteral{
				Quote:  raw[0],
				Line:   line(node),
				Column: column(node),
				Raw:    raw,
			})
		}
		markExemptLines(node, model)

	case "template_string", "comment":
		markExemptLines(node, model)

	case "binary_expression":
		if op := node.ChildByFieldName("operator"); op != nil {
			switch op.Type() {
			case "==", "!=", "===", "!==":
				model.Equalities = append(model.Equalities, Equality{
					Operator:    op.Type(),
					Line:        line(op),
					Column:      column(op),
					NullOperand: hasNullOperand(node),
				})
			}
		}

	case "assignment_expression":
		if left := node.ChildByFieldName("left"); left != nil && left.Type() == "identifier" {
			model.Assignments = append(model.Assignments, Assignment{
				Name:   left.Content(src),
				Line:   line(left),
				Column: column(left),
			})
		}

	case "new_expression":
		if ctor := node.ChildByFieldName("constructor"); ctor != nil && ctor.Type() == "identifier" {
			model.NewTargets[ctor.Content(src)] = true
		}

	case "statement_block", "class_body", "switch_body":
		s.recordBlock(node, model)

	case "else_clause":
		s.recordElse(node, model)

	case "expression_statement", "return_statement", "throw_statement",
		"break_statement", "continue_statement", "do_statement", "import_statement":
		s.recordStatement(node, model)

	case "export_statement":
		if !containsDeclarationChild(node) {
			s.recordStatement(node, model)
		}
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child != nil {
			s.extract(child, src, model, childDepth)
		}
	}
}

// extractDeclarators records the identifiers bound by a var/let/const
// declaration. Destructuring patterns are skipped.
func (s *Scanner) extractDeclarators(node *sitter.Node, src []byte, model *Model, functionDepth int) {
	kind := DeclVar
	if first := node.Child(0); first != nil {
		switch first.Type() {
		case "let":
			kind = DeclLet
		case "const":
			kind = DeclConst
		}
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		declarator := node.NamedChild(i)
		if declarator == nil || declarator.Type() != "variable_declarator" {
			continue
		}
		name := declarator.ChildByFieldName("name")
		if name == nil || name.Type() != "identifier" {
			continue
		}
		model.Declarations = append(model.Declarations, Declaration{
			Name:          name.Content(src),
			Kind:          kind,
			Line:          line(name),
			Column:        column(name),
			FunctionDepth: functionDepth,
		})
	}
}

// recordStatement records a statement with its termination flag.
func (s *Scanner) recordStatement(node *sitter.Node, model *Model) {
	terminated := false
	if last := node.Child(int(node.ChildCount()) - 1); last != nil {
		terminated = last.Type() == ";"
	}
	model.Statements = append(model.Statements, Statement{
		Kind:       node.Type(),
		Line:       line(node),
		Column:     column(node),
		EndLine:    int(node.EndPoint().Row) + 1,
		EndColumn:  int(node.EndPoint().Column) + 1,
		Terminated: terminated,
	})
}

// recordBlock records an opening brace with its construct header line.
func (s *Scanner) recordBlock(node *sitter.Node, model *Model) {
	parent := node.Parent()
	if parent == nil {
		return
	}
	owner := parent.Type()
	if node.Type() == "statement_block" && !blockOwners[owner] {
		// Bare block statements have no header to attach to.
		return
	}

	prev := node.PrevSibling()
	if prev == nil {
		return
	}

	model.Blocks = append(model.Blocks, Block{
		Line:       line(node),
		Column:     column(node),
		HeaderLine: int(prev.EndPoint().Row) + 1,
		Owner:      owner,
	})
}

// recordElse records the placement of an else keyword relative to the
// consequence block above it.
func (s *Scanner) recordElse(node *sitter.Node, model *Model) {
	prev := node.PrevSibling()
	if prev == nil || prev.Type() != "statement_block" {
		// `if (x) y; else z;` has no brace to cuddle against.
		return
	}
	model.Elses = append(model.Elses, ElseClause{
		Line:         line(node),
		Column:       column(node),
		PriorEndLine: int(prev.EndPoint().Row) + 1,
	})
}

// =============================================================================
// HELPERS
// =============================================================================

// line returns the 1-indexed start line of a node.
func line(node *sitter.Node) int {
	return int(node.StartPoint().Row) + 1
}

// column returns the 1-indexed start column of a node.
func column(node *sitter.Node) int {
	return int(node.StartPoint().Column) + 1
}

// isForHeader reports whether a parent node type is a for-loop header,
// where declaration semicolons are part of the loop syntax.
func isForHeader(parentType string) bool {
	return parentType == "for_statement" || parentType == "for_in_statement"
}

// hasNullOperand reports whether either side of a binary expression is
// the null literal.
func hasNullOperand(node *sitter.Node) bool {
	left := node.ChildByFieldName("left")
	right := node.ChildByFieldName("right")
	return (left != nil && left.Type() == "null") || (right != nil && right.Type() == "null")
}

// containsDeclarationChild reports whether an export statement wraps a
// declaration that carries its own termination rules.
func containsDeclarationChild(node *sitter.Node) bool {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "function_declaration", "generator_function_declaration",
			"class_declaration", "variable_declaration", "lexical_declaration":
			return true
		}
	}
	return false
}
