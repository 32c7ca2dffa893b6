// Copyright (C) 2025 Idiomatic JS Project (maintainers@idiomaticjs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package scanner

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Scope resolution for assignment targets.
//
// Bindings are resolved against function scopes only: let and const are
// treated as if hoisted to the nearest function scope. This
// overapproximates declaredness, which errs on the side of fewer false
// implicit-global reports. Temporal dead zones are not modeled.

// functionLike reports whether a node introduces a function scope.
func functionLike(nodeType string) bool {
	switch nodeType {
	case "function_declaration", "generator_function_declaration",
		"function", "function_expression", "arrow_function", "method_definition":
		return true
	}
	return false
}

// resolveAssignments fills in the Declared flag on model.Assignments.
func resolveAssignments(root *sitter.Node, src []byte, model *Model) {
	if len(model.Assignments) == 0 {
		return
	}

	// Index assignments by position for the resolution walk.
	index := make(map[[2]int]int, len(model.Assignments))
	for i, a := range model.Assignments {
		index[[2]int{a.Line, a.Column}] = i
	}

	program := make(map[string]bool)
	collectScope(root, src, program, true)

	walkScopes(root, src, []map[string]bool{program}, index, model)
}

// walkScopes descends the tree maintaining a stack of function scopes
// and resolves each identifier assignment target against it.
func walkScopes(node *sitter.Node, src []byte, stack []map[string]bool, index map[[2]int]int, model *Model) {
	if node.Type() == "assignment_expression" {
		if left := node.ChildByFieldName("left"); left != nil && left.Type() == "identifier" {
			if i, ok := index[[2]int{line(left), column(left)}]; ok {
				model.Assignments[i].Declared = inScope(stack, left.Content(src))
			}
		}
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		if functionLike(child.Type()) {
			scope := make(map[string]bool)
			collectScope(child, src, scope, true)
			walkScopes(child, src, append(stack, scope), index, model)
			continue
		}
		walkScopes(child, src, stack, index, model)
	}
}

// inScope reports whether any scope on the stack declares the name.
func inScope(stack []map[string]bool, name string) bool {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i][name] {
			return true
		}
	}
	return false
}

// collectScope gathers the names declared within one function scope.
//
// The walk does not descend into nested function bodies: their bindings
// belong to inner scopes. A nested function declaration's own name is
// still added, since it binds in the enclosing scope.
func collectScope(node *sitter.Node, src []byte, scope map[string]bool, isRoot bool) {
	if isRoot && node.Type() == "arrow_function" {
		// A bare arrow parameter (`x => ...`) has no formal_parameters
		// node; the identifier hangs off the parameter field.
		if param := node.ChildByFieldName("parameter"); param != nil && param.Type() == "identifier" {
			scope[param.Content(src)] = true
		}
	}

	if !isRoot && functionLike(node.Type()) {
		if node.Type() == "function_declaration" || node.Type() == "generator_function_declaration" {
			if name := node.ChildByFieldName("name"); name != nil {
				scope[name.Content(src)] = true
			}
		}
		return
	}

	switch node.Type() {
	case "variable_declarator":
		if name := node.ChildByFieldName("name"); name != nil && name.Type() == "identifier" {
			scope[name.Content(src)] = true
		}

	case "class_declaration":
		if name := node.ChildByFieldName("name"); name != nil {
			scope[name.Content(src)] = true
		}

	case "formal_parameters":
		for i := 0; i < int(node.NamedChildCount()); i++ {
			param := node.NamedChild(i)
			if param != nil && param.Type() == "identifier" {
				scope[param.Content(src)] = true
			}
		}

	case "catch_clause":
		if param := node.ChildByFieldName("parameter"); param != nil && param.Type() == "identifier" {
			scope[param.Content(src)] = true
		}

	case "import_statement":
		collectImportedNames(node, src, scope)
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		if child := node.Child(i); child != nil {
			collectScope(child, src, scope, false)
		}
	}
}

// collectImportedNames adds every identifier bound by an import.
func collectImportedNames(node *sitter.Node, src []byte, scope map[string]bool) {
	if node.Type() == "identifier" {
		scope[node.Content(src)] = true
		return
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if child := node.NamedChild(i); child != nil {
			collectImportedNames(child, src, scope)
		}
	}
}
