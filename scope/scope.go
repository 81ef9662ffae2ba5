/*
 * Ferra
 *
 * Copyright 2026 The Ferra Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

/*
Package scope tracks lexical binding names during parsing so the statement
and block parsers can detect variable redefinitions within a single scope.
A redefinition is reportable but never fatal - parsing continues. Nothing
here stores a runtime value; scope resolution beyond redefinition detection
belongs to later compiler phases.
*/
package scope

import "github.com/ferra-lang/ferrac/token"

/*
Scope models one lexical nesting level. Depth 0 is the compilation unit's
top level; each Block the block parser enters pushes a child Scope.
*/
type Scope struct {
	name     string
	parent   *Scope
	children []*Scope
	bindings map[string]token.Span
}

/*
New creates a top-level Scope (depth 0, no parent).
*/
func New(name string) *Scope {
	return &Scope{name: name, bindings: make(map[string]token.Span)}
}

/*
NewChild creates and tracks a nested Scope one depth level below s.
*/
func (s *Scope) NewChild(name string) *Scope {
	child := &Scope{name: name, parent: s, bindings: make(map[string]token.Span)}
	s.children = append(s.children, child)
	return child
}

/*
Parent returns the enclosing Scope, or nil at the top level.
*/
func (s *Scope) Parent() *Scope {
	return s.parent
}

/*
Depth returns the number of enclosing scopes (0 at the top level).
*/
func (s *Scope) Depth() int {
	d := 0
	for p := s.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

/*
Declare records varName as bound in s at span. It returns the span of a
prior declaration of the same name in this same scope (not an enclosing
one - shadowing across scopes is not a redefinition), and false if this is
the first declaration.
*/
func (s *Scope) Declare(varName string, span token.Span) (token.Span, bool) {
	if prior, ok := s.bindings[varName]; ok {
		return prior, true
	}
	s.bindings[varName] = span
	return token.Span{}, false
}
