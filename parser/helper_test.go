/*
 * Ferra
 *
 * Copyright 2026 The Ferra Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package parser

import (
	"testing"

	"github.com/ferra-lang/ferrac/ast"
)

/*
UnitTestParse parses input as a compilation unit with a fresh arena and
default configuration, returning the unit and the aggregated error.
*/
func UnitTestParse(name, input string) (*ast.Node, error) {
	p := NewSessionFromSource(name, input, ast.NewArena(), nil)
	unit, _ := p.ParseCompilationUnit()
	return unit, p.Err()
}

func newTestSession(input string, opts ...Option) *Parser {
	return NewSessionFromSource("test.fe", input, ast.NewArena(), NewConfig(opts...))
}

func assertParse(t *testing.T, input, expected string) *ast.Node {
	t.Helper()
	unit, err := UnitTestParse("test.fe", input)
	if err != nil {
		t.Errorf("unexpected parse error for %q:\n%v", input, err)
		return unit
	}
	if res := unit.String(); res != expected {
		t.Errorf("unexpected parser output for %q:\n%vexpected was:\n%v", input, res, expected)
	}
	return unit
}

func assertExpr(t *testing.T, input, expected string) *ast.Node {
	t.Helper()
	p := newTestSession(input)
	res, err := p.ParseExpression()
	if err != nil {
		t.Errorf("unexpected expression error for %q:\n%v", input, err)
		return res
	}
	if s := res.String(); s != expected {
		t.Errorf("unexpected expression output for %q:\n%vexpected was:\n%v", input, s, expected)
	}
	return res
}

func assertType(t *testing.T, input, expected string) *ast.Node {
	t.Helper()
	p := newTestSession(input)
	res, err := p.ParseType()
	if err != nil {
		t.Errorf("unexpected type error for %q:\n%v", input, err)
		return res
	}
	if s := res.String(); s != expected {
		t.Errorf("unexpected type output for %q:\n%vexpected was:\n%v", input, s, expected)
	}
	return res
}

func assertPattern(t *testing.T, input, expected string) *ast.Node {
	t.Helper()
	p := newTestSession(input)
	res, err := p.ParsePattern()
	if err != nil {
		t.Errorf("unexpected pattern error for %q:\n%v", input, err)
		return res
	}
	if s := res.String(); s != expected {
		t.Errorf("unexpected pattern output for %q:\n%vexpected was:\n%v", input, s, expected)
	}
	return res
}
