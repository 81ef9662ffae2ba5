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
	"strings"
	"testing"

	"github.com/ferra-lang/ferrac/ast"
	"github.com/ferra-lang/ferrac/diag"
)

func TestBreakStatementConsumesItsSemicolon(t *testing.T) {
	p := newTestSession("fn f() { break; }")
	unit, diags := p.ParseCompilationUnit()
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	expected := `
compilation-unit
  func: f
    params
    block (braced)
      break
`[1:]
	if s := unit.String(); s != expected {
		t.Errorf("unexpected output:\n%vexpected was:\n%v", s, expected)
	}
	if !p.cur.AtEnd() {
		t.Errorf("parsing should have consumed the whole input, cursor at %v", p.cur.Peek())
	}
}

func TestFullyModifiedGenericFunction(t *testing.T) {
	unit := assertParse(t, "pub unsafe async fn g<T: Clone>(x: *T) -> T { return *x; }", `
compilation-unit
  func: g
    generic-params
      generic-param: T
        type: Clone
    params
      param: x
        type-pointer
          type: T
    type: T
    block (braced)
      return
        unary: *
          identifier: x
`[1:])

	fn := unit.Children[0]
	for _, m := range []ast.Modifiers{ast.ModPublic, ast.ModUnsafe, ast.ModAsync} {
		if !fn.Modifiers.Has(m) {
			t.Errorf("function should carry modifier %b", m)
		}
	}
}

func TestModifierOutOfOrderReported(t *testing.T) {
	p := newTestSession("async unsafe fn g() {}")
	unit, diags := p.ParseCompilationUnit()
	if len(diags) != 1 || diags[0].Kind != diag.UnexpectedToken {
		t.Fatalf("expected one UnexpectedToken diagnostic, got %v", diags)
	}
	if !strings.Contains(diags[0].Message, "out of order") {
		t.Errorf("diagnostic should point at the misplaced modifier, got %q", diags[0].Message)
	}
	// Recovery resumes at 'fn' and still parses the declaration.
	last := unit.Children[len(unit.Children)-1]
	if last.Kind != ast.FuncDecl || last.Lexeme() != "g" {
		t.Errorf("expected the function to be parsed after recovery, got\n%v", unit)
	}
}

func TestVariableDeclarationForms(t *testing.T) {
	unit := assertParse(t, "let x: Int = 1;\nvar y = 2;\npub let z: Bool;", `
compilation-unit
  var-decl: x
    type: Int
    int: 1
  var-decl: y
    int: 2
  var-decl: z
    type: Bool
`[1:])

	if v := unit.Children[0].Value; v != "let" {
		t.Errorf("binding mode = %q, want let", v)
	}
	if v := unit.Children[1].Value; v != "var" {
		t.Errorf("binding mode = %q, want var", v)
	}
	if !unit.Children[2].Modifiers.Has(ast.ModPublic) {
		t.Errorf("pub let should carry the public modifier")
	}
}

func TestUnsafeModifierRejectedOnVariables(t *testing.T) {
	p := newTestSession("unsafe let x = 1;")
	unit, diags := p.ParseCompilationUnit()
	if len(diags) != 1 || diags[0].Kind != diag.UnexpectedToken {
		t.Fatalf("expected one UnexpectedToken diagnostic, got %v", diags)
	}
	v := unit.Children[0]
	if v.Kind != ast.VarDecl || v.Modifiers.Has(ast.ModUnsafe) {
		t.Errorf("the declaration should still parse, without the unsafe modifier:\n%v", unit)
	}
}

func TestVariableRedefinitionReportedNonFatal(t *testing.T) {
	p := newTestSession("fn f() { let x = 1; let x = 2; }")
	unit, diags := p.ParseCompilationUnit()
	if len(diags) != 1 || diags[0].Kind != diag.VariableRedefinition {
		t.Fatalf("expected one VariableRedefinition diagnostic, got %v", diags)
	}
	body := unit.Children[0].Children[1]
	if len(body.Children) != 2 {
		t.Errorf("both declarations should be in the block:\n%v", unit)
	}
}

func TestShadowingAcrossScopesIsNotRedefinition(t *testing.T) {
	p := newTestSession("fn f() { let x = 1; { let x = 2; } }")
	_, diags := p.ParseCompilationUnit()
	if len(diags) != 0 {
		t.Fatalf("shadowing in a nested scope is not a redefinition, got %v", diags)
	}
}

func TestLabeledWhileWithLabeledBreak(t *testing.T) {
	assertParse(t, "fn f() { 'outer: while true { break 'outer; } }", `
compilation-unit
  func: f
    params
    block (braced)
      while "outer"
        bool: true
        block (braced)
          break "outer"
`[1:])
}

func TestForInStatement(t *testing.T) {
	assertParse(t, "fn f() { for i in xs { g(i); } }", `
compilation-unit
  func: f
    params
    block (braced)
      for-in
        pat-ident: i
        identifier: xs
        block (braced)
          expr-stmt
            call
              identifier: g
              args
                identifier: i
`[1:])
}

func TestIfElifElseChain(t *testing.T) {
	assertParse(t, "fn f() { if a { b(); } elif c { d(); } else { e(); } }", `
compilation-unit
  func: f
    params
    block (braced)
      if
        identifier: a
        block (braced)
          expr-stmt
            call
              identifier: b
              args
        if
          identifier: c
          block (braced)
            expr-stmt
              call
                identifier: d
                args
          block (braced)
            expr-stmt
              call
                identifier: e
                args
`[1:])
}

func TestMatchStatement(t *testing.T) {
	assertParse(t, "fn f() { match x { 1 => a, _ => b } }", `
compilation-unit
  func: f
    params
    block (braced)
      match
        identifier: x
        match-arm
          pat-literal
            int: 1
          identifier: a
        match-arm
          pat-wildcard
          identifier: b
`[1:])
}

func TestReturnWithoutValue(t *testing.T) {
	assertParse(t, "fn f() { return; }", `
compilation-unit
  func: f
    params
    block (braced)
      return
`[1:])
}

func TestContinueWithLabel(t *testing.T) {
	assertParse(t, "fn f() { while true { continue 'a; } }", `
compilation-unit
  func: f
    params
    block (braced)
      while
        bool: true
        block (braced)
          continue "a"
`[1:])
}

func TestTrailingExpressionBlock(t *testing.T) {
	unit := assertParse(t, "fn f() { 1 + 2 }", `
compilation-unit
  func: f
    params
    block (braced)
      binary: +
        int: 1
        int: 2
`[1:])
	body := unit.Children[0].Children[1]
	if !body.TrailingExpr {
		t.Errorf("the final unterminated expression should mark the block as value-producing")
	}
}

func TestMissingSemicolonBetweenExpressionsReported(t *testing.T) {
	p := newTestSession("fn f() { a() b(); }")
	_, diags := p.ParseCompilationUnit()
	if len(diags) != 1 || diags[0].Kind != diag.UnexpectedToken {
		t.Fatalf("expected one missing-semicolon diagnostic, got %v", diags)
	}
	if !strings.Contains(diags[0].Message, "';'") {
		t.Errorf("message should suggest the missing ';', got %q", diags[0].Message)
	}
}

func TestUnsafeBlockStatement(t *testing.T) {
	assertParse(t, "fn f() { unsafe { g(); } }", `
compilation-unit
  func: f
    params
    block (braced)
      expr-stmt
        block (braced): unsafe
          expr-stmt
            call
              identifier: g
              args
`[1:])
}

func TestDataClassDeclaration(t *testing.T) {
	unit := assertParse(t, "data Point<T> { pub x: T, y: T }", `
compilation-unit
  data: Point
    generic-params
      generic-param: T
    field: x
      type: T
    field: y
      type: T
`[1:])
	if !unit.Children[0].Children[0].Modifiers.Has(ast.ModPublic) {
		t.Errorf("field x should be public")
	}
}

func TestExternBlock(t *testing.T) {
	src := `extern "C" {
    fn puts(s: *Char) -> Int;
    var errno: Int;
}`
	unit := assertParse(t, src, `
compilation-unit
  extern: C
    extern-fn: puts
      params
        param: s
          type-pointer
            type: Char
      type: Int
    extern-static: errno
      type: Int
`[1:])
	if unit.Children[0].Value != "C" {
		t.Errorf("ABI = %q, want C", unit.Children[0].Value)
	}
}

func TestAttributesBindToDeclarations(t *testing.T) {
	assertParse(t, `#[cfg(test, feature("x"))] data D { x: Int }`, `
compilation-unit
  data: D
    attribute: cfg
      attr-arg
        identifier: test
      attr-arg
        attribute: feature
          attr-arg
            string: x
    field: x
      type: Int
`[1:])
}

func TestWhereClauseOnFunction(t *testing.T) {
	assertParse(t, "fn f<T>(x: T) -> T where T: Clone + Show { return x; }", `
compilation-unit
  func: f
    generic-params
      generic-param: T
    where
      where-constraint
        type: T
        type: Clone
        type: Show
    params
      param: x
        type: T
    type: T
    block (braced)
      return
        identifier: x
`[1:])
}
