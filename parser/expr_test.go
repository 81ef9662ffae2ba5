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
	"github.com/ferra-lang/ferrac/token"
)

func TestPrecedenceMulBindsOverAdd(t *testing.T) {
	assertExpr(t, "1 + 2 * 3", `
binary: +
  int: 1
  binary: *
    int: 2
    int: 3
`[1:])
}

func TestPrecedenceShiftBelowAdd(t *testing.T) {
	assertExpr(t, "1 + 2 << 3", `
binary: <<
  binary: +
    int: 1
    int: 2
  int: 3
`[1:])
}

func TestPrecedenceBitwiseLadder(t *testing.T) {
	assertExpr(t, "1 | 2 ^ 3 & 4", `
binary: |
  int: 1
  binary: ^
    int: 2
    binary: &
      int: 3
      int: 4
`[1:])
}

func TestPrecedenceLogicalAndComparison(t *testing.T) {
	assertExpr(t, "a < b == c && d || e", `
binary: ||
  binary: &&
    binary: ==
      binary: <
        identifier: a
        identifier: b
      identifier: c
    identifier: d
  identifier: e
`[1:])
}

func TestLeftAssociativeSubtraction(t *testing.T) {
	assertExpr(t, "a - b - c", `
binary: -
  binary: -
    identifier: a
    identifier: b
  identifier: c
`[1:])
}

func TestRightAssociativeAssignment(t *testing.T) {
	assertExpr(t, "a = b = c", `
binary: =
  identifier: a
  binary: =
    identifier: b
    identifier: c
`[1:])
}

func TestCompoundAssignment(t *testing.T) {
	assertExpr(t, "a += b * 2", `
binary: +=
  identifier: a
  binary: *
    identifier: b
    int: 2
`[1:])
}

func TestPostfixChain(t *testing.T) {
	assertExpr(t, "obj.method()[0].field", `
member: field
  index
    call
      member: method
        identifier: obj
      args
    int: 0
`[1:])
}

func TestUnaryBindsBelowPostfix(t *testing.T) {
	assertExpr(t, "-a.b()", `
unary: -
  call
    member: b
      identifier: a
    args
`[1:])
}

func TestNestedPrefixOperators(t *testing.T) {
	assertExpr(t, "- -5", `
unary: -
  unary: -
    int: 5
`[1:])

	assertExpr(t, "!x && y", `
binary: &&
  unary: !
    identifier: x
  identifier: y
`[1:])
}

func TestCallArgumentsWithTrailingComma(t *testing.T) {
	assertExpr(t, "f(1, x,)", `
call
  identifier: f
  args
    int: 1
    identifier: x
`[1:])
}

func TestAwaitAndTryPostfix(t *testing.T) {
	assertExpr(t, "fut.await?", `
try
  await
    identifier: fut
`[1:])
}

func TestQualifiedIdentifier(t *testing.T) {
	assertExpr(t, "a::b::c", `
qualified-identifier
  identifier: a
  identifier: b
  identifier: c
`[1:])
}

func TestGroupingAndTuples(t *testing.T) {
	assertExpr(t, "(x)", `
paren
  identifier: x
`[1:])

	assertExpr(t, "()", `
tuple
`[1:])

	assertExpr(t, "(1,)", `
tuple
  int: 1
`[1:])

	assertExpr(t, "(1, 2, 3)", `
tuple
  int: 1
  int: 2
  int: 3
`[1:])
}

func TestArrayLiterals(t *testing.T) {
	assertExpr(t, "[]", `
array
`[1:])

	assertExpr(t, "[1, 2, 3,]", `
array
  int: 1
  int: 2
  int: 3
`[1:])
}

func TestRangeExpressions(t *testing.T) {
	assertExpr(t, "1..5", `
binary: ..
  int: 1
  int: 5
`[1:])

	assertExpr(t, "1..=5", `
binary: ..=
  int: 1
  int: 5
`[1:])

	// Open-ended on the high side.
	n := assertExpr(t, "1..", `
binary: ..
  int: 1
`[1:])
	if len(n.Children) != 1 {
		t.Errorf("open-ended range should have exactly one bound, got %d", len(n.Children))
	}

	// Open-ended on the low side.
	assertExpr(t, "..=9", `
binary: ..=
  int: 9
`[1:])
}

func TestLiteralExpressions(t *testing.T) {
	assertExpr(t, "true", "bool: true\n")
	assertExpr(t, "null", "null: null\n")
	assertExpr(t, "3.25", "float: 3.25\n")
	assertExpr(t, `"hi"`, "string: hi\n")
}

func TestMacroInvocationExpression(t *testing.T) {
	assertExpr(t, `log!("x", 1)`, `
macro-invoke: log
  token-group
    token: x
    token: ,
    token: 1
`[1:])
}

func TestMacroInvocationOnNonNameFails(t *testing.T) {
	p := newTestSession("1!(x)")
	_, err := p.ParseExpression()
	if err == nil {
		t.Fatal("expected an error for a macro bang after a literal")
	}
	ds := p.Diagnostics()
	if len(ds) == 0 || ds[0].Kind != diag.SyntaxError {
		t.Fatalf("expected a SyntaxError diagnostic, got %v", ds)
	}
}

func TestExpectedExpressionOnBadToken(t *testing.T) {
	p := newTestSession("?")
	_, err := p.ParseExpression()
	if err == nil {
		t.Fatal("expected an error")
	}
	ds := p.Diagnostics()
	if len(ds) != 1 || ds[0].Kind != diag.ExpectedExpression {
		t.Fatalf("expected one ExpectedExpression diagnostic, got %v", ds)
	}
}

func TestExpressionConsumesExactlyItsTokens(t *testing.T) {
	p := newTestSession("a + b c")
	_, err := p.ParseExpression()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rest := p.cur.Peek()
	if rest.Kind != token.Ident || rest.Lexeme != "c" {
		t.Fatalf("expression parsing should stop before 'c', cursor is at %v", rest)
	}
}

func TestDeepNestingWithinLimitParses(t *testing.T) {
	depth := 1100
	src := strings.Repeat("(", depth) + "1" + strings.Repeat(")", depth)
	p := newTestSession(src)
	if _, err := p.ParseExpression(); err != nil {
		t.Fatalf("nesting of depth %d should parse, got %v", depth, err)
	}
}

func TestExcessiveNestingReportsDepthError(t *testing.T) {
	depth := 1300
	src := strings.Repeat("(", depth) + "1" + strings.Repeat(")", depth)
	p := newTestSession(src)
	_, err := p.ParseExpression()
	if err == nil {
		t.Fatal("expected a too-deeply-nested error")
	}
	ds := p.Diagnostics()
	if len(ds) == 0 || ds[0].Kind != diag.ExpectedExpression {
		t.Fatalf("expected an ExpectedExpression diagnostic, got %v", ds)
	}
	if !strings.Contains(ds[0].Message, "too deeply") {
		t.Fatalf("diagnostic should mention nesting depth, got %q", ds[0].Message)
	}
}

func TestBinaryTreeRespectsPrecedenceInvariant(t *testing.T) {
	// For every left-associative binary node, the operator's binding power
	// must be >= the root operator of its left subtree and > that of its
	// right subtree.
	p := newTestSession("1 + 2 * 3 - 4 / 5 % 6 << 7 & 8")
	root, err := p.ParseExpression()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var check func(n *ast.Node)
	check = func(n *ast.Node) {
		if n.Kind != ast.BinaryExpr || len(n.Children) != 2 {
			return
		}
		op := binaryOps[n.Token.Kind]
		l, r := n.Children[0], n.Children[1]
		if l.Kind == ast.BinaryExpr {
			if lop := binaryOps[l.Token.Kind]; op.bp > lop.bp {
				t.Errorf("left child operator %v binds looser than parent %v", l.Token, n.Token)
			}
		}
		if r.Kind == ast.BinaryExpr {
			if rop := binaryOps[r.Token.Kind]; op.bp >= rop.bp && !op.rightAssoc {
				t.Errorf("right child operator %v does not bind tighter than parent %v", r.Token, n.Token)
			}
		}
		check(l)
		check(r)
	}
	check(root)
}
