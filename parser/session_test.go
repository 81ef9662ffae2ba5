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
	"errors"
	"sync"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferra-lang/ferrac/ast"
)

// exerciser is a program touching every sub-parser: declarations, control
// flow, patterns, generics, attributes, extern items and macros.
const exerciser = `#[entry]
pub fn main<T: Show>(args: [String]) -> Int where T: Clone {
    let total = 0;
    for a in args {
        total += parse(a)?;
    }
    match total {
        0 => print("zero"),
        n if n > 0 => print("pos"),
        _ => {
            print("neg");
        },
    }
    'l: while true {
        break 'l;
    }
    return total;
}

data Point<T> {
    pub x: T,
    y: T,
}

extern "C" {
    fn abs(x: Int) -> Int;
    var errno: Int;
}

macro twice {
    (a) => (a a);
}
`

func TestSessionIdentifiersAreUnique(t *testing.T) {
	a := newTestSession("fn f() {}")
	b := newTestSession("fn f() {}")
	require.NotEqual(t, a.ID, b.ID)
}

func TestExerciserParsesCleanly(t *testing.T) {
	p := newTestSession(exerciser)
	unit, diags := p.ParseCompilationUnit()
	require.Empty(t, diags)
	require.Len(t, unit.Children, 4)
	assert.Equal(t, ast.FuncDecl, unit.Children[0].Kind)
	assert.Equal(t, ast.DataClassDecl, unit.Children[1].Kind)
	assert.Equal(t, ast.ExternBlock, unit.Children[2].Kind)
	assert.Equal(t, ast.MacroDef, unit.Children[3].Kind)
}

func TestEveryNodeSpanEnclosesItsChildren(t *testing.T) {
	p := newTestSession(exerciser)
	unit, diags := p.ParseCompilationUnit()
	require.Empty(t, diags)

	var check func(n *ast.Node)
	check = func(n *ast.Node) {
		children := make([]*ast.Node, 0, len(n.Children)+len(n.Attrs)+2)
		children = append(children, n.Attrs...)
		if n.Generics != nil {
			children = append(children, n.Generics)
		}
		if n.Where != nil {
			children = append(children, n.Where)
		}
		children = append(children, n.Children...)

		for _, c := range children {
			assert.True(t, n.Span.Encloses(c.Span),
				"span of %v (%v) does not enclose child %v (%v)", n.Kind, n.Span, c.Kind, c.Span)
			check(c)
		}
	}
	check(unit)
}

func TestReparseAfterArenaResetIsStructurallyIdentical(t *testing.T) {
	arena := ast.NewArena()

	p1 := NewSessionFromSource("a.fe", exerciser, arena, nil)
	unit1, diags := p1.ParseCompilationUnit()
	require.Empty(t, diags)

	// Extract everything needed across the reset boundary first: the
	// arena's contract invalidates unit1 afterwards.
	snapshot := unit1.String()
	require.True(t, arena.Valid(unit1))

	arena.Reset()
	require.False(t, arena.Valid(unit1), "nodes must be invalid after Reset")

	p2 := NewSessionFromSource("a.fe", exerciser, arena, nil)
	unit2, diags := p2.ParseCompilationUnit()
	require.Empty(t, diags)
	require.True(t, arena.Valid(unit2))

	assert.Equal(t, snapshot, unit2.String())
}

func TestConcurrentSessionsOnDisjointArenas(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p := newTestSession(exerciser)
			_, diags := p.ParseCompilationUnit()
			if len(diags) != 0 {
				t.Errorf("unexpected diagnostics: %v", diags)
			}
		}()
	}
	wg.Wait()
}

func TestErrAggregatesIntoMultiError(t *testing.T) {
	p := newTestSession("fn { }\nlet = 5;")
	p.ParseCompilationUnit()

	err := p.Err()
	require.Error(t, err)

	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	assert.Len(t, merr.Errors, len(p.Diagnostics()))
}

func TestErrNilOnCleanParse(t *testing.T) {
	p := newTestSession("fn f() {}")
	p.ParseCompilationUnit()
	assert.NoError(t, p.Err())
}

func TestParseStatementIncrementalEntryPoint(t *testing.T) {
	p := newTestSession("let x = 1;")
	n, err := p.ParseStatement()
	require.NoError(t, err)
	assert.Equal(t, ast.VarDecl, n.Kind)
	assert.Equal(t, "x", n.Lexeme())
}

func TestParseConvenienceFunction(t *testing.T) {
	unit, err := Parse("conv.fe", "fn main() { return 0; }")
	require.NoError(t, err)
	require.Len(t, unit.Children, 1)
	assert.Equal(t, ast.FuncDecl, unit.Children[0].Kind)
}

func TestVisitorTraversesInSourceOrder(t *testing.T) {
	p := newTestSession("fn f() { let a = 1; let b = 2; }")
	unit, diags := p.ParseCompilationUnit()
	require.Empty(t, diags)

	var names []string
	ast.Walk(ast.VisitorFunc{
		Pre: func(n *ast.Node) bool {
			if n.Kind == ast.VarDecl {
				names = append(names, n.Lexeme())
			}
			return true
		},
	}, unit)
	assert.Equal(t, []string{"a", "b"}, names)
}
