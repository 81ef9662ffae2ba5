/*
 * Ferra
 *
 * Copyright 2026 The Ferra Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package ast

import (
	"testing"

	"github.com/ferra-lang/ferrac/token"
)

func buildSmallTree(a *Arena) *Node {
	root := a.NewNode(BinaryExpr, token.Span{Start: 0, End: 9})
	left := a.NewNode(IntLit, token.Span{Start: 0, End: 1})
	right := a.NewNode(BinaryExpr, token.Span{Start: 4, End: 9})
	rl := a.NewNode(IntLit, token.Span{Start: 4, End: 5})
	rr := a.NewNode(IntLit, token.Span{Start: 8, End: 9})
	right.Children = []*Node{rl, rr}
	root.Children = []*Node{left, right}
	return root
}

func TestWalkVisitsPreAndPostOrder(t *testing.T) {
	a := NewArena()
	root := buildSmallTree(a)

	var pre, post []Kind
	Walk(VisitorFunc{
		Pre: func(n *Node) bool {
			pre = append(pre, n.Kind)
			return true
		},
		Post: func(n *Node) {
			post = append(post, n.Kind)
		},
	}, root)

	wantPre := []Kind{BinaryExpr, IntLit, BinaryExpr, IntLit, IntLit}
	if len(pre) != len(wantPre) {
		t.Fatalf("pre-order length = %d, want %d", len(pre), len(wantPre))
	}
	for i := range wantPre {
		if pre[i] != wantPre[i] {
			t.Fatalf("pre[%d] = %v, want %v", i, pre[i], wantPre[i])
		}
	}
	// Post-order ends at the root.
	if post[len(post)-1] != BinaryExpr {
		t.Fatalf("post-order should end at the root, got %v", post)
	}
}

func TestWalkSkipsChildrenWhenVisitReturnsFalse(t *testing.T) {
	a := NewArena()
	root := buildSmallTree(a)

	visited := 0
	leaves := 0
	Walk(VisitorFunc{
		Pre: func(n *Node) bool {
			visited++
			return n == root
		},
		Post: func(n *Node) {
			leaves++
		},
	}, root)

	// Root plus its two direct children; the right child's subtree is skipped.
	if visited != 3 {
		t.Fatalf("visited = %d, want 3", visited)
	}
	if leaves != 3 {
		t.Fatalf("Leave must still run for every visited node, got %d", leaves)
	}
}

func TestEqualsIgnoresSpansOnRequest(t *testing.T) {
	a := NewArena()
	n1 := a.NewNode(IntLit, token.Span{Start: 0, End: 1})
	n1.Token = &token.Token{Kind: token.Int, Lexeme: "1", Span: token.Span{Start: 0, End: 1}}

	n2 := a.NewNode(IntLit, token.Span{Start: 5, End: 6})
	n2.Token = &token.Token{Kind: token.Int, Lexeme: "1", Span: token.Span{Start: 5, End: 6}}

	if eq, diff := Equals(n1, n2, true); !eq {
		t.Fatalf("nodes differing only in spans should be equal modulo spans:\n%s", diff)
	}
	if eq, _ := Equals(n1, n2, false); eq {
		t.Fatalf("nodes differing in spans should not be equal when spans matter")
	}
}

func TestEqualsDetectsStructuralDifference(t *testing.T) {
	a := NewArena()
	n1 := a.NewNode(IntLit, token.Span{})
	n1.Token = &token.Token{Kind: token.Int, Lexeme: "1"}
	n2 := a.NewNode(IntLit, token.Span{})
	n2.Token = &token.Token{Kind: token.Int, Lexeme: "2"}

	if eq, _ := Equals(n1, n2, true); eq {
		t.Fatalf("different lexemes must not compare equal")
	}
}

func TestEqualsAcrossArenaGenerations(t *testing.T) {
	a := NewArena()
	n1 := a.NewNode(Ident, token.Span{})
	n1.Token = &token.Token{Kind: token.Ident, Lexeme: "x"}
	snap := *n1

	a.Reset()
	n2 := a.NewNode(Ident, token.Span{})
	n2.Token = &token.Token{Kind: token.Ident, Lexeme: "x"}

	if eq, diff := Equals(&snap, n2, false); !eq {
		t.Fatalf("generation bookkeeping must not affect equality:\n%s", diff)
	}
}
