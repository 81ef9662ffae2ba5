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
	"devt.de/krotik/common/errorutil"

	"github.com/ferra-lang/ferrac/token"
)

/*
slabSize is the number of Nodes batched into one backing allocation. Most
compilation units fit comfortably inside a handful of slabs.
*/
const slabSize = 256

/*
Arena owns the backing storage for every Node a parsing session allocates.
All AST references are non-owning and live no longer than the Arena: it
guarantees pointer stability for its lifetime (slabs are never relocated,
only appended to) and supports a bulk Reset that invalidates every
previously issued reference and returns storage for reuse.

Reset is a precondition of reuse, not a runtime-checked safety property -
Go's garbage collector makes true use-after-free impossible to trigger, so
the generation counter below exists purely to let tests and debug code
assert the contract is honored instead of trusting it silently.
*/
type Arena struct {
	slabs      [][]Node
	gen        uint64
	nodeCount  int
	sliceCount int
}

/*
NewArena creates an empty Arena ready to allocate nodes under generation 1.
*/
func NewArena() *Arena {
	a := &Arena{gen: 1}
	a.slabs = append(a.slabs, make([]Node, 0, slabSize))
	return a
}

/*
NewSlice allocates a contiguous slice of n Node pointers' backing slots. It
is used when a sub-parser knows its child count up front (e.g. a fixed-arity
production); most sub-parsers instead grow a regular Go slice with append
and rely on the Arena only for the individual Node allocations.
*/
func (a *Arena) NewSlice(n int) []*Node {
	a.sliceCount++
	return make([]*Node, 0, n)
}

/*
Reset invalidates every Node previously issued by this Arena and returns its
slabs for reuse. Callers must not dereference any Node obtained before
Reset was called.
*/
func (a *Arena) Reset() {
	a.gen++
	for i := range a.slabs {
		a.slabs[i] = a.slabs[i][:0]
	}
	a.nodeCount = 0
}

/*
Generation returns the arena's current generation counter, bumped on every
Reset.
*/
func (a *Arena) Generation() uint64 {
	return a.gen
}

/*
Valid reports whether n was allocated under the Arena's current generation.
Intended for tests/debug assertions, not hot-path checks.
*/
func (a *Arena) Valid(n *Node) bool {
	return n != nil && n.gen == a.gen
}

/*
AssertValid panics via errorutil.AssertTrue if n was allocated under a
generation this Arena has since discarded. Used by tests that want to
confirm the "invalid after reset" contract rather than trust it silently.
*/
func (a *Arena) AssertValid(n *Node) {
	errorutil.AssertTrue(a.Valid(n), "ast: node used after arena reset")
}

/*
alloc returns a freshly zeroed Node tagged with the arena's current
generation, taken from the current slab (growing a new one if full).
*/
func (a *Arena) alloc() *Node {
	last := len(a.slabs) - 1
	slab := a.slabs[last]

	if len(slab) == cap(slab) {
		a.slabs = append(a.slabs, make([]Node, 0, slabSize))
		last++
		slab = a.slabs[last]
	}

	slab = slab[:len(slab)+1]
	a.slabs[last] = slab
	n := &slab[len(slab)-1]
	*n = Node{}
	n.gen = a.gen
	a.nodeCount++

	return n
}

/*
NewNode allocates a Node of the given Kind with the given Span from the
arena.
*/
func (a *Arena) NewNode(kind Kind, span token.Span) *Node {
	n := a.alloc()
	n.Kind = kind
	n.Span = span
	return n
}

/*
NodeCount returns the number of nodes allocated since the last Reset.
*/
func (a *Arena) NodeCount() int {
	return a.nodeCount
}
