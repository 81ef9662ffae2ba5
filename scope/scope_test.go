/*
 * Ferra
 *
 * Copyright 2026 The Ferra Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferra-lang/ferrac/token"
)

func TestDeclareDetectsRedefinitionInSameScope(t *testing.T) {
	s := New("top")
	first := token.Span{Start: 1, End: 2}

	_, dup := s.Declare("x", first)
	require.False(t, dup)

	prior, dup := s.Declare("x", token.Span{Start: 10, End: 11})
	assert.True(t, dup)
	assert.Equal(t, first, prior)
}

func TestShadowingInChildScopeIsNotRedefinition(t *testing.T) {
	top := New("top")
	top.Declare("x", token.Span{Start: 1})

	child := top.NewChild("block")
	_, dup := child.Declare("x", token.Span{Start: 5})
	assert.False(t, dup)
}

func TestDepthAndParentChain(t *testing.T) {
	top := New("top")
	assert.Equal(t, 0, top.Depth())
	assert.Nil(t, top.Parent())

	inner := top.NewChild("a").NewChild("b")
	assert.Equal(t, 2, inner.Depth())
	assert.Equal(t, "a", inner.Parent().name)
	assert.Same(t, top, inner.Parent().Parent())
}
