/*
 * Ferra
 *
 * Copyright 2026 The Ferra Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferra-lang/ferrac/token"
)

func TestDefaultSeveritiesAndCodes(t *testing.T) {
	span := token.Span{File: "d.fe", Start: 1, End: 2}

	d := New(UnexpectedToken, span, "m")
	assert.Equal(t, SevError, d.Severity)
	assert.Equal(t, CodeSyntax, d.Code)

	d = New(Internal, span, "m")
	assert.Equal(t, Fatal, d.Severity)
	assert.Equal(t, CodeInternal, d.Code)

	d = New(RecoveryError, span, "m")
	assert.Equal(t, Warning, d.Severity)
	assert.Equal(t, CodeRecovery, d.Code)
}

func TestDefaultSuggestionsArePositiveFirst(t *testing.T) {
	span := token.Span{}
	for _, k := range []Kind{
		UnexpectedToken, ExpectedExpression, ExpectedStatement, ExpectedType,
		ExpectedBlock, MixedBlockStyles, InconsistentIndentation,
		InvalidIndentation, VariableRedefinition, UnexpectedEOF,
	} {
		d := New(k, span, "m")
		assert.NotEmpty(t, d.Suggestion, "kind %v should carry a default suggestion", k)
	}
}

func TestWithSuggestionOverridesDefault(t *testing.T) {
	d := New(UnexpectedToken, token.Span{}, "m").WithSuggestion("do this instead")
	assert.Equal(t, "do this instead", d.Suggestion)
}

func TestErrorStringIncludesParts(t *testing.T) {
	span := token.Span{File: "x.fe", Line: 3, Col: 7}
	d := New(SyntaxError, span, "something specific")
	s := d.Error()
	assert.Contains(t, s, "x.fe:3:7")
	assert.Contains(t, s, "something specific")
	assert.Contains(t, s, "E001")
}

func TestCollectorKeepsSourceOrder(t *testing.T) {
	c := NewCollector(0)
	for i := 0; i < 5; i++ {
		c.Report(New(SyntaxError, token.Span{Start: i}, "m"))
	}
	ds := c.Diagnostics()
	require.Len(t, ds, 5)
	for i := 1; i < len(ds); i++ {
		assert.GreaterOrEqual(t, ds[i].Span.Start, ds[i-1].Span.Start)
	}
}

func TestCollectorSuppressesBeyondMax(t *testing.T) {
	c := NewCollector(2)
	for i := 0; i < 5; i++ {
		stop := c.Report(New(SyntaxError, token.Span{Start: i}, "m"))
		assert.False(t, stop)
	}
	assert.Len(t, c.Diagnostics(), 2)
	assert.Equal(t, 3, c.Suppressed())
}

func TestCollectorWarningsDoNotCountTowardMax(t *testing.T) {
	c := NewCollector(1)
	c.Report(New(RecoveryError, token.Span{}, "w"))
	c.Report(New(SyntaxError, token.Span{}, "e"))
	assert.Len(t, c.Diagnostics(), 2)
}

func TestFatalStopsCollection(t *testing.T) {
	c := NewCollector(0)
	stop := c.Report(New(Internal, token.Span{}, "boom"))
	assert.True(t, stop)
	assert.True(t, c.HasFatal())

	// Anything after a fatal is rejected outright.
	stop = c.Report(New(SyntaxError, token.Span{}, "late"))
	assert.True(t, stop)
	assert.Len(t, c.Diagnostics(), 1)
}

func TestErrNilWithoutErrors(t *testing.T) {
	c := NewCollector(0)
	assert.NoError(t, c.Err())

	c.Report(New(RecoveryError, token.Span{}, "warning only"))
	assert.NoError(t, c.Err())

	c.Report(New(SyntaxError, token.Span{}, "real"))
	require.Error(t, c.Err())
}
