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

	"github.com/ferra-lang/ferrac/diag"
)

func TestPrimaryPatterns(t *testing.T) {
	assertPattern(t, "_", "pat-wildcard\n")

	assertPattern(t, "x", "pat-ident: x\n")

	assertPattern(t, "42", `
pat-literal
  int: 42
`[1:])

	assertPattern(t, `"s"`, `
pat-literal
  string: s
`[1:])
}

func TestTupleAndArrayPatterns(t *testing.T) {
	assertPattern(t, "(a, _, 3)", `
pat-tuple
  pat-ident: a
  pat-wildcard
  pat-literal
    int: 3
`[1:])

	assertPattern(t, "[first, ..rest]", `
pat-array
  pat-ident: first
  pat-rest: rest
`[1:])

	assertPattern(t, "[.., last]", `
pat-array
  pat-rest
  pat-ident: last
`[1:])
}

func TestDataClassPattern(t *testing.T) {
	assertPattern(t, "Point { x, y: 2 }", `
pat-data: Point
  pat-field: x
  pat-field: y
    pat-literal
      int: 2
`[1:])
}

func TestRangePatterns(t *testing.T) {
	incl := assertPattern(t, "1..=5", `
pat-range
  pat-literal
    int: 1
  pat-literal
    int: 5
`[1:])
	if incl.Value != "inclusive" {
		t.Errorf("range variant = %q, want inclusive", incl.Value)
	}

	excl := assertPattern(t, "1..5", `
pat-range
  pat-literal
    int: 1
  pat-literal
    int: 5
`[1:])
	if excl.Value != "exclusive" {
		t.Errorf("range variant = %q, want exclusive", excl.Value)
	}

	// Open-ended on either side.
	assertPattern(t, "1..", `
pat-range
  pat-literal
    int: 1
`[1:])

	assertPattern(t, "..=9", `
pat-range
  pat-literal
    int: 9
`[1:])
}

func TestOrPattern(t *testing.T) {
	assertPattern(t, "1 | 2 | 3", `
pat-or
  pat-literal
    int: 1
  pat-literal
    int: 2
  pat-literal
    int: 3
`[1:])
}

func TestBindingPattern(t *testing.T) {
	assertPattern(t, "n @ 1..=5", `
pat-binding: n
  pat-range
    pat-literal
      int: 1
    pat-literal
      int: 5
`[1:])
}

func TestGuardBindsWholeOrPattern(t *testing.T) {
	// `1..=5 | 7 if x > 0` groups as (1..=5 | 7) if x > 0: the guard wraps
	// the complete or-pattern, not just its last alternative.
	assertPattern(t, "1..=5 | 7 if x > 0", `
pat-guard
  pat-or
    pat-range
      pat-literal
        int: 1
      pat-literal
        int: 5
    pat-literal
      int: 7
  binary: >
    identifier: x
    int: 0
`[1:])
}

func TestPatternErrorOnUnexpectedToken(t *testing.T) {
	p := newTestSession("=>")
	_, err := p.ParsePattern()
	if err == nil {
		t.Fatal("expected an error")
	}
	ds := p.Diagnostics()
	if len(ds) != 1 || ds[0].Kind != diag.SyntaxError {
		t.Fatalf("expected one SyntaxError diagnostic, got %v", ds)
	}
}

func TestMatchArmsWithRangeOrGuard(t *testing.T) {
	src := `fn f() {
    match n {
        1..=5 | 7 if ok => small(),
        _ => other(),
    }
}`
	assertParse(t, src, `
compilation-unit
  func: f
    params
    block (braced)
      match
        identifier: n
        match-arm
          pat-guard
            pat-or
              pat-range
                pat-literal
                  int: 1
                pat-literal
                  int: 5
              pat-literal
                int: 7
            identifier: ok
          call
            identifier: small
            args
        match-arm
          pat-wildcard
          call
            identifier: other
            args
`[1:])
}
