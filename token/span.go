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
Package token defines the lexical vocabulary shared between the lexer and
the parser: token kinds, source spans, and the token value itself.
*/
package token

import "fmt"

/*
Span is a half-open byte range [Start, End) in a named source file. Every
AST node carries a Span covering the full extent of the tokens that produced
it; a parent's Span must enclose every child Span.
*/
type Span struct {
	File  string
	Start int
	End   int
	Line  int // 1-based line of Start
	Col   int // 1-based column of Start
}

/*
Encloses reports whether s fully contains other (s.Start <= other.Start and
other.End <= s.End).
*/
func (s Span) Encloses(other Span) bool {
	return s.Start <= other.Start && other.End <= s.End
}

/*
Union returns the smallest span covering both a and b. Panics are avoided by
falling back to whichever side is non-empty; callers within the same file
are expected to pass spans from the same source.
*/
func Union(a, b Span) Span {
	u := a
	if b.Start < u.Start {
		u.Start = b.Start
		u.Line = b.Line
		u.Col = b.Col
	}
	if b.End > u.End {
		u.End = b.End
	}
	if u.File == "" {
		u.File = b.File
	}
	return u
}

func (s Span) String() string {
	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Col)
}
