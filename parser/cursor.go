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
	"devt.de/krotik/common/datautil"

	"github.com/ferra-lang/ferrac/token"
)

/*
lookahead is the number of tokens the Cursor buffers ahead of the current
one. PeekAt is only ever needed for bounded small k, so a 3-token window
(current + 2 lookahead) covers every call site in this package.
*/
const lookahead = 3

/*
Cursor is the sole source of truth for position over a token stream; no
sub-parser maintains an independent index. It pulls from a token channel
(as produced by lexer.Lex) into a ring-buffered look-ahead window so
Peek/PeekAt/Consume never block on more than the configured lookahead.
*/
type Cursor struct {
	src chan token.Token
	buf *datautil.RingBuffer

	pos      int // count of tokens consumed so far; monotone non-decreasing
	lastSpan token.Span
}

/*
NewCursor creates a Cursor pulling tokens from src, priming the look-ahead
window up to its size or the stream's EOF sentinel, whichever comes first.
*/
func NewCursor(src chan token.Token) *Cursor {
	c := &Cursor{src: src, buf: datautil.NewRingBuffer(lookahead)}

	v, more := <-c.src
	c.buf.Add(v)

	for c.buf.Size() < lookahead && more && v.Kind != token.EOF {
		v, more = <-c.src
		c.buf.Add(v)
	}

	return c
}

/*
Peek returns the current token without advancing.
*/
func (c *Cursor) Peek() token.Token {
	return c.PeekAt(0)
}

/*
PeekAt returns the k-th lookahead token (PeekAt(0) == Peek()). k must be
less than the configured lookahead window; a position beyond the buffered
window yields the EOF sentinel rather than panicking, since EOF never
matches any sub-parser's expected set and so a parser mistake here degrades
to a wrong-but-recoverable parse rather than crashing a whole session.
*/
func (c *Cursor) PeekAt(k int) token.Token {
	if k < 0 {
		k = 0
	}
	if k >= c.buf.Size() {
		return token.Token{Kind: token.EOF, Span: c.lastSpan}
	}
	return c.buf.Get(k).(token.Token)
}

/*
Consume returns the current token and advances the Cursor by one, topping
the look-ahead window back up from the stream. Consuming past EOF is a
programming error; callers must check AtEnd first. Calling it anyway keeps
returning EOF rather than panicking, since EOF never matches any
sub-parser's expected set and so cannot silently desynchronize parsing.
*/
func (c *Cursor) Consume() token.Token {
	head := c.buf.Poll()

	if v, more := <-c.src; more {
		c.buf.Add(v)
	}

	if head == nil {
		return token.Token{Kind: token.EOF, Span: c.lastSpan}
	}

	t := head.(token.Token)
	c.lastSpan = t.Span
	c.pos++
	return t
}

/*
Pos returns the number of tokens consumed so far. It only ever grows -
cursor position is monotone non-decreasing - which lets callers detect a
sub-parser that failed without making progress.
*/
func (c *Cursor) Pos() int {
	return c.pos
}

/*
AtEnd reports whether the current token is the EOF sentinel.
*/
func (c *Cursor) AtEnd() bool {
	return c.Peek().Kind == token.EOF
}

/*
Span returns the current token's span - used to anchor diagnostics,
including error locations at end-of-input.
*/
func (c *Cursor) Span() token.Span {
	return c.Peek().Span
}

/*
Is reports whether the current token has the given Kind.
*/
func (c *Cursor) Is(k token.Kind) bool {
	return c.Peek().Kind == k
}

/*
Accept consumes and returns the current token if it has Kind k, reporting
true; otherwise it leaves the Cursor untouched and returns false.
*/
func (c *Cursor) Accept(k token.Kind) (token.Token, bool) {
	if c.Is(k) {
		return c.Consume(), true
	}
	return token.Token{}, false
}
