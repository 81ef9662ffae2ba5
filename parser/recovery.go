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

import "github.com/ferra-lang/ferrac/token"

/*
Category-indexed synchronization sets for panic-mode recovery. Each is
consulted by syncTo after a diagnostic is recorded, to find the next token
a caller can safely resume from.
*/
var (
	statementSync = kindSet(
		token.Semicolon, token.LBrace, token.RBrace,
		token.Let, token.Var, token.Fn, token.Data, token.Extern,
		token.Return, token.Break, token.Continue,
		token.If, token.While, token.For, token.Match,
		token.Pub, token.Unsafe, token.Async, token.Macro,
	)

	expressionTerminatorSync = kindSet(
		token.RParen, token.RBrack, token.RBrace, token.Semicolon, token.Comma,
	)

	blockSync = kindSet(token.RBrace, token.Dedent)

	declarationSync = kindSet(
		token.Fn, token.Let, token.Var, token.Data, token.Extern, token.Pub,
	)
)

func kindSet(ks ...token.Kind) map[token.Kind]bool {
	m := make(map[token.Kind]bool, len(ks))
	for _, k := range ks {
		m[k] = true
	}
	return m
}

/*
syncTo advances the Cursor until the current token's Kind is in set or EOF
is reached. It never consumes the synchronization token itself, leaving
that decision to the caller (some callers want to consume it and resume
after; others want to hand control back with it still current). Recovery
never regresses the cursor - this loop only ever calls Consume, keeping
cursor position monotone non-decreasing.
*/
func (p *Parser) syncTo(set map[token.Kind]bool) token.Span {
	for !p.cur.AtEnd() && !set[p.cur.Peek().Kind] {
		p.cur.Consume()
	}
	return p.cur.Span()
}

/*
skipStatementSeparators consumes any run of Semicolon/Newline tokens
sitting between two top-level items or statements.
*/
func (p *Parser) skipStatementSeparators() {
	for {
		switch p.cur.Peek().Kind {
		case token.Semicolon, token.Newline:
			p.cur.Consume()
		default:
			return
		}
	}
}
