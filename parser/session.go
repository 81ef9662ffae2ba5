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
Package parser implements the Ferra language's hybrid recursive-descent /
Pratt parsing core: token cursor, arena-backed AST construction, the
expression, statement, block, type, pattern, generic/attribute/macro
sub-parsers, and structured-diagnostic error recovery.

Each parsing session owns its own Cursor, ast.Arena and diag.Collector and
shares none of them with any other session, so multiple independent
sessions may run concurrently on disjoint arenas and token streams without
coordination.
*/
package parser

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ferra-lang/ferrac/ast"
	"github.com/ferra-lang/ferrac/diag"
	"github.com/ferra-lang/ferrac/lexer"
	"github.com/ferra-lang/ferrac/scope"
	"github.com/ferra-lang/ferrac/token"
)

/*
Parser is a single parsing session, bundling the cursor, arena, diagnostic
collector and current lexical scope a sub-parser needs. Every session
carries a uuid.UUID so concurrent, disjoint sessions are distinguishable in
diagnostics and traces without a caller-supplied name.
*/
type Parser struct {
	ID uuid.UUID

	arena *ast.Arena
	cur   *Cursor
	diags *diag.Collector
	cfg   *Config

	sc    *scope.Scope
	depth int

	// blockCtx is the style the nearest enclosing block committed to, so
	// an if/match/bare-block reached via expression position (where no ctx
	// parameter is threaded through the Pratt loop) still honors the
	// no-mixing-within-one-block invariant. parseStatement sets it on
	// every entry, so it always reflects the statement currently being
	// parsed by the time expression-position parsing reads it.
	blockCtx blockContext
}

/*
NewSession creates a Parser over an already-tokenizing Cursor, using arena
for node allocation and cfg (or defaults, if nil) for limits.
*/
func NewSession(arena *ast.Arena, cur *Cursor, cfg *Config) *Parser {
	if cfg == nil {
		cfg = NewConfig()
	}
	return &Parser{
		ID:    uuid.New(),
		arena: arena,
		cur:   cur,
		diags: diag.NewCollector(cfg.MaxErrors),
		cfg:   cfg,
		sc:    scope.New("<top-level>"),
	}
}

/*
NewSessionFromSource is a convenience constructor that lexes src with
lexer.Lex and wraps the resulting token stream in a Cursor.
*/
func NewSessionFromSource(file, src string, arena *ast.Arena, cfg *Config) *Parser {
	return NewSession(arena, NewCursor(lexer.Lex(file, src)), cfg)
}

/*
ParseCompilationUnit parses a full compilation unit, returning the (possibly
partial) AST together with every diagnostic collected. Empty input (EOF
only) parses to an empty compilation unit without errors.
*/
func (p *Parser) ParseCompilationUnit() (*ast.Node, []*diag.Diagnostic) {
	start := p.cur.Span()
	var items []*ast.Node

	for !p.cur.AtEnd() {
		if p.diags.HasFatal() {
			break
		}
		before := p.cur.Pos()
		item, err := p.parseTopLevelItem()
		if item != nil {
			items = append(items, item)
		}
		if err != nil && p.diags.HasFatal() {
			break
		}
		if p.cur.Pos() == before && !p.cur.AtEnd() {
			// Whatever sits here defeated every sub-parser without being
			// consumed; drop it so the session always reaches EOF.
			p.cur.Consume()
		}
		p.skipStatementSeparators()
	}

	span := start
	if len(items) > 0 {
		span = token.Union(start, items[len(items)-1].Span)
	}
	unit := p.arena.NewNode(ast.CompilationUnit, span)
	unit.Children = items
	return unit, p.diags.Diagnostics()
}

/*
ParseStatement parses a single statement - the incremental entry point for
uses like a REPL line. The statement has no enclosing block, so it is free
to open either block style.
*/
func (p *Parser) ParseStatement() (*ast.Node, error) {
	n, _, err := p.parseStatement(freeBlockContext)
	return n, err
}

/*
Parse is a convenience entry point: it lexes src, parses a full compilation
unit into a fresh arena with default configuration, and returns the unit
together with the session's aggregated error (nil when the parse was clean).
Callers that need the arena, the structured diagnostics, or non-default
limits should build a session themselves.
*/
func Parse(file, src string) (*ast.Node, error) {
	p := NewSessionFromSource(file, src, ast.NewArena(), nil)
	unit, _ := p.ParseCompilationUnit()
	return unit, p.Err()
}

/*
Diagnostics returns every diagnostic recorded so far, in source order.
*/
func (p *Parser) Diagnostics() []*diag.Diagnostic { return p.diags.Diagnostics() }

/*
Err returns a single aggregated error (see diag.Collector.Err), or nil.
*/
func (p *Parser) Err() error { return p.diags.Err() }

// --- shared low-level helpers -------------------------------------------------

/*
report records a diagnostic, escalating severity per RecoveryConservative
policy is left to callers; report itself only forwards to the collector.
*/
func (p *Parser) report(d *diag.Diagnostic) {
	p.diags.Report(d)
}

/*
leaf builds a Node of kind wrapping a single consumed token.
*/
func (p *Parser) leaf(kind ast.Kind, t token.Token) *ast.Node {
	n := p.arena.NewNode(kind, t.Span)
	n.Token = &t
	return n
}

/*
placeholder builds an empty Node of kind at span, the partial result a
failing sub-parser returns alongside its error while yielding control to
its caller.
*/
func (p *Parser) placeholder(kind ast.Kind, span token.Span) *ast.Node {
	return p.arena.NewNode(kind, span)
}

/*
enter increments the recursion-depth counter, returning false (without
incrementing) if the configured ceiling has been reached - adversarially
deep nesting becomes a diagnostic instead of stack exhaustion. Every
recursive sub-parser entry point must pair this with a deferred leave().
*/
func (p *Parser) enter() bool {
	if p.depth >= p.cfg.MaxDepth {
		return false
	}
	p.depth++
	return true
}

func (p *Parser) leave() {
	p.depth--
}

/*
expectClose consumes a closing delimiter of kind want, reporting
UnexpectedToken naming the expected closer and synchronizing to it if it is
missing. open is the matching opener, used to anchor the message and the
synchronized-to span.
*/
func (p *Parser) expectClose(want token.Kind, open token.Token) (token.Span, error) {
	if t, ok := p.cur.Accept(want); ok {
		return t.Span, nil
	}

	t := p.cur.Peek()
	d := diag.New(diag.UnexpectedToken, t.Span,
		fmt.Sprintf("expected closing %s to match %s opened here, found %s", want, open.Kind, t)).
		WithSuggestion(fmt.Sprintf("insert %s before this token", want))
	p.report(d)

	span := p.syncTo(expressionTerminatorSync)
	if t2, ok := p.cur.Accept(want); ok {
		return t2.Span, d
	}
	return span, d
}
