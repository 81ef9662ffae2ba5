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
	"fmt"

	"github.com/ferra-lang/ferrac/ast"
	"github.com/ferra-lang/ferrac/diag"
	"github.com/ferra-lang/ferrac/token"
)

/*
parseStatement parses one statement inside a block. ctx carries the
enclosing block's style so any nested control-flow body shares it. The
bool result reports whether a real terminator (';' or an explicit newline)
was already consumed, so the caller's trailing-expression detection
(block.go's parseStatementsUntil) can tell an unterminated final
expression from a genuinely-terminated one.
*/
func (p *Parser) parseStatement(ctx blockContext) (*ast.Node, bool, error) {
	p.blockCtx = ctx

	if label, ok := p.tryLabelPrefix(); ok {
		return p.parseLabeledConstruct(ctx, label)
	}

	switch p.cur.Peek().Kind {
	case token.Hash, token.Pub, token.Fn, token.Data, token.Extern, token.Macro:
		n, err := p.parseDeclOrItem()
		return n, true, err

	case token.Let, token.Var:
		n, err := p.parseVarDeclStatement(0, modifierToken{})
		return n, true, err

	case token.Unsafe, token.Async:
		if p.declAheadAfterModifiers() {
			n, err := p.parseDeclOrItem()
			return n, true, err
		}
		return p.parseExprStatement()

	case token.Return:
		n, err := p.parseReturnStmt()
		return n, true, err

	case token.Break:
		n, err := p.parseBreakStmt()
		return n, true, err

	case token.Continue:
		n, err := p.parseContinueStmt()
		return n, true, err

	case token.While:
		n, err := p.parseWhileStmt(ctx)
		return n, true, err

	case token.For:
		n, err := p.parseForInStmt(ctx)
		return n, true, err

	case token.If:
		n, err := p.parseIfExpr()
		return n, true, err

	case token.Match:
		n, err := p.parseMatchExpr()
		return n, true, err
	}

	return p.parseExprStatement()
}

/*
declAheadAfterModifiers reports whether the token following a run of
unsafe/async modifiers (at most two, since pub never appears here - it
must come first and is handled in the token.Pub branch) is 'fn'. It never
consumes anything.
*/
func (p *Parser) declAheadAfterModifiers() bool {
	idx := 0
	if p.cur.PeekAt(idx).Kind == token.Unsafe {
		idx++
	}
	if p.cur.PeekAt(idx).Kind == token.Async {
		idx++
	}
	return p.cur.PeekAt(idx).Kind == token.Fn
}

/*
expectStatementEnd consumes the terminator ending a simple statement: a
';', an explicit newline, or (implicitly) a block closer/EOF that already
ends the enclosing statement list. Anything else is UnexpectedToken,
recovered via statementSync.
*/
func (p *Parser) expectStatementEnd() (token.Span, error) {
	if t, ok := p.cur.Accept(token.Semicolon); ok {
		return t.Span, nil
	}
	if t, ok := p.cur.Accept(token.Newline); ok {
		return t.Span, nil
	}

	switch p.cur.Peek().Kind {
	case token.RBrace, token.Dedent, token.EOF:
		return p.cur.Span(), nil
	}

	t := p.cur.Peek()
	d := diag.New(diag.UnexpectedToken, t.Span,
		fmt.Sprintf("expected ';' or a new line to end this statement, found %s", t)).
		WithSuggestion("insert ';' or start a new line here")
	p.report(d)
	span := p.syncTo(statementSync)
	return span, d
}

/*
parseExprStatement parses a bare expression statement, wrapping it in an
ExprStmt and consuming an optional trailing ';'. A ';' is the only
terminator parseExprStatement itself consumes; an implicit (newline-only)
terminator is left for the caller to observe via the returned sawSep=false,
which signals a possible trailing block-as-expression.
*/
func (p *Parser) parseExprStatement() (*ast.Node, bool, error) {
	expr, err := p.ParseExpression()

	n := p.arena.NewNode(ast.ExprStmt, expr.Span)
	n.Children = []*ast.Node{expr}

	if semi, ok := p.cur.Accept(token.Semicolon); ok {
		n.Span = token.Union(n.Span, semi.Span)
		return n, true, err
	}
	if expr.Kind == ast.Block {
		// A block statement's closing brace (or dedent) is its own
		// terminator; no ';' is required after it.
		return n, true, err
	}
	return n, false, err
}

func (p *Parser) parseReturnStmt() (*ast.Node, error) {
	kw := p.cur.Consume() // 'return'
	n := p.arena.NewNode(ast.ReturnStmt, kw.Span)

	var err error
	if canStartExpr(p.cur.Peek().Kind) {
		var val *ast.Node
		val, err = p.ParseExpression()
		n.Children = []*ast.Node{val}
		n.Span = token.Union(n.Span, val.Span)
	}

	end, eerr := p.expectStatementEnd()
	if err == nil {
		err = eerr
	}
	n.Span = token.Union(n.Span, end)
	return n, err
}

func (p *Parser) parseBreakStmt() (*ast.Node, error) {
	kw := p.cur.Consume() // 'break'
	n := p.arena.NewNode(ast.BreakStmt, kw.Span)

	label, lerr := p.parseOptionalLabelRef()
	n.Label = label

	end, eerr := p.expectStatementEnd()
	err := lerr
	if err == nil {
		err = eerr
	}
	n.Span = token.Union(n.Span, end)
	return n, err
}

func (p *Parser) parseContinueStmt() (*ast.Node, error) {
	kw := p.cur.Consume() // 'continue'
	n := p.arena.NewNode(ast.ContinueStmt, kw.Span)

	label, lerr := p.parseOptionalLabelRef()
	n.Label = label

	end, eerr := p.expectStatementEnd()
	err := lerr
	if err == nil {
		err = eerr
	}
	n.Span = token.Union(n.Span, end)
	return n, err
}

/*
parseOptionalLabelRef parses an optional `'name` label reference trailing
break/continue. Returns "" with no error if no label is present.
*/
func (p *Parser) parseOptionalLabelRef() (string, error) {
	if _, ok := p.cur.Accept(token.Tick); !ok {
		return "", nil
	}
	name, ok := p.cur.Accept(token.Ident)
	if !ok {
		t := p.cur.Peek()
		d := diag.New(diag.UnexpectedToken, t.Span,
			fmt.Sprintf("expected a label name after '\\'', found %s", t))
		p.report(d)
		return "", d
	}
	return name.Lexeme, nil
}

/*
tryLabelPrefix peeks for a `'name:` label prefixing a block, while, or
for-in statement. It consumes the label and its ':' only when the full
prefix is actually present, leaving the cursor untouched otherwise.
*/
func (p *Parser) tryLabelPrefix() (string, bool) {
	if p.cur.Peek().Kind != token.Tick {
		return "", false
	}
	if p.cur.PeekAt(1).Kind != token.Ident || p.cur.PeekAt(2).Kind != token.Colon {
		return "", false
	}
	p.cur.Consume() // '\''
	name := p.cur.Consume()
	p.cur.Consume() // ':'
	return name.Lexeme, true
}

func (p *Parser) parseLabeledConstruct(ctx blockContext, label string) (*ast.Node, bool, error) {
	p.blockCtx = ctx
	switch p.cur.Peek().Kind {
	case token.While:
		n, err := p.parseWhileStmt(ctx)
		n.Label = label
		return n, true, err
	case token.For:
		n, err := p.parseForInStmt(ctx)
		n.Label = label
		return n, true, err
	}

	body, err := p.parseBlock(ctx)
	n := p.arena.NewNode(ast.LabeledBlock, body.Span)
	n.Label = label
	n.Children = []*ast.Node{body}
	return n, true, err
}

func (p *Parser) parseWhileStmt(ctx blockContext) (*ast.Node, error) {
	kw := p.cur.Consume() // 'while'
	cond, cerr := p.ParseExpression()
	body, berr := p.parseBlock(ctx)

	n := p.arena.NewNode(ast.WhileStmt, kw.Span)
	n.Children = []*ast.Node{cond, body}
	n.Span = token.Union(kw.Span, body.Span)

	err := cerr
	if err == nil {
		err = berr
	}
	return n, err
}

func (p *Parser) parseForInStmt(ctx blockContext) (*ast.Node, error) {
	kw := p.cur.Consume() // 'for'
	pat, perr := p.ParsePattern()
	p.declarePatternBindings(pat)

	if _, ok := p.cur.Accept(token.In); !ok {
		t := p.cur.Peek()
		d := diag.New(diag.UnexpectedToken, t.Span,
			fmt.Sprintf("expected 'in' after the for-loop pattern, found %s", t))
		p.report(d)
		if perr == nil {
			perr = d
		}
	}

	iter, ierr := p.ParseExpression()
	body, berr := p.parseBlock(ctx)

	n := p.arena.NewNode(ast.ForInStmt, kw.Span)
	n.Children = []*ast.Node{pat, iter, body}
	n.Span = token.Union(kw.Span, body.Span)

	err := perr
	if err == nil {
		err = ierr
	}
	if err == nil {
		err = berr
	}
	return n, err
}

/*
declarePatternBindings registers every identifier a pattern introduces
(PatIdent, and the binding name of PatBinding) in the current lexical
scope, so redefinition checking covers for-loop and match-arm bindings as
well as let/var.
*/
func (p *Parser) declarePatternBindings(pat *ast.Node) {
	ast.Walk(ast.VisitorFunc{
		Pre: func(n *ast.Node) bool {
			switch n.Kind {
			case ast.PatIdent, ast.PatBinding:
				p.declareBinding(n.Lexeme(), n.Span)
			}
			return true
		},
	}, pat)
}

// --- if / match / tagged and bare block expressions ----------------------

/*
parseIfExpr parses an if-elif-else chain as a single right-nested tree of
IfExpr nodes. The body of each branch is a Block in the nud()-caller's
enclosing required style, if any; an `if` used as a bare expression (not a
statement) has no enclosing style to inherit, so it is free to pick either.
*/
func (p *Parser) parseIfExpr() (*ast.Node, error) {
	kw := p.cur.Consume() // 'if'
	cond, cerr := p.ParseExpression()
	then, terr := p.parseBlock(p.blockCtx)

	n := p.arena.NewNode(ast.IfExpr, kw.Span)
	n.Children = []*ast.Node{cond, then}
	n.Span = token.Union(kw.Span, then.Span)

	err := cerr
	if err == nil {
		err = terr
	}

	switch p.cur.Peek().Kind {
	case token.Elif:
		elif, eerr := p.parseIfExpr()
		n.Children = append(n.Children, elif)
		n.Span = token.Union(n.Span, elif.Span)
		if err == nil {
			err = eerr
		}
	case token.Else:
		p.cur.Consume()
		els, eerr := p.parseBlock(p.blockCtx)
		n.Children = append(n.Children, els)
		n.Span = token.Union(n.Span, els.Span)
		if err == nil {
			err = eerr
		}
	}

	return n, err
}

/*
parseMatchExpr parses `match scrutinee { pattern [if guard] => arm, ... }`.
Each arm's body may be a single expression followed by ',' or a full block.
*/
func (p *Parser) parseMatchExpr() (*ast.Node, error) {
	kw := p.cur.Consume() // 'match'
	scrut, serr := p.ParseExpression()

	open, ok := p.cur.Accept(token.LBrace)
	if !ok {
		d := diag.New(diag.ExpectedBlock, p.cur.Peek().Span,
			"expected '{' to begin the match arms")
		p.report(d)
		n := p.arena.NewNode(ast.MatchExpr, kw.Span)
		n.Children = []*ast.Node{scrut}
		if serr == nil {
			serr = d
		}
		return n, serr
	}

	var arms []*ast.Node
	var err error
	for {
		p.skipBracedLayout()
		if p.cur.Peek().Kind == token.RBrace || p.cur.AtEnd() {
			break
		}
		var arm *ast.Node
		var aerr error
		arm, aerr = p.parseMatchArm()
		arms = append(arms, arm)
		if aerr != nil {
			err = aerr
			break
		}
		p.cur.Accept(token.Comma)
	}

	close, cerr := p.expectClose(token.RBrace, open)
	if err == nil {
		err = cerr
	}
	if err == nil {
		err = serr
	}

	n := p.arena.NewNode(ast.MatchExpr, token.Union(kw.Span, close))
	n.Children = append([]*ast.Node{scrut}, arms...)
	return n, err
}

func (p *Parser) parseMatchArm() (*ast.Node, error) {
	pat, perr := p.ParsePattern()
	p.declarePatternBindings(pat)

	if _, ok := p.cur.Accept(token.FatArrow); !ok {
		t := p.cur.Peek()
		d := diag.New(diag.UnexpectedToken, t.Span,
			fmt.Sprintf("expected '=>' after a match arm's pattern, found %s", t))
		p.report(d)
		return p.placeholder(ast.MatchArm, pat.Span), d
	}

	var body *ast.Node
	var err error
	if p.cur.Peek().Kind == token.LBrace {
		body, err = p.parseBlock(p.blockCtx)
	} else {
		body, err = p.ParseExpression()
	}

	n := p.arena.NewNode(ast.MatchArm, token.Union(pat.Span, body.Span))
	n.Children = []*ast.Node{pat, body}
	if perr == nil {
		perr = err
	}
	return n, perr
}

/*
parseBlockExpr parses a bare '{ ... }' used directly in expression
position: a block whose value is its trailing expression, if any. label is
stored as the block's Label; the expression parser passes "". Labeled-block
statements do not come through here - parseLabeledConstruct wraps them in a
LabeledBlock node.
*/
func (p *Parser) parseBlockExpr(label string) (*ast.Node, error) {
	n, err := p.parseBlock(p.blockCtx)
	n.Label = label
	return n, err
}

/*
parseTaggedBlockExpr parses `unsafe { ... }` or `async { ... }` in
expression position. The leading keyword is recorded as the block's Token
so printers and later passes can recover which tag produced it.
*/
func (p *Parser) parseTaggedBlockExpr() (*ast.Node, error) {
	tag := p.cur.Consume() // 'unsafe' or 'async'
	body, err := p.parseBlock(p.blockCtx)
	body.Token = &tag
	body.Span = token.Union(tag.Span, body.Span)
	return body, err
}
