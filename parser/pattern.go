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
ParsePattern parses one match/destructuring pattern, with precedence (low
to high): or `|`, binding `@`, guard `if`, primary. The guard binds to the
whole or-pattern - it is parsed last, wrapping whatever or-pattern
precedes `if`, so `1..=5 | 7 if c` groups as `(1..=5 | 7) if c`.
*/
func (p *Parser) ParsePattern() (*ast.Node, error) {
	if !p.enter() {
		span := p.cur.Span()
		d := diag.New(diag.SyntaxError, span, "pattern nested too deeply to parse")
		p.report(d)
		return p.placeholder(ast.PatWildcard, span), d
	}
	defer p.leave()

	base, err := p.parseOrPattern()
	if err != nil {
		return base, err
	}

	if _, ok := p.cur.Accept(token.If); ok {
		cond, cerr := p.ParseExpression()
		n := p.arena.NewNode(ast.PatGuard, token.Union(base.Span, cond.Span))
		n.Children = []*ast.Node{base, cond}
		return n, cerr
	}

	return base, nil
}

func (p *Parser) parseOrPattern() (*ast.Node, error) {
	first, err := p.parseBindingPattern()
	if err != nil {
		return first, err
	}
	if p.cur.Peek().Kind != token.Pipe {
		return first, nil
	}

	alts := []*ast.Node{first}
	for {
		if _, ok := p.cur.Accept(token.Pipe); !ok {
			break
		}
		alt, aerr := p.parseBindingPattern()
		alts = append(alts, alt)
		if aerr != nil {
			err = aerr
			break
		}
	}
	n := p.arena.NewNode(ast.PatOr, token.Union(first.Span, alts[len(alts)-1].Span))
	n.Children = alts
	return n, err
}

func (p *Parser) parseBindingPattern() (*ast.Node, error) {
	if p.cur.Peek().Kind == token.Ident && p.cur.PeekAt(1).Kind == token.At {
		name := p.cur.Consume()
		p.cur.Consume() // '@'
		sub, err := p.parsePrimaryPattern()
		n := p.arena.NewNode(ast.PatBinding, token.Union(name.Span, sub.Span))
		n.Token = &name
		n.Children = []*ast.Node{sub}
		return n, err
	}
	return p.parsePrimaryPattern()
}

func (p *Parser) parsePrimaryPattern() (*ast.Node, error) {
	t := p.cur.Peek()

	switch t.Kind {
	case token.Underscore:
		p.cur.Consume()
		return p.arena.NewNode(ast.PatWildcard, t.Span), nil

	case token.DotDot, token.DotDotEq:
		return p.parseRangePattern(nil)

	case token.Int, token.Float, token.String, token.Char, token.True, token.False, token.Null:
		return p.parseLiteralOrRangePattern()

	case token.Ident:
		return p.parseIdentPattern()

	case token.LParen:
		return p.parseTuplePattern()

	case token.LBrack:
		return p.parseArrayPattern()
	}

	d := diag.New(diag.SyntaxError, t.Span,
		fmt.Sprintf("expected a pattern, found %s", t)).
		WithSuggestion("provide a literal, identifier, wildcard '_', or destructuring pattern")
	p.report(d)
	return p.placeholder(ast.PatWildcard, t.Span), d
}

func (p *Parser) parseLiteralOrRangePattern() (*ast.Node, error) {
	t := p.cur.Consume()
	kind := literalKindFor(t.Kind)
	lit := p.leaf(kind, t)
	patLit := p.arena.NewNode(ast.PatLiteral, t.Span)
	patLit.Children = []*ast.Node{lit}

	if p.cur.Peek().Kind == token.DotDot || p.cur.Peek().Kind == token.DotDotEq {
		return p.parseRangePattern(patLit)
	}
	return patLit, nil
}

func literalKindFor(k token.Kind) ast.Kind {
	switch k {
	case token.Int:
		return ast.IntLit
	case token.Float:
		return ast.FloatLit
	case token.String:
		return ast.StringLit
	case token.Char:
		return ast.CharLit
	case token.True, token.False:
		return ast.BoolLit
	default:
		return ast.NullLit
	}
}

/*
parseRangePattern parses a (possibly open-ended) `..`/`..=` range pattern.
low is the already-parsed low bound, or nil if the range opens with `..`.
*/
func (p *Parser) parseRangePattern(low *ast.Node) (*ast.Node, error) {
	op := p.cur.Consume() // '..' or '..='
	variant := "exclusive"
	if op.Kind == token.DotDotEq {
		variant = "inclusive"
	}

	start := op.Span
	if low != nil {
		start = low.Span
	}

	var high *ast.Node
	var err error
	if canStartPattern(p.cur.Peek().Kind) {
		high, err = p.parsePrimaryPattern()
	}

	var children []*ast.Node
	if low != nil {
		children = append(children, low)
	}
	if high != nil {
		children = append(children, high)
	}

	span := start
	if high != nil {
		span = token.Union(start, high.Span)
	}

	n := p.arena.NewNode(ast.PatRange, span)
	n.Value = variant
	n.Children = children
	return n, err
}

func canStartPattern(k token.Kind) bool {
	switch k {
	case token.Underscore, token.Int, token.Float, token.String, token.Char,
		token.True, token.False, token.Null, token.Ident, token.LParen, token.LBrack:
		return true
	}
	return false
}

func (p *Parser) parseIdentPattern() (*ast.Node, error) {
	name := p.cur.Consume()

	if p.cur.Peek().Kind == token.LBrace {
		return p.parseDataClassPattern(name)
	}

	n := p.arena.NewNode(ast.PatIdent, name.Span)
	n.Token = &name

	if p.cur.Peek().Kind == token.DotDot || p.cur.Peek().Kind == token.DotDotEq {
		return p.parseRangePattern(n)
	}

	return n, nil
}

func (p *Parser) parseDataClassPattern(name token.Token) (*ast.Node, error) {
	open := p.cur.Consume() // '{'
	var fields []*ast.Node
	var err error

	for {
		p.skipBracedLayout()
		if p.cur.Peek().Kind == token.RBrace || p.cur.AtEnd() {
			break
		}
		var f *ast.Node
		f, err = p.parseFieldPattern()
		fields = append(fields, f)
		if err != nil {
			break
		}
		if _, ok := p.cur.Accept(token.Comma); !ok {
			break
		}
	}

	close, cerr := p.expectClose(token.RBrace, open)
	if err == nil {
		err = cerr
	}

	n := p.arena.NewNode(ast.PatDataClass, token.Union(name.Span, close))
	n.Token = &name
	n.Children = fields
	return n, err
}

func (p *Parser) parseFieldPattern() (*ast.Node, error) {
	name, ok := p.cur.Accept(token.Ident)
	if !ok {
		t := p.cur.Peek()
		d := diag.New(diag.SyntaxError, t.Span, fmt.Sprintf("expected a field name, found %s", t))
		p.report(d)
		return p.placeholder(ast.PatField, t.Span), d
	}

	n := p.arena.NewNode(ast.PatField, name.Span)
	n.Token = &name

	if _, ok := p.cur.Accept(token.Colon); ok {
		sub, err := p.ParsePattern()
		n.Children = []*ast.Node{sub}
		n.Span = token.Union(n.Span, sub.Span)
		return n, err
	}

	return n, nil
}

func (p *Parser) parseTuplePattern() (*ast.Node, error) {
	open := p.cur.Consume() // '('
	if close, ok := p.cur.Accept(token.RParen); ok {
		return p.arena.NewNode(ast.PatTuple, token.Union(open.Span, close.Span)), nil
	}

	var elems []*ast.Node
	var err error
	for {
		var e *ast.Node
		e, err = p.ParsePattern()
		elems = append(elems, e)
		if err != nil {
			break
		}
		if _, ok := p.cur.Accept(token.Comma); !ok {
			break
		}
		if p.cur.Peek().Kind == token.RParen {
			break
		}
	}
	close, cerr := p.expectClose(token.RParen, open)
	if err == nil {
		err = cerr
	}
	n := p.arena.NewNode(ast.PatTuple, token.Union(open.Span, close))
	n.Children = elems
	return n, err
}

func (p *Parser) parseArrayPattern() (*ast.Node, error) {
	open := p.cur.Consume() // '['
	if close, ok := p.cur.Accept(token.RBrack); ok {
		return p.arena.NewNode(ast.PatArray, token.Union(open.Span, close.Span)), nil
	}

	var elems []*ast.Node
	var err error
	for {
		if dd, ok := p.cur.Accept(token.DotDot); ok {
			rest := p.arena.NewNode(ast.PatRest, dd.Span)
			if name, ok := p.cur.Accept(token.Ident); ok {
				rest.Token = &name
				rest.Span = token.Union(dd.Span, name.Span)
			}
			elems = append(elems, rest)
		} else {
			var e *ast.Node
			e, err = p.ParsePattern()
			elems = append(elems, e)
			if err != nil {
				break
			}
		}
		if _, ok := p.cur.Accept(token.Comma); !ok {
			break
		}
		if p.cur.Peek().Kind == token.RBrack {
			break
		}
	}
	close, cerr := p.expectClose(token.RBrack, open)
	if err == nil {
		err = cerr
	}
	n := p.arena.NewNode(ast.PatArray, token.Union(open.Span, close))
	n.Children = elems
	return n, err
}
