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
ParseType parses one type expression: identifiers (possibly qualified and
generically instantiated), tuples, arrays, function and extern-function
types, pointers, and nullable suffixes. Pointers are a prefix form binding
to the type that immediately follows them; nullable `T?` binds between
pointer and generic application, a postfix suffix applied after any
trailing generic-argument list.
*/
func (p *Parser) ParseType() (*ast.Node, error) {
	if !p.enter() {
		return p.depthErrorType()
	}
	defer p.leave()

	t := p.cur.Peek()

	switch t.Kind {
	case token.Star:
		p.cur.Consume()
		pointee, err := p.ParseType()
		n := p.arena.NewNode(ast.TypePointer, token.Union(t.Span, pointee.Span))
		n.Children = []*ast.Node{pointee}
		return n, err

	case token.Fn:
		return p.parseFuncType(token.Token{})

	case token.Extern:
		p.cur.Consume()
		abi, ok := p.cur.Accept(token.String)
		if !ok {
			return p.expectedType(p.cur.Peek())
		}
		if p.cur.Peek().Kind != token.Fn {
			return p.expectedType(p.cur.Peek())
		}
		return p.parseFuncType(abi)

	case token.LParen:
		return p.parseTupleType()

	case token.LBrack:
		return p.parseArrayType()

	case token.Ident:
		return p.parseIdentType()
	}

	return p.expectedType(t)
}

func (p *Parser) depthErrorType() (*ast.Node, error) {
	span := p.cur.Span()
	d := diag.New(diag.ExpectedType, span, "type nested too deeply to parse").
		WithSuggestion("break this type into a named alias")
	p.report(d)
	return p.placeholder(ast.TypeIdent, span), d
}

func (p *Parser) expectedType(t token.Token) (*ast.Node, error) {
	d := diag.New(diag.ExpectedType, t.Span, fmt.Sprintf("expected a type, found %s", t))
	p.report(d)
	return p.placeholder(ast.TypeIdent, t.Span), d
}

func (p *Parser) parseFuncType(abi token.Token) (*ast.Node, error) {
	fn := p.cur.Consume() // 'fn'
	open, ok := p.cur.Accept(token.LParen)
	if !ok {
		return p.expectedType(p.cur.Peek())
	}

	var params []*ast.Node
	var err error
	if p.cur.Peek().Kind != token.RParen {
		params, err = p.parseTypeList(token.RParen)
	}
	close, cerr := p.expectClose(token.RParen, open)
	if err == nil {
		err = cerr
	}

	span := fn.Span
	if abi.Kind == token.String {
		span = abi.Span
	}
	span = token.Union(span, close)

	kind := ast.TypeFunc
	if abi.Kind == token.String {
		kind = ast.TypeExternFunc
	}

	var ret *ast.Node
	hasRet := false
	if _, ok := p.cur.Accept(token.Arrow); ok {
		hasRet = true
		ret, err = p.ParseType()
		span = token.Union(span, ret.Span)
	}

	n := p.arena.NewNode(kind, span)
	if abi.Kind == token.String {
		n.Token = &abi
		n.Value = abi.Lexeme
	}
	n.Children = params
	if hasRet {
		n.Children = append(n.Children, ret)
		n.Value += "|hasret"
	}
	return p.maybeNullable(n), err
}

/*
parseTypeList parses a comma-separated list of types with an optional
trailing comma, stopping before closer.
*/
func (p *Parser) parseTypeList(closer token.Kind) ([]*ast.Node, error) {
	var list []*ast.Node
	for {
		ty, err := p.ParseType()
		list = append(list, ty)
		if err != nil {
			return list, err
		}
		if _, ok := p.cur.Accept(token.Comma); !ok {
			break
		}
		if p.cur.Peek().Kind == closer {
			break
		}
	}
	return list, nil
}

func (p *Parser) parseTupleType() (*ast.Node, error) {
	open := p.cur.Consume() // '('

	if close, ok := p.cur.Accept(token.RParen); ok {
		return p.maybeNullable(p.arena.NewNode(ast.TypeTuple, token.Union(open.Span, close.Span))), nil
	}

	first, err := p.ParseType()
	if err != nil {
		close, _ := p.expectClose(token.RParen, open)
		n := p.arena.NewNode(ast.TypeTuple, token.Union(open.Span, close))
		n.Children = []*ast.Node{first}
		return p.maybeNullable(n), err
	}

	if p.cur.Peek().Kind != token.Comma {
		_, cerr := p.expectClose(token.RParen, open)
		return p.maybeNullable(first), cerr
	}

	elems := []*ast.Node{first}
	for {
		if _, ok := p.cur.Accept(token.Comma); !ok {
			break
		}
		if p.cur.Peek().Kind == token.RParen {
			break
		}
		ty, terr := p.ParseType()
		elems = append(elems, ty)
		if terr != nil {
			err = terr
			break
		}
	}
	close, cerr := p.expectClose(token.RParen, open)
	if err == nil {
		err = cerr
	}
	n := p.arena.NewNode(ast.TypeTuple, token.Union(open.Span, close))
	n.Children = elems
	return p.maybeNullable(n), err
}

func (p *Parser) parseArrayType() (*ast.Node, error) {
	open := p.cur.Consume() // '['
	elem, err := p.ParseType()
	close, cerr := p.expectClose(token.RBrack, open)
	if err == nil {
		err = cerr
	}
	n := p.arena.NewNode(ast.TypeArray, token.Union(open.Span, close))
	n.Children = []*ast.Node{elem}
	return p.maybeNullable(n), err
}

func (p *Parser) parseIdentType() (*ast.Node, error) {
	first := p.cur.Consume()
	name := first.Lexeme
	span := first.Span

	for {
		if _, ok := p.cur.Accept(token.ColonColon); !ok {
			break
		}
		seg, ok := p.cur.Accept(token.Ident)
		if !ok {
			return p.expectedType(p.cur.Peek())
		}
		name += "::" + seg.Lexeme
		span = token.Union(span, seg.Span)
	}

	n := p.arena.NewNode(ast.TypeIdent, span)
	tok := first
	tok.Lexeme = name
	n.Token = &tok

	var err error
	if p.cur.Peek().Kind == token.Lt {
		p.cur.Consume()
		var args []*ast.Node
		args, err = p.parseTypeList(token.Gt)
		closeSpan, cerr := p.expectCloseAngle()
		if err == nil {
			err = cerr
		}
		n.Children = args
		n.Span = token.Union(n.Span, closeSpan)
	}

	return p.maybeNullable(n), err
}

/*
expectCloseAngle consumes a '>' closing a generic-argument list. A '>>'
run is lexed as a single Shr token and is not re-split here, so nested
generic arguments need a space between their closers.
*/
func (p *Parser) expectCloseAngle() (token.Span, error) {
	if t, ok := p.cur.Accept(token.Gt); ok {
		return t.Span, nil
	}
	t := p.cur.Peek()
	d := diag.New(diag.UnexpectedToken, t.Span,
		fmt.Sprintf("expected closing '>' for generic argument list, found %s", t)).
		WithSuggestion("insert '>' before this token")
	p.report(d)
	span := p.syncTo(expressionTerminatorSync)
	return span, d
}

/*
maybeNullable wraps n in a TypeNullable if a trailing '?' follows.
*/
func (p *Parser) maybeNullable(n *ast.Node) *ast.Node {
	if q, ok := p.cur.Accept(token.Question); ok {
		w := p.arena.NewNode(ast.TypeNullable, token.Union(n.Span, q.Span))
		w.Children = []*ast.Node{n}
		return w
	}
	return n
}
