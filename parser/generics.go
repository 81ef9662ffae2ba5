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
parseGenericParams parses an optional `<...>` generic-parameter list.
Returns nil if the current token is not '<'.
*/
func (p *Parser) parseGenericParams() (*ast.Node, error) {
	open, ok := p.cur.Accept(token.Lt)
	if !ok {
		return nil, nil
	}

	var params []*ast.Node
	var err error
	for {
		var gp *ast.Node
		gp, err = p.parseGenericParam()
		params = append(params, gp)
		if err != nil {
			break
		}
		if _, ok := p.cur.Accept(token.Comma); !ok {
			break
		}
		if p.cur.Peek().Kind == token.Gt {
			break
		}
	}

	close, cerr := p.expectCloseAngle()
	if err == nil {
		err = cerr
	}

	n := p.arena.NewNode(ast.GenericParams, token.Union(open.Span, close))
	n.Children = params
	return n, err
}

func (p *Parser) parseGenericParam() (*ast.Node, error) {
	start := p.cur.Peek().Span
	isLifetime := false
	if _, ok := p.cur.Accept(token.Tick); ok {
		isLifetime = true
	}

	name, ok := p.cur.Accept(token.Ident)
	if !ok {
		d := diag.New(diag.UnexpectedToken, p.cur.Peek().Span,
			fmt.Sprintf("expected a generic parameter name, found %s", p.cur.Peek())).
			WithSuggestion("write a type or lifetime parameter name")
		p.report(d)
		return p.placeholder(ast.GenericParam, start), d
	}

	n := p.arena.NewNode(ast.GenericParam, token.Union(start, name.Span))
	n.Token = &name
	if isLifetime {
		n.Value = "lifetime"
	}

	var err error
	if _, ok := p.cur.Accept(token.Colon); ok {
		var bounds []*ast.Node
		bounds, err = p.parseBoundList()
		n.Children = bounds
		if len(bounds) > 0 {
			n.Span = token.Union(n.Span, bounds[len(bounds)-1].Span)
		}
	}

	return n, err
}

/*
parseBoundList parses a `+`-joined list of bound type expressions.
*/
func (p *Parser) parseBoundList() ([]*ast.Node, error) {
	var bounds []*ast.Node
	for {
		b, err := p.ParseType()
		bounds = append(bounds, b)
		if err != nil {
			return bounds, err
		}
		if _, ok := p.cur.Accept(token.Plus); !ok {
			break
		}
	}
	return bounds, nil
}

/*
parseWhereClause parses an optional trailing `where` clause: comma-separated
`Type : BoundList` constraints accepted before the function/data body.
*/
func (p *Parser) parseWhereClause() (*ast.Node, error) {
	kw, ok := p.cur.Accept(token.Where)
	if !ok {
		return nil, nil
	}

	var constraints []*ast.Node
	var err error
	for {
		var c *ast.Node
		c, err = p.parseWhereConstraint()
		constraints = append(constraints, c)
		if err != nil {
			break
		}
		if _, ok := p.cur.Accept(token.Comma); !ok {
			break
		}
		if p.cur.Peek().Kind == token.LBrace || p.cur.Peek().Kind == token.Colon {
			break
		}
	}

	span := kw.Span
	if len(constraints) > 0 {
		span = token.Union(span, constraints[len(constraints)-1].Span)
	}
	n := p.arena.NewNode(ast.WhereClause, span)
	n.Children = constraints
	return n, err
}

func (p *Parser) parseWhereConstraint() (*ast.Node, error) {
	ty, err := p.ParseType()
	if err != nil {
		return p.placeholder(ast.WhereConstraint, ty.Span), err
	}
	if _, ok := p.cur.Accept(token.Colon); !ok {
		d := diag.New(diag.UnexpectedToken, p.cur.Peek().Span,
			fmt.Sprintf("expected ':' after type in where-clause, found %s", p.cur.Peek())).
			WithSuggestion("write ':' followed by the bound list")
		p.report(d)
		return p.placeholder(ast.WhereConstraint, ty.Span), d
	}
	bounds, berr := p.parseBoundList()
	n := p.arena.NewNode(ast.WhereConstraint, ty.Span)
	n.Children = append([]*ast.Node{ty}, bounds...)
	if len(bounds) > 0 {
		n.Span = token.Union(n.Span, bounds[len(bounds)-1].Span)
	}
	return n, berr
}

// --- Attributes ---------------------------------------------------------

/*
parseAttributes collects every `#[Name(args?)]` attribute immediately
preceding a declaration, field, or parameter, returning nil if none are
present. Attributes are collected verbatim, never interpreted.
*/
func (p *Parser) parseAttributes() ([]*ast.Node, error) {
	var attrs []*ast.Node
	var firstErr error
	for p.cur.Peek().Kind == token.Hash {
		a, err := p.parseAttribute()
		attrs = append(attrs, a)
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return attrs, firstErr
}

func (p *Parser) parseAttribute() (*ast.Node, error) {
	hash := p.cur.Consume() // '#'
	open, ok := p.cur.Accept(token.LBrack)
	if !ok {
		d := diag.New(diag.UnexpectedToken, p.cur.Peek().Span,
			fmt.Sprintf("expected '[' after '#' to begin an attribute, found %s", p.cur.Peek()))
		p.report(d)
		return p.placeholder(ast.Attribute, hash.Span), d
	}

	n, err := p.parseAttrBody()
	close, cerr := p.expectClose(token.RBrack, open)
	if err == nil {
		err = cerr
	}
	n.Span = token.Union(hash.Span, close)
	return n, err
}

/*
parseAttrBody parses one `Name(args?)` form, used both for a top-level
attribute and for a nested Name(args) argument.
*/
func (p *Parser) parseAttrBody() (*ast.Node, error) {
	name, ok := p.cur.Accept(token.Ident)
	if !ok {
		d := diag.New(diag.UnexpectedToken, p.cur.Peek().Span,
			fmt.Sprintf("expected an attribute name, found %s", p.cur.Peek()))
		p.report(d)
		return p.placeholder(ast.Attribute, p.cur.Peek().Span), d
	}

	n := p.arena.NewNode(ast.Attribute, name.Span)
	n.Token = &name

	if open, ok := p.cur.Accept(token.LParen); ok {
		var args []*ast.Node
		var err error
		if p.cur.Peek().Kind != token.RParen {
			args, err = p.parseAttrArgList()
		}
		close, cerr := p.expectClose(token.RParen, open)
		if err == nil {
			err = cerr
		}
		n.Children = args
		n.Span = token.Union(n.Span, close)
		return n, err
	}

	return n, nil
}

func (p *Parser) parseAttrArgList() ([]*ast.Node, error) {
	var args []*ast.Node
	for {
		a, err := p.parseAttrArg()
		args = append(args, a)
		if err != nil {
			return args, err
		}
		if _, ok := p.cur.Accept(token.Comma); !ok {
			break
		}
		if p.cur.Peek().Kind == token.RParen {
			break
		}
	}
	return args, nil
}

/*
parseAttrArg parses one attribute argument: a literal, a bare identifier,
or a nested Name(args) form.
*/
func (p *Parser) parseAttrArg() (*ast.Node, error) {
	t := p.cur.Peek()

	switch t.Kind {
	case token.Int, token.Float, token.String, token.Char, token.True, token.False:
		p.cur.Consume()
		kind := ast.StringLit
		switch t.Kind {
		case token.Int:
			kind = ast.IntLit
		case token.Float:
			kind = ast.FloatLit
		case token.Char:
			kind = ast.CharLit
		case token.True, token.False:
			kind = ast.BoolLit
		}
		n := p.leaf(kind, t)
		arg := p.arena.NewNode(ast.AttrArg, t.Span)
		arg.Children = []*ast.Node{n}
		return arg, nil

	case token.Ident:
		if p.cur.PeekAt(1).Kind == token.LParen {
			nested, err := p.parseAttrBody()
			arg := p.arena.NewNode(ast.AttrArg, nested.Span)
			arg.Children = []*ast.Node{nested}
			return arg, err
		}
		p.cur.Consume()
		n := p.leaf(ast.Ident, t)
		arg := p.arena.NewNode(ast.AttrArg, t.Span)
		arg.Children = []*ast.Node{n}
		return arg, nil
	}

	d := diag.New(diag.UnexpectedToken, t.Span,
		fmt.Sprintf("expected an attribute argument (literal, identifier, or Name(args)), found %s", t))
	p.report(d)
	return p.placeholder(ast.AttrArg, t.Span), d
}
