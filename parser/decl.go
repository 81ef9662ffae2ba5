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
parseTopLevelItem routes one top-level item: a function, data-class, extern
block, variable declaration, or macro definition. Leading attributes and
modifiers are parsed first and attached to whichever declaration follows.
*/
func (p *Parser) parseTopLevelItem() (*ast.Node, error) {
	if p.handleLexError() {
		return nil, nil
	}
	return p.parseDeclOrItem()
}

/*
parseDeclOrItem is shared between top-level item parsing and the statement
parser's declaration branch: function, data-class and variable
declarations are statements too, so nested declarations parse the same
way.
*/
func (p *Parser) parseDeclOrItem() (*ast.Node, error) {
	attrs, aerr := p.parseAttributes()

	mods, modTok, err := p.parseModifiers()
	if err == nil {
		err = aerr
	}

	var decl *ast.Node
	var derr error

	switch p.cur.Peek().Kind {
	case token.Fn:
		decl, derr = p.parseFuncDecl(mods)
	case token.Data:
		decl, derr = p.parseDataClassDecl(mods)
	case token.Extern:
		decl, derr = p.parseExternBlock()
	case token.Let, token.Var:
		decl, derr = p.parseVarDeclStatement(mods, modTok)
	case token.Macro:
		decl, derr = p.parseMacroDef()
	case token.Pub, token.Unsafe, token.Async:
		// parseModifiers already consumed every modifier it could accept in
		// its fixed slot, so a modifier still sitting here is out of order.
		t := p.cur.Peek()
		d := diag.New(diag.UnexpectedToken, t.Span,
			fmt.Sprintf("modifier %s is out of order here", t)).
			WithSuggestion("write modifiers in the order 'pub unsafe async' before 'fn'")
		p.report(d)
		p.syncTo(declarationSync)
		return p.placeholder(ast.FuncDecl, t.Span), d

	default:
		t := p.cur.Peek()
		d := diag.New(diag.ExpectedStatement, t.Span,
			fmt.Sprintf("expected a declaration (fn, data, extern, let, var, or macro), found %s", t))
		p.report(d)
		p.syncTo(declarationSync)
		return p.placeholder(ast.ExprStmt, t.Span), d
	}

	if decl != nil {
		decl.Attrs = attrs
		if len(attrs) > 0 {
			decl.Span = token.Union(attrs[0].Span, decl.Span)
		}
	}
	if err == nil {
		err = derr
	}
	return decl, err
}

/*
modifierToken remembers where a modifier keyword was written, for
diagnostics that need to point at the offending modifier.
*/
type modifierToken struct {
	pub, unsafe, async token.Token
	hasPub, hasUnsafe, hasAsync bool
}

/*
parseModifiers consumes the fixed-order `pub unsafe async` modifier
sequence. Because each keyword is only accepted in its slot, a misordered
modifier (e.g. `unsafe pub fn`) is simply left unconsumed and surfaces as
an UnexpectedToken when the caller's declaration dispatch reaches it.
*/
func (p *Parser) parseModifiers() (ast.Modifiers, modifierToken, error) {
	var mods ast.Modifiers
	var mt modifierToken

	if t, ok := p.cur.Accept(token.Pub); ok {
		mods |= ast.ModPublic
		mt.pub, mt.hasPub = t, true
	}
	if t, ok := p.cur.Accept(token.Unsafe); ok {
		mods |= ast.ModUnsafe
		mt.unsafe, mt.hasUnsafe = t, true
	}
	if t, ok := p.cur.Accept(token.Async); ok {
		mods |= ast.ModAsync
		mt.async, mt.hasAsync = t, true
	}

	return mods, mt, nil
}

func (p *Parser) parseFuncDecl(mods ast.Modifiers) (*ast.Node, error) {
	kw := p.cur.Consume() // 'fn'
	name, ok := p.cur.Accept(token.Ident)
	if !ok {
		d := diag.New(diag.UnexpectedToken, p.cur.Peek().Span,
			fmt.Sprintf("expected a function name after 'fn', found %s", p.cur.Peek()))
		p.report(d)
		return p.placeholder(ast.FuncDecl, kw.Span), d
	}

	n := p.arena.NewNode(ast.FuncDecl, kw.Span)
	n.Token = &name
	n.Modifiers = mods

	var err error
	n.Generics, err = p.parseGenericParams()

	open, ok := p.cur.Accept(token.LParen)
	if !ok {
		d := diag.New(diag.UnexpectedToken, p.cur.Peek().Span,
			fmt.Sprintf("expected '(' to begin the parameter list, found %s", p.cur.Peek()))
		p.report(d)
		if err == nil {
			err = d
		}
		return n, err
	}

	params, perr := p.parseParams(open)
	if err == nil {
		err = perr
	}
	n.Children = []*ast.Node{params}

	if _, ok := p.cur.Accept(token.Arrow); ok {
		ret, terr := p.ParseType()
		n.Children = append(n.Children, ret)
		if err == nil {
			err = terr
		}
	}

	where, werr := p.parseWhereClause()
	n.Where = where
	if err == nil {
		err = werr
	}

	body, berr := p.parseBlock(freeBlockContext)
	n.Children = append(n.Children, body)
	n.Span = token.Union(n.Span, body.Span)
	if err == nil {
		err = berr
	}

	return n, err
}

func (p *Parser) parseParams(open token.Token) (*ast.Node, error) {
	var params []*ast.Node
	var err error

	if p.cur.Peek().Kind != token.RParen {
		for {
			var param *ast.Node
			param, err = p.parseParam()
			params = append(params, param)
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
	}

	close, cerr := p.expectClose(token.RParen, open)
	if err == nil {
		err = cerr
	}

	n := p.arena.NewNode(ast.Params, token.Union(open.Span, close))
	n.Children = params
	return n, err
}

func (p *Parser) parseParam() (*ast.Node, error) {
	attrs, aerr := p.parseAttributes()

	name, ok := p.cur.Accept(token.Ident)
	if !ok {
		t := p.cur.Peek()
		d := diag.New(diag.UnexpectedToken, t.Span, fmt.Sprintf("expected a parameter name, found %s", t))
		p.report(d)
		return p.placeholder(ast.Param, t.Span), d
	}

	n := p.arena.NewNode(ast.Param, name.Span)
	n.Token = &name
	n.Attrs = attrs
	if len(attrs) > 0 {
		n.Span = token.Union(attrs[0].Span, n.Span)
	}

	var err error
	if _, ok := p.cur.Accept(token.Colon); ok {
		var ty *ast.Node
		ty, err = p.ParseType()
		n.Children = []*ast.Node{ty}
		n.Span = token.Union(n.Span, ty.Span)
	}
	if err == nil {
		err = aerr
	}
	return n, err
}

func (p *Parser) parseDataClassDecl(mods ast.Modifiers) (*ast.Node, error) {
	kw := p.cur.Consume() // 'data'
	name, ok := p.cur.Accept(token.Ident)
	if !ok {
		d := diag.New(diag.UnexpectedToken, p.cur.Peek().Span,
			fmt.Sprintf("expected a data class name after 'data', found %s", p.cur.Peek()))
		p.report(d)
		return p.placeholder(ast.DataClassDecl, kw.Span), d
	}

	n := p.arena.NewNode(ast.DataClassDecl, kw.Span)
	n.Token = &name
	n.Modifiers = mods

	var err error
	n.Generics, err = p.parseGenericParams()

	where, werr := p.parseWhereClause()
	n.Where = where
	if err == nil {
		err = werr
	}

	open, ok := p.cur.Accept(token.LBrace)
	if !ok {
		d := diag.New(diag.ExpectedBlock, p.cur.Peek().Span,
			"expected '{' to begin the data class's field list")
		p.report(d)
		if err == nil {
			err = d
		}
		return n, err
	}

	var fields []*ast.Node
	for {
		p.skipBracedLayout()
		if p.cur.Peek().Kind == token.RBrace || p.cur.AtEnd() {
			break
		}
		var f *ast.Node
		var ferr error
		f, ferr = p.parseFieldDecl()
		fields = append(fields, f)
		if ferr != nil {
			if err == nil {
				err = ferr
			}
			break
		}
		p.cur.Accept(token.Comma)
	}

	close, cerr := p.expectClose(token.RBrace, open)
	if err == nil {
		err = cerr
	}

	n.Children = fields
	n.Span = token.Union(n.Span, close)
	return n, err
}

func (p *Parser) parseFieldDecl() (*ast.Node, error) {
	attrs, aerr := p.parseAttributes()

	mods, _, _ := p.parseModifiers()

	name, ok := p.cur.Accept(token.Ident)
	if !ok {
		t := p.cur.Peek()
		d := diag.New(diag.UnexpectedToken, t.Span, fmt.Sprintf("expected a field name, found %s", t))
		p.report(d)
		return p.placeholder(ast.FieldDecl, t.Span), d
	}

	n := p.arena.NewNode(ast.FieldDecl, name.Span)
	n.Token = &name
	n.Attrs = attrs
	n.Modifiers = mods
	if len(attrs) > 0 {
		n.Span = token.Union(attrs[0].Span, n.Span)
	}

	var err error
	if _, ok := p.cur.Accept(token.Colon); ok {
		var ty *ast.Node
		ty, err = p.ParseType()
		n.Children = []*ast.Node{ty}
		n.Span = token.Union(n.Span, ty.Span)
	} else {
		t := p.cur.Peek()
		d := diag.New(diag.UnexpectedToken, t.Span,
			fmt.Sprintf("expected ':' after field name, found %s", t))
		p.report(d)
		err = d
	}
	if err == nil {
		err = aerr
	}
	return n, err
}

func (p *Parser) parseExternBlock() (*ast.Node, error) {
	kw := p.cur.Consume() // 'extern'
	abi, ok := p.cur.Accept(token.String)
	if !ok {
		d := diag.New(diag.UnexpectedToken, p.cur.Peek().Span,
			fmt.Sprintf("expected an ABI string literal after 'extern', found %s", p.cur.Peek()))
		p.report(d)
		return p.placeholder(ast.ExternBlock, kw.Span), d
	}

	n := p.arena.NewNode(ast.ExternBlock, kw.Span)
	n.Token = &abi
	n.Value = abi.Lexeme

	open, ok := p.cur.Accept(token.LBrace)
	if !ok {
		d := diag.New(diag.ExpectedBlock, p.cur.Peek().Span,
			"expected '{' to begin the extern block's body")
		p.report(d)
		return n, d
	}

	var items []*ast.Node
	var err error
	for {
		p.skipBracedLayout()
		if p.cur.Peek().Kind == token.RBrace || p.cur.AtEnd() {
			break
		}
		var it *ast.Node
		var ierr error
		it, ierr = p.parseExternItem()
		items = append(items, it)
		if ierr != nil {
			if err == nil {
				err = ierr
			}
			break
		}
	}

	close, cerr := p.expectClose(token.RBrace, open)
	if err == nil {
		err = cerr
	}

	n.Children = items
	n.Span = token.Union(n.Span, close)
	return n, err
}

func (p *Parser) parseExternItem() (*ast.Node, error) {
	switch p.cur.Peek().Kind {
	case token.Fn:
		return p.parseExternFuncDecl()
	case token.Let, token.Var:
		return p.parseExternStaticDecl()
	}

	t := p.cur.Peek()
	d := diag.New(diag.ExpectedStatement, t.Span,
		fmt.Sprintf("expected a function signature or static declaration, found %s", t))
	p.report(d)
	p.syncTo(kindSet(token.Fn, token.Let, token.Var, token.RBrace))
	return p.placeholder(ast.ExternFuncDecl, t.Span), d
}

func (p *Parser) parseExternFuncDecl() (*ast.Node, error) {
	kw := p.cur.Consume() // 'fn'
	name, ok := p.cur.Accept(token.Ident)
	if !ok {
		d := diag.New(diag.UnexpectedToken, p.cur.Peek().Span,
			fmt.Sprintf("expected a function name after 'fn', found %s", p.cur.Peek()))
		p.report(d)
		return p.placeholder(ast.ExternFuncDecl, kw.Span), d
	}

	n := p.arena.NewNode(ast.ExternFuncDecl, kw.Span)
	n.Token = &name

	open, ok := p.cur.Accept(token.LParen)
	if !ok {
		d := diag.New(diag.UnexpectedToken, p.cur.Peek().Span, "expected '(' to begin the parameter list")
		p.report(d)
		return n, d
	}
	params, err := p.parseParams(open)
	n.Children = []*ast.Node{params}

	if _, ok := p.cur.Accept(token.Arrow); ok {
		ret, terr := p.ParseType()
		n.Children = append(n.Children, ret)
		if err == nil {
			err = terr
		}
	}

	semi, serr := p.expectStatementEnd()
	n.Span = token.Union(n.Span, semi)
	if err == nil {
		err = serr
	}
	return n, err
}

/*
parseVarDeclStatement parses a `let`/`var` binding. Only 'pub' is
permitted before let/var - an unsafe/async modifier caught here is
reported and otherwise ignored rather than attached to the node.
*/
func (p *Parser) parseVarDeclStatement(mods ast.Modifiers, modTok modifierToken) (*ast.Node, error) {
	var err error
	if modTok.hasUnsafe {
		d := diag.New(diag.UnexpectedToken, modTok.unsafe.Span,
			"only 'pub' is permitted before 'let'/'var'; 'unsafe' is not allowed here")
		p.report(d)
		err = d
	}
	if modTok.hasAsync {
		d := diag.New(diag.UnexpectedToken, modTok.async.Span,
			"only 'pub' is permitted before 'let'/'var'; 'async' is not allowed here")
		p.report(d)
		if err == nil {
			err = d
		}
	}

	kw := p.cur.Consume() // 'let' or 'var'
	name, ok := p.cur.Accept(token.Ident)
	if !ok {
		d := diag.New(diag.UnexpectedToken, p.cur.Peek().Span,
			fmt.Sprintf("expected a variable name after %s, found %s", kw, p.cur.Peek()))
		p.report(d)
		if err == nil {
			err = d
		}
		return p.placeholder(ast.VarDecl, kw.Span), err
	}

	n := p.arena.NewNode(ast.VarDecl, kw.Span)
	n.Token = &name
	n.Value = kw.Lexeme
	n.Modifiers = mods & ast.ModPublic

	if _, ok := p.cur.Accept(token.Colon); ok {
		ty, terr := p.ParseType()
		n.Children = append(n.Children, ty)
		if err == nil {
			err = terr
		}
	}

	if _, ok := p.cur.Accept(token.Eq); ok {
		init, ierr := p.ParseExpression()
		n.Children = append(n.Children, init)
		n.Span = token.Union(n.Span, init.Span)
		if err == nil {
			err = ierr
		}
	}

	p.declareBinding(name.Lexeme, name.Span)

	end, eerr := p.expectStatementEnd()
	n.Span = token.Union(n.Span, end)
	if err == nil {
		err = eerr
	}
	return n, err
}

func (p *Parser) parseExternStaticDecl() (*ast.Node, error) {
	mode := p.cur.Consume() // 'let' or 'var'
	name, ok := p.cur.Accept(token.Ident)
	if !ok {
		d := diag.New(diag.UnexpectedToken, p.cur.Peek().Span,
			fmt.Sprintf("expected a static name, found %s", p.cur.Peek()))
		p.report(d)
		return p.placeholder(ast.ExternStaticDecl, mode.Span), d
	}

	n := p.arena.NewNode(ast.ExternStaticDecl, mode.Span)
	n.Token = &name
	n.Value = mode.Lexeme

	var err error
	if _, ok := p.cur.Accept(token.Colon); ok {
		var ty *ast.Node
		ty, err = p.ParseType()
		n.Children = []*ast.Node{ty}
	} else {
		d := diag.New(diag.ExpectedType, p.cur.Peek().Span, "extern statics require an explicit type")
		p.report(d)
		err = d
	}

	semi, serr := p.expectStatementEnd()
	n.Span = token.Union(n.Span, semi)
	if err == nil {
		err = serr
	}
	return n, err
}
