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
parseMacroInvoke implements the postfix `!` LED for a macro invocation
following an identifier: name!(...), name![...] or name!{...}, with the
body parsed as a token tree. left must be an Ident or QualIdent; any other
left is a SyntaxError (macros cannot be invoked on arbitrary expressions).
*/
func (p *Parser) parseMacroInvoke(left *ast.Node) (*ast.Node, error) {
	bang := p.cur.Consume() // '!'

	if left.Kind != ast.Ident && left.Kind != ast.QualIdent {
		d := diag.New(diag.SyntaxError, bang.Span,
			"macro invocation '!' must follow a bare name").
			WithSuggestion("write name!(...) with a plain or qualified identifier before '!'")
		p.report(d)
		return left, d
	}

	open := p.cur.Peek()
	if open.Kind != token.LParen && open.Kind != token.LBrack && open.Kind != token.LBrace {
		d := diag.New(diag.UnexpectedToken, open.Span,
			fmt.Sprintf("expected '(', '[', or '{' to begin a macro body, found %s", open))
		p.report(d)
		return left, d
	}
	p.cur.Consume()

	group, err := p.parseTokenGroup(open)

	n := p.arena.NewNode(ast.MacroInvoke, token.Union(left.Span, group.Span))
	n.Token = left.Token
	if left.Kind == ast.QualIdent {
		n.Value = qualifiedName(left)
	}
	n.Children = []*ast.Node{group}
	return n, err
}

func qualifiedName(q *ast.Node) string {
	s := ""
	for i, seg := range q.Children {
		if i > 0 {
			s += "::"
		}
		s += seg.Lexeme()
	}
	return s
}

/*
parseTokenGroup parses the contents of a delimited token tree group up to
(and consuming) its matching closer: a sequence of atomic tokens and
nested delimited groups. No expansion happens here - the only guarantee is
delimiter balance.
*/
func (p *Parser) parseTokenGroup(open token.Token) (*ast.Node, error) {
	closer := closerFor(open.Kind)
	var children []*ast.Node
	var err error

	for {
		p.skipBracedLayout()
		if p.cur.Peek().Kind == closer || p.cur.AtEnd() {
			break
		}
		var tt *ast.Node
		tt, err = p.parseTokenTree()
		children = append(children, tt)
		if err != nil {
			break
		}
	}

	close, cerr := p.expectClose(closer, open)
	if err == nil {
		err = cerr
	}

	n := p.arena.NewNode(ast.TokenGroup, token.Union(open.Span, close))
	n.Value = delimiterName(open.Kind)
	n.Children = children
	return n, err
}

func delimiterName(open token.Kind) string {
	switch open {
	case token.LParen:
		return "()"
	case token.LBrack:
		return "[]"
	case token.LBrace:
		return "{}"
	}
	return ""
}

/*
parseTokenTree parses one token tree: either a single non-delimiter token,
or a nested delimited group.
*/
func (p *Parser) parseTokenTree() (*ast.Node, error) {
	t := p.cur.Peek()

	switch t.Kind {
	case token.LParen, token.LBrack, token.LBrace:
		p.cur.Consume()
		return p.parseTokenGroup(t)

	case token.RParen, token.RBrack, token.RBrace:
		d := diag.New(diag.UnexpectedToken, t.Span,
			fmt.Sprintf("unmatched closing delimiter %s in macro body", t)).
			WithSuggestion("remove the extra closing delimiter, or add the matching opener")
		p.report(d)
		p.cur.Consume()
		return p.placeholder(ast.TokenLeaf, t.Span), d

	case token.EOF:
		d := diag.New(diag.UnexpectedEOF, t.Span, "macro body ends before its closing delimiter")
		p.report(d)
		return p.placeholder(ast.TokenLeaf, t.Span), d
	}

	p.cur.Consume()
	return p.leaf(ast.TokenLeaf, t), nil
}

// --- Macro definitions ---------------------------------------------------

/*
parseMacroDef parses a `macro Name { pattern => replacement ; ... }`
definition as one or more rules, each side a token tree.
*/
func (p *Parser) parseMacroDef() (*ast.Node, error) {
	kw := p.cur.Consume() // 'macro'
	name, ok := p.cur.Accept(token.Ident)
	if !ok {
		d := diag.New(diag.UnexpectedToken, p.cur.Peek().Span,
			fmt.Sprintf("expected a macro name, found %s", p.cur.Peek()))
		p.report(d)
		return p.placeholder(ast.MacroDef, kw.Span), d
	}

	open, ok := p.cur.Accept(token.LBrace)
	if !ok {
		d := diag.New(diag.ExpectedBlock, p.cur.Peek().Span,
			"expected '{' to begin the macro's rule list").
			WithSuggestion("open the macro body with '{'")
		p.report(d)
		return p.placeholder(ast.MacroDef, kw.Span), d
	}

	var rules []*ast.Node
	var err error
	for {
		p.skipBracedLayout()
		if p.cur.Peek().Kind == token.RBrace || p.cur.AtEnd() {
			break
		}
		var rule *ast.Node
		rule, err = p.parseMacroRule()
		rules = append(rules, rule)
		if err != nil {
			break
		}
		p.cur.Accept(token.Semicolon)
	}

	close, cerr := p.expectClose(token.RBrace, open)
	if err == nil {
		err = cerr
	}

	n := p.arena.NewNode(ast.MacroDef, token.Union(kw.Span, close))
	n.Token = &name
	n.Children = rules
	return n, err
}

func (p *Parser) parseMacroRule() (*ast.Node, error) {
	pat, err := p.parseMacroRuleSide()
	if err != nil {
		return p.placeholder(ast.MacroRule, pat.Span), err
	}

	if _, ok := p.cur.Accept(token.FatArrow); !ok {
		d := diag.New(diag.UnexpectedToken, p.cur.Peek().Span,
			fmt.Sprintf("expected '=>' between a macro rule's pattern and replacement, found %s", p.cur.Peek()))
		p.report(d)
		return p.placeholder(ast.MacroRule, pat.Span), d
	}

	repl, rerr := p.parseMacroRuleSide()
	n := p.arena.NewNode(ast.MacroRule, token.Union(pat.Span, repl.Span))
	n.Children = []*ast.Node{pat, repl}
	return n, rerr
}

/*
parseMacroRuleSide parses one side of a macro rule as a single delimited
token tree group.
*/
func (p *Parser) parseMacroRuleSide() (*ast.Node, error) {
	open := p.cur.Peek()
	if open.Kind != token.LParen && open.Kind != token.LBrack && open.Kind != token.LBrace {
		d := diag.New(diag.UnexpectedToken, open.Span,
			fmt.Sprintf("expected a delimited token tree ('(', '[', or '{'), found %s", open))
		p.report(d)
		return p.placeholder(ast.TokenGroup, open.Span), d
	}
	p.cur.Consume()
	return p.parseTokenGroup(open)
}
