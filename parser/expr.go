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

// Binding powers, one constant per precedence level (decreasing precedence
// = decreasing bp). Pattern-position `|` sits below all of these and is
// handled entirely inside pattern.go, never entering this table.
const (
	bpLowest   = 0
	bpAssign   = 2 // right-assoc
	bpRange    = 3
	bpLogOr    = 4
	bpLogAnd   = 5
	bpEquality = 6
	bpCompare  = 7
	bpBitOr    = 8
	bpBitXor   = 9
	bpBitAnd   = 10
	bpShift    = 11
	bpAdd      = 12
	bpMul      = 13
	bpPrefix   = 14
	bpPostfix  = 15
)

/*
binaryOp describes one infix operator's binding power and associativity.
*/
type binaryOp struct {
	bp         int
	rightAssoc bool
}

var binaryOps = map[token.Kind]binaryOp{
	token.Star: {bpMul, false}, token.Slash: {bpMul, false}, token.Percent: {bpMul, false},
	token.Plus: {bpAdd, false}, token.Minus: {bpAdd, false},
	token.Shl: {bpShift, false}, token.Shr: {bpShift, false},
	token.Amp:   {bpBitAnd, false},
	token.Caret: {bpBitXor, false},
	token.Pipe:  {bpBitOr, false},
	token.Lt:    {bpCompare, false}, token.Le: {bpCompare, false},
	token.Gt: {bpCompare, false}, token.Ge: {bpCompare, false},
	token.EqEq: {bpEquality, false}, token.Ne: {bpEquality, false},
	token.AmpAmp:   {bpLogAnd, false},
	token.PipePipe: {bpLogOr, false},
	token.DotDot:   {bpRange, false}, token.DotDotEq: {bpRange, false},
	token.Eq: {bpAssign, true}, token.PlusEq: {bpAssign, true}, token.MinusEq: {bpAssign, true},
	token.StarEq: {bpAssign, true}, token.SlashEq: {bpAssign, true}, token.PercentEq: {bpAssign, true},
}

/*
lbp returns the left-binding-power of the current token for the Pratt
loop's termination test, or 0 (bpLowest) if it has no LED - which makes the
loop's "current LBP <= min_bp" exit condition fire naturally.
*/
func lbp(k token.Kind) int {
	switch k {
	case token.LParen, token.LBrack, token.Dot, token.Question, token.Bang:
		return bpPostfix
	}
	if op, ok := binaryOps[k]; ok {
		return op.bp
	}
	return bpLowest
}

/*
ParseExpression parses one expression, consuming exactly the tokens of
that expression and no more.
*/
func (p *Parser) ParseExpression() (*ast.Node, error) {
	return p.parseExpr(bpLowest)
}

func (p *Parser) parseExpr(minBP int) (*ast.Node, error) {
	if !p.enter() {
		return p.depthError()
	}
	defer p.leave()

	left, err := p.nud()
	if err != nil {
		return left, err
	}

	for lbp(p.cur.Peek().Kind) > minBP {
		left, err = p.led(left)
		if err != nil {
			return left, err
		}
	}

	return left, nil
}

func (p *Parser) depthError() (*ast.Node, error) {
	span := p.cur.Span()
	d := diag.New(diag.ExpectedExpression, span, "expression nested too deeply to parse").
		WithSuggestion("break this expression into smaller sub-expressions; nesting is too deeply chained here")
	p.report(d)
	return p.placeholder(ast.ExprStmt, span), d
}

// nud dispatches the current token's null-denotation (prefix) handler.
func (p *Parser) nud() (*ast.Node, error) {
	t := p.cur.Peek()

	switch t.Kind {
	case token.Int:
		p.cur.Consume()
		return p.leaf(ast.IntLit, t), nil
	case token.Float:
		p.cur.Consume()
		return p.leaf(ast.FloatLit, t), nil
	case token.String:
		p.cur.Consume()
		return p.leaf(ast.StringLit, t), nil
	case token.Char:
		p.cur.Consume()
		return p.leaf(ast.CharLit, t), nil
	case token.True, token.False:
		p.cur.Consume()
		return p.leaf(ast.BoolLit, t), nil
	case token.Null:
		p.cur.Consume()
		return p.leaf(ast.NullLit, t), nil
	case token.Ident:
		return p.parseIdentOrQualified()
	case token.LParen:
		return p.parseParenOrTuple()
	case token.LBrack:
		return p.parseArrayLiteral()
	case token.Minus, token.Plus, token.Bang, token.Star:
		return p.parseUnary()
	case token.DotDot, token.DotDotEq:
		return p.parseOpenRange()
	case token.If:
		return p.parseIfExpr()
	case token.Match:
		return p.parseMatchExpr()
	case token.LBrace:
		return p.parseBlockExpr("")
	case token.Unsafe, token.Async:
		return p.parseTaggedBlockExpr()
	}

	return p.expectedExpression(t)
}

func (p *Parser) expectedExpression(t token.Token) (*ast.Node, error) {
	d := diag.New(diag.ExpectedExpression,
		t.Span, fmt.Sprintf("expected an expression, found %s", t))
	p.report(d)
	return p.placeholder(ast.ExprStmt, t.Span), d
}

func (p *Parser) parseIdentOrQualified() (*ast.Node, error) {
	first := p.cur.Consume()
	node := p.leaf(ast.Ident, first)

	if p.cur.Peek().Kind != token.ColonColon {
		return node, nil
	}

	segs := []*ast.Node{node}
	start := first.Span
	for {
		if _, ok := p.cur.Accept(token.ColonColon); !ok {
			break
		}
		seg, ok := p.cur.Accept(token.Ident)
		if !ok {
			return p.expectedExpression(p.cur.Peek())
		}
		segs = append(segs, p.leaf(ast.Ident, seg))
		if p.cur.Peek().Kind != token.ColonColon {
			break
		}
	}
	span := token.Union(start, segs[len(segs)-1].Span)
	q := p.arena.NewNode(ast.QualIdent, span)
	q.Children = segs
	return q, nil
}

func (p *Parser) parseParenOrTuple() (*ast.Node, error) {
	open := p.cur.Consume() // '('

	if close, ok := p.cur.Accept(token.RParen); ok {
		n := p.arena.NewNode(ast.TupleLit, token.Union(open.Span, close.Span))
		return n, nil
	}

	first, err := p.parseExpr(bpLowest)
	if err != nil {
		return first, err
	}

	if p.cur.Peek().Kind != token.Comma {
		close, err := p.expectClose(token.RParen, open)
		span := token.Union(open.Span, close)
		n := p.arena.NewNode(ast.ParenExpr, span)
		n.Children = []*ast.Node{first}
		return n, err
	}

	elems := []*ast.Node{first}
	for {
		if _, ok := p.cur.Accept(token.Comma); !ok {
			break
		}
		if p.cur.Peek().Kind == token.RParen {
			break
		}
		e, err := p.parseExpr(bpLowest)
		elems = append(elems, e)
		if err != nil {
			return p.finishList(ast.TupleLit, open, elems)
		}
	}
	return p.finishList(ast.TupleLit, open, elems)
}

func (p *Parser) finishList(kind ast.Kind, open token.Token, elems []*ast.Node) (*ast.Node, error) {
	close, err := p.expectClose(closerFor(open.Kind), open)
	n := p.arena.NewNode(kind, token.Union(open.Span, close))
	n.Children = elems
	return n, err
}

func closerFor(open token.Kind) token.Kind {
	switch open {
	case token.LParen:
		return token.RParen
	case token.LBrack:
		return token.RBrack
	case token.LBrace:
		return token.RBrace
	}
	return token.EOF
}

func (p *Parser) parseArrayLiteral() (*ast.Node, error) {
	open := p.cur.Consume() // '['

	if close, ok := p.cur.Accept(token.RBrack); ok {
		return p.arena.NewNode(ast.ArrayLit, token.Union(open.Span, close.Span)), nil
	}

	var elems []*ast.Node
	for {
		e, err := p.parseExpr(bpLowest)
		elems = append(elems, e)
		if err != nil {
			return p.finishList(ast.ArrayLit, open, elems)
		}
		if _, ok := p.cur.Accept(token.Comma); !ok {
			break
		}
		if p.cur.Peek().Kind == token.RBrack {
			break
		}
	}
	return p.finishList(ast.ArrayLit, open, elems)
}

func (p *Parser) parseUnary() (*ast.Node, error) {
	op := p.cur.Consume()
	operand, err := p.parseExpr(bpPrefix)
	n := p.arena.NewNode(ast.UnaryExpr, token.Union(op.Span, operand.Span))
	n.Token = &op
	n.Children = []*ast.Node{operand}
	return n, err
}

func (p *Parser) parseOpenRange() (*ast.Node, error) {
	op := p.cur.Consume()
	n := p.arena.NewNode(ast.BinaryExpr, op.Span)
	n.Token = &op
	if canStartExpr(p.cur.Peek().Kind) {
		rhs, err := p.parseExpr(bpRange)
		n.Children = []*ast.Node{rhs}
		n.Span = token.Union(op.Span, rhs.Span)
		return n, err
	}
	return n, nil
}

// led dispatches the current token's left-denotation (infix/postfix)
// handler with left as its left-hand subtree.
func (p *Parser) led(left *ast.Node) (*ast.Node, error) {
	t := p.cur.Peek()

	switch t.Kind {
	case token.LParen:
		return p.parseCall(left)
	case token.LBrack:
		return p.parseIndex(left)
	case token.Dot:
		return p.parseMemberOrAwait(left)
	case token.Question:
		p.cur.Consume()
		n := p.arena.NewNode(ast.TryExpr, token.Union(left.Span, t.Span))
		n.Children = []*ast.Node{left}
		return n, nil
	case token.Bang:
		return p.parseMacroInvoke(left)
	}

	if op, ok := binaryOps[t.Kind]; ok {
		return p.parseBinary(left, t, op)
	}

	// No LED for this token. LED never fails from absence - control simply
	// returns to the caller's loop, which will see lbp(t.Kind) <= minBP
	// and stop.
	return left, nil
}

func (p *Parser) parseBinary(left *ast.Node, opTok token.Token, op binaryOp) (*ast.Node, error) {
	p.cur.Consume()

	// Ranges may be open-ended on the high side: `lo..` is complete when
	// nothing that can start an expression follows the operator.
	if (opTok.Kind == token.DotDot || opTok.Kind == token.DotDotEq) && !canStartExpr(p.cur.Peek().Kind) {
		n := p.arena.NewNode(ast.BinaryExpr, token.Union(left.Span, opTok.Span))
		n.Token = &opTok
		n.Children = []*ast.Node{left}
		return n, nil
	}

	rbp := op.bp
	if op.rightAssoc {
		rbp = op.bp - 1
	}

	right, err := p.parseExpr(rbp)
	n := p.arena.NewNode(ast.BinaryExpr, token.Union(left.Span, right.Span))
	n.Token = &opTok
	n.Children = []*ast.Node{left, right}
	return n, err
}

func (p *Parser) parseCall(callee *ast.Node) (*ast.Node, error) {
	open := p.cur.Consume() // '('
	var args []*ast.Node

	if p.cur.Peek().Kind != token.RParen {
		for {
			a, err := p.parseExpr(bpLowest)
			args = append(args, a)
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
	close, err := p.expectClose(token.RParen, open)

	argsNode := p.arena.NewNode(ast.Args, token.Union(open.Span, close))
	argsNode.Children = args

	n := p.arena.NewNode(ast.CallExpr, token.Union(callee.Span, close))
	n.Children = []*ast.Node{callee, argsNode}
	return n, err
}

func (p *Parser) parseIndex(base *ast.Node) (*ast.Node, error) {
	open := p.cur.Consume() // '['
	idx, err := p.parseExpr(bpLowest)
	close, cerr := p.expectClose(token.RBrack, open)
	if err == nil {
		err = cerr
	}
	n := p.arena.NewNode(ast.IndexExpr, token.Union(base.Span, close))
	n.Children = []*ast.Node{base, idx}
	return n, err
}

func (p *Parser) parseMemberOrAwait(base *ast.Node) (*ast.Node, error) {
	p.cur.Consume() // '.'

	if kw, ok := p.cur.Accept(token.Await); ok {
		n := p.arena.NewNode(ast.AwaitExpr, token.Union(base.Span, kw.Span))
		n.Children = []*ast.Node{base}
		return n, nil
	}

	name, ok := p.cur.Accept(token.Ident)
	if !ok {
		return p.expectedMember(base)
	}
	n := p.arena.NewNode(ast.MemberExpr, token.Union(base.Span, name.Span))
	n.Token = &name
	n.Children = []*ast.Node{base}
	return n, nil
}

func (p *Parser) expectedMember(base *ast.Node) (*ast.Node, error) {
	t := p.cur.Peek()
	d := diag.New(diag.UnexpectedToken, t.Span,
		fmt.Sprintf("expected a field name after '.', found %s", t)).
		WithSuggestion("write an identifier after '.'")
	p.report(d)
	return base, d
}

/*
canStartExpr reports whether k could begin an expression's NUD - used to
decide whether a range operator is open-ended, since ranges may omit either
bound.
*/
func canStartExpr(k token.Kind) bool {
	switch k {
	case token.Int, token.Float, token.String, token.Char, token.True, token.False, token.Null,
		token.Ident, token.LParen, token.LBrack, token.Minus, token.Plus, token.Bang, token.Star,
		token.If, token.Match, token.LBrace, token.Unsafe, token.Async:
		return true
	}
	return false
}
