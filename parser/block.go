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
	"strings"

	"github.com/ferra-lang/ferrac/ast"
	"github.com/ferra-lang/ferrac/diag"
	"github.com/ferra-lang/ferrac/token"
)

/*
blockContext threads the style a nested control-flow body must match:
within a single block, every direct child statement must respect the
block's style. A function or data-class body (or any other fresh entry
point) has no required style and picks freely from its opening token; every
statement directly inside an already-opened block inherits that block's
style for its own nested bodies (if/while/for/match-arm bodies,
labeled/unsafe/async blocks).
*/
type blockContext struct {
	style    ast.BlockStyle
	required bool
}

var freeBlockContext = blockContext{}

func requiredContext(s ast.BlockStyle) blockContext {
	return blockContext{style: s, required: true}
}

/*
parseBlock parses one Block, detecting its style from the opening token:
'{' begins a braced block, ':' followed by an indentation increment begins
an indented block. ctx carries the style the caller's enclosing block
already committed to, if any.
*/
func (p *Parser) parseBlock(ctx blockContext) (*ast.Node, error) {
	t := p.cur.Peek()

	switch t.Kind {
	case token.LBrace:
		if ctx.required && ctx.style != ast.StyleBraced {
			return p.mixedBlockStyles(t)
		}
		return p.parseBracedBlock()

	case token.Colon:
		if ctx.required && ctx.style != ast.StyleIndented {
			return p.mixedBlockStyles(t)
		}
		return p.parseIndentedBlock()
	}

	d := diag.New(diag.ExpectedBlock, t.Span,
		fmt.Sprintf("expected a block ('{' or ':' followed by an indented line), found %s", t))
	p.report(d)
	return p.placeholder(ast.Block, t.Span), d
}

/*
mixedBlockStyles reports the MixedBlockStyles diagnostic at the offending
opener and recovers by skipping to the enclosing block's own closing
delimiter. Because the malformed construct never produced real
Indent/Dedent tokens (there is no actual newline-driven indentation change
backing it when the surrounding block is braced), syncTo naturally lands on
the next real RBrace: the enclosing block's own closer.
*/
func (p *Parser) mixedBlockStyles(t token.Token) (*ast.Node, error) {
	d := diag.New(diag.MixedBlockStyles, t.Span,
		"this block mixes brace and indentation styles with its enclosing block")
	p.report(d)
	span := p.syncTo(blockSync)
	return p.placeholder(ast.Block, span), d
}

func (p *Parser) parseBracedBlock() (*ast.Node, error) {
	open := p.cur.Consume() // '{'
	p.pushScope("block")
	defer p.popScope()

	stmts, trailing, err := p.parseStatementsUntil(requiredContext(ast.StyleBraced), token.RBrace)

	close, cerr := p.expectClose(token.RBrace, open)
	if err == nil {
		err = cerr
	}

	n := p.arena.NewNode(ast.Block, token.Union(open.Span, close))
	n.Style = ast.StyleBraced
	n.Children = stmts
	n.TrailingExpr = trailing
	return n, err
}

func (p *Parser) parseIndentedBlock() (*ast.Node, error) {
	colon := p.cur.Consume() // ':'
	p.cur.Accept(token.Newline)

	indent, ok := p.cur.Accept(token.Indent)
	if !ok {
		d := diag.New(diag.InvalidIndentation, p.cur.Peek().Span,
			"expected an indented line after ':'").
			WithSuggestion("indent the next line further than this one")
		p.report(d)
		return p.placeholder(ast.Block, colon.Span), d
	}

	p.pushScope("block")
	defer p.popScope()

	stmts, trailing, err := p.parseStatementsUntil(requiredContext(ast.StyleIndented), token.Dedent)

	dedent, derr := p.expectClose(token.Dedent, indent)
	if err == nil {
		err = derr
	}

	n := p.arena.NewNode(ast.Block, token.Union(colon.Span, dedent))
	n.Style = ast.StyleIndented
	n.Children = stmts
	n.TrailingExpr = trailing
	return n, err
}

/*
parseStatementsUntil parses statements until the current token is closer
or EOF. The last parsed statement is unwrapped into a trailing
block-as-expression value when it was an expression statement with no
terminating semicolon/newline actually consumed.
*/
func (p *Parser) parseStatementsUntil(ctx blockContext, closer token.Kind) ([]*ast.Node, bool, error) {
	var stmts []*ast.Node
	var err error
	trailing := false

	for {
		if p.skipLayout(ctx) {
			continue
		}
		if p.cur.Peek().Kind == closer || p.cur.AtEnd() {
			break
		}
		if p.handleLexError() {
			continue
		}
		if p.diags.HasFatal() {
			break
		}

		// Braced blocks require ';' after a non-block statement; only the
		// trailing expression may omit it. Reaching another statement with
		// the previous expression still unterminated is therefore an error
		// in braces, while in indented blocks the newline already ended it.
		if trailing && ctx.style == ast.StyleBraced {
			d := diag.New(diag.UnexpectedToken, p.cur.Span(),
				"expected ';' to end the preceding expression statement").
				WithSuggestion("insert ';' after the previous expression")
			p.report(d)
		}

		var s *ast.Node
		var sawSep bool
		before := p.cur.Pos()
		s, sawSep, err = p.parseStatement(ctx)
		if s != nil {
			stmts = append(stmts, s)
			trailing = s.Kind == ast.ExprStmt && !sawSep
		}
		if err != nil && p.cfg.RecoveryMode == RecoveryConservative {
			break
		}
		// Recovery must make progress: a failing statement that consumed
		// nothing would otherwise re-see the same token forever.
		if err != nil && p.cur.Pos() == before && p.cur.Peek().Kind != closer && !p.cur.AtEnd() {
			p.cur.Consume()
		}
	}

	if trailing && len(stmts) > 0 {
		last := stmts[len(stmts)-1]
		if len(last.Children) == 1 {
			stmts[len(stmts)-1] = last.Children[0]
		}
	}

	return stmts, trailing, err
}

/*
skipLayout consumes one run-entry of layout tokens carrying no statement
content at the current position: a Newline in any context, and - between
braces - the Indent/Dedent markers the lexer still emits for the source's
visual indentation, which have no structural meaning there. In an indented
block an unexpected Indent is a deeper level that no nested block
introduced: InvalidIndentation, with the whole over-indented run skipped so
the block resumes at its own level.
*/
func (p *Parser) skipLayout(ctx blockContext) bool {
	switch p.cur.Peek().Kind {
	case token.Newline:
		p.cur.Consume()
		return true

	case token.Indent:
		if ctx.required && ctx.style == ast.StyleIndented {
			d := diag.New(diag.InvalidIndentation, p.cur.Span(),
				"this line is indented deeper than the enclosing block's statements")
			p.report(d)
			p.skipOverIndent()
			return true
		}
		p.cur.Consume()
		return true

	case token.Dedent:
		if ctx.required && ctx.style == ast.StyleIndented {
			// The block's own closer (or an enclosing one) - not layout.
			return false
		}
		p.cur.Consume()
		return true
	}
	return false
}

/*
skipBracedLayout consumes any run of Newline/Indent/Dedent tokens sitting
inside a brace-delimited item list (data-class fields, extern items, match
arms, macro rules, token trees) where visual indentation is free-form.
*/
func (p *Parser) skipBracedLayout() {
	for {
		switch p.cur.Peek().Kind {
		case token.Newline, token.Indent, token.Dedent:
			p.cur.Consume()
		default:
			return
		}
	}
}

/*
skipOverIndent discards an over-indented run: the Indent currently at the
cursor through its balancing Dedent, including any nested pairs.
*/
func (p *Parser) skipOverIndent() {
	depth := 0
	for !p.cur.AtEnd() {
		switch p.cur.Consume().Kind {
		case token.Indent:
			depth++
		case token.Dedent:
			depth--
		}
		if depth == 0 {
			return
		}
	}
}

/*
handleLexError converts a lexer-level token.Error token sitting at the
cursor into a structured diagnostic and consumes it, returning true if it
did so (callers should `continue` their loop in that case).
*/
func (p *Parser) handleLexError() bool {
	t := p.cur.Peek()
	if t.Kind != token.Error {
		return false
	}
	p.cur.Consume()

	kind := diag.SyntaxError
	if strings.Contains(t.Lexeme, "indentation") {
		kind = diag.InconsistentIndentation
	}
	d := diag.New(kind, t.Span, t.Lexeme)
	p.report(d)
	return true
}

// --- lexical scope plumbing ----------------------------------------------

func (p *Parser) pushScope(name string) {
	p.sc = p.sc.NewChild(name)
}

func (p *Parser) popScope() {
	if parent := p.sc.Parent(); parent != nil {
		p.sc = parent
	}
}

/*
declareBinding records varName as bound in the current scope, reporting
VariableRedefinition (non-fatal; parsing continues) if it was already
declared directly in this same scope.
*/
func (p *Parser) declareBinding(varName string, span token.Span) {
	if varName == "" || varName == "_" {
		return
	}
	if prior, dup := p.sc.Declare(varName, span); dup {
		d := diag.New(diag.VariableRedefinition, span,
			fmt.Sprintf("%q is already declared in this scope (first declared at %s)", varName, prior)).
			WithSuggestion("rename one of the bindings, or remove the duplicate declaration")
		p.report(d)
	}
}
