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
Package printer renders an arena-built AST back to Ferra source text.

The output is canonical: printing is idempotent on its own output, and
re-parsing the printed form yields a structurally identical AST modulo
spans. To guarantee that, the printer is deliberately conservative about
parenthesization (nested operator operands are always grouped) and always
reproduces a Block's original brace/indent style rather than normalizing
to a single style.
*/
package printer

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"devt.de/krotik/common/errorutil"
	"devt.de/krotik/common/stringutil"

	"github.com/ferra-lang/ferrac/ast"
)

const indentWidth = 4

type printer struct {
	buf   bytes.Buffer
	depth int
}

/*
Print renders n (expected to be an ast.CompilationUnit, but any node
prints sensibly) as Ferra source text.
*/
func Print(n *ast.Node) string {
	p := &printer{}
	if n == nil {
		return ""
	}
	if n.Kind == ast.CompilationUnit {
		for i, item := range n.Children {
			if i > 0 {
				p.buf.WriteString("\n")
			}
			p.writeMeta(item, true)
			p.printItem(item)
			p.buf.WriteString("\n")
		}
		return strings.TrimRight(p.buf.String(), "\n") + "\n"
	}
	p.printItem(n)
	return p.buf.String()
}

func (p *printer) indent() string {
	return stringutil.GenerateRollingString(" ", p.depth*indentWidth)
}

func (p *printer) writeMeta(n *ast.Node, topLevel bool) {
	for _, m := range n.Meta {
		if !m.Pre {
			continue
		}
		for _, line := range strings.Split(strings.TrimRight(m.Text, "\n"), "\n") {
			p.buf.WriteString(p.indent())
			p.buf.WriteString("// ")
			p.buf.WriteString(strings.TrimSpace(line))
			p.buf.WriteString("\n")
		}
	}
}

// --- top-level items and declarations -------------------------------------

func (p *printer) printItem(n *ast.Node) {
	switch n.Kind {
	case ast.FuncDecl:
		p.printFuncDecl(n)
	case ast.DataClassDecl:
		p.printDataClassDecl(n)
	case ast.ExternBlock:
		p.printExternBlock(n)
	case ast.VarDecl:
		p.buf.WriteString(p.indent())
		p.buf.WriteString(p.renderVarDecl(n))
		p.buf.WriteString("\n")
	case ast.MacroDef:
		p.printMacroDef(n)
	default:
		p.buf.WriteString(p.indent())
		p.buf.WriteString(p.renderStmt(n))
		p.buf.WriteString("\n")
	}
}

func (p *printer) modifierPrefix(n *ast.Node) string {
	var parts []string
	if n.Modifiers.Has(ast.ModPublic) {
		parts = append(parts, "pub")
	}
	if n.Modifiers.Has(ast.ModUnsafe) {
		parts = append(parts, "unsafe")
	}
	if n.Modifiers.Has(ast.ModAsync) {
		parts = append(parts, "async")
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, " ") + " "
}

func (p *printer) printAttrs(attrs []*ast.Node) {
	for _, a := range attrs {
		p.buf.WriteString(p.indent())
		p.buf.WriteString(p.renderAttribute(a))
		p.buf.WriteString("\n")
	}
}

func (p *printer) renderAttribute(n *ast.Node) string {
	var b strings.Builder
	b.WriteString("#[")
	b.WriteString(p.renderAttrBody(n))
	b.WriteString("]")
	return b.String()
}

func (p *printer) renderAttrBody(n *ast.Node) string {
	var b strings.Builder
	b.WriteString(n.Lexeme())
	if len(n.Children) > 0 {
		b.WriteString("(")
		for i, a := range n.Children {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(p.renderAttrArg(a))
		}
		b.WriteString(")")
	}
	return b.String()
}

func (p *printer) renderAttrArg(n *ast.Node) string {
	if len(n.Children) == 0 {
		return ""
	}
	inner := n.Children[0]
	if inner.Kind == ast.Attribute {
		return p.renderAttrBody(inner)
	}
	return p.renderExpr(inner, false)
}

func (p *printer) renderGenericParams(n *ast.Node) string {
	if n == nil {
		return ""
	}
	var parts []string
	for _, gp := range n.Children {
		s := ""
		if gp.Value == "lifetime" {
			s = "'"
		}
		s += gp.Lexeme()
		if len(gp.Children) > 0 {
			var bounds []string
			for _, b := range gp.Children {
				bounds = append(bounds, p.renderType(b))
			}
			s += ": " + strings.Join(bounds, " + ")
		}
		parts = append(parts, s)
	}
	return "<" + strings.Join(parts, ", ") + ">"
}

func (p *printer) renderWhereClause(n *ast.Node) string {
	if n == nil || len(n.Children) == 0 {
		return ""
	}
	var parts []string
	for _, c := range n.Children {
		if len(c.Children) == 0 {
			continue
		}
		ty := p.renderType(c.Children[0])
		var bounds []string
		for _, b := range c.Children[1:] {
			bounds = append(bounds, p.renderType(b))
		}
		parts = append(parts, fmt.Sprintf("%s: %s", ty, strings.Join(bounds, " + ")))
	}
	return " where " + strings.Join(parts, ", ")
}

func (p *printer) printFuncDecl(n *ast.Node) {
	p.printAttrs(n.Attrs)
	p.buf.WriteString(p.indent())
	p.buf.WriteString(p.modifierPrefix(n))
	p.buf.WriteString("fn ")
	p.buf.WriteString(n.Lexeme())
	p.buf.WriteString(p.renderGenericParams(n.Generics))

	children := n.Children
	params := children[0]
	p.buf.WriteString(p.renderParams(params))

	rest := children[1:]
	if len(rest) > 0 && isTypeKind(rest[0].Kind) {
		p.buf.WriteString(" -> ")
		p.buf.WriteString(p.renderType(rest[0]))
		rest = rest[1:]
	}

	p.buf.WriteString(p.renderWhereClause(n.Where))

	body := rest[0]
	p.buf.WriteString(blockOpenSep(body))
	p.printBlockInline(body)
	p.buf.WriteString("\n")
}

/*
blockOpenSep returns the separator between a construct's header and its
block: a space before '{', nothing before the ':' an indented block renders
itself.
*/
func blockOpenSep(block *ast.Node) string {
	if block.Kind == ast.Block && block.Style == ast.StyleIndented {
		return ""
	}
	return " "
}

func (p *printer) renderParams(n *ast.Node) string {
	var parts []string
	for _, param := range n.Children {
		s := param.Lexeme()
		if len(param.Children) > 0 {
			s += ": " + p.renderType(param.Children[0])
		}
		parts = append(parts, s)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (p *printer) printDataClassDecl(n *ast.Node) {
	p.printAttrs(n.Attrs)
	p.buf.WriteString(p.indent())
	p.buf.WriteString(p.modifierPrefix(n))
	p.buf.WriteString("data ")
	p.buf.WriteString(n.Lexeme())
	p.buf.WriteString(p.renderGenericParams(n.Generics))
	p.buf.WriteString(p.renderWhereClause(n.Where))
	p.buf.WriteString(" {\n")
	p.depth++
	for _, f := range n.Children {
		p.printAttrs(f.Attrs)
		p.buf.WriteString(p.indent())
		p.buf.WriteString(p.modifierPrefix(f))
		p.buf.WriteString(f.Lexeme())
		if len(f.Children) > 0 {
			p.buf.WriteString(": ")
			p.buf.WriteString(p.renderType(f.Children[0]))
		}
		p.buf.WriteString(",\n")
	}
	p.depth--
	p.buf.WriteString(p.indent())
	p.buf.WriteString("}\n")
}

func (p *printer) printExternBlock(n *ast.Node) {
	p.buf.WriteString(p.indent())
	p.buf.WriteString("extern ")
	p.buf.WriteString(strconv.Quote(n.Value))
	p.buf.WriteString(" {\n")
	p.depth++
	for _, item := range n.Children {
		p.buf.WriteString(p.indent())
		switch item.Kind {
		case ast.ExternFuncDecl:
			p.buf.WriteString("fn ")
			p.buf.WriteString(item.Lexeme())
			params := item.Children[0]
			p.buf.WriteString(p.renderParams(params))
			if len(item.Children) > 1 {
				p.buf.WriteString(" -> ")
				p.buf.WriteString(p.renderType(item.Children[1]))
			}
			p.buf.WriteString(";\n")
		case ast.ExternStaticDecl:
			p.buf.WriteString(item.Value)
			p.buf.WriteString(" ")
			p.buf.WriteString(item.Lexeme())
			if len(item.Children) > 0 {
				p.buf.WriteString(": ")
				p.buf.WriteString(p.renderType(item.Children[0]))
			}
			p.buf.WriteString(";\n")
		}
	}
	p.depth--
	p.buf.WriteString(p.indent())
	p.buf.WriteString("}\n")
}

func (p *printer) renderVarDecl(n *ast.Node) string {
	var b strings.Builder
	if n.Modifiers.Has(ast.ModPublic) {
		b.WriteString("pub ")
	}
	b.WriteString(n.Value) // "let" or "var"
	b.WriteString(" ")
	b.WriteString(n.Lexeme())

	rest := n.Children
	if len(rest) > 0 && isTypeKind(rest[0].Kind) {
		b.WriteString(": ")
		b.WriteString(p.renderType(rest[0]))
		rest = rest[1:]
	}
	if len(rest) > 0 {
		b.WriteString(" = ")
		b.WriteString(p.renderExpr(rest[0], false))
	}
	b.WriteString(";")
	return b.String()
}

func (p *printer) printMacroDef(n *ast.Node) {
	p.buf.WriteString(p.indent())
	p.buf.WriteString("macro ")
	p.buf.WriteString(n.Lexeme())
	p.buf.WriteString(" {\n")
	p.depth++
	for _, rule := range n.Children {
		p.buf.WriteString(p.indent())
		p.buf.WriteString(p.renderTokenGroup(rule.Children[0]))
		p.buf.WriteString(" => ")
		p.buf.WriteString(p.renderTokenGroup(rule.Children[1]))
		p.buf.WriteString(";\n")
	}
	p.depth--
	p.buf.WriteString(p.indent())
	p.buf.WriteString("}\n")
}

func (p *printer) renderTokenGroup(n *ast.Node) string {
	open, close := "(", ")"
	switch n.Value {
	case "[]":
		open, close = "[", "]"
	case "{}":
		open, close = "{", "}"
	}
	var parts []string
	for _, t := range n.Children {
		if t.Kind == ast.TokenGroup {
			parts = append(parts, p.renderTokenGroup(t))
		} else {
			parts = append(parts, t.Lexeme())
		}
	}
	return open + strings.Join(parts, " ") + close
}

// isTypeKind reports whether n is a type-expression node (as opposed to an
// initializer/return/body node sharing the same Children slice position).
func isTypeKind(k ast.Kind) bool {
	switch k {
	case ast.TypeIdent, ast.TypeTuple, ast.TypeArray, ast.TypeFunc,
		ast.TypeExternFunc, ast.TypePointer, ast.TypeNullable, ast.TypeGeneric:
		return true
	}
	return false
}

// --- statements and blocks -------------------------------------------------

/*
printBlockInline writes block's opening token at the current buffer
position (no leading indent - the caller already wrote one) and its body
at depth+1, reproducing block.Style.
*/
func (p *printer) printBlockInline(block *ast.Node) {
	if block.Style == ast.StyleIndented {
		p.buf.WriteString(":\n")
	} else {
		p.buf.WriteString("{\n")
	}

	p.depth++
	for i, stmt := range block.Children {
		p.writeMeta(stmt, false)
		p.buf.WriteString(p.indent())
		if block.TrailingExpr && i == len(block.Children)-1 {
			p.buf.WriteString(p.renderExpr(stmt, false))
		} else {
			p.buf.WriteString(p.renderStmt(stmt))
		}
		p.buf.WriteString("\n")
	}
	p.depth--

	if block.Style == ast.StyleBraced {
		p.buf.WriteString(p.indent())
		p.buf.WriteString("}")
	}
}

func (p *printer) renderBlock(block *ast.Node) string {
	var b strings.Builder
	if block.Style == ast.StyleIndented {
		b.WriteString(":\n")
	} else {
		b.WriteString("{\n")
	}
	p.depth++
	for i, stmt := range block.Children {
		b.WriteString(p.indent())
		if block.TrailingExpr && i == len(block.Children)-1 {
			b.WriteString(p.renderExpr(stmt, false))
		} else {
			b.WriteString(p.renderStmt(stmt))
		}
		b.WriteString("\n")
	}
	p.depth--
	if block.Style == ast.StyleBraced {
		b.WriteString(p.indent())
		b.WriteString("}")
	}
	return b.String()
}

/*
renderStmt renders one statement (without its own indentation prefix).
*/
func (p *printer) renderStmt(n *ast.Node) string {
	switch n.Kind {
	case ast.ExprStmt:
		if len(n.Children) == 0 {
			return ";"
		}
		return p.renderExpr(n.Children[0], false) + ";"

	case ast.VarDecl:
		return p.renderVarDecl(n)

	case ast.ReturnStmt:
		if len(n.Children) == 0 {
			return "return;"
		}
		return "return " + p.renderExpr(n.Children[0], false) + ";"

	case ast.BreakStmt:
		if n.Label != "" {
			return "break '" + n.Label + ";"
		}
		return "break;"

	case ast.ContinueStmt:
		if n.Label != "" {
			return "continue '" + n.Label + ";"
		}
		return "continue;"

	case ast.WhileStmt:
		return p.labelPrefix(n) + "while " + p.renderExpr(n.Children[0], false) +
			blockOpenSep(n.Children[1]) + p.renderBlock(n.Children[1])

	case ast.ForInStmt:
		return p.labelPrefix(n) + "for " + p.renderPattern(n.Children[0]) + " in " +
			p.renderExpr(n.Children[1], false) + blockOpenSep(n.Children[2]) + p.renderBlock(n.Children[2])

	case ast.IfExpr, ast.MatchExpr:
		return p.renderExpr(n, false)

	case ast.Block:
		return p.labelPrefix(n) + p.tagPrefix(n) + p.renderBlock(n)

	case ast.LabeledBlock:
		return "'" + n.Label + ": " + p.renderBlock(n.Children[0])

	case ast.FuncDecl, ast.DataClassDecl, ast.ExternBlock, ast.MacroDef:
		return p.renderNestedItem(n)
	}

	return p.renderExpr(n, false)
}

func (p *printer) labelPrefix(n *ast.Node) string {
	if n.Label == "" {
		return ""
	}
	return "'" + n.Label + ": "
}

/*
tagPrefix renders the leading "unsafe "/"async " a Block carries when it was
parsed as a tagged block expression - parseTaggedBlockExpr stores the tag
keyword as the Block's own Token rather than wrapping it in another node.
*/
func (p *printer) tagPrefix(n *ast.Node) string {
	if n.Token == nil {
		return ""
	}
	return n.Token.Lexeme + " "
}

func (p *printer) renderNestedItem(n *ast.Node) string {
	sub := &printer{depth: p.depth}
	sub.printItem(n)
	out := strings.TrimRight(sub.buf.String(), "\n")
	// The caller already wrote the first line's indentation.
	return strings.TrimPrefix(out, p.indent())
}

// --- expressions -------------------------------------------------------

/*
renderExpr renders n (without its own indentation). needsParens wraps the
result in parentheses when the caller's context requires it to force the
original grouping - this printer always wraps a BinaryExpr or UnaryExpr
child nested inside another BinaryExpr/UnaryExpr rather than trying to
reconstruct binding powers, trading elegance for a printed form that is
guaranteed to re-parse to the same tree.
*/
func (p *printer) renderExpr(n *ast.Node, needsParens bool) string {
	s := p.renderExprInner(n)
	if needsParens {
		return "(" + s + ")"
	}
	return s
}

func (p *printer) renderExprInner(n *ast.Node) string {
	switch n.Kind {
	case ast.IntLit, ast.FloatLit, ast.CharLit, ast.BoolLit:
		return n.Lexeme()
	case ast.NullLit:
		return "null"
	case ast.StringLit:
		return strconv.Quote(n.Lexeme())
	case ast.Ident:
		return n.Lexeme()
	case ast.QualIdent:
		var parts []string
		for _, c := range n.Children {
			parts = append(parts, c.Lexeme())
		}
		return strings.Join(parts, "::")

	case ast.ParenExpr:
		return "(" + p.renderExpr(n.Children[0], false) + ")"

	case ast.TupleLit:
		var parts []string
		for _, c := range n.Children {
			parts = append(parts, p.renderExpr(c, false))
		}
		if len(parts) == 1 {
			return "(" + parts[0] + ",)"
		}
		return "(" + strings.Join(parts, ", ") + ")"

	case ast.ArrayLit:
		var parts []string
		for _, c := range n.Children {
			parts = append(parts, p.renderExpr(c, false))
		}
		return "[" + strings.Join(parts, ", ") + "]"

	case ast.UnaryExpr:
		operand := n.Children[0]
		return n.Lexeme() + p.renderExpr(operand, needsGroup(operand))

	case ast.BinaryExpr:
		op := n.Lexeme()
		switch len(n.Children) {
		case 0:
			// open-ended range with no operand on either side: '..' or '..='
			return op
		case 1:
			// A range with one bound: the bound is the low side iff it starts
			// where the whole expression's span starts.
			c := n.Children[0]
			if c.Span.Start == n.Span.Start {
				return p.renderExpr(c, needsGroup(c)) + op
			}
			return op + p.renderExpr(c, needsGroup(c))
		default:
			left := p.renderExpr(n.Children[0], needsGroup(n.Children[0]))
			right := p.renderExpr(n.Children[1], needsGroup(n.Children[1]))
			return fmt.Sprintf("%s %s %s", left, op, right)
		}

	case ast.CallExpr:
		callee := p.renderExpr(n.Children[0], false)
		args := n.Children[1]
		var parts []string
		for _, a := range args.Children {
			parts = append(parts, p.renderExpr(a, false))
		}
		return callee + "(" + strings.Join(parts, ", ") + ")"

	case ast.MemberExpr:
		return p.renderExpr(n.Children[0], false) + "." + n.Lexeme()

	case ast.AwaitExpr:
		return p.renderExpr(n.Children[0], false) + ".await"

	case ast.TryExpr:
		return p.renderExpr(n.Children[0], false) + "?"

	case ast.IndexExpr:
		return p.renderExpr(n.Children[0], false) + "[" + p.renderExpr(n.Children[1], false) + "]"

	case ast.MacroInvoke:
		name := n.Lexeme()
		if n.Value != "" {
			name = n.Value
		}
		return name + "!" + p.renderTokenGroup(n.Children[0])

	case ast.IfExpr:
		return p.renderIfExpr(n)

	case ast.MatchExpr:
		return p.renderMatchExpr(n)

	case ast.Block:
		return p.tagPrefix(n) + p.renderBlock(n)
	}

	errorutil.AssertTrue(false, fmt.Sprintf("printer: unhandled expression kind %v", n.Kind))
	return ""
}

func needsGroup(n *ast.Node) bool {
	switch n.Kind {
	case ast.BinaryExpr, ast.UnaryExpr:
		return true
	}
	return false
}

func (p *printer) renderIfExpr(n *ast.Node) string {
	var b strings.Builder
	b.WriteString("if ")
	b.WriteString(p.renderExpr(n.Children[0], false))
	then := n.Children[1]
	b.WriteString(blockOpenSep(then))
	b.WriteString(p.renderBlock(then))

	if len(n.Children) > 2 {
		tail := n.Children[2]
		// After a braced then-block the chain continues on the same line;
		// an indented then-block already ended its last line, so the
		// elif/else keyword starts a fresh line at the statement's indent.
		if then.Kind == ast.Block && then.Style == ast.StyleIndented {
			b.WriteString(p.indent())
		} else {
			b.WriteString(" ")
		}
		if tail.Kind == ast.IfExpr {
			b.WriteString("elif ")
			b.WriteString(strings.TrimPrefix(p.renderIfExpr(tail), "if "))
		} else {
			b.WriteString("else")
			b.WriteString(blockOpenSep(tail))
			b.WriteString(p.renderBlock(tail))
		}
	}
	return b.String()
}

func (p *printer) renderMatchExpr(n *ast.Node) string {
	var b strings.Builder
	b.WriteString("match ")
	b.WriteString(p.renderExpr(n.Children[0], false))
	b.WriteString(" {\n")
	p.depth++
	for _, arm := range n.Children[1:] {
		b.WriteString(p.indent())
		b.WriteString(p.renderPattern(arm.Children[0]))
		b.WriteString(" => ")
		body := arm.Children[1]
		if body.Kind == ast.Block {
			b.WriteString(p.renderBlock(body))
		} else {
			b.WriteString(p.renderExpr(body, false))
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	p.depth--
	b.WriteString(p.indent())
	b.WriteString("}")
	return b.String()
}

// --- types ---------------------------------------------------------------

func (p *printer) renderType(n *ast.Node) string {
	switch n.Kind {
	case ast.TypeIdent:
		s := n.Lexeme()
		if len(n.Children) > 0 {
			var args []string
			for _, c := range n.Children {
				args = append(args, p.renderType(c))
			}
			s += "<" + strings.Join(args, ", ") + ">"
		}
		return s

	case ast.TypeTuple:
		var parts []string
		for _, c := range n.Children {
			parts = append(parts, p.renderType(c))
		}
		return "(" + strings.Join(parts, ", ") + ")"

	case ast.TypeArray:
		return "[" + p.renderType(n.Children[0]) + "]"

	case ast.TypePointer:
		return "*" + p.renderType(n.Children[0])

	case ast.TypeNullable:
		return p.renderType(n.Children[0]) + "?"

	case ast.TypeFunc, ast.TypeExternFunc:
		var b strings.Builder
		hasRet := strings.HasSuffix(n.Value, "|hasret")
		abi := strings.TrimSuffix(n.Value, "|hasret")
		if n.Kind == ast.TypeExternFunc {
			b.WriteString("extern ")
			b.WriteString(strconv.Quote(abi))
			b.WriteString(" ")
		}
		b.WriteString("fn(")
		children := n.Children
		paramCount := len(children)
		if hasRet {
			paramCount--
		}
		var params []string
		for _, c := range children[:paramCount] {
			params = append(params, p.renderType(c))
		}
		b.WriteString(strings.Join(params, ", "))
		b.WriteString(")")
		if hasRet {
			b.WriteString(" -> ")
			b.WriteString(p.renderType(children[paramCount]))
		}
		return b.String()
	}

	errorutil.AssertTrue(false, fmt.Sprintf("printer: unhandled type kind %v", n.Kind))
	return ""
}

// --- patterns --------------------------------------------------------------

func (p *printer) renderPattern(n *ast.Node) string {
	switch n.Kind {
	case ast.PatWildcard:
		return "_"

	case ast.PatLiteral:
		return p.renderExpr(n.Children[0], false)

	case ast.PatIdent:
		return n.Lexeme()

	case ast.PatBinding:
		return n.Lexeme() + " @ " + p.renderPattern(n.Children[0])

	case ast.PatRange:
		op := ".."
		if n.Value == "inclusive" {
			op = "..="
		}
		var low, high string
		switch len(n.Children) {
		case 2:
			low = p.renderRangeBound(n.Children[0])
			high = p.renderRangeBound(n.Children[1])
		case 1:
			// A lone bound is the low side iff it starts where the whole
			// pattern's span starts (parseRangePattern only extends the span
			// past the operator when a low bound was supplied).
			if n.Children[0].Span.Start == n.Span.Start {
				low = p.renderRangeBound(n.Children[0])
			} else {
				high = p.renderRangeBound(n.Children[0])
			}
		}
		return low + op + high

	case ast.PatOr:
		var parts []string
		for _, c := range n.Children {
			parts = append(parts, p.renderPattern(c))
		}
		return strings.Join(parts, " | ")

	case ast.PatGuard:
		return p.renderPattern(n.Children[0]) + " if " + p.renderExpr(n.Children[1], false)

	case ast.PatTuple:
		var parts []string
		for _, c := range n.Children {
			parts = append(parts, p.renderPattern(c))
		}
		return "(" + strings.Join(parts, ", ") + ")"

	case ast.PatArray:
		var parts []string
		for _, c := range n.Children {
			parts = append(parts, p.renderPattern(c))
		}
		return "[" + strings.Join(parts, ", ") + "]"

	case ast.PatRest:
		return ".." + n.Lexeme()

	case ast.PatDataClass:
		var parts []string
		for _, f := range n.Children {
			parts = append(parts, p.renderFieldPattern(f))
		}
		return n.Lexeme() + " {" + strings.Join(parts, ", ") + "}"
	}

	errorutil.AssertTrue(false, fmt.Sprintf("printer: unhandled pattern kind %v", n.Kind))
	return ""
}

func (p *printer) renderRangeBound(n *ast.Node) string {
	if n.Kind == ast.PatLiteral {
		return p.renderExpr(n.Children[0], false)
	}
	return p.renderPattern(n)
}

func (p *printer) renderFieldPattern(n *ast.Node) string {
	if len(n.Children) == 0 {
		return n.Lexeme()
	}
	return n.Lexeme() + ": " + p.renderPattern(n.Children[0])
}
