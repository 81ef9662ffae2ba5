/*
 * Ferra
 *
 * Copyright 2026 The Ferra Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package ast

import (
	"bytes"
	"fmt"

	"devt.de/krotik/common/stringutil"
	"github.com/ferra-lang/ferrac/token"
)

/*
Modifiers is the bitmask of the {public, unsafe, async} modifier set a
top-level item may carry where semantically valid. The textual order is
fixed as pub, then unsafe, then async; the bitmask does not encode order -
the parser rejects out-of-order modifiers before they ever reach a Node.
*/
type Modifiers uint8

const (
	ModPublic Modifiers = 1 << iota
	ModUnsafe
	ModAsync
)

func (m Modifiers) Has(f Modifiers) bool { return m&f != 0 }

/*
Comment is auxiliary source text attached to a Node - a pre-comment
(preceding the node) or a post-comment (trailing on the same line).
*/
type Comment struct {
	Pre  bool
	Text string
}

/*
Node is the single, homogeneous AST node shape. Every grammar production
is represented by one Kind-tagged Node rather than a distinct Go type per
production; see kind.go for which fields are meaningful for a given Kind.
Nodes are never mutated after construction and become invalid once their
owning Arena is reset.
*/
type Node struct {
	Kind     Kind
	Span     token.Span
	Token    *token.Token
	Children []*Node
	Attrs    []*Node
	Generics *Node
	Where    *Node
	Meta     []Comment

	Modifiers Modifiers
	Label     string
	// TrailingExpr marks that the last entry of Children in a Block is a
	// value-producing expression (block-as-expression) rather than a
	// statement.
	TrailingExpr bool
	// Style distinguishes a Block's opening syntax; see StyleBraced/StyleIndented.
	Style BlockStyle
	// Value carries kind-specific string payloads: an ABI literal, a
	// binding mode ("let"/"var"), a pattern-range variant, a macro
	// delimiter, etc. - see kind.go.
	Value string

	gen uint64 // arena generation this node was allocated under
}

/*
BlockStyle tags a Block as braced or indentation-delimited. The two styles
are first-class and are never normalized away during parsing; formatters
downstream may canonicalize, the parser preserves the choice.
*/
type BlockStyle int

const (
	StyleBraced BlockStyle = iota
	StyleIndented
)

func (s BlockStyle) String() string {
	if s == StyleIndented {
		return "indented"
	}
	return "braced"
}

/*
Lexeme returns the node's token lexeme, or "" if it carries no token.
*/
func (n *Node) Lexeme() string {
	if n.Token == nil {
		return ""
	}
	return n.Token.Lexeme
}

/*
String renders the node and its descendants as an indented debug tree.
*/
func (n *Node) String() string {
	var buf bytes.Buffer
	n.dump(0, &buf)
	return buf.String()
}

func (n *Node) dump(indent int, buf *bytes.Buffer) {
	buf.WriteString(stringutil.GenerateRollingString(" ", indent*2))

	buf.WriteString(kindName(n.Kind))
	if n.Kind == Block {
		fmt.Fprintf(buf, " (%v)", n.Style)
	}
	if n.Token != nil && n.Token.Lexeme != "" {
		fmt.Fprintf(buf, ": %v", n.Token.Lexeme)
	}
	if n.Label != "" {
		fmt.Fprintf(buf, " %q", n.Label)
	}
	buf.WriteString("\n")

	for _, a := range n.Attrs {
		a.dump(indent+1, buf)
	}
	if n.Generics != nil {
		n.Generics.dump(indent+1, buf)
	}
	if n.Where != nil {
		n.Where.dump(indent+1, buf)
	}
	for _, c := range n.Children {
		c.dump(indent+1, buf)
	}
}

var kindNames = map[Kind]string{
	CompilationUnit: "compilation-unit", FuncDecl: "func", DataClassDecl: "data",
	FieldDecl: "field", ExternBlock: "extern", ExternFuncDecl: "extern-fn",
	ExternStaticDecl: "extern-static", VarDecl: "var-decl", Params: "params", Param: "param",
	Statements: "statements", ExprStmt: "expr-stmt", ReturnStmt: "return", BreakStmt: "break",
	ContinueStmt: "continue", WhileStmt: "while", ForInStmt: "for-in", IfExpr: "if",
	Guard: "guard", MatchExpr: "match", MatchArm: "match-arm", Block: "block",
	LabeledBlock: "labeled-block",
	Ident:        "identifier", QualIdent: "qualified-identifier", IntLit: "int", FloatLit: "float",
	StringLit: "string", CharLit: "char", BoolLit: "bool", NullLit: "null",
	ParenExpr: "paren", TupleLit: "tuple", ArrayLit: "array", UnaryExpr: "unary",
	BinaryExpr: "binary", CallExpr: "call", Args: "args", MemberExpr: "member",
	AwaitExpr: "await", TryExpr: "try", IndexExpr: "index", MacroInvoke: "macro-invoke",
	MacroDef: "macro-def", MacroRule: "macro-rule",
	TokenLeaf: "token", TokenGroup: "token-group",
	TypeIdent: "type", TypeTuple: "type-tuple", TypeArray: "type-array",
	TypeFunc: "type-fn", TypeExternFunc: "type-extern-fn", TypePointer: "type-pointer",
	TypeNullable: "type-nullable", TypeGeneric: "type-generic",
	PatWildcard: "pat-wildcard", PatLiteral: "pat-literal", PatIdent: "pat-ident",
	PatDataClass: "pat-data", PatField: "pat-field", PatTuple: "pat-tuple",
	PatArray: "pat-array", PatRest: "pat-rest", PatRange: "pat-range", PatOr: "pat-or",
	PatGuard: "pat-guard", PatBinding: "pat-binding",
	GenericParams: "generic-params", GenericParam: "generic-param", WhereClause: "where",
	WhereConstraint: "where-constraint", Attribute: "attribute", AttrArg: "attr-arg",
}

func kindName(k Kind) string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}
