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

/*
Kind tags every node produced by the parser core. The AST is homogeneous -
one Node struct shape carries every variant, distinguished by Kind, rather
than one Go type per grammar production. Which Children/Token/Value fields
are meaningful for a given Kind is documented alongside each constant.
*/
type Kind int

const (
	// Top level
	CompilationUnit Kind = iota
	FuncDecl                 // Children: [Params, ReturnType?, Block]; Token: name; Attrs/Generics/Where/Modifiers on node
	DataClassDecl             // Children: fields (FieldDecl); Token: name
	FieldDecl                 // Children: [Type]; Token: name
	ExternBlock               // Children: ExternFuncDecl/ExternStaticDecl; Token: ABI string
	ExternFuncDecl            // Children: [Params, Type?]; Token: name
	ExternStaticDecl          // Children: [Type]; Token: name
	VarDecl                   // Children: [Type?, Init?]; Token: name; Value: "let"|"var"
	Params                    // Children: Param*
	Param                     // Children: [Type?]; Token: name

	// Statements
	Statements     // Children: Stmt*
	ExprStmt       // Children: [Expr]
	ReturnStmt     // Children: [Expr?]
	BreakStmt      // Label: label (optional); Children: [Expr?]
	ContinueStmt   // Label: label (optional)
	WhileStmt      // Children: [Cond, Block]
	ForInStmt      // Children: [Pattern, Iter, Block]
	IfExpr         // Children: [Cond, Block, Else?]; Else is a nested IfExpr (elif) or a Block
	Guard          // Children: [Cond, Block] - one arm of an if/elif/else chain
	MatchExpr      // Children: [Scrutinee, MatchArm*]
	MatchArm       // Children: [Pattern, Body]; a guard is carried as a PatGuard pattern
	Block          // Children: Stmt*, optional trailing expression is last child when TrailingExpr is true
	LabeledBlock   // Children: [Block]; Label: label

	// Expressions
	Ident
	QualIdent // Children: Ident segments
	IntLit
	FloatLit
	StringLit
	CharLit
	BoolLit
	NullLit
	ParenExpr  // Children: [Expr]
	TupleLit   // Children: Expr*
	ArrayLit   // Children: Expr*
	UnaryExpr  // Children: [Operand]; Token: operator
	BinaryExpr // Children: [Left, Right]; Token: operator
	CallExpr   // Children: [Callee, Args]
	Args       // Children: Expr*
	MemberExpr // Children: [Base]; Token: field name
	AwaitExpr  // Children: [Base]
	TryExpr    // Children: [Base] (postfix '?')
	IndexExpr  // Children: [Base, Index]
	MacroInvoke // Children: [TokenTree]; Token: macro name
	MacroDef    // Children: MacroRule*; Token: macro name
	MacroRule   // Children: [Pattern TokenTree, Replacement TokenTree]

	// Token trees (macro bodies)
	TokenLeaf  // Token: the leaf token
	TokenGroup // Children: TokenTree*; Value: delimiter "()"|"[]"|"{}"

	// Type expressions
	TypeIdent     // Children: generic args (TypeExpr*); Token: name segments joined with ::
	TypeTuple     // Children: TypeExpr*
	TypeArray     // Children: [ElemType]
	TypeFunc      // Children: ParamTypes..., ReturnType?; Value marks return presence
	TypeExternFunc // Children: ParamTypes..., ReturnType?; Token: ABI string
	TypePointer   // Children: [Pointee]
	TypeNullable  // Children: [Inner]
	TypeGeneric   // Children: [Base, Args...]

	// Patterns
	PatWildcard
	PatLiteral  // Children: [Literal]
	PatIdent    // Token: binding name
	PatDataClass // Children: PatField*; Token: type name
	PatField    // Children: [Pattern] (empty for shorthand); Token: field name
	PatTuple    // Children: Pattern*
	PatArray    // Children: Pattern*, one of which may be PatRest
	PatRest     // Token: binding name (optional, for `..name`)
	PatRange    // Children: [Low?, High?]; Value: "inclusive"|"exclusive"
	PatOr       // Children: Pattern*
	PatGuard    // Children: [Pattern, Cond]
	PatBinding  // Children: [SubPattern]; Token: binding name

	// Generics / attributes
	GenericParams  // Children: GenericParam*
	GenericParam   // Children: Bound*; Token: name; Value: "lifetime" marks a 'a style param
	WhereClause    // Children: WhereConstraint*
	WhereConstraint // Children: [Type, Bound...]
	Attribute      // Children: AttrArg*; Token: name
	AttrArg        // Children: nested Attribute for Name(args) form, else a literal/ident leaf
)
