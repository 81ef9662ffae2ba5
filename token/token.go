/*
 * Ferra
 *
 * Copyright 2026 The Ferra Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package token

import "fmt"

/*
Token is a tagged value produced by the lexer: a Kind from the closed set
in kind.go, a lexeme (for identifiers and literals), and the Span it came
from. Comments and whitespace never reach the parser - the lexer strips
them - and Token is otherwise opaque to anything but its Kind and Lexeme.
*/
type Token struct {
	Kind   Kind
	Lexeme string
	Span   Span

	// Identifier is true when Lexeme is a raw, un-normalized identifier
	// rather than a decoded literal value.
	Identifier bool
}

func (t Token) String() string {
	switch {
	case t.Kind == EOF:
		return "EOF"
	case t.Kind == Error:
		return fmt.Sprintf("error: %s (%s)", t.Lexeme, t.Span)
	case t.Kind == String:
		return fmt.Sprintf("%q", t.Lexeme)
	case t.Kind.IsKeyword():
		return fmt.Sprintf("<%s>", t.Kind)
	default:
		return t.Kind.String()
	}
}
