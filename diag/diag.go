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
Package diag implements the parser's structured diagnostic model: a closed
set of error kinds, severities, and a multi-error collector driving
synchronization-based recovery.

Messages follow a positive-first discipline: every default suggestion
states what was expected and how to fix it, never merely "invalid" or
"failed".
*/
package diag

import (
	"fmt"

	"github.com/ferra-lang/ferrac/token"
)

/*
Kind is the closed set of diagnostic kinds the parser core can raise.
*/
type Kind int

const (
	UnexpectedToken Kind = iota
	ExpectedExpression
	ExpectedStatement
	ExpectedType
	ExpectedBlock
	InvalidBlock
	MixedBlockStyles
	InconsistentIndentation
	InvalidIndentation
	VariableRedefinition
	UnexpectedEOF
	SyntaxError
	Internal
	RecoveryError
)

var kindNames = map[Kind]string{
	UnexpectedToken:         "UnexpectedToken",
	ExpectedExpression:      "ExpectedExpression",
	ExpectedStatement:       "ExpectedStatement",
	ExpectedType:            "ExpectedType",
	ExpectedBlock:           "ExpectedBlock",
	InvalidBlock:            "InvalidBlock",
	MixedBlockStyles:        "MixedBlockStyles",
	InconsistentIndentation: "InconsistentIndentation",
	InvalidIndentation:      "InvalidIndentation",
	VariableRedefinition:    "VariableRedefinition",
	UnexpectedEOF:           "UnexpectedEOF",
	SyntaxError:             "SyntaxError",
	Internal:                "Internal",
	RecoveryError:           "RecoveryError",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}

/*
Severity classifies how a Diagnostic affects the session.
*/
type Severity int

const (
	Warning Severity = iota
	SevError
	Fatal
)

func (s Severity) String() string {
	switch s {
	case Warning:
		return "warning"
	case Fatal:
		return "fatal"
	default:
		return "error"
	}
}

/*
defaultSeverity gives each Kind its default Severity. Internal is always
Fatal; RecoveryError is always a Warning; everything else defaults to
SevError but callers may elevate any diagnostic by policy.
*/
func defaultSeverity(k Kind) Severity {
	switch k {
	case Internal:
		return Fatal
	case RecoveryError:
		return Warning
	default:
		return SevError
	}
}

/*
Stable error codes, intended for external tooling. Only three are defined
by default; room is left for extension.
*/
const (
	CodeSyntax   = "E001"
	CodeInternal = "I001"
	CodeRecovery = "R001"
)

func defaultCode(k Kind) string {
	switch k {
	case Internal:
		return CodeInternal
	case RecoveryError:
		return CodeRecovery
	default:
		return CodeSyntax
	}
}

/*
Diagnostic is a single structured error: a span, a short message, an
optional suggestion, a severity, and an optional stable code.
*/
type Diagnostic struct {
	Kind       Kind
	Span       token.Span
	Message    string
	Suggestion string
	Severity   Severity
	Code       string
}

/*
New creates a Diagnostic with the default severity/code for its Kind and the
default suggestion if none is supplied.
*/
func New(kind Kind, span token.Span, message string) *Diagnostic {
	return &Diagnostic{
		Kind:       kind,
		Span:       span,
		Message:    message,
		Suggestion: defaultSuggestion(kind),
		Severity:   defaultSeverity(kind),
		Code:       defaultCode(kind),
	}
}

/*
WithSuggestion returns d with its Suggestion replaced, for call sites with a
more specific fix than the kind's default.
*/
func (d *Diagnostic) WithSuggestion(s string) *Diagnostic {
	d.Suggestion = s
	return d
}

func (d *Diagnostic) Error() string {
	if d.Suggestion != "" {
		return fmt.Sprintf("%s: %s (%s) - %s [%s]", d.Span, d.Message, d.Severity, d.Suggestion, d.Code)
	}
	return fmt.Sprintf("%s: %s (%s) [%s]", d.Span, d.Message, d.Severity, d.Code)
}

/*
defaultSuggestion gives each Kind a positive-first default suggestion. An
empty string is a valid default.
*/
func defaultSuggestion(k Kind) string {
	switch k {
	case UnexpectedToken:
		return "remove or replace the offending token"
	case ExpectedExpression:
		return "provide an expression here (an identifier, literal, or parenthesized expression)"
	case ExpectedStatement:
		return "provide a statement, or close the enclosing block"
	case ExpectedType:
		return "provide a type (an identifier, tuple, array, pointer, or function type)"
	case ExpectedBlock:
		return "open a block with '{' or ':' followed by an indented line"
	case InvalidBlock:
		return "check that the block is properly opened and closed"
	case MixedBlockStyles:
		return "use either braces or indentation consistently within this block"
	case InconsistentIndentation:
		return "align this line with the indentation established by the block's first statement"
	case InvalidIndentation:
		return "introduce deeper indentation only via a nested block"
	case VariableRedefinition:
		return "rename one of the bindings, or remove the duplicate declaration"
	case UnexpectedEOF:
		return "the input ends before this construct is complete"
	default:
		return ""
	}
}
