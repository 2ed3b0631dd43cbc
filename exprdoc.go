/*
Package exprdoc converts assignment statements ("name = expression") into a tree document
describing the operator/operand structure of each expression.

Consists of subpackages:
  - source: named source text with line and column positions;
  - lexer: regexp-based lexical analyzer;
  - grammar: token definitions, precedence table, and operator/function registry;
  - parser: turns token stream into raw (arity-ambiguous) parse results;
  - ast: encodes parse results into unary/binary expression trees;
  - document: assembles statements into a document and writes it as XML, JSON, or YAML;
  - cmd/exprdoc: console utility.

Typical usage is:

1. Create a grammar using grammar.New (or grammar.Default for the standard one).

2. Create document.Assembler for the grammar and feed it input lines.

3. Write the resulting document.Document with document.Write or document.WriteFile.
*/
package exprdoc

import (
	"errors"
	"fmt"
)

// Error classes used by subpackages, each class contains up to 99 error codes:
const (
	GrammarErrors  = 1   // used by grammar
	LexicalErrors  = 101 // used by lexer
	SyntaxErrors   = 201 // used by parser
	EncodingErrors = 301 // used by ast
	DocumentErrors = 401 // used by document
)

// Error is the error type used by exprdoc subpackages.
type Error struct {
	// Code contains non-zero error code.
	Code int

	// Message contains non-empty error message including source name and position information if provided.
	Message string

	// SourceName contains source name that caused this error or empty string.
	SourceName string

	// Line contains line number in source or 0.
	Line int

	// Col contains column number in source or 0.
	Col int
}

// SourcePos is used to retrieve source name and position information when constructing an error;
// source.Pos and lexer.Token implement this interface.
type SourcePos interface {
	// SourceName returns source name or empty string.
	SourceName() string
	// Line returns line number or 0.
	Line() int
	// Col returns column number or 0.
	Col() int
}

// NewError creates new Error structure.
// name, line, and col will be added to error message if provided (non-zero).
func NewError(code int, msg, name string, line, col int) *Error {
	if name != "" && line != 0 && col != 0 {
		msg += fmt.Sprintf(" in %s at line %d col %d", name, line, col)
	}
	return &Error{code, msg, name, line, col}
}

// Error simply returns Error.Message.
func (e *Error) Error() string {
	return e.Message
}

// Class returns error class (one of *Errors constants) for error code.
func (e *Error) Class() int {
	if e.Code <= 0 {
		return 0
	}
	return (e.Code-1)/100*100 + 1
}

// FormatError creates Error structure with no source and position information.
// params will be added to error message using fmt.Sprintf function.
func FormatError(code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, "", 0, 0)
}

// FormatErrorPos creates Error structure with source and position information.
// pos must not be nil.
// params will be added to error message using fmt.Sprintf function.
func FormatErrorPos(pos SourcePos, code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, pos.SourceName(), pos.Line(), pos.Col())
}

// Class returns the class of the first *Error found in e's chain or 0.
func Class(e error) int {
	var ee *Error
	if errors.As(e, &ee) {
		return ee.Class()
	}
	return 0
}

// Code returns the code of the first *Error found in e's chain or 0.
func Code(e error) int {
	var ee *Error
	if errors.As(e, &ee) {
		return ee.Code
	}
	return 0
}

// IsParseIncomplete reports whether e means that expression text does not match the grammar
// or has unparsed trailing text.
func IsParseIncomplete(e error) bool {
	c := Class(e)
	return c == LexicalErrors || c == SyntaxErrors
}
