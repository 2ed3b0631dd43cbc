package parser

import (
	"github.com/ava12/exprdoc"
	"github.com/ava12/exprdoc/lexer"
)

// Error codes used by parser, all of them mean that expression text is not completely parsed:
const (
	// UnexpectedTokenError indicates a token that cannot appear at current position.
	UnexpectedTokenError = exprdoc.SyntaxErrors + iota

	// UnexpectedEoiError indicates that expression text ends prematurely.
	UnexpectedEoiError

	// UnexpectedInputError indicates unparsed text after a complete expression.
	UnexpectedInputError
)

func unexpectedTokenError(t *lexer.Token, expected string) *exprdoc.Error {
	return exprdoc.FormatErrorPos(t, UnexpectedTokenError, "unexpected %q, expecting %s", t.Text(), expected)
}

func unexpectedEoiError(t *lexer.Token, expected string) *exprdoc.Error {
	return exprdoc.FormatErrorPos(t, UnexpectedEoiError, "unexpected end of input, expecting %s", expected)
}

func unexpectedInputError(t *lexer.Token, text string) *exprdoc.Error {
	return exprdoc.FormatErrorPos(t, UnexpectedInputError, "unexpected %q", text)
}
