package ast

import (
	"github.com/ava12/exprdoc"
	"github.com/ava12/exprdoc/lexer"
	"github.com/ava12/exprdoc/parser"
)

// Error codes used by encoder:
const (
	// UnsupportedArityError indicates an operator or function site that has no encoding:
	// a one-operand site with a symbol not registered as unary, a call with more than two arguments,
	// or (in strict mode) an unregistered binary function.
	UnsupportedArityError = exprdoc.EncodingErrors + iota

	// UnknownResultError indicates a malformed parse result.
	UnknownResultError
)

func encodingError(t *lexer.Token, code int, msg string, params ...any) *exprdoc.Error {
	if t == nil {
		return exprdoc.FormatError(code, msg, params...)
	}
	return exprdoc.FormatErrorPos(t, code, msg, params...)
}

func unsupportedArityError(r *parser.Result, symbol string, arity int) *exprdoc.Error {
	return encodingError(r.Token, UnsupportedArityError, "%q does not accept %d operand(s)", symbol, arity)
}

func unknownResultError(r *parser.Result) *exprdoc.Error {
	return encodingError(r.Token, UnknownResultError, "cannot encode %s %s", r.Kind, r)
}
