// Package lexer defines lexical analyzer.
package lexer

import (
	"regexp"
	"unicode/utf8"

	"github.com/ava12/exprdoc"
	"github.com/ava12/exprdoc/source"
)

// WrongCharError indicates that lexer cannot fetch any token at current position.
// Error message contains the rune at current source position.
const WrongCharError = exprdoc.LexicalErrors

// TokenType describes token type for specific capturing group of regular expression.
type TokenType struct {
	// Type contains token type, may be any value.
	Type int

	// TypeName contains token type name, may be any value.
	TypeName string
}

// Lexer performs lexical analysis of a source using regexp.Regexp.
// Lexer is immutable, stateless, and safe for concurrent use: current position is owned by the caller.
// Each token type that may be returned by lexer maps to its own regexp capturing group index.
// A match containing no captured groups is treated as insignificant lexeme (e.g. whitespace),
// in this case lexer tries to fetch a token again at new position.
// Every byte of the scanned range must belong to some lexeme.
type Lexer struct {
	types []TokenType
	re    *regexp.Regexp
}

// New creates new Lexer.
// Each n-th element of types describes token type for (n+1)-th regexp capturing group.
// Groups that have no description are treated as insignificant.
func New(re *regexp.Regexp, types []TokenType) *Lexer {
	ts := make([]TokenType, len(types))
	copy(ts, types)
	return &Lexer{types: ts, re: re}
}

func wrongCharError(s *source.Source, content []byte, pos int) *exprdoc.Error {
	r, _ := utf8.DecodeRune(content)
	return exprdoc.FormatErrorPos(source.NewPos(s, pos), WrongCharError, "wrong char \"%c\" (u+%x)", r, r)
}

func (l *Lexer) matchToken(src *source.Source, pos, end int) (*Token, int, error) {
	content := src.Content()[pos:end]
	match := l.re.FindSubmatchIndex(content)
	if len(match) == 0 || match[0] != 0 || match[1] <= match[0] {
		return nil, 0, wrongCharError(src, content, pos)
	}

	groups := len(match)
	if limit := (len(l.types) + 1) << 1; groups > limit {
		groups = limit
	}
	for i := 2; i < groups; i += 2 {
		if match[i] < 0 || match[i+1] < 0 {
			continue
		}

		t := l.types[(i>>1)-1]
		text := string(content[match[i]:match[i+1]])
		return NewToken(t.Type, t.TypeName, text, source.NewPos(src, pos+match[i])), match[1], nil
	}

	return nil, match[1], nil
}

// Next fetches token starting at byte position pos of src, scanning stops at byte position end.
// Returns fetched token and the position after it.
// Returns EoI token if there is nothing but insignificant lexemes left before end.
// Returns nil token and *exprdoc.Error if there is a lexical error.
func (l *Lexer) Next(src *source.Source, pos, end int) (*Token, int, error) {
	if end > src.Len() || end < 0 {
		end = src.Len()
	}
	for pos < end {
		tok, advance, e := l.matchToken(src, pos, end)
		if e != nil {
			return nil, pos, e
		}

		pos += advance
		if tok != nil {
			return tok, pos, nil
		}
	}

	return EoiToken(src, end), end, nil
}

// All fetches every token in [pos, end) range of src, the last one is always EoI token.
func (l *Lexer) All(src *source.Source, pos, end int) ([]*Token, error) {
	var (
		tok *Token
		e   error
	)
	res := make([]*Token, 0, 8)
	for {
		tok, pos, e = l.Next(src, pos, end)
		if e != nil {
			return nil, e
		}

		res = append(res, tok)
		if tok.Type() == EoiTokenType {
			return res, nil
		}
	}
}

// String returns regexp source used by lexer.
func (l *Lexer) String() string {
	return l.re.String()
}
