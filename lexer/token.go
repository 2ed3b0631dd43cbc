package lexer

import (
	"github.com/ava12/exprdoc/source"
)

// Token is a lexeme fetched by Lexer.
type Token struct {
	tokenType int
	typeName  string
	text      string
	pos       source.Pos
}

// NewToken creates a token at given source position.
func NewToken(tokenType int, typeName, text string, pos source.Pos) *Token {
	return &Token{tokenType, typeName, text, pos}
}

// Type returns token type, either a grammar token index or one of special negative types.
func (t *Token) Type() int {
	return t.tokenType
}

func (t *Token) TypeName() string {
	return t.typeName
}

func (t *Token) Text() string {
	return t.text
}

func (t *Token) Pos() source.Pos {
	return t.pos
}

func (t *Token) SourceName() string {
	return t.pos.SourceName()
}

func (t *Token) Line() int {
	return t.pos.Line()
}

func (t *Token) Col() int {
	return t.pos.Col()
}

const (
	// EoiTokenType is the type of the token returned at the end of input.
	EoiTokenType = -2

	// EoiTokenName is the type name for EoiTokenType.
	EoiTokenName = "-end-of-input-"
)

// EoiToken returns end-of-input token positioned at the end of s (or at end, if end < s.Len()).
func EoiToken(s *source.Source, end int) *Token {
	return &Token{tokenType: EoiTokenType, typeName: EoiTokenName, pos: source.NewPos(s, end)}
}
