// Package parser turns expression text into raw parse results according to grammar.Grammar.
package parser

import (
	"regexp"
	"strings"

	"github.com/ava12/exprdoc/grammar"
	"github.com/ava12/exprdoc/lexer"
	"github.com/ava12/exprdoc/source"
)

const operandName = "number, name, or \"(\""

// Parser is a precedence-table driven parser.
// Parser holds no parsing state and is safe for concurrent use.
type Parser struct {
	levels   []grammar.Level
	literals []bool
	lexer    *lexer.Lexer
}

// New creates parser for grammar g.
func New(g *grammar.Grammar) *Parser {
	tokens := g.Tokens()
	types := make([]lexer.TokenType, 0, len(tokens))
	masks := make([]string, 0, len(tokens))
	literals := make([]bool, len(tokens))
	for i, t := range tokens {
		literals[i] = (t.Flags & grammar.LiteralToken) != 0
		if (t.Flags & grammar.AsideToken) != 0 {
			masks = append(masks, "(?:"+t.Re+")")
			continue
		}

		types = append(types, lexer.TokenType{Type: i, TypeName: t.Name})
		masks = append(masks, "("+t.Re+")")
	}

	re := regexp.MustCompile("(?s:" + strings.Join(masks, "|") + ")")
	return &Parser{g.Levels(), literals, lexer.New(re, types)}
}

// ParseString parses the whole text as a single expression.
func (p *Parser) ParseString(name, text string) (*Result, error) {
	src := source.New(name, []byte(text))
	return p.Parse(src, 0, src.Len())
}

// Parse parses [pos, end) range of src as a single expression.
// The whole range must be consumed, otherwise an error is returned.
func (p *Parser) Parse(src *source.Source, pos, end int) (*Result, error) {
	tokens, e := p.lexer.All(src, pos, end)
	if e != nil {
		return nil, e
	}

	pc := &parseContext{parser: p, tokens: tokens}
	res, e := pc.parseExpr()
	if e != nil {
		return nil, e
	}

	tok := pc.peek()
	if tok.Type() != lexer.EoiTokenType {
		if end < 0 || end > src.Len() {
			end = src.Len()
		}
		text := string(src.Content()[tok.Pos().Pos():end])
		return nil, unexpectedInputError(tok, strings.TrimSpace(text))
	}

	return res, nil
}

type parseContext struct {
	parser *Parser
	tokens []*lexer.Token
	index  int
}

func (pc *parseContext) peek() *lexer.Token {
	return pc.tokens[pc.index]
}

func (pc *parseContext) next() *lexer.Token {
	tok := pc.tokens[pc.index]
	if tok.Type() != lexer.EoiTokenType {
		pc.index++
	}
	return tok
}

// literal reports whether tok is an operator or punctuation lexeme.
func (pc *parseContext) literal(tok *lexer.Token) bool {
	t := tok.Type()
	return t >= 0 && t < len(pc.parser.literals) && pc.parser.literals[t]
}

func (pc *parseContext) isLiteral(tok *lexer.Token, text string) bool {
	return pc.literal(tok) && tok.Text() == text
}

func (pc *parseContext) levelOp(tok *lexer.Token, l grammar.Level) bool {
	return pc.literal(tok) && l.Has(tok.Text())
}

func (pc *parseContext) unexpected(expected string) error {
	tok := pc.peek()
	if tok.Type() == lexer.EoiTokenType {
		return unexpectedEoiError(tok, expected)
	}
	return unexpectedTokenError(tok, expected)
}

func (pc *parseContext) expect(text string) error {
	if !pc.isLiteral(pc.peek(), text) {
		return pc.unexpected("\"" + text + "\"")
	}
	pc.next()
	return nil
}

func (pc *parseContext) parseExpr() (*Result, error) {
	return pc.parseLevel(len(pc.parser.levels) - 1)
}

// parseLevel parses expression of level index, lower indexes bind tighter.
func (pc *parseContext) parseLevel(index int) (*Result, error) {
	if index < 0 {
		return pc.parseOperand()
	}

	l := pc.parser.levels[index]
	switch l.Fixity {
	case grammar.Prefix:
		return pc.parsePrefix(index, l)
	case grammar.Postfix:
		return pc.parsePostfix(index, l)
	}

	if l.Assoc == grammar.Right {
		return pc.parseRight(index, l)
	}
	return pc.parseChain(index, l)
}

func (pc *parseContext) parsePrefix(index int, l grammar.Level) (*Result, error) {
	tok := pc.peek()
	if !pc.levelOp(tok, l) {
		return pc.parseLevel(index - 1)
	}

	pc.next()
	operand, e := pc.parseLevel(index)
	if e != nil {
		return nil, e
	}

	return &Result{Kind: Prefix, Text: tok.Text(), Items: []*Result{operand}, Token: tok}, nil
}

func (pc *parseContext) parsePostfix(index int, l grammar.Level) (*Result, error) {
	res, e := pc.parseLevel(index - 1)
	if e != nil {
		return nil, e
	}

	for pc.levelOp(pc.peek(), l) {
		tok := pc.next()
		res = &Result{Kind: Postfix, Text: tok.Text(), Items: []*Result{res}, Token: res.Token}
	}
	return res, nil
}

// parseRight parses right-associative chain as nested two-operand chains: "a ^ b ^ c" is [a ^ [b ^ c]].
func (pc *parseContext) parseRight(index int, l grammar.Level) (*Result, error) {
	left, e := pc.parseLevel(index - 1)
	if e != nil || !pc.levelOp(pc.peek(), l) {
		return left, e
	}

	op := pc.next().Text()
	right, e := pc.parseLevel(index)
	if e != nil {
		return nil, e
	}

	return &Result{Kind: Chain, Ops: []string{op}, Items: []*Result{left, right}, Token: left.Token}, nil
}

// parseChain parses left-associative operators as a flat chain: "a - b - c" is [a - b - c].
// Folding is up to encoder.
func (pc *parseContext) parseChain(index int, l grammar.Level) (*Result, error) {
	first, e := pc.parseLevel(index - 1)
	if e != nil || !pc.levelOp(pc.peek(), l) {
		return first, e
	}

	res := &Result{Kind: Chain, Items: []*Result{first}, Token: first.Token}
	for pc.levelOp(pc.peek(), l) {
		res.Ops = append(res.Ops, pc.next().Text())
		item, e := pc.parseLevel(index - 1)
		if e != nil {
			return nil, e
		}

		res.Items = append(res.Items, item)
	}
	return res, nil
}

func (pc *parseContext) parseOperand() (*Result, error) {
	tok := pc.peek()
	switch tok.Type() {
	case grammar.FloatToken, grammar.IntToken:
		pc.next()
		return &Result{Kind: Constant, Text: tok.Text(), Token: tok}, nil

	case grammar.NameToken:
		pc.next()
		if pc.isLiteral(pc.peek(), grammar.OpenParen) {
			return pc.parseCall(tok)
		}
		return &Result{Kind: Variable, Text: tok.Text(), Token: tok}, nil
	}

	if pc.isLiteral(tok, grammar.OpenParen) {
		pc.next()
		item, e := pc.parseExpr()
		if e == nil {
			e = pc.expect(grammar.CloseParen)
		}
		if e != nil {
			return nil, e
		}

		return &Result{Kind: Group, Items: []*Result{item}, Token: tok}, nil
	}

	return nil, pc.unexpected(operandName)
}

func (pc *parseContext) parseCall(name *lexer.Token) (*Result, error) {
	pc.next()
	res := &Result{Kind: Call, Text: name.Text(), Token: name}
	for {
		arg, e := pc.parseExpr()
		if e != nil {
			return nil, e
		}

		res.Items = append(res.Items, arg)
		tok := pc.peek()
		if pc.isLiteral(tok, grammar.ArgSep) {
			pc.next()
			continue
		}
		if pc.isLiteral(tok, grammar.CloseParen) {
			pc.next()
			return res, nil
		}

		return nil, pc.unexpected("\",\" or \")\"")
	}
}
