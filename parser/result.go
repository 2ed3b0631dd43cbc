package parser

import (
	"strings"

	"github.com/ava12/exprdoc/lexer"
)

// Kind is the shape of a parse result.
type Kind int

const (
	// Constant is a numeric literal, Text contains literal text.
	Constant Kind = iota
	// Variable is a bare identifier, Text contains the name.
	Variable
	// Group is a parenthesized sub-expression, Items contains exactly one element.
	Group
	// Prefix is a prefix operator application, Text contains the symbol, Items contains the operand.
	Prefix
	// Postfix is a postfix operator application, Text contains the symbol, Items contains the operand.
	Postfix
	// Chain is a flat sequence of binary operators of the same precedence level:
	// Items contains N >= 2 operands, Ops contains N-1 symbols.
	Chain
	// Call is a function call, Text contains function name, Items contains one or more arguments.
	Call
)

var kindNames = []string{"constant", "variable", "group", "prefix", "postfix", "chain", "call"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Result is a raw parse result. Its arity is not resolved: a chain may contain any number
// of operands and a call may contain any number of arguments.
type Result struct {
	Kind  Kind
	Text  string
	Ops   []string
	Items []*Result

	// Token is the first token of the result, it is used for error positions.
	Token *lexer.Token
}

// Arity returns the number of operands or arguments, 0 for leaves.
func (r *Result) Arity() int {
	return len(r.Items)
}

// Unwrap returns the first non-group result nested in r.
func (r *Result) Unwrap() *Result {
	for r.Kind == Group && len(r.Items) == 1 {
		r = r.Items[0]
	}
	return r
}

// String returns compact textual form of the result, chains are enclosed in square brackets:
// "9 + 2 * 3" gives "[9 + [2 * 3]]".
func (r *Result) String() string {
	var sb strings.Builder
	r.write(&sb)
	return sb.String()
}

func (r *Result) write(sb *strings.Builder) {
	switch r.Kind {
	case Constant, Variable:
		sb.WriteString(r.Text)

	case Group:
		sb.WriteByte('(')
		r.writeItems(sb, ", ")
		sb.WriteByte(')')

	case Prefix:
		sb.WriteString(r.Text)
		r.writeItems(sb, "")

	case Postfix:
		r.writeItems(sb, "")
		sb.WriteString(r.Text)

	case Chain:
		sb.WriteByte('[')
		for i, item := range r.Items {
			if i > 0 {
				sb.WriteByte(' ')
				if i-1 < len(r.Ops) {
					sb.WriteString(r.Ops[i-1])
				}
				sb.WriteByte(' ')
			}
			item.write(sb)
		}
		sb.WriteByte(']')

	case Call:
		sb.WriteString(r.Text)
		sb.WriteByte('(')
		r.writeItems(sb, ", ")
		sb.WriteByte(')')
	}
}

func (r *Result) writeItems(sb *strings.Builder, sep string) {
	for i, item := range r.Items {
		if i > 0 {
			sb.WriteString(sep)
		}
		item.write(sb)
	}
}
