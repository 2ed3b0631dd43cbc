package ast

import (
	"strconv"

	"github.com/ava12/exprdoc/grammar"
	"github.com/ava12/exprdoc/parser"
)

// Encoder turns raw parse results into expression trees using grammar registry and fold direction.
// Encoder holds no state besides the grammar and is safe for concurrent use.
type Encoder struct {
	grammar *grammar.Grammar
}

// NewEncoder creates encoder for grammar g.
func NewEncoder(g *grammar.Grammar) *Encoder {
	return &Encoder{g}
}

// Encode classifies r by its shape and encodes it recursively:
// groups are unwrapped, constants and variables become leaves,
// one-operand sites become UnaryOp if the symbol is registered as unary,
// two-operand sites become BinaryOp, chains are folded according to grammar.
func (enc *Encoder) Encode(r *parser.Result) (Node, error) {
	if r == nil {
		return nil, encodingError(nil, UnknownResultError, "cannot encode empty result")
	}

	r = r.Unwrap()
	switch r.Kind {
	case parser.Constant:
		return NewConstant(r.Text), nil

	case parser.Variable:
		return NewVariable(r.Text), nil

	case parser.Prefix, parser.Postfix:
		if r.Arity() != 1 {
			return nil, unknownResultError(r)
		}
		return enc.encodeUnary(r, r.Text, r.Items[0])

	case parser.Call:
		switch r.Arity() {
		case 1:
			return enc.encodeUnary(r, r.Text, r.Items[0])
		case 2:
			return enc.encodeBinary(r, r.Text, r.Items[0], r.Items[1])
		default:
			return nil, unsupportedArityError(r, r.Text, r.Arity())
		}

	case parser.Chain:
		if r.Arity() < 2 || len(r.Ops) != r.Arity()-1 {
			return nil, unknownResultError(r)
		}
		if enc.grammar.Fold() == grammar.FoldLeft {
			return enc.foldLeft(r, r.Items, r.Ops)
		}
		return enc.foldRight(r, r.Items, r.Ops)
	}

	return nil, unknownResultError(r)
}

func (enc *Encoder) encodeUnary(site *parser.Result, symbol string, operand *parser.Result) (Node, error) {
	if !enc.grammar.Accepts(symbol, 1) {
		return nil, unsupportedArityError(site, symbol, 1)
	}

	if enc.grammar.IntegerOperand(symbol) {
		if c := operand.Unwrap(); c.Kind == parser.Constant {
			return NewUnary(symbol, NewConstant(integerText(c.Text))), nil
		}
	}

	n, e := enc.Encode(operand)
	if e != nil {
		return nil, e
	}
	return NewUnary(symbol, n), nil
}

func (enc *Encoder) encodeBinary(site *parser.Result, symbol string, left, right *parser.Result) (Node, error) {
	if !enc.grammar.Accepts(symbol, 2) {
		return nil, unsupportedArityError(site, symbol, 2)
	}

	l, e := enc.Encode(left)
	if e != nil {
		return nil, e
	}
	r, e := enc.Encode(right)
	if e != nil {
		return nil, e
	}
	return NewBinary(symbol, l, r), nil
}

// foldRight encodes [o0 p0 o1 p1 o2] as p0(o0, p1(o1, o2)).
func (enc *Encoder) foldRight(site *parser.Result, items []*parser.Result, ops []string) (Node, error) {
	if len(items) == 2 {
		return enc.encodeBinary(site, ops[0], items[0], items[1])
	}

	if !enc.grammar.Accepts(ops[0], 2) {
		return nil, unsupportedArityError(site, ops[0], 2)
	}
	l, e := enc.Encode(items[0])
	if e != nil {
		return nil, e
	}
	r, e := enc.foldRight(site, items[1:], ops[1:])
	if e != nil {
		return nil, e
	}
	return NewBinary(ops[0], l, r), nil
}

// foldLeft encodes [o0 p0 o1 p1 o2] as p1(p0(o0, o1), o2).
func (enc *Encoder) foldLeft(site *parser.Result, items []*parser.Result, ops []string) (Node, error) {
	if len(items) == 2 {
		return enc.encodeBinary(site, ops[0], items[0], items[1])
	}

	last := len(ops) - 1
	if !enc.grammar.Accepts(ops[last], 2) {
		return nil, unsupportedArityError(site, ops[last], 2)
	}
	l, e := enc.foldLeft(site, items[:last+1], ops[:last])
	if e != nil {
		return nil, e
	}
	r, e := enc.Encode(items[last+1])
	if e != nil {
		return nil, e
	}
	return NewBinary(ops[last], l, r), nil
}

// integerText renders numeric literal with no fractional digits, rounding half to even.
// Text that is not a number is returned as is.
func integerText(text string) string {
	v, e := strconv.ParseFloat(text, 64)
	if e != nil {
		return text
	}
	return strconv.FormatFloat(v, 'f', 0, 64)
}
