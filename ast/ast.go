// Package ast defines expression trees and the encoder turning raw parse results into them.
package ast

import "strings"

// LeafKind tells constants from variables.
type LeafKind int

const (
	ConstantLeaf LeafKind = iota
	VariableLeaf
)

var leafKindNames = []string{"constant", "variable"}

func (k LeafKind) String() string {
	if k < 0 || int(k) >= len(leafKindNames) {
		return "unknown"
	}
	return leafKindNames[k]
}

// Node is an expression tree node: *Leaf, *UnaryOp, or *BinaryOp.
type Node interface {
	// String returns the node in functional notation, e.g. "+(9, *(2, 3))".
	String() string

	node()
}

// Leaf is a constant or a variable.
// Value contains literal text as written in the source, except for integer-rendered operands.
type Leaf struct {
	Kind  LeafKind
	Value string
}

// UnaryOp is an operator or a function applied to a single operand.
type UnaryOp struct {
	Symbol  string
	Operand Node
}

// BinaryOp is an operator or a function applied to two operands.
type BinaryOp struct {
	Symbol      string
	Left, Right Node
}

func (*Leaf) node()     {}
func (*UnaryOp) node()  {}
func (*BinaryOp) node() {}

// NewConstant creates constant leaf.
func NewConstant(value string) *Leaf {
	return &Leaf{ConstantLeaf, value}
}

// NewVariable creates variable leaf.
func NewVariable(name string) *Leaf {
	return &Leaf{VariableLeaf, name}
}

// NewUnary creates unary operation node.
func NewUnary(symbol string, operand Node) *UnaryOp {
	return &UnaryOp{symbol, operand}
}

// NewBinary creates binary operation node.
func NewBinary(symbol string, left, right Node) *BinaryOp {
	return &BinaryOp{symbol, left, right}
}

func (l *Leaf) String() string {
	return l.Value
}

func (u *UnaryOp) String() string {
	var sb strings.Builder
	write(&sb, u)
	return sb.String()
}

func (b *BinaryOp) String() string {
	var sb strings.Builder
	write(&sb, b)
	return sb.String()
}

func write(sb *strings.Builder, n Node) {
	switch n := n.(type) {
	case *Leaf:
		sb.WriteString(n.Value)

	case *UnaryOp:
		sb.WriteString(n.Symbol)
		sb.WriteByte('(')
		write(sb, n.Operand)
		sb.WriteByte(')')

	case *BinaryOp:
		sb.WriteString(n.Symbol)
		sb.WriteByte('(')
		write(sb, n.Left)
		sb.WriteString(", ")
		write(sb, n.Right)
		sb.WriteByte(')')
	}
}

// Children returns operands of n in left-to-right order, nil for leaves.
func Children(n Node) []Node {
	switch n := n.(type) {
	case *UnaryOp:
		return []Node{n.Operand}
	case *BinaryOp:
		return []Node{n.Left, n.Right}
	default:
		return nil
	}
}

// Walk calls visit for n and then for each of its descendants in depth-first order,
// depth is 0 for n. Walking stops when visit returns false.
func Walk(n Node, visit func(n Node, depth int) bool) bool {
	return walk(n, 0, visit)
}

func walk(n Node, depth int, visit func(Node, int) bool) bool {
	if !visit(n, depth) {
		return false
	}
	for _, c := range Children(n) {
		if !walk(c, depth+1, visit) {
			return false
		}
	}
	return true
}

// Equal reports whether a and b are trees of the same shape with the same symbols and values.
func Equal(a, b Node) bool {
	switch a := a.(type) {
	case *Leaf:
		bl, ok := b.(*Leaf)
		return ok && *a == *bl

	case *UnaryOp:
		bu, ok := b.(*UnaryOp)
		return ok && a.Symbol == bu.Symbol && Equal(a.Operand, bu.Operand)

	case *BinaryOp:
		bb, ok := b.(*BinaryOp)
		return ok && a.Symbol == bb.Symbol && Equal(a.Left, bb.Left) && Equal(a.Right, bb.Right)
	}
	return false
}
