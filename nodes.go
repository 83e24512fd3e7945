package calc

import (
	"strconv"
	"strings"
)

// node is a node in the syntax tree of an expression. Each node owns its
// children; nothing is shared between trees.
type node struct {
	kind nodeKind
	op   Operator

	// num is the value of a nodeNum.
	num float64
	// name is the variable name of a nodeVar or the function name of a
	// nodeCall.
	name string

	// left is the operand of a nodeUnary, the captured value of a nodeVar,
	// or the left side of a nodeBinary.
	left  *node
	right *node
	// args are the arguments of a nodeCall in order.
	args []*node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum    // num
	nodeVar    // evaluate left; name is informational
	nodeCall   // apply builtin name to args
	nodeBinary // evaluate left, right, then op
	nodeUnary  // evaluate left, then op
)

func (k nodeKind) String() string {
	switch k {
	case nodeNone:
		return "None"
	case nodeNum:
		return "Num"
	case nodeVar:
		return "Var"
	case nodeCall:
		return "Call"
	case nodeBinary:
		return "Binary"
	case nodeUnary:
		return "Unary"
	default:
		return "nodeKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// OpKind is the kind of an operator.
type OpKind int8

const (
	OpNone OpKind = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpPow
	OpPercent
	OpEqual
	OpAbs
	OpFactorial
)

// Operator is an operation applied by a binary or unary node. Depth is the
// step of a factorial: 1 for n!, 2 for n!!, and so on.
type Operator struct {
	Kind  OpKind
	Depth int
}

func (o Operator) String() string {
	switch o.Kind {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpPow:
		return "^"
	case OpPercent:
		return "%"
	case OpEqual:
		return "="
	case OpAbs:
		return "|"
	case OpFactorial:
		return strings.Repeat("!", o.Depth)
	default:
		return "?"
	}
}

func num(v float64) *node {
	return &node{kind: nodeNum, num: v}
}

func binary(l *node, op OpKind, r *node) *node {
	return &node{kind: nodeBinary, op: Operator{Kind: op}, left: l, right: r}
}

func unary(op Operator, n *node) *node {
	return &node{kind: nodeUnary, op: op, left: n}
}

// clone creates a deep copy of n.
func (n *node) clone() *node {
	if n == nil {
		return nil
	}
	m := *n
	m.left = n.left.clone()
	m.right = n.right.clone()
	if n.args != nil {
		m.args = make([]*node, len(n.args))
		for i, a := range n.args {
			m.args[i] = a.clone()
		}
	}
	return &m
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b, false)
	return b.String()
}

func (n *node) fmt(b *strings.Builder, square bool) {
	var l, r byte = '(', ')'
	if square {
		l, r = '[', ']'
	}
	switch n.kind {
	case nodeNum:
		b.WriteByte(l)
		b.WriteString(strconv.FormatFloat(n.num, 'g', -1, 64))
		b.WriteByte(r)
	case nodeVar:
		b.WriteString(n.name)
	case nodeCall:
		b.WriteString(n.name)
		b.WriteByte(l)
		for i, a := range n.args {
			if i > 0 {
				b.WriteString(", ")
			}
			a.fmt(b, !square)
		}
		b.WriteByte(r)
	case nodeBinary:
		b.WriteByte(l)
		n.left.fmt(b, !square)
		b.WriteByte(' ')
		b.WriteString(n.op.String())
		b.WriteByte(' ')
		n.right.fmt(b, !square)
		b.WriteByte(r)
	case nodeUnary:
		switch n.op.Kind {
		case OpSub:
			b.WriteByte('-')
			n.left.fmt(b, square)
		case OpAbs:
			b.WriteByte('|')
			n.left.fmt(b, square)
			b.WriteByte('|')
		case OpFactorial:
			n.left.fmt(b, square)
			b.WriteString(n.op.String())
		default:
			panic("calc: invalid unary operator " + n.op.String() + " after writing " + b.String())
		}
	default:
		// Invalid nodes use invalid characters.
		b.WriteString("$" + n.kind.String() + "$")
	}
}
