package calc

import (
	"strings"
)

// node is a node in the abstract syntax tree of an expression. The kind
// fixes the number of kids: literals and names have none, unary operators
// one, binary operators two, and calls one per argument.
type node struct {
	kind nodeKind

	// name is the literal text for nodeNum, the identifier for nodeName, and
	// the function name for nodeCall.
	name string

	kids []*node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum  // numeric literal
	nodeName // variable reference

	nodeCall // builtin function applied to the kids

	nodeNeg  // negate kids[0]
	nodeFact // factorial of kids[0]
	nodeAbs  // absolute value of kids[0]

	nodeAdd      // kids[0] + kids[1]
	nodeSub      // kids[0] - kids[1]
	nodeMul      // kids[0] * kids[1]
	nodeDiv      // kids[0] / kids[1], true division
	nodeFloorDiv // kids[0] // kids[1], flooring
	nodeMod      // kids[0] % kids[1], sign follows the divisor
	nodePow      // kids[0] ^ kids[1]
)

func (k nodeKind) String() string {
	switch k {
	case nodeNum:
		return "Num"
	case nodeName:
		return "Name"
	case nodeCall:
		return "Call"
	case nodeNeg:
		return "Neg"
	case nodeFact:
		return "Fact"
	case nodeAbs:
		return "Abs"
	case nodeAdd:
		return "Add"
	case nodeSub:
		return "Sub"
	case nodeMul:
		return "Mul"
	case nodeDiv:
		return "Div"
	case nodeFloorDiv:
		return "FloorDiv"
	case nodeMod:
		return "Mod"
	case nodePow:
		return "Pow"
	default:
		return "None"
	}
}

// opname returns the source-level spelling of an operator kind. The unary
// and binary minus share a spelling; the lisp form disambiguates by arity.
func (k nodeKind) opname() string {
	switch k {
	case nodeNeg, nodeSub:
		return "-"
	case nodeFact:
		return "!"
	case nodeAbs:
		return "abs"
	case nodeAdd:
		return "+"
	case nodeMul:
		return "*"
	case nodeDiv:
		return "/"
	case nodeFloorDiv:
		return "//"
	case nodeMod:
		return "%"
	case nodePow:
		return "^"
	}
	return k.String()
}

func (n *node) String() string {
	var b strings.Builder
	n.lisp(&b)
	return b.String()
}

// lisp writes the fully parenthesized prefix form of the node: literals and
// names bare, everything else as (op kids...).
func (n *node) lisp(b *strings.Builder) {
	switch n.kind {
	case nodeNone:
		panic("calc: invalid node after writing " + b.String())
	case nodeNum, nodeName:
		b.WriteString(n.name)
	case nodeCall:
		b.WriteByte('(')
		b.WriteString(n.name)
		for _, k := range n.kids {
			b.WriteByte(' ')
			k.lisp(b)
		}
		b.WriteByte(')')
	default:
		b.WriteByte('(')
		b.WriteString(n.kind.opname())
		for _, k := range n.kids {
			b.WriteByte(' ')
			k.lisp(b)
		}
		b.WriteByte(')')
	}
}
