package node

import (
	"fmt"
	"math"
	"strings"
)

// Key returns a structural key for hash-consing: two not-yet-interned
// nodes that should collapse into the same handle produce the same key.
// Children are folded in by pointer identity, which the interning
// invariant guarantees is sound — two structurally-equal subtrees are
// always the same handle by the time a parent is built bottom-up.
func (n *Node) Key() string {
	var b strings.Builder
	switch n.Kind {
	case KindSymbol:
		b.WriteString("sym|")
		b.WriteString(n.Name)
	case KindConstant:
		fmt.Fprintf(&b, "const|%d", math.Float64bits(n.Value))
	case KindNegation:
		fmt.Fprintf(&b, "neg|%p", n.Child)
	case KindAddition:
		b.WriteString("add")
		for _, op := range n.Operands {
			fmt.Fprintf(&b, "|%p", op)
		}
	case KindMultiplication:
		b.WriteString("mul")
		for _, op := range n.Operands {
			fmt.Fprintf(&b, "|%p", op)
		}
	case KindPower:
		fmt.Fprintf(&b, "pow|%p|%p", n.Base, n.Exponent)
	case KindFunctionCall:
		fmt.Fprintf(&b, "func|%d", n.FuncID)
		for _, a := range n.Args {
			fmt.Fprintf(&b, "|%p", a)
		}
	}
	return b.String()
}
