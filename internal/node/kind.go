// Package node defines the expression node model: the closed set of
// variants a symbolic expression can take, numeric evaluation, the
// structural predicates (groundness, dependency) the rewrite engine and
// differentiator rely on, and canonical textual rendering.
//
// Nodes are never constructed directly by callers of this package; the
// sibling internal/store package owns node memory and is the only writer.
// Everything here is read-only once a Node has been built.
package node

// Kind is the closed set of expression variants. Every transformation in
// the rewrite engine and differentiator switches over Kind exhaustively;
// there is no dynamic dispatch on node variants.
type Kind uint8

const (
	KindSymbol Kind = iota
	KindConstant
	KindNegation
	KindAddition
	KindMultiplication
	KindPower
	KindFunctionCall
)

func (k Kind) String() string {
	switch k {
	case KindSymbol:
		return "Symbol"
	case KindConstant:
		return "Constant"
	case KindNegation:
		return "Negation"
	case KindAddition:
		return "Addition"
	case KindMultiplication:
		return "Multiplication"
	case KindPower:
		return "Power"
	case KindFunctionCall:
		return "FunctionCall"
	default:
		return "Unknown"
	}
}

// TopPriority is higher than every composite variant priority; Symbol and
// Constant report it, so a leaf is never wrapped on the generic "parent
// has higher priority" rule. Top-level renders use noWrapPriority instead.
const TopPriority = 1 << 30

// noWrapPriority is lower than every real variant priority (including
// FunctionCall's 0); passing it as the parent priority guarantees a child
// is never wrapped on the generic "parent has higher priority" rule. It is
// what call arguments and top-level renders are evaluated against.
const noWrapPriority = -1

// Priority returns the fixed per-variant integer the printer consults to
// decide parenthesisation: a node binds tighter than its parent when its
// own priority is higher.
func (k Kind) Priority() int {
	switch k {
	case KindSymbol, KindConstant:
		return TopPriority
	case KindNegation:
		return negationPriority
	case KindAddition:
		return additionPriority
	case KindMultiplication:
		return multiplicationPriority
	case KindPower:
		return powerPriority
	case KindFunctionCall:
		return functionCallPriority
	default:
		return 0
	}
}

const (
	functionCallPriority   = 0
	additionPriority       = 1
	negationPriority       = 2
	multiplicationPriority = 2
	powerPriority          = 3
)
