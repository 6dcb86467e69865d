package node

// Owner identifies the store a Handle was minted by. It is a plain string
// (a ksuid's text form in practice) so this package never needs to import
// internal/store — ownership is just an opaque tag here.
type Owner string

// Node is the tagged union of every expression variant. Exactly the
// fields relevant to Kind are populated; the rest are zero. Callers
// switch on Kind and read the matching fields directly rather than going
// through accessor methods, matching the sum-type style spec.md §9 asks
// for over a class hierarchy.
type Node struct {
	Kind Kind

	// KindSymbol
	Name string

	// KindConstant
	Value float64

	// KindNegation
	Child Handle

	// KindAddition, KindMultiplication
	Operands []Handle

	// KindPower
	Base     Handle
	Exponent Handle

	// KindFunctionCall
	FuncID uint32
	Args   []Handle

	owner Owner
}

// Handle is a reference to an interned Node. Two handles compare equal
// with == exactly when the subexpressions they denote are structurally
// equal; interning is what makes that true.
type Handle = *Node

// Owner reports which store minted this node.
func (n *Node) Owner() Owner { return n.owner }

// SetOwner tags n with its minting store. Called exactly once, by the
// store that allocates n, before the handle is ever returned to a caller.
func (n *Node) SetOwner(o Owner) { n.owner = o }

// Env binds symbol names to numeric values for Eval.
type Env map[string]float64

// FunctionRegistry resolves a builtin function id to its name (for
// rendering) and evaluates it at a numeric argument list. internal/node
// depends only on this interface; internal/builtins.Registry implements
// it, and internal/store never needs to know it exists.
type FunctionRegistry interface {
	Name(id uint32) (string, error)
	Eval(id uint32, args []float64) (float64, error)
	// ReduceCall rebuilds a call to id over already-reduced args using
	// the builtin's own reducer (identity for every function in this
	// registry today, but kept pluggable per-builtin).
	ReduceCall(b Builder, id uint32, args []Handle) (Handle, error)
}

// Builder is the node-construction surface the rewrite engine and the
// differentiator use to synthesize new expressions. internal/store.Library
// implements it; this package only declares the contract so rewrite/diff
// never need to import store directly.
type Builder interface {
	MakeSymbol(name string) (Handle, error)
	MakeConstant(v float64) (Handle, error)
	MakeNegation(h Handle) (Handle, error)
	MakeAdd(hs []Handle) (Handle, error)
	MakeMul(hs []Handle) (Handle, error)
	MakePow(base, exp Handle) (Handle, error)
	MakeDiv(a, b Handle) (Handle, error)
	MakeFunc(id uint32, args []Handle) (Handle, error)
}
