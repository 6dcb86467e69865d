// Package store owns node memory: a segmented arena backs every Node a
// Library interns, and a structural-key hash table collapses
// structurally-equal subexpressions onto one handle, so expression
// equality is handle equality everywhere else in the module.
package store

import (
	"github.com/segmentio/ksuid"

	"symaths/internal/errs"
	"symaths/internal/node"
)

// Library owns one arena and one interning table. It is the concrete
// type behind node.Builder. Every Make* method is safe to call
// concurrently: interning runs under mu, so concurrent callers are
// serialized in every build. The debug build (symaths_debug) swaps mu for
// a deadlock-detecting mutex; plain contention does not trigger it.
type Library struct {
	id       ksuid.KSUID
	mu       mutex
	arena    arena
	interned map[string]node.Handle
}

// NewLibrary creates an empty Library. If no Library is currently
// process-wide current, the new one becomes current (mirroring
// original_source's constructor-sets-current behavior).
func NewLibrary() *Library {
	l := &Library{
		id:       ksuid.New(),
		interned: make(map[string]node.Handle),
	}
	if Current() == nil {
		SetCurrent(l)
	}
	return l
}

// Close clears l from the process-wide current pointer if it is still
// installed there. It does not release arena memory; a Library's nodes
// live as long as the Library value itself is reachable.
func (l *Library) Close() {
	clearCurrentIfSame(l)
}

// ID returns l's identity, the tag every handle it mints carries as its
// Owner.
func (l *Library) ID() string {
	return l.id.String()
}

func (l *Library) checkOwner(h node.Handle) error {
	if h == nil {
		return errs.New(errs.ForeignHandle, "nil handle")
	}
	if h.Owner() != node.Owner(l.id.String()) {
		return errs.Newf(errs.ForeignHandle, "handle minted by a different Library")
	}
	return nil
}

func (l *Library) intern(proto *node.Node) (node.Handle, error) {
	key := proto.Key()
	l.mu.Lock()
	defer l.mu.Unlock()
	if h, ok := l.interned[key]; ok {
		return h, nil
	}
	h, err := l.arena.alloc()
	if err != nil {
		return nil, err
	}
	*h = *proto
	h.SetOwner(node.Owner(l.id.String()))
	l.interned[key] = h
	return h, nil
}

// MakeSymbol returns the handle for the Symbol named name, interning a
// fresh node the first time name is seen.
func (l *Library) MakeSymbol(name string) (node.Handle, error) {
	return l.intern(&node.Node{Kind: node.KindSymbol, Name: name})
}

// MakeConstant returns the handle for the Constant v.
func (l *Library) MakeConstant(v float64) (node.Handle, error) {
	return l.intern(&node.Node{Kind: node.KindConstant, Value: v})
}

// MakeNegation returns -h. A Negation of a Negation collapses to the
// inner child rather than building a double wrapper.
func (l *Library) MakeNegation(h node.Handle) (node.Handle, error) {
	if err := l.checkOwner(h); err != nil {
		return nil, err
	}
	if h.Kind == node.KindNegation {
		return h.Child, nil
	}
	return l.intern(&node.Node{Kind: node.KindNegation, Child: h})
}

// flatten splices any operand of kind into its own operand list, so
// MakeAdd(MakeAdd(a,b), c) produces the same three-operand Addition as
// MakeAdd(a, b, c) directly (spec.md §4.B: Addition/Multiplication are
// always built flat, never nested in the same kind).
func (l *Library) flatten(hs []node.Handle, kind node.Kind) ([]node.Handle, error) {
	out := make([]node.Handle, 0, len(hs))
	for _, h := range hs {
		if err := l.checkOwner(h); err != nil {
			return nil, err
		}
		if h.Kind == kind {
			out = append(out, h.Operands...)
			continue
		}
		out = append(out, h)
	}
	return out, nil
}

// MakeAdd builds a flattened Addition over hs. Zero operands is the
// additive identity Constant(0); one operand is returned unwrapped.
func (l *Library) MakeAdd(hs []node.Handle) (node.Handle, error) {
	flat, err := l.flatten(hs, node.KindAddition)
	if err != nil {
		return nil, err
	}
	switch len(flat) {
	case 0:
		return l.MakeConstant(0)
	case 1:
		return flat[0], nil
	}
	return l.intern(&node.Node{Kind: node.KindAddition, Operands: flat})
}

// MakeMul builds a flattened Multiplication over hs. Zero operands is
// the multiplicative identity Constant(1); one operand is returned
// unwrapped.
func (l *Library) MakeMul(hs []node.Handle) (node.Handle, error) {
	flat, err := l.flatten(hs, node.KindMultiplication)
	if err != nil {
		return nil, err
	}
	switch len(flat) {
	case 0:
		return l.MakeConstant(1)
	case 1:
		return flat[0], nil
	}
	return l.intern(&node.Node{Kind: node.KindMultiplication, Operands: flat})
}

// MakePow builds base^exp.
func (l *Library) MakePow(base, exp node.Handle) (node.Handle, error) {
	if err := l.checkOwner(base); err != nil {
		return nil, err
	}
	if err := l.checkOwner(exp); err != nil {
		return nil, err
	}
	return l.intern(&node.Node{Kind: node.KindPower, Base: base, Exponent: exp})
}

// MakeDiv builds a/b as a * b^(-1), following spec.md §4.B's note that
// division has no dedicated node kind.
func (l *Library) MakeDiv(a, b node.Handle) (node.Handle, error) {
	negOne, err := l.MakeConstant(-1)
	if err != nil {
		return nil, err
	}
	inv, err := l.MakePow(b, negOne)
	if err != nil {
		return nil, err
	}
	return l.MakeMul([]node.Handle{a, inv})
}

// MakeFunc builds a call to builtin id over args.
func (l *Library) MakeFunc(id uint32, args []node.Handle) (node.Handle, error) {
	for _, a := range args {
		if err := l.checkOwner(a); err != nil {
			return nil, err
		}
	}
	argsCopy := make([]node.Handle, len(args))
	copy(argsCopy, args)
	return l.intern(&node.Node{Kind: node.KindFunctionCall, FuncID: id, Args: argsCopy})
}
