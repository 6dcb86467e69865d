package rewrite

import (
	"symaths/internal/errs"
	"symaths/internal/node"
)

// Expand distributes multiplication over addition (Cartesian product of
// each factor's terms), recursively over the whole tree. It is a pure
// structural rewrite — it does not fold constants or collect like terms;
// callers chain Reduce afterward when they want both (spec.md §8's
// "expand then reduce" worked example).
func Expand(b node.Builder, reg node.FunctionRegistry, h node.Handle) (node.Handle, error) {
	switch h.Kind {
	case node.KindSymbol, node.KindConstant:
		return h, nil
	case node.KindNegation:
		c, err := Expand(b, reg, h.Child)
		if err != nil {
			return nil, err
		}
		return b.MakeNegation(c)
	case node.KindAddition:
		ops := make([]node.Handle, len(h.Operands))
		for i, op := range h.Operands {
			e, err := Expand(b, reg, op)
			if err != nil {
				return nil, err
			}
			ops[i] = e
		}
		return b.MakeAdd(ops)
	case node.KindPower:
		// (a+b)^n is left undistributed: spec.md's expand is defined in
		// terms of multiplication over addition, not a binomial rule.
		base, err := Expand(b, reg, h.Base)
		if err != nil {
			return nil, err
		}
		exp, err := Expand(b, reg, h.Exponent)
		if err != nil {
			return nil, err
		}
		return b.MakePow(base, exp)
	case node.KindFunctionCall:
		args := make([]node.Handle, len(h.Args))
		for i, a := range h.Args {
			e, err := Expand(b, reg, a)
			if err != nil {
				return nil, err
			}
			args[i] = e
		}
		return b.MakeFunc(h.FuncID, args)
	case node.KindMultiplication:
		return expandMultiplication(b, reg, h)
	default:
		return nil, errs.Newf(errs.UnknownFunction, "expand: unhandled node kind %v", h.Kind)
	}
}

func expandMultiplication(b node.Builder, reg node.FunctionRegistry, h node.Handle) (node.Handle, error) {
	operands := make([]node.Handle, len(h.Operands))
	for i, op := range h.Operands {
		e, err := Expand(b, reg, op)
		if err != nil {
			return nil, err
		}
		operands[i] = e
	}

	groups := make([][]node.Handle, len(operands))
	for i, op := range operands {
		if op.Kind == node.KindAddition {
			groups[i] = op.Operands
		} else {
			groups[i] = []node.Handle{op}
		}
	}

	combos := [][]node.Handle{nil}
	for _, g := range groups {
		next := make([][]node.Handle, 0, len(combos)*len(g))
		for _, c := range combos {
			for _, term := range g {
				nc := make([]node.Handle, len(c), len(c)+1)
				copy(nc, c)
				nc = append(nc, term)
				next = append(next, nc)
			}
		}
		combos = next
	}

	terms := make([]node.Handle, len(combos))
	for i, c := range combos {
		m, err := b.MakeMul(c)
		if err != nil {
			return nil, err
		}
		terms[i] = m
	}
	if len(terms) == 1 {
		return terms[0], nil
	}
	return b.MakeAdd(terms)
}
