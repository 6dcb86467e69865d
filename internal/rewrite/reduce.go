package rewrite

import (
	"math"

	"symaths/internal/errs"
	"symaths/internal/node"
)

// eps is the tolerance every ground-value comparison in the reducer
// uses — exact float equality would make "2-2" fail to collapse to zero
// the instant a chain of operations introduces the smallest rounding
// error.
const eps = 1e-10

func approxEqual(a, b float64) bool { return math.Abs(a-b) < eps }
func approxZero(a float64) bool     { return math.Abs(a) < eps }

// Reduce applies h's variant-specific reducer — constant folding and
// like-term collection — and finishes with Sort, recursively: every
// nested reduction inside Reduce's own operand processing is itself a
// full Reduce call, so there is exactly one definition of "reduced" used
// throughout, at any depth.
func Reduce(b node.Builder, reg node.FunctionRegistry, h node.Handle) (node.Handle, error) {
	reduced, err := reduceOnce(b, reg, h)
	if err != nil {
		return nil, err
	}
	return Sort(b, reg, reduced)
}

func reduceOnce(b node.Builder, reg node.FunctionRegistry, h node.Handle) (node.Handle, error) {
	switch h.Kind {
	case node.KindSymbol, node.KindConstant:
		return h, nil
	case node.KindNegation:
		return reduceNegation(b, reg, h)
	case node.KindAddition:
		return reduceAddition(b, reg, h)
	case node.KindMultiplication:
		return reduceMultiplication(b, reg, h)
	case node.KindPower:
		return reducePower(b, reg, h)
	case node.KindFunctionCall:
		return reduceFunctionCall(b, reg, h)
	default:
		return nil, errs.Newf(errs.UnknownFunction, "reduce: unhandled node kind %v", h.Kind)
	}
}

func reduceNegation(b node.Builder, reg node.FunctionRegistry, h node.Handle) (node.Handle, error) {
	c, err := Reduce(b, reg, h.Child)
	if err != nil {
		return nil, err
	}
	if c.Kind == node.KindConstant {
		return b.MakeConstant(-c.Value)
	}
	return b.MakeNegation(c)
}

func reduceFunctionCall(b node.Builder, reg node.FunctionRegistry, h node.Handle) (node.Handle, error) {
	args := make([]node.Handle, len(h.Args))
	for i, a := range h.Args {
		r, err := Reduce(b, reg, a)
		if err != nil {
			return nil, err
		}
		args[i] = r
	}
	return reg.ReduceCall(b, h.FuncID, args)
}

func reducePower(b node.Builder, reg node.FunctionRegistry, h node.Handle) (node.Handle, error) {
	base, err := Reduce(b, reg, h.Base)
	if err != nil {
		return nil, err
	}
	exp, err := Reduce(b, reg, h.Exponent)
	if err != nil {
		return nil, err
	}
	if exp.Kind == node.KindConstant {
		if approxZero(exp.Value) {
			return b.MakeConstant(1)
		}
		if approxEqual(exp.Value, 1) {
			return base, nil
		}
		if base.Kind == node.KindConstant {
			return b.MakeConstant(math.Pow(base.Value, exp.Value))
		}
	}
	return b.MakePow(base, exp)
}

// extractTerm decomposes a reduced Addition operand into a numeric
// coefficient and the remaining symbolic part, so "2*x" and "x" collect
// into the same like-term entry as "3*x". A bare Negation flips the
// coefficient's sign rather than staying wrapped. Anything else
// (Symbol, Power, FunctionCall, Addition) has coefficient 1 and is its
// own symbolic part.
func extractTerm(b node.Builder, reg node.FunctionRegistry, h node.Handle) (float64, node.Handle, error) {
	switch h.Kind {
	case node.KindMultiplication:
		coeff := 1.0
		var symbolic []node.Handle
		for _, op := range h.Operands {
			if node.IsGround(op) {
				v, err := node.Eval(op, node.Env{}, reg)
				if err != nil {
					return 0, nil, err
				}
				coeff *= v
				continue
			}
			symbolic = append(symbolic, op)
		}
		switch len(symbolic) {
		case 0:
			c, err := b.MakeConstant(1)
			return coeff, c, err
		case 1:
			return coeff, symbolic[0], nil
		default:
			m, err := b.MakeMul(symbolic)
			if err != nil {
				return 0, nil, err
			}
			sorted, err := Sort(b, reg, m)
			return coeff, sorted, err
		}
	case node.KindNegation:
		coeff, sym, err := extractTerm(b, reg, h.Child)
		return -coeff, sym, err
	default:
		return 1, h, nil
	}
}

func reduceAddition(b node.Builder, reg node.FunctionRegistry, h node.Handle) (node.Handle, error) {
	reducedOperands := make([]node.Handle, len(h.Operands))
	for i, op := range h.Operands {
		r, err := Reduce(b, reg, op)
		if err != nil {
			return nil, err
		}
		reducedOperands[i] = r
	}

	type termEntry struct {
		symbolic node.Handle
		coeff    float64
	}
	constAcc := 0.0
	order := make([]node.Handle, 0, len(reducedOperands))
	entries := make(map[node.Handle]*termEntry, len(reducedOperands))

	for _, op := range reducedOperands {
		if node.IsGround(op) {
			v, err := node.Eval(op, node.Env{}, reg)
			if err != nil {
				return nil, err
			}
			constAcc += v
			continue
		}
		coeff, symbolic, err := extractTerm(b, reg, op)
		if err != nil {
			return nil, err
		}
		if e, ok := entries[symbolic]; ok {
			e.coeff += coeff
			continue
		}
		entries[symbolic] = &termEntry{symbolic: symbolic, coeff: coeff}
		order = append(order, symbolic)
	}

	var newOperands []node.Handle
	if !approxZero(constAcc) {
		c, err := b.MakeConstant(constAcc)
		if err != nil {
			return nil, err
		}
		newOperands = append(newOperands, c)
	}
	for _, sym := range order {
		e := entries[sym]
		if approxZero(e.coeff) {
			continue
		}
		if approxEqual(e.coeff, 1) {
			newOperands = append(newOperands, e.symbolic)
			continue
		}
		coeffNode, err := b.MakeConstant(e.coeff)
		if err != nil {
			return nil, err
		}
		term, err := b.MakeMul([]node.Handle{coeffNode, e.symbolic})
		if err != nil {
			return nil, err
		}
		newOperands = append(newOperands, term)
	}

	switch len(newOperands) {
	case 0:
		return b.MakeConstant(0)
	case 1:
		return newOperands[0], nil
	default:
		return b.MakeAdd(newOperands)
	}
}

func reduceMultiplication(b node.Builder, reg node.FunctionRegistry, h node.Handle) (node.Handle, error) {
	reducedOperands := make([]node.Handle, len(h.Operands))
	for i, op := range h.Operands {
		r, err := Reduce(b, reg, op)
		if err != nil {
			return nil, err
		}
		reducedOperands[i] = r
	}

	type baseEntry struct {
		base node.Handle
		exp  node.Handle
	}
	globalCoeff := 1.0
	negateResult := false
	order := make([]node.Handle, 0, len(reducedOperands))
	entries := make(map[node.Handle]*baseEntry, len(reducedOperands))

	for _, op := range reducedOperands {
		work := op
		if work.Kind == node.KindNegation {
			negateResult = !negateResult
			work = work.Child
		}
		if node.IsGround(work) {
			v, err := node.Eval(work, node.Env{}, reg)
			if err != nil {
				return nil, err
			}
			if approxZero(v) {
				return b.MakeConstant(0)
			}
			globalCoeff *= v
			continue
		}
		var base, exp node.Handle
		if work.Kind == node.KindPower {
			base, exp = work.Base, work.Exponent
		} else {
			base = work
			one, err := b.MakeConstant(1)
			if err != nil {
				return nil, err
			}
			exp = one
		}
		e, ok := entries[base]
		if !ok {
			entries[base] = &baseEntry{base: base, exp: exp}
			order = append(order, base)
			continue
		}
		combined, err := b.MakeAdd([]node.Handle{e.exp, exp})
		if err != nil {
			return nil, err
		}
		reducedExp, err := Reduce(b, reg, combined)
		if err != nil {
			return nil, err
		}
		e.exp = reducedExp
	}

	if negateResult {
		globalCoeff = -globalCoeff
	}

	var newOperands []node.Handle
	absCoeff := math.Abs(globalCoeff)
	if !approxEqual(absCoeff, 1) {
		c, err := b.MakeConstant(absCoeff)
		if err != nil {
			return nil, err
		}
		newOperands = append(newOperands, c)
	}
	for _, base := range order {
		e := entries[base]
		finalExp, err := Reduce(b, reg, e.exp)
		if err != nil {
			return nil, err
		}
		if finalExp.Kind == node.KindConstant {
			if approxZero(finalExp.Value) {
				continue
			}
			if approxEqual(finalExp.Value, 1) {
				newOperands = append(newOperands, e.base)
				continue
			}
		}
		term, err := b.MakePow(e.base, finalExp)
		if err != nil {
			return nil, err
		}
		newOperands = append(newOperands, term)
	}

	var result node.Handle
	var err error
	switch len(newOperands) {
	case 0:
		result, err = b.MakeConstant(1)
	case 1:
		result = newOperands[0]
	default:
		result, err = b.MakeMul(newOperands)
	}
	if err != nil {
		return nil, err
	}
	if globalCoeff < 0 {
		return b.MakeNegation(result)
	}
	return result, nil
}
