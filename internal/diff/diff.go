// Package diff implements symbolic differentiation: building the raw
// derivative tree for an expression with respect to one symbol, then
// normalizing it once with internal/rewrite.Reduce.
package diff

import (
	"symaths/internal/builtins"
	"symaths/internal/errs"
	"symaths/internal/node"
	"symaths/internal/rewrite"
)

// Differentiate returns d(expr)/d(wrt), fully reduced. wrt must be a
// Symbol handle; every other node kind is treated as a constant with
// respect to it unless expr structurally depends on it.
func Differentiate(b node.Builder, reg *builtins.Registry, expr, wrt node.Handle) (node.Handle, error) {
	d := &differ{b: b, reg: reg, wrt: wrt}
	raw, err := d.derive(expr)
	if err != nil {
		return nil, err
	}
	return rewrite.Reduce(b, reg, raw)
}

// differ carries the builder, the registry (so FunctionCall derivatives
// can look up each builtin's rule), and the variable every recursive
// call differentiates with respect to. It implements
// builtins.DiffContext so a builtin's Derivative func can recurse back
// into derive for its own arguments without builtins importing this
// package.
type differ struct {
	b   node.Builder
	reg *builtins.Registry
	wrt node.Handle
}

func (d *differ) Builder() node.Builder { return d.b }

func (d *differ) Differentiate(h node.Handle) (node.Handle, error) {
	return d.derive(h)
}

func (d *differ) derive(h node.Handle) (node.Handle, error) {
	switch h.Kind {
	case node.KindConstant:
		return d.b.MakeConstant(0)
	case node.KindSymbol:
		if h == d.wrt {
			return d.b.MakeConstant(1)
		}
		return d.b.MakeConstant(0)
	case node.KindNegation:
		c, err := d.derive(h.Child)
		if err != nil {
			return nil, err
		}
		return d.b.MakeNegation(c)
	case node.KindAddition:
		return d.deriveAddition(h)
	case node.KindMultiplication:
		return d.deriveMultiplication(h)
	case node.KindPower:
		return d.derivePower(h)
	case node.KindFunctionCall:
		return d.deriveFunctionCall(h)
	default:
		return nil, errs.Newf(errs.UnknownFunction, "differentiate: unhandled node kind %v", h.Kind)
	}
}

func (d *differ) deriveAddition(h node.Handle) (node.Handle, error) {
	terms := make([]node.Handle, len(h.Operands))
	for i, op := range h.Operands {
		t, err := d.derive(op)
		if err != nil {
			return nil, err
		}
		terms[i] = t
	}
	return d.b.MakeAdd(terms)
}

// deriveMultiplication applies the generalized product rule: for each
// operand, differentiate it and multiply by every other operand
// untouched, then sum the results.
func (d *differ) deriveMultiplication(h node.Handle) (node.Handle, error) {
	terms := make([]node.Handle, len(h.Operands))
	for i, op := range h.Operands {
		du, err := d.derive(op)
		if err != nil {
			return nil, err
		}
		factors := make([]node.Handle, 0, len(h.Operands))
		factors = append(factors, du)
		for j, other := range h.Operands {
			if j == i {
				continue
			}
			factors = append(factors, other)
		}
		term, err := d.b.MakeMul(factors)
		if err != nil {
			return nil, err
		}
		terms[i] = term
	}
	return d.b.MakeAdd(terms)
}

// derivePower dispatches on which of base/exponent actually depend on
// wrt: neither means a constant zero derivative; base-only is the
// power rule; exponent-only is the exponential rule; both is the
// general case d/dx(f^g) = f^g * (g' * ln(f) + g * f'/f).
func (d *differ) derivePower(h node.Handle) (node.Handle, error) {
	baseDepends := node.DependsOn(h.Base, d.wrt)
	expDepends := node.DependsOn(h.Exponent, d.wrt)

	switch {
	case !baseDepends && !expDepends:
		return d.b.MakeConstant(0)
	case baseDepends && !expDepends:
		return d.derivePowerRule(h)
	case !baseDepends && expDepends:
		return d.deriveExponentialRule(h)
	default:
		return d.deriveGeneralPowerRule(h)
	}
}

// derivePowerRule builds exp * base^(exp-1) * base'.
func (d *differ) derivePowerRule(h node.Handle) (node.Handle, error) {
	dbase, err := d.derive(h.Base)
	if err != nil {
		return nil, err
	}
	one, err := d.b.MakeConstant(1)
	if err != nil {
		return nil, err
	}
	negOne, err := d.b.MakeNegation(one)
	if err != nil {
		return nil, err
	}
	expMinusOne, err := d.b.MakeAdd([]node.Handle{h.Exponent, negOne})
	if err != nil {
		return nil, err
	}
	powered, err := d.b.MakePow(h.Base, expMinusOne)
	if err != nil {
		return nil, err
	}
	return d.b.MakeMul([]node.Handle{h.Exponent, powered, dbase})
}

// deriveExponentialRule builds base^exp * ln(base) * exp'.
func (d *differ) deriveExponentialRule(h node.Handle) (node.Handle, error) {
	dexp, err := d.derive(h.Exponent)
	if err != nil {
		return nil, err
	}
	lnBase, err := d.b.MakeFunc(uint32(builtins.Ln), []node.Handle{h.Base})
	if err != nil {
		return nil, err
	}
	return d.b.MakeMul([]node.Handle{h, lnBase, dexp})
}

// deriveGeneralPowerRule builds base^exp * (exp' * ln(base) + exp * base'/base).
func (d *differ) deriveGeneralPowerRule(h node.Handle) (node.Handle, error) {
	dbase, err := d.derive(h.Base)
	if err != nil {
		return nil, err
	}
	dexp, err := d.derive(h.Exponent)
	if err != nil {
		return nil, err
	}
	lnBase, err := d.b.MakeFunc(uint32(builtins.Ln), []node.Handle{h.Base})
	if err != nil {
		return nil, err
	}
	left, err := d.b.MakeMul([]node.Handle{dexp, lnBase})
	if err != nil {
		return nil, err
	}
	dbaseOverBase, err := d.b.MakeDiv(dbase, h.Base)
	if err != nil {
		return nil, err
	}
	right, err := d.b.MakeMul([]node.Handle{h.Exponent, dbaseOverBase})
	if err != nil {
		return nil, err
	}
	sum, err := d.b.MakeAdd([]node.Handle{left, right})
	if err != nil {
		return nil, err
	}
	return d.b.MakeMul([]node.Handle{h, sum})
}

func (d *differ) deriveFunctionCall(h node.Handle) (node.Handle, error) {
	entry, err := d.reg.Get(h.FuncID)
	if err != nil {
		return nil, err
	}
	return entry.Derivative(d, h.Args)
}
