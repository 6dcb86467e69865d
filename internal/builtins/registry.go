package builtins

import (
	"math"

	"symaths/internal/errs"
	"symaths/internal/node"
)

// DiffContext is the surface a derivative rule gets to recurse with: it
// can build new nodes and differentiate an argument subexpression with
// respect to the variable the enclosing internal/diff call closed over.
// internal/diff implements this; builtins never imports diff, which is
// what keeps func-call differentiation (needing the chain rule, i.e.
// recursion back into "differentiate this argument") from becoming an
// import cycle.
type DiffContext interface {
	Builder() node.Builder
	Differentiate(h node.Handle) (node.Handle, error)
}

// Entry is everything the core needs to know about one builtin: its
// display name, its numeric evaluator, and its chain-rule derivative.
// Reduce is the identity rewrite (rebuild with already-reduced args) — it
// exists as a field rather than being hardcoded in internal/rewrite so a
// future builtin with a real algebraic simplification (e.g. a constant
// folding table) has somewhere to put it.
type Entry struct {
	Name       string
	Eval       func(args []float64) (float64, error)
	Reduce     func(b node.Builder, args []node.Handle) (node.Handle, error)
	Derivative func(ctx DiffContext, args []node.Handle) (node.Handle, error)
}

// Registry is the fixed table of builtins, indexed by ID. It implements
// node.FunctionRegistry.
type Registry struct {
	entries map[uint32]Entry
}

// NewRegistry builds the standard registry of unary math functions.
func NewRegistry() *Registry {
	r := &Registry{entries: make(map[uint32]Entry)}
	for id, e := range standardEntries() {
		r.entries[uint32(id)] = e
	}
	return r
}

// Get looks up the entry for id.
func (r *Registry) Get(id uint32) (Entry, error) {
	e, ok := r.entries[id]
	if !ok {
		return Entry{}, errs.Newf(errs.UnknownFunction, "unknown function id %d", id)
	}
	return e, nil
}

// Name implements node.FunctionRegistry.
func (r *Registry) Name(id uint32) (string, error) {
	e, err := r.Get(id)
	if err != nil {
		return "", err
	}
	return e.Name, nil
}

// Eval implements node.FunctionRegistry.
func (r *Registry) Eval(id uint32, args []float64) (float64, error) {
	e, err := r.Get(id)
	if err != nil {
		return 0, err
	}
	return e.Eval(args)
}

// ReduceCall implements node.FunctionRegistry.
func (r *Registry) ReduceCall(b node.Builder, id uint32, args []node.Handle) (node.Handle, error) {
	e, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	return e.Reduce(b, args)
}

func checkArityFloat(args []float64) error {
	if len(args) != 1 {
		return errs.Newf(errs.ArityMismatch, "expected 1 argument, got %d", len(args))
	}
	return nil
}

func checkArity(args []node.Handle) error {
	if len(args) != 1 {
		return errs.Newf(errs.ArityMismatch, "expected 1 argument, got %d", len(args))
	}
	return nil
}

var ln10 = math.Log(10)

func standardEntries() map[ID]Entry {
	return map[ID]Entry{
		Cos: {
			Name: "cos",
			Eval: func(a []float64) (float64, error) {
				if err := checkArityFloat(a); err != nil {
					return 0, err
				}
				return math.Cos(a[0]), nil
			},
			Reduce:     identityReduce(Cos),
			Derivative: chainRule(func(b node.Builder, u node.Handle) (node.Handle, error) { return negSin(b, u) }),
		},
		Sin: {
			Name: "sin",
			Eval: func(a []float64) (float64, error) {
				if err := checkArityFloat(a); err != nil {
					return 0, err
				}
				return math.Sin(a[0]), nil
			},
			Reduce:     identityReduce(Sin),
			Derivative: chainRule(func(b node.Builder, u node.Handle) (node.Handle, error) { return b.MakeFunc(uint32(Cos), []node.Handle{u}) }),
		},
		Tan: {
			Name: "tan",
			Eval: func(a []float64) (float64, error) {
				if err := checkArityFloat(a); err != nil {
					return 0, err
				}
				return math.Tan(a[0]), nil
			},
			Reduce: identityReduce(Tan),
			Derivative: chainRule(func(b node.Builder, u node.Handle) (node.Handle, error) {
				tanU, err := b.MakeFunc(uint32(Tan), []node.Handle{u})
				if err != nil {
					return nil, err
				}
				two, err := b.MakeConstant(2)
				if err != nil {
					return nil, err
				}
				tanSq, err := b.MakePow(tanU, two)
				if err != nil {
					return nil, err
				}
				one, err := b.MakeConstant(1)
				if err != nil {
					return nil, err
				}
				return b.MakeAdd([]node.Handle{one, tanSq})
			}),
		},
		Asin: {
			Name: "asin",
			Eval: func(a []float64) (float64, error) {
				if err := checkArityFloat(a); err != nil {
					return 0, err
				}
				return math.Asin(a[0]), nil
			},
			Reduce:     identityReduce(Asin),
			Derivative: inverseTrigDerivative(false),
		},
		Acos: {
			Name: "acos",
			Eval: func(a []float64) (float64, error) {
				if err := checkArityFloat(a); err != nil {
					return 0, err
				}
				return math.Acos(a[0]), nil
			},
			Reduce:     identityReduce(Acos),
			Derivative: inverseTrigDerivative(true),
		},
		Atan: {
			Name: "atan",
			Eval: func(a []float64) (float64, error) {
				if err := checkArityFloat(a); err != nil {
					return 0, err
				}
				return math.Atan(a[0]), nil
			},
			Reduce: identityReduce(Atan),
			Derivative: chainRuleDiv(func(b node.Builder, u node.Handle) (node.Handle, error) {
				two, err := b.MakeConstant(2)
				if err != nil {
					return nil, err
				}
				uSq, err := b.MakePow(u, two)
				if err != nil {
					return nil, err
				}
				one, err := b.MakeConstant(1)
				if err != nil {
					return nil, err
				}
				return b.MakeAdd([]node.Handle{one, uSq})
			}),
		},
		Exp: {
			Name: "exp",
			Eval: func(a []float64) (float64, error) {
				if err := checkArityFloat(a); err != nil {
					return 0, err
				}
				return math.Exp(a[0]), nil
			},
			Reduce:     identityReduce(Exp),
			Derivative: chainRule(func(b node.Builder, u node.Handle) (node.Handle, error) { return b.MakeFunc(uint32(Exp), []node.Handle{u}) }),
		},
		Ln: {
			Name: "ln",
			Eval: func(a []float64) (float64, error) {
				if err := checkArityFloat(a); err != nil {
					return 0, err
				}
				return math.Log(a[0]), nil
			},
			Reduce:     identityReduce(Ln),
			Derivative: chainRuleDiv(func(b node.Builder, u node.Handle) (node.Handle, error) { return u, nil }),
		},
		Log10: {
			Name: "log10",
			Eval: func(a []float64) (float64, error) {
				if err := checkArityFloat(a); err != nil {
					return 0, err
				}
				return math.Log10(a[0]), nil
			},
			Reduce: identityReduce(Log10),
			Derivative: chainRuleDiv(func(b node.Builder, u node.Handle) (node.Handle, error) {
				c, err := b.MakeConstant(ln10)
				if err != nil {
					return nil, err
				}
				return b.MakeMul([]node.Handle{c, u})
			}),
		},
		Sinh: {
			Name: "sinh",
			Eval: func(a []float64) (float64, error) {
				if err := checkArityFloat(a); err != nil {
					return 0, err
				}
				return math.Sinh(a[0]), nil
			},
			Reduce:     identityReduce(Sinh),
			Derivative: chainRule(func(b node.Builder, u node.Handle) (node.Handle, error) { return b.MakeFunc(uint32(Cosh), []node.Handle{u}) }),
		},
		Cosh: {
			Name: "cosh",
			Eval: func(a []float64) (float64, error) {
				if err := checkArityFloat(a); err != nil {
					return 0, err
				}
				return math.Cosh(a[0]), nil
			},
			Reduce:     identityReduce(Cosh),
			Derivative: chainRule(func(b node.Builder, u node.Handle) (node.Handle, error) { return b.MakeFunc(uint32(Sinh), []node.Handle{u}) }),
		},
		Tanh: {
			Name: "tanh",
			Eval: func(a []float64) (float64, error) {
				if err := checkArityFloat(a); err != nil {
					return 0, err
				}
				return math.Tanh(a[0]), nil
			},
			Reduce: identityReduce(Tanh),
			Derivative: chainRule(func(b node.Builder, u node.Handle) (node.Handle, error) {
				tanhU, err := b.MakeFunc(uint32(Tanh), []node.Handle{u})
				if err != nil {
					return nil, err
				}
				two, err := b.MakeConstant(2)
				if err != nil {
					return nil, err
				}
				tanhSq, err := b.MakePow(tanhU, two)
				if err != nil {
					return nil, err
				}
				negTanhSq, err := b.MakeNegation(tanhSq)
				if err != nil {
					return nil, err
				}
				one, err := b.MakeConstant(1)
				if err != nil {
					return nil, err
				}
				return b.MakeAdd([]node.Handle{one, negTanhSq})
			}),
		},
		Sqrt: {
			Name: "sqrt",
			Eval: func(a []float64) (float64, error) {
				if err := checkArityFloat(a); err != nil {
					return 0, err
				}
				return math.Sqrt(a[0]), nil
			},
			Reduce: identityReduce(Sqrt),
			Derivative: chainRuleDiv(func(b node.Builder, u node.Handle) (node.Handle, error) {
				two, err := b.MakeConstant(2)
				if err != nil {
					return nil, err
				}
				sqrtU, err := b.MakeFunc(uint32(Sqrt), []node.Handle{u})
				if err != nil {
					return nil, err
				}
				return b.MakeMul([]node.Handle{two, sqrtU})
			}),
		},
		Abs: {
			Name: "abs",
			Eval: func(a []float64) (float64, error) {
				if err := checkArityFloat(a); err != nil {
					return 0, err
				}
				return math.Abs(a[0]), nil
			},
			Reduce: identityReduce(Abs),
			// abs is not differentiable at 0; this registry follows the
			// textbook convention of returning the chain-rule factor
			// itself (u'), leaving the sign discontinuity unmodeled.
			Derivative: func(ctx DiffContext, args []node.Handle) (node.Handle, error) {
				if err := checkArity(args); err != nil {
					return nil, err
				}
				return ctx.Differentiate(args[0])
			},
		},
	}
}

func identityReduce(id ID) func(node.Builder, []node.Handle) (node.Handle, error) {
	return func(b node.Builder, args []node.Handle) (node.Handle, error) {
		return b.MakeFunc(uint32(id), args)
	}
}

// chainRule builds u' * factor(u) for a derivative rule shaped like
// sin/cos/exp/sinh/cosh/tan/tanh, where factor constructs whatever f(u)
// the specific function's derivative needs.
func chainRule(factor func(node.Builder, node.Handle) (node.Handle, error)) func(DiffContext, []node.Handle) (node.Handle, error) {
	return func(ctx DiffContext, args []node.Handle) (node.Handle, error) {
		if err := checkArity(args); err != nil {
			return nil, err
		}
		u := args[0]
		du, err := ctx.Differentiate(u)
		if err != nil {
			return nil, err
		}
		b := ctx.Builder()
		f, err := factor(b, u)
		if err != nil {
			return nil, err
		}
		return b.MakeMul([]node.Handle{du, f})
	}
}

// chainRuleDiv builds u' / denom(u) for the ln/log10/atan/sqrt-shaped
// rules: denom constructs the divisor expression in terms of u.
func chainRuleDiv(denom func(node.Builder, node.Handle) (node.Handle, error)) func(DiffContext, []node.Handle) (node.Handle, error) {
	return func(ctx DiffContext, args []node.Handle) (node.Handle, error) {
		if err := checkArity(args); err != nil {
			return nil, err
		}
		u := args[0]
		du, err := ctx.Differentiate(u)
		if err != nil {
			return nil, err
		}
		b := ctx.Builder()
		d, err := denom(b, u)
		if err != nil {
			return nil, err
		}
		return b.MakeDiv(du, d)
	}
}

func negSin(b node.Builder, u node.Handle) (node.Handle, error) {
	sinU, err := b.MakeFunc(uint32(Sin), []node.Handle{u})
	if err != nil {
		return nil, err
	}
	return b.MakeNegation(sinU)
}

// inverseTrigDerivative builds asin'/acos' = (+/-u') / sqrt(1 - u^2).
func inverseTrigDerivative(negate bool) func(DiffContext, []node.Handle) (node.Handle, error) {
	return func(ctx DiffContext, args []node.Handle) (node.Handle, error) {
		if err := checkArity(args); err != nil {
			return nil, err
		}
		u := args[0]
		du, err := ctx.Differentiate(u)
		if err != nil {
			return nil, err
		}
		b := ctx.Builder()
		numerator := du
		if negate {
			numerator, err = b.MakeNegation(du)
			if err != nil {
				return nil, err
			}
		}
		two, err := b.MakeConstant(2)
		if err != nil {
			return nil, err
		}
		uSq, err := b.MakePow(u, two)
		if err != nil {
			return nil, err
		}
		negUSq, err := b.MakeNegation(uSq)
		if err != nil {
			return nil, err
		}
		one, err := b.MakeConstant(1)
		if err != nil {
			return nil, err
		}
		sum, err := b.MakeAdd([]node.Handle{one, negUSq})
		if err != nil {
			return nil, err
		}
		denom, err := b.MakeFunc(uint32(Sqrt), []node.Handle{sum})
		if err != nil {
			return nil, err
		}
		return b.MakeDiv(numerator, denom)
	}
}
