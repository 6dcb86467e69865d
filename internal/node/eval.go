package node

import (
	"math"

	"symaths/internal/errs"
)

// Eval computes the numeric value of h under env, resolving builtin
// function calls through reg. It fails with UnboundSymbol the first time
// it reaches a Symbol with no binding in env, and propagates whatever
// error reg.Eval returns for an unresolvable FunctionCall.
func Eval(h Handle, env Env, reg FunctionRegistry) (float64, error) {
	switch h.Kind {
	case KindSymbol:
		v, ok := env[h.Name]
		if !ok {
			return 0, errs.Newf(errs.UnboundSymbol, "symbol %q has no binding", h.Name)
		}
		return v, nil
	case KindConstant:
		return h.Value, nil
	case KindNegation:
		v, err := Eval(h.Child, env, reg)
		if err != nil {
			return 0, err
		}
		return -v, nil
	case KindAddition:
		sum := 0.0
		for _, op := range h.Operands {
			v, err := Eval(op, env, reg)
			if err != nil {
				return 0, err
			}
			sum += v
		}
		return sum, nil
	case KindMultiplication:
		prod := 1.0
		for _, op := range h.Operands {
			v, err := Eval(op, env, reg)
			if err != nil {
				return 0, err
			}
			prod *= v
		}
		return prod, nil
	case KindPower:
		base, err := Eval(h.Base, env, reg)
		if err != nil {
			return 0, err
		}
		exp, err := Eval(h.Exponent, env, reg)
		if err != nil {
			return 0, err
		}
		return math.Pow(base, exp), nil
	case KindFunctionCall:
		args := make([]float64, len(h.Args))
		for i, a := range h.Args {
			v, err := Eval(a, env, reg)
			if err != nil {
				return 0, err
			}
			args[i] = v
		}
		return reg.Eval(h.FuncID, args)
	default:
		return 0, errs.Newf(errs.UnknownFunction, "eval: unhandled node kind %v", h.Kind)
	}
}
