package symaths

import (
	"symaths/internal/builtins"
	"symaths/internal/diff"
	"symaths/internal/errs"
	"symaths/internal/node"
	"symaths/internal/rewrite"
)

// Expression is a handle into a Library's expression store. Two
// Expressions built from the same Library compare equal (==) exactly
// when they denote structurally identical expressions — the Library's
// hash-consing guarantee.
type Expression struct {
	lib *Library
	h   node.Handle
}

func (e Expression) checkInitialized() error {
	if e.lib == nil || e.h == nil {
		return errs.New(errs.InvalidFacade, "use of a zero-value Expression")
	}
	return nil
}

// Add returns e + others... (a flattened sum).
func (e Expression) Add(others ...Expression) (Expression, error) {
	if err := e.checkInitialized(); err != nil {
		return Expression{}, err
	}
	hs := append([]node.Handle{e.h}, handlesOf(others)...)
	return e.lib.wrap(e.lib.store.MakeAdd(hs))
}

// Sub returns e - other.
func (e Expression) Sub(other Expression) (Expression, error) {
	if err := e.checkInitialized(); err != nil {
		return Expression{}, err
	}
	neg, err := other.Neg()
	if err != nil {
		return Expression{}, err
	}
	return e.Add(neg)
}

// Mul returns e * others... (a flattened product).
func (e Expression) Mul(others ...Expression) (Expression, error) {
	if err := e.checkInitialized(); err != nil {
		return Expression{}, err
	}
	hs := append([]node.Handle{e.h}, handlesOf(others)...)
	return e.lib.wrap(e.lib.store.MakeMul(hs))
}

// Div returns e / other.
func (e Expression) Div(other Expression) (Expression, error) {
	if err := e.checkInitialized(); err != nil {
		return Expression{}, err
	}
	return e.lib.wrap(e.lib.store.MakeDiv(e.h, other.h))
}

// Neg returns -e.
func (e Expression) Neg() (Expression, error) {
	if err := e.checkInitialized(); err != nil {
		return Expression{}, err
	}
	return e.lib.wrap(e.lib.store.MakeNegation(e.h))
}

// Pow returns e ^ exponent.
func (e Expression) Pow(exponent Expression) (Expression, error) {
	if err := e.checkInitialized(); err != nil {
		return Expression{}, err
	}
	return e.lib.wrap(e.lib.store.MakePow(e.h, exponent.h))
}

// Eval evaluates e under env, an assignment from symbol name to value.
func (e Expression) Eval(env map[string]float64) (float64, error) {
	if err := e.checkInitialized(); err != nil {
		return 0, err
	}
	return node.Eval(e.h, node.Env(env), e.lib.reg)
}

// IsGround reports whether e contains no free symbol.
func (e Expression) IsGround() bool {
	if e.h == nil {
		return false
	}
	return node.IsGround(e.h)
}

// DependsOn reports whether e structurally contains other.
func (e Expression) DependsOn(other Expression) bool {
	if e.h == nil || other.h == nil {
		return false
	}
	return node.DependsOn(e.h, other.h)
}

// Sort returns e with Addition/Multiplication operands in canonical
// order.
func (e Expression) Sort() (Expression, error) {
	if err := e.checkInitialized(); err != nil {
		return Expression{}, err
	}
	return e.lib.wrap(rewrite.Sort(e.lib.store, e.lib.reg, e.h))
}

// Reduce folds constants and collects like terms/bases, finishing with
// a canonical Sort.
func (e Expression) Reduce() (Expression, error) {
	if err := e.checkInitialized(); err != nil {
		return Expression{}, err
	}
	return e.lib.wrap(rewrite.Reduce(e.lib.store, e.lib.reg, e.h))
}

// Expand distributes multiplication over addition, recursively.
func (e Expression) Expand() (Expression, error) {
	if err := e.checkInitialized(); err != nil {
		return Expression{}, err
	}
	return e.lib.wrap(rewrite.Expand(e.lib.store, e.lib.reg, e.h))
}

// Differentiate returns d(e)/d(wrt), fully reduced.
func (e Expression) Differentiate(wrt Symbol) (Expression, error) {
	if err := e.checkInitialized(); err != nil {
		return Expression{}, err
	}
	return e.lib.wrap(diff.Differentiate(e.lib.store, e.lib.reg, e.h, wrt.expr.h))
}

// String renders e with the default print policies.
func (e Expression) String() string {
	if err := e.checkInitialized(); err != nil {
		return "<invalid expression>"
	}
	s, err := node.Render(e.h, node.DefaultPrintPolicies(), e.lib.reg)
	if err != nil {
		return "<render error>"
	}
	return s
}

// Format renders e with custom print policies.
func (e Expression) Format(p PrintPolicies) (string, error) {
	if err := e.checkInitialized(); err != nil {
		return "", err
	}
	return node.Render(e.h, p.policies, e.lib.reg)
}

func handlesOf(exprs []Expression) []node.Handle {
	hs := make([]node.Handle, len(exprs))
	for i, e := range exprs {
		hs[i] = e.h
	}
	return hs
}

func unaryCall(e Expression, id builtins.ID) (Expression, error) {
	if err := e.checkInitialized(); err != nil {
		return Expression{}, err
	}
	return e.lib.wrap(e.lib.store.MakeFunc(uint32(id), []node.Handle{e.h}))
}

// Cos returns cos(e).
func Cos(e Expression) (Expression, error) { return unaryCall(e, builtins.Cos) }

// Sin returns sin(e).
func Sin(e Expression) (Expression, error) { return unaryCall(e, builtins.Sin) }

// Tan returns tan(e).
func Tan(e Expression) (Expression, error) { return unaryCall(e, builtins.Tan) }

// Acos returns acos(e).
func Acos(e Expression) (Expression, error) { return unaryCall(e, builtins.Acos) }

// Asin returns asin(e).
func Asin(e Expression) (Expression, error) { return unaryCall(e, builtins.Asin) }

// Atan returns atan(e).
func Atan(e Expression) (Expression, error) { return unaryCall(e, builtins.Atan) }

// Exp returns e^x expressed as the exponential function exp(e).
func Exp(e Expression) (Expression, error) { return unaryCall(e, builtins.Exp) }

// Ln returns the natural logarithm of e.
func Ln(e Expression) (Expression, error) { return unaryCall(e, builtins.Ln) }

// Log10 returns the base-10 logarithm of e.
func Log10(e Expression) (Expression, error) { return unaryCall(e, builtins.Log10) }

// Cosh returns cosh(e).
func Cosh(e Expression) (Expression, error) { return unaryCall(e, builtins.Cosh) }

// Sinh returns sinh(e).
func Sinh(e Expression) (Expression, error) { return unaryCall(e, builtins.Sinh) }

// Tanh returns tanh(e).
func Tanh(e Expression) (Expression, error) { return unaryCall(e, builtins.Tanh) }

// Sqrt returns the square root of e.
func Sqrt(e Expression) (Expression, error) { return unaryCall(e, builtins.Sqrt) }

// Abs returns the absolute value of e.
func Abs(e Expression) (Expression, error) { return unaryCall(e, builtins.Abs) }
