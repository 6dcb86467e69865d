package diff_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"symaths/internal/builtins"
	"symaths/internal/diff"
	"symaths/internal/node"
	"symaths/internal/store"
)

func setup(t *testing.T) (*store.Library, *builtins.Registry) {
	t.Helper()
	l := store.NewLibrary()
	t.Cleanup(l.Close)
	return l, builtins.NewRegistry()
}

func render(t *testing.T, reg node.FunctionRegistry, h node.Handle) string {
	t.Helper()
	s, err := node.Render(h, node.DefaultPrintPolicies(), reg)
	require.NoError(t, err)
	return s
}

func TestDifferentiatePowerRule(t *testing.T) {
	l, reg := setup(t)
	x, _ := l.MakeSymbol("x")
	c3, _ := l.MakeConstant(3)
	xCubed, err := l.MakePow(x, c3)
	require.NoError(t, err)

	d, err := diff.Differentiate(l, reg, xCubed, x)
	require.NoError(t, err)
	require.Equal(t, "3x^2", render(t, reg, d))
}

func TestDifferentiateSumAndProduct(t *testing.T) {
	l, reg := setup(t)
	x, _ := l.MakeSymbol("x")
	c2, _ := l.MakeConstant(2)
	c3, _ := l.MakeConstant(3)

	// d/dx (2x^3 + 3x^2) == 6x^2 + 6x
	xCubed := mustPow(t, l, x, c3)
	xSq := mustPow(t, l, x, c2)
	term1, _ := l.MakeMul([]node.Handle{c2, xCubed})
	term2, _ := l.MakeMul([]node.Handle{c3, xSq})
	sum, err := l.MakeAdd([]node.Handle{term1, term2})
	require.NoError(t, err)

	d, err := diff.Differentiate(l, reg, sum, x)
	require.NoError(t, err)
	require.Equal(t, "6x^2+6x", render(t, reg, d))
}

func TestDifferentiateConstantIsZero(t *testing.T) {
	l, reg := setup(t)
	x, _ := l.MakeSymbol("x")
	c5, _ := l.MakeConstant(5)
	d, err := diff.Differentiate(l, reg, c5, x)
	require.NoError(t, err)
	require.Equal(t, node.KindConstant, d.Kind)
	require.Equal(t, 0.0, d.Value)
}

func TestDifferentiateUnrelatedSymbolIsZero(t *testing.T) {
	l, reg := setup(t)
	x, _ := l.MakeSymbol("x")
	y, _ := l.MakeSymbol("y")
	d, err := diff.Differentiate(l, reg, y, x)
	require.NoError(t, err)
	require.Equal(t, node.KindConstant, d.Kind)
	require.Equal(t, 0.0, d.Value)
}

func TestDifferentiateSin(t *testing.T) {
	l, reg := setup(t)
	x, _ := l.MakeSymbol("x")
	sinX, err := l.MakeFunc(uint32(builtins.Sin), []node.Handle{x})
	require.NoError(t, err)

	d, err := diff.Differentiate(l, reg, sinX, x)
	require.NoError(t, err)
	require.Equal(t, "cos(x)", render(t, reg, d))
}

func TestDifferentiateExponentialRule(t *testing.T) {
	l, reg := setup(t)
	x, _ := l.MakeSymbol("x")
	c2, _ := l.MakeConstant(2)
	twoPowX, err := l.MakePow(c2, x)
	require.NoError(t, err)

	d, err := diff.Differentiate(l, reg, twoPowX, x)
	require.NoError(t, err)

	// 2^x * ln(2) is the closed form; evaluate numerically instead of
	// pinning down a specific sort order for the commutative product.
	v, err := node.Eval(d, node.Env{"x": 3}, reg)
	require.NoError(t, err)
	require.InDelta(t, 5.545, v, 0.01)
}

func TestDifferentiateTanOfSquareIsConsistentWithFiniteDifference(t *testing.T) {
	l, reg := setup(t)
	x, _ := l.MakeSymbol("x")
	c2, _ := l.MakeConstant(2)
	xSq, err := l.MakePow(x, c2)
	require.NoError(t, err)
	tanXSq, err := l.MakeFunc(uint32(builtins.Tan), []node.Handle{xSq})
	require.NoError(t, err)

	d, err := diff.Differentiate(l, reg, tanXSq, x)
	require.NoError(t, err)

	const at = 0.7
	const h = 1e-5
	fPlus, err := node.Eval(tanXSq, node.Env{"x": at + h}, reg)
	require.NoError(t, err)
	fMinus, err := node.Eval(tanXSq, node.Env{"x": at - h}, reg)
	require.NoError(t, err)
	numeric := (fPlus - fMinus) / (2 * h)

	analytic, err := node.Eval(d, node.Env{"x": at}, reg)
	require.NoError(t, err)
	require.InDelta(t, numeric, analytic, 1e-3)
}

func mustPow(t *testing.T, b node.Builder, base, exp node.Handle) node.Handle {
	t.Helper()
	h, err := b.MakePow(base, exp)
	require.NoError(t, err)
	return h
}
