package rewrite_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"symaths/internal/builtins"
	"symaths/internal/node"
	"symaths/internal/rewrite"
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

func TestReduceConstantFolding(t *testing.T) {
	l, reg := setup(t)
	c2, _ := l.MakeConstant(2)
	c3, _ := l.MakeConstant(3)
	sum, err := l.MakeAdd([]node.Handle{c2, c3})
	require.NoError(t, err)
	reduced, err := rewrite.Reduce(l, reg, sum)
	require.NoError(t, err)
	require.Equal(t, node.KindConstant, reduced.Kind)
	require.Equal(t, 5.0, reduced.Value)
}

func TestReduceLikeTermCollection(t *testing.T) {
	l, reg := setup(t)
	x, _ := l.MakeSymbol("x")
	c2, _ := l.MakeConstant(2)
	c3, _ := l.MakeConstant(3)

	// 2*x + 3*x -> 5x
	term1, _ := l.MakeMul([]node.Handle{c2, x})
	term2, _ := l.MakeMul([]node.Handle{c3, x})
	sum, err := l.MakeAdd([]node.Handle{term1, term2})
	require.NoError(t, err)
	reduced, err := rewrite.Reduce(l, reg, sum)
	require.NoError(t, err)
	require.Equal(t, "5x", render(t, reg, reduced))
}

func TestReduceOrdersDistinctSymbolsBySymbolicPartNotFullText(t *testing.T) {
	l, reg := setup(t)
	a, _ := l.MakeSymbol("a")
	b, _ := l.MakeSymbol("b")
	c2, _ := l.MakeConstant(2)
	c3, _ := l.MakeConstant(3)

	// 3*a + 2*b: same degree, same groundness, so the tie-break must
	// compare symbolic parts "a" vs "b", not the coefficient-prefixed
	// rendered text "3a" vs "2b" (which would sort "2b" first).
	term1, _ := l.MakeMul([]node.Handle{c3, a})
	term2, _ := l.MakeMul([]node.Handle{c2, b})
	sum, err := l.MakeAdd([]node.Handle{term1, term2})
	require.NoError(t, err)
	reduced, err := rewrite.Reduce(l, reg, sum)
	require.NoError(t, err)
	require.Equal(t, "3a+2b", render(t, reg, reduced))
}

func TestReduceDistributesCoefficientOverSharedAddition(t *testing.T) {
	l, reg := setup(t)
	x, _ := l.MakeSymbol("x")
	c2, _ := l.MakeConstant(2)
	c3a, _ := l.MakeConstant(3)
	c3b, _ := l.MakeConstant(3)

	xPlus3a, _ := l.MakeAdd([]node.Handle{x, c3a})
	xPlus3b, _ := l.MakeAdd([]node.Handle{x, c3b})
	term1, _ := l.MakeMul([]node.Handle{c2, xPlus3a})
	c3c, _ := l.MakeConstant(3)
	term2, _ := l.MakeMul([]node.Handle{c3c, xPlus3b})
	sum, err := l.MakeAdd([]node.Handle{term1, term2})
	require.NoError(t, err)

	reduced, err := rewrite.Reduce(l, reg, sum)
	require.NoError(t, err)
	require.Equal(t, "5(x+3)", render(t, reg, reduced))
}

func TestReducePowerExponentAccumulation(t *testing.T) {
	l, reg := setup(t)
	x, _ := l.MakeSymbol("x")
	c2, _ := l.MakeConstant(2)
	c9, _ := l.MakeConstant(9)

	xSq := mustPow(t, l, x, c2)
	term1, _ := l.MakeMul([]node.Handle{c2, xSq})
	term2, _ := l.MakeMul([]node.Handle{c9, x})
	sum, err := l.MakeAdd([]node.Handle{term1, term2})
	require.NoError(t, err)

	reduced, err := rewrite.Reduce(l, reg, sum)
	require.NoError(t, err)
	require.Equal(t, "2x^2+9x", render(t, reg, reduced))
}

func TestExpandDistributesMultiplicationOverAddition(t *testing.T) {
	l, reg := setup(t)
	x, _ := l.MakeSymbol("x")
	c2, _ := l.MakeConstant(2)

	xPlus2, _ := l.MakeAdd([]node.Handle{x, c2})
	xMinus2 := mustSub(t, l, x, c2)
	product, err := l.MakeMul([]node.Handle{xPlus2, xMinus2})
	require.NoError(t, err)

	expanded, err := rewrite.Expand(l, reg, product)
	require.NoError(t, err)
	reduced, err := rewrite.Reduce(l, reg, expanded)
	require.NoError(t, err)
	require.Equal(t, "x^2-4", render(t, reg, reduced))
}

func TestSortOrdersNonGroundBeforeGroundInAddition(t *testing.T) {
	l, reg := setup(t)
	x, _ := l.MakeSymbol("x")
	c5, _ := l.MakeConstant(5)
	sum, err := l.MakeAdd([]node.Handle{c5, x})
	require.NoError(t, err)
	sorted, err := rewrite.Sort(l, reg, sum)
	require.NoError(t, err)
	require.Same(t, x, sorted.Operands[0])
	require.Same(t, c5, sorted.Operands[1])
}

func mustPow(t *testing.T, b node.Builder, base, exp node.Handle) node.Handle {
	t.Helper()
	h, err := b.MakePow(base, exp)
	require.NoError(t, err)
	return h
}

func mustSub(t *testing.T, b node.Builder, a, c node.Handle) node.Handle {
	t.Helper()
	negC, err := b.MakeNegation(c)
	require.NoError(t, err)
	h, err := b.MakeAdd([]node.Handle{a, negC})
	require.NoError(t, err)
	return h
}
