package symaths_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"symaths"
)

func TestReduceCollectsAdditionLikeTerms(t *testing.T) {
	var result string
	err := symaths.WithLibrary(func(l *symaths.Library) error {
		x, err := l.Symbol("x")
		require.NoError(t, err)
		three, err := l.Const(3)
		require.NoError(t, err)
		ten, err := l.Const(10)
		require.NoError(t, err)

		sum, err := three.Add(x.Expression(), ten)
		require.NoError(t, err)
		require.Equal(t, "3+x+10", sum.String())

		reduced, err := sum.Reduce()
		require.NoError(t, err)
		result = reduced.String()
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, "x+13", result)
}

func TestExpandThenReduceCubic(t *testing.T) {
	var result string
	err := symaths.WithLibrary(func(l *symaths.Library) error {
		x, err := l.Symbol("x")
		require.NoError(t, err)
		xe := x.Expression()
		two, _ := l.Const(2)
		six, _ := l.Const(6)

		xMinus2, err := xe.Sub(two)
		require.NoError(t, err)
		xPlus2, err := xe.Add(two)
		require.NoError(t, err)
		twoXPlus6, err := xe.Mul(two)
		require.NoError(t, err)
		twoXPlus6, err = twoXPlus6.Add(six)
		require.NoError(t, err)

		product, err := xMinus2.Mul(xPlus2, twoXPlus6)
		require.NoError(t, err)

		expanded, err := product.Expand()
		require.NoError(t, err)
		reduced, err := expanded.Reduce()
		require.NoError(t, err)
		result = reduced.String()
		return nil
	})
	require.NoError(t, err)
	// (x-2)(x+2)(2x+6) == 2x^3 + 6x^2 - 8x - 24; the middle term keeps its
	// sign baked into a Multiplication operand rather than the Addition
	// joiner, so the rendered form literally reads "...+-8x-24".
	require.Equal(t, "2x^3+6x^2+-8x-24", result)
}

func TestDifferentiatePolynomial(t *testing.T) {
	var result string
	err := symaths.WithLibrary(func(l *symaths.Library) error {
		x, err := l.Symbol("x")
		require.NoError(t, err)
		xe := x.Expression()
		two, _ := l.Const(2)
		three, _ := l.Const(3)

		xSq, err := xe.Pow(two)
		require.NoError(t, err)
		term, err := two.Mul(xSq)
		require.NoError(t, err)
		poly, err := term.Add(three)
		require.NoError(t, err)

		derivative, err := poly.Differentiate(x)
		require.NoError(t, err)
		result = derivative.String()
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, "4x", result)
}

func TestEvalRequiresFullEnvironment(t *testing.T) {
	err := symaths.WithLibrary(func(l *symaths.Library) error {
		x, _ := l.Symbol("x")
		_, err := x.Expression().Eval(nil)
		require.Error(t, err)
		v, err := x.Expression().Eval(map[string]float64{"x": 4})
		require.NoError(t, err)
		require.Equal(t, 4.0, v)
		return nil
	})
	require.NoError(t, err)
}

func TestHashConsingGivesHandleEquality(t *testing.T) {
	err := symaths.WithLibrary(func(l *symaths.Library) error {
		x1, _ := l.Symbol("x")
		x2, _ := l.Symbol("x")
		require.Equal(t, x1.Expression(), x2.Expression())

		c1, _ := l.Const(5)
		c2, _ := l.Const(5)
		require.Equal(t, c1, c2)
		return nil
	})
	require.NoError(t, err)
}

func TestAsSymbolRejectsNonSymbolRoot(t *testing.T) {
	err := symaths.WithLibrary(func(l *symaths.Library) error {
		c, _ := l.Const(5)
		_, err := symaths.AsSymbol(c)
		require.Error(t, err)
		return nil
	})
	require.NoError(t, err)
}

func TestTrigBuiltinDifferentiation(t *testing.T) {
	var result string
	err := symaths.WithLibrary(func(l *symaths.Library) error {
		x, err := l.Symbol("x")
		require.NoError(t, err)
		sinX, err := symaths.Sin(x.Expression())
		require.NoError(t, err)
		d, err := sinX.Differentiate(x)
		require.NoError(t, err)
		result = d.String()
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, "cos(x)", result)
}
