package store_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"symaths/internal/node"
	"symaths/internal/store"
)

func TestInterningCollapsesStructuralDuplicates(t *testing.T) {
	l := store.NewLibrary()
	defer l.Close()

	x1, err := l.MakeSymbol("x")
	require.NoError(t, err)
	x2, err := l.MakeSymbol("x")
	require.NoError(t, err)
	require.Same(t, x1, x2)

	c1, err := l.MakeConstant(3.5)
	require.NoError(t, err)
	c2, err := l.MakeConstant(3.5)
	require.NoError(t, err)
	require.Same(t, c1, c2)

	a1, err := l.MakeAdd([]node.Handle{x1, c1})
	require.NoError(t, err)
	a2, err := l.MakeAdd([]node.Handle{x2, c2})
	require.NoError(t, err)
	require.Same(t, a1, a2)
}

func TestMakeAddFlattensNestedAdditions(t *testing.T) {
	l := store.NewLibrary()
	defer l.Close()

	x, _ := l.MakeSymbol("x")
	y, _ := l.MakeSymbol("y")
	z, _ := l.MakeSymbol("z")

	inner, err := l.MakeAdd([]node.Handle{x, y})
	require.NoError(t, err)
	outer, err := l.MakeAdd([]node.Handle{inner, z})
	require.NoError(t, err)

	flat, err := l.MakeAdd([]node.Handle{x, y, z})
	require.NoError(t, err)

	require.Same(t, flat, outer)
	require.Len(t, outer.Operands, 3)
}

func TestMakeAddIdentityAndSingleton(t *testing.T) {
	l := store.NewLibrary()
	defer l.Close()

	zero, err := l.MakeAdd(nil)
	require.NoError(t, err)
	require.Equal(t, node.KindConstant, zero.Kind)
	require.Equal(t, 0.0, zero.Value)

	x, _ := l.MakeSymbol("x")
	single, err := l.MakeAdd([]node.Handle{x})
	require.NoError(t, err)
	require.Same(t, x, single)
}

func TestMakeMulIdentity(t *testing.T) {
	l := store.NewLibrary()
	defer l.Close()

	one, err := l.MakeMul(nil)
	require.NoError(t, err)
	require.Equal(t, node.KindConstant, one.Kind)
	require.Equal(t, 1.0, one.Value)
}

func TestMakeNegationCollapsesDoubleNegation(t *testing.T) {
	l := store.NewLibrary()
	defer l.Close()

	x, _ := l.MakeSymbol("x")
	neg, err := l.MakeNegation(x)
	require.NoError(t, err)
	require.NotSame(t, x, neg)

	back, err := l.MakeNegation(neg)
	require.NoError(t, err)
	require.Same(t, x, back)
}

func TestMakeDivBuildsPowerOfNegativeOne(t *testing.T) {
	l := store.NewLibrary()
	defer l.Close()

	x, _ := l.MakeSymbol("x")
	y, _ := l.MakeSymbol("y")
	div, err := l.MakeDiv(x, y)
	require.NoError(t, err)
	require.Equal(t, node.KindMultiplication, div.Kind)
	require.Len(t, div.Operands, 2)
	require.Equal(t, node.KindPower, div.Operands[1].Kind)
	require.Equal(t, -1.0, div.Operands[1].Exponent.Value)
}

func TestForeignHandleRejected(t *testing.T) {
	l1 := store.NewLibrary()
	defer l1.Close()
	l2 := store.NewLibrary()
	defer l2.Close()

	x, err := l1.MakeSymbol("x")
	require.NoError(t, err)

	_, err = l2.MakeNegation(x)
	require.Error(t, err)
}

func TestNewLibraryBecomesCurrentWhenNoneSet(t *testing.T) {
	require.Nil(t, store.Current())
	l := store.NewLibrary()
	require.Same(t, l, store.Current())
	l.Close()
	require.Nil(t, store.Current())
}

func TestCloseOnlyClearsIfStillCurrent(t *testing.T) {
	l1 := store.NewLibrary()
	l2 := store.NewLibrary()
	require.Same(t, l1, store.Current())
	// l2 never became current since l1 already was; closing it must not
	// disturb l1's claim on the current pointer.
	l2.Close()
	require.Same(t, l1, store.Current())
	l1.Close()
	require.Nil(t, store.Current())
}
