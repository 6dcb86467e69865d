// Package symaths is a hash-consed symbolic expression library: build
// expressions once, get back the same handle for any structurally
// identical subexpression, then evaluate, reduce, sort, expand, or
// differentiate them.
package symaths

import (
	"symaths/internal/builtins"
	"symaths/internal/node"
	"symaths/internal/store"
)

// Library owns one expression store and the fixed builtin-function
// registry every Expression built from it resolves calls through.
type Library struct {
	store *store.Library
	reg   *builtins.Registry
}

// NewLibrary creates an empty Library. If no Library is currently
// process-wide current, this one becomes current — see WithLibrary for
// the recommended scoped-acquisition pattern instead of managing that
// by hand.
func NewLibrary() *Library {
	return &Library{
		store: store.NewLibrary(),
		reg:   builtins.NewRegistry(),
	}
}

// Close releases l as the process-wide current Library, if it still is
// one. It does not release any memory the Library allocated.
func (l *Library) Close() {
	l.store.Close()
}

// WithLibrary opens a fresh Library, runs fn with it, and always closes
// it afterward — even if fn returns an error or panics during fn.
func WithLibrary(fn func(l *Library) error) error {
	l := NewLibrary()
	defer l.Close()
	return fn(l)
}

// Symbol returns the named symbolic variable, interning it the first
// time name is seen in l.
func (l *Library) Symbol(name string) (Symbol, error) {
	h, err := l.store.MakeSymbol(name)
	if err != nil {
		return Symbol{}, err
	}
	return Symbol{expr: Expression{lib: l, h: h}}, nil
}

// Const returns the constant v.
func (l *Library) Const(v float64) (Expression, error) {
	h, err := l.store.MakeConstant(v)
	if err != nil {
		return Expression{}, err
	}
	return Expression{lib: l, h: h}, nil
}

func (l *Library) wrap(h node.Handle, err error) (Expression, error) {
	if err != nil {
		return Expression{}, err
	}
	return Expression{lib: l, h: h}, nil
}
