// Package builtins is the fixed registry of unary functions the core
// knows about: their names, numeric evaluators, and derivative rules.
// Adding a function means adding one entry here, never touching the
// node, store, rewrite, or diff packages.
package builtins

// ID identifies a builtin unary function. Kept distinct from the plain
// uint32 that node.Node.FuncID stores so this package is free to renumber
// without node callers caring, but convertible to it at that boundary.
type ID uint32

const (
	Cos ID = iota
	Sin
	Tan
	Acos
	Asin
	Atan
	Exp
	Ln
	Log10
	Cosh
	Sinh
	Tanh
	Sqrt
	Abs
)
