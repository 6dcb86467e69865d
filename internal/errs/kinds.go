// Package errs defines the error kinds reported across the symaths core:
// the node store, the rewrite engine, and the differentiator all fail
// through these, never by panicking or by silently absorbing a fault.
package errs

// Kind identifies the category of a core failure. Callers match on Kind via
// errors.As, not on message text.
type Kind int

const (
	// UnboundSymbol is returned by Eval when the environment has no binding
	// for a symbol the expression actually needs.
	UnboundSymbol Kind = iota + 1
	// ArityMismatch is returned when a builtin unary function is evaluated
	// with a number of arguments other than one.
	ArityMismatch
	// UnknownFunction is returned when differentiation or evaluation
	// dispatches on a function id absent from the registry.
	UnknownFunction
	// InvalidFacade is returned constructing a Symbol facade from an
	// expression whose root is not a Symbol node.
	InvalidFacade
	// NoContext reports that no Library is process-wide current. The
	// store's Make* methods are called on an explicit Library and never
	// consult the current pointer, so none of them returns it.
	NoContext
	// ForeignHandle is returned when an operation observes a handle minted
	// by a different store than the one performing the operation.
	ForeignHandle
	// AllocationFailure reports that the arena could not grow; fatal.
	AllocationFailure
)

func (k Kind) String() string {
	switch k {
	case UnboundSymbol:
		return "unbound symbol"
	case ArityMismatch:
		return "arity mismatch"
	case UnknownFunction:
		return "unknown function"
	case InvalidFacade:
		return "invalid facade"
	case NoContext:
		return "no context"
	case ForeignHandle:
		return "foreign handle"
	case AllocationFailure:
		return "allocation failure"
	default:
		return "unknown error kind"
	}
}
