package symaths

import "symaths/internal/node"

// PrintPolicies configures Expression.Format. Build one with
// DefaultPrintPolicies and a chain of With* options rather than poking
// at node.PrintPolicies fields directly — the internal representation
// stays free to evolve independently of this surface.
type PrintPolicies struct {
	policies node.PrintPolicies
}

// PrintOption mutates a PrintPolicies under construction.
type PrintOption func(*PrintPolicies)

// DefaultPrintPolicies returns the zero-configuration policy used by
// String: no extra spacing, juxtaposition preferred over a literal '*'
// wherever it isn't ambiguous.
func DefaultPrintPolicies(opts ...PrintOption) PrintPolicies {
	p := PrintPolicies{policies: node.DefaultPrintPolicies()}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// WithSumSpacing sets the number of spaces printed after a sum's '+'/'-'
// joiners.
func WithSumSpacing(spaces int) PrintOption {
	return func(p *PrintPolicies) { p.policies.Sum.OperandSpaces = spaces }
}

// WithProductSpacing sets the number of spaces printed between a
// product's operands: after the '*' when one is printed, or on their own
// between juxtaposed operands.
func WithProductSpacing(spaces int) PrintOption {
	return func(p *PrintPolicies) { p.policies.Product.OperandSpaces = spaces }
}

// WithExplicitProductStars forces a literal '*' between every
// Multiplication operand pair, instead of juxtaposition.
func WithExplicitProductStars() PrintOption {
	return func(p *PrintPolicies) { p.policies.Product.UseStarsForSubexprs = true }
}

// WithPowerSpacing sets the spaces printed before and after a Power's
// '^'.
func WithPowerSpacing(before, after int) PrintOption {
	return func(p *PrintPolicies) {
		p.policies.Power.OperandSpacesBefore = before
		p.policies.Power.OperandSpacesAfter = after
	}
}
