// Package rewrite implements the three pure node -> node transformations
// the core exposes: Sort (canonical operand order), Reduce (constant
// folding and like-term collection), and Expand (distributing
// multiplication over addition). Each is a standalone pass; Reduce
// internally finishes with a Sort, matching spec.md §4.C's "reduce first
// applies a variant-specific reducer, then applies sort".
package rewrite

import (
	"sort"

	"symaths/internal/node"
)

// Sort rebuilds h with Addition and Multiplication operands placed in
// canonical order, and Negation's child sorted. Every other variant
// (Symbol, Constant, Power, FunctionCall) is returned unchanged — sort
// does not descend into a Power's base/exponent or a FunctionCall's
// arguments, matching spec.md §4.C.1.
func Sort(b node.Builder, reg node.FunctionRegistry, h node.Handle) (node.Handle, error) {
	switch h.Kind {
	case node.KindAddition:
		return sortOperands(b, reg, h, false, b.MakeAdd)
	case node.KindMultiplication:
		return sortOperands(b, reg, h, true, b.MakeMul)
	case node.KindNegation:
		c, err := Sort(b, reg, h.Child)
		if err != nil {
			return nil, err
		}
		return b.MakeNegation(c)
	default:
		return h, nil
	}
}

func sortOperands(
	b node.Builder,
	reg node.FunctionRegistry,
	h node.Handle,
	groundFirst bool,
	build func([]node.Handle) (node.Handle, error),
) (node.Handle, error) {
	sorted := make([]node.Handle, len(h.Operands))
	for i, op := range h.Operands {
		s, err := Sort(b, reg, op)
		if err != nil {
			return nil, err
		}
		sorted[i] = s
	}
	var sortErr error
	sort.SliceStable(sorted, func(i, j int) bool {
		if sortErr != nil {
			return false
		}
		less, err := lessCanonical(b, reg, sorted[i], sorted[j], groundFirst)
		if err != nil {
			sortErr = err
		}
		return less
	})
	if sortErr != nil {
		return nil, sortErr
	}
	return build(sorted)
}

// lessCanonical is the shared ordering rule behind both Addition and
// Multiplication sort: groundness first (direction depends on the
// variant), then descending degree, then shorter rendered symbolic
// part, then lexical order of that symbolic part — rules 3-4 compare
// the operand with its numeric coefficient stripped (extractTerm's
// symbolic half), not the operand's own full rendered text, so "3a+2b"
// orders on "a" vs "b" rather than on "3a" vs "2b".
func lessCanonical(b node.Builder, reg node.FunctionRegistry, a, bNode node.Handle, groundFirst bool) (bool, error) {
	ga, gb := node.IsGround(a), node.IsGround(bNode)
	if ga != gb {
		if groundFirst {
			return ga, nil
		}
		return !ga, nil
	}
	da, db := node.Degree(a), node.Degree(bNode)
	if da != db {
		return da > db, nil
	}
	_, symA, err := extractTerm(b, reg, a)
	if err != nil {
		return false, err
	}
	_, symB, err := extractTerm(b, reg, bNode)
	if err != nil {
		return false, err
	}
	ra, err := node.Render(symA, node.DefaultPrintPolicies(), reg)
	if err != nil {
		return false, err
	}
	rb, err := node.Render(symB, node.DefaultPrintPolicies(), reg)
	if err != nil {
		return false, err
	}
	if len(ra) != len(rb) {
		return len(ra) < len(rb), nil
	}
	return ra < rb, nil
}
