package node

import (
	"strconv"
	"strings"
)

// SumPolicy controls the spacing Addition prints after each +/- joiner,
// between the joiner and its right operand. No space is printed before
// the joiner.
type SumPolicy struct {
	OperandSpaces int
}

// ProductPolicy controls whether Multiplication always prints a literal
// '*' between operands, and how many spaces follow the '*' (or separate
// juxtaposed operands when no '*' is printed).
type ProductPolicy struct {
	OperandSpaces       int
	UseStarsForSubexprs bool
}

// PowerPolicy controls the spacing around a Power's '^'.
type PowerPolicy struct {
	OperandSpacesBefore int
	OperandSpacesAfter  int
}

// PrintPolicies is the full set of knobs Render consults. It is the only
// configuration surface the core exposes — there is no file, env var, or
// flag parsing here (spec.md §6).
type PrintPolicies struct {
	Sum     SumPolicy
	Product ProductPolicy
	Power   PowerPolicy
}

// DefaultPrintPolicies is the zero-configuration rendering used by the
// worked examples: no extra spacing, juxtaposition preferred over a
// literal '*' wherever it isn't ambiguous.
func DefaultPrintPolicies() PrintPolicies {
	return PrintPolicies{}
}

// Render produces h's canonical textual form under p. It is the only
// entry point external callers use; internal recursive calls thread a
// parent priority through render so each variant can decide for itself
// whether it needs parenthesising.
func Render(h Handle, p PrintPolicies, reg FunctionRegistry) (string, error) {
	return render(h, p, noWrapPriority, true, reg)
}

func render(h Handle, p PrintPolicies, parentPriority int, first bool, reg FunctionRegistry) (string, error) {
	switch h.Kind {
	case KindConstant:
		return renderConstant(h.Value, parentPriority, first), nil
	case KindSymbol:
		return h.Name, nil
	case KindNegation:
		return renderNegation(h, p, parentPriority, reg)
	case KindAddition:
		return renderAddition(h, p, parentPriority, reg)
	case KindMultiplication:
		return renderMultiplication(h, p, parentPriority, reg)
	case KindPower:
		return renderPower(h, p, parentPriority, reg)
	case KindFunctionCall:
		return renderFunctionCall(h, p, reg)
	default:
		return "", nil
	}
}

func renderConstant(v float64, parentPriority int, first bool) string {
	s := formatFloat(v)
	if v < 0 && !first && parentPriority >= multiplicationPriority {
		return "(" + s + ")"
	}
	return s
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func renderNegation(h Handle, p PrintPolicies, parentPriority int, reg FunctionRegistry) (string, error) {
	childText, err := render(h.Child, p, negationPriority, false, reg)
	if err != nil {
		return "", err
	}
	s := "-" + childText
	if parentPriority > negationPriority {
		s = "(" + s + ")"
	}
	return s, nil
}

// isNegativeLike reports whether an Addition operand should be printed
// with a leading '-' joiner instead of '+': a bare Negation, or a bare
// negative Constant. Anything else (including a Multiplication whose
// first factor happens to be a negative Constant) is joined with '+' and
// lets its own rendering carry whatever sign it needs.
func isNegativeLike(h Handle) (isNegation bool, magnitude float64, isNegConst bool) {
	switch {
	case h.Kind == KindNegation:
		return true, 0, false
	case h.Kind == KindConstant && h.Value < 0:
		return false, -h.Value, true
	default:
		return false, 0, false
	}
}

func renderAddition(h Handle, p PrintPolicies, parentPriority int, reg FunctionRegistry) (string, error) {
	var sb strings.Builder
	spaces := strings.Repeat(" ", p.Sum.OperandSpaces)
	for i, op := range h.Operands {
		first := i == 0
		isNeg, magnitude, isNegConst := isNegativeLike(op)
		switch {
		case isNegConst:
			sb.WriteString("-")
			if !first {
				sb.WriteString(spaces)
			}
			sb.WriteString(formatFloat(magnitude))
		case isNeg:
			sb.WriteString("-")
			if !first {
				sb.WriteString(spaces)
			}
			childText, err := render(op.Child, p, negationPriority, false, reg)
			if err != nil {
				return "", err
			}
			sb.WriteString(childText)
		default:
			if !first {
				sb.WriteString("+")
				sb.WriteString(spaces)
			}
			t, err := render(op, p, additionPriority, first, reg)
			if err != nil {
				return "", err
			}
			sb.WriteString(t)
		}
	}
	s := sb.String()
	if parentPriority > additionPriority {
		s = "(" + s + ")"
	}
	return s, nil
}

func startsWithDigit(s string) bool {
	if s == "" {
		return false
	}
	return s[0] >= '0' && s[0] <= '9'
}

func renderMultiplication(h Handle, p PrintPolicies, parentPriority int, reg FunctionRegistry) (string, error) {
	var sb strings.Builder
	spaces := strings.Repeat(" ", p.Product.OperandSpaces)
	for i, op := range h.Operands {
		first := i == 0
		t, err := render(op, p, multiplicationPriority, first, reg)
		if err != nil {
			return "", err
		}
		if !first {
			if p.Product.UseStarsForSubexprs || startsWithDigit(t) {
				sb.WriteString("*")
			}
			sb.WriteString(spaces)
		}
		sb.WriteString(t)
	}
	s := sb.String()
	if parentPriority > multiplicationPriority {
		s = "(" + s + ")"
	}
	return s, nil
}

func renderPower(h Handle, p PrintPolicies, parentPriority int, reg FunctionRegistry) (string, error) {
	baseText, err := render(h.Base, p, powerPriority, true, reg)
	if err != nil {
		return "", err
	}
	expText, err := render(h.Exponent, p, powerPriority, false, reg)
	if err != nil {
		return "", err
	}
	s := baseText + strings.Repeat(" ", p.Power.OperandSpacesBefore) + "^" +
		strings.Repeat(" ", p.Power.OperandSpacesAfter) + expText
	if parentPriority > powerPriority {
		s = "(" + s + ")"
	}
	return s, nil
}

func renderFunctionCall(h Handle, p PrintPolicies, reg FunctionRegistry) (string, error) {
	name, err := reg.Name(h.FuncID)
	if err != nil {
		return "", err
	}
	parts := make([]string, len(h.Args))
	for i, a := range h.Args {
		t, err := render(a, p, noWrapPriority, true, reg)
		if err != nil {
			return "", err
		}
		parts[i] = t
	}
	return name + "(" + strings.Join(parts, ", ") + ")", nil
}
