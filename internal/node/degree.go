package node

import "math"

// Degree is the largest exponent appearing anywhere in h's tree, used by
// the canonical sort order to rank terms before falling back to lexical
// comparison. A Power with a non-ground exponent contributes +Inf — it
// outranks every term with a fixed numeric exponent, since its true
// growth rate can't be bounded at sort time.
func Degree(h Handle) float64 {
	switch h.Kind {
	case KindConstant:
		return 0
	case KindSymbol:
		return 1
	case KindFunctionCall:
		return 1
	case KindNegation:
		return Degree(h.Child)
	case KindAddition, KindMultiplication:
		d := 0.0
		for _, op := range h.Operands {
			if v := Degree(op); v > d {
				d = v
			}
		}
		return d
	case KindPower:
		base := Degree(h.Base)
		if !IsGround(h.Exponent) {
			return math.Inf(1)
		}
		if h.Exponent.Kind == KindConstant {
			return math.Max(base, h.Exponent.Value)
		}
		// Ground but not a bare Constant (e.g. an unreduced numeric
		// expression): fall back to its own degree as a proxy.
		return math.Max(base, Degree(h.Exponent))
	default:
		return 0
	}
}
