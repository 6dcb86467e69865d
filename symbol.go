package symaths

import (
	"symaths/internal/errs"
	"symaths/internal/node"
)

// Symbol is an Expression guaranteed to refer to a Symbol node — the
// type differentiate's wrt parameter requires, so a caller can't
// accidentally ask for a derivative with respect to a compound
// expression.
type Symbol struct {
	expr Expression
}

// AsSymbol narrows e to a Symbol, failing with InvalidFacade if e's
// root is not a Symbol node.
func AsSymbol(e Expression) (Symbol, error) {
	if err := e.checkInitialized(); err != nil {
		return Symbol{}, err
	}
	if e.h.Kind != node.KindSymbol {
		return Symbol{}, errs.New(errs.InvalidFacade, "expression root is not a symbol")
	}
	return Symbol{expr: e}, nil
}

// Expression returns s viewed as a plain Expression.
func (s Symbol) Expression() Expression { return s.expr }

// Name returns the symbol's interned name.
func (s Symbol) Name() string { return s.expr.h.Name }

func (s Symbol) String() string { return s.expr.String() }
