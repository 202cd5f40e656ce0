package binder

import (
	"svfront/internal/diag"
	"svfront/internal/elaborate/symbols"
)

// CheckLValue reports whether e is a valid assignment target (§4.J): a
// reference to a variable/net/port, a selection or member access rooted in
// one, or a concatenation of such targets. It emits SemaLValueRequired and
// returns false otherwise.
func (b *Binder) CheckLValue(e *Expr) bool {
	if ok := b.isLValue(e); !ok {
		b.report(diag.SemaLValueRequired, e.Span, "expression is not a valid assignment target")
		return false
	}
	return true
}

func (b *Binder) isLValue(e *Expr) bool {
	if e == nil {
		return false
	}
	switch e.Kind {
	case ENamedValue:
		sym := b.table.Symbols.Get(e.Symbol)
		if sym == nil {
			return false
		}
		switch sym.Kind {
		case symbols.SymbolVariable, symbols.SymbolNet, symbols.SymbolPort, symbols.SymbolGenvar:
			return sym.Flags&symbols.SymbolFlagConst == 0
		default:
			return false
		}
	case EElementSelect, ERangeSelect, EMemberAccess:
		return b.isLValue(e.Operands[0])
	case EConcat:
		for _, op := range e.Operands {
			if !b.isLValue(op) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
