package types

import "testing"

func TestArithResultWidensToWiderOperand(t *testing.T) {
	in := NewInterner()
	l := in.GetInt(8, true, false)
	r := in.GetInt(16, true, false)
	res := in.ArithResultType(OpAdd, l, r)
	ty := in.MustLookup(res)
	if ty.Width != 16 {
		t.Fatalf("want width 16, got %d", ty.Width)
	}
}

func TestArithResultFourStateIsSticky(t *testing.T) {
	in := NewInterner()
	l := in.GetInt(8, true, false)
	r := in.GetInt(8, true, true)
	res := in.ArithResultType(OpAdd, l, r)
	ty := in.MustLookup(res)
	if !ty.FourState {
		t.Fatalf("result should be four-state when either operand is")
	}
}

func TestArithResultDivForcesFourState(t *testing.T) {
	in := NewInterner()
	l := in.GetInt(8, true, false)
	r := in.GetInt(8, true, false)
	res := in.ArithResultType(OpDiv, l, r)
	ty := in.MustLookup(res)
	if !ty.FourState {
		t.Fatalf("division result should be four-state even over two-state operands")
	}
}

func TestArithResultPrefersRealOverShortreal(t *testing.T) {
	in := NewInterner()
	res := in.ArithResultType(OpAdd, in.Builtins().Real, in.Builtins().ShortReal)
	if res != in.Builtins().Real {
		t.Fatalf("want real, got %s", in.Label(res, nil))
	}
}

func TestArithResultPreservesOperandIdentity(t *testing.T) {
	in := NewInterner()
	alias := in.NewAlias(0, in.GetInt(8, true, false))
	res := in.ArithResultType(OpAdd, alias, in.GetInt(8, true, false))
	if res != alias {
		t.Fatalf("matching operand's alias identity should be preserved")
	}
}

func TestAssignmentCompatibleNumericCrossKind(t *testing.T) {
	in := NewInterner()
	if !in.AssignmentCompatible(in.Builtins().Real, in.Builtins().Int) {
		t.Fatalf("int should be assignment-compatible with real")
	}
}

func TestCastCompatibleNumericToString(t *testing.T) {
	in := NewInterner()
	if !in.CastCompatible(in.Builtins().String, in.Builtins().Int) {
		t.Fatalf("int should be cast-compatible to string")
	}
}
