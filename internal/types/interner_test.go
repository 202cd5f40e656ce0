package types

import "testing"

func TestGetIntIsInjective(t *testing.T) {
	in := NewInterner()
	a := in.GetInt(8, true, false)
	b := in.GetInt(8, true, false)
	if a != b {
		t.Fatalf("getInt(8,true,false) returned distinct TypeIDs %d and %d", a, b)
	}
	c := in.GetInt(8, false, false)
	if a == c {
		t.Fatalf("differently-signed types interned to the same TypeID")
	}
}

func TestBuiltinsAreStable(t *testing.T) {
	in := NewInterner()
	b1 := in.Builtins()
	b2 := in.Builtins()
	if b1.Int != b2.Int || b1.Logic != b2.Logic {
		t.Fatalf("Builtins() is not stable across calls")
	}
	if in.Intern(Type{Kind: KindPredefinedInteger, Width: 32, Signed: true, Predef: PredefInt}) != b1.Int {
		t.Fatalf("re-interning the int descriptor did not return the builtin TypeID")
	}
}

func TestAggregateIsNominal(t *testing.T) {
	in := NewInterner()
	fields := []Field{{Type: in.Builtins().Logic}}
	a := in.NewAggregate(0, AggregateInfo{Fields: fields, Packed: true})
	b := in.NewAggregate(0, AggregateInfo{Fields: fields, Packed: true})
	if a == b {
		t.Fatalf("two separately declared structs interned to the same TypeID")
	}
	if !in.Equivalent(a, b) {
		t.Fatalf("structurally identical packed structs should be Equivalent")
	}
}

func TestAliasResolvesAndPreservesIdentity(t *testing.T) {
	in := NewInterner()
	target := in.GetInt(8, true, false)
	alias := in.NewAlias(0, target)
	if in.Resolve(alias) != target {
		t.Fatalf("Resolve did not strip the alias")
	}
	if in.Matching(alias, target) {
		t.Fatalf("Matching should not see through an alias")
	}
	if !in.Equivalent(alias, target) {
		t.Fatalf("Equivalent should see through an alias")
	}
}

func TestPackedArrayWidthFromBounds(t *testing.T) {
	in := NewInterner()
	elem := in.GetScalar(ScalarLogic, false)
	id := in.GetPackedArray(elem, 7, 0)
	ty := in.MustLookup(id)
	if ty.Width != 8 {
		t.Fatalf("want width 8, got %d", ty.Width)
	}
	if !ty.FourState {
		t.Fatalf("packed array of logic should be four-state")
	}
}
