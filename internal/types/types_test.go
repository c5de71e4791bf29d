package types

import (
	"testing"
)

func TestBuiltinSizes(t *testing.T) {
	tests := []struct {
		typ  *Type
		want uint64
	}{
		{BuiltinI8, 1},
		{BuiltinI16, 2},
		{BuiltinI32, 4},
		{BuiltinI64, 8},
		{BuiltinBool, 1},
		{BuiltinSize, 8},
		{BuiltinUintPtr, 8},
		{BuiltinString, 24},
		{BuiltinVoid, 0},
	}

	for _, tt := range tests {
		if got := tt.typ.Size; got != tt.want {
			t.Errorf("%s.Size = %d, want %d", tt.typ, got, tt.want)
		}
	}
}

func TestBuiltinFor(t *testing.T) {
	if got := BuiltinFor(Int, false); got != BuiltinInt {
		t.Errorf("BuiltinFor(Int, false) = %v, want the int singleton", got)
	}

	c := BuiltinFor(Int, true)
	if c == BuiltinInt {
		t.Error("const and non-const int must be distinct singletons")
	}
	if !c.IsConst() {
		t.Error("BuiltinFor(Int, true) must carry the const flag")
	}
	if c != BuiltinFor(Int, true) {
		t.Error("BuiltinFor must return the same singleton every call")
	}

	if got := BuiltinFor(Pointer, false); got != nil {
		t.Errorf("BuiltinFor(Pointer, false) = %v, want nil", got)
	}
}

func TestClassifiers(t *testing.T) {
	tests := []struct {
		typ     *Type
		integer bool
		signed  bool
		numeric bool
	}{
		{BuiltinI32, true, true, true},
		{BuiltinU8, true, false, true},
		{BuiltinSize, true, false, true},
		{BuiltinF64, false, true, true},
		{BuiltinBool, false, false, false},
		{BuiltinString, false, false, false},
	}

	for _, tt := range tests {
		if got := IsInteger(tt.typ); got != tt.integer {
			t.Errorf("IsInteger(%s) = %v, want %v", tt.typ, got, tt.integer)
		}
		if got := IsSigned(tt.typ); got != tt.signed {
			t.Errorf("IsSigned(%s) = %v, want %v", tt.typ, got, tt.signed)
		}
		if got := IsNumeric(tt.typ); got != tt.numeric {
			t.Errorf("IsNumeric(%s) = %v, want %v", tt.typ, got, tt.numeric)
		}
	}
}

func mktype(t *Type) *Type {
	t.ID = Hash(t)
	return t
}

func TestDealias(t *testing.T) {
	alias := mktype(&Type{
		Storage: Alias,
		Size:    4,
		Align:   4,
		Alias:   AliasInfo{Name: "my::int", Type: BuiltinInt},
	})
	outer := mktype(&Type{
		Storage: Alias,
		Size:    4,
		Align:   4,
		Alias:   AliasInfo{Name: "my::outer", Type: alias},
	})

	if got := Dealias(outer); got != BuiltinInt {
		t.Errorf("Dealias through two levels = %s, want int", got)
	}
	if got := Dealias(BuiltinInt); got != BuiltinInt {
		t.Error("Dealias of a non-alias must be the identity")
	}
}

func TestDereference(t *testing.T) {
	ptr := mktype(&Type{
		Storage: Pointer,
		Size:    8,
		Align:   8,
		Pointer: PointerInfo{Referent: BuiltinInt},
	})
	nullable := mktype(&Type{
		Storage: Pointer,
		Size:    8,
		Align:   8,
		Pointer: PointerInfo{Referent: BuiltinInt, Flags: PtrNullable},
	})

	if got := Dereference(ptr); got != BuiltinInt {
		t.Errorf("Dereference(*int) = %v, want int", got)
	}
	if got := Dereference(nullable); got != nil {
		t.Errorf("Dereference(nullable *int) = %v, want nil", got)
	}
	if got := Dereference(BuiltinInt); got != BuiltinInt {
		t.Error("Dereference of a non-pointer must be the identity")
	}
}

func TestGetField(t *testing.T) {
	x := &StructField{Name: "x", Type: BuiltinInt}
	y := &StructField{Name: "y", Type: BuiltinInt, Offset: 4}
	st := mktype(&Type{
		Storage:     Struct,
		Size:        8,
		Align:       4,
		StructUnion: StructUnionInfo{Fields: []*StructField{x, y}},
	})

	if got := GetField(st, "y"); got != y {
		t.Errorf("GetField(y) = %v, want the y descriptor", got)
	}
	if got := GetField(st, "z"); got != nil {
		t.Errorf("GetField(z) = %v, want nil", got)
	}
	if got := GetField(BuiltinInt, "x"); got != nil {
		t.Error("GetField on a non-aggregate must return nil")
	}
}
