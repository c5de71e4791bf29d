package ast

import (
	"github.com/Sovenok-Hacker/harec/internal/source"
	"github.com/Sovenok-Hacker/harec/internal/types"
)

// Type is a syntactic type as written in the source, tagged by storage
// class. The type store turns these into interned semantic types. Exactly
// one of the payload fields is meaningful, selected by Storage; primitive
// storage classes carry no payload at all.
type Type struct {
	Location source.Location
	Storage  types.Storage
	Flags    types.Flags
	Unwrap   bool

	Alias       Identifier
	Pointer     PointerType
	Array       ArrayType // Slice uses Members only
	StructUnion []StructMember
	Tagged      []*Type
	Enum        EnumType
	Func        FuncType
}

func (t *Type) Loc() source.Location { return t.Location }

type PointerType struct {
	Referent *Type
	Flags    types.PointerFlags
}

type ArrayType struct {
	Members *Type
	Length  Expression // nil for open arrays and slices
}

type StructMember struct {
	Name string
	Type *Type
}

type EnumValue struct {
	Name  string
	Value Expression // nil: previous value plus one
}

type EnumType struct {
	Storage types.Storage // underlying integer storage
	Values  []EnumValue
}

type FuncParam struct {
	Location source.Location
	Name     string
	Type     *Type
}

type FuncType struct {
	Result    *Type
	Variadism types.Variadism
	Params    []FuncParam
}

// BuiltinType returns a syntactic reference to a primitive storage class.
func BuiltinType(s types.Storage) *Type {
	return &Type{Storage: s}
}

// ConstType returns a copy of t with the const flag set.
func ConstType(t *Type) *Type {
	c := *t
	c.Flags |= types.FlagConst
	return &c
}
