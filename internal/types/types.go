package types

import (
	"fmt"
	"strings"
)

// Undefined marks sizes and array lengths that are not statically known
// (open arrays, function types, and so on).
const Undefined = ^uint64(0)

// Flags is a bitset of type qualifiers.
type Flags uint

const (
	FlagConst Flags = 1 << iota
)

// PointerFlags qualifies pointer types.
type PointerFlags uint

const (
	PtrNullable PointerFlags = 1 << iota
)

// Variadism describes how a function type accepts a variable argument tail.
type Variadism int

const (
	VariadismNone Variadism = iota
	VariadismC
	VariadismNative
)

// Type is an interned, immutable semantic type.
//
// Two structurally identical types share the same ID and the same pointer
// identity; comparing *Type values with == is a structural comparison.
// Exactly one of the payload fields is meaningful, selected by Storage.
type Type struct {
	ID      uint64
	Storage Storage
	Flags   Flags
	Size    uint64
	Align   uint64

	Pointer     PointerInfo
	Array       ArrayInfo // also carries the member type for slices
	StructUnion StructUnionInfo
	Tagged      []*Type
	Enum        EnumInfo
	Func        FuncInfo
	Alias       AliasInfo
}

type PointerInfo struct {
	Referent *Type
	Flags    PointerFlags
}

type ArrayInfo struct {
	Members *Type
	Length  uint64 // Undefined for slices and open arrays
}

// StructField is a named member of a struct or union type.
type StructField struct {
	Name   string
	Type   *Type
	Offset uint64
}

type StructUnionInfo struct {
	Fields []*StructField
}

// EnumValue is a named constant member of an enum type. Exactly one of IVal
// and UVal is meaningful, selected by the signedness of the enum's storage.
type EnumValue struct {
	Name string
	IVal int64
	UVal uint64
}

type EnumInfo struct {
	Storage Storage // underlying integer storage
	Values  []*EnumValue
}

type FuncParam struct {
	Name string
	Type *Type
}

type FuncInfo struct {
	Result    *Type
	Variadism Variadism
	Params    []*FuncParam
}

type AliasInfo struct {
	Name string // fully qualified alias name
	Type *Type  // aliased type
}

// IsConst reports whether the type carries the const qualifier.
func (t *Type) IsConst() bool {
	return t.Flags&FlagConst != 0
}

func (t *Type) String() string {
	var sb strings.Builder
	if t.IsConst() {
		sb.WriteString("const ")
	}
	switch t.Storage {
	case Pointer:
		if t.Pointer.Flags&PtrNullable != 0 {
			sb.WriteString("nullable ")
		}
		sb.WriteString("*")
		sb.WriteString(t.Pointer.Referent.String())
	case Slice:
		sb.WriteString("[]")
		sb.WriteString(t.Array.Members.String())
	case Array:
		if t.Array.Length == Undefined {
			sb.WriteString("[*]")
		} else {
			fmt.Fprintf(&sb, "[%d]", t.Array.Length)
		}
		sb.WriteString(t.Array.Members.String())
	case Struct, Union:
		sb.WriteString(t.Storage.String())
		sb.WriteString(" { ")
		for i, f := range t.StructUnion.Fields {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%s: %s", f.Name, f.Type)
		}
		sb.WriteString(" }")
	case TaggedUnion:
		sb.WriteString("(")
		for i, m := range t.Tagged {
			if i > 0 {
				sb.WriteString(" | ")
			}
			sb.WriteString(m.String())
		}
		sb.WriteString(")")
	case Enum:
		sb.WriteString("enum ")
		sb.WriteString(t.Enum.Storage.String())
	case Function:
		sb.WriteString("fn(")
		for i, p := range t.Func.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%s: %s", p.Name, p.Type)
		}
		sb.WriteString(") ")
		sb.WriteString(t.Func.Result.String())
	case Alias:
		sb.WriteString(t.Alias.Name)
	default:
		sb.WriteString(t.Storage.String())
	}
	return sb.String()
}

// Dealias unwraps transparent aliases down to the underlying type.
func Dealias(t *Type) *Type {
	for t.Storage == Alias {
		t = t.Alias.Type
	}
	return t
}

// Dereference unwraps non-nullable pointer types down to their referent.
// It returns nil for nullable pointers; the caller must diagnose those.
// The result is dealiased.
func Dereference(t *Type) *Type {
	for {
		u := Dealias(t)
		if u.Storage != Pointer {
			return u
		}
		if u.Pointer.Flags&PtrNullable != 0 {
			return nil
		}
		t = u.Pointer.Referent
	}
}

// IsInteger reports whether the type is of an integer storage class.
func IsInteger(t *Type) bool {
	u := Dealias(t)
	if u.Storage == Enum {
		return true
	}
	return IsIntegerStorage(u.Storage)
}

// IsSigned reports whether the type is of a signed numeric storage class.
func IsSigned(t *Type) bool {
	u := Dealias(t)
	if u.Storage == Enum {
		return IsSignedStorage(u.Enum.Storage)
	}
	return IsSignedStorage(u.Storage)
}

// IsNumeric reports whether the type is integer or floating point.
func IsNumeric(t *Type) bool {
	u := Dealias(t)
	return IsInteger(u) || IsFloatStorage(u.Storage)
}

// GetField looks up a struct or union member by name.
func GetField(t *Type, name string) *StructField {
	u := Dealias(t)
	if u.Storage != Struct && u.Storage != Union {
		return nil
	}
	for _, f := range u.StructUnion.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}
