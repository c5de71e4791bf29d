// Package typestore implements the hash-consing type interner. Two
// structurally identical types interned at different program points share
// one *types.Type, so equality reduces to pointer identity.
package typestore

import (
	"fmt"

	"github.com/Sovenok-Hacker/harec/internal/frontend/ast"
	"github.com/Sovenok-Hacker/harec/internal/types"
)

// Resolver supplies the store with the two services that depend on the
// check in progress: alias name resolution against the unit scope, and
// compile-time evaluation of array lengths and enum values. The checker
// implements it.
type Resolver interface {
	ResolveAlias(ident ast.Identifier) (*types.Type, bool)
	EvalInteger(expr ast.Expression) (uint64, bool)
}

// Store interns semantic types. It is append-only: interned types are
// immutable and safe to reference for the lifetime of the process.
type Store struct {
	interned map[uint64]*types.Type
	resolver Resolver
}

func New() *Store {
	s := &Store{interned: make(map[uint64]*types.Type)}
	for _, t := range types.Builtins() {
		s.interned[t.ID] = t
	}
	return s
}

// SetResolver attaches the in-flight check to the store.
func (s *Store) SetResolver(r Resolver) {
	s.resolver = r
}

// intern deduplicates t by structural hash. The caller must not mutate t
// afterwards.
func (s *Store) intern(t *types.Type) *types.Type {
	t.ID = types.Hash(t)
	if have, ok := s.interned[t.ID]; ok {
		return have
	}
	s.interned[t.ID] = t
	return t
}

// LookupAtype turns a syntactic type into an interned semantic type.
func (s *Store) LookupAtype(at *ast.Type) (*types.Type, error) {
	if b := types.BuiltinFor(at.Storage, false); b != nil {
		if at.Flags == 0 {
			return b, nil
		}
		return s.LookupWithFlags(b, at.Flags), nil
	}

	switch at.Storage {
	case types.Pointer:
		ref, err := s.LookupAtype(at.Pointer.Referent)
		if err != nil {
			return nil, err
		}
		t := s.LookupPointer(ref, at.Pointer.Flags)
		if at.Flags != 0 {
			t = s.LookupWithFlags(t, t.Flags|at.Flags)
		}
		return t, nil

	case types.Slice:
		members, err := s.LookupAtype(at.Array.Members)
		if err != nil {
			return nil, err
		}
		t := s.LookupSlice(members)
		if at.Flags != 0 {
			t = s.LookupWithFlags(t, t.Flags|at.Flags)
		}
		return t, nil

	case types.Array:
		members, err := s.LookupAtype(at.Array.Members)
		if err != nil {
			return nil, err
		}
		length := types.Undefined
		if at.Array.Length != nil {
			n, ok := s.resolver.EvalInteger(at.Array.Length)
			if !ok {
				return nil, fmt.Errorf("cannot evaluate array length at compile time")
			}
			length = n
		}
		t := s.LookupArray(members, length)
		if at.Flags != 0 {
			t = s.LookupWithFlags(t, t.Flags|at.Flags)
		}
		return t, nil

	case types.Struct, types.Union:
		return s.lookupStructUnion(at)

	case types.TaggedUnion:
		return s.lookupTagged(at)

	case types.Enum:
		return s.lookupEnum(at)

	case types.Function:
		return s.lookupFunc(at)

	case types.Alias:
		target, ok := s.resolver.ResolveAlias(at.Alias)
		if !ok {
			return nil, fmt.Errorf("unknown type '%s'", at.Alias)
		}
		if at.Unwrap {
			return types.Dealias(target), nil
		}
		t := &types.Type{
			Storage: types.Alias,
			Flags:   at.Flags,
			Size:    target.Size,
			Align:   target.Align,
			Alias: types.AliasInfo{
				Name: at.Alias.String(),
				Type: target,
			},
		}
		return s.intern(t), nil
	}
	return nil, fmt.Errorf("invalid type storage %s", at.Storage)
}

func (s *Store) lookupStructUnion(at *ast.Type) (*types.Type, error) {
	t := &types.Type{
		Storage: at.Storage,
		Flags:   at.Flags,
		Align:   1,
	}
	var offset, maxSize uint64
	unsized := false
	for _, m := range at.StructUnion {
		ft, err := s.LookupAtype(m.Type)
		if err != nil {
			return nil, err
		}
		field := &types.StructField{Name: m.Name, Type: ft}
		if ft.Size == types.Undefined || ft.Size == 0 {
			unsized = unsized || ft.Size == types.Undefined
		}
		if at.Storage == types.Struct && !unsized {
			offset = alignUp(offset, ft.Align)
			field.Offset = offset
			offset += ft.Size
		}
		if ft.Size != types.Undefined && ft.Size > maxSize {
			maxSize = ft.Size
		}
		if ft.Align > t.Align {
			t.Align = ft.Align
		}
		t.StructUnion.Fields = append(t.StructUnion.Fields, field)
	}
	switch {
	case unsized:
		t.Size = types.Undefined
	case at.Storage == types.Union:
		t.Size = alignUp(maxSize, t.Align)
	default:
		t.Size = alignUp(offset, t.Align)
	}
	return s.intern(t), nil
}

func (s *Store) lookupTagged(at *ast.Type) (*types.Type, error) {
	t := &types.Type{
		Storage: types.TaggedUnion,
		Flags:   at.Flags,
		Align:   8,
	}
	var maxSize uint64
	for _, m := range at.Tagged {
		mt, err := s.LookupAtype(m)
		if err != nil {
			return nil, err
		}
		if mt.Size != types.Undefined && mt.Size > maxSize {
			maxSize = mt.Size
		}
		t.Tagged = append(t.Tagged, mt)
	}
	// Discriminant word plus the widest member.
	t.Size = 8 + alignUp(maxSize, t.Align)
	return s.intern(t), nil
}

func (s *Store) lookupEnum(at *ast.Type) (*types.Type, error) {
	storage := at.Enum.Storage
	if storage == types.Void {
		storage = types.Int
	}
	base := types.BuiltinFor(storage, false)
	if base == nil || !types.IsIntegerStorage(storage) {
		return nil, fmt.Errorf("invalid enum storage %s", storage)
	}
	t := &types.Type{
		Storage: types.Enum,
		Flags:   at.Flags,
		Size:    base.Size,
		Align:   base.Align,
		Enum:    types.EnumInfo{Storage: storage},
	}
	signed := types.IsSignedStorage(storage)
	var next uint64
	for _, v := range at.Enum.Values {
		value := &types.EnumValue{Name: v.Name}
		if v.Value != nil {
			n, ok := s.resolver.EvalInteger(v.Value)
			if !ok {
				return nil, fmt.Errorf("cannot evaluate enum value '%s' at compile time", v.Name)
			}
			next = n
		}
		if signed {
			value.IVal = int64(next)
		} else {
			value.UVal = next
		}
		next++
		t.Enum.Values = append(t.Enum.Values, value)
	}
	return s.intern(t), nil
}

func (s *Store) lookupFunc(at *ast.Type) (*types.Type, error) {
	result, err := s.LookupAtype(at.Func.Result)
	if err != nil {
		return nil, err
	}
	t := &types.Type{
		Storage: types.Function,
		Flags:   at.Flags,
		Size:    types.Undefined,
		Func: types.FuncInfo{
			Result:    result,
			Variadism: at.Func.Variadism,
		},
	}
	for i, p := range at.Func.Params {
		pt, err := s.LookupAtype(p.Type)
		if err != nil {
			return nil, err
		}
		// The variadic tail is surfaced to callees as a slice of the
		// declared member type.
		if at.Func.Variadism == types.VariadismNative &&
			i == len(at.Func.Params)-1 {
			pt = s.LookupSlice(pt)
		}
		t.Func.Params = append(t.Func.Params, &types.FuncParam{
			Name: p.Name,
			Type: pt,
		})
	}
	return s.intern(t), nil
}

// LookupWithFlags returns t with the given qualifier flags, interning a
// new type if needed. Const propagation into aggregate member types
// happens at the access sites, which pass the member flags ORed in.
func (s *Store) LookupWithFlags(t *types.Type, flags types.Flags) *types.Type {
	if t.Flags == flags {
		return t
	}
	c := *t
	c.Flags = flags
	return s.intern(&c)
}

// LookupPointer constructs a pointer type.
func (s *Store) LookupPointer(referent *types.Type, flags types.PointerFlags) *types.Type {
	return s.intern(&types.Type{
		Storage: types.Pointer,
		Size:    8,
		Align:   8,
		Pointer: types.PointerInfo{Referent: referent, Flags: flags},
	})
}

// LookupSlice constructs a slice type.
func (s *Store) LookupSlice(members *types.Type) *types.Type {
	return s.intern(&types.Type{
		Storage: types.Slice,
		Size:    24,
		Align:   8,
		Array:   types.ArrayInfo{Members: members, Length: types.Undefined},
	})
}

// LookupArray constructs an array type; length may be types.Undefined.
func (s *Store) LookupArray(members *types.Type, length uint64) *types.Type {
	size := types.Undefined
	if length != types.Undefined && members.Size != types.Undefined {
		size = members.Size * length
	}
	return s.intern(&types.Type{
		Storage: types.Array,
		Size:    size,
		Align:   members.Align,
		Array:   types.ArrayInfo{Members: members, Length: length},
	})
}

func alignUp(n, align uint64) uint64 {
	if align == 0 {
		return n
	}
	return (n + align - 1) &^ (align - 1)
}
