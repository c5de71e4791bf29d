package types

// Assignability and castability are pure relations on interned types.
// Assignability gates implicit conversion at assignments, arguments,
// returns, and literal members; castability is the wider relation admitted
// by an explicit cast expression. Every assignable pair is castable.

// sameModuloFlags reports structural equality ignoring top-level
// qualifiers, so a const value may initialize a non-const location and
// vice versa.
func sameModuloFlags(a, b *Type) bool {
	if a.Storage != b.Storage {
		return false
	}
	ca, cb := *a, *b
	ca.Flags, cb.Flags = 0, 0
	return Hash(&ca) == Hash(&cb)
}

// IsAssignable reports whether a value of type src may be implicitly
// converted to dst.
func IsAssignable(dst, src *Type) bool {
	if dst.ID == src.ID {
		return true
	}
	ddst := Dealias(dst)
	dsrc := Dealias(src)
	if ddst.ID == dsrc.ID || sameModuloFlags(ddst, dsrc) {
		return true
	}

	switch ddst.Storage {
	case Pointer:
		if dsrc.Storage == Null {
			return ddst.Pointer.Flags&PtrNullable != 0
		}
		if dsrc.Storage != Pointer {
			return false
		}
		if ddst.Pointer.Referent.ID != dsrc.Pointer.Referent.ID {
			return false
		}
		// Dropping nullability needs an explicit cast.
		if dsrc.Pointer.Flags&PtrNullable != 0 {
			return ddst.Pointer.Flags&PtrNullable != 0
		}
		return true
	case Array:
		if dsrc.Storage != Array {
			return false
		}
		if ddst.Array.Members.ID != dsrc.Array.Members.ID {
			return false
		}
		return ddst.Array.Length == Undefined ||
			ddst.Array.Length == dsrc.Array.Length
	case Slice:
		return dsrc.Storage == Slice &&
			ddst.Array.Members.ID == dsrc.Array.Members.ID
	case TaggedUnion:
		for _, m := range ddst.Tagged {
			if m.ID == dsrc.ID {
				return true
			}
		}
		return false
	}
	return false
}

// IsCastable reports whether a value of type src may be explicitly cast
// to dst.
func IsCastable(dst, src *Type) bool {
	if IsAssignable(dst, src) {
		return true
	}
	ddst := Dealias(dst)
	dsrc := Dealias(src)

	// Numbers, runes, chars and enums convert freely among each other.
	numericish := func(t *Type) bool {
		return IsNumeric(t) || t.Storage == Rune || t.Storage == Char ||
			t.Storage == Enum
	}
	if numericish(ddst) && numericish(dsrc) {
		return true
	}

	switch {
	case ddst.Storage == Pointer && dsrc.Storage == Pointer:
		return true
	case ddst.Storage == Pointer && dsrc.Storage == UintPtr,
		ddst.Storage == UintPtr && dsrc.Storage == Pointer:
		return true
	case ddst.Storage == Pointer && dsrc.Storage == Null:
		return true
	case dsrc.Storage == TaggedUnion:
		// Narrowing to a member type; the checker validates membership
		// for assertion and test casts.
		for _, m := range dsrc.Tagged {
			if m.ID == ddst.ID {
				return true
			}
		}
		return false
	}
	return false
}
