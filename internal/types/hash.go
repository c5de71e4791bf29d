package types

// Structural hashing underlies type interning: two structurally identical
// types produce the same hash, which the store uses as the identity key.
// Aliases hash their qualified name rather than their target, which keeps
// self-referential type graphs from recursing forever.

const (
	fnvOffset = 14695981039346656037
	fnvPrime  = 1099511628211
)

func hashU64(h, v uint64) uint64 {
	for i := 0; i < 8; i++ {
		h ^= v & 0xff
		h *= fnvPrime
		v >>= 8
	}
	return h
}

func hashString(h uint64, s string) uint64 {
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= fnvPrime
	}
	return h
}

// Hash computes the structural identity of a type. The payload contributes
// through member IDs, so members must be interned (or at least hashed) first.
func Hash(t *Type) uint64 {
	h := uint64(fnvOffset)
	h = hashU64(h, uint64(t.Storage))
	h = hashU64(h, uint64(t.Flags))

	switch t.Storage {
	case Pointer:
		h = hashU64(h, uint64(t.Pointer.Flags))
		h = hashU64(h, t.Pointer.Referent.ID)
	case Slice:
		h = hashU64(h, t.Array.Members.ID)
	case Array:
		h = hashU64(h, t.Array.Length)
		h = hashU64(h, t.Array.Members.ID)
	case Struct, Union:
		for _, f := range t.StructUnion.Fields {
			h = hashString(h, f.Name)
			h = hashU64(h, f.Type.ID)
		}
	case TaggedUnion:
		for _, m := range t.Tagged {
			h = hashU64(h, m.ID)
		}
	case Enum:
		h = hashU64(h, uint64(t.Enum.Storage))
		for _, v := range t.Enum.Values {
			h = hashString(h, v.Name)
			h = hashU64(h, v.UVal)
		}
	case Function:
		h = hashU64(h, uint64(t.Func.Variadism))
		h = hashU64(h, t.Func.Result.ID)
		for _, p := range t.Func.Params {
			h = hashU64(h, p.Type.ID)
		}
	case Alias:
		h = hashString(h, t.Alias.Name)
	}
	return h
}
