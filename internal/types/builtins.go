package types

// Builtin singletons for every primitive storage class, in const and
// non-const variants. The target model is 64-bit (pointer, size and uintptr
// are 8 bytes; int and uint are 4).

var (
	BuiltinVoid    = mkbuiltin(Void, 0, 0)
	BuiltinBool    = mkbuiltin(Bool, 1, 1)
	BuiltinNull    = mkbuiltin(Null, 8, 8)
	BuiltinI8      = mkbuiltin(I8, 1, 1)
	BuiltinI16     = mkbuiltin(I16, 2, 2)
	BuiltinI32     = mkbuiltin(I32, 4, 4)
	BuiltinI64     = mkbuiltin(I64, 8, 8)
	BuiltinInt     = mkbuiltin(Int, 4, 4)
	BuiltinU8      = mkbuiltin(U8, 1, 1)
	BuiltinU16     = mkbuiltin(U16, 2, 2)
	BuiltinU32     = mkbuiltin(U32, 4, 4)
	BuiltinU64     = mkbuiltin(U64, 8, 8)
	BuiltinUint    = mkbuiltin(Uint, 4, 4)
	BuiltinRune    = mkbuiltin(Rune, 4, 4)
	BuiltinF32     = mkbuiltin(F32, 4, 4)
	BuiltinF64     = mkbuiltin(F64, 8, 8)
	BuiltinChar    = mkbuiltin(Char, 1, 1)
	BuiltinUintPtr = mkbuiltin(UintPtr, 8, 8)
	BuiltinSize    = mkbuiltin(Size, 8, 8)
	BuiltinString  = mkbuiltin(String, 24, 8)

	builtinConst = map[Storage]*Type{}
	builtinPlain = map[Storage]*Type{}
)

func mkbuiltin(s Storage, size, align uint64) *Type {
	t := &Type{Storage: s, Size: size, Align: align}
	t.ID = Hash(t)
	return t
}

func init() {
	for _, t := range []*Type{
		BuiltinVoid, BuiltinBool, BuiltinNull,
		BuiltinI8, BuiltinI16, BuiltinI32, BuiltinI64, BuiltinInt,
		BuiltinU8, BuiltinU16, BuiltinU32, BuiltinU64, BuiltinUint,
		BuiltinRune, BuiltinF32, BuiltinF64, BuiltinChar,
		BuiltinUintPtr, BuiltinSize, BuiltinString,
	} {
		builtinPlain[t.Storage] = t

		c := &Type{Storage: t.Storage, Flags: FlagConst, Size: t.Size, Align: t.Align}
		c.ID = Hash(c)
		builtinConst[t.Storage] = c
	}
}

// Builtins returns every builtin singleton, const and non-const. The type
// store seeds its intern table with these so that structural lookups hand
// back the canonical instances.
func Builtins() []*Type {
	all := make([]*Type, 0, len(builtinPlain)+len(builtinConst))
	for _, t := range builtinPlain {
		all = append(all, t)
	}
	for _, t := range builtinConst {
		all = append(all, t)
	}
	return all
}

// BuiltinFor returns the canonical singleton for a primitive storage class,
// or nil if the storage class has no builtin (aggregates, pointers, etc.).
func BuiltinFor(s Storage, isConst bool) *Type {
	if isConst {
		return builtinConst[s]
	}
	return builtinPlain[s]
}

// StorageFromName maps a builtin type name to its storage class.
func StorageFromName(name string) (Storage, bool) {
	switch name {
	case "void":
		return Void, true
	case "bool":
		return Bool, true
	case "null":
		return Null, true
	case "i8":
		return I8, true
	case "i16":
		return I16, true
	case "i32":
		return I32, true
	case "i64":
		return I64, true
	case "int":
		return Int, true
	case "u8":
		return U8, true
	case "u16":
		return U16, true
	case "u32":
		return U32, true
	case "u64":
		return U64, true
	case "uint":
		return Uint, true
	case "rune":
		return Rune, true
	case "f32":
		return F32, true
	case "f64":
		return F64, true
	case "char":
		return Char, true
	case "uintptr":
		return UintPtr, true
	case "size":
		return Size, true
	case "str":
		return String, true
	}
	return Void, false
}
