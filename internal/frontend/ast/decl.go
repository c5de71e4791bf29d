package ast

import (
	"github.com/Sovenok-Hacker/harec/internal/source"
)

// Decl is a top-level declaration.
type Decl interface {
	Node
	Decl()
	IsExported() bool
}

// ConstDecl declares a named compile-time constant.
type ConstDecl struct {
	Ident    Identifier
	Type     *Type
	Init     Expression
	Exported bool
	source.Location
}

func (d *ConstDecl) INode()               {}
func (d *ConstDecl) Decl()                {}
func (d *ConstDecl) IsExported() bool     { return d.Exported }
func (d *ConstDecl) Loc() source.Location { return d.Location }

// GlobalDecl declares a runtime global. Init is nil for forward
// declarations. Symbol, when non-empty, overrides name mangling.
type GlobalDecl struct {
	Ident    Identifier
	Symbol   string
	Type     *Type
	Init     Expression
	Exported bool
	source.Location
}

func (d *GlobalDecl) INode()               {}
func (d *GlobalDecl) Decl()                {}
func (d *GlobalDecl) IsExported() bool     { return d.Exported }
func (d *GlobalDecl) Loc() source.Location { return d.Location }

// FuncDecl declares a function. Body is nil for prototypes. Symbol, when
// non-empty, overrides name mangling.
type FuncDecl struct {
	Ident     Identifier
	Symbol    string
	Flags     FuncFlags
	Prototype FuncType
	Body      Expression
	Exported  bool
	source.Location
}

func (d *FuncDecl) INode()               {}
func (d *FuncDecl) Decl()                {}
func (d *FuncDecl) IsExported() bool     { return d.Exported }
func (d *FuncDecl) Loc() source.Location { return d.Location }

// TypeDecl declares a type alias.
type TypeDecl struct {
	Ident    Identifier
	Type     *Type
	Exported bool
	source.Location
}

func (d *TypeDecl) INode()               {}
func (d *TypeDecl) Decl()                {}
func (d *TypeDecl) IsExported() bool     { return d.Exported }
func (d *TypeDecl) Loc() source.Location { return d.Location }

// Import names a unit imported by a subunit. Import resolution is not
// implemented; the checker rejects subunits that carry imports.
type Import struct {
	Ident Identifier
	Alias string
	source.Location
}

// SubUnit is the parsed contents of one source file.
type SubUnit struct {
	Imports []*Import
	Decls   []Decl
}

// Unit is a whole translation unit: every subunit compiled together under
// one namespace.
type Unit struct {
	NS       *Identifier
	SubUnits []*SubUnit
}
