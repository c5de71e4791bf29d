package hir

import (
	"github.com/Sovenok-Hacker/harec/internal/frontend/ast"
	"github.com/Sovenok-Hacker/harec/internal/scope"
	"github.com/Sovenok-Hacker/harec/internal/types"
)

// DeclKind tags a checked declaration.
type DeclKind int

const (
	DeclFunc DeclKind = iota
	DeclGlobal
	DeclType
)

// Declaration is a fully checked top-level declaration.
type Declaration struct {
	Kind     DeclKind
	Ident    ast.Identifier // mangled
	Symbol   string         // explicit linkage symbol, if any
	Exported bool

	Func   FuncDecl
	Global GlobalDecl
	Type   *types.Type
}

type FuncDecl struct {
	Type  *types.Type
	Flags ast.FuncFlags
	Scope *scope.Scope
	Body  *Expr
}

type GlobalDecl struct {
	Type  *types.Type
	Value *Expr
}

// Unit is the checker's output: the unit namespace plus the ordered,
// elaborated declarations.
type Unit struct {
	NS           *ast.Identifier
	Declarations []*Declaration
}
