package checker

import (
	"github.com/Sovenok-Hacker/harec/internal/diagnostics"
	"github.com/Sovenok-Hacker/harec/internal/eval"
	"github.com/Sovenok-Hacker/harec/internal/frontend/ast"
	"github.com/Sovenok-Hacker/harec/internal/hir"
	"github.com/Sovenok-Hacker/harec/internal/scope"
	"github.com/Sovenok-Hacker/harec/internal/types"
)

// scanDeclarations walks a subunit's top-level declarations in source
// order and populates the unit scope. Forward references between
// top-level declarations are a known gap.
func (c *Checker) scanDeclarations(decls []ast.Decl) {
	c.trace("scan declarations")
	for _, decl := range decls {
		switch d := decl.(type) {
		case *ast.ConstDecl:
			c.scanConst(d)
		case *ast.FuncDecl:
			c.scanFunction(d)
		case *ast.GlobalDecl:
			c.scanGlobal(d)
		case *ast.TypeDecl:
			c.scanType(d)
		}
	}
}

func (c *Checker) scanConst(d *ast.ConstDecl) {
	c.trace("scan constant %s", d.Ident)
	typ := c.lookupAtype(d.Type)
	initializer := c.checkExpression(d.Init, typ)

	c.expect(d.Init.Loc(),
		types.IsAssignable(typ, initializer.Result),
		diagnostics.ErrTypeMismatch,
		"Constant type is not assignable from initializer type")
	initializer = c.lowerImplicitCast(typ, initializer)

	value, err := eval.Expr(initializer)
	c.expect(d.Init.Loc(), err == nil, diagnostics.ErrNotConstant,
		"Unable to evaluate constant initializer at compile time")

	ident := c.mkIdent(d.Ident)
	c.unit.Insert(scope.ObjectConst, ident, d.Ident, typ, value)
}

func (c *Checker) scanFunction(d *ast.FuncDecl) {
	c.trace("scan function %s", d.Ident)
	fnAtype := &ast.Type{
		Location: d.Location,
		Storage:  types.Function,
		Flags:    types.FlagConst,
		Func:     d.Prototype,
	}
	fntype := c.lookupAtype(fnAtype)

	var ident ast.Identifier
	if d.Symbol != "" {
		ident = ast.Identifier{Name: d.Symbol}
	} else {
		ident = c.mkIdent(d.Ident)
	}
	c.unit.Insert(scope.ObjectDecl, ident, d.Ident, fntype, nil)
}

func (c *Checker) scanGlobal(d *ast.GlobalDecl) {
	c.trace("scan global %s", d.Ident)
	typ := c.lookupAtype(d.Type)

	var ident ast.Identifier
	if d.Symbol != "" {
		ident = ast.Identifier{Name: d.Symbol}
	} else {
		ident = c.mkIdent(d.Ident)
	}
	c.unit.Insert(scope.ObjectDecl, ident, d.Ident, typ, nil)
}

func (c *Checker) scanType(d *ast.TypeDecl) {
	c.trace("scan type %s", d.Ident)
	typ := c.lookupAtype(d.Type)
	ident := c.mkIdent(d.Ident)
	c.unit.Insert(scope.ObjectType, ident, d.Ident, typ, nil)

	if typ.Storage != types.Enum {
		return
	}

	// Materialize each enum value as a constant under both its short
	// spelling (Enum::Value) and its fully qualified one.
	aliasAtype := &ast.Type{
		Location: d.Type.Location,
		Storage:  types.Alias,
		Alias:    d.Ident,
	}
	alias := c.lookupAtype(aliasAtype)
	signed := types.IsSigned(alias)

	for _, value := range typ.Enum.Values {
		expr := &hir.Expr{Kind: hir.ExprConstant, Result: alias}
		if signed {
			expr.Constant.IVal = value.IVal
		} else {
			expr.Constant.UVal = value.UVal
		}

		nameNS := ast.Identifier{Name: d.Ident.Name, NS: d.Ident.NS}
		name := ast.Identifier{Name: value.Name, NS: &nameNS}
		identNS := ident
		vident := ast.Identifier{Name: value.Name, NS: &identNS}
		c.unit.Insert(scope.ObjectConst, vident, name, alias, expr)
	}
}
