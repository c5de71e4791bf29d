package checker

import (
	"github.com/Sovenok-Hacker/harec/internal/diagnostics"
	"github.com/Sovenok-Hacker/harec/internal/eval"
	"github.com/Sovenok-Hacker/harec/internal/frontend/ast"
	"github.com/Sovenok-Hacker/harec/internal/hir"
	"github.com/Sovenok-Hacker/harec/internal/scope"
	"github.com/Sovenok-Hacker/harec/internal/types"
)

// checkDeclarations elaborates a subunit's declarations and appends them
// to the unit. Constants were fully handled during the scan.
func (c *Checker) checkDeclarations(decls []ast.Decl, unit *hir.Unit) {
	c.trace("check declarations")
	for _, adecl := range decls {
		var decl *hir.Declaration
		switch d := adecl.(type) {
		case *ast.ConstDecl:
			// Handled in scan
		case *ast.FuncDecl:
			decl = c.checkFunction(d)
		case *ast.GlobalDecl:
			decl = c.checkGlobal(d)
		case *ast.TypeDecl:
			decl = c.checkType(d)
		}
		if decl != nil {
			decl.Exported = adecl.IsExported()
			unit.Declarations = append(unit.Declarations, decl)
		}
	}
}

func (c *Checker) checkFunction(afndecl *ast.FuncDecl) *hir.Declaration {
	if afndecl.Body == nil {
		return nil // Prototype
	}
	c.trace("check function %s", afndecl.Ident)

	fnAtype := &ast.Type{
		Location: afndecl.Location,
		Storage:  types.Function,
		Flags:    types.FlagConst,
		Func:     afndecl.Prototype,
	}
	fntype := c.lookupAtype(fnAtype)
	c.fntype = fntype

	c.expect(afndecl.Location,
		fntype.Func.Variadism != types.VariadismC,
		diagnostics.ErrInvalidAttribute,
		"C-style variadism is not allowed for function declarations")

	decl := &hir.Declaration{
		Kind: hir.DeclFunc,
		Func: hir.FuncDecl{Type: fntype, Flags: afndecl.Flags},
	}
	if afndecl.Symbol != "" {
		decl.Ident = ast.Identifier{Name: afndecl.Symbol}
		decl.Symbol = afndecl.Symbol
	} else {
		decl.Ident = c.mkIdent(afndecl.Ident)
	}

	c.scope = scope.Push(c.scope, scope.ClassFunction)
	decl.Func.Scope = c.scope

	// The interned function type already carries the variadic tail as a
	// slice; parameters bind with their interned types.
	for i, param := range afndecl.Prototype.Params {
		c.expect(param.Location, param.Name != "",
			diagnostics.ErrUndefinedSymbol,
			"Function parameters must be named")
		ident := ast.Identifier{Name: param.Name}
		typ := fntype.Func.Params[i].Type
		c.scope.Insert(scope.ObjectBind, ident, ident, typ, nil)
	}

	body := c.checkExpression(afndecl.Body, fntype.Func.Result)

	c.expect(afndecl.Body.Loc(),
		body.Terminates ||
			types.IsAssignable(fntype.Func.Result, body.Result),
		diagnostics.ErrTypeMismatch,
		"Result value is not assignable to function result type")
	if !body.Terminates {
		body = c.lowerImplicitCast(fntype.Func.Result, body)
	}
	decl.Func.Body = body

	if afndecl.Flags&(ast.FuncInit|ast.FuncFini|ast.FuncTest) != 0 {
		flags := unparseFlags(afndecl.Flags)
		c.expect(afndecl.Location,
			fntype.Func.Result == types.BuiltinVoid,
			diagnostics.ErrInvalidAttribute,
			"%s function must return void", flags)
		c.expect(afndecl.Location, !afndecl.Exported,
			diagnostics.ErrInvalidAttribute,
			"%s function cannot be exported", flags)
	}

	c.scope = c.scope.Parent
	c.fntype = nil
	return decl
}

func (c *Checker) checkGlobal(agdecl *ast.GlobalDecl) *hir.Declaration {
	if agdecl.Init == nil {
		return nil // Forward declaration
	}
	c.trace("check global %s", agdecl.Ident)

	typ := c.lookupAtype(agdecl.Type)
	initializer := c.checkExpression(agdecl.Init, typ)

	c.expect(agdecl.Init.Loc(),
		types.IsAssignable(typ, initializer.Result),
		diagnostics.ErrTypeMismatch,
		"Constant type is not assignable from initializer type")
	initializer = c.lowerImplicitCast(typ, initializer)

	value, err := eval.Expr(initializer)
	c.expect(agdecl.Init.Loc(), err == nil, diagnostics.ErrNotConstant,
		"Unable to evaluate global initializer at compile time")

	decl := &hir.Declaration{
		Kind:   hir.DeclGlobal,
		Global: hir.GlobalDecl{Type: typ, Value: value},
	}
	if agdecl.Symbol != "" {
		decl.Ident = ast.Identifier{Name: agdecl.Symbol}
		decl.Symbol = agdecl.Symbol
	} else {
		decl.Ident = c.mkIdent(agdecl.Ident)
	}
	return decl
}

func (c *Checker) checkType(adecl *ast.TypeDecl) *hir.Declaration {
	c.trace("check type %s", adecl.Ident)
	typ := c.lookupAtype(adecl.Type)
	return &hir.Declaration{
		Kind:  hir.DeclType,
		Ident: c.mkIdent(adecl.Ident),
		Type:  typ,
	}
}
