package checker

import (
	"testing"

	"github.com/Sovenok-Hacker/harec/internal/frontend/ast"
	"github.com/Sovenok-Hacker/harec/internal/hir"
	"github.com/Sovenok-Hacker/harec/internal/source"
	"github.com/Sovenok-Hacker/harec/internal/types"
)

func TestConstDeclSplicing(t *testing.T) {
	c := &ast.ConstDecl{
		Ident: ast.Ident("ANSWER"),
		Type:  intType(),
		Init: &ast.BinaryExpr{
			Op:       ast.BinPlus,
			LValue:   intLit(40),
			RValue:   intLit(2),
			Location: at(),
		},
		Location: at(),
	}
	exprs := func() []*hir.Expr {
		unit, err := checkUnit(t, c, mainFunc(let("x", intType(), ident("ANSWER"))))
		if err != nil {
			t.Fatalf("check failed: %v", err)
		}
		return unit.Declarations[0].Func.Body.List.Exprs
	}()

	init := exprs[0].Binding.Bindings[0].Initializer
	if init.Kind != hir.ExprConstant {
		t.Fatalf("use of a constant = %v, want a spliced constant", init.Kind)
	}
	if init.Constant.IVal != 42 {
		t.Errorf("spliced value = %d, want 42", init.Constant.IVal)
	}
	if init.Access.Object != nil {
		t.Error("the typed tree must not reference constant objects")
	}
}

func TestConstDeclNotEvaluable(t *testing.T) {
	f := voidFunc("f")
	expectError(t, "Unable to evaluate constant initializer",
		f, &ast.ConstDecl{
			Ident:    ast.Ident("C"),
			Type:     ast.BuiltinType(types.Void),
			Init:     &ast.CallExpr{LValue: ident("f"), Location: at()},
			Location: at(),
		})
}

func TestGlobalDecl(t *testing.T) {
	g := &ast.GlobalDecl{
		Ident: ast.Ident("counter"),
		Type:  intType(),
		Init: &ast.BinaryExpr{
			Op:       ast.BinTimes,
			LValue:   intLit(6),
			RValue:   intLit(7),
			Location: at(),
		},
		Exported: true,
		Location: at(),
	}
	unit, err := checkUnit(t, g)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}

	decl := unit.Declarations[0]
	if decl.Kind != hir.DeclGlobal {
		t.Fatalf("decl kind = %v, want global", decl.Kind)
	}
	if !decl.Exported {
		t.Error("exported flag must carry over")
	}
	if decl.Global.Value.Kind != hir.ExprConstant ||
		decl.Global.Value.Constant.IVal != 42 {
		t.Error("global initializer must be evaluated at compile time")
	}
}

func TestGlobalForwardDeclaration(t *testing.T) {
	g := &ast.GlobalDecl{
		Ident:    ast.Ident("later"),
		Type:     intType(),
		Location: at(),
	}
	unit, err := checkUnit(t, g)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if len(unit.Declarations) != 0 {
		t.Error("a global without an initializer produces no declaration")
	}
}

func TestSymbolAttribute(t *testing.T) {
	f := &ast.FuncDecl{
		Ident:  ast.Ident("start"),
		Symbol: "_start",
		Prototype: ast.FuncType{
			Result: ast.BuiltinType(types.Void),
		},
		Body:     body(&ast.ConstantExpr{Storage: types.Void, Location: at()}),
		Location: at(),
	}
	aunit := &ast.Unit{
		NS:       &ast.Identifier{Name: "rt"},
		SubUnits: []*ast.SubUnit{{Decls: []ast.Decl{f}}},
	}
	unit, err := Check(newStore(), aunit)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}

	decl := unit.Declarations[0]
	if decl.Symbol != "_start" {
		t.Errorf("symbol = %q, want _start", decl.Symbol)
	}
	if decl.Ident.Name != "_start" || decl.Ident.NS != nil {
		t.Errorf("ident = %s, want the unmangled symbol", decl.Ident)
	}
}

func TestNamespaceMangling(t *testing.T) {
	aunit := &ast.Unit{
		NS: &ast.Identifier{Name: "acme"},
		SubUnits: []*ast.SubUnit{{Decls: []ast.Decl{
			mainFunc(),
		}}},
	}
	unit, err := Check(newStore(), aunit)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if got := unit.Declarations[0].Ident.String(); got != "acme::main" {
		t.Errorf("mangled ident = %s, want acme::main", got)
	}
}

func TestInitMustReturnVoid(t *testing.T) {
	f := &ast.FuncDecl{
		Ident: ast.Ident("setup"),
		Flags: ast.FuncInit,
		Prototype: ast.FuncType{
			Result: intType(),
		},
		Body:     body(intLit(1)),
		Location: at(),
	}
	expectError(t, "function must return void", f)
}

func TestInitMustNotBeExported(t *testing.T) {
	f := &ast.FuncDecl{
		Ident: ast.Ident("setup"),
		Flags: ast.FuncInit,
		Prototype: ast.FuncType{
			Result: ast.BuiltinType(types.Void),
		},
		Body:     body(&ast.ConstantExpr{Storage: types.Void, Location: at()}),
		Exported: true,
		Location: at(),
	}
	expectError(t, "function cannot be exported", f)
}

func TestCStyleVariadismRejected(t *testing.T) {
	f := &ast.FuncDecl{
		Ident: ast.Ident("printf"),
		Prototype: ast.FuncType{
			Result:    ast.BuiltinType(types.Void),
			Variadism: types.VariadismC,
			Params: []ast.FuncParam{
				{Name: "fmt", Type: ast.BuiltinType(types.String), Location: at()},
			},
		},
		Body:     body(&ast.ConstantExpr{Storage: types.Void, Location: at()}),
		Location: at(),
	}
	expectError(t, "C-style variadism", f)
}

func TestUnnamedParameter(t *testing.T) {
	f := &ast.FuncDecl{
		Ident: ast.Ident("f"),
		Prototype: ast.FuncType{
			Result: ast.BuiltinType(types.Void),
			Params: []ast.FuncParam{
				{Type: intType(), Location: at()},
			},
		},
		Body:     body(&ast.ConstantExpr{Storage: types.Void, Location: at()}),
		Location: at(),
	}
	expectError(t, "Function parameters must be named", f)
}

func TestFunctionResultMismatch(t *testing.T) {
	f := &ast.FuncDecl{
		Ident: ast.Ident("f"),
		Prototype: ast.FuncType{
			Result: intType(),
		},
		Body:     body(boolLit(true)),
		Location: at(),
	}
	expectError(t, "Result value is not assignable to function result type", f)
}

func TestFunctionBodyTerminates(t *testing.T) {
	f := &ast.FuncDecl{
		Ident: ast.Ident("f"),
		Prototype: ast.FuncType{
			Result: intType(),
		},
		Body: body(&ast.ReturnExpr{
			Value:    intLit(3),
			Location: at(),
		}),
		Location: at(),
	}
	unit, err := checkUnit(t, f)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	fnBody := unit.Declarations[0].Func.Body
	if !fnBody.Terminates {
		t.Error("a body ending in return terminates")
	}
	ret := fnBody.List.Exprs[0]
	if ret.Return.Value.Kind != hir.ExprConstant ||
		ret.Return.Value.Result != types.BuiltinInt {
		t.Error("return value must be checked against the result type")
	}
}

func TestImportsUnimplemented(t *testing.T) {
	aunit := &ast.Unit{
		SubUnits: []*ast.SubUnit{{
			Imports: []*ast.Import{{
				Ident:    ast.Ident("io"),
				Location: source.NewLocation("test.ha", 1, 1),
			}},
		}},
	}
	if _, err := Check(newStore(), aunit); err == nil {
		t.Fatal("imports must be rejected as unimplemented")
	}
}

func TestTypeDecl(t *testing.T) {
	d := &ast.TypeDecl{
		Ident: ast.Ident("point"),
		Type: &ast.Type{
			Storage: types.Struct,
			StructUnion: []ast.StructMember{
				{Name: "x", Type: intType()},
				{Name: "y", Type: intType()},
			},
		},
		Location: at(),
	}
	unit, err := checkUnit(t, d)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	decl := unit.Declarations[0]
	if decl.Kind != hir.DeclType {
		t.Fatalf("decl kind = %v, want type", decl.Kind)
	}
	if decl.Type.Storage != types.Struct || decl.Type.Size != 8 {
		t.Errorf("type = %s (size %d), want an 8-byte struct",
			decl.Type, decl.Type.Size)
	}
}
