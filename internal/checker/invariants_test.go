package checker

import (
	"testing"

	"github.com/Sovenok-Hacker/harec/internal/frontend/ast"
	"github.com/Sovenok-Hacker/harec/internal/hir"
	"github.com/Sovenok-Hacker/harec/internal/types"
)

// walkExpr visits every node of a typed expression tree.
func walkExpr(e *hir.Expr, visit func(*hir.Expr)) {
	if e == nil {
		return
	}
	visit(e)
	children := []*hir.Expr{
		e.Access.Array, e.Access.Index, e.Access.Struct,
		e.Assert.Cond, e.Assert.Message,
		e.Assign.Object, e.Assign.Value,
		e.Binarithm.LValue, e.Binarithm.RValue,
		e.Call.LValue,
		e.Cast.Value,
		e.Defer.Deferred,
		e.For.Bindings, e.For.Cond, e.For.Afterthought, e.For.Body,
		e.If.Cond, e.If.TrueBranch, e.If.FalseBranch,
		e.Measure.Value,
		e.Return.Value,
		e.Slice.Object, e.Slice.Start, e.Slice.End,
		e.Switch.Value,
	}
	for _, binding := range e.Binding.Bindings {
		children = append(children, binding.Initializer)
	}
	children = append(children, e.Call.Args...)
	for _, item := range e.Constant.Array {
		children = append(children, item.Value)
	}
	children = append(children, e.List.Exprs...)
	for _, field := range e.Struct.Fields {
		children = append(children, field.Value)
	}
	for _, c := range e.Switch.Cases {
		children = append(children, c.Options...)
		children = append(children, c.Value)
	}
	children = append(children, e.Unarithm.Operand)

	for _, child := range children {
		walkExpr(child, visit)
	}
}

// Every expression in a successfully checked unit carries a result type.
func TestTotalityOfAnnotation(t *testing.T) {
	structType := &ast.Type{
		Storage: types.Struct,
		StructUnion: []ast.StructMember{
			{Name: "n", Type: intType()},
		},
	}
	arrayLit := &ast.ConstantExpr{
		Storage: types.Array,
		Array: []*ast.ArrayItem{
			{Value: intLit(1)}, {Value: intLit(2)}, {Value: intLit(3)},
		},
		Location: at(),
	}

	f := voidFunc("f", ast.FuncParam{Name: "n", Type: intType(), Location: at()})
	exprs := []ast.Expression{
		let("a", arrayType(intType(), 3), arrayLit),
		let("s", structType, &ast.StructExpr{
			Fields: []*ast.FieldValue{
				{Name: "n", Type: intType(), Initializer: intLit(9)},
			},
			Location: at(),
		}),
		&ast.IndexExpr{Array: ident("a"), Index: u8Lit(0), Location: at()},
		&ast.SliceExpr{Object: ident("a"), Start: intLit(1), Location: at()},
		&ast.FieldExpr{Struct: ident("s"), Field: "n", Location: at()},
		&ast.CallExpr{
			LValue:   ident("f"),
			Args:     []*ast.CallArg{{Value: intLit(1)}},
			Location: at(),
		},
		&ast.AssertExpr{Cond: boolLit(true), Location: at()},
		&ast.DeferExpr{Deferred: boolLit(false), Location: at()},
		loop("", body(
			&ast.IfExpr{
				Cond:       boolLit(true),
				TrueBranch: &ast.ControlExpr{Kind: ast.ControlBreak, Location: at()},
				Location:   at(),
			})),
	}

	unit, err := checkUnit(t, f, mainFunc(exprs...))
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}

	count := 0
	for _, decl := range unit.Declarations {
		if decl.Kind != hir.DeclFunc {
			continue
		}
		walkExpr(decl.Func.Body, func(e *hir.Expr) {
			count++
			if e.Result == nil {
				t.Errorf("expression of kind %v has no result type", e.Kind)
			}
		})
	}
	if count < 30 {
		t.Errorf("walked only %d expressions; the tree looks truncated", count)
	}
}

// A list ending in a terminating expression terminates.
func TestListTermination(t *testing.T) {
	f := &ast.FuncDecl{
		Ident: ast.Ident("f"),
		Prototype: ast.FuncType{
			Result: ast.BuiltinType(types.Void),
		},
		Body: body(
			intLit(1),
			&ast.ReturnExpr{Location: at()},
		),
		Location: at(),
	}
	unit, err := checkUnit(t, f)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !unit.Declarations[0].Func.Body.Terminates {
		t.Error("a list whose last expression terminates must terminate")
	}
}
