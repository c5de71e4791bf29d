package checker

import (
	"fmt"

	"github.com/Sovenok-Hacker/harec/internal/diagnostics"
	"github.com/Sovenok-Hacker/harec/internal/eval"
	"github.com/Sovenok-Hacker/harec/internal/frontend/ast"
	"github.com/Sovenok-Hacker/harec/internal/hir"
	"github.com/Sovenok-Hacker/harec/internal/scope"
	"github.com/Sovenok-Hacker/harec/internal/types"
)

// checkExpression elaborates one AST expression into a typed expression.
// hint, when non-nil, is the contextually expected type; it drives
// inference but never forces a conversion by itself.
func (c *Checker) checkExpression(aexpr ast.Expression, hint *types.Type) *hir.Expr {
	switch e := aexpr.(type) {
	case *ast.IdentifierExpr:
		return c.checkAccessIdentifier(e)
	case *ast.IndexExpr:
		return c.checkAccessIndex(e)
	case *ast.FieldExpr:
		return c.checkAccessField(e)
	case *ast.AssertExpr:
		return c.checkAssert(e)
	case *ast.AssignExpr:
		return c.checkAssign(e)
	case *ast.BinaryExpr:
		return c.checkBinarithm(e)
	case *ast.BindingExpr:
		return c.checkBinding(e)
	case *ast.CallExpr:
		return c.checkCall(e)
	case *ast.CastExpr:
		return c.checkCast(e)
	case *ast.ConstantExpr:
		return c.checkConstant(e, hint)
	case *ast.ControlExpr:
		return c.checkControl(e)
	case *ast.DeferExpr:
		return c.checkDefer(e)
	case *ast.ForExpr:
		return c.checkFor(e)
	case *ast.IfExpr:
		return c.checkIf(e)
	case *ast.ListExpr:
		return c.checkList(e)
	case *ast.MatchExpr:
		c.expect(e.Location, false, diagnostics.ErrUnimplemented,
			"match expressions are not implemented")
		return nil
	case *ast.MeasureExpr:
		return c.checkMeasure(e)
	case *ast.ReturnExpr:
		return c.checkReturn(e)
	case *ast.SliceExpr:
		return c.checkSlice(e)
	case *ast.StructExpr:
		return c.checkStruct(e)
	case *ast.SwitchExpr:
		return c.checkSwitch(e)
	case *ast.UnaryExpr:
		return c.checkUnarithm(e)
	default:
		panic(fmt.Sprintf("checker: unhandled expression %T", aexpr))
	}
}

func (c *Checker) checkAccessIdentifier(aexpr *ast.IdentifierExpr) *hir.Expr {
	c.trace("access %s", aexpr.Ident)
	obj := c.scope.Lookup(aexpr.Ident)
	c.expect(aexpr.Location, obj != nil, diagnostics.ErrUndefinedSymbol,
		"Unknown object '%s'", aexpr.Ident)

	switch obj.Kind {
	case scope.ObjectConst:
		// Lower constants: the stored value is spliced into the use
		// site, so the typed tree never references constant objects.
		value := *obj.Value.(*hir.Expr)
		return &value
	case scope.ObjectBind, scope.ObjectDecl:
		return &hir.Expr{
			Kind:   hir.ExprAccess,
			Result: obj.Type,
			Access: hir.AccessExpr{
				Kind:   hir.AccessIdentifier,
				Object: obj,
			},
		}
	default: // scope.ObjectType
		c.expect(aexpr.Location, false, diagnostics.ErrUndefinedSymbol,
			"Expected identifier, got type")
		return nil
	}
}

func (c *Checker) checkAccessIndex(aexpr *ast.IndexExpr) *hir.Expr {
	c.trace("access index")
	array := c.checkExpression(aexpr.Array, nil)
	index := c.checkExpression(aexpr.Index, nil)

	atype := types.Dereference(array.Result)
	c.expect(aexpr.Array.Loc(), atype != nil, diagnostics.ErrNullableMisuse,
		"Cannot dereference nullable pointer for indexing")
	itype := types.Dealias(index.Result)
	c.expect(aexpr.Array.Loc(),
		atype.Storage == types.Array || atype.Storage == types.Slice,
		diagnostics.ErrNotIndexable,
		"Cannot index non-array, non-slice %s object", atype.Storage)
	c.expect(aexpr.Index.Loc(), types.IsInteger(itype),
		diagnostics.ErrTypeMismatch,
		"Cannot use non-integer %s type as slice/array index", itype.Storage)

	members := atype.Array.Members
	return &hir.Expr{
		Kind:   hir.ExprAccess,
		Result: c.store.LookupWithFlags(members, atype.Flags|members.Flags),
		Access: hir.AccessExpr{
			Kind:  hir.AccessIndex,
			Array: array,
			Index: c.lowerImplicitCast(types.BuiltinSize, index),
		},
	}
}

func (c *Checker) checkAccessField(aexpr *ast.FieldExpr) *hir.Expr {
	c.trace("access field %s", aexpr.Field)
	sexpr := c.checkExpression(aexpr.Struct, nil)

	stype := types.Dereference(sexpr.Result)
	c.expect(aexpr.Struct.Loc(), stype != nil, diagnostics.ErrNullableMisuse,
		"Cannot dereference nullable pointer for field selection")
	c.expect(aexpr.Struct.Loc(),
		stype.Storage == types.Struct || stype.Storage == types.Union,
		diagnostics.ErrNotIndexable,
		"Cannot select field from non-struct, non-union object")

	field := types.GetField(stype, aexpr.Field)
	c.expect(aexpr.Struct.Loc(), field != nil, diagnostics.ErrFieldNotFound,
		"No such struct field '%s'", aexpr.Field)

	return &hir.Expr{
		Kind:   hir.ExprAccess,
		Result: c.store.LookupWithFlags(field.Type, stype.Flags|field.Type.Flags),
		Access: hir.AccessExpr{
			Kind:   hir.AccessField,
			Struct: sexpr,
			Field:  field,
		},
	}
}

func (c *Checker) checkAssert(aexpr *ast.AssertExpr) *hir.Expr {
	c.trace("assert")
	expr := &hir.Expr{Kind: hir.ExprAssert, Result: types.BuiltinVoid}

	if aexpr.Cond != nil {
		cond := c.checkExpression(aexpr.Cond, types.BuiltinBool)
		c.expect(aexpr.Cond.Loc(),
			cond.Result.Storage == types.Bool,
			diagnostics.ErrTypeMismatch,
			"Assertion condition must be boolean")
		expr.Assert.Cond = cond
	} else {
		expr.Terminates = true
	}

	if aexpr.Message != nil {
		message := c.checkExpression(aexpr.Message, types.BuiltinString)
		c.expect(aexpr.Message.Loc(),
			message.Result.Storage == types.String,
			diagnostics.ErrTypeMismatch,
			"Assertion message must be string")
		expr.Assert.Message = message
	} else {
		s := fmt.Sprintf("Assertion failed: %s", aexpr.Location)
		expr.Assert.Message = &hir.Expr{
			Kind:     hir.ExprConstant,
			Result:   types.BuiltinFor(types.String, true),
			Constant: hir.Constant{Str: []byte(s)},
		}
	}
	return expr
}

func (c *Checker) checkAssign(aexpr *ast.AssignExpr) *hir.Expr {
	c.trace("assign")
	object := c.checkExpression(aexpr.Object, nil)
	value := c.checkExpression(aexpr.Value, object.Result)

	if aexpr.Indirect {
		c.expect(aexpr.Location,
			object.Result.Storage == types.Pointer,
			diagnostics.ErrTypeMismatch,
			"Cannot dereference non-pointer type for assignment")
		c.expect(aexpr.Location,
			object.Result.Pointer.Flags&types.PtrNullable == 0,
			diagnostics.ErrNullableMisuse,
			"Cannot dereference nullable pointer type")
		referent := object.Result.Pointer.Referent
		c.expect(aexpr.Location,
			types.IsAssignable(referent, value.Result),
			diagnostics.ErrTypeMismatch,
			"Value type is not assignable to pointer type")
		value = c.lowerImplicitCast(referent, value)
	} else {
		c.expect(aexpr.Location, object.Kind == hir.ExprAccess,
			diagnostics.ErrTypeMismatch,
			"Cannot assign to unaddressable object")
		c.expect(aexpr.Location, !object.Result.IsConst(),
			diagnostics.ErrConstReassignment,
			"Cannot assign to const object")
		c.expect(aexpr.Location,
			types.IsAssignable(object.Result, value.Result),
			diagnostics.ErrTypeMismatch,
			"rvalue type is not assignable to lvalue")
		value = c.lowerImplicitCast(object.Result, value)
	}

	return &hir.Expr{
		Kind:   hir.ExprAssign,
		Result: types.BuiltinVoid,
		Assign: hir.AssignExpr{
			Object:   object,
			Value:    value,
			Op:       aexpr.Op,
			Indirect: aexpr.Indirect,
		},
	}
}

func (c *Checker) checkBinarithm(aexpr *ast.BinaryExpr) *hir.Expr {
	c.trace("binarithm %s", aexpr.Op)
	lvalue := c.checkExpression(aexpr.LValue, nil)
	rvalue := c.checkExpression(aexpr.RValue, nil)

	// TODO: Promotion; for now both operands must share a storage class.
	c.expect(aexpr.Location,
		lvalue.Result.Storage == rvalue.Result.Storage,
		diagnostics.ErrTypeMismatch,
		"Operands of %s must have identical types", aexpr.Op)

	result := types.BuiltinBool
	if aexpr.Op.IsArithmetic() {
		result = lvalue.Result
	}
	return &hir.Expr{
		Kind:   hir.ExprBinarithm,
		Result: result,
		Binarithm: hir.BinarithmExpr{
			Op:     aexpr.Op,
			LValue: lvalue,
			RValue: rvalue,
		},
	}
}

func (c *Checker) checkBinding(aexpr *ast.BindingExpr) *hir.Expr {
	c.trace("binding")
	expr := &hir.Expr{Kind: hir.ExprBinding, Result: types.BuiltinVoid}

	for _, abinding := range aexpr.Bindings {
		var typ *types.Type
		if abinding.Type != nil {
			typ = c.lookupAtype(abinding.Type)
			typ = c.store.LookupWithFlags(typ, typ.Flags|abinding.Flags)
		}

		initializer := c.checkExpression(abinding.Initializer, typ)
		if typ == nil {
			typ = c.store.LookupWithFlags(initializer.Result, abinding.Flags)
		}
		c.expect(aexpr.Location,
			typ.Size != 0 && typ.Size != types.Undefined,
			diagnostics.ErrZeroSizeBinding,
			"Cannot create binding for type of zero or undefined size")
		c.expect(aexpr.Location,
			types.IsAssignable(typ, initializer.Result),
			diagnostics.ErrTypeMismatch,
			"Initializer is not assignable to binding type")
		initializer = c.lowerImplicitCast(typ, initializer)

		binding := &hir.Binding{Initializer: initializer}
		ident := ast.Identifier{Name: abinding.Name}
		if !abinding.IsStatic {
			binding.Object = c.scope.Insert(
				scope.ObjectBind, ident, ident, typ, nil)
		} else {
			value, err := eval.Expr(initializer)
			c.expect(abinding.Initializer.Loc(), err == nil,
				diagnostics.ErrNotConstant,
				"Unable to evaluate static initializer at compile time")
			binding.Initializer = value

			gen := ast.Identifier{Name: fmt.Sprintf("static.%d", c.id)}
			c.id++
			binding.Object = c.scope.Insert(
				scope.ObjectDecl, gen, ident, typ, nil)
		}
		expr.Binding.Bindings = append(expr.Binding.Bindings, binding)
	}
	return expr
}

// lowerVaargs collects the remaining call arguments into a synthetic
// array literal whose member type is the variadic parameter's member
// type.
func (c *Checker) lowerVaargs(args []*ast.CallArg, members *types.Type) *hir.Expr {
	val := &ast.ConstantExpr{
		Storage:  types.Array,
		Location: args[0].Value.Loc(),
	}
	for _, arg := range args {
		val.Array = append(val.Array, &ast.ArrayItem{Value: arg.Value})
	}

	hint := c.store.LookupArray(members, types.Undefined)
	vaargs := c.checkExpression(val, hint)
	c.expect(val.Location,
		vaargs.Result.Storage == types.Array &&
			vaargs.Result.Array.Members == members,
		diagnostics.ErrTypeMismatch,
		"Argument is not assignable to variadic parameter type")
	return vaargs
}

func (c *Checker) checkCall(aexpr *ast.CallExpr) *hir.Expr {
	c.trace("call")
	lvalue := c.checkExpression(aexpr.LValue, nil)

	fntype := types.Dereference(lvalue.Result)
	c.expect(aexpr.Location, fntype != nil, diagnostics.ErrNullableMisuse,
		"Cannot dereference nullable pointer type for function call")
	c.expect(aexpr.Location, fntype.Storage == types.Function,
		diagnostics.ErrNotCallable,
		"Cannot call non-function type")

	expr := &hir.Expr{
		Kind:   hir.ExprCall,
		Result: fntype.Func.Result,
		Call:   hir.CallExpr{LValue: lvalue},
	}

	params := fntype.Func.Params
	args := aexpr.Args
	for len(params) > 0 && len(args) > 0 {
		param := params[0]

		if len(params) == 1 && fntype.Func.Variadism == types.VariadismNative &&
			!args[0].Variadic {
			vaargs := c.lowerVaargs(args, param.Type.Array.Members)
			expr.Call.Args = append(expr.Call.Args,
				c.lowerImplicitCast(param.Type, vaargs))
			params = nil
			args = nil
			break
		}

		value := c.checkExpression(args[0].Value, param.Type)
		c.expect(args[0].Value.Loc(),
			types.IsAssignable(param.Type, value.Result),
			diagnostics.ErrTypeMismatch,
			"Argument is not assignable to parameter type")
		expr.Call.Args = append(expr.Call.Args,
			c.lowerImplicitCast(param.Type, value))

		params = params[1:]
		args = args[1:]
	}

	c.expect(aexpr.Location, len(args) == 0, diagnostics.ErrWrongArgCount,
		"Too many parameters for function call")
	c.expect(aexpr.Location, len(params) == 0, diagnostics.ErrWrongArgCount,
		"Not enough parameters for function call")
	return expr
}

func (c *Checker) checkCast(aexpr *ast.CastExpr) *hir.Expr {
	c.trace("cast")
	secondary := c.lookupAtype(aexpr.Type)
	value := c.checkExpression(aexpr.Value, secondary)
	c.expect(aexpr.Type.Location,
		types.IsCastable(secondary, value.Result),
		diagnostics.ErrInvalidCast,
		"Invalid cast")

	if aexpr.Kind == ast.CastAssertion || aexpr.Kind == ast.CastTest {
		primary := types.Dealias(value.Result)
		c.expect(aexpr.Value.Loc(),
			primary.Storage == types.TaggedUnion,
			diagnostics.ErrTaggedMisuse,
			"Expected a tagged union type")
		found := false
		for _, member := range primary.Tagged {
			if member.ID == secondary.ID {
				found = true
				break
			}
		}
		c.expect(aexpr.Type.Location, found, diagnostics.ErrTaggedMisuse,
			"Type is not a valid member of the tagged union type")
	}

	result := secondary
	if aexpr.Kind == ast.CastTest {
		result = types.BuiltinBool
	}
	return &hir.Expr{
		Kind:   hir.ExprCast,
		Result: result,
		Cast: hir.CastExpr{
			Kind:      aexpr.Kind,
			Secondary: secondary,
			Value:     value,
		},
	}
}

func (c *Checker) checkArray(aexpr *ast.ConstantExpr, hint *types.Type) *hir.Expr {
	expr := &hir.Expr{Kind: hir.ExprConstant}

	var members *types.Type
	if hint != nil {
		h := types.Dealias(hint)
		if h.Storage == types.Array || h.Storage == types.Slice {
			members = h.Array.Members
		}
	}

	expandable := false
	for i, item := range aexpr.Array {
		value := c.checkExpression(item.Value, members)
		cur := &hir.ArrayConstant{Value: value}

		if members == nil {
			members = value.Result
		} else {
			c.expect(item.Value.Loc(),
				types.IsAssignable(members, value.Result),
				diagnostics.ErrTypeMismatch,
				"Array members must be of a uniform type")
			cur.Value = c.lowerImplicitCast(members, value)
		}

		if item.Expand {
			c.expect(item.Value.Loc(), i == len(aexpr.Array)-1,
				diagnostics.ErrTypeMismatch,
				"Only the last array member may be expanded")
			expandable = true
			cur.Expand = true
		}
		expr.Constant.Array = append(expr.Constant.Array, cur)
	}

	c.expect(aexpr.Location, members != nil, diagnostics.ErrTypeMismatch,
		"Cannot infer type of empty array literal")

	length := uint64(len(aexpr.Array))
	if expandable {
		c.expect(aexpr.Location, hint != nil, diagnostics.ErrTypeMismatch,
			"Cannot expand array for inferred type")
		c.expect(aexpr.Location,
			hint.Storage == types.Array &&
				hint.Array.Length != types.Undefined &&
				hint.Array.Length >= length,
			diagnostics.ErrTypeMismatch,
			"Cannot expand array into destination type")
		expr.Result = c.store.LookupArray(members, hint.Array.Length)
	} else {
		expr.Result = c.store.LookupArray(members, length)
	}
	return expr
}

func (c *Checker) checkConstant(aexpr *ast.ConstantExpr, hint *types.Type) *hir.Expr {
	c.trace("constant %s", aexpr.Storage)
	switch aexpr.Storage {
	case types.Array:
		return c.checkArray(aexpr, hint)
	case types.F32, types.F64, types.Struct:
		c.expect(aexpr.Location, false, diagnostics.ErrUnimplemented,
			"%s constants are not implemented", aexpr.Storage)
		return nil
	}

	expr := &hir.Expr{
		Kind:   hir.ExprConstant,
		Result: types.BuiltinFor(aexpr.Storage, false),
	}
	switch aexpr.Storage {
	case types.I8, types.I16, types.I32, types.I64, types.Int:
		expr.Constant.IVal = aexpr.IVal
	case types.U8, types.U16, types.U32, types.U64, types.Uint, types.Size:
		expr.Constant.UVal = aexpr.UVal
	case types.Rune:
		expr.Constant.Rune = aexpr.Rune
	case types.Bool:
		expr.Constant.Bool = aexpr.Bool
	case types.Null, types.Void:
		// No storage
	case types.String:
		expr.Constant.Str = append([]byte(nil), aexpr.Str...)
	default:
		panic(fmt.Sprintf("checker: invalid constant storage %s", aexpr.Storage))
	}
	return expr
}

func (c *Checker) checkControl(aexpr *ast.ControlExpr) *hir.Expr {
	c.trace("control")
	target := c.scope.LookupLabel(aexpr.Label)
	c.expect(aexpr.Location, target != nil, diagnostics.ErrUnknownLabel,
		"Unknown label %s", aexpr.Label)
	return &hir.Expr{
		Kind:       hir.ExprControl,
		Result:     types.BuiltinVoid,
		Terminates: true,
		Control: hir.ControlExpr{
			Kind:  aexpr.Kind,
			Label: aexpr.Label,
		},
	}
}

func (c *Checker) checkDefer(aexpr *ast.DeferExpr) *hir.Expr {
	c.expect(aexpr.Location, !c.deferring, diagnostics.ErrTypeMismatch,
		"Cannot defer within another defer expression")
	expr := &hir.Expr{Kind: hir.ExprDefer, Result: types.BuiltinVoid}
	c.deferring = true
	expr.Defer.Deferred = c.checkExpression(aexpr.Deferred, nil)
	c.deferring = false
	return expr
}

func (c *Checker) checkFor(aexpr *ast.ForExpr) *hir.Expr {
	c.trace("for")
	expr := &hir.Expr{Kind: hir.ExprFor, Result: types.BuiltinVoid}
	expr.For.Label = aexpr.Label

	c.scope = scope.Push(c.scope, scope.ClassLoop)
	c.scope.Label = aexpr.Label
	expr.For.Scope = c.scope
	defer func() { c.scope = c.scope.Parent }()

	if aexpr.Label != "" {
		for s := c.scope.Parent; s != nil; s = s.Parent {
			if s.Label == "" {
				continue
			}
			c.expect(aexpr.LabelLoc, s.Label != aexpr.Label,
				diagnostics.ErrDuplicateLabel,
				"for loop label must be unique among its ancestors")
		}
	}

	if aexpr.Bindings != nil {
		expr.For.Bindings = c.checkExpression(aexpr.Bindings, nil)
	}

	cond := c.checkExpression(aexpr.Cond, types.BuiltinBool)
	c.expect(aexpr.Cond.Loc(), cond.Result.Storage == types.Bool,
		diagnostics.ErrTypeMismatch,
		"Expected for condition to be boolean")
	expr.For.Cond = cond

	if aexpr.Afterthought != nil {
		expr.For.Afterthought = c.checkExpression(aexpr.Afterthought, nil)
	}
	expr.For.Body = c.checkExpression(aexpr.Body, nil)
	return expr
}

func (c *Checker) checkIf(aexpr *ast.IfExpr) *hir.Expr {
	c.trace("if")
	expr := &hir.Expr{Kind: hir.ExprIf}

	cond := c.checkExpression(aexpr.Cond, types.BuiltinBool)
	trueBranch := c.checkExpression(aexpr.TrueBranch, nil)

	var falseBranch *hir.Expr
	if aexpr.FalseBranch != nil {
		falseBranch = c.checkExpression(aexpr.FalseBranch, nil)

		switch {
		case trueBranch.Terminates && falseBranch.Terminates:
			expr.Result = types.BuiltinVoid
			expr.Terminates = true
		case trueBranch.Terminates:
			expr.Result = falseBranch.Result
		case falseBranch.Terminates:
			expr.Result = trueBranch.Result
		default:
			// TODO: Form a tagged union when the results differ.
			c.expect(aexpr.Location,
				trueBranch.Result == falseBranch.Result,
				diagnostics.ErrTypeMismatch,
				"If branches have mismatched result types")
			expr.Result = trueBranch.Result
		}
	} else {
		expr.Result = types.BuiltinVoid
		expr.Terminates = trueBranch.Terminates
	}

	c.expect(aexpr.Cond.Loc(), cond.Result.Storage == types.Bool,
		diagnostics.ErrTypeMismatch,
		"Expected if condition to be boolean")

	expr.If.Cond = cond
	expr.If.TrueBranch = trueBranch
	expr.If.FalseBranch = falseBranch
	return expr
}

func (c *Checker) checkList(aexpr *ast.ListExpr) *hir.Expr {
	c.trace("expression-list")
	expr := &hir.Expr{Kind: hir.ExprList, Result: types.BuiltinVoid}

	c.scope = scope.Push(c.scope, scope.ClassBlock)
	expr.List.Scope = c.scope
	defer func() { c.scope = c.scope.Parent }()

	for i, sub := range aexpr.Exprs {
		lexpr := c.checkExpression(sub, nil)
		expr.List.Exprs = append(expr.List.Exprs, lexpr)
		if i == len(aexpr.Exprs)-1 {
			expr.Result = lexpr.Result
			expr.Terminates = lexpr.Terminates
		}
	}
	return expr
}

func (c *Checker) checkMeasure(aexpr *ast.MeasureExpr) *hir.Expr {
	c.trace("measure")
	expr := &hir.Expr{
		Kind:    hir.ExprMeasure,
		Result:  types.BuiltinSize,
		Measure: hir.MeasureExpr{Op: aexpr.Op},
	}

	switch aexpr.Op {
	case ast.MeasureLen:
		value := c.checkExpression(aexpr.Value, nil)
		vstor := value.Result.Storage
		c.expect(aexpr.Value.Loc(),
			vstor == types.Array || vstor == types.Slice ||
				vstor == types.String,
			diagnostics.ErrTypeMismatch,
			"len argument must be of an array, slice, or str type")
		c.expect(aexpr.Value.Loc(),
			value.Result.Size != types.Undefined,
			diagnostics.ErrTypeMismatch,
			"Cannot take length of array type with undefined length")
		expr.Measure.Value = value
	case ast.MeasureSize:
		expr.Measure.Type = c.lookupAtype(aexpr.Type)
	case ast.MeasureOffset:
		c.expect(aexpr.Location, false, diagnostics.ErrUnimplemented,
			"offset measurement is not implemented")
	}
	return expr
}

func (c *Checker) checkReturn(aexpr *ast.ReturnExpr) *hir.Expr {
	c.trace("return")
	c.expect(aexpr.Location, c.fntype != nil, diagnostics.ErrTypeMismatch,
		"Cannot return outside of a function")
	expr := &hir.Expr{
		Kind:       hir.ExprReturn,
		Result:     types.BuiltinVoid,
		Terminates: true,
	}

	if aexpr.Value != nil {
		result := c.fntype.Func.Result
		rval := c.checkExpression(aexpr.Value, result)
		c.expect(aexpr.Value.Loc(),
			types.IsAssignable(result, rval.Result),
			diagnostics.ErrTypeMismatch,
			"Return value is not assignable to function result type")
		expr.Return.Value = c.lowerImplicitCast(result, rval)
	}
	return expr
}

func (c *Checker) checkSlice(aexpr *ast.SliceExpr) *hir.Expr {
	c.trace("slice")
	object := c.checkExpression(aexpr.Object, nil)

	atype := types.Dereference(object.Result)
	c.expect(aexpr.Object.Loc(), atype != nil, diagnostics.ErrNullableMisuse,
		"Cannot dereference nullable pointer for slicing")
	c.expect(aexpr.Object.Loc(),
		atype.Storage == types.Slice || atype.Storage == types.Array,
		diagnostics.ErrNotIndexable,
		"Cannot slice non-array, non-slice object")

	expr := &hir.Expr{
		Kind:   hir.ExprSlice,
		Result: c.store.LookupSlice(atype.Array.Members),
		Slice:  hir.SliceExpr{Object: object},
	}

	for _, bound := range []struct {
		aexpr ast.Expression
		out   **hir.Expr
	}{
		{aexpr.Start, &expr.Slice.Start},
		{aexpr.End, &expr.Slice.End},
	} {
		if bound.aexpr == nil {
			continue
		}
		value := c.checkExpression(bound.aexpr, nil)
		itype := types.Dealias(value.Result)
		c.expect(bound.aexpr.Loc(), types.IsInteger(itype),
			diagnostics.ErrTypeMismatch,
			"Cannot use non-integer %s type as slicing operand",
			itype.Storage)
		*bound.out = c.lowerImplicitCast(types.BuiltinSize, value)
	}
	return expr
}

func (c *Checker) checkStruct(aexpr *ast.StructExpr) *hir.Expr {
	c.trace("struct")
	c.expect(aexpr.Location, !aexpr.Autofill, diagnostics.ErrUnimplemented,
		"Struct autofill is not implemented")
	c.expect(aexpr.Location, aexpr.TypeName == nil, diagnostics.ErrUnimplemented,
		"Named struct literals are not implemented")

	stype := &ast.Type{
		Location: aexpr.Location,
		Storage:  types.Struct,
		Flags:    types.FlagConst,
	}
	expr := &hir.Expr{Kind: hir.ExprStruct}
	for _, afield := range aexpr.Fields {
		stype.StructUnion = append(stype.StructUnion, ast.StructMember{
			Name: afield.Name,
			Type: afield.Type,
		})
		value := c.checkExpression(afield.Initializer, c.lookupAtype(afield.Type))
		expr.Struct.Fields = append(expr.Struct.Fields, &hir.StructValue{
			Value: value,
		})
	}

	expr.Result = c.lookupAtype(stype)

	for i, afield := range aexpr.Fields {
		sexpr := expr.Struct.Fields[i]
		field := types.GetField(expr.Result, afield.Name)
		c.expect(aexpr.Location, field != nil, diagnostics.ErrFieldNotFound,
			"No field by this name exists for this type")
		c.expect(aexpr.Location,
			types.IsAssignable(field.Type, sexpr.Value.Result),
			diagnostics.ErrTypeMismatch,
			"Cannot initialize struct field from value of this type")
		sexpr.Field = field
		sexpr.Value = c.lowerImplicitCast(field.Type, sexpr.Value)
	}
	return expr
}

func (c *Checker) checkSwitch(aexpr *ast.SwitchExpr) *hir.Expr {
	c.trace("switch")
	value := c.checkExpression(aexpr.Value, nil)
	typ := value.Result
	expr := &hir.Expr{
		Kind:   hir.ExprSwitch,
		Switch: hir.SwitchExpr{Value: value},
	}

	// TODO: Test for dupes and exhaustiveness.
	for _, acase := range aexpr.Cases {
		_case := &hir.SwitchCase{}
		expr.Switch.Cases = append(expr.Switch.Cases, _case)

		for _, aopt := range acase.Options {
			option := c.checkExpression(aopt, typ)
			// XXX: Should this be assignable instead?
			c.expect(aopt.Loc(), typ == option.Result,
				diagnostics.ErrTypeMismatch,
				"Invalid type for switch case")

			evaled, err := eval.Expr(option)
			c.expect(aopt.Loc(), err == nil, diagnostics.ErrNotConstant,
				"Unable to evaluate case at compile time")
			_case.Options = append(_case.Options, evaled)
		}

		_case.Value = c.checkExpression(acase.Value, typ)
		if _case.Value.Terminates {
			continue
		}

		if expr.Result == nil {
			expr.Result = _case.Value.Result
		} else {
			// TODO: Form a tagged union when the results differ.
			c.expect(aexpr.Location, expr.Result == _case.Value.Result,
				diagnostics.ErrTypeMismatch,
				"Switch cases have mismatched result types")
		}
	}

	if expr.Result == nil {
		expr.Result = types.BuiltinVoid
		expr.Terminates = true
	}
	return expr
}

func (c *Checker) checkUnarithm(aexpr *ast.UnaryExpr) *hir.Expr {
	c.trace("unarithm %s", aexpr.Op)
	operand := c.checkExpression(aexpr.Operand, nil)
	expr := &hir.Expr{
		Kind: hir.ExprUnarithm,
		Unarithm: hir.UnarithmExpr{
			Op:      aexpr.Op,
			Operand: operand,
		},
	}

	switch aexpr.Op {
	case ast.UnLNot:
		c.expect(aexpr.Operand.Loc(),
			operand.Result.Storage == types.Bool,
			diagnostics.ErrTypeMismatch,
			"Cannot perform logical NOT (!) on non-boolean type")
		expr.Result = types.BuiltinBool
	case ast.UnBNot:
		c.expect(aexpr.Operand.Loc(), types.IsInteger(operand.Result),
			diagnostics.ErrTypeMismatch,
			"Cannot perform binary NOT (~) on non-integer type")
		c.expect(aexpr.Operand.Loc(), !types.IsSigned(operand.Result),
			diagnostics.ErrTypeMismatch,
			"Cannot perform binary NOT (~) on signed type")
		expr.Result = operand.Result
	case ast.UnMinus, ast.UnPlus:
		c.expect(aexpr.Operand.Loc(), types.IsNumeric(operand.Result),
			diagnostics.ErrTypeMismatch,
			"Cannot perform operation on non-numeric type")
		c.expect(aexpr.Operand.Loc(), types.IsSigned(operand.Result),
			diagnostics.ErrTypeMismatch,
			"Cannot perform operation on unsigned type")
		expr.Result = operand.Result
	case ast.UnAddress:
		expr.Result = c.store.LookupPointer(operand.Result, 0)
	case ast.UnDeref:
		c.expect(aexpr.Operand.Loc(),
			operand.Result.Storage == types.Pointer,
			diagnostics.ErrTypeMismatch,
			"Cannot de-reference non-pointer type")
		c.expect(aexpr.Operand.Loc(),
			operand.Result.Pointer.Flags&types.PtrNullable == 0,
			diagnostics.ErrNullableMisuse,
			"Cannot dereference nullable pointer type")
		expr.Result = operand.Result.Pointer.Referent
	}
	return expr
}
