// Package eval implements compile-time evaluation of typed expressions.
// The checker uses it for constant declarations, static binding
// initializers, globals, switch case options, array lengths and enum
// values.
package eval

import (
	"errors"

	"github.com/Sovenok-Hacker/harec/internal/frontend/ast"
	"github.com/Sovenok-Hacker/harec/internal/hir"
	"github.com/Sovenok-Hacker/harec/internal/types"
)

// ErrNotConstant reports that an expression cannot be evaluated at
// compile time.
var ErrNotConstant = errors.New("expression is not a compile-time constant")

// Expr evaluates a typed expression to a constant expression. The input
// is not modified.
func Expr(e *hir.Expr) (*hir.Expr, error) {
	switch e.Kind {
	case hir.ExprConstant:
		return evalConstant(e)
	case hir.ExprBinarithm:
		return evalBinarithm(e)
	case hir.ExprUnarithm:
		return evalUnarithm(e)
	case hir.ExprCast:
		return evalCast(e)
	default:
		return nil, ErrNotConstant
	}
}

func evalConstant(e *hir.Expr) (*hir.Expr, error) {
	out := &hir.Expr{
		Kind:     hir.ExprConstant,
		Result:   e.Result,
		Constant: e.Constant,
	}
	if len(e.Constant.Array) != 0 {
		out.Constant.Array = make([]*hir.ArrayConstant, len(e.Constant.Array))
		for i, item := range e.Constant.Array {
			value, err := Expr(item.Value)
			if err != nil {
				return nil, err
			}
			out.Constant.Array[i] = &hir.ArrayConstant{
				Value:  value,
				Expand: item.Expand,
			}
		}
	}
	return out, nil
}

// storageOf resolves the numeric storage class a constant's payload is
// interpreted under.
func storageOf(t *types.Type) types.Storage {
	u := types.Dealias(t)
	if u.Storage == types.Enum {
		return u.Enum.Storage
	}
	return u.Storage
}

func widthBits(s types.Storage) uint {
	switch s {
	case types.I8, types.U8, types.Char:
		return 8
	case types.I16, types.U16:
		return 16
	case types.I32, types.U32, types.Int, types.Uint, types.Rune:
		return 32
	default:
		return 64
	}
}

// truncate masks a payload to the width of its storage class,
// sign-extending signed values.
func truncate(c *hir.Constant, s types.Storage) {
	bits := widthBits(s)
	if bits == 64 {
		return
	}
	mask := uint64(1)<<bits - 1
	if types.IsSignedStorage(s) {
		shift := 64 - bits
		c.IVal = c.IVal << shift >> shift
	} else {
		c.UVal &= mask
	}
}

func evalBinarithm(e *hir.Expr) (*hir.Expr, error) {
	lv, err := Expr(e.Binarithm.LValue)
	if err != nil {
		return nil, err
	}
	rv, err := Expr(e.Binarithm.RValue)
	if err != nil {
		return nil, err
	}

	out := &hir.Expr{Kind: hir.ExprConstant, Result: e.Result}
	op := e.Binarithm.Op
	s := storageOf(lv.Result)

	if op.IsArithmetic() {
		switch {
		case types.IsSignedStorage(s):
			v, err := arithSigned(op, lv.Constant.IVal, rv.Constant.IVal)
			if err != nil {
				return nil, err
			}
			out.Constant.IVal = v
		case types.IsIntegerStorage(s):
			v, err := arithUnsigned(op, lv.Constant.UVal, rv.Constant.UVal)
			if err != nil {
				return nil, err
			}
			out.Constant.UVal = v
		default:
			return nil, ErrNotConstant
		}
		truncate(&out.Constant, storageOf(e.Result))
		return out, nil
	}

	switch s {
	case types.Bool:
		out.Constant.Bool = logical(op, lv.Constant.Bool, rv.Constant.Bool)
	default:
		switch {
		case types.IsSignedStorage(s):
			out.Constant.Bool = compareSigned(op, lv.Constant.IVal, rv.Constant.IVal)
		case types.IsIntegerStorage(s):
			out.Constant.Bool = compareUnsigned(op, lv.Constant.UVal, rv.Constant.UVal)
		default:
			return nil, ErrNotConstant
		}
	}
	return out, nil
}

func arithSigned(op ast.BinaryOp, l, r int64) (int64, error) {
	switch op {
	case ast.BinPlus:
		return l + r, nil
	case ast.BinMinus:
		return l - r, nil
	case ast.BinTimes:
		return l * r, nil
	case ast.BinDiv:
		if r == 0 {
			return 0, ErrNotConstant
		}
		return l / r, nil
	case ast.BinModulo:
		if r == 0 {
			return 0, ErrNotConstant
		}
		return l % r, nil
	case ast.BinBand:
		return l & r, nil
	case ast.BinBor:
		return l | r, nil
	case ast.BinBxor:
		return l ^ r, nil
	case ast.BinLShift:
		return l << uint64(r), nil
	case ast.BinRShift:
		return l >> uint64(r), nil
	}
	return 0, ErrNotConstant
}

func arithUnsigned(op ast.BinaryOp, l, r uint64) (uint64, error) {
	switch op {
	case ast.BinPlus:
		return l + r, nil
	case ast.BinMinus:
		return l - r, nil
	case ast.BinTimes:
		return l * r, nil
	case ast.BinDiv:
		if r == 0 {
			return 0, ErrNotConstant
		}
		return l / r, nil
	case ast.BinModulo:
		if r == 0 {
			return 0, ErrNotConstant
		}
		return l % r, nil
	case ast.BinBand:
		return l & r, nil
	case ast.BinBor:
		return l | r, nil
	case ast.BinBxor:
		return l ^ r, nil
	case ast.BinLShift:
		return l << r, nil
	case ast.BinRShift:
		return l >> r, nil
	}
	return 0, ErrNotConstant
}

func logical(op ast.BinaryOp, l, r bool) bool {
	switch op {
	case ast.BinLAnd:
		return l && r
	case ast.BinLOr:
		return l || r
	case ast.BinLXor:
		return l != r
	case ast.BinLEqual:
		return l == r
	case ast.BinNEqual:
		return l != r
	}
	return false
}

func compareSigned(op ast.BinaryOp, l, r int64) bool {
	switch op {
	case ast.BinLess:
		return l < r
	case ast.BinLessEq:
		return l <= r
	case ast.BinGreater:
		return l > r
	case ast.BinGreaterEq:
		return l >= r
	case ast.BinLEqual:
		return l == r
	case ast.BinNEqual:
		return l != r
	}
	return false
}

func compareUnsigned(op ast.BinaryOp, l, r uint64) bool {
	switch op {
	case ast.BinLess:
		return l < r
	case ast.BinLessEq:
		return l <= r
	case ast.BinGreater:
		return l > r
	case ast.BinGreaterEq:
		return l >= r
	case ast.BinLEqual:
		return l == r
	case ast.BinNEqual:
		return l != r
	}
	return false
}

func evalUnarithm(e *hir.Expr) (*hir.Expr, error) {
	operand, err := Expr(e.Unarithm.Operand)
	if err != nil {
		return nil, err
	}
	out := &hir.Expr{Kind: hir.ExprConstant, Result: e.Result}
	s := storageOf(operand.Result)
	switch e.Unarithm.Op {
	case ast.UnLNot:
		out.Constant.Bool = !operand.Constant.Bool
	case ast.UnBNot:
		out.Constant.UVal = ^operand.Constant.UVal
	case ast.UnMinus:
		out.Constant.IVal = -operand.Constant.IVal
	case ast.UnPlus:
		out.Constant = operand.Constant
	default:
		return nil, ErrNotConstant
	}
	truncate(&out.Constant, s)
	return out, nil
}

func evalCast(e *hir.Expr) (*hir.Expr, error) {
	value, err := Expr(e.Cast.Value)
	if err != nil {
		return nil, err
	}
	from := storageOf(value.Result)
	to := storageOf(e.Cast.Secondary)

	out := &hir.Expr{Kind: hir.ExprConstant, Result: e.Cast.Secondary}
	switch {
	case from == to:
		out.Constant = value.Constant
	case types.IsSignedStorage(from) && types.IsSignedStorage(to):
		out.Constant.IVal = value.Constant.IVal
	case types.IsSignedStorage(from) && types.IsIntegerStorage(to):
		out.Constant.UVal = uint64(value.Constant.IVal)
	case types.IsIntegerStorage(from) && types.IsSignedStorage(to):
		out.Constant.IVal = int64(value.Constant.UVal)
	case types.IsIntegerStorage(from) && types.IsIntegerStorage(to):
		out.Constant.UVal = value.Constant.UVal
	case from == types.Rune && types.IsIntegerStorage(to):
		out.Constant.UVal = uint64(value.Constant.Rune)
	case types.IsIntegerStorage(from) && to == types.Rune:
		out.Constant.Rune = rune(value.Constant.UVal)
	default:
		return nil, ErrNotConstant
	}
	truncate(&out.Constant, to)
	return out, nil
}
