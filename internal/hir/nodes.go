// Package hir holds the typed expression tree produced by the checker.
// Every node carries a concrete result type and a termination flag; code
// generation consumes this tree without further name resolution or
// inference.
package hir

import (
	"github.com/Sovenok-Hacker/harec/internal/frontend/ast"
	"github.com/Sovenok-Hacker/harec/internal/scope"
	"github.com/Sovenok-Hacker/harec/internal/types"
)

// ExprKind tags a typed expression.
type ExprKind int

const (
	ExprAccess ExprKind = iota
	ExprAssert
	ExprAssign
	ExprBinarithm
	ExprBinding
	ExprCall
	ExprCast
	ExprConstant
	ExprControl
	ExprDefer
	ExprFor
	ExprIf
	ExprList
	ExprMeasure
	ExprReturn
	ExprSlice
	ExprStruct
	ExprSwitch
	ExprUnarithm
)

// AccessKind tags the three access forms.
type AccessKind int

const (
	AccessIdentifier AccessKind = iota
	AccessIndex
	AccessField
)

// Expr is a typed expression. Result is never nil after a successful
// check. Terminates is true iff control cannot flow past the expression.
// Exactly one payload field is meaningful, selected by Kind.
type Expr struct {
	Kind       ExprKind
	Result     *types.Type
	Terminates bool

	Access    AccessExpr
	Assert    AssertExpr
	Assign    AssignExpr
	Binarithm BinarithmExpr
	Binding   BindingExpr
	Call      CallExpr
	Cast      CastExpr
	Constant  Constant
	Control   ControlExpr
	Defer     DeferExpr
	For       ForExpr
	If        IfExpr
	List      ListExpr
	Measure   MeasureExpr
	Return    ReturnExpr
	Slice     SliceExpr
	Struct    StructExpr
	Switch    SwitchExpr
	Unarithm  UnarithmExpr
}

// IsConstant lets *Expr serve as the evaluated value of constant scope
// objects.
func (e *Expr) IsConstant() bool {
	return e.Kind == ExprConstant
}

type AccessExpr struct {
	Kind AccessKind

	// AccessIdentifier
	Object *scope.Object

	// AccessIndex
	Array *Expr
	Index *Expr

	// AccessField
	Struct *Expr
	Field  *types.StructField
}

type AssertExpr struct {
	Cond    *Expr // nil for abort
	Message *Expr
}

type AssignExpr struct {
	Object   *Expr
	Value    *Expr
	Op       *ast.BinaryOp // nil for plain assignment
	Indirect bool
}

type BinarithmExpr struct {
	Op     ast.BinaryOp
	LValue *Expr
	RValue *Expr
}

// Binding pairs a scope object with its checked initializer.
type Binding struct {
	Object      *scope.Object
	Initializer *Expr
}

type BindingExpr struct {
	Bindings []*Binding
}

type CallExpr struct {
	LValue *Expr
	Args   []*Expr
}

type CastExpr struct {
	Kind      ast.CastKind
	Secondary *types.Type
	Value     *Expr
}

// ArrayConstant is one member of an array literal.
type ArrayConstant struct {
	Value  *Expr
	Expand bool
}

// Constant is a compile-time value, interpreted per the storage class of
// the owning expression's result type.
type Constant struct {
	IVal  int64
	UVal  uint64
	Rune  rune
	Bool  bool
	Str   []byte
	Array []*ArrayConstant
}

type ControlExpr struct {
	Kind  ast.ControlKind
	Label string
}

type DeferExpr struct {
	Deferred *Expr
}

type ForExpr struct {
	Scope        *scope.Scope
	Label        string
	Bindings     *Expr
	Cond         *Expr
	Afterthought *Expr
	Body         *Expr
}

type IfExpr struct {
	Cond        *Expr
	TrueBranch  *Expr
	FalseBranch *Expr
}

type ListExpr struct {
	Scope *scope.Scope
	Exprs []*Expr
}

type MeasureExpr struct {
	Op    ast.MeasureOp
	Value *Expr
	Type  *types.Type
}

type ReturnExpr struct {
	Value *Expr // nil for bare return
}

type SliceExpr struct {
	Object *Expr
	Start  *Expr
	End    *Expr
}

// StructValue pairs a resolved field descriptor with its checked
// initializer.
type StructValue struct {
	Field *types.StructField
	Value *Expr
}

type StructExpr struct {
	Fields []*StructValue
}

// SwitchCase holds the evaluated option constants and the checked body of
// one switch arm.
type SwitchCase struct {
	Options []*Expr
	Value   *Expr
}

type SwitchExpr struct {
	Value *Expr
	Cases []*SwitchCase
}

type UnarithmExpr struct {
	Op      ast.UnaryOp
	Operand *Expr
}
