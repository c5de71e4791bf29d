package ast

import (
	"github.com/Sovenok-Hacker/harec/internal/source"
	"github.com/Sovenok-Hacker/harec/internal/types"
)

// IdentifierExpr references a scope object by (possibly qualified) name.
type IdentifierExpr struct {
	Ident Identifier
	source.Location
}

func (e *IdentifierExpr) INode()               {}
func (e *IdentifierExpr) Expr()                {}
func (e *IdentifierExpr) Loc() source.Location { return e.Location }

// IndexExpr represents array[index].
type IndexExpr struct {
	Array Expression
	Index Expression
	source.Location
}

func (e *IndexExpr) INode()               {}
func (e *IndexExpr) Expr()                {}
func (e *IndexExpr) Loc() source.Location { return e.Location }

// FieldExpr represents struct.field.
type FieldExpr struct {
	Struct Expression
	Field  string
	source.Location
}

func (e *FieldExpr) INode()               {}
func (e *FieldExpr) Expr()                {}
func (e *FieldExpr) Loc() source.Location { return e.Location }

// AssertExpr represents assert(cond, msg), assert(cond) and abort(msg).
// Cond and Message may each be nil.
type AssertExpr struct {
	Cond    Expression
	Message Expression
	source.Location
}

func (e *AssertExpr) INode()               {}
func (e *AssertExpr) Expr()                {}
func (e *AssertExpr) Loc() source.Location { return e.Location }

// AssignExpr represents object = value and the op-assign forms. Op is nil
// for plain assignment. Indirect selects assignment through a pointer.
type AssignExpr struct {
	Object   Expression
	Value    Expression
	Op       *BinaryOp
	Indirect bool
	source.Location
}

func (e *AssignExpr) INode()               {}
func (e *AssignExpr) Expr()                {}
func (e *AssignExpr) Loc() source.Location { return e.Location }

// BinaryExpr represents a binary arithmetic or logical expression.
type BinaryExpr struct {
	Op     BinaryOp
	LValue Expression
	RValue Expression
	source.Location
}

func (e *BinaryExpr) INode()               {}
func (e *BinaryExpr) Expr()                {}
func (e *BinaryExpr) Loc() source.Location { return e.Location }

// Binding is one name introduced by a let or const expression.
type Binding struct {
	Name        string
	Type        *Type // nil: inferred from the initializer
	Flags       types.Flags
	IsStatic    bool
	Initializer Expression
	source.Location
}

// BindingExpr represents let/const in statement position.
type BindingExpr struct {
	Bindings []*Binding
	source.Location
}

func (e *BindingExpr) INode()               {}
func (e *BindingExpr) Expr()                {}
func (e *BindingExpr) Loc() source.Location { return e.Location }

// CallArg is one argument at a call site. Variadic marks an
// already-spread argument (f(a, b...)).
type CallArg struct {
	Value    Expression
	Variadic bool
}

// CallExpr represents a function call.
type CallExpr struct {
	LValue Expression
	Args   []*CallArg
	source.Location
}

func (e *CallExpr) INode()               {}
func (e *CallExpr) Expr()                {}
func (e *CallExpr) Loc() source.Location { return e.Location }

// CastExpr represents the three cast operators.
type CastExpr struct {
	Kind  CastKind
	Value Expression
	Type  *Type
	source.Location
}

func (e *CastExpr) INode()               {}
func (e *CastExpr) Expr()                {}
func (e *CastExpr) Loc() source.Location { return e.Location }

// ArrayItem is one member of an array literal. Expand marks the trailing
// "..." member.
type ArrayItem struct {
	Value  Expression
	Expand bool
}

// ConstantExpr is a literal, tagged by the storage class of its payload.
type ConstantExpr struct {
	Storage types.Storage
	IVal    int64
	UVal    uint64
	Rune    rune
	Bool    bool
	Str     []byte
	Array   []*ArrayItem
	source.Location
}

func (e *ConstantExpr) INode()               {}
func (e *ConstantExpr) Expr()                {}
func (e *ConstantExpr) Loc() source.Location { return e.Location }

// ControlExpr represents break and continue, optionally labeled.
type ControlExpr struct {
	Kind  ControlKind
	Label string
	source.Location
}

func (e *ControlExpr) INode()               {}
func (e *ControlExpr) Expr()                {}
func (e *ControlExpr) Loc() source.Location { return e.Location }

// DeferExpr represents defer.
type DeferExpr struct {
	Deferred Expression
	source.Location
}

func (e *DeferExpr) INode()               {}
func (e *DeferExpr) Expr()                {}
func (e *DeferExpr) Loc() source.Location { return e.Location }

// ForExpr represents a for loop, optionally labeled.
type ForExpr struct {
	Label        string
	LabelLoc     source.Location
	Bindings     Expression // nil if absent
	Cond         Expression
	Afterthought Expression // nil if absent
	Body         Expression
	source.Location
}

func (e *ForExpr) INode()               {}
func (e *ForExpr) Expr()                {}
func (e *ForExpr) Loc() source.Location { return e.Location }

// IfExpr represents a conditional; FalseBranch may be nil.
type IfExpr struct {
	Cond        Expression
	TrueBranch  Expression
	FalseBranch Expression
	source.Location
}

func (e *IfExpr) INode()               {}
func (e *IfExpr) Expr()                {}
func (e *IfExpr) Loc() source.Location { return e.Location }

// ListExpr is an ordered expression list (a block).
type ListExpr struct {
	Exprs []Expression
	source.Location
}

func (e *ListExpr) INode()               {}
func (e *ListExpr) Expr()                {}
func (e *ListExpr) Loc() source.Location { return e.Location }

// MatchCase is one arm of a match expression.
type MatchCase struct {
	Name  string
	Type  *Type
	Value Expression
}

// MatchExpr represents a match over a tagged union.
type MatchExpr struct {
	Value Expression
	Cases []*MatchCase
	source.Location
}

func (e *MatchExpr) INode()               {}
func (e *MatchExpr) Expr()                {}
func (e *MatchExpr) Loc() source.Location { return e.Location }

// MeasureExpr represents len(expr), size(type) and offset(expr).
type MeasureExpr struct {
	Op    MeasureOp
	Value Expression // len, offset
	Type  *Type      // size
	source.Location
}

func (e *MeasureExpr) INode()               {}
func (e *MeasureExpr) Expr()                {}
func (e *MeasureExpr) Loc() source.Location { return e.Location }

// ReturnExpr represents return; Value may be nil.
type ReturnExpr struct {
	Value Expression
	source.Location
}

func (e *ReturnExpr) INode()               {}
func (e *ReturnExpr) Expr()                {}
func (e *ReturnExpr) Loc() source.Location { return e.Location }

// SliceExpr represents object[start..end]; Start and End may be nil.
type SliceExpr struct {
	Object Expression
	Start  Expression
	End    Expression
	source.Location
}

func (e *SliceExpr) INode()               {}
func (e *SliceExpr) Expr()                {}
func (e *SliceExpr) Loc() source.Location { return e.Location }

// FieldValue is one field initializer in a struct literal.
type FieldValue struct {
	Name        string
	Type        *Type
	Initializer Expression
}

// StructExpr represents a struct literal.
type StructExpr struct {
	Autofill bool
	TypeName *Identifier // named literal (Foo { ... }); nil for anonymous
	Fields   []*FieldValue
	source.Location
}

func (e *StructExpr) INode()               {}
func (e *StructExpr) Expr()                {}
func (e *StructExpr) Loc() source.Location { return e.Location }

// SwitchCase is one arm of a switch expression.
type SwitchCase struct {
	Options []Expression
	Value   Expression
}

// SwitchExpr represents a switch.
type SwitchExpr struct {
	Value Expression
	Cases []*SwitchCase
	source.Location
}

func (e *SwitchExpr) INode()               {}
func (e *SwitchExpr) Expr()                {}
func (e *SwitchExpr) Loc() source.Location { return e.Location }

// UnaryExpr represents a unary arithmetic expression.
type UnaryExpr struct {
	Op      UnaryOp
	Operand Expression
	source.Location
}

func (e *UnaryExpr) INode()               {}
func (e *UnaryExpr) Expr()                {}
func (e *UnaryExpr) Loc() source.Location { return e.Location }
