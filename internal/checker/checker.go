// Package checker implements the semantic analysis pass: a declaration
// scan that populates the unit scope, followed by an expression check
// that elaborates the untyped AST into a fully typed tree.
package checker

import (
	"fmt"
	"os"

	"github.com/Sovenok-Hacker/harec/colors"
	"github.com/Sovenok-Hacker/harec/internal/diagnostics"
	"github.com/Sovenok-Hacker/harec/internal/eval"
	"github.com/Sovenok-Hacker/harec/internal/frontend/ast"
	"github.com/Sovenok-Hacker/harec/internal/hir"
	"github.com/Sovenok-Hacker/harec/internal/scope"
	"github.com/Sovenok-Hacker/harec/internal/source"
	"github.com/Sovenok-Hacker/harec/internal/typestore"
	"github.com/Sovenok-Hacker/harec/internal/types"
)

// Checker carries the transient state threaded through the recursion. A
// checker handles exactly one unit and is not reused.
type Checker struct {
	store *typestore.Store
	scope *scope.Scope
	unit  *scope.Scope
	ns    *ast.Identifier

	fntype    *types.Type // current function's type, for return
	deferring bool
	id        int // monotonic counter for static.N names

	Debug bool
}

func New(store *typestore.Store) *Checker {
	return &Checker{store: store}
}

// bail carries the first diagnostic out of the recursion. Checking is
// abort-on-first: nothing is recovered locally.
type bail struct {
	diag *diagnostics.Diagnostic
}

// expect panics with a diagnostic unless the constraint holds.
func (c *Checker) expect(loc source.Location, constraint bool, code string,
	format string, args ...any) {
	if !constraint {
		panic(bail{diagnostics.NewError(loc, format, args...).WithCode(code)})
	}
}

func (c *Checker) trace(format string, args ...any) {
	if c.Debug {
		colors.GREY.Fprintf(os.Stderr, "check: "+format+"\n", args...)
	}
}

// Check runs both passes over a unit and returns the typed unit. The
// returned error, if any, is the single fatal diagnostic.
func Check(store *typestore.Store, aunit *ast.Unit) (*hir.Unit, error) {
	return New(store).Check(aunit)
}

func (c *Checker) Check(aunit *ast.Unit) (unit *hir.Unit, err error) {
	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bail)
			if !ok {
				panic(r)
			}
			unit = nil
			err = b.diag
		}
	}()

	c.ns = aunit.NS
	c.store.SetResolver(c)
	c.unit = scope.Push(nil, scope.ClassUnit)
	c.scope = c.unit

	// First pass populates the type graph: one scope per subunit, all
	// declarations inserted into the unit scope.
	subunitScopes := make([]*scope.Scope, len(aunit.SubUnits))
	for i, su := range aunit.SubUnits {
		c.scope = scope.Push(c.unit, scope.ClassSubunit)
		subunitScopes[i] = c.scope

		if len(su.Imports) > 0 {
			c.expect(su.Imports[0].Location, false,
				diagnostics.ErrUnimplemented,
				"Import resolution is not implemented")
		}
		c.scanDeclarations(su.Decls)
	}

	// Second pass populates the expression graph.
	unit = &hir.Unit{NS: aunit.NS}
	for i, su := range aunit.SubUnits {
		c.scope = subunitScopes[i]
		c.checkDeclarations(su.Decls, unit)
	}
	return unit, nil
}

// CheckOrExit is the driver-facing variant: it emits the diagnostic on
// stderr and terminates the process on failure.
func CheckOrExit(store *typestore.Store, aunit *ast.Unit) *hir.Unit {
	unit, err := Check(store, aunit)
	if err != nil {
		diagnostics.NewEmitter(os.Stderr).Emit(err.(*diagnostics.Diagnostic))
		os.Exit(1)
	}
	return unit
}

// mkIdent qualifies a declaration's identifier with the unit namespace.
func (c *Checker) mkIdent(in ast.Identifier) ast.Identifier {
	out := in
	if c.ns != nil {
		out.NS = c.ns
	}
	return out
}

// lowerImplicitCast materializes an implicit conversion as a plain cast
// node. Interning makes the comparison pointer identity, so exact matches
// come back unchanged.
func (c *Checker) lowerImplicitCast(to *types.Type, expr *hir.Expr) *hir.Expr {
	if to == expr.Result {
		return expr
	}
	return &hir.Expr{
		Kind:       hir.ExprCast,
		Result:     to,
		Terminates: expr.Terminates,
		Cast: hir.CastExpr{
			Kind:      ast.CastPlain,
			Secondary: to,
			Value:     expr,
		},
	}
}

// lookupAtype interns a syntactic type, converting store errors into
// fatal diagnostics at the type's location.
func (c *Checker) lookupAtype(at *ast.Type) *types.Type {
	t, err := c.store.LookupAtype(at)
	if err != nil {
		panic(bail{diagnostics.NewError(at.Location, "%s", err.Error()).
			WithCode(diagnostics.ErrUndefinedSymbol)})
	}
	return t
}

// ResolveAlias resolves a type alias reference against the current scope.
// Part of the typestore.Resolver interface.
func (c *Checker) ResolveAlias(ident ast.Identifier) (*types.Type, bool) {
	obj := c.scope.Lookup(ident)
	if obj == nil || obj.Kind != scope.ObjectType {
		return nil, false
	}
	return obj.Type, true
}

// EvalInteger checks and evaluates an integer constant expression (array
// lengths, enum values). Part of the typestore.Resolver interface.
func (c *Checker) EvalInteger(aexpr ast.Expression) (uint64, bool) {
	ex := c.checkExpression(aexpr, nil)
	value, err := eval.Expr(ex)
	if err != nil {
		return 0, false
	}
	if !types.IsInteger(value.Result) {
		return 0, false
	}
	if types.IsSigned(value.Result) {
		return uint64(value.Constant.IVal), true
	}
	return value.Constant.UVal, true
}

// unparseFlags renders function attribute flags for error messages.
func unparseFlags(flags ast.FuncFlags) string {
	var s string
	if flags&ast.FuncInit != 0 {
		s += "@init"
	}
	if flags&ast.FuncFini != 0 {
		s += "@fini"
	}
	if flags&ast.FuncTest != 0 {
		s += "@test"
	}
	if s == "" {
		s = fmt.Sprintf("@%x", uint(flags))
	}
	return s
}
