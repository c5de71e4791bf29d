// Package scope implements lexical scopes and the objects they hold:
// constants, type aliases, runtime bindings, and unit-level declarations.
package scope

import (
	"github.com/Sovenok-Hacker/harec/internal/frontend/ast"
	"github.com/Sovenok-Hacker/harec/internal/types"
)

// ObjectKind categorizes scope objects.
type ObjectKind int

const (
	ObjectConst ObjectKind = iota // named compile-time value
	ObjectType                    // type alias
	ObjectBind                    // runtime local
	ObjectDecl                    // runtime global or function
)

func (k ObjectKind) String() string {
	switch k {
	case ObjectConst:
		return "constant"
	case ObjectType:
		return "type"
	case ObjectBind:
		return "binding"
	case ObjectDecl:
		return "declaration"
	default:
		return "unknown"
	}
}

// Value is the evaluated constant expression attached to ObjectConst
// objects. It is an interface so that this package does not depend on the
// typed expression tree; the checker stores *hir.Expr values here.
type Value interface {
	IsConstant() bool
}

// Object is a named entry in a lexical scope. Ident is the mangled (fully
// qualified) identifier; Name is the user-facing spelling. Lookups match
// either.
type Object struct {
	Kind  ObjectKind
	Ident ast.Identifier
	Name  ast.Identifier
	Type  *types.Type
	Value Value // ObjectConst only
}

// Class describes what kind of expression created a scope. Label search
// for break and continue only considers loop scopes.
type Class int

const (
	ClassUnit Class = iota
	ClassSubunit
	ClassFunction
	ClassBlock
	ClassLoop
)

// Scope is one level of lexical scoping. Objects keeps insertion order.
type Scope struct {
	Parent  *Scope
	Class   Class
	Label   string
	Objects []*Object

	index map[string]int // qualified user name -> Objects position
}

// Push creates a child scope under parent and returns it.
func Push(parent *Scope, class Class) *Scope {
	return &Scope{
		Parent: parent,
		Class:  class,
		index:  make(map[string]int),
	}
}

// Insert adds an object to the scope. A duplicate of an existing name
// silently overwrites the previous object; the parser prevents duplicates
// for all well-formed input, so the checker does not re-detect them.
func (s *Scope) Insert(kind ObjectKind, ident, name ast.Identifier,
	typ *types.Type, value Value) *Object {
	obj := &Object{
		Kind:  kind,
		Ident: ident,
		Name:  name,
		Type:  typ,
		Value: value,
	}
	key := name.String()
	if at, ok := s.index[key]; ok {
		s.Objects[at] = obj
		return obj
	}
	s.index[key] = len(s.Objects)
	s.Objects = append(s.Objects, obj)
	return obj
}

// Lookup searches the scope and its ancestors for an object whose mangled
// or user-facing identifier matches ident. Both the name and the full
// namespace chain must match. Returns nil if not found.
func (s *Scope) Lookup(ident ast.Identifier) *Object {
	for scope := s; scope != nil; scope = scope.Parent {
		for _, obj := range scope.Objects {
			if obj.Ident.Equal(ident) || obj.Name.Equal(ident) {
				return obj
			}
		}
	}
	return nil
}

// LookupLabel resolves the target scope of a break or continue. An empty
// label matches the innermost loop scope; otherwise the nearest ancestor
// loop scope with the given label matches. Returns nil if no loop
// qualifies.
func (s *Scope) LookupLabel(label string) *Scope {
	for scope := s; scope != nil; scope = scope.Parent {
		if scope.Class != ClassLoop {
			continue
		}
		if label == "" || scope.Label == label {
			return scope
		}
	}
	return nil
}
