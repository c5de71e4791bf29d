package ast

import (
	"github.com/Sovenok-Hacker/harec/internal/source"
)

// Node is the base interface for all AST nodes
type Node interface {
	INode()
	Loc() source.Location
}

// Expression represents any node that produces a value
type Expression interface {
	Node
	Expr()
}
