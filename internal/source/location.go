package source

import "fmt"

// Location identifies a point in a source file. Lines and columns are
// 1-based, matching what the parser records on every AST node.
type Location struct {
	Path   string
	Line   int
	Column int
}

func NewLocation(path string, line, column int) Location {
	return Location{Path: path, Line: line, Column: column}
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.Path, l.Line, l.Column)
}

// IsValid reports whether the location carries real position information.
func (l Location) IsValid() bool {
	return l.Line > 0
}
