package diagnostics

import (
	"fmt"

	"github.com/Sovenok-Hacker/harec/internal/source"
)

// Severity represents the severity level of a diagnostic
type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "Error"
	case Warning:
		return "Warning"
	default:
		return "unknown"
	}
}

// Diagnostic is a single compiler message tied to a source location.
// Checking is abort-on-first, so at most one diagnostic exists per run;
// it doubles as the error value returned from Check.
type Diagnostic struct {
	Severity Severity
	Code     string
	Message  string
	Location source.Location
}

// NewError creates a new error diagnostic
func NewError(loc source.Location, format string, args ...any) *Diagnostic {
	return &Diagnostic{
		Severity: Error,
		Message:  fmt.Sprintf(format, args...),
		Location: loc,
	}
}

// WithCode sets the error code
func (d *Diagnostic) WithCode(code string) *Diagnostic {
	d.Code = code
	return d
}

// Error renders the diagnostic in the canonical single-line format.
func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s %s: %s", d.Severity, d.Location, d.Message)
}
