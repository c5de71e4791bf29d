package diagnostics

import (
	"fmt"
	"io"
	"os"

	"github.com/Sovenok-Hacker/harec/colors"
)

// Emitter renders diagnostics to a writer.
type Emitter struct {
	writer io.Writer
}

func NewEmitter(w io.Writer) *Emitter {
	if w == nil {
		w = os.Stderr
	}
	return &Emitter{writer: w}
}

// Emit writes one diagnostic in the canonical format:
//
//	Error <path>:<line>:<col>: <message>
func (e *Emitter) Emit(d *Diagnostic) {
	color := colors.RED
	if d.Severity == Warning {
		color = colors.ORANGE
	}
	color.Fprintf(e.writer, "%s", d.Severity)
	fmt.Fprintf(e.writer, " %s: %s\n", d.Location, d.Message)
}
