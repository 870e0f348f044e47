// Package trace provides the structured diagnostics facility spec.md §9
// says should replace the original's scattered printf debugging: a
// verbosity-gated Logger, and an optional SVG dump of a Face's boundary
// for visual debugging of a failed trace. Grounded on the teacher's use
// of fmt.Errorf-wrapped diagnostics throughout s2, enriched with
// fatih/color and google/uuid the way chazu-lignin's dependency graph
// pulls them in for CLI diagnostics.
package trace

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

// Verbosity controls how much a Logger emits.
type Verbosity int

const (
	Silent Verbosity = iota
	Warn
	Debug
)

// Logger is the diagnostic sink the overlap package's Logger interface is
// satisfied by. Each Logger carries a correlation ID so multiple
// concurrent GenerateOverlapMesh runs (spec.md §5's data-parallel
// extension) can have their log lines told apart.
type Logger struct {
	out       io.Writer
	verbosity Verbosity
	runID     string

	warnColor  *color.Color
	debugColor *color.Color
}

// NewLogger returns a Logger writing to w at the given verbosity, tagged
// with a fresh correlation ID.
func NewLogger(w io.Writer, v Verbosity) *Logger {
	if w == nil {
		w = os.Stderr
	}
	return &Logger{
		out:        w,
		verbosity:  v,
		runID:      uuid.NewString(),
		warnColor:  color.New(color.FgYellow),
		debugColor: color.New(color.FgCyan),
	}
}

// RunID returns the correlation ID this Logger tags every line with.
func (l *Logger) RunID() string {
	if l == nil {
		return ""
	}
	return l.runID
}

func (l *Logger) Warnf(format string, args ...any) {
	if l == nil || l.verbosity < Warn {
		return
	}
	l.warnColor.Fprintf(l.out, "[%s] warn: %s\n", l.runID[:8], fmt.Sprintf(format, args...))
}

func (l *Logger) Debugf(format string, args ...any) {
	if l == nil || l.verbosity < Debug {
		return
	}
	l.debugColor.Fprintf(l.out, "[%s] debug: %s\n", l.runID[:8], fmt.Sprintf(format, args...))
}
