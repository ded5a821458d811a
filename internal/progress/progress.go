// Package progress shows a single self-rewriting status line while runs are in flight.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/bebsworthy/tim/internal/executor"
	"github.com/bebsworthy/tim/internal/stats"
)

// Line writes "run i/n" updates to a terminal, rewriting the same line with \r.
// It implements runner.Observer.
type Line struct {
	w           io.Writer
	last        string
	lastLineLen int
}

// NewLine creates a progress line writing to w.
func NewLine(w io.Writer) *Line {
	return &Line{w: w}
}

// IsTerminal reports whether f is connected to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// RunStarted shows the run about to be launched.
func (l *Line) RunStarted(iteration, total int) {
	msg := fmt.Sprintf("run %d/%d", iteration, total)
	if l.last != "" {
		msg += " (last " + l.last + ")"
	}
	l.render(msg)
}

// RunFinished remembers the elapsed time of a successful run for the next update.
func (l *Line) RunFinished(_, _ int, result executor.Result) {
	if result.Success() {
		l.last = fmt.Sprintf("%.4f ms", stats.Milliseconds(result.Elapsed))
	}
}

// Clear erases the status line so later output starts at column zero.
func (l *Line) Clear() {
	if l.lastLineLen == 0 {
		return
	}
	_, _ = fmt.Fprintf(l.w, "\r%s\r", strings.Repeat(" ", l.lastLineLen))
	l.lastLineLen = 0
}

func (l *Line) render(msg string) {
	line := "\r" + msg
	// Pad over any leftovers from a longer previous message
	if pad := l.lastLineLen - len(msg); pad > 0 {
		line += strings.Repeat(" ", pad)
	}
	_, _ = fmt.Fprint(l.w, line)
	l.lastLineLen = len(msg)
}
