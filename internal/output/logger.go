package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss/v2"
)

// Logger writes --verbose diagnostics to stderr
type Logger struct {
	w       io.Writer
	verbose bool
	styled  bool
}

// NewLogger creates a Logger; styled enables faint rendering for terminals
func NewLogger(w io.Writer, verbose, styled bool) *Logger {
	return &Logger{w: w, verbose: verbose, styled: styled}
}

// Enabled reports whether debug output is on
func (l *Logger) Enabled() bool {
	return l != nil && l.verbose
}

// Debugf prints a "debug:" line when verbose output is enabled
func (l *Logger) Debugf(format string, args ...any) {
	if !l.Enabled() {
		return
	}
	line := "debug: " + fmt.Sprintf(format, args...)
	if l.styled {
		line = lipgloss.NewStyle().Faint(true).Render(line)
	}
	fmt.Fprintln(l.w, line)
}
