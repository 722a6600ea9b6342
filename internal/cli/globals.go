package cli

import (
	"io"
	"os"

	"golang.org/x/term"
)

// Globals holds flags shared by flag mode and the interactive shell
type Globals struct {
	Output  string `help:"Output format" default:"auto" enum:"json,plain,rich,auto" short:"o" env:"REQ_OUTPUT"`
	Verbose bool   `help:"Verbose output" short:"v" env:"REQ_VERBOSE"`
}

// ResolvedOutput returns the effective output mode.
// An explicit flag wins over the configured default; "auto" detects TTY:
// if out is a terminal -> rich, else -> plain
func (g *Globals) ResolvedOutput(configured string, out io.Writer) string {
	if g.Output != "" && g.Output != "auto" {
		return g.Output
	}
	if configured != "" && configured != "auto" {
		return configured
	}

	if isTerminal(out) {
		return "rich"
	}

	return "plain"
}

// isTerminal reports whether w is a file attached to a terminal
func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
