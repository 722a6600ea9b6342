package cli

import (
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
)

// ExportPath is the value of -e/--export-history. The path is optional:
// a bare -e exports to the configured export_file.
type ExportPath struct {
	Set  bool
	Path string
}

// Decode implements kong.MapperValue. It only consumes the next token when it
// is an explicit --flag=value or a word that is not another flag.
func (e *ExportPath) Decode(ctx *kong.DecodeContext) error {
	e.Set = true

	tok := ctx.Scan.Peek()
	switch tok.Type {
	case kong.FlagValueToken:
	case kong.UntypedToken, kong.PositionalArgumentToken:
		s, ok := tok.Value.(string)
		if !ok || s == "" || strings.HasPrefix(s, "-") {
			return nil
		}
	default:
		return nil
	}

	ctx.Scan.Pop()
	e.Path = fmt.Sprint(tok.Value)
	return nil
}

func (e ExportPath) String() string {
	return e.Path
}
