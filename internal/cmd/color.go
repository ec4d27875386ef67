package cmd

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// colorEnabled reports whether w is a terminal that should receive ANSI
// colors. NO_COLOR disables colors everywhere.
func colorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
