// Package console provides stateless formatting helpers for user-facing
// run output. Colors are enabled only when the writer is a terminal.
package console

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"promptpack/pkg/compile"
)

var (
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
)

// useColor reports whether w is a terminal worth coloring.
func useColor(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// Successf prints a green status line when w is a terminal, plain otherwise.
func Successf(w io.Writer, format string, args ...interface{}) {
	if useColor(w) {
		successColor.Fprintf(w, format+"\n", args...)
		return
	}
	fmt.Fprintf(w, format+"\n", args...)
}

// Warnf prints a yellow warning line when w is a terminal, plain otherwise.
func Warnf(w io.Writer, format string, args ...interface{}) {
	if useColor(w) {
		warnColor.Fprintf(w, format+"\n", args...)
		return
	}
	fmt.Fprintf(w, format+"\n", args...)
}

// PrintSummary reports the outcome of a compilation run.
func PrintSummary(w io.Writer, s *compile.Summary) {
	Successf(w, "Compilation complete! Output written to: %s", s.OutputPath)
	fmt.Fprintf(w, "  files: %d (%d binary placeholders)\n", s.Included, s.Binary)
	if s.TreePath != "" {
		fmt.Fprintf(w, "  tree:  %s\n", s.TreePath)
	}
	if len(s.Missing) > 0 {
		Warnf(w, "  %d requested entries matched nothing:", len(s.Missing))
		for _, entry := range s.Missing {
			fmt.Fprintf(w, "    - %s\n", entry)
		}
	}
}
