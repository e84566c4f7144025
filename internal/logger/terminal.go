package logger

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// DefaultColumns is used when the terminal width cannot be determined.
const DefaultColumns = 100

// ANSI control sequences used for in-place redraws.
const (
	cursorPrevLine = "\x1b[F"
	clearLine      = "\x1b[K"
)

// DetectColumns returns the width of the terminal attached to f.
// Redirected streams, pipes and query failures fall back to DefaultColumns.
func DetectColumns(f *os.File) int {
	if f == nil {
		return DefaultColumns
	}
	fd := f.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return DefaultColumns
	}
	width, _, err := term.GetSize(int(fd))
	if err != nil || width <= 0 {
		return DefaultColumns
	}
	return width
}

// ColorEnabled reports whether styled output should be written to w.
// Only TTY files qualify, and NO_COLOR (via fatih/color) always wins.
func ColorEnabled(w io.Writer) bool {
	if color.NoColor {
		return false
	}
	if w == color.Output {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// columnsFor picks the file whose width should be measured for w.
func columnsFor(w io.Writer) int {
	if w == color.Output {
		return DetectColumns(os.Stdout)
	}
	if f, ok := w.(*os.File); ok {
		return DetectColumns(f)
	}
	return DefaultColumns
}
