// Package render writes diff output in unified-diff text form, optionally with ANSI colors.
package render

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/codalotl/udiff/internal/streamdiff"
	"golang.org/x/term"
)

// Colors (ANSI). Applied only if color is enabled.
const (
	reset    = "\x1b[0m"
	red      = "\x1b[31m"
	green    = "\x1b[32m"
	magenta  = "\x1b[35m"
	cyanBold = "\x1b[1;36m"
)

// timestampLayout is the file-header timestamp layout. The zone is always written as "+0000", whatever the local zone is.
const timestampLayout = "2006-01-02 15:04:05.000000000"

// Writer writes a unified diff to an underlying io.Writer through a buffer. Call Flush when done.
type Writer struct {
	w     *bufio.Writer
	color bool
}

// NewWriter returns a Writer on w. If color, lines are wrapped in ANSI color codes.
func NewWriter(w io.Writer, color bool) *Writer {
	return &Writer{w: bufio.NewWriterSize(w, 64*1024), color: color}
}

// FileHeader writes the "--- " and "+++ " lines naming both files.
func (w *Writer) FileHeader(oldName string, oldModTime time.Time, newName string, newModTime time.Time) error {
	if err := w.writeLine("--- "+oldName+"\t"+Timestamp(oldModTime), cyanBold); err != nil {
		return err
	}
	return w.writeLine("+++ "+newName+"\t"+Timestamp(newModTime), cyanBold)
}

// Line writes one diff line.
func (w *Writer) Line(l streamdiff.Line) error {
	switch l.Kind {
	case streamdiff.KindHeader:
		return w.writeLine(FormatHeader(l.Header), magenta)
	case streamdiff.KindDelete:
		return w.writeLine("-"+l.Text, red)
	case streamdiff.KindInsert:
		return w.writeLine("+"+l.Text, green)
	default:
		return w.writeLine(" "+l.Text, "")
	}
}

// Flush writes any buffered output to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}

func (w *Writer) writeLine(s string, code string) error {
	if w.color && code != "" {
		s = code + s + reset
	}
	if _, err := w.w.WriteString(s); err != nil {
		return err
	}
	return w.w.WriteByte('\n')
}

// FormatHeader returns the "@@ -s,c +s,c @@" line for h, with "?" for a count that is streamdiff.Unknown.
func FormatHeader(h streamdiff.Header) string {
	return fmt.Sprintf("@@ -%d,%s +%d,%s @@", h.OldStart, formatCount(h.OldCount), h.NewStart, formatCount(h.NewCount))
}

func formatCount(n int) string {
	if n == streamdiff.Unknown {
		return "?"
	}
	return strconv.Itoa(n)
}

// Timestamp formats t, in local time, as a file-header timestamp with nanoseconds, ex: "2024-05-01 13:45:00.123456789 +0000".
func Timestamp(t time.Time) string {
	return t.Local().Format(timestampLayout) + " +0000"
}

// ColorMode selects when output is colored.
type ColorMode string

// Color modes.
const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode parses "auto", "always" or "never".
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(s); m {
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	default:
		return "", fmt.Errorf("invalid color mode %q (want auto, always, or never)", s)
	}
}

// Enabled reports whether output to w should be colored. In ColorAuto mode, that is when w is a terminal.
func (m ColorMode) Enabled(w io.Writer) bool {
	switch m {
	case ColorAlways:
		return true
	case ColorAuto:
		f, ok := w.(*os.File)
		return ok && term.IsTerminal(int(f.Fd()))
	default:
		return false
	}
}
