package hlsl

import (
	"fmt"
	"strconv"
	"strings"
)

// Writer is an indenting line writer, four spaces per level.
type Writer struct {
	out    strings.Builder
	indent int
}

// NewWriter starts a writer at the given indentation depth.
func NewWriter(depth int) *Writer { return &Writer{indent: depth} }

// Line writes s as one indented line.
func (w *Writer) Line(s string) {
	w.writeIndent()
	w.out.WriteString(s)
	w.out.WriteByte('\n')
}

// Linef formats one indented line.
func (w *Writer) Linef(format string, args ...any) {
	w.writeIndent()
	fmt.Fprintf(&w.out, format, args...)
	w.out.WriteByte('\n')
}

// Blank writes an empty line.
func (w *Writer) Blank() { w.out.WriteByte('\n') }

// Raw writes s without indentation.
func (w *Writer) Raw(s string) { w.out.WriteString(s) }

func (w *Writer) writeIndent() {
	for i := 0; i < w.indent; i++ {
		w.out.WriteString("    ")
	}
}

func (w *Writer) Push() { w.indent++ }

func (w *Writer) Pop() {
	if w.indent > 0 {
		w.indent--
	}
}

// Depth returns the current indentation depth.
func (w *Writer) Depth() int { return w.indent }

func (w *Writer) String() string { return w.out.String() }

func itoa(n int) string { return strconv.Itoa(n) }
