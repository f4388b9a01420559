// Package output prints the auditor's console messages.
//
// The audit itself prints only the summary line through Line; the icon
// helpers are for housekeeping commands such as config.
package output

import (
	"fmt"
	"io"
)

// Icons used by the status helpers.
const (
	IconSuccess = "✅"
	IconWarning = "⚠️ "
)

// Writer prints to a command's output stream. Write errors are ignored.
type Writer struct {
	out io.Writer
}

// New creates a Writer on out.
func New(out io.Writer) *Writer {
	return &Writer{out: out}
}

func (w *Writer) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(w.out, format, args...)
}

// Line prints msg unchanged followed by a newline.
func (w *Writer) Line(msg string) {
	w.printf("%s\n", msg)
}

// Status prints msg after icon. An empty icon indents msg instead.
func (w *Writer) Status(icon, msg string) {
	if icon == "" {
		w.printf("   %s\n", msg)
		return
	}
	w.printf("%s %s\n", icon, msg)
}

// Statusf is Status with formatting.
func (w *Writer) Statusf(icon, format string, args ...any) {
	w.Status(icon, fmt.Sprintf(format, args...))
}

// Success prints msg with IconSuccess.
func (w *Writer) Success(msg string) {
	w.Status(IconSuccess, msg)
}

// Successf is Success with formatting.
func (w *Writer) Successf(format string, args ...any) {
	w.Success(fmt.Sprintf(format, args...))
}

// Warning prints msg with IconWarning.
func (w *Writer) Warning(msg string) {
	w.Status(IconWarning, msg)
}

// Newline prints an empty line.
func (w *Writer) Newline() {
	w.printf("\n")
}
