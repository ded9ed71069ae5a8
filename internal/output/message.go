package output

import (
	"fmt"
	"io"
)

// Info writes an informational line.
func (p *Palette) Info(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintln(w, p.Accent("info:")+" "+fmt.Sprintf(format, args...))
}

// Warn writes a warning line.
func (p *Palette) Warn(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintln(w, p.warn.Sprint("warning:")+" "+fmt.Sprintf(format, args...))
}

// Success writes a success line.
func (p *Palette) Success(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintln(w, p.Good("ok:")+" "+fmt.Sprintf(format, args...))
}
