// Package output renders command results for the cyclic CLI as text or
// JSON.
package output

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Format selects how command results are written.
type Format string

// Output formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatAuto Format = "auto"
)

//nolint:gochecknoglobals // Static lookup table
var formats = map[string]Format{
	"text": FormatText,
	"json": FormatJSON,
	"auto": FormatAuto,
}

// ParseFormat maps s to a Format. Unknown values are auto.
func ParseFormat(s string) Format {
	if f, ok := formats[strings.ToLower(strings.TrimSpace(s))]; ok {
		return f
	}
	return FormatAuto
}

// ValidFormat reports whether s names a known format.
func ValidFormat(s string) bool {
	_, ok := formats[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// DetectFormat resolves auto: text on a terminal, JSON when piped.
func DetectFormat(w io.Writer, explicit Format) Format {
	switch {
	case explicit != FormatAuto:
		return explicit
	case IsTerminal(w):
		return FormatText
	default:
		return FormatJSON
	}
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec // G115: Fd() returns uintptr, safe conversion for term.IsTerminal
}

// Formatter writes results in a resolved format.
type Formatter struct {
	format Format
}

// NewFormatter returns a formatter for format. Pass a format already
// resolved by DetectFormat.
func NewFormatter(format Format) *Formatter {
	return &Formatter{format: format}
}

// Format returns the output format.
func (f *Formatter) Format() Format {
	return f.format
}

// IsJSON reports whether results are written as JSON.
func (f *Formatter) IsJSON() bool {
	return f.format == FormatJSON
}

// Emit writes v to w as JSON, or runs text for any other format.
func (f *Formatter) Emit(w io.Writer, v any, text func(io.Writer) error) error {
	if f.IsJSON() {
		return WriteJSON(w, v)
	}
	return text(w)
}

// WriteJSON writes v to w as two-space indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
