package output

import (
	"io"
	"strings"

	"github.com/fatih/color"
)

// Color modes accepted by NewPalette.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Palette colors text output. A disabled palette returns its input
// unchanged.
type Palette struct {
	enabled bool
	good    *color.Color
	warn    *color.Color
	bad     *color.Color
	accent  *color.Color
	flip    *color.Color
}

// NewPalette creates a palette for w. "auto" enables color only when w is
// a terminal.
func NewPalette(mode string, w io.Writer) *Palette {
	var enabled bool
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case ColorAlways:
		enabled = true
	case ColorNever:
	default:
		enabled = IsTerminal(w)
	}

	p := &Palette{
		enabled: enabled,
		good:    color.New(color.FgGreen),
		warn:    color.New(color.FgYellow),
		bad:     color.New(color.FgRed, color.Bold),
		accent:  color.New(color.FgCyan),
		flip:    color.New(color.FgRed, color.Bold, color.Underline),
	}
	for _, c := range []*color.Color{p.good, p.warn, p.bad, p.accent, p.flip} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Enabled reports whether the palette emits escape codes.
func (p *Palette) Enabled() bool { return p.enabled }

// Status colors a decode status name.
func (p *Palette) Status(name string) string {
	switch name {
	case "no_error":
		return p.good.Sprint(name)
	case "corrected":
		return p.warn.Sprint(name)
	case "uncorrectable":
		return p.bad.Sprint(name)
	default:
		return name
	}
}

// Good colors s as a success.
func (p *Palette) Good(s string) string { return p.good.Sprint(s) }

// Bad colors s as a failure.
func (p *Palette) Bad(s string) string { return p.bad.Sprint(s) }

// Accent colors s as a label.
func (p *Palette) Accent(s string) string { return p.accent.Sprint(s) }

// Highlight marks the character at index i of s. Out-of-range indexes
// leave s unchanged.
func (p *Palette) Highlight(s string, i int) string {
	if i < 0 || i >= len(s) {
		return s
	}
	return s[:i] + p.flip.Sprint(s[i:i+1]) + s[i+1:]
}
