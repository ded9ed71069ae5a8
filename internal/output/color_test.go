package output_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mrz1836/cyclic/internal/output"
)

func TestPalette_Disabled(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	for _, mode := range []string{"never", "auto", ""} {
		p := output.NewPalette(mode, &buf)
		assert.False(t, p.Enabled(), mode)
		assert.Equal(t, "corrected", p.Status("corrected"))
		assert.Equal(t, "110111111000101", p.Highlight("110111111000101", 9))
	}
}

func TestPalette_Always(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	p := output.NewPalette("always", &buf)
	assert.True(t, p.Enabled())

	for _, s := range []string{"no_error", "corrected", "uncorrectable"} {
		colored := p.Status(s)
		assert.Contains(t, colored, s)
		assert.Contains(t, colored, "\x1b[")
	}
	assert.Equal(t, "other", p.Status("other"))

	h := p.Highlight("1101", 2)
	assert.True(t, len(h) > 4)
	assert.Equal(t, "11", h[:2])
	assert.Equal(t, "1", h[len(h)-1:])
	assert.Equal(t, "1101", p.Highlight("1101", 4), "out of range")
	assert.Equal(t, "1101", p.Highlight("1101", -1))
}

func TestPalette_Messages(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	p := output.NewPalette("never", &buf)

	p.Info(&buf, "building (%d,%d)", 15, 7)
	p.Warn(&buf, "table is ambiguous")
	p.Success(&buf, "verified %d words", 2048)

	assert.Equal(t, "info: building (15,7)\nwarning: table is ambiguous\nok: verified 2048 words\n", buf.String())
}
