package output_test

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/cyclic/internal/output"
)

func TestFormatter_Emit(t *testing.T) {
	t.Parallel()

	result := map[string]any{"codeword": "110111111000101", "n": 15}
	text := func(w io.Writer) error {
		_, err := io.WriteString(w, "codeword: 110111111000101\n")
		return err
	}

	var js bytes.Buffer
	f := output.NewFormatter(output.FormatJSON)
	require.NoError(t, f.Emit(&js, result, text))
	assert.True(t, f.IsJSON())

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(js.Bytes(), &decoded))
	assert.Equal(t, "110111111000101", decoded["codeword"])
	assert.InDelta(t, 15, decoded["n"], 0)
	assert.Contains(t, js.String(), "\n  \"", "JSON is indented")

	var plain bytes.Buffer
	f = output.NewFormatter(output.FormatText)
	require.NoError(t, f.Emit(&plain, result, text))
	assert.Equal(t, "codeword: 110111111000101\n", plain.String())
	assert.Equal(t, output.FormatText, f.Format())
	assert.False(t, f.IsJSON())
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  output.Format
		valid bool
	}{
		{"json", output.FormatJSON, true},
		{"JSON", output.FormatJSON, true},
		{" text ", output.FormatText, true},
		{"auto", output.FormatAuto, true},
		{"yaml", output.FormatAuto, false},
		{"", output.FormatAuto, false},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, output.ParseFormat(tc.input))
			assert.Equal(t, tc.valid, output.ValidFormat(tc.input))
		})
	}
}

func TestDetectFormat(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	assert.Equal(t, output.FormatText, output.DetectFormat(&buf, output.FormatText))
	assert.Equal(t, output.FormatJSON, output.DetectFormat(&buf, output.FormatJSON))
	assert.Equal(t, output.FormatJSON, output.DetectFormat(&buf, output.FormatAuto), "non-TTY auto is JSON")
	assert.False(t, output.IsTerminal(&buf))

	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	assert.False(t, output.IsTerminal(f), "regular files are not terminals")
}

func TestTable(t *testing.T) {
	t.Parallel()

	tbl := output.NewTable("POS", "SYNDROME")
	tbl.AddRow("0", "10000000")
	tbl.AddRow("14", "11010001")
	assert.Equal(t, 2, tbl.Len())

	want := "POS  SYNDROME\n" +
		"---  --------\n" +
		"0    10000000\n" +
		"14   11010001\n"
	assert.Equal(t, want, tbl.String())

	tbl.SetNoHeader(true)
	assert.Equal(t, "0    10000000\n14   11010001\n", tbl.String())
}

func TestTable_RaggedAndEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, output.NewTable().String())

	tbl := output.NewTable("A")
	tbl.AddRow("1", "extra")
	tbl.AddRow()
	tbl.SetSeparator(" | ")
	assert.Equal(t, "A |\n- | -----\n1 | extra\n  |\n", tbl.String())
}

func TestNewBitTable(t *testing.T) {
	t.Parallel()

	tbl := output.NewBitTable("g", []string{"1101000", "0110100"})
	want := "   0 1 2 3 4 5 6\n" +
		"-- - - - - - - -\n" +
		"g0 1 1 0 1 0 0 0\n" +
		"g1 0 1 1 0 1 0 0\n"
	assert.Equal(t, want, tbl.String())
}
