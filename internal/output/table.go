package output

import (
	"io"
	"strconv"
	"strings"
)

// Table lays out rows in left-aligned columns for text output. Column
// widths track the widest cell seen so far.
type Table struct {
	headers   []string
	rows      [][]string
	widths    []int
	noHeader  bool
	separator string
}

// NewTable creates a table with the given headers and a two-space column
// separator.
func NewTable(headers ...string) *Table {
	t := &Table{headers: headers, separator: "  "}
	t.grow(headers)
	return t
}

// NewBitTable lays out a 0/1 matrix one bit per column. The header holds
// column indexes and the first column holds label followed by the row index.
func NewBitTable(label string, rows []string) *Table {
	width := 0
	for _, r := range rows {
		width = max(width, len(r))
	}

	headers := make([]string, width+1)
	for j := range width {
		headers[j+1] = strconv.Itoa(j)
	}

	t := NewTable(headers...)
	t.SetSeparator(" ")
	for i, r := range rows {
		cells := append([]string{label + strconv.Itoa(i)}, strings.Split(r, "")...)
		t.AddRow(cells...)
	}
	return t
}

// AddRow appends a row. Rows may have more or fewer cells than headers.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
	t.grow(cells)
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// SetNoHeader suppresses the header and its underline.
func (t *Table) SetNoHeader(noHeader bool) { t.noHeader = noHeader }

// SetSeparator sets the string placed between columns.
func (t *Table) SetSeparator(sep string) { t.separator = sep }

// Render writes the table to w. An empty table writes nothing.
func (t *Table) Render(w io.Writer) error {
	_, err := io.WriteString(w, t.String())
	return err
}

// String returns the rendered table.
func (t *Table) String() string {
	if len(t.headers) == 0 && len(t.rows) == 0 {
		return ""
	}

	var sb strings.Builder
	if !t.noHeader && len(t.headers) > 0 {
		t.line(&sb, t.headers)
		rule := make([]string, len(t.widths))
		for i, n := range t.widths {
			rule[i] = strings.Repeat("-", n)
		}
		sb.WriteString(strings.Join(rule, t.separator))
		sb.WriteByte('\n')
	}
	for _, row := range t.rows {
		t.line(&sb, row)
	}
	return sb.String()
}

func (t *Table) grow(cells []string) {
	for len(t.widths) < len(cells) {
		t.widths = append(t.widths, 0)
	}
	for i, c := range cells {
		t.widths[i] = max(t.widths[i], len(c))
	}
}

// line writes one padded row with trailing blanks trimmed.
func (t *Table) line(sb *strings.Builder, cells []string) {
	var row strings.Builder
	for i, n := range t.widths {
		if i > 0 {
			row.WriteString(t.separator)
		}
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		row.WriteString(cell)
		row.WriteString(strings.Repeat(" ", n-len(cell)))
	}
	sb.WriteString(strings.TrimRight(row.String(), " "))
	sb.WriteByte('\n')
}
