package gf2

import (
	"strconv"
	"strings"

	cyclicerr "github.com/mrz1836/cyclic/pkg/errors"
)

// Matrix is a binary matrix with at most MaxBits columns. Each row is
// stored as a Poly whose bit j is the entry in column j.
type Matrix struct {
	rows []Poly
	cols int
}

// NewMatrix returns a zero matrix with the given shape.
func NewMatrix(rows, cols int) (*Matrix, error) {
	if rows < 0 || cols < 0 || cols > MaxBits || rows > MaxBits {
		return nil, cyclicerr.WithDetails(ErrDimensionMismatch, map[string]string{
			"rows": strconv.Itoa(rows),
			"cols": strconv.Itoa(cols),
		})
	}
	return &Matrix{rows: make([]Poly, rows), cols: cols}, nil
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return len(m.rows) }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// Get returns the entry at row i, column j.
func (m *Matrix) Get(i, j int) byte {
	return m.rows[i].Coeff(j)
}

// Set writes v (0 or 1) at row i, column j.
func (m *Matrix) Set(i, j int, v byte) {
	bit := Poly(1) << uint(j)
	if v&1 == 1 {
		m.rows[i] |= bit
	} else {
		m.rows[i] &^= bit
	}
}

// Row returns row i as a Poly.
func (m *Matrix) Row(i int) Poly {
	return m.rows[i]
}

// SetRow replaces row i. Bits at or above Cols are dropped.
func (m *Matrix) SetRow(i int, p Poly) {
	m.rows[i] = p & m.mask()
}

// Column returns column j as a Poly whose bit r is the entry in row r.
func (m *Matrix) Column(j int) Poly {
	var c Poly
	for r, row := range m.rows {
		if row.Coeff(j) == 1 {
			c |= Poly(1) << uint(r)
		}
	}
	return c
}

// SetColumn writes the low Rows bits of p into column j.
func (m *Matrix) SetColumn(j int, p Poly) {
	for r := range m.rows {
		m.Set(r, j, p.Coeff(r))
	}
}

// MulVec returns m·v (mod 2). Bit r of the result is the parity of
// row r and v.
func (m *Matrix) MulVec(v Poly) Poly {
	var out Poly
	for r, row := range m.rows {
		if (row&v).Weight()%2 == 1 {
			out |= Poly(1) << uint(r)
		}
	}
	return out
}

// MulTranspose returns m·oᵗ (mod 2), an m.Rows() × o.Rows() matrix.
func (m *Matrix) MulTranspose(o *Matrix) (*Matrix, error) {
	if m.cols != o.cols {
		return nil, cyclicerr.WithDetails(ErrDimensionMismatch, map[string]string{
			"left_cols":  strconv.Itoa(m.cols),
			"right_cols": strconv.Itoa(o.cols),
		})
	}
	out, err := NewMatrix(m.Rows(), o.Rows())
	if err != nil {
		return nil, err
	}
	for i := range m.rows {
		out.rows[i] = o.MulVec(m.rows[i])
	}
	return out, nil
}

// IsZero reports whether every entry is zero.
func (m *Matrix) IsZero() bool {
	for _, row := range m.rows {
		if row != 0 {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of m.
func (m *Matrix) Clone() *Matrix {
	rows := make([]Poly, len(m.rows))
	copy(rows, m.rows)
	return &Matrix{rows: rows, cols: m.cols}
}

// Bits returns the matrix as one Bits slice per row.
func (m *Matrix) Bits() []Bits {
	out := make([]Bits, len(m.rows))
	for i, row := range m.rows {
		out[i] = row.Bits(m.cols)
	}
	return out
}

// String renders one row per line.
func (m *Matrix) String() string {
	var sb strings.Builder
	for i, row := range m.rows {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(row.Bits(m.cols).String())
	}
	return sb.String()
}

func (m *Matrix) mask() Poly {
	if m.cols >= MaxBits {
		return ^Poly(0)
	}
	return Poly(1)<<uint(m.cols) - 1
}
