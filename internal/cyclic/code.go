// Package cyclic implements binary cyclic block codes: construction of the
// generator and parity-check matrices from a generator polynomial, encoding
// by polynomial multiplication, and single-error-correcting decoding by
// syndrome lookup.
//
// A Code is built once per (n, k, g) and is immutable afterwards, so it can
// be shared by any number of goroutines.
package cyclic

import (
	"fmt"
	"sync"

	"github.com/mrz1836/cyclic/internal/gf2"
)

// Params identifies a cyclic code.
type Params struct {
	N         int
	K         int
	Generator gf2.Poly
}

// NewParams packs a generator given as coefficients, lowest degree first.
func NewParams(n, k int, generator gf2.Bits) (Params, error) {
	g, err := generator.Poly()
	if err != nil {
		return Params{}, err
	}
	return Params{N: n, K: k, Generator: g}, nil
}

// Validate checks 0 < k < n <= 64 and degree(g) == n - k.
func (p Params) Validate() error {
	return checkParams(p.N, p.K, p.Generator)
}

// GeneratorBits returns g's coefficients, lowest degree first.
func (p Params) GeneratorBits() gf2.Bits {
	return p.Generator.Bits(p.Generator.Degree() + 1)
}

// String renders the parameters as "(n,k) g=<bits>".
func (p Params) String() string {
	return fmt.Sprintf("(%d,%d) g=%s", p.N, p.K, p.GeneratorBits())
}

// Option configures Build.
type Option func(*buildOptions)

type buildOptions struct {
	allowAmbiguous bool
}

// WithAmbiguousTable lets Build succeed when single-bit syndromes collide.
// Colliding syndromes are left out of the table, so errors that produce
// them decode as Uncorrectable.
func WithAmbiguousTable() Option {
	return func(o *buildOptions) {
		o.allowAmbiguous = true
	}
}

// Code is a built cyclic code.
type Code struct {
	params Params
	gm     *gf2.Matrix
	hm     *gf2.Matrix
	table  *Table

	distOnce sync.Once
	dist     int
	distErr  error
}

// Build constructs the code for length n, message length k and generator
// g (coefficients lowest degree first). It fails with
// ErrInvalidGeneratorDegree when degree(g) != n-k.
func Build(n, k int, generator gf2.Bits, opts ...Option) (*Code, error) {
	p, err := NewParams(n, k, generator)
	if err != nil {
		return nil, err
	}
	return BuildParams(p, opts...)
}

// BuildParams is Build for an already packed Params.
func BuildParams(p Params, opts ...Option) (*Code, error) {
	var o buildOptions
	for _, opt := range opts {
		opt(&o)
	}

	gm, hm, err := BuildMatrices(p.N, p.K, p.Generator)
	if err != nil {
		return nil, err
	}

	table, err := NewTable(hm, o.allowAmbiguous)
	if err != nil {
		return nil, err
	}

	return &Code{
		params: p,
		gm:     gm,
		hm:     hm,
		table:  table,
	}, nil
}

// Params returns the code parameters.
func (c *Code) Params() Params { return c.params }

// N returns the codeword length.
func (c *Code) N() int { return c.params.N }

// K returns the message length.
func (c *Code) K() int { return c.params.K }

// Generator returns g's coefficients, lowest degree first.
func (c *Code) Generator() gf2.Bits { return c.params.GeneratorBits() }

// G returns a copy of the generator matrix.
func (c *Code) G() *gf2.Matrix { return c.gm.Clone() }

// H returns a copy of the parity-check matrix.
func (c *Code) H() *gf2.Matrix { return c.hm.Clone() }

// Table returns the syndrome table.
func (c *Code) Table() *Table { return c.table }
