// Package gf2 implements polynomial and matrix arithmetic over GF(2).
//
// Polynomials are fixed-width bitmasks: bit i of a Poly is the coefficient
// of x^i. Addition is XOR, multiplication is carry-less, and division is
// long division with XOR in place of subtraction.
package gf2

import (
	"math/bits"
	"strconv"

	cyclicerr "github.com/mrz1836/cyclic/pkg/errors"
)

// MaxBits is the number of coefficients a Poly can hold.
const MaxBits = 64

// Poly is a polynomial over GF(2) of degree at most 63.
type Poly uint64

// Monomial returns x^i. It returns 0 when i is outside [0, MaxBits).
func Monomial(i int) Poly {
	if i < 0 || i >= MaxBits {
		return 0
	}
	return Poly(1) << uint(i)
}

// Degree returns the index of the highest nonzero coefficient, or -1 for
// the zero polynomial.
func (p Poly) Degree() int {
	if p == 0 {
		return -1
	}
	return MaxBits - 1 - bits.LeadingZeros64(uint64(p))
}

// Coeff returns the coefficient of x^i.
func (p Poly) Coeff(i int) byte {
	if i < 0 || i >= MaxBits {
		return 0
	}
	return byte(p>>uint(i)) & 1
}

// Weight returns the number of nonzero coefficients.
func (p Poly) Weight() int {
	return bits.OnesCount64(uint64(p))
}

// Add returns p + q, which over GF(2) is the bitwise xor of the two.
func (p Poly) Add(q Poly) Poly {
	return p ^ q
}

// Mul returns p * q. It fails with ErrPolyOverflow when the product would
// have degree greater than 63.
func (p Poly) Mul(q Poly) (Poly, error) {
	if p == 0 || q == 0 {
		return 0, nil
	}
	if d := p.Degree() + q.Degree(); d >= MaxBits {
		return 0, cyclicerr.WithDetails(ErrPolyOverflow, map[string]string{
			"degree": strconv.Itoa(d),
		})
	}

	var prod Poly
	for q != 0 {
		if q&1 != 0 {
			prod ^= p
		}
		q >>= 1
		p <<= 1
	}
	return prod, nil
}

// Div divides p by q and returns the quotient and remainder, so that
// p = quo*q + rem with degree(rem) < degree(q).
func (p Poly) Div(q Poly) (quo, rem Poly, err error) {
	if q == 0 {
		return 0, 0, ErrDivisionByZero
	}

	dq := q.Degree()
	rem = p
	for rem != 0 {
		shift := rem.Degree() - dq
		if shift < 0 {
			break
		}
		quo |= Poly(1) << uint(shift)
		rem ^= q << uint(shift)
	}
	return quo, rem, nil
}

// Mod returns p mod q.
func (p Poly) Mod(q Poly) (Poly, error) {
	_, rem, err := p.Div(q)
	return rem, err
}

// Bits returns the first width coefficients of p, lowest degree first.
func (p Poly) Bits(width int) Bits {
	if width < 0 {
		width = 0
	}
	out := make(Bits, width)
	for i := range out {
		out[i] = p.Coeff(i)
	}
	return out
}

// String renders p in the same form as Bits.String, without trailing zeros.
func (p Poly) String() string {
	if p == 0 {
		return "0"
	}
	return p.Bits(p.Degree() + 1).String()
}

// XKMod returns x^k mod g. The power is reduced one step at a time, so k is
// not bounded by MaxBits.
func XKMod(k int, g Poly) (Poly, error) {
	if g == 0 {
		return 0, ErrDivisionByZero
	}

	dg := g.Degree()
	if dg == 0 {
		// everything is divisible by a nonzero constant
		return 0, nil
	}

	r := Poly(1)
	for i := 0; i < k; i++ {
		r <<= 1
		if r.Coeff(dg) == 1 {
			r ^= g
		}
	}
	return r, nil
}

// RemainderOfXK divides x^k by g and returns the remainder's coefficients
// zero-padded to exactly width entries. Callers pass width >= degree(g).
func RemainderOfXK(k int, g Poly, width int) (Bits, error) {
	r, err := XKMod(k, g)
	if err != nil {
		return nil, err
	}
	return r.Bits(width), nil
}
