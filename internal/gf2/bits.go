package gf2

import (
	"strconv"
	"strings"

	"github.com/mrz1836/go-sanitize"

	cyclicerr "github.com/mrz1836/cyclic/pkg/errors"
)

// Bits is a vector of GF(2) coefficients, one per byte, lowest degree first.
// Index i holds the coefficient of x^i.
type Bits []byte

// ParseBits parses a bit string such as "1010101", "1 0 1" or "[1, 0, 1]".
// Separators (spaces, commas, underscores and brackets) are ignored; any
// other character is rejected.
func ParseBits(s string) (Bits, error) {
	for i, r := range s {
		switch r {
		case '0', '1', ' ', '\t', ',', '_', '[', ']':
		default:
			return nil, cyclicerr.WithDetails(ErrInvalidBits, map[string]string{
				"input":    s,
				"position": strconv.Itoa(i),
			})
		}
	}

	digits := sanitize.Numeric(s)
	if digits == "" {
		return nil, cyclicerr.WithDetails(ErrInvalidBits, map[string]string{"input": s})
	}

	out := make(Bits, len(digits))
	for i := range digits {
		out[i] = digits[i] - '0'
	}
	return out, nil
}

// MustParseBits is like ParseBits but panics on error. Intended for
// constants and tests.
func MustParseBits(s string) Bits {
	b, err := ParseBits(s)
	if err != nil {
		panic(err)
	}
	return b
}

// Validate reports ErrInvalidBits if any entry is not 0 or 1.
func (b Bits) Validate() error {
	for i, v := range b {
		if v > 1 {
			return cyclicerr.WithDetails(ErrInvalidBits, map[string]string{
				"index": strconv.Itoa(i),
				"value": strconv.Itoa(int(v)),
			})
		}
	}
	return nil
}

// Poly packs b into a Poly. It fails when b is longer than MaxBits or holds
// non-binary values.
func (b Bits) Poly() (Poly, error) {
	if len(b) > MaxBits {
		return 0, cyclicerr.WithDetails(ErrPolyOverflow, map[string]string{
			"length": strconv.Itoa(len(b)),
		})
	}
	if err := b.Validate(); err != nil {
		return 0, err
	}

	var p Poly
	for i, v := range b {
		if v == 1 {
			p |= Poly(1) << uint(i)
		}
	}
	return p, nil
}

// Degree returns the index of the highest nonzero entry, or -1.
func (b Bits) Degree() int {
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] != 0 {
			return i
		}
	}
	return -1
}

// Weight returns the number of nonzero entries.
func (b Bits) Weight() int {
	w := 0
	for _, v := range b {
		if v != 0 {
			w++
		}
	}
	return w
}

// IsZero reports whether every entry is zero.
func (b Bits) IsZero() bool {
	return b.Degree() < 0
}

// Clone returns a copy of b.
func (b Bits) Clone() Bits {
	if b == nil {
		return nil
	}
	out := make(Bits, len(b))
	copy(out, b)
	return out
}

// Equal reports whether a and b have the same length and entries.
func (b Bits) Equal(o Bits) bool {
	if len(b) != len(o) {
		return false
	}
	for i := range b {
		if b[i] != o[i] {
			return false
		}
	}
	return true
}

// String renders b as a run of 0 and 1 characters.
func (b Bits) String() string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, v := range b {
		sb.WriteByte('0' + v)
	}
	return sb.String()
}

// Add returns a + b. The shorter operand is padded with zeros, so the
// result has max(len(a), len(b)) entries.
func Add(a, b Bits) Bits {
	if len(a) < len(b) {
		a, b = b, a
	}
	out := a.Clone()
	for i, v := range b {
		out[i] ^= v
	}
	return out
}

// Mul returns the product of a and b as the xor-convolution of their
// coefficients. The result has len(a)+len(b)-1 entries; zero coefficients
// are not stripped.
func Mul(a, b Bits) Bits {
	if len(a) == 0 || len(b) == 0 {
		return Bits{}
	}
	out := make(Bits, len(a)+len(b)-1)
	for i, x := range a {
		if x == 0 {
			continue
		}
		for j, y := range b {
			out[i+j] ^= x & y
		}
	}
	return out
}

// Div performs long division of a by b, returning quotient and remainder
// with a = quo*b + rem and degree(rem) < degree(b).
func Div(a, b Bits) (quo, rem Bits, err error) {
	db := b.Degree()
	if db < 0 {
		return nil, nil, ErrDivisionByZero
	}

	work := a.Clone()
	qlen := len(a) - db
	if qlen < 1 {
		qlen = 1
	}
	quo = make(Bits, qlen)

	for i := len(work) - 1; i >= db; i-- {
		if work[i] == 0 {
			continue
		}
		shift := i - db
		quo[shift] = 1
		for j := 0; j <= db; j++ {
			work[shift+j] ^= b[j]
		}
	}

	if len(work) > db {
		work = work[:db]
	}
	return quo, work, nil
}

// MarshalText renders b as a bit string, so JSON and YAML show "1010"
// rather than base64.
func (b Bits) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText parses a bit string produced by MarshalText.
func (b *Bits) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*b = Bits{}
		return nil
	}
	parsed, err := ParseBits(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
