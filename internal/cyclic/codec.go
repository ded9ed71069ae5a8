package cyclic

import (
	"strconv"

	"github.com/mrz1836/cyclic/internal/gf2"
	cyclicerr "github.com/mrz1836/cyclic/pkg/errors"
)

// Status is the outcome of decoding one received word.
type Status int

// Decode statuses.
const (
	// StatusNoError means the syndrome was zero.
	StatusNoError Status = iota
	// StatusCorrected means one bit was flipped at Result.Position.
	StatusCorrected
	// StatusUncorrectable means the syndrome matched no single-bit error.
	// The word is returned as received.
	StatusUncorrectable
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusNoError:
		return "no_error"
	case StatusCorrected:
		return "corrected"
	case StatusUncorrectable:
		return "uncorrectable"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Result is the outcome of Decode.
type Result struct {
	Message  gf2.Bits `json:"message"`
	Codeword gf2.Bits `json:"codeword"`
	Syndrome gf2.Bits `json:"syndrome"`
	Status   Status   `json:"status"`
	Position int      `json:"position"` // -1 unless Status is StatusCorrected
}

// Encode multiplies the k-bit message by g and returns the n-bit codeword.
func (c *Code) Encode(message gf2.Bits) (gf2.Bits, error) {
	if len(message) != c.params.K {
		return nil, lengthError(ErrInvalidMessageLength, c.params.K, len(message))
	}
	m, err := message.Poly()
	if err != nil {
		return nil, err
	}
	cw, err := m.Mul(c.params.Generator)
	if err != nil {
		return nil, err
	}
	return cw.Bits(c.params.N), nil
}

// Decode corrects at most one bit error in the n-bit received word and
// returns the recovered message with the decode status. The caller's slice
// is never modified.
func (c *Code) Decode(received gf2.Bits) (Result, error) {
	if len(received) != c.params.N {
		return Result{}, lengthError(ErrInvalidReceivedLength, c.params.N, len(received))
	}
	r, err := received.Poly()
	if err != nil {
		return Result{}, err
	}
	return decodeWord(r, c.params, c.hm, c.table)
}

// Syndrome returns H·received.
func (c *Code) Syndrome(received gf2.Bits) (gf2.Bits, error) {
	if len(received) != c.params.N {
		return nil, lengthError(ErrInvalidReceivedLength, c.params.N, len(received))
	}
	r, err := received.Poly()
	if err != nil {
		return nil, err
	}
	return c.hm.MulVec(r).Bits(c.params.N - c.params.K), nil
}

// Check reports whether word is a codeword.
func (c *Code) Check(word gf2.Bits) (bool, error) {
	s, err := c.Syndrome(word)
	if err != nil {
		return false, err
	}
	return s.IsZero(), nil
}

// Encode multiplies a k-bit message by g without a prebuilt Code. The
// codeword has k + degree(g) bits.
func Encode(message, generator gf2.Bits, k int) (gf2.Bits, error) {
	if len(message) != k {
		return nil, lengthError(ErrInvalidMessageLength, k, len(message))
	}
	g, err := generator.Poly()
	if err != nil {
		return nil, err
	}
	if g == 0 {
		return nil, gf2.ErrDivisionByZero
	}
	m, err := message.Poly()
	if err != nil {
		return nil, err
	}
	cw, err := m.Mul(g)
	if err != nil {
		return nil, err
	}
	return cw.Bits(k + g.Degree()), nil
}

// Decode decodes received against a parity-check matrix and syndrome table
// without a prebuilt Code.
func Decode(received gf2.Bits, h *gf2.Matrix, table *Table, generator gf2.Bits) (Result, error) {
	if h == nil {
		return Result{}, gf2.ErrDimensionMismatch
	}
	if len(received) != h.Cols() {
		return Result{}, lengthError(ErrInvalidReceivedLength, h.Cols(), len(received))
	}
	g, err := generator.Poly()
	if err != nil {
		return Result{}, err
	}
	p := Params{N: h.Cols(), K: h.Cols() - h.Rows(), Generator: g}
	if err := p.Validate(); err != nil {
		return Result{}, err
	}
	r, err := received.Poly()
	if err != nil {
		return Result{}, err
	}
	return decodeWord(r, p, h, table)
}

// decodeWord runs syndrome decoding on a packed word.
func decodeWord(r gf2.Poly, p Params, h *gf2.Matrix, table *Table) (Result, error) {
	word, s, status, pos := correct(r, h, table)

	q, _, err := word.Div(p.Generator)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Message:  q.Bits(p.K),
		Codeword: word.Bits(p.N),
		Syndrome: s.Bits(p.N - p.K),
		Status:   status,
		Position: pos,
	}, nil
}

// correct returns r with at most one bit flipped, along with its syndrome.
// The flip only happens after the table lookup succeeds.
func correct(r gf2.Poly, h *gf2.Matrix, table *Table) (word, syndrome gf2.Poly, status Status, pos int) {
	syndrome = h.MulVec(r)
	if syndrome == 0 {
		return r, syndrome, StatusNoError, -1
	}
	pos, ok := table.Lookup(syndrome)
	if !ok {
		return r, syndrome, StatusUncorrectable, -1
	}
	return r ^ gf2.Monomial(pos), syndrome, StatusCorrected, pos
}

func lengthError(err error, expected, got int) error {
	return cyclicerr.WithDetails(err, map[string]string{
		"expected": strconv.Itoa(expected),
		"got":      strconv.Itoa(got),
	})
}
