package cyclic

import (
	"context"
	"math/bits"
	"strconv"

	"github.com/mrz1836/cyclic/internal/gf2"
	cyclicerr "github.com/mrz1836/cyclic/pkg/errors"
)

const (
	// MaxDistanceK bounds k for MinDistance, which walks 2^k - 1 codewords.
	MaxDistanceK = 24

	// MaxVerifyK bounds k for Verify, which decodes (n+1)·2^k words.
	MaxVerifyK = 20

	// progressEvery is how many messages Verify handles between progress
	// callbacks and context checks.
	progressEvery = 256
)

// MinDistance returns the minimum Hamming weight of a nonzero codeword.
// The result is computed on first use and cached.
func (c *Code) MinDistance() (int, error) {
	c.distOnce.Do(func() {
		c.dist, c.distErr = minDistance(c.params)
	})
	return c.dist, c.distErr
}

// minDistance walks the message space in Gray-code order, so each step
// adds a single shifted copy of g to the running codeword.
func minDistance(p Params) (int, error) {
	if p.K > MaxDistanceK {
		return 0, tooLarge(p.K, MaxDistanceK)
	}

	best := p.N + 1
	var cw gf2.Poly
	total := uint64(1) << uint(p.K)
	for i := uint64(1); i < total; i++ {
		cw ^= p.Generator << uint(bits.TrailingZeros64(i))
		if w := cw.Weight(); w < best {
			best = w
		}
	}
	return best, nil
}

// IsCyclic reports whether g divides x^n + 1, i.e. whether every cyclic
// shift of a codeword is again a codeword.
func (c *Code) IsCyclic() bool {
	r, err := gf2.XKMod(c.params.N, c.params.Generator)
	return err == nil && r == 1
}

// CorrectionCapacity returns the number of bit errors the code can
// guarantee to correct by syndrome lookup: 1 if every single-bit syndrome
// is unique and nonzero, otherwise 0.
func (c *Code) CorrectionCapacity() int {
	if c.table.Ambiguous() {
		return 0
	}
	return 1
}

// Failure describes the first word Verify could not decode correctly.
type Failure struct {
	Message  gf2.Bits `json:"message"`
	Flipped  int      `json:"flipped"` // -1 for the error-free codeword
	Status   Status   `json:"status"`
	Position int      `json:"position"`
	Got      gf2.Bits `json:"got"`
}

// Report summarizes an exhaustive Verify run.
type Report struct {
	Messages     int      `json:"messages"`
	Decodes      int      `json:"decodes"`
	Failures     int      `json:"failures"`
	FirstFailure *Failure `json:"first_failure,omitempty"`
}

// OK reports whether every decode succeeded.
func (r Report) OK() bool { return r.Failures == 0 }

// ProgressFunc receives the number of messages checked so far and the
// total.
type ProgressFunc func(done, total int)

// Verify encodes every k-bit message, decodes the clean codeword and every
// single-bit corruption of it, and counts decodes that do not return the
// original message with the expected status. ctx is checked between
// batches of messages.
func Verify(ctx context.Context, c *Code, progress ProgressFunc) (Report, error) {
	p := c.params
	if p.K > MaxVerifyK {
		return Report{}, tooLarge(p.K, MaxVerifyK)
	}

	total := 1 << uint(p.K)
	var rep Report
	for m := 0; m < total; m++ {
		if m%progressEvery == 0 {
			if err := ctx.Err(); err != nil {
				return rep, err
			}
			if progress != nil {
				progress(m, total)
			}
		}

		msg := gf2.Poly(m) //nolint:gosec // m < 2^20
		cw, err := msg.Mul(p.Generator)
		if err != nil {
			return rep, err
		}

		if err := verifyWord(&rep, c, msg, cw, -1); err != nil {
			return rep, err
		}
		for i := 0; i < p.N; i++ {
			if err := verifyWord(&rep, c, msg, cw^gf2.Monomial(i), i); err != nil {
				return rep, err
			}
		}
		rep.Messages++
	}

	if progress != nil {
		progress(total, total)
	}
	return rep, nil
}

func verifyWord(rep *Report, c *Code, msg, word gf2.Poly, flipped int) error {
	res, err := decodeWord(word, c.params, c.hm, c.table)
	if err != nil {
		return err
	}
	rep.Decodes++

	want := StatusCorrected
	if flipped < 0 {
		want = StatusNoError
	}
	got, err := res.Message.Poly()
	if err != nil {
		return err
	}
	if res.Status == want && res.Position == flipped && got == msg {
		return nil
	}

	rep.Failures++
	if rep.FirstFailure == nil {
		rep.FirstFailure = &Failure{
			Message:  msg.Bits(c.params.K),
			Flipped:  flipped,
			Status:   res.Status,
			Position: res.Position,
			Got:      res.Message,
		}
	}
	return nil
}

func tooLarge(k, limit int) error {
	return cyclicerr.WithDetails(ErrTooLargeToEnumerate, map[string]string{
		"k":     strconv.Itoa(k),
		"limit": strconv.Itoa(limit),
	})
}
