package cyclic_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/cyclic/internal/cyclic"
	"github.com/mrz1836/cyclic/internal/gf2"
)

func TestEncodeBCH15(t *testing.T) {
	t.Parallel()
	c := mustBuild(t, 15, 7, "111010001")

	cw, err := c.Encode(gf2.MustParseBits("1010101"))
	require.NoError(t, err)
	assert.Equal(t, "110111111000101", cw.String())

	ok, err := c.Check(cw)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDecodeCorrectsFlippedBit(t *testing.T) {
	t.Parallel()
	c := mustBuild(t, 15, 7, "111010001")

	received := gf2.MustParseBits("110111111100101") // bit 9 flipped
	before := received.Clone()

	res, err := c.Decode(received)
	require.NoError(t, err)
	assert.Equal(t, cyclic.StatusCorrected, res.Status)
	assert.Equal(t, 9, res.Position)
	assert.Equal(t, "1010101", res.Message.String())
	assert.Equal(t, "110111111000101", res.Codeword.String())
	assert.False(t, res.Syndrome.IsZero())
	assert.Equal(t, before, received, "received word must not be modified")
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	for _, tc := range knownCodes {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			c := mustBuild(t, tc.n, tc.k, tc.generator)

			for m := 0; m < 1<<uint(tc.k); m += 1 + m/4 {
				msg := gf2.Poly(m).Bits(tc.k)
				cw, err := c.Encode(msg)
				require.NoError(t, err)
				require.Len(t, cw, tc.n)

				res, err := c.Decode(cw)
				require.NoError(t, err)
				assert.Equal(t, cyclic.StatusNoError, res.Status)
				assert.Equal(t, -1, res.Position)
				assert.True(t, res.Syndrome.IsZero())
				assert.Equal(t, msg, res.Message)

				for i := 0; i < tc.n; i++ {
					bad := cw.Clone()
					bad[i] ^= 1

					res, err := c.Decode(bad)
					require.NoError(t, err)
					require.Equal(t, cyclic.StatusCorrected, res.Status, "message %s bit %d", msg, i)
					assert.Equal(t, i, res.Position)
					assert.Equal(t, msg, res.Message)
					assert.Equal(t, cw, res.Codeword)
				}
			}
		})
	}
}

func TestDecodeDoubleErrorInHammingCode(t *testing.T) {
	t.Parallel()
	c := mustBuild(t, 7, 4, "1101")

	cw, err := c.Encode(gf2.MustParseBits("1011"))
	require.NoError(t, err)
	assert.Equal(t, "1111111", cw.String())

	// a perfect code maps every double error onto some single-bit syndrome,
	// so the decode claims a correction but lands on the wrong codeword
	bad := cw.Clone()
	bad[0] ^= 1
	bad[1] ^= 1
	res, err := c.Decode(bad)
	require.NoError(t, err)
	assert.Equal(t, cyclic.StatusCorrected, res.Status)
	assert.NotEqual(t, cw, res.Codeword)
}

func TestDecodeUncorrectable(t *testing.T) {
	t.Parallel()
	c := mustBuild(t, 3, 2, "11", cyclic.WithAmbiguousTable())

	received := gf2.MustParseBits("100")
	res, err := c.Decode(received)
	require.NoError(t, err)
	assert.Equal(t, cyclic.StatusUncorrectable, res.Status)
	assert.Equal(t, -1, res.Position)
	assert.Equal(t, "1", res.Syndrome.String())
	assert.Equal(t, "100", res.Codeword.String(), "uncorrectable words are returned unchanged")
	assert.Equal(t, "00", res.Message.String())
}

func TestCodecLengthErrors(t *testing.T) {
	t.Parallel()
	c := mustBuild(t, 7, 4, "1101")

	_, err := c.Encode(gf2.MustParseBits("101"))
	require.ErrorIs(t, err, cyclic.ErrInvalidMessageLength)

	_, err = c.Decode(gf2.MustParseBits("10110"))
	require.ErrorIs(t, err, cyclic.ErrInvalidReceivedLength)

	_, err = c.Syndrome(gf2.MustParseBits("10110001"))
	require.ErrorIs(t, err, cyclic.ErrInvalidReceivedLength)

	_, err = c.Check(nil)
	require.ErrorIs(t, err, cyclic.ErrInvalidReceivedLength)
}

func TestSyndromeOfSingleErrorIsColumn(t *testing.T) {
	t.Parallel()
	c := mustBuild(t, 7, 4, "1101")
	h := c.H()

	for i := 0; i < 7; i++ {
		s, err := c.Syndrome(gf2.Monomial(i).Bits(7))
		require.NoError(t, err)
		assert.Equal(t, h.Column(i).Bits(3), s)
	}
}

func TestPackageLevelCodec(t *testing.T) {
	t.Parallel()
	c := mustBuild(t, 15, 7, "111010001")
	generator := gf2.MustParseBits("111010001")

	cw, err := cyclic.Encode(gf2.MustParseBits("1010101"), generator, 7)
	require.NoError(t, err)
	assert.Equal(t, "110111111000101", cw.String())

	cw[3] ^= 1
	res, err := cyclic.Decode(cw, c.H(), c.Table(), generator)
	require.NoError(t, err)
	assert.Equal(t, cyclic.StatusCorrected, res.Status)
	assert.Equal(t, 3, res.Position)
	assert.Equal(t, "1010101", res.Message.String())

	_, err = cyclic.Encode(gf2.MustParseBits("101"), generator, 7)
	require.ErrorIs(t, err, cyclic.ErrInvalidMessageLength)

	_, err = cyclic.Encode(gf2.MustParseBits("1010101"), gf2.MustParseBits("000"), 7)
	require.ErrorIs(t, err, gf2.ErrDivisionByZero)

	_, err = cyclic.Decode(cw, c.H(), c.Table(), gf2.MustParseBits("1101"))
	require.ErrorIs(t, err, cyclic.ErrInvalidGeneratorDegree)

	assert.NotPanics(t, func() {
		_, err = cyclic.Decode(cw, nil, c.Table(), generator)
	})
	require.ErrorIs(t, err, gf2.ErrDimensionMismatch)
}

func TestStatus(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "no_error", cyclic.StatusNoError.String())
	assert.Equal(t, "corrected", cyclic.StatusCorrected.String())
	assert.Equal(t, "uncorrectable", cyclic.StatusUncorrectable.String())
	assert.Equal(t, "unknown", cyclic.Status(42).String())

	data, err := json.Marshal(cyclic.Result{
		Message:  gf2.MustParseBits("1011"),
		Codeword: gf2.MustParseBits("1111111"),
		Syndrome: gf2.MustParseBits("000"),
		Status:   cyclic.StatusNoError,
		Position: -1,
	})
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"message":"1011","codeword":"1111111","syndrome":"000","status":"no_error","position":-1}`,
		string(data))
}
