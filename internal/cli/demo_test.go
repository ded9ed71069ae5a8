package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cyclicerr "github.com/mrz1836/cyclic/pkg/errors"
)

func setDemoFlip(t *testing.T, pos int) {
	t.Helper()
	orig := demoFlipAt
	demoFlipAt = pos
	t.Cleanup(func() { demoFlipAt = orig })
}

func TestRunDemo_Text(t *testing.T) {
	setupTestEnv(t)
	setDemoFlip(t, demoFlip)

	cmd, buf := newTestCmd(false)
	require.NoError(t, runDemo(cmd, nil))

	result := buf.String()
	assert.Contains(t, result, "code:     (15,7) g=111010001")
	assert.Contains(t, result, "message:  1010101")
	assert.Contains(t, result, "codeword: 110111111000101")
	assert.Contains(t, result, "received: 110111111100101")
	assert.Contains(t, result, "status:   corrected (position 9)")
	assert.Contains(t, result, "decoded:  1010101")
	assert.Contains(t, result, "ok: message recovered")
}

func TestRunDemo_JSON(t *testing.T) {
	setupTestEnv(t)
	useJSON(t)
	setDemoFlip(t, demoFlip)

	cmd, buf := newTestCmd(false)
	require.NoError(t, runDemo(cmd, nil))

	m := decodeJSON(t, buf)
	assert.Equal(t, "(15,7) g=111010001", m["code"])
	assert.Equal(t, "110111111000101", m["codeword"])
	assert.Equal(t, "110111111100101", m["received"])
	assert.InDelta(t, 9, m["flipped"], 0)

	res, ok := m["result"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "corrected", res["status"])
	assert.InDelta(t, 9, res["position"], 0)
	assert.Equal(t, "1010101", res["message"])
	assert.Equal(t, "110111111000101", res["codeword"])
}

func TestRunDemo_NoFlip(t *testing.T) {
	setupTestEnv(t)
	setDemoFlip(t, -1)

	cmd, buf := newTestCmd(false)
	require.NoError(t, runDemo(cmd, nil))

	result := buf.String()
	assert.Contains(t, result, "received: 110111111000101")
	assert.Contains(t, result, "syndrome: 00000000")
	assert.Contains(t, result, "status:   no_error\n")
}

func TestRunDemo_EveryPosition(t *testing.T) {
	setupTestEnv(t)
	useJSON(t)

	for pos := 0; pos < demoN; pos++ {
		setDemoFlip(t, pos)
		cmd, buf := newTestCmd(false)
		require.NoError(t, runDemo(cmd, nil))

		res, ok := decodeJSON(t, buf)["result"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "corrected", res["status"], "position %d", pos)
		assert.InDelta(t, pos, res["position"], 0)
		assert.Equal(t, demoMessage, res["message"])
	}
}

func TestRunDemo_FlipOutOfRange(t *testing.T) {
	setupTestEnv(t)

	for _, pos := range []int{-2, demoN, 64} {
		setDemoFlip(t, pos)
		cmd, _ := newTestCmd(false)
		err := runDemo(cmd, nil)
		require.ErrorIs(t, err, cyclicerr.ErrInvalidInput, "flip %d", pos)
	}
}
