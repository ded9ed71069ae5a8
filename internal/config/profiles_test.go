package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/cyclic/internal/config"
	cyclicerr "github.com/mrz1836/cyclic/pkg/errors"
)

func TestGetProfile_Suggestion(t *testing.T) {
	t.Parallel()
	cfg := config.Defaults()

	_, err := cfg.GetProfile("haming74")
	require.ErrorIs(t, err, cyclicerr.ErrProfileNotFound)

	var ce *cyclicerr.CyclicError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "haming74", ce.Details["profile"])
	assert.Equal(t, "did you mean 'hamming74'?", ce.Suggestion)

	_, err = cfg.GetProfile("reed-solomon")
	require.ErrorAs(t, err, &ce)
	assert.Empty(t, ce.Suggestion)
}

func TestSuggestProfile(t *testing.T) {
	t.Parallel()
	cfg := config.Defaults()

	tests := []struct {
		input string
		want  string
	}{
		{"hamming74", "hamming74"},
		{"hamming47", "hamming74"},
		{"bch15", "bch157"},
		{"hamming151", "hamming1511"},
		{"golay", ""},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, cfg.SuggestProfile(tc.input))
		})
	}
}

func TestAddProfile(t *testing.T) {
	t.Parallel()
	cfg := config.Defaults()
	code := config.CodeConfig{N: 5, K: 2, Generator: "1101"}

	require.NoError(t, cfg.AddProfile("short52", code, false))
	got, err := cfg.GetProfile("short52")
	require.NoError(t, err)
	assert.Equal(t, code, got)

	err = cfg.AddProfile("short52", code, false)
	require.ErrorIs(t, err, cyclicerr.ErrProfileExists)

	code.N = 6
	code.K = 3
	require.NoError(t, cfg.AddProfile("short52", code, true))

	err = cfg.AddProfile("bad", config.CodeConfig{N: 7, K: 4, Generator: "11"}, false)
	require.Error(t, err)
	_, err = cfg.GetProfile("bad")
	require.Error(t, err, "invalid codes are not stored")
}

func TestAddProfile_InvalidName(t *testing.T) {
	t.Parallel()
	cfg := config.Defaults()
	code := config.CodeConfig{N: 7, K: 4, Generator: "1101"}

	err := cfg.AddProfile("my code!", code, false)
	require.ErrorIs(t, err, cyclicerr.ErrInvalidInput)

	var ce *cyclicerr.CyclicError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "try 'mycode'", ce.Suggestion)

	require.ErrorIs(t, cfg.AddProfile("", code, false), cyclicerr.ErrInvalidInput)
}

func TestRemoveProfile(t *testing.T) {
	t.Parallel()
	cfg := config.Defaults()
	cfg.Profile = "hamming74"

	require.NoError(t, cfg.RemoveProfile("hamming74"))
	assert.Empty(t, cfg.Profile, "removing the active profile clears it")
	assert.NotContains(t, cfg.ProfileNames(), "hamming74")

	err := cfg.RemoveProfile("hamming74")
	require.ErrorIs(t, err, cyclicerr.ErrProfileNotFound)
}

func TestSuggestProfileName(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "bch-15_7", config.SuggestProfileName("bch-15_7"))
	assert.Equal(t, "bch157", config.SuggestProfileName("bch(15,7)"))
	assert.Empty(t, config.SuggestProfileName("!!!"))
	require.NoError(t, config.ValidateProfileName("bch-15_7"))
}

func TestClosest(t *testing.T) {
	t.Parallel()

	keys := []string{"code.generator", "code.k", "code.n", "logging.level"}
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"exact", "code.n", "code.n"},
		{"typo", "code.generatr", "code.generator"},
		{"tie keeps first", "code.x", "code.k"},
		{"too far", "output.color", ""},
		{"no candidates", "anything", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			candidates := keys
			if tc.name == "no candidates" {
				candidates = nil
			}
			assert.Equal(t, tc.want, config.Closest(tc.input, candidates))
		})
	}
}
