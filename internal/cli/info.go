package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/mrz1836/cyclic/internal/cache"
	"github.com/mrz1836/cyclic/internal/cyclic"
	"github.com/mrz1836/cyclic/internal/output"
)

// infoCmd describes a code.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the properties of a code",
	Long: `Show the parameters of a code along with its rate, whether it is
cyclic (g(x) divides x^n + 1), how many bit errors the syndrome table
corrects, and its minimum distance.

The minimum distance is found by enumerating all codewords and is skipped
for k > 24. Results of earlier verify runs are read from the property
cache.`,
	Example: `  cyclic info
  cyclic info --profile hamming74
  cyclic info --n 5 --k 2 -g 1101 -o json`,
	Args: cobra.NoArgs,
	RunE: runInfo,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	infoCmd.GroupID = "code"
	rootCmd.AddCommand(infoCmd)
	addCodeFlags(infoCmd)
}

// infoResult is the JSON shape of the info command.
type infoResult struct {
	N                  int     `json:"n"`
	K                  int     `json:"k"`
	Generator          string  `json:"generator"`
	Degree             int     `json:"degree"`
	Rate               float64 `json:"rate"`
	Cyclic             bool    `json:"cyclic"`
	CorrectionCapacity int     `json:"correction_capacity"`
	MinDistance        int     `json:"min_distance,omitempty"`
	Ambiguous          bool    `json:"ambiguous"`
	Verified           *bool   `json:"verified,omitempty"`
	Failures           int     `json:"failures,omitempty"`
	VerifiedAge        string  `json:"verified_age,omitempty"`
}

func runInfo(cmd *cobra.Command, _ []string) error {
	code, err := loadCode(cmd)
	if err != nil {
		return err
	}
	p := code.Params()

	result := infoResult{
		N:                  p.N,
		K:                  p.K,
		Generator:          code.Generator().String(),
		Degree:             p.N - p.K,
		Rate:               float64(p.K) / float64(p.N),
		Cyclic:             code.IsCyclic(),
		CorrectionCapacity: code.CorrectionCapacity(),
		Ambiguous:          code.Table().Ambiguous(),
	}
	if d, err := code.MinDistance(); err == nil {
		result.MinDistance = d
	} else {
		logger.Debug("min distance of %s skipped: %v", p, err)
	}

	if entry, age, ok := cachedProperties(p); ok && entry.Verified {
		verified := entry.Failures == 0
		result.Verified = &verified
		result.Failures = entry.Failures
		result.VerifiedAge = age.Truncate(time.Second).String()
	}

	updateProperties(p, func(e *cache.PropertyEntry) {
		e.Cyclic = result.Cyclic
		if result.MinDistance > 0 {
			e.MinDistance = result.MinDistance
		}
	})

	return emit(cmd, result, func(w io.Writer) error {
		displayInfoText(w, result, cmdCtx.Palette)
		return nil
	})
}

// cachedProperties returns the stored properties of p, if any.
func cachedProperties(p cyclic.Params) (*cache.PropertyEntry, time.Duration, bool) {
	if cmdCtx == nil || cmdCtx.Storage == nil {
		return nil, 0, false
	}
	props, err := cmdCtx.Storage.Load()
	if err != nil {
		logger.Error("loading property cache: %v", err)
		return nil, 0, false
	}
	entry, ok, age := props.Get(p)
	return entry, age, ok
}

func displayInfoText(w io.Writer, r infoResult, pal *output.Palette) {
	yesNo := func(b bool) string {
		if b {
			return pal.Good("yes")
		}
		return pal.Bad("no")
	}

	out(w, "%s (%d,%d)\n", pal.Accent("code:       "), r.N, r.K)
	out(w, "%s %s (degree %d)\n", pal.Accent("generator:  "), r.Generator, r.Degree)
	out(w, "%s %.3f\n", pal.Accent("rate:       "), r.Rate)
	out(w, "%s %s\n", pal.Accent("cyclic:     "), yesNo(r.Cyclic))
	out(w, "%s %d\n", pal.Accent("corrects:   "), r.CorrectionCapacity)

	distance := fmt.Sprintf("not computed (k > %d)", cyclic.MaxDistanceK)
	if r.MinDistance > 0 {
		distance = fmt.Sprint(r.MinDistance)
	}
	out(w, "%s %s\n", pal.Accent("distance:   "), distance)

	if r.Ambiguous {
		pal.Warn(w, "syndrome table has collisions; see 'cyclic syndromes'")
	}
	if r.Verified != nil {
		out(w, "%s %s (%s ago)\n", pal.Accent("verified:   "), yesNo(*r.Verified), r.VerifiedAge)
	}
}
