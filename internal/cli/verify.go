package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/mrz1836/cyclic/internal/cache"
	"github.com/mrz1836/cyclic/internal/cyclic"
	"github.com/mrz1836/cyclic/internal/output"
	cyclicerr "github.com/mrz1836/cyclic/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	verifyTimeout time.Duration
	verifyQuiet   bool
)

// verifyCmd sweeps every message and single-bit error of a code.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Exhaustively check encoding and single-error correction",
	Long: `Encode every k-bit message, then decode the clean codeword and each of
its n single-bit corruptions. Every decode must return the original message.

The sweep runs 2^k·(n+1) decodes and is limited to k ≤ 20. The result and
the minimum distance are stored in the property cache under the home
directory.`,
	Example: `  cyclic verify
  cyclic verify --profile hamming1511
  cyclic verify --timeout 30s -o json`,
	Args: cobra.NoArgs,
	RunE: runVerify,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	verifyCmd.GroupID = "code"
	rootCmd.AddCommand(verifyCmd)

	addCodeFlags(verifyCmd)
	verifyCmd.Flags().DurationVar(&verifyTimeout, "timeout", 0, "abort the sweep after this long (0 for no limit)")
	verifyCmd.Flags().BoolVarP(&verifyQuiet, "quiet", "q", false, "hide the progress bar")
}

// verifyResult is the JSON shape of the verify command.
type verifyResult struct {
	Code        string `json:"code"`
	MinDistance int    `json:"min_distance,omitempty"`
	cyclic.Report
}

func runVerify(cmd *cobra.Command, _ []string) error {
	code, err := loadCode(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := sweepContext(cmd, verifyTimeout)
	defer cancel()

	var (
		progress cyclic.ProgressFunc
		bar      *progressbar.ProgressBar
	)
	if !verifyQuiet && !isJSON() {
		progress = func(done, total int) {
			if bar == nil {
				bar = newVerifyBar(cmd.ErrOrStderr(), total)
			}
			_ = bar.Set(done)
		}
		defer func() {
			if bar != nil {
				_ = bar.Finish()
			}
		}()
	}

	start := time.Now()
	rep, err := cyclic.Verify(ctx, code, progress)
	if err != nil {
		return err
	}
	logger.DebugAttrs("verify finished",
		slog.String("code", code.Params().String()),
		slog.Int("decodes", rep.Decodes),
		slog.Int("failures", rep.Failures),
		slog.Duration("elapsed", time.Since(start)),
	)

	result := verifyResult{Code: code.Params().String(), Report: rep}
	if d, err := code.MinDistance(); err == nil {
		result.MinDistance = d
	}
	updateProperties(code.Params(), func(e *cache.PropertyEntry) {
		e.Cyclic = code.IsCyclic()
		e.Verified = true
		e.Failures = rep.Failures
		if result.MinDistance > 0 {
			e.MinDistance = result.MinDistance
		}
	})

	if err := emit(cmd, result, func(w io.Writer) error {
		displayVerifyText(w, result, cmdCtx.Palette)
		return nil
	}); err != nil {
		return err
	}

	if !rep.OK() {
		return cyclicerr.WithDetails(cyclicerr.ErrUncorrectable, map[string]string{
			"code":     result.Code,
			"failures": strconv.Itoa(rep.Failures),
		})
	}
	return nil
}

// sweepContext derives the context for a verify sweep from the command
// context, bounded by timeout when it is positive.
func sweepContext(cmd *cobra.Command, timeout time.Duration) (context.Context, context.CancelFunc) {
	base := cmd.Context()
	if base == nil {
		base = context.Background()
	}
	if timeout <= 0 {
		return context.WithCancel(base)
	}
	return context.WithTimeout(base, timeout)
}

func newVerifyBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("verifying"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionClearOnFinish(),
	)
}

func displayVerifyText(w io.Writer, r verifyResult, pal *output.Palette) {
	out(w, "%s %s\n", pal.Accent("code:     "), r.Code)
	out(w, "%s %d\n", pal.Accent("messages: "), r.Messages)
	out(w, "%s %d\n", pal.Accent("decodes:  "), r.Decodes)
	if r.MinDistance > 0 {
		out(w, "%s %d\n", pal.Accent("distance: "), r.MinDistance)
	}

	if r.OK() {
		pal.Success(w, "every message and single-bit error decoded correctly")
		return
	}

	out(w, "%s %s\n", pal.Accent("failures: "), pal.Bad(strconv.Itoa(r.Failures)))
	if f := r.FirstFailure; f != nil {
		flipped := "none"
		if f.Flipped >= 0 {
			flipped = strconv.Itoa(f.Flipped)
		}
		out(w, "%s message %s, flipped %s, got %s (%s)\n",
			pal.Accent("first:    "), f.Message, flipped, f.Got, pal.Status(f.Status.String()))
	}
}

// updateProperties applies fn to the cached properties of p and writes
// the cache back. Cache failures are logged and otherwise ignored. A cache
// file that cannot be read, or that comes from a newer schema, is never
// overwritten; a corrupt one has already been moved aside.
func updateProperties(p cyclic.Params, fn func(*cache.PropertyEntry)) {
	if cmdCtx == nil || cmdCtx.Storage == nil {
		return
	}
	props, err := cmdCtx.Storage.Load()
	switch {
	case errors.Is(err, cache.ErrCacheVersion):
		logger.Error("property cache left untouched: %v", err)
		return
	case errors.Is(err, cache.ErrCorruptCache):
		logger.Error("property cache quarantined: %v", err)
		props = cache.NewPropertyCache()
	case err != nil:
		logger.Error("loading property cache: %v", err)
		return
	}

	props.Update(p, fn)

	if err := cmdCtx.Storage.Save(props); err != nil {
		logger.Error("saving property cache: %v", err)
	}
}
