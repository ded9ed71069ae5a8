package cli

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/mrz1836/cyclic/internal/config"
	"github.com/mrz1836/cyclic/internal/cyclic"
)

// codeFlags holds the code selection flags shared by the codec commands.
type codeFlags struct {
	n              int
	k              int
	generator      string
	profile        string
	allowAmbiguous bool
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var selected codeFlags

// addCodeFlags registers the code selection flags on cmd.
func addCodeFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntVar(&selected.n, "n", 0, "code length n")
	f.IntVar(&selected.k, "k", 0, "message length k")
	f.StringVarP(&selected.generator, "generator", "g", "", "generator polynomial, lowest degree first (e.g. 1101)")
	f.StringVarP(&selected.profile, "profile", "p", "", "use a named code profile")
	f.BoolVar(&selected.allowAmbiguous, "allow-ambiguous", false, "build codes whose single-bit syndromes collide")
}

// selectedCode resolves the code description for cmd. The base is the
// --profile flag, else the configured active code; explicit --n, --k and
// --generator flags override single fields of it.
func selectedCode(cmd *cobra.Command) (config.CodeConfig, error) {
	var (
		code config.CodeConfig
		err  error
	)
	if selected.profile != "" {
		code, err = cfg.GetProfile(selected.profile)
	} else {
		code, err = cfg.ActiveCode()
	}
	if err != nil {
		return config.CodeConfig{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("n") {
		code.N = selected.n
	}
	if flags.Changed("k") {
		code.K = selected.k
	}
	if flags.Changed("generator") {
		code.Generator = selected.generator
	}
	if selected.allowAmbiguous {
		code.AllowAmbiguous = true
	}
	return code, nil
}

// loadCode returns the built code selected for cmd.
func loadCode(cmd *cobra.Command) (*cyclic.Code, error) {
	sel, err := selectedCode(cmd)
	if err != nil {
		return nil, err
	}
	p, err := sel.Params()
	if err != nil {
		return nil, err
	}
	return buildCode(p, sel.AllowAmbiguous)
}

// buildCode fetches p from the code provider and logs the outcome.
func buildCode(p cyclic.Params, allowAmbiguous bool) (*cyclic.Code, error) {
	start := time.Now()
	code, err := cmdCtx.Codes.Get(p, allowAmbiguous)
	if err != nil {
		logger.ErrorAttrs("code build failed",
			slog.String("code", p.String()),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	logger.DebugAttrs("code ready",
		slog.String("code", p.String()),
		slog.Duration("elapsed", time.Since(start)),
		slog.Int("syndromes", code.Table().Len()),
	)
	return code, nil
}
