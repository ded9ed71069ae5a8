// Package cli implements the cyclic command-line interface.
//
// This package uses global variables to manage CLI state, which is the standard
// pattern for Cobra-based CLI applications. The globals are initialized in
// PersistentPreRunE and cleaned up in PersistentPostRun.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level state
package cli

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mrz1836/cyclic/internal/cache"
	"github.com/mrz1836/cyclic/internal/config"
	"github.com/mrz1836/cyclic/internal/metrics"
	"github.com/mrz1836/cyclic/internal/output"
	cyclicerr "github.com/mrz1836/cyclic/pkg/errors"
)

// BuildInfo describes the running binary. Fields are set at link time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

var (
	// Global flags
	homeDir      string
	outputFormat string
	verbose      bool

	// Global state initialized in PersistentPreRunE
	cfg       *config.Config
	logger    *config.Logger
	formatter *output.Formatter
	palette   *output.Palette
	cmdCtx    *CommandContext

	// codes lives for the whole process so repeated lookups share builds
	codes = cache.NewCodes(metrics.Global)

	buildInfo BuildInfo
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "cyclic",
	Short: "Binary cyclic block code encoder and decoder",
	Long: `Cyclic builds binary cyclic block codes from a length n, a message
length k and a generator polynomial g(x) over GF(2).

It encodes k-bit messages into n-bit codewords, decodes received words with
single-bit error correction by syndrome lookup, prints the generator and
parity-check matrices, and verifies codes exhaustively.

Bit strings list coefficients lowest degree first: "1101" is 1 + x + x^3.`,
	Example: `  cyclic demo
  cyclic encode 1010101
  cyclic decode 110111111100101
  cyclic matrix h --profile hamming74`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return initGlobals(cmd)
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		cleanup()
	},
}

// versionCmd prints build information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit and build date of this binary.`,
	Example: `  cyclic version
  cyclic version -o json`,
	Args: cobra.NoArgs,
	RunE: runVersion,
}

// Execute runs the root command.
func Execute(info BuildInfo) error {
	buildInfo = info
	rootCmd.Version = formatVersion(info)

	err := rootCmd.Execute()
	if err != nil {
		formatErr(err)
		return err
	}
	return nil
}

// ExitCode returns the appropriate exit code for an error.
func ExitCode(err error) int {
	return cyclicerr.ExitCode(err)
}

// formatErr prints err to stderr in the active output format.
func formatErr(err error) {
	format := output.FormatText
	if formatter != nil {
		format = formatter.Format()
	}
	_ = output.FormatError(os.Stderr, err, format)
}

// formatVersion renders build info for humans.
func formatVersion(info BuildInfo) string {
	version, commit, date := info.Version, info.Commit, info.Date
	if version == "" {
		version = "dev"
	}
	if commit == "" {
		commit = "unknown"
	}
	if date == "" {
		date = "unknown"
	}
	return version + " (commit: " + commit + ", built: " + date + ")"
}

func runVersion(cmd *cobra.Command, _ []string) error {
	info := struct {
		Version string `json:"version"`
		Commit  string `json:"commit"`
		Date    string `json:"date"`
	}{buildInfo.Version, buildInfo.Commit, buildInfo.Date}
	return emit(cmd, info, func(w io.Writer) error {
		out(w, "cyclic %s\n", formatVersion(buildInfo))
		return nil
	})
}

// resolveHome picks the data directory: --home, then CYCLIC_HOME, then
// ~/.cyclic.
func resolveHome() string {
	for _, h := range []string{homeDir, os.Getenv(config.EnvHome)} {
		if h != "" {
			return h
		}
	}
	return config.DefaultHome()
}

// loadConfig reads the config file under home. A missing file yields the
// defaults; a malformed one is an error.
func loadConfig(home string) (*config.Config, error) {
	c, err := config.Load(config.Path(home))
	switch {
	case err == nil:
		return c, nil
	case cyclicerr.Is(err, cyclicerr.ErrConfigNotFound):
		c = config.Defaults()
		c.Home = home
		return c, nil
	default:
		return nil, cyclicerr.WithSuggestion(
			cyclicerr.Wrap(err, "loading configuration"),
			"fix the file or recreate it with 'cyclic config init --force'")
	}
}

// applyFlags overlays the global flags onto c.
func applyFlags(c *config.Config) error {
	if homeDir != "" {
		c.Home = homeDir
	}
	if verbose {
		c.Output.Verbose = true
		c.Logging.Level = "debug"
	}
	if outputFormat == "" || outputFormat == string(output.FormatAuto) {
		return nil
	}
	if !output.ValidFormat(outputFormat) {
		return invalidChoice(outputFormat, "text, json, or auto")
	}
	c.Output.DefaultFormat = outputFormat
	return nil
}

// initGlobals loads configuration, then builds the logger, formatter,
// palette and command context from it. Precedence is flags, environment,
// config file, defaults.
func initGlobals(cmd *cobra.Command) error {
	loaded, err := loadConfig(resolveHome())
	if err != nil {
		return err
	}
	config.ApplyEnvironment(loaded)
	if err := applyFlags(loaded); err != nil {
		return err
	}
	cfg = loaded

	logger = config.Open(cfg.Logging, cfg.Output.Verbose)
	formatter = output.NewFormatter(output.DetectFormat(os.Stdout, output.ParseFormat(cfg.Output.DefaultFormat)))
	palette = output.NewPalette(cfg.Output.Color, cmd.OutOrStdout())

	cmdCtx = NewCommandContext(cfg, logger, formatter).
		WithPalette(palette).
		WithCodes(codes).
		WithStorage(cache.NewFileStorage(propertiesPath(cfg.Home)))
	return nil
}

// propertiesPath returns the property cache file under home.
func propertiesPath(home string) string {
	return filepath.Join(config.ExpandPath(home), cache.FileName)
}

// cleanup releases resources.
func cleanup() {
	if logger == nil {
		return
	}
	snap := metrics.Global.Snapshot()
	logger.DebugAttrs("session metrics",
		slog.Int64("builds", snap.BuildsTotal),
		slog.Int64("encodes", snap.EncodesTotal),
		slog.Int64("decodes", snap.DecodesTotal),
		slog.Int64("corrected", snap.Corrected),
		slog.Int64("uncorrectable", snap.Uncorrectable),
		slog.Float64("cache_hit_rate", metrics.Global.CacheHitRate()),
	)
	_ = logger.Close()
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for flag registration
func init() {
	rootCmd.PersistentFlags().StringVar(&homeDir, "home", "", "cyclic data directory (default: ~/.cyclic)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "auto", "output format: text, json, auto")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddGroup(
		&cobra.Group{ID: "code", Title: "Code Operations:"},
		&cobra.Group{ID: "config", Title: "Configuration:"},
	)

	versionCmd.GroupID = "config"
	rootCmd.AddCommand(versionCmd)
}
