package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mrz1836/cyclic/internal/config"
	"github.com/mrz1836/cyclic/internal/output"
	cyclicerr "github.com/mrz1836/cyclic/pkg/errors"
)

// out is a helper for CLI output that ignores write errors (standard pattern for CLI tools).
//
//nolint:errcheck // CLI output writes to stdout are intentionally unchecked
func out(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format, args...)
}

// outln is a helper for CLI output with newline.
//
//nolint:errcheck // CLI output writes to stdout are intentionally unchecked
func outln(w io.Writer, args ...interface{}) {
	fmt.Fprintln(w, args...)
}

// isJSON reports whether results should be written as JSON.
func isJSON() bool {
	return formatter != nil && formatter.IsJSON()
}

// emit writes v to the command output as JSON, or runs text in text mode.
func emit(cmd *cobra.Command, v any, text func(io.Writer) error) error {
	f := formatter
	if f == nil {
		f = output.NewFormatter(output.FormatText)
	}
	return f.Emit(cmd.OutOrStdout(), v, text)
}

// updateConfig loads the config file, applies fn and writes it back. The
// live config receives the same change so later output reflects it.
func updateConfig(fn func(*config.Config) error) error {
	path := config.Path(cfg.Home)
	onDisk, err := config.Load(path)
	switch {
	case cyclicerr.Is(err, cyclicerr.ErrConfigNotFound):
		onDisk = config.Defaults()
		onDisk.Home = cfg.Home
	case err != nil:
		return err
	}

	if err := fn(onDisk); err != nil {
		return err
	}
	if err := config.Save(onDisk, path); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	// the file is authoritative; env overrides may make the live copy differ
	_ = fn(cfg)
	return nil
}
