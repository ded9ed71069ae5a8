package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/cyclic/internal/cache"
	"github.com/mrz1836/cyclic/internal/config"
	"github.com/mrz1836/cyclic/internal/metrics"
	"github.com/mrz1836/cyclic/internal/output"
)

// setupTestEnv points the CLI globals at a fresh home directory with the
// default configuration, text output and no color. Globals are restored on
// cleanup. Tests using this function should NOT use t.Parallel() as they
// modify package-level globals.
func setupTestEnv(t *testing.T) string {
	t.Helper()

	origCfg := cfg
	origLogger := logger
	origFormatter := formatter
	origPalette := palette
	origCmdCtx := cmdCtx
	origSelected := selected
	t.Cleanup(func() {
		cfg = origCfg
		logger = origLogger
		formatter = origFormatter
		palette = origPalette
		cmdCtx = origCmdCtx
		selected = origSelected
	})

	tmpDir := t.TempDir()

	testCfg := config.Defaults()
	testCfg.Home = tmpDir
	cfg = testCfg
	logger = config.NullLogger()
	formatter = output.NewFormatter(output.FormatText)
	palette = output.NewPalette(output.ColorNever, nil)
	cmdCtx = NewCommandContext(cfg, logger, formatter).
		WithPalette(palette).
		WithCodes(cache.NewCodes(&metrics.Metrics{})).
		WithStorage(cache.NewFileStorage(propertiesPath(tmpDir)))

	return tmpDir
}

// useJSON switches the formatter to JSON for the rest of the test.
func useJSON(t *testing.T) {
	t.Helper()
	formatter = output.NewFormatter(output.FormatJSON)
	cmdCtx.Formatter = formatter
}

// newTestCmd creates a cobra.Command with output capture. With codeFlags
// set it carries the code selection flags.
func newTestCmd(codeFlags bool) (*cobra.Command, *bytes.Buffer) {
	cmd := &cobra.Command{}
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&bytes.Buffer{})
	if codeFlags {
		addCodeFlags(cmd)
	}
	return cmd, &buf
}

// setFlags sets flag values on cmd, marking them changed.
func setFlags(t *testing.T, cmd *cobra.Command, kv ...string) {
	t.Helper()
	require.Zero(t, len(kv)%2, "setFlags needs name/value pairs")
	for i := 0; i < len(kv); i += 2 {
		require.NoError(t, cmd.Flags().Set(kv[i], kv[i+1]))
	}
}

// decodeJSON unmarshals buf into a generic map.
func decodeJSON(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m), buf.String())
	return m
}
