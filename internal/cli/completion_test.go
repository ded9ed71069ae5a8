package cli

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cyclicerr "github.com/mrz1836/cyclic/pkg/errors"
)

// TestCompletion_Bash tests bash completion script generation.
func TestCompletion_Bash(t *testing.T) {
	var buf bytes.Buffer

	err := rootCmd.GenBashCompletion(&buf)
	require.NoError(t, err)

	output := buf.String()
	assert.NotEmpty(t, output, "bash completion should generate output")
	assert.Contains(t, output, "bash", "completion should mention bash")
}

// TestCompletion_Fish tests fish completion script generation.
func TestCompletion_Fish(t *testing.T) {
	var buf bytes.Buffer

	err := rootCmd.GenFishCompletion(&buf, true)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "complete") // fish uses 'complete' command
}

// TestCompletion_Command runs the completion command for every shell and
// checks the script lands on the command's output writer.
func TestCompletion_Command(t *testing.T) {
	tests := []struct {
		shell  string
		marker string
	}{
		{"bash", "bash"},
		{"zsh", "cyclic"},
		{"fish", "complete"},
		{"powershell", "Register-ArgumentCompleter"},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			root := &cobra.Command{Use: "cyclic"}
			cmd, buf := newTestCmd(false)
			cmd.Use = "completion"
			root.AddCommand(cmd)

			err := completionCmd.RunE(cmd, []string{tt.shell})
			require.NoError(t, err, "completion generation should succeed for %s", tt.shell)
			assert.Contains(t, buf.String(), tt.marker)
		})
	}
}

func TestCompletion_UnknownShell(t *testing.T) {
	cmd, buf := newTestCmd(false)
	err := runCompletion(cmd, []string{"tcsh"})
	require.ErrorIs(t, err, cyclicerr.ErrInvalidInput)
	assert.Empty(t, buf.String())
}

func TestCompletionShells(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"bash", "fish", "powershell", "zsh"}, completionShells())
	assert.Equal(t, completionShells(), completionCmd.ValidArgs)
}
