package cli

import (
	"io"
	"sort"

	"github.com/spf13/cobra"

	cyclicerr "github.com/mrz1836/cyclic/pkg/errors"
)

// completionGenerators maps a shell name to the cobra script generator for it.
//
//nolint:gochecknoglobals // Static lookup table
var completionGenerators = map[string]func(root *cobra.Command, w io.Writer) error{
	"bash": func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletion(w) },
	"zsh":  func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) },
	"fish": func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
	"powershell": func(root *cobra.Command, w io.Writer) error {
		return root.GenPowerShellCompletionWithDesc(w)
	},
}

// completionCmd generates shell completion scripts.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate a completion script for cyclic and write it to stdout.

Bash:
  $ source <(cyclic completion bash)

Zsh (completion must be enabled with compinit):
  $ cyclic completion zsh > "${fpath[1]}/_cyclic"

Fish:
  $ cyclic completion fish > ~/.config/fish/completions/cyclic.fish

PowerShell:
  PS> cyclic completion powershell | Out-String | Invoke-Expression

Start a new shell after installing a script for it to take effect.`,
	Example: `  cyclic completion bash
  cyclic completion zsh > "${fpath[1]}/_cyclic"`,
	DisableFlagsInUseLine: true,
	ValidArgs:             completionShells(),
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE:                  runCompletion,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	completionCmd.GroupID = "config"
	rootCmd.AddCommand(completionCmd)
}

func runCompletion(cmd *cobra.Command, args []string) error {
	gen, ok := completionGenerators[args[0]]
	if !ok {
		return cyclicerr.WithDetails(cyclicerr.ErrInvalidInput, map[string]string{"shell": args[0]})
	}
	return gen(cmd.Root(), cmd.OutOrStdout())
}

func completionShells() []string {
	shells := make([]string, 0, len(completionGenerators))
	for s := range completionGenerators {
		shells = append(shells, s)
	}
	sort.Strings(shells)
	return shells
}
