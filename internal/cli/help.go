package cli

import (
	"github.com/spf13/cobra"

	"github.com/mrz1836/cyclic/internal/output"
)

// enrichParentLong appends the visible subcommands of cmd to its Long text,
// so parent help lists them even when read through a pager or man page.
func enrichParentLong(cmd *cobra.Command) {
	if !cmd.HasSubCommands() {
		return
	}

	t := output.NewTable()
	t.SetNoHeader(true)
	t.SetSeparator("   ")
	for _, sub := range cmd.Commands() {
		if sub.IsAvailableCommand() {
			t.AddRow(" "+sub.Name(), sub.Short)
		}
	}
	if t.Len() == 0 {
		return
	}

	cmd.Long += "\n\nSubcommands:\n" + t.String()
}
