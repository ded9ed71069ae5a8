package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// walkCommands visits every command in the tree depth-first.
func walkCommands(cmd *cobra.Command, fn func(*cobra.Command)) {
	fn(cmd)
	for _, sub := range cmd.Commands() {
		walkCommands(sub, fn)
	}
}

// renderHelp returns the help text of cmd and restores its writer.
func renderHelp(t *testing.T, cmd *cobra.Command) string {
	t.Helper()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	defer cmd.SetOut(nil)
	require.NoError(t, cmd.Help())
	return buf.String()
}

func TestCommandTreeDocumentation(t *testing.T) {
	const maxShort = 80

	walkCommands(rootCmd, func(cmd *cobra.Command) {
		path := cmd.CommandPath()
		t.Run(path, func(t *testing.T) {
			assert.NotEmpty(t, cmd.Use, "use line")
			assert.NotEmpty(t, cmd.Short, "short description")
			assert.LessOrEqual(t, len(cmd.Short), maxShort, "short description: %q", cmd.Short)
			assert.NotEmpty(t, cmd.Long, "long description")
			assert.NotContains(t, cmd.Long, "\nExample", "examples belong in the Example field")

			runnable := cmd.RunE != nil || cmd.Run != nil
			if runnable {
				assert.NotEmpty(t, cmd.Example, "runnable command needs an example")
			}
			if cmd.Example != "" {
				for _, line := range strings.Split(strings.TrimSpace(cmd.Example), "\n") {
					assert.Contains(t, line, "cyclic", "example line %q", line)
				}
			}

			cmd.Flags().VisitAll(func(f *pflag.Flag) {
				assert.NotEmpty(t, f.Usage, "flag --%s has no description", f.Name)
			})
		})
	})
}

func TestCommandTreePaths(t *testing.T) {
	visited := make(map[string]bool)
	walkCommands(rootCmd, func(cmd *cobra.Command) {
		visited[cmd.CommandPath()] = true
	})

	for _, path := range []string{
		"cyclic",
		"cyclic demo",
		"cyclic encode",
		"cyclic decode",
		"cyclic matrix",
		"cyclic syndromes",
		"cyclic verify",
		"cyclic info",
		"cyclic profile list",
		"cyclic profile show",
		"cyclic profile add",
		"cyclic profile remove",
		"cyclic profile use",
		"cyclic config init",
		"cyclic config show",
		"cyclic config get",
		"cyclic config set",
		"cyclic completion",
		"cyclic version",
	} {
		assert.True(t, visited[path], "missing command %q", path)
	}
}

func TestCommandGroups(t *testing.T) {
	groups := map[string]string{
		"demo":       "code",
		"encode":     "code",
		"decode":     "code",
		"matrix":     "code",
		"syndromes":  "code",
		"verify":     "code",
		"info":       "code",
		"profile":    "config",
		"config":     "config",
		"completion": "config",
	}

	for _, cmd := range rootCmd.Commands() {
		if !cmd.IsAvailableCommand() {
			continue
		}
		assert.NotEmpty(t, cmd.GroupID, "%s has no group", cmd.Name())
		if want, ok := groups[cmd.Name()]; ok {
			assert.Equal(t, want, cmd.GroupID, cmd.Name())
		}
	}
}

func TestRootHelp(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"--help"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	help := buf.String()
	assert.Contains(t, help, "Code Operations:")
	assert.Contains(t, help, "Configuration:")
	assert.NotContains(t, help, "Additional Commands:")
}

func TestParentHelpListsSubcommands(t *testing.T) {
	for _, parent := range []*cobra.Command{profileCmd, configCmd} {
		t.Run(parent.Name(), func(t *testing.T) {
			help := renderHelp(t, parent)
			assert.Contains(t, help, "Subcommands:")
			for _, sub := range parent.Commands() {
				if sub.IsAvailableCommand() {
					assert.Contains(t, help, sub.Name())
				}
			}
		})
	}
}

func TestLeafHelp(t *testing.T) {
	for _, cmd := range []*cobra.Command{demoCmd, encodeCmd, verifyCmd, profileAddCmd} {
		t.Run(cmd.Name(), func(t *testing.T) {
			help := renderHelp(t, cmd)
			assert.Contains(t, help, "Examples:")
			assert.Contains(t, help, "--home", "global flags are inherited")
			assert.Contains(t, help, "--output")
		})
	}
}

func TestCodeFlagsOnCodeCommands(t *testing.T) {
	for _, cmd := range []*cobra.Command{encodeCmd, decodeCmd, matrixCmd, syndromesCmd, verifyCmd, infoCmd, profileAddCmd} {
		t.Run(cmd.Name(), func(t *testing.T) {
			for _, name := range []string{"n", "k", "generator", "profile", "allow-ambiguous"} {
				assert.NotNil(t, cmd.Flags().Lookup(name), "missing --%s", name)
			}
		})
	}
	assert.Equal(t, "g", encodeCmd.Flags().Lookup("generator").Shorthand)
	assert.Equal(t, "p", encodeCmd.Flags().Lookup("profile").Shorthand)
}

func TestEnrichParentLong(t *testing.T) {
	noop := func(*cobra.Command, []string) {}

	tests := []struct {
		name string
		subs []*cobra.Command
		want string
	}{
		{
			name: "lists visible subcommands",
			subs: []*cobra.Command{
				{Use: "sub1", Short: "First subcommand", Run: noop},
				{Use: "sub2", Short: "Second subcommand", Run: noop},
			},
			want: "Base.\n\nSubcommands:\n sub1   First subcommand\n sub2   Second subcommand\n",
		},
		{
			name: "skips hidden subcommands",
			subs: []*cobra.Command{
				{Use: "shown", Short: "Shown", Run: noop},
				{Use: "secret", Short: "Secret", Hidden: true, Run: noop},
			},
			want: "Base.\n\nSubcommands:\n shown   Shown\n",
		},
		{
			name: "all hidden",
			subs: []*cobra.Command{
				{Use: "secret", Short: "Secret", Hidden: true, Run: noop},
			},
			want: "Base.",
		},
		{
			name: "leaf",
			want: "Base.",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			parent := &cobra.Command{Use: "parent", Short: "Parent", Long: "Base."}
			parent.AddCommand(tc.subs...)

			enrichParentLong(parent)
			assert.Equal(t, tc.want, parent.Long)
		})
	}
}
