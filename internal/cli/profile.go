package cli

import (
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mrz1836/cyclic/internal/config"
	"github.com/mrz1836/cyclic/internal/output"
	cyclicerr "github.com/mrz1836/cyclic/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var profileForce bool

// profileCmd is the parent command for code profiles.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage named code profiles",
	Long: `Named (n, k, g) codes stored in the configuration file. Any codec
command accepts --profile <name> to use one.`,
}

// profileListCmd lists profiles.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List code profiles",
	Long:  `List all code profiles. The active profile is marked with *.`,
	Example: `  cyclic profile list
  cyclic profile list -o json`,
	Args: cobra.NoArgs,
	RunE: runProfileList,
}

// profileShowCmd shows one profile.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var profileShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a code profile",
	Long:  `Show the parameters of a single code profile.`,
	Example: `  cyclic profile show hamming74
  cyclic profile show bch157 -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runProfileShow,
}

// profileAddCmd adds a profile.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var profileAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a code profile",
	Long: `Add a named code profile. The code is built before it is saved, so
an invalid generator or an ambiguous syndrome table is rejected unless
--allow-ambiguous is given.

Names may contain letters, digits, '-' and '_'.`,
	Example: `  cyclic profile add hamming74 --n 7 --k 4 -g 1101
  cyclic profile add golay --n 23 --k 12 -g 101011100011
  cyclic profile add hamming74 --n 7 --k 4 -g 1011 --force`,
	Args: cobra.ExactArgs(1),
	RunE: runProfileAdd,
}

// profileRemoveCmd removes a profile.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var profileRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a code profile",
	Long: `Remove a code profile. Removing the active profile makes the code
section of the configuration the default again.`,
	Example: `  cyclic profile remove golay`,
	Args:    cobra.ExactArgs(1),
	RunE:    runProfileRemove,
}

// profileUseCmd selects the active profile.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var profileUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Make a profile the default code",
	Long: `Make a profile the code used when no --profile or code flags are
given. Pass "" to go back to the code section of the configuration.`,
	Example: `  cyclic profile use hamming74
  cyclic profile use ""`,
	Args: cobra.ExactArgs(1),
	RunE: runProfileUse,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	profileCmd.GroupID = "config"
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileAddCmd)
	profileCmd.AddCommand(profileRemoveCmd)
	profileCmd.AddCommand(profileUseCmd)

	addCodeFlags(profileAddCmd)
	profileAddCmd.Flags().BoolVar(&profileForce, "force", false, "replace an existing profile")
	_ = profileAddCmd.Flags().MarkHidden("profile")

	enrichParentLong(profileCmd)
}

// profileEntry is the JSON shape of a profile.
type profileEntry struct {
	Name   string `json:"name"`
	Active bool   `json:"active"`
	config.CodeConfig
}

func runProfileList(cmd *cobra.Command, _ []string) error {
	names := cfg.ProfileNames()
	entries := make([]profileEntry, 0, len(names))
	for _, name := range names {
		entries = append(entries, profileEntry{
			Name:       name,
			Active:     name == cfg.Profile,
			CodeConfig: cfg.Profiles[name],
		})
	}

	return emit(cmd, entries, func(w io.Writer) error {
		return displayProfileList(w, entries)
	})
}

func displayProfileList(w io.Writer, entries []profileEntry) error {
	if len(entries) == 0 {
		outln(w, "No profiles. Add one with 'cyclic profile add'.")
		return nil
	}

	t := output.NewTable("", "NAME", "N", "K", "GENERATOR")
	for _, e := range entries {
		mark := ""
		if e.Active {
			mark = "*"
		}
		t.AddRow(mark, e.Name, strconv.Itoa(e.N), strconv.Itoa(e.K), e.Generator)
	}
	return t.Render(w)
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	name := args[0]
	code, err := cfg.GetProfile(name)
	if err != nil {
		return err
	}

	entry := profileEntry{Name: name, Active: name == cfg.Profile, CodeConfig: code}
	return emit(cmd, entry, func(w io.Writer) error {
		displayProfileText(w, entry)
		return nil
	})
}

func displayProfileText(w io.Writer, e profileEntry) {
	out(w, "Profile: %s\n", e.Name)
	out(w, "  n:               %d\n", e.N)
	out(w, "  k:               %d\n", e.K)
	out(w, "  generator:       %s\n", e.Generator)
	out(w, "  allow_ambiguous: %t\n", e.AllowAmbiguous)
	out(w, "  active:          %t\n", e.Active)
}

func runProfileAdd(cmd *cobra.Command, args []string) error {
	name := args[0]
	if err := config.ValidateProfileName(name); err != nil {
		return err
	}

	flags := cmd.Flags()
	if !flags.Changed("n") || !flags.Changed("k") || !flags.Changed("generator") {
		return cyclicerr.WithSuggestion(cyclicerr.ErrInvalidInput,
			"a profile needs --n, --k and --generator")
	}
	code := config.CodeConfig{
		N:              selected.n,
		K:              selected.k,
		Generator:      selected.generator,
		AllowAmbiguous: selected.allowAmbiguous,
	}

	p, err := code.Params()
	if err != nil {
		return err
	}
	if _, err := buildCode(p, code.AllowAmbiguous); err != nil {
		return err
	}

	if err := updateConfig(func(c *config.Config) error {
		return c.AddProfile(name, code, profileForce)
	}); err != nil {
		return err
	}

	logger.Debug("profile %s saved as %s", name, p)
	cmdCtx.Palette.Success(cmd.OutOrStdout(), "profile %s saved: %s", name, p)
	return nil
}

func runProfileRemove(cmd *cobra.Command, args []string) error {
	name := args[0]
	if err := updateConfig(func(c *config.Config) error {
		return c.RemoveProfile(name)
	}); err != nil {
		return err
	}

	cmdCtx.Palette.Success(cmd.OutOrStdout(), "profile %s removed", name)
	return nil
}

func runProfileUse(cmd *cobra.Command, args []string) error {
	name := args[0]
	if err := updateConfig(func(c *config.Config) error {
		if name != "" {
			if _, err := c.GetProfile(name); err != nil {
				return err
			}
		}
		c.Profile = name
		return nil
	}); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if name == "" {
		cmdCtx.Palette.Success(w, "using the code section of the configuration")
		return nil
	}
	cmdCtx.Palette.Success(w, "using profile %s", name)
	return nil
}
