package cli

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrz1836/cyclic/internal/config"
	"github.com/mrz1836/cyclic/internal/gf2"
	"github.com/mrz1836/cyclic/internal/output"
	cyclicerr "github.com/mrz1836/cyclic/pkg/errors"
)

// configCmd is the parent command for configuration operations.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `View and modify cyclic configuration settings.`,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long: `Create a default configuration file at ~/.cyclic/config.yaml.

An existing file is left alone unless --force is given.`,
	Example: `  cyclic config init
  cyclic config init --force`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display every configuration key with its effective value, including environment overrides.`,
	Example: `  cyclic config show
  cyclic config show -o json`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Print one configuration value. Keys use dot notation, as listed by
'cyclic config show'.`,
	Example: `  cyclic config get code.generator
  cyclic config get output.default_format`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Validate a value and write it to the configuration file. Keys use dot
notation, as listed by 'cyclic config show'.`,
	Example: `  cyclic config set code.n 7
  cyclic config set code.generator 1101
  cyclic config set logging.level debug`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var configForce bool

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	configCmd.GroupID = "config"
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd, configShowCmd, configGetCmd, configSetCmd)

	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite existing configuration")

	enrichParentLong(configCmd)
}

// configSetting reads and writes one dotted configuration key.
type configSetting struct {
	get func(c *config.Config) string
	set func(c *config.Config, value string) error
}

//nolint:gochecknoglobals // Static lookup table
var configSettings = map[string]configSetting{
	"home": {
		get: func(c *config.Config) string { return c.Home },
		set: func(c *config.Config, v string) error { c.Home = v; return nil },
	},
	"profile": {
		get: func(c *config.Config) string { return c.Profile },
		set: func(c *config.Config, v string) error {
			if v != "" {
				if _, err := c.GetProfile(v); err != nil {
					return err
				}
			}
			c.Profile = v
			return nil
		},
	},
	"code.n": {
		get: func(c *config.Config) string { return strconv.Itoa(c.Code.N) },
		set: func(c *config.Config, v string) error { return parsePositive(v, &c.Code.N) },
	},
	"code.k": {
		get: func(c *config.Config) string { return strconv.Itoa(c.Code.K) },
		set: func(c *config.Config, v string) error { return parsePositive(v, &c.Code.K) },
	},
	"code.generator": {
		get: func(c *config.Config) string { return c.Code.Generator },
		set: func(c *config.Config, v string) error {
			bits, err := gf2.ParseBits(v)
			if err != nil {
				return err
			}
			c.Code.Generator = bits.String()
			return nil
		},
	},
	"code.allow_ambiguous": {
		get: func(c *config.Config) string { return strconv.FormatBool(c.Code.AllowAmbiguous) },
		set: func(c *config.Config, v string) error { return parseBool(v, &c.Code.AllowAmbiguous) },
	},
	"output.default_format": {
		get: func(c *config.Config) string { return c.Output.DefaultFormat },
		set: func(c *config.Config, v string) error {
			if !output.ValidFormat(v) {
				return invalidChoice(v, "text, json, or auto")
			}
			c.Output.DefaultFormat = v
			return nil
		},
	},
	"output.color": {
		get: func(c *config.Config) string { return c.Output.Color },
		set: func(c *config.Config, v string) error {
			return oneOf(v, &c.Output.Color, output.ColorAuto, output.ColorAlways, output.ColorNever)
		},
	},
	"output.verbose": {
		get: func(c *config.Config) string { return strconv.FormatBool(c.Output.Verbose) },
		set: func(c *config.Config, v string) error { return parseBool(v, &c.Output.Verbose) },
	},
	"logging.level": {
		get: func(c *config.Config) string { return c.Logging.Level },
		set: func(c *config.Config, v string) error {
			return oneOf(v, &c.Logging.Level, "off", "error", "debug")
		},
	},
	"logging.format": {
		get: func(c *config.Config) string { return c.Logging.Format },
		set: func(c *config.Config, v string) error {
			return oneOf(v, &c.Logging.Format, config.LogFormatText, config.LogFormatJSON)
		},
	},
	"logging.file": {
		get: func(c *config.Config) string { return c.Logging.File },
		set: func(c *config.Config, v string) error { c.Logging.File = v; return nil },
	},
}

// configKeys returns the settable keys in sorted order.
func configKeys() []string {
	keys := make([]string, 0, len(configSettings))
	for k := range configSettings {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// lookupSetting finds key, suggesting the closest known key on a miss.
func lookupSetting(key string) (configSetting, error) {
	if s, ok := configSettings[key]; ok {
		return s, nil
	}
	err := cyclicerr.WithDetails(cyclicerr.ErrUnknownConfigKey, map[string]string{"key": key})
	if guess := config.Closest(key, configKeys()); guess != "" {
		err = cyclicerr.WithSuggestion(err, "did you mean '"+guess+"'?")
	}
	return configSetting{}, err
}

func getConfigValue(c *config.Config, key string) (string, error) {
	s, err := lookupSetting(key)
	if err != nil {
		return "", err
	}
	return s.get(c), nil
}

func setConfigValue(c *config.Config, key, value string) error {
	s, err := lookupSetting(key)
	if err != nil {
		return err
	}
	return s.set(c, value)
}

func parsePositive(v string, dst *int) error {
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return cyclicerr.WithDetails(cyclicerr.ErrInvalidInput, map[string]string{
			"value": v,
			"valid": "a positive integer",
		})
	}
	*dst = n
	return nil
}

func parseBool(v string, dst *bool) error {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return cyclicerr.WithDetails(cyclicerr.ErrInvalidInput, map[string]string{
			"value": v,
			"valid": "true or false",
		})
	}
	*dst = b
	return nil
}

func oneOf(v string, dst *string, choices ...string) error {
	if !slices.Contains(choices, v) {
		return invalidChoice(v, joinChoices(choices))
	}
	*dst = v
	return nil
}

func invalidChoice(v, valid string) error {
	return cyclicerr.WithDetails(cyclicerr.ErrInvalidFormat, map[string]string{"value": v, "valid": valid})
}

func joinChoices(choices []string) string {
	if len(choices) < 2 {
		return strings.Join(choices, "")
	}
	last := len(choices) - 1
	return strings.Join(choices[:last], ", ") + ", or " + choices[last]
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	path := config.Path(cfg.Home)
	if _, err := os.Stat(path); err == nil && !configForce {
		return cyclicerr.WithSuggestion(cyclicerr.ErrGeneral,
			fmt.Sprintf("configuration already exists at %s. Use --force to overwrite.", path))
	}

	fresh := config.Defaults()
	fresh.Home = cfg.Home
	if err := config.Save(fresh, path); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	w := cmd.OutOrStdout()
	out(w, "Configuration initialized at %s\n\n", path)
	outln(w, "Edit this file to set the default code, add profiles, or change output and logging.")
	return nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	return emit(cmd, cfg, func(w io.Writer) error {
		return displayConfigText(w, cfg)
	})
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	value, err := getConfigValue(cfg, args[0])
	if err != nil {
		return err
	}
	outln(cmd.OutOrStdout(), value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]
	if _, err := lookupSetting(key); err != nil {
		return err
	}

	if err := updateConfig(func(c *config.Config) error {
		return setConfigValue(c, key, value)
	}); err != nil {
		return err
	}

	cmdCtx.Palette.Success(cmd.OutOrStdout(), "%s = %s", key, value)
	return nil
}

// displayConfigText lists every key and its value, then the profile names.
func displayConfigText(w io.Writer, c *config.Config) error {
	outln(w, "Configuration:")
	outln(w)

	t := output.NewTable("KEY", "VALUE")
	for _, key := range configKeys() {
		value := configSettings[key].get(c)
		if value == "" {
			value = "(none)"
		}
		t.AddRow(key, value)
	}
	if err := t.Render(w); err != nil {
		return err
	}

	outln(w)
	names := c.ProfileNames()
	if len(names) == 0 {
		outln(w, "Profiles: (none)")
		return nil
	}
	out(w, "Profiles: %s\n", strings.Join(names, ", "))
	return nil
}
