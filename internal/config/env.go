package config

import (
	"os"
	"slices"
	"strings"

	"github.com/mrz1836/go-sanitize"
)

// Environment variable names.
const (
	EnvHome         = "CYCLIC_HOME"
	EnvOutputFormat = "CYCLIC_OUTPUT_FORMAT"
	EnvVerbose      = "CYCLIC_VERBOSE"
	EnvLogLevel     = "CYCLIC_LOG_LEVEL"
	EnvProfile      = "CYCLIC_PROFILE"
	EnvGenerator    = "CYCLIC_GENERATOR"
	EnvNoColor      = "NO_COLOR"
)

// envOverrides are applied in order; empty values are ignored.
//
//nolint:gochecknoglobals // Static lookup table
var envOverrides = []struct {
	name  string
	apply func(c *Config, v string)
}{
	{EnvHome, func(c *Config, v string) { c.Home = v }},
	{EnvOutputFormat, func(c *Config, v string) { c.Output.DefaultFormat = normalize(v) }},
	{EnvVerbose, func(c *Config, v string) { c.Output.Verbose = truthy(v) }},
	{EnvLogLevel, func(c *Config, v string) { c.Logging.Level = normalize(v) }},
	{EnvProfile, func(c *Config, v string) { c.Profile = sanitize.PathName(v) }},
	{EnvGenerator, func(c *Config, v string) { c.Code.Generator = SanitizeBits(v) }},
}

// ApplyEnvironment overlays CYCLIC_* variables onto cfg. NO_COLOR, when
// present at all, forces color off.
func ApplyEnvironment(cfg *Config) {
	for _, o := range envOverrides {
		if v := os.Getenv(o.name); v != "" {
			o.apply(cfg, v)
		}
	}
	if _, ok := os.LookupEnv(EnvNoColor); ok {
		cfg.Output.Color = "never"
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// truthy accepts the usual affirmative spellings in any case.
func truthy(s string) bool {
	return slices.Contains([]string{"1", "t", "true", "yes", "y", "on"}, normalize(s))
}

// SanitizeBits strips everything but digits from a bit string, so values
// like "1 1 1 0 1" or "[1,1,0,1]" pasted into the environment still parse.
func SanitizeBits(s string) string {
	return sanitize.Numeric(strings.TrimSpace(s))
}
