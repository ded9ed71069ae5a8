// Package config provides configuration management for cyclic.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mrz1836/cyclic/internal/cyclic"
	"github.com/mrz1836/cyclic/internal/fileutil"
	"github.com/mrz1836/cyclic/internal/gf2"
	cyclicerr "github.com/mrz1836/cyclic/pkg/errors"
)

// Config represents the application configuration.
type Config struct {
	Version  int                   `yaml:"version" json:"version"`
	Home     string                `yaml:"home" json:"home"`
	Profile  string                `yaml:"profile,omitempty" json:"profile,omitempty"`
	Code     CodeConfig            `yaml:"code" json:"code"`
	Profiles map[string]CodeConfig `yaml:"profiles" json:"profiles"`
	Output   OutputConfig          `yaml:"output" json:"output"`
	Logging  LoggingConfig         `yaml:"logging" json:"logging"`
}

// CodeConfig describes one (n, k, g) code. Generator holds the
// coefficients of g, lowest degree first, as a run of 0 and 1.
type CodeConfig struct {
	N              int    `yaml:"n" json:"n"`
	K              int    `yaml:"k" json:"k"`
	Generator      string `yaml:"generator" json:"generator"`
	AllowAmbiguous bool   `yaml:"allow_ambiguous,omitempty" json:"allow_ambiguous,omitempty"`
}

// OutputConfig defines output formatting settings.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"`
	Color         string `yaml:"color" json:"color"`
	Verbose       bool   `yaml:"verbose" json:"verbose"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`
	File   string `yaml:"file" json:"file"`
	Format string `yaml:"format,omitempty" json:"format,omitempty"`
}

// Params parses the code description into packed parameters. It does not
// build the code, so degree and length checks happen later.
func (c CodeConfig) Params() (cyclic.Params, error) {
	g, err := gf2.ParseBits(c.Generator)
	if err != nil {
		return cyclic.Params{}, err
	}
	return cyclic.NewParams(c.N, c.K, g)
}

// Validate parses the code and checks its parameters.
func (c CodeConfig) Validate() error {
	p, err := c.Params()
	if err != nil {
		return err
	}
	return p.Validate()
}

// FromParams describes p as a CodeConfig.
func FromParams(p cyclic.Params, allowAmbiguous bool) CodeConfig {
	return CodeConfig{
		N:              p.N,
		K:              p.K,
		Generator:      p.GeneratorBits().String(),
		AllowAmbiguous: allowAmbiguous,
	}
}

// Load reads configuration from the specified file. Missing fields keep
// their defaults.
func Load(path string) (*Config, error) {
	// #nosec G304 -- config file path is from validated user input
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, cyclicerr.WithDetails(cyclicerr.ErrConfigNotFound, map[string]string{"path": path})
	}
	if err != nil {
		return nil, err
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, cyclicerr.WithDetails(cyclicerr.ErrConfigInvalid, map[string]string{
			"path":   path,
			"reason": err.Error(),
		})
	}
	if cfg.Profiles == nil {
		cfg.Profiles = make(map[string]CodeConfig)
	}

	return cfg, nil
}

// Save writes configuration to the specified file.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return fileutil.WriteAtomicMkdir(path, data, 0o600, 0o750)
}

// Path returns the default config file path.
func Path(home string) string {
	return filepath.Join(ExpandPath(home), "config.yaml")
}

// ActiveCode returns the code selected by the profile setting, or the code
// section when no profile is set.
func (c *Config) ActiveCode() (CodeConfig, error) {
	if c.Profile == "" {
		return c.Code, nil
	}
	return c.GetProfile(c.Profile)
}

// DefaultHome returns the default cyclic home directory.
func DefaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cyclic"
	}
	return filepath.Join(home, ".cyclic")
}

// ExpandPath replaces a leading "~/" with the user's home directory.
func ExpandPath(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
