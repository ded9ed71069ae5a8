package config

import (
	"math"
	"regexp"
	"sort"

	"github.com/agnivade/levenshtein"
	"github.com/mrz1836/go-sanitize"

	cyclicerr "github.com/mrz1836/cyclic/pkg/errors"
)

// MaxTypoDistance is the largest edit distance at which an unknown profile
// name still gets a suggestion.
const MaxTypoDistance = 3

//nolint:gochecknoglobals // compiled once
var profileNameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

// ErrInvalidProfileName indicates the profile name is invalid.
//
//nolint:gochecknoglobals // sentinel error
var ErrInvalidProfileName = cyclicerr.WithSuggestion(cyclicerr.ErrInvalidInput,
	"profile name must be 1-64 alphanumeric characters, underscores, or hyphens")

// ValidateProfileName checks if a profile name is valid.
func ValidateProfileName(name string) error {
	if !profileNameRegex.MatchString(name) {
		if suggested := SuggestProfileName(name); suggested != "" {
			return cyclicerr.WithSuggestion(ErrInvalidProfileName, "try '"+suggested+"'")
		}
		return ErrInvalidProfileName
	}
	return nil
}

// SuggestProfileName cleans an invalid profile name down to the allowed
// characters. Returns empty string if nothing usable remains.
func SuggestProfileName(name string) string {
	suggested := sanitize.PathName(name)
	if len(suggested) > 64 {
		suggested = suggested[:64]
	}
	return suggested
}

// ProfileNames returns the profile names in sorted order.
func (c *Config) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetProfile returns the named profile. An unknown name fails with
// ErrProfileNotFound, suggesting the closest known name if any is near.
func (c *Config) GetProfile(name string) (CodeConfig, error) {
	if p, ok := c.Profiles[name]; ok {
		return p, nil
	}

	err := cyclicerr.WithDetails(cyclicerr.ErrProfileNotFound, map[string]string{"profile": name})
	if suggestion := c.SuggestProfile(name); suggestion != "" {
		err = cyclicerr.WithSuggestion(err, "did you mean '"+suggestion+"'?")
	}
	return CodeConfig{}, err
}

// SuggestProfile finds the known profile name closest to name. Returns
// empty string if none is within MaxTypoDistance.
func (c *Config) SuggestProfile(name string) string {
	return Closest(name, c.ProfileNames())
}

// Closest returns the candidate with the smallest edit distance to name, or
// "" when even the best one is more than MaxTypoDistance edits away. Ties go
// to the earlier candidate.
func Closest(name string, candidates []string) string {
	minDist := math.MaxInt
	var best string
	for _, cand := range candidates {
		if d := levenshtein.ComputeDistance(name, cand); d < minDist {
			minDist, best = d, cand
		}
	}
	if minDist > MaxTypoDistance {
		return ""
	}
	return best
}

// AddProfile stores a new profile after validating its name and code.
// Existing profiles are only replaced when overwrite is set.
func (c *Config) AddProfile(name string, code CodeConfig, overwrite bool) error {
	if err := ValidateProfileName(name); err != nil {
		return err
	}
	if _, exists := c.Profiles[name]; exists && !overwrite {
		return cyclicerr.WithDetails(cyclicerr.ErrProfileExists, map[string]string{"profile": name})
	}
	if err := code.Validate(); err != nil {
		return err
	}

	if c.Profiles == nil {
		c.Profiles = make(map[string]CodeConfig)
	}
	c.Profiles[name] = code
	return nil
}

// RemoveProfile deletes the named profile. Removing the active profile
// clears the selection.
func (c *Config) RemoveProfile(name string) error {
	if _, err := c.GetProfile(name); err != nil {
		return err
	}
	delete(c.Profiles, name)
	if c.Profile == name {
		c.Profile = ""
	}
	return nil
}
