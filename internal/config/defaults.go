package config

// DefaultProfile is the name of the profile matching the built-in code.
const DefaultProfile = "bch157"

// Defaults returns the default configuration. The default code is the
// (15,7) double-error-correcting BCH code, used here for single errors.
func Defaults() *Config {
	return &Config{
		Version: 1,
		Home:    "~/.cyclic",
		Code: CodeConfig{
			N:         15,
			K:         7,
			Generator: "111010001",
		},
		Profiles: map[string]CodeConfig{
			"hamming74":    {N: 7, K: 4, Generator: "1101"},
			"hamming1511":  {N: 15, K: 11, Generator: "11001"},
			DefaultProfile: {N: 15, K: 7, Generator: "111010001"},
		},
		Output: OutputConfig{
			DefaultFormat: "auto",
			Color:         "auto",
			Verbose:       false,
		},
		Logging: LoggingConfig{
			Level:  "error",
			File:   "~/.cyclic/cyclic.log",
			Format: LogFormatText,
		},
	}
}
