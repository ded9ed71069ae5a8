package cli

import (
	"github.com/mrz1836/cyclic/internal/config"
	"github.com/mrz1836/cyclic/internal/output"
)

// CommandContext holds dependencies for CLI commands.
type CommandContext struct {
	Cfg       *config.Config
	Logger    *config.Logger
	Formatter *output.Formatter
	Palette   *output.Palette
	Codes     CodeProvider
	Storage   PropertyStorage
}

// NewCommandContext creates a context with the given dependencies.
func NewCommandContext(
	c *config.Config,
	l *config.Logger,
	f *output.Formatter,
) *CommandContext {
	return &CommandContext{
		Cfg:       c,
		Logger:    l,
		Formatter: f,
		Palette:   output.NewPalette(output.ColorNever, nil),
	}
}

// WithPalette sets the color palette.
func (c *CommandContext) WithPalette(p *output.Palette) *CommandContext {
	c.Palette = p
	return c
}

// WithCodes sets the code provider.
func (c *CommandContext) WithCodes(p CodeProvider) *CommandContext {
	c.Codes = p
	return c
}

// WithStorage sets the property cache storage.
func (c *CommandContext) WithStorage(s PropertyStorage) *CommandContext {
	c.Storage = s
	return c
}
