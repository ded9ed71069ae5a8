// Package main is the entry point for the cyclic CLI.
package main

import (
	"os"

	"github.com/mrz1836/cyclic/internal/cli"
)

// Set at build time via -ldflags "-X main.version=...".
//
//nolint:gochecknoglobals // link-time build information
var (
	version = ""
	commit  = ""
	date    = ""
)

func main() {
	if err := cli.Execute(cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
