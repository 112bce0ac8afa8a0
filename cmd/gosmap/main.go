// Package main is the entry point for the gosmap CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/gosmap/internal/cli"
	"github.com/yaklabco/gosmap/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		// A lookup miss has already been reported; it only sets the exit code.
		if !errors.Is(err, cli.ErrNoMapping) {
			logger := logging.Default()
			logger.Error("command failed", logging.FieldError, err)
		}
		return cli.ExitCode(err)
	}

	return cli.ExitSuccess
}
