// Package cli provides the Cobra command structure for gosmap.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gosmap/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// Persistent flag names shared by subcommands.
const (
	flagDebug   = "debug"
	flagConfig  = "config"
	flagColor   = "color"
	flagNoCache = "no-cache"
)

// NewRootCommand creates the root gosmap command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string
	var noCache bool

	rootCmd := &cobra.Command{
		Use:   "gosmap",
		Short: "Inspect, compose and generate source maps",
		Long: `gosmap works with version 3 source maps.

It prints and queries existing maps, composes the maps of successive
transformation passes into one, and applies text edits to a file while
producing a map of the result that points back at the original sources.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, flagDebug, false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, flagConfig, "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, flagColor, "auto",
		"colorize output: auto, always, never")
	rootCmd.PersistentFlags().BoolVar(&noCache, flagNoCache, false, "bypass the parsed map cache")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	})

	// Add subcommands.
	rootCmd.AddCommand(newInspectCommand())
	rootCmd.AddCommand(newLookupCommand())
	rootCmd.AddCommand(newComposeCommand())
	rootCmd.AddCommand(newEditCommand())
	rootCmd.AddCommand(newRestoreCommand())
	rootCmd.AddCommand(newCacheCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
