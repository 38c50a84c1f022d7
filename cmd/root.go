package cmd

import (
	"promptpack/pkg/logging"
	"promptpack/pkg/version"

	"github.com/spf13/cobra"
)

var debug bool

// RootCmd is the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "promptpack",
	Short: "promptpack compiles a curated view of a source tree into one text file",
	Long: `promptpack selects files from a project directory according to a
declarative configuration (literal paths, directory shorthands, and glob
patterns, filtered by gitignore-style rules) and serializes their contents
into a single text artifact, typically for use as a language-model prompt.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.Setup(debug, "promptpack", version.Version)
	},
}

// Execute runs the root command and returns its error for main to report.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable development-style debug logging")
}
