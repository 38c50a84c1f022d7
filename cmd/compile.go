// File: cmd/compile.go
package cmd

import (
	"fmt"
	"os"
	"os/exec"

	"promptpack/pkg/compile"
	"promptpack/pkg/console"
	"promptpack/pkg/logging"

	"github.com/spf13/cobra"
)

var compileFlags struct {
	output      string
	tree        string
	workers     int
	maxSizeKB   int
	ignore      []string
	noGitignore bool
}

// compileCmd compiles one project config into an aggregated text file.
var compileCmd = &cobra.Command{
	Use:   "compile <project.(json|yaml)>",
	Short: "Compile a project config into a single text artifact",
	Long: `Compile reads a project configuration, resolves its requested entries
(literal paths, directory shorthands, and glob patterns) against the
project root, filters them through gitignore-style ignore rules, and
writes the selected files' contents into one output file. Binary and
media files are represented by placeholder lines instead of raw bytes.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.Logger

		project, err := compile.LoadProject(args[0])
		if err != nil {
			return err
		}

		// Command-line flags override the config file.
		if compileFlags.output != "" {
			project.Output = compileFlags.output
		}
		if compileFlags.workers > 0 {
			project.MaxWorkers = compileFlags.workers
		}
		if compileFlags.maxSizeKB > 0 {
			project.MaxFileSizeKB = compileFlags.maxSizeKB
		}
		project.IgnorePatterns = append(project.IgnorePatterns, compileFlags.ignore...)
		if compileFlags.noGitignore {
			disabled := false
			project.UseGitignore = &disabled
		}

		opts := compile.Options{TreePath: compileFlags.tree}
		if _, err := exec.LookPath("ffprobe"); err == nil {
			opts.Prober = compile.NewFFProbe(logger)
		}

		summary, err := compile.Run(project, opts, logger)
		if err != nil {
			return fmt.Errorf("compile failed: %w", err)
		}

		console.PrintSummary(os.Stdout, summary)
		return nil
	},
}

func init() {
	compileCmd.Flags().StringVarP(&compileFlags.output, "output", "o", "", "Output file path (default: <config name>.txt)")
	compileCmd.Flags().StringVar(&compileFlags.tree, "tree", "", "Also write the pruned directory tree to this path")
	compileCmd.Flags().IntVar(&compileFlags.workers, "workers", 0, "Number of concurrent file readers (default: CPU count)")
	compileCmd.Flags().IntVar(&compileFlags.maxSizeKB, "max-size", 0, "Maximum file size in KB before a file is skipped")
	compileCmd.Flags().StringArrayVarP(&compileFlags.ignore, "ignore", "i", nil, "Extra ignore pattern (repeatable)")
	compileCmd.Flags().BoolVar(&compileFlags.noGitignore, "no-gitignore", false, "Do not consult the project root's .gitignore")

	RootCmd.AddCommand(compileCmd)
}
