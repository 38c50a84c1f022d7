// Package compile turns a project configuration into one aggregated text
// artifact. File selection is delegated to pkg/selection; this package
// owns config loading, concurrent serialization of the selected files,
// and the optional directory-tree output.
package compile

import (
	"fmt"
	"time"

	"promptpack/pkg/selection"

	"go.uber.org/zap"
)

// Options are per-invocation settings that come from the CLI rather than
// the project config.
type Options struct {
	TreePath string         // When set, write the pruned directory tree here.
	Prober   DurationProber // Media duration probe; nil disables probing.
}

// Summary describes a completed run for caller-side reporting.
type Summary struct {
	OutputPath string
	TreePath   string
	Included   int
	Binary     int
	Missing    []string
	Elapsed    time.Duration
}

// Run executes one compilation: select files, render them concurrently,
// and write the aggregated output. Missing entries are diagnostics, never
// fatal; only an invalid configuration or an unwritable output fails the
// run.
func Run(project *Project, opts Options, logger *zap.Logger) (*Summary, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	start := time.Now()

	if err := project.Validate(); err != nil {
		return nil, fmt.Errorf("invalid project config: %w", err)
	}

	logger.Info("Starting compilation",
		zap.String("root", project.AbsolutePath),
		zap.Int("requestedEntries", len(project.Files)))

	result := selection.Select(project.AbsolutePath, project.Files, selection.MatcherOptions{
		UseIgnoreFile: project.GitignoreEnabled(),
		ExtraPatterns: project.IgnorePatterns,
	}, logger)

	for _, entry := range result.Missing {
		logger.Warn("Requested entry matched nothing", zap.String("entry", entry))
	}

	rc := &renderContext{
		root:    project.AbsolutePath,
		project: project,
		prober:  opts.Prober,
		logger:  logger,
	}
	blocks := rc.renderConcurrently(result.Included, project.MaxWorkers)

	if err := writeOutput(project.Output, project, blocks, logger); err != nil {
		return nil, err
	}

	summary := &Summary{
		OutputPath: project.Output,
		Included:   len(result.Included),
		Missing:    result.Missing,
	}
	for _, block := range blocks {
		if block.Binary {
			summary.Binary++
		}
	}

	if opts.TreePath != "" {
		matcher := selection.NewMatcher(project.AbsolutePath, selection.MatcherOptions{
			UseIgnoreFile: project.GitignoreEnabled(),
			ExtraPatterns: project.IgnorePatterns,
		}, logger)
		if err := WriteTree(project.AbsolutePath, opts.TreePath, matcher.Ignored, logger); err != nil {
			// The artifact is already written; a failed tree is a warning.
			logger.Warn("Failed to write tree structure",
				zap.String("tree", opts.TreePath),
				zap.Error(err))
		} else {
			summary.TreePath = opts.TreePath
		}
	}

	summary.Elapsed = time.Since(start)
	logger.Info("Compilation complete",
		zap.String("output", project.Output),
		zap.Int("files", summary.Included),
		zap.Int("binaryFiles", summary.Binary),
		zap.Int("missingEntries", len(summary.Missing)),
		zap.Duration("elapsed", summary.Elapsed))
	return summary, nil
}
