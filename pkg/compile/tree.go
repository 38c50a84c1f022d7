// File: pkg/compile/tree.go
package compile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// WriteTree renders the directory tree under rootDir, pruned by the same
// ignore predicate that drove file selection, and writes it to outputPath.
func WriteTree(rootDir, outputPath string, ignored func(string) bool, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	var tree strings.Builder
	tree.WriteString(filepath.Base(rootDir) + "/\n")

	subtree, err := renderTreeRecursively(rootDir, rootDir, ignored, "", logger)
	if err != nil {
		return err
	}
	if subtree != "" {
		tree.WriteString(subtree)
		tree.WriteString("\n")
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create tree output directory: %w", err)
		}
	}
	if err := os.WriteFile(outputPath, []byte(tree.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write tree file: %w", err)
	}
	logger.Debug("Wrote tree structure", zap.String("path", outputPath))
	return nil
}

// renderTreeRecursively builds the tree structure one directory level at a
// time. Entries are sorted directories-first, then case-insensitively, so
// output is deterministic.
func renderTreeRecursively(directory, rootDir string, ignored func(string) bool, prefix string, logger *zap.Logger) (string, error) {
	entries, err := os.ReadDir(directory)
	if err != nil {
		logger.Warn("Failed to read directory for tree structure",
			zap.String("directory", directory),
			zap.Error(err))
		return "", fmt.Errorf("failed to read directory %s: %w", directory, err)
	}

	kept := entries[:0]
	for _, entry := range entries {
		entryPath := filepath.Join(directory, entry.Name())
		relPath, _ := filepath.Rel(rootDir, entryPath)
		rel := filepath.ToSlash(relPath)
		if ignored(rel) {
			continue
		}
		// Directory-only patterns ("build/") match paths that are visibly
		// directories, so probe the slash-terminated form too.
		if entry.IsDir() && ignored(rel+"/") {
			continue
		}
		kept = append(kept, entry)
	}

	sort.Slice(kept, func(i, j int) bool {
		if kept[i].IsDir() != kept[j].IsDir() {
			return kept[i].IsDir()
		}
		return strings.ToLower(kept[i].Name()) < strings.ToLower(kept[j].Name())
	})

	var output []string
	for i, entry := range kept {
		connector := "├── "
		extension := "│   "
		if i == len(kept)-1 {
			connector = "└── "
			extension = "    "
		}

		if entry.IsDir() {
			output = append(output, fmt.Sprintf("%s%s%s/", prefix, connector, entry.Name()))
			subtree, err := renderTreeRecursively(filepath.Join(directory, entry.Name()), rootDir, ignored, prefix+extension, logger)
			if err != nil {
				continue
			}
			if subtree != "" {
				output = append(output, subtree)
			}
		} else {
			output = append(output, fmt.Sprintf("%s%s%s", prefix, connector, entry.Name()))
		}
	}

	return strings.Join(output, "\n"), nil
}
