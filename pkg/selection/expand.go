// File: pkg/selection/expand.go
package selection

import (
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
)

// Result is the outcome of expanding a requested-entries list.
type Result struct {
	// Included holds root-relative paths of selected files, deduplicated,
	// in first-occurrence order across the requested entries.
	Included []string

	// Missing holds the requested entries that matched nothing: literal
	// paths that do not exist and glob patterns with zero filesystem
	// matches. An entry whose matches were all removed by ignore rules is
	// not missing; it matched, the matches were deliberately excluded.
	Missing []string
}

// isWildcard reports whether the entry must be expanded as a glob rather
// than checked as a literal path.
func isWildcard(entry string) bool {
	return strings.ContainsAny(entry, "*?[")
}

// Expand resolves requested entries against rootDir, in input order.
//
// Entries ending in a path separator select everything under that
// directory recursively; entries ending in "/*" select direct children
// only. Wildcard matches are sorted lexicographically so output is
// independent of filesystem enumeration order. The ignored predicate
// filters every candidate before it is included.
func Expand(rootDir string, entries []string, ignored func(string) bool, logger *zap.Logger) Result {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ignored == nil {
		ignored = func(string) bool { return false }
	}

	var res Result
	seen := make(map[string]struct{})
	include := func(rel string) {
		if _, dup := seen[rel]; dup {
			return
		}
		seen[rel] = struct{}{}
		res.Included = append(res.Included, rel)
	}

	fsys := os.DirFS(rootDir)

	for _, raw := range entries {
		entry := strings.TrimSpace(raw)
		if entry == "" {
			continue
		}

		pattern := filepath.ToSlash(entry)
		if strings.HasSuffix(pattern, "/") {
			// Directory shorthand: the whole subtree.
			pattern += "**"
		}

		if !isWildcard(pattern) {
			// Clean so "./a.txt" and "a.txt" dedupe to the same path.
			rel := path.Clean(pattern)
			resolved := filepath.Join(rootDir, filepath.FromSlash(rel))
			info, err := os.Stat(resolved)
			if err != nil || !info.Mode().IsRegular() {
				logger.Warn("Requested file not found",
					zap.String("entry", entry),
					zap.String("resolved", resolved))
				res.Missing = append(res.Missing, entry)
				continue
			}
			if ignored(rel) {
				logger.Debug("Requested file excluded by ignore rules",
					zap.String("entry", entry))
				continue
			}
			include(rel)
			logger.Debug("Included requested file", zap.String("path", rel))
			continue
		}

		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			logger.Warn("Invalid glob pattern",
				zap.String("entry", entry),
				zap.Error(err))
			res.Missing = append(res.Missing, entry)
			continue
		}
		if len(matches) == 0 {
			logger.Warn("Pattern matched no files", zap.String("entry", entry))
			res.Missing = append(res.Missing, entry)
			continue
		}

		sort.Strings(matches)
		for _, rel := range matches {
			if ignored(rel) {
				logger.Debug("Match excluded by ignore rules",
					zap.String("entry", entry),
					zap.String("path", rel))
				continue
			}
			include(rel)
		}
	}

	logger.Debug("Finished expanding requested entries",
		zap.Int("included", len(res.Included)),
		zap.Int("missing", len(res.Missing)))
	return res
}
