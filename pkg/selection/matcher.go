// File: pkg/selection/matcher.go
package selection

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/sabhiram/go-gitignore"
	"go.uber.org/zap"
)

// IgnoreFileName is the repository ignore file consulted at the root directory.
const IgnoreFileName = ".gitignore"

// IgnoreMatcher reports whether a root-relative path is excluded from selection.
// Implementations are immutable after construction.
type IgnoreMatcher interface {
	Ignored(relPath string) bool
}

// MatcherOptions control how the ignore rule set is assembled.
type MatcherOptions struct {
	UseIgnoreFile bool     // Read rootDir/.gitignore and compile with full gitignore semantics.
	ExtraPatterns []string // Additional patterns appended after the ignore file's lines.
}

// NewMatcher builds an IgnoreMatcher for rootDir.
//
// With UseIgnoreFile set, the ignore file's lines (if the file exists) and
// ExtraPatterns are compiled with full gitignore semantics; if that
// compilation fails the matcher degrades to fallback wildcard semantics
// with a warning rather than failing the run. With UseIgnoreFile unset,
// only ExtraPatterns are consulted, under fallback semantics.
func NewMatcher(rootDir string, opts MatcherOptions, logger *zap.Logger) IgnoreMatcher {
	if logger == nil {
		logger = zap.NewNop()
	}

	patterns := collectPatterns(rootDir, opts, logger)

	if opts.UseIgnoreFile {
		m, err := compileFull(patterns)
		if err == nil {
			logger.Debug("Compiled ignore patterns with gitignore semantics",
				zap.Int("patternCount", len(patterns)))
			return m
		}
		logger.Warn("Failed to compile gitignore patterns, using fallback matching",
			zap.Error(err))
	}

	return newGlobMatcher(patterns)
}

// collectPatterns gathers ignore lines: the root ignore file first (when
// enabled), then the configuration's extra patterns, in declaration order.
func collectPatterns(rootDir string, opts MatcherOptions, logger *zap.Logger) []string {
	var lines []string

	if opts.UseIgnoreFile {
		path := filepath.Join(rootDir, IgnoreFileName)
		content, err := os.ReadFile(path)
		switch {
		case err == nil:
			// Trim CRLF line endings so both strategies see identical text.
			for _, line := range strings.Split(string(content), "\n") {
				lines = append(lines, strings.TrimRight(line, "\r"))
			}
			logger.Debug("Loaded ignore file",
				zap.String("path", path),
				zap.Int("lineCount", len(lines)))
		case os.IsNotExist(err):
			logger.Debug("No ignore file at root", zap.String("path", path))
		default:
			// Unreadable ignore file contributes no patterns.
			logger.Warn("Failed to read ignore file",
				zap.String("path", path),
				zap.Error(err))
		}
	}

	lines = append(lines, opts.ExtraPatterns...)
	return lines
}

// fullMatcher wraps a compiled gitignore rule set. Later rules override
// earlier ones, so negation patterns behave as in git.
type fullMatcher struct {
	gi *gitignore.GitIgnore
}

// compileFull compiles the raw pattern lines with gitignore semantics.
// The gitignore engine compiles each line to a regexp internally and can
// panic on pathological input; that panic is converted into an error so
// the caller can degrade to fallback matching.
func compileFull(patterns []string) (m IgnoreMatcher, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("gitignore pattern compilation panicked: %v", r)
		}
	}()
	lines := make([]string, len(patterns))
	for i, p := range patterns {
		lines[i] = rewriteSingleCharWildcards(p)
	}
	return &fullMatcher{gi: gitignore.CompileIgnoreLines(lines...)}, nil
}

// rewriteSingleCharWildcards converts each unescaped "?" into "[^/]"
// before a line reaches the gitignore engine. The engine escapes "?" to
// a literal question mark, which diverges from git and from the fallback
// strategy; it only escapes ".", "*", and "?" when building its regexp,
// so a "[^/]" class passes through verbatim and matches exactly one
// non-separator character. Backslash escapes and bracket classes are
// left untouched.
func rewriteSingleCharWildcards(line string) string {
	var b strings.Builder
	inClass := false
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '\\' && i+1 < len(line):
			b.WriteByte(c)
			i++
			b.WriteByte(line[i])
		case c == '[':
			inClass = true
			b.WriteByte(c)
		case c == ']':
			inClass = false
			b.WriteByte(c)
		case c == '?' && !inClass:
			b.WriteString("[^/]")
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func (m *fullMatcher) Ignored(relPath string) bool {
	return m.gi.MatchesPath(filepath.ToSlash(relPath))
}

// globMatcher is the fallback strategy: every pattern is normalized into
// glob form and a path is ignored if any pattern matches. Negation is not
// supported.
type globMatcher struct {
	patterns []string
}

func newGlobMatcher(lines []string) *globMatcher {
	var pats []string
	for _, line := range lines {
		pats = append(pats, normalizePattern(line)...)
	}
	return &globMatcher{patterns: pats}
}

// normalizePattern rewrites one ignore line into zero or more glob
// patterns that approximate gitignore behavior:
//
//   - blank lines and #-comments produce nothing
//   - a trailing "/" scopes the pattern to a directory, so it becomes a
//     recursive suffix ("build/" -> "build/**")
//   - a pattern without any "/" matches at every depth, so it gains a
//     leading "**/"
//   - a non-directory pattern is also tried with a "/**" suffix so a bare
//     name ignores a whole directory, as git does
//   - a directory pattern also keeps a slash-terminated form so callers
//     probing a directory node ("build/") get a match
func normalizePattern(line string) []string {
	p := strings.TrimSpace(line)
	if p == "" || strings.HasPrefix(p, "#") {
		return nil
	}
	p = filepath.ToSlash(p)

	anchored := strings.HasPrefix(p, "/")
	p = strings.TrimPrefix(p, "/")
	dirOnly := strings.HasSuffix(p, "/")
	p = strings.TrimSuffix(p, "/")
	if p == "" {
		return nil
	}

	if !anchored && !strings.Contains(p, "/") {
		p = "**/" + p
	}
	if dirOnly {
		return []string{p + "/**", p + "/"}
	}
	return []string{p, p + "/**"}
}

func (m *globMatcher) Ignored(relPath string) bool {
	rel := filepath.ToSlash(relPath)
	for _, p := range m.patterns {
		if ok, err := doublestar.Match(p, rel); err == nil && ok {
			return true
		}
	}
	return false
}
