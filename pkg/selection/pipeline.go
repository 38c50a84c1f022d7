// File: pkg/selection/pipeline.go
package selection

import "go.uber.org/zap"

// Select builds one IgnoreMatcher for rootDir and expands the requested
// entries through it. No state survives the call; it is safe to invoke
// repeatedly with different options against the same or different roots.
func Select(rootDir string, entries []string, opts MatcherOptions, logger *zap.Logger) Result {
	if logger == nil {
		logger = zap.NewNop()
	}
	matcher := NewMatcher(rootDir, opts, logger)
	return Expand(rootDir, entries, matcher.Ignored, logger)
}
