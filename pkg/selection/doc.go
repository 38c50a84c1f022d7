// Package selection resolves a project configuration's requested entries
// (literal paths, directory shorthands, and glob patterns) into a
// deterministic, ignore-filtered list of root-relative file paths.
//
// The package is built around two pieces:
//
//   - IgnoreMatcher compiles repository ignore-file lines plus extra
//     configuration patterns into a single predicate. Full gitignore
//     semantics (negation, anchoring, directory-only patterns) are
//     preferred; a shell-wildcard fallback is used when the gitignore
//     engine cannot compile the rule set.
//   - Expand turns the requested-entries list into an ordered,
//     deduplicated file list, recording entries that matched nothing.
//
// Select composes the two. Every call builds fresh state; nothing is
// cached between runs.
package selection
