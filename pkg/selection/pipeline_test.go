package selection

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectEndToEnd(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "readme.md")
	writeFile(t, root, "src/main.go")
	writeFile(t, root, "src/main_test.go")
	writeFile(t, root, "src/debug.log")
	writeFile(t, root, "vendor/dep/dep.go")
	writeIgnoreFile(t, root, "*.log\nvendor/\n")

	res := Select(root, []string{
		"readme.md",
		"src/",
		"vendor/**",
		"missing.txt",
	}, MatcherOptions{UseIgnoreFile: true}, nil)

	assert.Equal(t, []string{"readme.md", "src/main.go", "src/main_test.go"}, res.Included)
	// vendor/** matched files that were all ignored; only the literal that
	// does not exist is missing.
	assert.Equal(t, []string{"missing.txt"}, res.Missing)
}

func TestSelectWithExtraPatternsAndNoIgnoreFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "notes.txt")
	writeFile(t, root, "draft.tmp")
	writeIgnoreFile(t, root, "*.txt\n")

	res := Select(root, []string{"*"}, MatcherOptions{
		UseIgnoreFile: false,
		ExtraPatterns: []string{"*.tmp"},
	}, nil)

	// .gitignore is not consulted, so *.txt survives; the .gitignore file
	// itself is selected by the bare glob.
	assert.Equal(t, []string{IgnoreFileName, "notes.txt"}, res.Included)
	assert.Empty(t, res.Missing)
}

func TestSelectIsStatelessAcrossCalls(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.txt")

	first := Select(root, []string{"a.txt"}, MatcherOptions{UseIgnoreFile: true}, nil)
	require.Equal(t, []string{"a.txt"}, first.Included)

	// A second call with different options sees fresh state.
	second := Select(root, []string{"a.txt"}, MatcherOptions{
		UseIgnoreFile: false,
		ExtraPatterns: []string{"a.txt"},
	}, nil)
	assert.Empty(t, second.Included)
	assert.Empty(t, second.Missing)

	third := Select(root, []string{"a.txt"}, MatcherOptions{UseIgnoreFile: true}, nil)
	assert.Equal(t, []string{"a.txt"}, third.Included)

	_ = os.Remove(filepath.Join(root, "a.txt"))
	fourth := Select(root, []string{"a.txt"}, MatcherOptions{UseIgnoreFile: true}, nil)
	assert.Equal(t, []string{"a.txt"}, fourth.Missing)
}
