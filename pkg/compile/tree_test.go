package compile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promptpack/pkg/selection"
)

func TestWriteTreeRendersConnectors(t *testing.T) {
	root := t.TempDir()
	writeTreeFile(t, root, "readme.md", []byte("r"))
	writeTreeFile(t, root, "src/main.go", []byte("m"))
	writeTreeFile(t, root, "src/util/helper.go", []byte("h"))

	outPath := filepath.Join(t.TempDir(), "tree.txt")
	require.NoError(t, WriteTree(root, outPath, func(string) bool { return false }, zapNop()))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	out := string(data)

	assert.True(t, strings.HasPrefix(out, filepath.Base(root)+"/\n"))
	assert.Contains(t, out, "├── src/")
	assert.Contains(t, out, "│   ├── util/")
	assert.Contains(t, out, "└── readme.md")
	assert.Contains(t, out, "helper.go")
}

func TestWriteTreePrunesIgnored(t *testing.T) {
	root := t.TempDir()
	writeTreeFile(t, root, "keep.txt", []byte("k"))
	writeTreeFile(t, root, "skip/secret.txt", []byte("s"))

	ignored := func(rel string) bool {
		return rel == "skip" || strings.HasPrefix(rel, "skip/")
	}

	outPath := filepath.Join(t.TempDir(), "tree.txt")
	require.NoError(t, WriteTree(root, outPath, ignored, zapNop()))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "keep.txt")
	assert.NotContains(t, string(data), "skip")
	assert.NotContains(t, string(data), "secret.txt")
}

func TestWriteTreePrunesDirectoryOnlyPatterns(t *testing.T) {
	root := t.TempDir()
	writeTreeFile(t, root, "keep.txt", []byte("k"))
	writeTreeFile(t, root, "build/out.bin", []byte("b"))

	m := selection.NewMatcher(root, selection.MatcherOptions{
		ExtraPatterns: []string{"build/"},
	}, zapNop())

	outPath := filepath.Join(t.TempDir(), "tree.txt")
	require.NoError(t, WriteTree(root, outPath, m.Ignored, zapNop()))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "keep.txt")
	assert.NotContains(t, string(data), "build")
}

func TestWriteTreeSortsDirectoriesFirst(t *testing.T) {
	root := t.TempDir()
	writeTreeFile(t, root, "aaa.txt", []byte("a"))
	writeTreeFile(t, root, "zzz/inner.txt", []byte("i"))

	outPath := filepath.Join(t.TempDir(), "tree.txt")
	require.NoError(t, WriteTree(root, outPath, func(string) bool { return false }, zapNop()))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	out := string(data)

	assert.Less(t, strings.Index(out, "zzz/"), strings.Index(out, "aaa.txt"))
}
