package compile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.uber.org/zap"
)

func zapNop() *zap.Logger { return zap.NewNop() }

func writeTreeFile(t *testing.T, root, rel string, data []byte) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func TestRunEndToEnd(t *testing.T) {
	root := t.TempDir()
	writeTreeFile(t, root, "readme.md", []byte("# Readme\n"))
	writeTreeFile(t, root, "src/main.go", []byte("package main\n"))
	writeTreeFile(t, root, "src/debug.log", []byte("noise\n"))
	writeTreeFile(t, root, "assets/logo.png", []byte{0x89, 'P', 'N', 'G', 0x00})
	writeTreeFile(t, root, ".gitignore", []byte("*.log\n"))

	outDir := t.TempDir()
	project := &Project{
		Title:         "Demo",
		AbsolutePath:  root,
		StartPrompt:   "Consider the project below.",
		StartText:     "=== {file} ===",
		Files:         []string{"readme.md", "src/", "assets/logo.png", "gone.txt"},
		Output:        filepath.Join(outDir, "out.txt"),
		MaxFileSizeKB: 64,
		MaxWorkers:    2,
	}

	summary, err := Run(project, Options{Prober: NopProber{}}, zapNop())
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Included)
	assert.Equal(t, 1, summary.Binary)
	assert.Equal(t, []string{"gone.txt"}, summary.Missing)
	assert.Equal(t, project.Output, summary.OutputPath)

	data, err := os.ReadFile(project.Output)
	require.NoError(t, err)
	out := string(data)

	assert.True(t, strings.HasPrefix(out, "Consider the project below.\n\nProject: Demo\n\n"))
	assert.Contains(t, out, "=== readme.md ===\n# Readme\n")
	assert.Contains(t, out, "=== src/main.go ===\npackage main\n")
	assert.Contains(t, out, "*** Skipped binary file: assets/logo.png (5 bytes) ***")
	assert.NotContains(t, out, "debug.log", "ignored files never serialize")

	// Blocks appear in selection order.
	readmeAt := strings.Index(out, "=== readme.md ===")
	mainAt := strings.Index(out, "=== src/main.go ===")
	logoAt := strings.Index(out, "assets/logo.png")
	assert.Less(t, readmeAt, mainAt)
	assert.Less(t, mainAt, logoAt)
}

func TestRunInvalidConfigIsFatal(t *testing.T) {
	_, err := Run(&Project{}, Options{}, zapNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid project config")
}

func TestRunWritesTree(t *testing.T) {
	root := t.TempDir()
	writeTreeFile(t, root, "a.txt", []byte("A\n"))
	writeTreeFile(t, root, "build/junk.o", []byte("x"))
	writeTreeFile(t, root, ".gitignore", []byte("build/\n"))

	outDir := t.TempDir()
	project := &Project{
		AbsolutePath:  root,
		Files:         []string{"a.txt"},
		Output:        filepath.Join(outDir, "out.txt"),
		MaxFileSizeKB: 64,
		MaxWorkers:    1,
	}
	treePath := filepath.Join(outDir, "tree.txt")

	summary, err := Run(project, Options{TreePath: treePath}, zapNop())
	require.NoError(t, err)
	assert.Equal(t, treePath, summary.TreePath)

	tree, err := os.ReadFile(treePath)
	require.NoError(t, err)
	assert.Contains(t, string(tree), "a.txt")
	assert.NotContains(t, string(tree), "build")
}
