package walk

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMkdirAll(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(path, 0o755))
}

func mustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	mustMkdirAll(t, filepath.Dir(path))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func relPaths(t *testing.T, root string, files []string) []string {
	t.Helper()
	rels := make([]string, len(files))
	for i, f := range files {
		rel, err := filepath.Rel(root, f)
		require.NoError(t, err)
		rels[i] = filepath.ToSlash(rel)
	}
	sort.Strings(rels)
	return rels
}

func TestWalk_BasicTraversal(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "a.go"), "package main")
	mustWriteFile(t, filepath.Join(root, "sub", "b.go"), "package sub")

	files, _, err := Walk(root, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.go", "sub/b.go"}, relPaths(t, root, files))
}

func TestWalk_DefaultIgnoresNodeModules(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "main.go"), "package main")
	mustWriteFile(t, filepath.Join(root, "node_modules", "pkg", "index.js"), "module.exports = {}")

	files, _, err := Walk(root, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"main.go"}, relPaths(t, root, files))
}

func TestWalk_NoIgnoreIncludesEverything(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "main.go"), "package main")
	mustWriteFile(t, filepath.Join(root, "node_modules", "pkg", "index.js"), "module.exports = {}")

	files, _, err := Walk(root, Options{NoIgnore: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"main.go", "node_modules/pkg/index.js"}, relPaths(t, root, files))
}

func TestWalk_HiddenFilesExcludedByDefault(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "visible.go"), "x")
	mustWriteFile(t, filepath.Join(root, ".hidden.go"), "x")
	mustWriteFile(t, filepath.Join(root, ".config", "file.go"), "x")

	files, _, err := Walk(root, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"visible.go"}, relPaths(t, root, files))

	files, _, err = Walk(root, Options{Hidden: true})
	require.NoError(t, err)
	assert.Equal(t, []string{".config/file.go", ".hidden.go", "visible.go"}, relPaths(t, root, files))
}

func TestWalk_GitignoreHonored(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, ".gitignore"), "*.log\nbuild_output/\n")
	mustWriteFile(t, filepath.Join(root, "keep.go"), "x")
	mustWriteFile(t, filepath.Join(root, "debug.log"), "x")
	mustWriteFile(t, filepath.Join(root, "build_output", "artifact.bin"), "x")

	files, _, err := Walk(root, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"keep.go"}, relPaths(t, root, files))
}

func TestWalk_CustomIgnoreFile(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, ".rqlignore"), "secret.go\n")
	mustWriteFile(t, filepath.Join(root, "keep.go"), "x")
	mustWriteFile(t, filepath.Join(root, "secret.go"), "x")

	files, _, err := Walk(root, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"keep.go"}, relPaths(t, root, files))
}

func TestWalk_MaxDepth(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "top.go"), "x")
	mustWriteFile(t, filepath.Join(root, "a", "mid.go"), "x")
	mustWriteFile(t, filepath.Join(root, "a", "b", "deep.go"), "x")

	files, _, err := Walk(root, Options{MaxDepth: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"a/mid.go", "top.go"}, relPaths(t, root, files))
}

func TestWalk_SymlinkNotFollowedByDefaultWarns(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "real.go"), "x")
	require.NoError(t, os.Symlink(filepath.Join(root, "real.go"), filepath.Join(root, "link.go")))

	files, warnings, err := Walk(root, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"real.go"}, relPaths(t, root, files))
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Path, "link.go")
	assert.Contains(t, warnings[0].Message, "not followed")
}

func TestWalk_SymlinkLoopWarnsOnce(t *testing.T) {
	root := t.TempDir()
	mustMkdirAll(t, filepath.Join(root, "a"))
	mustWriteFile(t, filepath.Join(root, "a", "file.go"), "x")
	require.NoError(t, os.Symlink(filepath.Join(root, "a"), filepath.Join(root, "a", "loop")))

	files, warnings, err := Walk(root, Options{FollowLinks: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"a/file.go"}, relPaths(t, root, files))
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, "symlink loop")
}

func TestWalk_UnreadableDirectoryWarns(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root bypasses directory permission checks")
	}
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "keep.go"), "x")
	locked := filepath.Join(root, "locked")
	mustMkdirAll(t, locked)
	require.NoError(t, os.Chmod(locked, 0o000))
	defer os.Chmod(locked, 0o755)

	files, warnings, err := Walk(root, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"keep.go"}, relPaths(t, root, files))
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Path, "locked")
	assert.Contains(t, warnings[0].Message, "unreadable directory")
}

func TestDefault_SatisfiesWalker(t *testing.T) {
	var w Walker = Default{}
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "a.go"), "x")
	files, _, err := w.Walk(root, Options{})
	require.NoError(t, err)
	assert.Len(t, files, 1)
}
