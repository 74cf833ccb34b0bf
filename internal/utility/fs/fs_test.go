package fs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWalkSkipsExcludedDirectories(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "build", "obj"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "build", "obj", "a.o"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "keep.txt"), []byte("y"), 0o644))

	var visited []string
	err := Walk(root, []string{"build/**"}, func(relPath string, info os.FileInfo) error {
		visited = append(visited, relPath)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"keep.txt"}, visited)
}

func TestCopyTreePreservesRelativeLayout(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(src, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "sub", "f.txt"), []byte("hi"), 0o644))

	require.NoError(t, CopyTree(src, dst, nil))

	data, err := os.ReadFile(filepath.Join(dst, "sub", "f.txt"))
	require.NoError(t, err)
	require.Equal(t, "hi", string(data))
}
