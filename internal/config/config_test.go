package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetOverrideWinsOverFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mob.yml")
	require.NoError(t, os.WriteFile(path, []byte("global:\n  dry: true\n"), 0o644))

	tree, _, err := Load([]string{path}, true, []string{"global/dry=false"})
	require.NoError(t, err)
	require.False(t, tree.Global.Dry)
}

func TestPrefixPathListFiltersEmpty(t *testing.T) {
	tree := Default()
	tree.Paths.QtInstall = "/qt"
	require.Equal(t, "/qt", tree.PrefixPathList(";"))

	tree.Paths.Vcpkg = "/vcpkg"
	tree.Paths.InstallLibs = "/libs"
	require.Equal(t, "/qt;/vcpkg;/libs", tree.PrefixPathList(";"))
}

func TestTaskScopedSetOverrideAcceptsUnknownFields(t *testing.T) {
	tree := Default()
	require.NoError(t, applySet(&tree, "alpha:task/enabled=true"))
	require.Equal(t, true, tree.Tasks["alpha"]["task/enabled"])
}
