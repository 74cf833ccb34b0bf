package registry

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func newTestRegistry() *Registry {
	return New(logrus.NewEntry(logrus.New()))
}

func TestResolveIsIdempotentAfterDedup(t *testing.T) {
	r := newTestRegistry()
	r.RegisterAll([]string{"modorganizer", "uibase", "nxmhandler"})
	r.RegisterAlias("core", []string{"modorganizer", "uibase"})

	first := r.Resolve([]string{"core", "uibase"})
	second := r.Resolve(first)
	require.Equal(t, first, second)
}

func TestMatchPatternGlob(t *testing.T) {
	r := newTestRegistry()
	r.RegisterAll([]string{"plugin-a", "plugin-b", "core"})

	matches := r.MatchPattern("plugin-*")
	require.Equal(t, []string{"plugin-a", "plugin-b"}, matches)
}

func TestResolveAliasesPreservesOrder(t *testing.T) {
	r := newTestRegistry()
	r.RegisterAll([]string{"a", "b", "c"})
	r.RegisterAlias("ab", []string{"a", "b"})

	resolved := r.ResolveAliases([]string{"c", "ab"})
	require.Equal(t, []string{"c", "a", "b"}, resolved)
}
