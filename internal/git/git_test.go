package git

import (
	"context"
	"testing"

	gogit "github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/require"
)

func TestInProcessBackendIsRepo(t *testing.T) {
	dir := t.TempDir()
	backend := NewInProcessBackend()
	require.False(t, backend.IsRepo(dir))

	_, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	require.True(t, backend.IsRepo(dir))
}

func TestInProcessBackendHasUncommittedChangesOnCleanRepo(t *testing.T) {
	dir := t.TempDir()
	_, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	backend := NewInProcessBackend()
	dirty, err := backend.HasUncommittedChanges(dir)
	require.NoError(t, err)
	require.False(t, dirty)
}

func TestInProcessBackendRemoteBranchExistsRejectsEmptyBranch(t *testing.T) {
	backend := NewInProcessBackend()
	require.False(t, backend.RemoteBranchExists(context.Background(), "https://example.invalid/repo.git", ""))
}

func TestInProcessBackendRemoteBranchExistsTreatsTransportFailureAsMissing(t *testing.T) {
	backend := NewInProcessBackend()
	exists := backend.RemoteBranchExists(context.Background(), "https://example.invalid/does-not-resolve.git", "main")
	require.False(t, exists)
}
