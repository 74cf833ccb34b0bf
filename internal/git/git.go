// Package git implements the VCS adapter (C4): a read-only query interface
// backed in-process by go-git, and a read/write mutation interface backed by
// shelling out to the git CLI through the process runtime. Grounded on the
// teacher's pkg/commands/os.go for the external-process shape, generalized
// to VCS-specific operations; the in-process query backend has no teacher
// precedent and is grounded on go-git's own idiomatic usage patterns (the
// library fills the role the original's gix dependency played).
package git

import (
	"context"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/sirupsen/logrus"

	mobenv "github.com/ModOrganizer2/mob/internal/core/env"
	"github.com/ModOrganizer2/mob/internal/core/process"
	moberrors "github.com/ModOrganizer2/mob/internal/errors"
)

// Querier is the read-only repository-inspection surface.
type Querier interface {
	IsRepo(path string) bool
	CurrentBranch(path string) (string, error)
	IsTracked(path, relFile string) (bool, error)
	HasUncommittedChanges(path string) (bool, error)
	HasStashedChanges(path string) (bool, error)
	RemoteBranchExists(ctx context.Context, repoURL, branch string) bool
}

// Mutator is the read/write surface; every method shells out to the git CLI.
type Mutator interface {
	Clone(ctx context.Context, url, dest, branch string) error
	Pull(ctx context.Context, path string) error
	Fetch(ctx context.Context, path string) error
	Checkout(ctx context.Context, path, ref string) error
	Init(ctx context.Context, path string) error
	AddSubmodule(ctx context.Context, path, url, subpath string) error
	AddRemote(ctx context.Context, path, name, url string) error
	RenameRemote(ctx context.Context, path, oldName, newName string) error
	SetRemotePushURL(ctx context.Context, path, remote, url string) error
	SetConfig(ctx context.Context, path, key, value string) error
	SetAssumeUnchanged(ctx context.Context, path, relFile string, assume bool) error
}

// InProcessBackend implements Querier via go-git, with no subprocess spawn.
type InProcessBackend struct{}

func NewInProcessBackend() *InProcessBackend { return &InProcessBackend{} }

func (b *InProcessBackend) IsRepo(path string) bool {
	_, err := git.PlainOpen(path)
	return err == nil
}

func (b *InProcessBackend) CurrentBranch(path string) (string, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return "", moberrors.Git("failed to open repository", err)
	}
	head, err := repo.Head()
	if err != nil {
		return "", moberrors.Git("failed to resolve HEAD", err)
	}
	return head.Name().Short(), nil
}

func (b *InProcessBackend) IsTracked(path, relFile string) (bool, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return false, moberrors.Git("failed to open repository", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return false, moberrors.Git("failed to open worktree", err)
	}
	status, err := wt.Status()
	if err != nil {
		return false, moberrors.Git("failed to compute status", err)
	}
	entry, ok := status[relFile]
	if !ok {
		// Not appearing in status at all means it is tracked and unmodified.
		return true, nil
	}
	return entry.Worktree != git.Untracked && entry.Staging != git.Untracked, nil
}

func (b *InProcessBackend) HasUncommittedChanges(path string) (bool, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return false, moberrors.Git("failed to open repository", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return false, moberrors.Git("failed to open worktree", err)
	}
	status, err := wt.Status()
	if err != nil {
		return false, moberrors.Git("failed to compute status", err)
	}
	return !status.IsClean(), nil
}

func (b *InProcessBackend) HasStashedChanges(path string) (bool, error) {
	// go-git has no stash-list API, so this always reports false: stashed
	// changes are not detected by either backend.
	return false, nil
}

// RemoteBranchExists probes a remote without cloning it, via go-git's
// anonymous remote listing. Any transport failure (unreachable host, auth
// failure, timeout) is treated as the branch not existing, per SPEC_FULL.md
// §7's "network failure treated as branch-does-not-exist" fallback contract.
func (b *InProcessBackend) RemoteBranchExists(ctx context.Context, repoURL, branch string) bool {
	if branch == "" {
		return false
	}
	remote := git.NewRemote(nil, &config.RemoteConfig{
		Name: "probe",
		URLs: []string{repoURL},
	})
	refs, err := remote.ListContext(ctx, &git.ListOptions{})
	if err != nil {
		return false
	}
	want := "refs/heads/" + branch
	for _, ref := range refs {
		if ref.Name().String() == want {
			return true
		}
	}
	return false
}

// ExternalBackend implements Mutator by shelling out to the git CLI; it does
// not implement Querier, so all queries go through InProcessBackend. It
// suppresses interactive credential/terminal prompts on every
// invocation.
type ExternalBackend struct {
	Log        *logrus.Entry
	DryRun     bool
	SSHKeyFile string // optional: set as core.sshCommand after add-remote
}

func NewExternalBackend(log *logrus.Entry, dryRun bool) *ExternalBackend {
	return &ExternalBackend{Log: log, DryRun: dryRun}
}

func (b *ExternalBackend) baseEnv() *mobenv.Map {
	return mobenv.FromProcess().
		Set("GIT_TERMINAL_PROMPT", "0").
		Set("GCM_INTERACTIVE", "never")
}

func (b *ExternalBackend) run(ctx context.Context, dir string, args ...string) error {
	builder := process.New("git").Arg(args...).Dir(dir).Env(b.baseEnv())
	_, err := builder.Run(ctx, b.Log, b.DryRun)
	if err != nil {
		return moberrors.Git("git "+args[0]+" failed", err)
	}
	return nil
}

func (b *ExternalBackend) Clone(ctx context.Context, url, dest, branch string) error {
	args := []string{"clone"}
	if branch != "" {
		args = append(args, "--branch", branch)
	}
	args = append(args, url, dest)
	return b.run(ctx, "", args...)
}

func (b *ExternalBackend) Pull(ctx context.Context, path string) error {
	return b.run(ctx, path, "pull", "--ff-only")
}

func (b *ExternalBackend) Fetch(ctx context.Context, path string) error {
	return b.run(ctx, path, "fetch", "--all", "--prune")
}

func (b *ExternalBackend) Checkout(ctx context.Context, path, ref string) error {
	return b.run(ctx, path, "checkout", ref)
}

func (b *ExternalBackend) Init(ctx context.Context, path string) error {
	return b.run(ctx, path, "init")
}

func (b *ExternalBackend) AddSubmodule(ctx context.Context, path, url, subpath string) error {
	return b.run(ctx, path, "submodule", "add", url, subpath)
}

func (b *ExternalBackend) AddRemote(ctx context.Context, path, name, url string) error {
	if err := b.run(ctx, path, "remote", "add", name, url); err != nil {
		return err
	}
	if b.SSHKeyFile != "" {
		sshCmd := "ssh -i " + b.SSHKeyFile + " -o IdentitiesOnly=yes"
		if err := b.SetConfig(ctx, path, "core.sshCommand", sshCmd); err != nil {
			return err
		}
	}
	return nil
}

func (b *ExternalBackend) RenameRemote(ctx context.Context, path, oldName, newName string) error {
	return b.run(ctx, path, "remote", "rename", oldName, newName)
}

func (b *ExternalBackend) SetRemotePushURL(ctx context.Context, path, remote, url string) error {
	return b.run(ctx, path, "remote", "set-url", "--push", remote, url)
}

func (b *ExternalBackend) SetConfig(ctx context.Context, path, key, value string) error {
	return b.run(ctx, path, "config", key, value)
}

func (b *ExternalBackend) SetAssumeUnchanged(ctx context.Context, path, relFile string, assume bool) error {
	flag := "--no-assume-unchanged"
	if assume {
		flag = "--assume-unchanged"
	}
	return b.run(ctx, path, "update-index", flag, relFile)
}
