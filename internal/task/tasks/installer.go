//go:build windows

package tasks

import (
	"github.com/ModOrganizer2/mob/internal/git"
	"github.com/ModOrganizer2/mob/internal/task"
	"github.com/ModOrganizer2/mob/internal/task/helpers"
	"github.com/ModOrganizer2/mob/internal/task/tools"
)

// InstallerTask fetches a repo (with branch-fallback probing), then invokes
// the installer-compiler on its script, depositing the output in the
// install directory. Native-platform only per SPEC_FULL.md §4.8/§4.3.
type InstallerTask struct {
	RepoDir        string
	RepoURL        string
	PrimaryBranch  string
	FallbackBranch string
	Script         string
	Defines        map[string]string
	InstallDir     string
	OutputName     string

	Mutator git.Mutator
	Query   git.Querier
}

func (t *InstallerTask) Name() string { return "installer" }

func (t *InstallerTask) Enabled(tc *task.Context) bool { return true }

func (t *InstallerTask) DoClean(tc *task.Context) error { return nil }

func (t *InstallerTask) branchExists(tc *task.Context) func(branch string) bool {
	return func(branch string) bool {
		// ls-remote-style probe: a network failure is treated as "does not
		// exist" per SPEC_FULL.md §7's recovery policy.
		return t.Query != nil && t.Query.RemoteBranchExists(tc.Ctx, t.RepoURL, branch)
	}
}

func (t *InstallerTask) DoFetch(tc *task.Context) error {
	branch, ok := helpers.ProbeBranch(t.branchExists(tc), t.PrimaryBranch, t.FallbackBranch)
	if !ok {
		branch = t.PrimaryBranch
	}

	vcs := tools.NewVcsTool(t.Mutator, t.Query)
	vcs.Path = t.RepoDir
	vcs.URL = t.RepoURL
	vcs.Branch = branch
	if t.Query != nil && t.Query.IsRepo(t.RepoDir) {
		vcs.Operation = tools.VcsPull
	} else {
		vcs.Operation = tools.VcsClone
	}
	return vcs.Run(toolContext(tc))
}

func (t *InstallerTask) DoBuildAndInstall(tc *task.Context) error {
	iscc := tools.NewIsccTool()
	iscc.Script = t.Script
	iscc.Defines = t.Defines
	iscc.OutputDir = t.InstallDir
	iscc.OutputName = t.OutputName
	return iscc.Run(toolContext(tc))
}
