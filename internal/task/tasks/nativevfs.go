package tasks

import (
	"fmt"
	"path/filepath"

	"github.com/ModOrganizer2/mob/internal/git"
	"github.com/ModOrganizer2/mob/internal/task"
	"github.com/ModOrganizer2/mob/internal/task/tools"
)

// NativeVFSTask clones/pulls a single repository and configures+builds it
// twice, once per architecture, into sibling build directories, each via a
// named preset and the solution-builder for the final compile.
type NativeVFSTask struct {
	TaskName   string
	RepoDir    string
	RepoURL    string
	Branch     string
	Preset32   string
	Preset64   string
	Solution32 string
	Solution64 string
	Config     string

	Mutator git.Mutator
	Query   git.Querier
}

func (t *NativeVFSTask) Name() string { return t.TaskName }

func (t *NativeVFSTask) Enabled(tc *task.Context) bool { return true }

func (t *NativeVFSTask) DoClean(tc *task.Context) error {
	if tc.CleanFlags&task.Reextract != 0 {
		if t.Query != nil {
			dirty, err := t.Query.HasUncommittedChanges(t.RepoDir)
			if err == nil && dirty {
				return fmt.Errorf("refusing to reextract %s: uncommitted changes present", t.TaskName)
			}
		}
		if err := removeFileIfDry(tc, t.RepoDir); err != nil {
			return err
		}
	}
	if tc.CleanFlags&(task.Reconfigure|task.Rebuild) == 0 {
		return nil
	}
	for _, dir := range []string{t.buildDir("32"), t.buildDir("64")} {
		c := tools.NewCmakeTool()
		c.BuildDir = dir
		c.Operation = tools.CmakeClean
		if err := c.Run(toolContext(tc)); err != nil {
			return err
		}
	}
	return nil
}

func (t *NativeVFSTask) buildDir(suffix string) string {
	return filepath.Join(t.RepoDir, "build"+suffix)
}

func (t *NativeVFSTask) DoFetch(tc *task.Context) error {
	vcs := tools.NewVcsTool(t.Mutator, t.Query)
	vcs.Path = t.RepoDir
	vcs.URL = t.RepoURL
	vcs.Branch = t.Branch
	if t.Query != nil && t.Query.IsRepo(t.RepoDir) {
		vcs.Operation = tools.VcsPull
	} else {
		vcs.Operation = tools.VcsClone
	}
	return vcs.Run(toolContext(tc))
}

func (t *NativeVFSTask) buildArch(tc *task.Context, preset, buildDir, solution string) error {
	cmake := tools.NewCmakeTool()
	cmake.SourceDir = t.RepoDir
	cmake.BuildDir = buildDir
	cmake.Preset = preset

	cmake.Operation = tools.CmakeConfigure
	if err := cmake.Run(toolContext(tc)); err != nil {
		return fmt.Errorf("failed to configure %s (preset %s): %w", t.TaskName, preset, err)
	}

	msbuild := newSolutionBuilder(solution, t.Config)
	if msbuild == nil {
		// Non-native platform: the solution-builder tool is unavailable, so
		// the configure-only result stands in for the build step.
		return nil
	}
	return msbuild.Run(toolContext(tc))
}

func (t *NativeVFSTask) DoBuildAndInstall(tc *task.Context) error {
	if err := t.buildArch(tc, t.Preset32, t.buildDir("32"), t.Solution32); err != nil {
		return err
	}
	return t.buildArch(tc, t.Preset64, t.buildDir("64"), t.Solution64)
}
