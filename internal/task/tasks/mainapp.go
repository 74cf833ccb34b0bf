// Package tasks implements the concrete built-in tasks (C8): main-app,
// native-VFS, stylesheets, file-browser, licenses, translations, and
// installer. Each is a thin composition of the tool layer, grounded on
// SPEC_FULL.md §4.8.
package tasks

import (
	"fmt"
	"path/filepath"

	mobenv "github.com/ModOrganizer2/mob/internal/core/env"
	"github.com/ModOrganizer2/mob/internal/git"
	"github.com/ModOrganizer2/mob/internal/task"
	"github.com/ModOrganizer2/mob/internal/task/helpers"
	"github.com/ModOrganizer2/mob/internal/task/tools"
)

// MainAppTask fetches and builds a single subproject of the super
// meta-project. Parameterised by subproject name per SPEC_FULL.md §4.8.
type MainAppTask struct {
	SubprojectName  string
	SuperDir        string
	RepoURL         string
	Branch          string
	NoPull          bool
	BuildScript     string
	PresetConfig    string
	InstallPrefix   string
	ToolkitInstall  string
	SharedMetaDir   string
	NativeConfigDir string
	Architecture    mobenv.Architecture

	Mutator git.Mutator
	Query   git.Querier
}

func (t *MainAppTask) Name() string { return t.SubprojectName }

func (t *MainAppTask) Enabled(tc *task.Context) bool { return true }

func (t *MainAppTask) sourceDir() string {
	return filepath.Join(t.SuperDir, t.SubprojectName)
}

func (t *MainAppTask) DoClean(tc *task.Context) error {
	if tc.CleanFlags&task.Reextract != 0 {
		if t.Query != nil {
			dirty, err := t.Query.HasUncommittedChanges(t.sourceDir())
			if err == nil && dirty {
				return fmt.Errorf("refusing to reextract %s: uncommitted changes present", t.SubprojectName)
			}
		}
		if err := removeFileIfDry(tc, t.sourceDir()); err != nil {
			return err
		}
	}
	if tc.CleanFlags&(task.Reconfigure|task.Rebuild) == 0 {
		return nil
	}
	cmake := tools.NewCmakeTool()
	cmake.BuildDir = filepath.Join(t.sourceDir(), "build")
	cmake.Operation = tools.CmakeClean
	return cmake.Run(toolContext(tc))
}

func (t *MainAppTask) DoFetch(tc *task.Context) error {
	if t.BuildScript == "" || t.PresetConfig == "" {
		return fmt.Errorf("main-app task %s requires both a build script and a preset-config file", t.SubprojectName)
	}

	if tc.DryRun {
		tc.Log.Infof("[dry-run] init super repository %s", t.SuperDir)
	} else if err := helpers.EnsureSuperRepo(tc.Ctx, t.Mutator, t.SuperDir); err != nil {
		return err
	}

	vcs := tools.NewVcsTool(t.Mutator, t.Query)
	vcs.Path = t.sourceDir()
	vcs.URL = t.RepoURL
	vcs.Branch = t.Branch

	if t.Query != nil && t.Query.IsRepo(vcs.Path) {
		if t.NoPull {
			return nil
		}
		vcs.Operation = tools.VcsPull
	} else {
		vcs.Operation = tools.VcsClone
	}
	return vcs.Run(toolContext(tc))
}

func (t *MainAppTask) prefixPath() []string {
	return []string{
		t.ToolkitInstall,
		t.SharedMetaDir,
		filepath.Join(t.InstallPrefix, "lib", t.NativeConfigDir),
	}
}

func (t *MainAppTask) DoBuildAndInstall(tc *task.Context) error {
	cmake := tools.NewCmakeTool()
	cmake.SourceDir = t.sourceDir()
	cmake.BuildDir = filepath.Join(t.sourceDir(), "build")
	cmake.InstallPrefix = t.InstallPrefix
	cmake.PrefixPath = t.prefixPath()
	cmake.Architecture = archFor(t.Architecture)

	cmake.Operation = tools.CmakeConfigure
	if err := cmake.Run(toolContext(tc)); err != nil {
		return fmt.Errorf("failed to configure %s: %w", t.SubprojectName, err)
	}

	cmake.Operation = tools.CmakeBuild
	if err := cmake.Run(toolContext(tc)); err != nil {
		return fmt.Errorf("failed to build %s: %w", t.SubprojectName, err)
	}

	cmake.Operation = tools.CmakeInstall
	if err := cmake.Run(toolContext(tc)); err != nil {
		return fmt.Errorf("failed to install %s: %w", t.SubprojectName, err)
	}
	return nil
}

func archFor(a mobenv.Architecture) tools.CmakeArchitecture {
	if a == mobenv.ArchX86 {
		return tools.ArchWin32
	}
	return tools.ArchX64
}

func toolContext(tc *task.Context) *tools.Context {
	return &tools.Context{Ctx: tc.Ctx, Log: tc.Log, DryRun: tc.DryRun}
}
