// Package app wires the resolved config tree into a concrete task list and
// the auxiliary clients (VCS backends, translation client, PR client) every
// command package needs. Grounded on the teacher's pkg/app bootstrapping
// (one constructor that turns a loaded config into the object graph the rest
// of the program drives).
package app

import (
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/ModOrganizer2/mob/internal/config"
	mobenv "github.com/ModOrganizer2/mob/internal/core/env"
	"github.com/ModOrganizer2/mob/internal/git"
	"github.com/ModOrganizer2/mob/internal/pr"
	"github.com/ModOrganizer2/mob/internal/task"
	"github.com/ModOrganizer2/mob/internal/task/registry"
	"github.com/ModOrganizer2/mob/internal/task/tasks"
	"github.com/ModOrganizer2/mob/internal/tx"
)

// subprojects is the default set of modorganizer-* submodules the
// main-application task is instantiated for, grounded on the original's
// modorganizer task factory naming convention (short name, prefixed
// "modorganizer-" unless it already is "modorganizer" itself).
var subprojects = []string{"modorganizer", "uibase", "archive", "game_features"}

// App holds the object graph built from a resolved config tree: the VCS
// backends, the built-in task list, the registry those tasks are registered
// into, and the translation/PR clients the tx/pr commands drive directly.
type App struct {
	Tree     *config.Tree
	Log      *logrus.Entry
	DryRun   bool
	Mutator  git.Mutator
	Query    git.Querier
	Tasks    []task.Task
	Registry *registry.Registry
	TxClient *tx.Client
	PRClient *pr.Client
}

// New builds the full object graph for one invocation.
func New(tree *config.Tree, log *logrus.Entry, dryRun bool) *App {
	mutator := git.NewExternalBackend(log.WithField("component", "git"), dryRun)
	query := git.NewInProcessBackend()

	a := &App{
		Tree:    tree,
		Log:     log,
		DryRun:  dryRun,
		Mutator: mutator,
		Query:   query,
	}

	a.TxClient = tx.NewClient(tree.Tx.APIKey, tree.Tx.BaseURL, log.WithField("component", "tx"))
	a.TxClient.MinPercent = tree.Tx.MinPercent
	a.PRClient = pr.NewClient(tree.Github.Token, tree.Github.Owner, tree.Github.Repo, log.WithField("component", "pr"))
	a.Tasks = a.buildTasks()
	a.Registry = a.buildRegistry()
	return a
}

func (a *App) prefixPath() string { return a.Tree.Paths.Prefix }

func (a *App) sharedMetaDir() string { return filepath.Join(a.prefixPath(), "build", "cmake_common") }

func (a *App) superDir() string { return filepath.Join(a.prefixPath(), "build") }

func (a *App) nativeConfigDir() string {
	if a.Tree.Cmake.Architecture != "" {
		return a.Tree.Cmake.Architecture
	}
	return "x64"
}

func (a *App) architecture() mobenv.Architecture {
	if a.Tree.Cmake.Architecture == "x86" {
		return mobenv.ArchX86
	}
	return mobenv.ArchX64
}

func (a *App) buildTasks() []task.Task {
	var out []task.Task

	for _, name := range subprojects {
		repo := "modorganizer-" + name
		if name == "modorganizer" {
			repo = name
		}
		out = append(out, &tasks.MainAppTask{
			SubprojectName:  name,
			SuperDir:        a.superDir(),
			RepoURL:         "https://github.com/ModOrganizer2/" + repo + ".git",
			BuildScript:     filepath.Join(a.superDir(), name, "CMakeLists.txt"),
			PresetConfig:    filepath.Join(a.superDir(), name, "CMakePresets.json"),
			InstallPrefix:   filepath.Join(a.prefixPath(), "install"),
			ToolkitInstall:  a.Tree.Paths.QtInstall,
			SharedMetaDir:   a.sharedMetaDir(),
			NativeConfigDir: a.nativeConfigDir(),
			Architecture:    a.architecture(),
			Mutator:         a.Mutator,
			Query:           a.Query,
		})
	}

	out = append(out, &tasks.NativeVFSTask{
		TaskName:   "usvfs",
		RepoDir:    filepath.Join(a.superDir(), "usvfs"),
		RepoURL:    "https://github.com/ModOrganizer2/usvfs.git",
		Preset32:   "vs2022-windows-x86",
		Preset64:   "vs2022-windows-x64",
		Solution32: filepath.Join(a.superDir(), "usvfs", "vsbuild32", "usvfs.sln"),
		Solution64: filepath.Join(a.superDir(), "usvfs", "vsbuild64", "usvfs.sln"),
		Config:     "Release",
		Mutator:    a.Mutator,
		Query:      a.Query,
	})

	out = append(out, &tasks.LicensesTask{
		SourceDir:  filepath.Join(a.superDir(), "licenses"),
		InstallDir: filepath.Join(a.prefixPath(), "install", "licenses"),
	})

	out = append(out, &tasks.FileBrowserTask{
		Version:     "1.3.7",
		URLTemplate: "https://github.com/andrewpmd/explorerplusplus/releases/download/%s/explorerpp.7z",
		CacheDir:    filepath.Join(a.prefixPath(), "downloads"),
		ExtractDir:  filepath.Join(a.prefixPath(), "build", "explorerpp"),
		InstallDir:  filepath.Join(a.prefixPath(), "install", "bin", "explorerpp"),
	})

	out = append(out, &tasks.StylesheetsTask{
		Releases:    defaultStylesheetReleases(),
		URLTemplate: "https://github.com/ModOrganizer2/modorganizer-basic_themes/releases/download/%s/%s.7z",
		CacheDir:    filepath.Join(a.prefixPath(), "downloads"),
		ExtractRoot: filepath.Join(a.prefixPath(), "build", "stylesheets"),
		InstallDir:  filepath.Join(a.prefixPath(), "install", "bin", "stylesheets"),
	})

	out = append(out, &tasks.TranslationsTask{
		Client:           a.TxClient,
		Root:             filepath.Join(a.superDir(), "translations"),
		Resources:        defaultTxResources(),
		Langs:            []string{"de", "fr", "pl", "ru", "zh_CN", "ja"},
		ToolkitTranslDir: filepath.Join(a.Tree.Paths.QtInstall, "translations"),
		OutputDir:        filepath.Join(a.prefixPath(), "install", "bin", "translations"),
	})

	out = append(out, newInstallerTask(a)...)

	return out
}

func defaultStylesheetReleases() []tasks.StylesheetRelease {
	names := []string{
		"1809-dark", "Aurora", "ModOrganizer-Simple-Dark-Theme", "Neon-Genesis",
		"Nexus", "Paper-Dark", "Solarized-Dark", "Space", "Voltaic",
	}
	releases := make([]tasks.StylesheetRelease, 0, len(names))
	for _, n := range names {
		releases = append(releases, tasks.StylesheetRelease{Name: n, Version: "1.0"})
	}
	return releases
}

func defaultTxResources() []tx.Resource {
	return []tx.Resource{
		{Slug: "modorganizer2", SourceFile: "org.modorganizer2.ts", SourceLang: "en", Type: "QT"},
	}
}

func (a *App) buildRegistry() *registry.Registry {
	r := registry.New(a.Log)
	for _, t := range a.Tasks {
		r.Register(t.Name())
	}
	r.RegisterAlias("all", taskNames(a.Tasks))
	return r
}

func taskNames(ts []task.Task) []string {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.Name())
	}
	return out
}

// BuildTaskContext constructs the per-run task.Context from this App's
// resolved flags.
func (a *App) BuildTaskContext(flags task.CleanFlags, phases task.Phases) *task.Context {
	return &task.Context{
		Log:        a.Log,
		DryRun:     a.DryRun,
		CleanFlags: flags,
		Phases:     phases,
	}
}

// newInstallerTask is split into its own platform-tagged file since
// InstallerTask only exists on windows.
