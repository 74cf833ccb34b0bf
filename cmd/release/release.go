// Package release implements `mob release devbuild|official`, translating
// CLI flags into internal/release.Options and dispatching to the matching
// pipeline entry point.
package release

import (
	"context"
	"fmt"

	"github.com/ModOrganizer2/mob/internal/app"
	"github.com/ModOrganizer2/mob/internal/release"
	"github.com/ModOrganizer2/mob/internal/task"
	"github.com/ModOrganizer2/mob/internal/task/manager"
	"github.com/ModOrganizer2/mob/internal/task/tasks"
	"github.com/ModOrganizer2/mob/internal/task/tools"
)

// Options captures the flags shared by both release subcommands.
type Options struct {
	Mode         string // "devbuild" or "official"
	Branch       string // required for official mode
	Version      string
	Suffix       string
	OutputDir    string
	Force        bool
	Installer    bool
	NoInstaller  bool
	InstallerSrc string
}

// Run dispatches to the dev-build or official pipeline.
func Run(ctx context.Context, a *app.App, opts Options) error {
	version, err := release.ResolveVersion(opts.Version, "", release.DefaultRCPath(a.Tree.Paths.Prefix+"/build"))
	if err != nil && opts.Version == "" {
		return fmt.Errorf("release: %w", err)
	}
	if opts.Version != "" {
		version = opts.Version
	}

	relOpts := release.Options{
		Version:       version,
		Suffix:        opts.Suffix,
		OutputDir:     opts.OutputDir,
		Prefix:        a.Tree.Paths.Prefix,
		InstallDir:    a.Tree.Paths.Prefix + "/install",
		MetaDir:       a.Tree.Paths.Prefix + "/build",
		Force:         opts.Force,
		CopyInstaller: opts.Installer && !opts.NoInstaller,
		InstallerSrc:  opts.InstallerSrc,
	}

	tc := &tools.Context{Ctx: ctx, Log: a.Log, DryRun: a.DryRun}

	switch opts.Mode {
	case "devbuild":
		return release.RunDevBuild(tc, relOpts)
	case "official":
		if opts.Branch == "" {
			return fmt.Errorf("release official: --branch is required")
		}

		subs := subprojectChecks(a)
		if err := release.ValidateOfficialBranch(ctx, a.Query, subs, opts.Branch); err != nil {
			return err
		}
		if err := release.CheckoutOfficialRepos(tc, a.Mutator, subs, opts.Branch); err != nil {
			return err
		}

		mgr := manager.New(a.Log, a.DryRun, 0, task.Phases{Fetch: true, Build: true}, a.Tasks...)
		return release.RunOfficial(tc, mgr, relOpts)
	default:
		return fmt.Errorf("release: unknown mode %q (want devbuild or official)", opts.Mode)
	}
}

func subprojectChecks(a *app.App) []release.SubprojectBranchCheck {
	out := make([]release.SubprojectBranchCheck, 0, len(a.Tasks))
	for _, t := range a.Tasks {
		check := release.SubprojectBranchCheck{
			Name: t.Name(),
			Path: a.Tree.Paths.Prefix + "/build/" + t.Name(),
		}
		if mainApp, ok := t.(*tasks.MainAppTask); ok {
			check.RepoURL = mainApp.RepoURL
		}
		out = append(out, check)
	}
	return out
}
