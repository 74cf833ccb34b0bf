package release

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/ModOrganizer2/mob/internal/git"
	"github.com/ModOrganizer2/mob/internal/task"
	"github.com/ModOrganizer2/mob/internal/task/manager"
	"github.com/ModOrganizer2/mob/internal/task/tools"
	fsutil "github.com/ModOrganizer2/mob/internal/utility/fs"
)

// Options captures the flags shared by dev-build and official releases.
type Options struct {
	Version       string
	Suffix        string
	OutputDir     string
	Prefix        string
	InstallDir    string
	MetaDir       string
	Force         bool
	CopyInstaller bool // effective value: installer && !no_installer (preserved quirk, §9)
	InstallerSrc  string
}

// RunDevBuild archives the current install tree, per SPEC_FULL.md §4.9's
// dev-build mode: no official-branch validation or full rebuild, just
// version resolution and archive creation.
func RunDevBuild(tc *tools.Context, opts Options) error {
	outDir, err := OutputDir(opts.OutputDir, opts.Prefix, tc.DryRun)
	if err != nil {
		return err
	}

	plans := Plans(opts.InstallDir, opts.MetaDir)
	if err := CreateArchives(tc, plans, outDir, opts.Version, opts.Suffix, opts.Force); err != nil {
		return err
	}

	return copyInstallerIfRequested(tc, opts, outDir)
}

// SubprojectBranchCheck validates a required branch exists on a
// subproject's remote (ls-remote-style probe via the VCS query backend).
type SubprojectBranchCheck struct {
	Name    string
	Path    string
	RepoURL string
}

// ValidateOfficialBranch requires every subproject repository to contain
// branch on its remote, failing if any is missing, per SPEC_FULL.md §4.9's
// "Official extras". A subproject with no RepoURL (nothing to probe) is
// skipped rather than counted as missing.
func ValidateOfficialBranch(ctx context.Context, query git.Querier, subprojects []SubprojectBranchCheck, branch string) error {
	var missing []string
	for _, sp := range subprojects {
		if sp.RepoURL == "" {
			continue
		}
		if !query.RemoteBranchExists(ctx, sp.RepoURL, branch) {
			missing = append(missing, sp.Name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("branch %q missing on remote for: %v", branch, missing)
	}
	return nil
}

// CheckoutOfficialRepos checks out every subproject to the validated
// branch.
func CheckoutOfficialRepos(tc *tools.Context, mutator git.Mutator, subprojects []SubprojectBranchCheck, branch string) error {
	for _, sp := range subprojects {
		vcs := tools.NewVcsTool(mutator, nil)
		vcs.Operation = tools.VcsCheckout
		vcs.Path = sp.Path
		vcs.Target = branch
		vcs.Force = true
		if err := vcs.Run(tc); err != nil {
			return fmt.Errorf("failed to check out %s to %s: %w", sp.Name, branch, err)
		}
	}
	return nil
}

// RunOfficial runs the full build pipeline (fetch+build for every built-in
// task, optionally the installer) before archiving, per SPEC_FULL.md §4.9.
func RunOfficial(tc *tools.Context, mgr *manager.Manager, opts Options) error {
	mgr.Phases = task.Phases{Clean: false, Fetch: true, Build: true}
	mgr.DryRun = tc.DryRun
	if err := mgr.Run(tc.Ctx); err != nil {
		return fmt.Errorf("official build pipeline failed: %w", err)
	}
	return RunDevBuild(tc, opts)
}

func copyInstallerIfRequested(tc *tools.Context, opts Options, outDir string) error {
	if !opts.CopyInstaller || opts.InstallerSrc == "" {
		return nil
	}
	dest := filepath.Join(outDir, filepath.Base(opts.InstallerSrc))
	if tc.DryRun {
		tc.Log.Infof("[dry-run] copy installer %s -> %s", opts.InstallerSrc, dest)
		return nil
	}
	return fsutil.CopyFile(opts.InstallerSrc, dest)
}
