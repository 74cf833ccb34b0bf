package tasks

import (
	"github.com/ModOrganizer2/mob/internal/task"
	"github.com/ModOrganizer2/mob/internal/utility/fs"
)

// LicensesTask has no fetch and no clean; it is just a directory copy in
// the build/install phase, per SPEC_FULL.md §4.8.
type LicensesTask struct {
	SourceDir  string
	InstallDir string
	Excludes   []string
}

func (t *LicensesTask) Name() string { return "licenses" }

func (t *LicensesTask) Enabled(tc *task.Context) bool { return true }

func (t *LicensesTask) DoClean(tc *task.Context) error { return nil }

func (t *LicensesTask) DoFetch(tc *task.Context) error { return nil }

func (t *LicensesTask) DoBuildAndInstall(tc *task.Context) error {
	if tc.DryRun {
		tc.Log.Infof("[dry-run] copy licenses %s -> %s", t.SourceDir, t.InstallDir)
		return nil
	}
	return fs.CopyTree(t.SourceDir, t.InstallDir, t.Excludes)
}
