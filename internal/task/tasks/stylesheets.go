package tasks

import (
	"fmt"
	"path/filepath"

	"github.com/ModOrganizer2/mob/internal/task"
	"github.com/ModOrganizer2/mob/internal/task/tools"
	"github.com/ModOrganizer2/mob/internal/utility/fs"
)

// StylesheetRelease names one of the static list of releases this task
// downloads, extracts, and installs.
type StylesheetRelease struct {
	Name    string
	Version string
}

// StylesheetsTask downloads, extracts, and installs a static list of
// releases, per SPEC_FULL.md §4.8.
type StylesheetsTask struct {
	Releases    []StylesheetRelease
	URLTemplate string // e.g. "https://example/%s/%s.7z" (name, version)
	CacheDir    string
	ExtractRoot string
	InstallDir  string
}

func (t *StylesheetsTask) Name() string { return "stylesheets" }

func (t *StylesheetsTask) Enabled(tc *task.Context) bool { return len(t.Releases) > 0 }

func (t *StylesheetsTask) archivePath(r StylesheetRelease) string {
	return filepath.Join(t.CacheDir, r.Name+"-"+r.Version+".7z")
}

func (t *StylesheetsTask) extractDir(r StylesheetRelease) string {
	return filepath.Join(t.ExtractRoot, r.Name+"-"+r.Version)
}

func (t *StylesheetsTask) DoClean(tc *task.Context) error {
	for _, r := range t.Releases {
		if tc.CleanFlags&task.Redownload != 0 {
			if err := removeFileIfDry(tc, t.archivePath(r)); err != nil {
				return err
			}
		}
		if tc.CleanFlags&task.Reextract != 0 {
			if err := removeFileIfDry(tc, t.extractDir(r)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (t *StylesheetsTask) DoFetch(tc *task.Context) error {
	for _, r := range t.Releases {
		select {
		case <-tc.Ctx.Done():
			return tc.Ctx.Err()
		default:
		}

		d := tools.NewDownloaderTool()
		d.MirrorURLs = []string{fmt.Sprintf(t.URLTemplate, r.Name, r.Version)}
		d.OutputFile = t.archivePath(r)
		if err := d.Run(toolContext(tc)); err != nil {
			return fmt.Errorf("failed to download stylesheet %s: %w", r.Name, err)
		}

		e := tools.NewExtractorTool()
		e.Archive = t.archivePath(r)
		e.OutputDir = t.extractDir(r)
		if err := e.Run(toolContext(tc)); err != nil {
			return fmt.Errorf("failed to extract stylesheet %s: %w", r.Name, err)
		}
	}
	return nil
}

func (t *StylesheetsTask) DoBuildAndInstall(tc *task.Context) error {
	for _, r := range t.Releases {
		dest := filepath.Join(t.InstallDir, r.Name)
		if tc.DryRun {
			tc.Log.Infof("[dry-run] copy %s -> %s", t.extractDir(r), dest)
			continue
		}
		if err := fs.CopyTree(t.extractDir(r), dest, nil); err != nil {
			return fmt.Errorf("failed to install stylesheet %s: %w", r.Name, err)
		}
	}
	return nil
}
