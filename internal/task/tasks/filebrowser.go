package tasks

import (
	"fmt"
	"path/filepath"

	"github.com/ModOrganizer2/mob/internal/task"
	"github.com/ModOrganizer2/mob/internal/task/tools"
	"github.com/ModOrganizer2/mob/internal/utility/fs"
)

// FileBrowserTask downloads a single archive at a config-controlled
// version, extracts it, and copies the result into the install directory.
type FileBrowserTask struct {
	Version     string
	URLTemplate string // e.g. "https://example/%s/explorerpp.7z"
	CacheDir    string
	ExtractDir  string
	InstallDir  string
}

func (t *FileBrowserTask) Name() string { return "explorerpp" }

func (t *FileBrowserTask) Enabled(tc *task.Context) bool { return true }

func (t *FileBrowserTask) archivePath() string {
	return filepath.Join(t.CacheDir, "explorerpp-"+t.Version+".7z")
}

func (t *FileBrowserTask) DoClean(tc *task.Context) error {
	if tc.CleanFlags&task.Redownload != 0 {
		if err := removeFileIfDry(tc, t.archivePath()); err != nil {
			return err
		}
	}
	if tc.CleanFlags&task.Reextract != 0 {
		if err := removeFileIfDry(tc, t.ExtractDir); err != nil {
			return err
		}
	}
	return nil
}

func (t *FileBrowserTask) DoFetch(tc *task.Context) error {
	d := tools.NewDownloaderTool()
	d.MirrorURLs = []string{fmt.Sprintf(t.URLTemplate, t.Version)}
	d.OutputFile = t.archivePath()
	if err := d.Run(toolContext(tc)); err != nil {
		return err
	}

	e := tools.NewExtractorTool()
	e.Archive = t.archivePath()
	e.OutputDir = t.ExtractDir
	return e.Run(toolContext(tc))
}

func (t *FileBrowserTask) DoBuildAndInstall(tc *task.Context) error {
	if tc.DryRun {
		tc.Log.Infof("[dry-run] copy %s -> %s", t.ExtractDir, t.InstallDir)
		return nil
	}
	return fs.CopyTree(t.ExtractDir, t.InstallDir, nil)
}
