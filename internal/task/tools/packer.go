package tools

import (
	"fmt"
	"os"

	"github.com/ModOrganizer2/mob/internal/core/process"
	fsutil "github.com/ModOrganizer2/mob/internal/utility/fs"
)

// PackerOperation selects which packer operation to run.
type PackerOperation int

const (
	PackerPackDirectory PackerOperation = iota
	PackerPackFiles
)

// PackerTool wraps a 7-Zip-compatible CLI. pack-directory walks BaseDir via
// the filesystem-walk utility, filters excluded entries, and writes a
// generated file list consumed via `-i@listfile` to keep the command line
// short on large trees, per SPEC_FULL.md §4.3's "Packer specifics".
type PackerTool struct {
	BaseTool

	Executable string
	Operation  PackerOperation
	ArchiveOut string
	BaseDir    string
	Excludes   []string
	Files      []string
}

func NewPackerTool() *PackerTool { return &PackerTool{} }

func (t *PackerTool) Name() string { return "packer" }

func (t *PackerTool) resolveExecutable() string {
	if t.Executable != "" {
		return t.Executable
	}
	return "7z"
}

func (t *PackerTool) Run(tc *Context) error {
	switch t.Operation {
	case PackerPackDirectory:
		return t.doPackDirectory(tc)
	case PackerPackFiles:
		return t.doPackFiles(tc)
	default:
		return fmt.Errorf("packer: unknown operation")
	}
}

func (t *PackerTool) doPackDirectory(tc *Context) error {
	var entries []string
	err := fsutil.Walk(t.BaseDir, t.Excludes, func(relPath string, info os.FileInfo) error {
		entries = append(entries, relPath)
		return nil
	})
	if err != nil {
		return err
	}
	return t.packListFile(tc, entries)
}

func (t *PackerTool) doPackFiles(tc *Context) error {
	return t.packListFile(tc, t.Files)
}

func (t *PackerTool) packListFile(tc *Context, entries []string) error {
	if tc.DryRun {
		tc.Log.Infof("[dry-run] pack %d entries -> %s", len(entries), t.ArchiveOut)
		return nil
	}

	listFile, err := os.CreateTemp("", "mob-pack-*.lst")
	if err != nil {
		return fmt.Errorf("failed to create archive list file: %w", err)
	}
	defer os.Remove(listFile.Name())

	for _, entry := range entries {
		if _, err := fmt.Fprintln(listFile, entry); err != nil {
			listFile.Close()
			return fmt.Errorf("failed to write archive list file: %w", err)
		}
	}
	if err := listFile.Close(); err != nil {
		return fmt.Errorf("failed to close archive list file: %w", err)
	}

	b := process.New(t.resolveExecutable()).
		Arg("a", t.ArchiveOut, "-i@"+listFile.Name()).
		Dir(t.BaseDir).
		DisplayName("pack " + t.ArchiveOut)

	_, runErr := b.RunWithCancellation(tc.Ctx, tc.Log, tc.DryRun)
	return runErr
}
