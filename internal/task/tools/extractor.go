package tools

import (
	"fmt"

	"github.com/ModOrganizer2/mob/internal/core/process"
	"github.com/ModOrganizer2/mob/internal/utility/fs"
)

// ExtractorOperation selects which extractor operation to run.
type ExtractorOperation int

const (
	ExtractorExtract ExtractorOperation = iota
	ExtractorClean
)

// ExtractorTool expands an archive into an output directory, resolving the
// format from the (possibly compound) filename suffix and delegating to a
// 7-Zip-compatible CLI, the same archiver backend the packer wraps.
type ExtractorTool struct {
	BaseTool

	Executable string
	Operation  ExtractorOperation
	Archive    string
	OutputDir  string
	Format     string // optional override; auto-detected from suffix otherwise
	Force      bool
}

func NewExtractorTool() *ExtractorTool { return &ExtractorTool{} }

func (t *ExtractorTool) Name() string { return "extractor" }

func (t *ExtractorTool) resolveExecutable() string {
	if t.Executable != "" {
		return t.Executable
	}
	return "7z"
}

func (t *ExtractorTool) Run(tc *Context) error {
	switch t.Operation {
	case ExtractorExtract:
		return t.doExtract(tc)
	case ExtractorClean:
		if tc.DryRun {
			tc.Log.Infof("[dry-run] remove %s", t.OutputDir)
			return nil
		}
		return removeAll(t.OutputDir)
	default:
		return fmt.Errorf("extractor: unknown operation")
	}
}

func (t *ExtractorTool) doExtract(tc *Context) error {
	if !t.Force && fs.Exists(t.OutputDir) {
		tc.Log.Debugf("extractor: %s already exists, skipping", t.OutputDir)
		return nil
	}

	format := t.Format
	if format == "" {
		format = archiveFormat(t.Archive)
	}
	if format == "" {
		return fmt.Errorf("extractor: could not determine archive format for %s", t.Archive)
	}

	b := process.New(t.resolveExecutable()).
		Arg("x", t.Archive, "-o"+t.OutputDir, "-y").
		DisplayName("extract " + t.Archive)

	if tc.DryRun {
		tc.Log.Infof("[dry-run] extract %s -> %s", t.Archive, t.OutputDir)
		return nil
	}
	_, err := b.RunWithCancellation(tc.Ctx, tc.Log, tc.DryRun)
	return err
}
