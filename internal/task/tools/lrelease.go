package tools

import (
	"path/filepath"

	"github.com/ModOrganizer2/mob/internal/core/process"
)

// LreleaseTool wraps Qt's lrelease, compiling translation source files into
// a single `{project}_{lang}.qm` binary catalogue.
type LreleaseTool struct {
	BaseTool

	Executable  string
	Project     string
	Lang        string
	SourceFiles []string
	OutputDir   string
}

func NewLreleaseTool() *LreleaseTool { return &LreleaseTool{} }

func (t *LreleaseTool) Name() string { return "lrelease" }

func (t *LreleaseTool) resolveExecutable() string {
	if t.Executable != "" {
		return t.Executable
	}
	return "lrelease"
}

func (t *LreleaseTool) outputPath() string {
	return filepath.Join(t.OutputDir, t.Project+"_"+t.Lang+".qm")
}

func (t *LreleaseTool) Run(tc *Context) error {
	out := t.outputPath()
	b := process.New(t.resolveExecutable()).Arg(t.SourceFiles...).Arg("-qm", out)

	if tc.DryRun {
		tc.Log.Infof("[dry-run] lrelease -> %s", out)
		return nil
	}
	_, err := b.RunWithCancellation(tc.Ctx, tc.Log, tc.DryRun)
	return err
}
