//go:build windows

package tools

import (
	"github.com/ModOrganizer2/mob/internal/core/process"
)

// IsccTool wraps Inno Setup's ISCC.exe. Native-platform only. Resolved via
// PATH lookup first, falling back to the well-known "Program Files (x86)"
// install location, per SPEC_FULL.md §4.3's installer-compiler specifics.
type IsccTool struct {
	BaseTool

	Executable string
	Script     string
	Defines    map[string]string
	OutputDir  string
	OutputName string
}

func NewIsccTool() *IsccTool { return &IsccTool{Defines: map[string]string{}} }

func (t *IsccTool) Name() string { return "iscc" }

func (t *IsccTool) resolveExecutable() string {
	if t.Executable != "" {
		return t.Executable
	}
	if _, err := process.Which("ISCC.exe"); err == nil {
		return "ISCC.exe"
	}
	return `C:\Program Files (x86)\Inno Setup 6\ISCC.exe`
}

func (t *IsccTool) Run(tc *Context) error {
	b := process.New(t.resolveExecutable()).Arg(t.Script)
	for k, v := range t.Defines {
		b.Arg("/D" + k + "=" + v)
	}
	if t.OutputDir != "" {
		b.Arg("/O" + t.OutputDir)
	}
	if t.OutputName != "" {
		b.Arg("/F" + t.OutputName)
	}
	if tc.DryRun {
		tc.Log.Infof("[dry-run] iscc: %s", t.Script)
		return nil
	}
	_, err := b.RunWithCancellation(tc.Ctx, tc.Log, tc.DryRun)
	return err
}
