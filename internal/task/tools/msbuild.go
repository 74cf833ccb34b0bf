//go:build windows

package tools

import (
	"fmt"

	mobenv "github.com/ModOrganizer2/mob/internal/core/env"
	"github.com/ModOrganizer2/mob/internal/core/process"
)

// MsbuildOperation selects which solution-builder operation to run.
type MsbuildOperation int

const (
	MsbuildBuild MsbuildOperation = iota
	MsbuildClean
)

// MsbuildTool wraps MSBuild.exe. Native-platform only, per SPEC_FULL.md
// §4.3's tool table. Grounded on the "Solution-builder specifics" section:
// toolchain-version translation, platform selection, toolchain environment
// injection, and the Clean-target convention.
type MsbuildTool struct {
	BaseTool

	Executable       string
	Operation        MsbuildOperation
	Solution         string
	Configuration    string
	Platform         string
	Architecture     mobenv.Architecture
	ToolchainVersion string // e.g. "14.3"
	Targets          []string
	Properties       map[string]string
	MaxCPUCount      bool
}

func NewMsbuildTool() *MsbuildTool {
	return &MsbuildTool{Properties: map[string]string{}}
}

func (t *MsbuildTool) Name() string { return "msbuild" }

func (t *MsbuildTool) resolveExecutable() string {
	if t.Executable != "" {
		return t.Executable
	}
	return "MSBuild.exe"
}

// toolsetName translates "14.3" into the "v143" toolset identifier MSBuild
// expects for the PlatformToolset property.
func toolsetName(version string) string {
	out := ""
	for _, r := range version {
		if r != '.' {
			out += string(r)
		}
	}
	return "v" + out
}

func (t *MsbuildTool) resolvePlatform() string {
	if t.Platform != "" {
		return t.Platform
	}
	switch t.Architecture {
	case mobenv.ArchX86:
		return "Win32"
	case mobenv.ArchX64:
		return "x64"
	default:
		return "x64"
	}
}

func (t *MsbuildTool) Run(tc *Context) error {
	switch t.Operation {
	case MsbuildBuild:
		return t.doBuild(tc)
	case MsbuildClean:
		return t.doClean(tc)
	default:
		return fmt.Errorf("msbuild: unknown operation")
	}
}

func (t *MsbuildTool) targetArg(clean bool) string {
	if len(t.Targets) == 0 {
		if clean {
			return "Clean"
		}
		return ""
	}
	joined := ""
	for i, target := range t.Targets {
		if i > 0 {
			joined += ";"
		}
		if clean {
			joined += target + ":Clean"
		} else {
			joined += target
		}
	}
	return joined
}

func (t *MsbuildTool) build(tc *Context, clean bool) error {
	b := process.New(t.resolveExecutable()).Arg(t.Solution)

	if target := t.targetArg(clean); target != "" {
		b.Arg("/t:" + target)
	}
	if t.Configuration != "" {
		b.Arg("/p:Configuration=" + t.Configuration)
	}
	b.Arg("/p:Platform=" + t.resolvePlatform())
	if t.ToolchainVersion != "" {
		b.Arg("/p:PlatformToolset=" + toolsetName(t.ToolchainVersion))
	}
	if t.MaxCPUCount {
		b.Arg("/m")
	}
	for k, v := range t.Properties {
		b.Arg(fmt.Sprintf("/p:%s=%s", k, v))
	}

	if toolchain, err := mobenv.Toolchain(t.Architecture); err == nil {
		b.Env(toolchain)
	}

	if tc.DryRun {
		action := "build"
		if clean {
			action = "clean"
		}
		tc.Log.Infof("[dry-run] msbuild %s: %s", action, t.Solution)
		return nil
	}
	_, err := b.RunWithCancellation(tc.Ctx, tc.Log, tc.DryRun)
	return err
}

func (t *MsbuildTool) doBuild(tc *Context) error { return t.build(tc, false) }
func (t *MsbuildTool) doClean(tc *Context) error { return t.build(tc, true) }
