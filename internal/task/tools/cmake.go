package tools

import (
	"fmt"
	"sort"

	"github.com/ModOrganizer2/mob/internal/core/process"
)

// CmakeOperation selects which native-configure operation to run.
type CmakeOperation int

const (
	CmakeConfigure CmakeOperation = iota
	CmakeBuild
	CmakeInstall
	CmakeClean
)

// CmakeGenerator names the CMake generator to invoke with -G.
type CmakeGenerator string

// CmakeArchitecture is the target architecture passed via -A.
type CmakeArchitecture string

const (
	ArchWin32 CmakeArchitecture = "Win32"
	ArchX64   CmakeArchitecture = "x64"
)

// CmakeTool wraps the CMake CLI. Grounded on the original's
// task/tools/cmake/mod.rs CmakeTool builder: dry-run-first, resolved via
// ProcessBuilder::which, sorted-deduplicated target union.
type CmakeTool struct {
	BaseTool

	Executable    string
	Operation     CmakeOperation
	SourceDir     string
	BuildDir      string
	InstallPrefix string
	Generator     CmakeGenerator
	Architecture  CmakeArchitecture
	Config        string // build configuration, e.g. "Release"
	Definitions   map[string]string
	PrefixPath    []string
	Preset        string
	target        string
	targets       []string
}

func NewCmakeTool() *CmakeTool {
	return &CmakeTool{Definitions: map[string]string{}}
}

func (t *CmakeTool) Name() string { return "cmake" }

func (t *CmakeTool) Target(name string) *CmakeTool {
	t.target = name
	return t
}

func (t *CmakeTool) Targets(names ...string) *CmakeTool {
	t.targets = append(t.targets, names...)
	return t
}

// combinedTargets dedups and sorts the union of Target and Targets, mirroring
// the original's BTreeSet-equivalent combined_targets().
func (t *CmakeTool) combinedTargets() []string {
	set := map[string]struct{}{}
	if t.target != "" {
		set[t.target] = struct{}{}
	}
	for _, name := range t.targets {
		set[name] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (t *CmakeTool) resolveExecutable() string {
	if t.Executable != "" {
		return t.Executable
	}
	return "cmake"
}

func (t *CmakeTool) Run(tc *Context) error {
	switch t.Operation {
	case CmakeConfigure:
		return t.doConfigure(tc)
	case CmakeBuild:
		return t.doBuild(tc)
	case CmakeInstall:
		return t.doInstall(tc)
	case CmakeClean:
		return t.doClean(tc)
	default:
		return fmt.Errorf("cmake: unknown operation")
	}
}

func (t *CmakeTool) doConfigure(tc *Context) error {
	b := process.New(t.resolveExecutable()).Arg("-S", t.SourceDir, "-B", t.BuildDir)

	if t.Preset != "" {
		b.Arg("--preset", t.Preset)
	} else {
		if t.Generator != "" {
			b.Arg("-G", string(t.Generator))
		}
		if t.Architecture != "" {
			b.Arg("-A", string(t.Architecture))
		}
		if _, ok := t.Definitions["CMAKE_INSTALL_MESSAGE"]; !ok {
			b.Arg("-DCMAKE_INSTALL_MESSAGE=NEVER")
		}
		if t.InstallPrefix != "" {
			if _, ok := t.Definitions["CMAKE_INSTALL_PREFIX"]; !ok {
				b.Arg("-DCMAKE_INSTALL_PREFIX=" + t.InstallPrefix)
			}
		}
		if len(t.PrefixPath) > 0 {
			if _, ok := t.Definitions["CMAKE_PREFIX_PATH"]; !ok {
				joined := ""
				for i, p := range t.PrefixPath {
					if i > 0 {
						joined += ";"
					}
					joined += p
				}
				b.Arg("-DCMAKE_PREFIX_PATH=" + joined)
			}
		}
		keys := make([]string, 0, len(t.Definitions))
		for k := range t.Definitions {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.Arg("-D" + k + "=" + t.Definitions[k])
		}
	}

	if tc.DryRun {
		tc.Log.Infof("[dry-run] cmake configure: %s", t.SourceDir)
		return nil
	}
	_, err := b.RunWithCancellation(tc.Ctx, tc.Log, tc.DryRun)
	return err
}

func (t *CmakeTool) doBuild(tc *Context) error {
	b := process.New(t.resolveExecutable()).Arg("--build", t.BuildDir, "--parallel")
	if t.Config != "" {
		b.Arg("--config", t.Config)
	}
	for _, target := range t.combinedTargets() {
		b.Arg("--target", target)
	}
	if tc.DryRun {
		tc.Log.Infof("[dry-run] cmake build: %s", t.BuildDir)
		return nil
	}
	_, err := b.RunWithCancellation(tc.Ctx, tc.Log, tc.DryRun)
	return err
}

func (t *CmakeTool) doInstall(tc *Context) error {
	b := process.New(t.resolveExecutable()).Arg("--install", t.BuildDir)
	if t.Config != "" {
		b.Arg("--config", t.Config)
	}
	if tc.DryRun {
		tc.Log.Infof("[dry-run] cmake install: %s", t.BuildDir)
		return nil
	}
	_, err := b.RunWithCancellation(tc.Ctx, tc.Log, tc.DryRun)
	return err
}

func (t *CmakeTool) doClean(tc *Context) error {
	if tc.DryRun {
		tc.Log.Infof("[dry-run] remove build dir: %s", t.BuildDir)
		return nil
	}
	return removeAll(t.BuildDir)
}
