package env

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// captureToolchain spawns the platform developer-shell initialiser
// (vcvarsall.bat on the native platform) and reads the resulting
// environment back through a marker-delimited `SET` dump, grounded on the
// original's core/env/vcvars.rs approach of shelling out and diffing.
func captureToolchain(arch Architecture) (*Map, error) {
	if runtime.GOOS != "windows" {
		return nil, fmt.Errorf("toolchain environment capture is only supported on the native platform")
	}

	archArg := "x64"
	if arch == ArchX86 {
		archArg = "x86"
	}

	const marker = "__MOB_VCVARS_MARKER__"
	vcvarsall := findVcvarsall()
	if vcvarsall == "" {
		return nil, fmt.Errorf("vcvarsall.bat not found")
	}

	cmd := exec.Command("cmd.exe", "/c",
		fmt.Sprintf(`call "%s" %s >nul && echo %s && set`, vcvarsall, archArg, marker))
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("failed to capture toolchain environment: %w", err)
	}

	m := New()
	scanner := bufio.NewScanner(bytes.NewReader(out))
	seenMarker := false
	for scanner.Scan() {
		line := scanner.Text()
		if !seenMarker {
			if strings.TrimSpace(line) == marker {
				seenMarker = true
			}
			continue
		}
		if i := strings.IndexByte(line, '='); i >= 0 {
			m.Set(line[:i], line[i+1:])
		}
	}
	return m, nil
}

// findVcvarsall locates vcvarsall.bat under the well-known Visual Studio
// install roots. A real implementation would also consult vswhere.exe; this
// keeps to the well-known-path fallback described for tool resolution in
// SPEC_FULL.md §4.3.
func findVcvarsall() string {
	roots := []string{
		`C:\Program Files\Microsoft Visual Studio\2022`,
		`C:\Program Files (x86)\Microsoft Visual Studio\2019`,
	}
	editions := []string{"Enterprise", "Professional", "Community", "BuildTools"}
	for _, root := range roots {
		for _, edition := range editions {
			candidate := root + `\` + edition + `\VC\Auxiliary\Build\vcvarsall.bat`
			if fileExists(candidate) {
				return candidate
			}
		}
	}
	return ""
}
