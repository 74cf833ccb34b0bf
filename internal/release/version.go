// Package release implements the release pipeline (C9): version resolution,
// output-directory resolution, and archive creation for dev-build and
// official modes. Grounded on the original's cmd/release/version.rs
// (version_from_rc regex, version_from_exe Win32 calls) and cmd/release/mod.rs
// (archive naming, exclude lists, official-mode checkout flow).
package release

import (
	"fmt"
	"os"
	"regexp"
)

// rcVersionPattern matches the literal line
// `#define VER_FILEVERSION_STR "<captured>\0"`, per SPEC_FULL.md §6.
var rcVersionPattern = regexp.MustCompile(`#define\s+VER_FILEVERSION_STR\s+"([^"\\]+)\\0"`)

// VersionFromRC parses a resource-script file for the VER_FILEVERSION_STR
// define, grounded on the original's parse_version_from_rc_content.
func VersionFromRC(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read resource script %s: %w", path, err)
	}
	match := rcVersionPattern.FindSubmatch(data)
	if match == nil {
		return "", fmt.Errorf("no VER_FILEVERSION_STR found in %s", path)
	}
	return string(match[1]), nil
}

// ResolveVersion resolves the effective version string following dev-build
// precedence: explicit flag > version-from-executable (native platform) >
// version-from-resource-script.
func ResolveVersion(explicit, exePath, rcPath string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if exePath != "" {
		if v, err := VersionFromExe(exePath); err == nil && v != "" {
			return v, nil
		}
	}
	if rcPath != "" {
		return VersionFromRC(rcPath)
	}
	return "", fmt.Errorf("could not resolve version: no explicit version, executable, or resource script available")
}

// DefaultRCPath returns the conventional resource-script location relative
// to a super meta-project directory, grounded on the original's
// default_rc_path.
func DefaultRCPath(superDir string) string {
	return superDir + "/modorganizer/src/version.rc"
}
