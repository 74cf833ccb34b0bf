//go:build !windows

package release

import "fmt"

// VersionFromExe is unavailable off the native platform: file-version
// resource tables are a Windows PE concept with no portable equivalent.
func VersionFromExe(path string) (string, error) {
	return "", fmt.Errorf("version-from-executable is only available on the native platform")
}
