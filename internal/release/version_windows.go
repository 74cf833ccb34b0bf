//go:build windows

package release

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// VersionFromExe reads the compiled application's file-version resource
// table via the Win32 version-info APIs, grounded on the original's
// version_from_exe (GetFileVersionInfo + VerQueryValue on the root block's
// VS_FIXEDFILEINFO).
func VersionFromExe(path string) (string, error) {
	size, err := windows.GetFileVersionInfoSize(path, nil)
	if err != nil || size == 0 {
		return "", fmt.Errorf("failed to get file version info size for %s: %w", path, err)
	}

	buf := make([]byte, size)
	if err := windows.GetFileVersionInfo(path, 0, size, unsafe.Pointer(&buf[0])); err != nil {
		return "", fmt.Errorf("failed to get file version info for %s: %w", path, err)
	}

	var fixed *windows.VS_FIXEDFILEINFO
	var fixedLen uint32
	if err := windows.VerQueryValue(unsafe.Pointer(&buf[0]), `\`, unsafe.Pointer(&fixed), &fixedLen); err != nil {
		return "", fmt.Errorf("failed to query fixed file info for %s: %w", path, err)
	}

	major := fixed.FileVersionMS >> 16
	minor := fixed.FileVersionMS & 0xffff
	patch := fixed.FileVersionLS >> 16
	return fmt.Sprintf("%d.%d.%d", major, minor, patch), nil
}
