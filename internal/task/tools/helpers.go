package tools

import (
	"os"
	"strings"

	moberrors "github.com/ModOrganizer2/mob/internal/errors"
)

// removeAll wraps os.RemoveAll, translating failures into the filesystem
// error kind so tool-layer callers get a consistent error taxonomy.
func removeAll(path string) error {
	if path == "" {
		return nil
	}
	if err := os.RemoveAll(path); err != nil {
		return moberrors.Fs("failed to remove "+path, err)
	}
	return nil
}

// archiveFormat detects a compound archive suffix, preferring the longer
// match (".tar.gz" over ".gz"), case-insensitively, per SPEC_FULL.md §4.3.
func archiveFormat(name string) string {
	lower := strings.ToLower(name)
	for _, suffix := range []string{".tar.gz", ".tar.bz2", ".tar.xz", ".tgz", ".7z", ".zip", ".gz"} {
		if strings.HasSuffix(lower, suffix) {
			return suffix
		}
	}
	return ""
}
