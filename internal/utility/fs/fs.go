// Package fs provides filesystem walk and copy helpers shared by the packer,
// release, and install-copy tasks. Grounded on the teacher's pkg/utils
// string/helper style, generalized with doublestar for glob-based excludes
// (the teacher has no filesystem-walk code of its own; this package is new
// domain-stack surface needed by SPEC_FULL.md's packer/release/install
// components).
package fs

import (
	"io"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// Walk visits every regular file under root, skipping any path that matches
// one of the doublestar exclude patterns (matched against the root-relative,
// slash-separated path). fn receives the root-relative path.
func Walk(root string, excludes []string, fn func(relPath string, info os.FileInfo) error) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		if rel == "." {
			return nil
		}
		slashRel := filepath.ToSlash(rel)

		excluded, matchErr := matchesAny(excludes, slashRel)
		if matchErr != nil {
			return matchErr
		}
		if excluded {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() {
			return nil
		}
		return fn(slashRel, info)
	})
}

func matchesAny(patterns []string, path string) (bool, error) {
	for _, pattern := range patterns {
		ok, err := doublestar.Match(pattern, path)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// CopyFile copies src to dst, creating dst's parent directory and preserving
// src's file mode.
func CopyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode())
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}

// CopyTree copies every file under src into dst, excluding paths matching
// any of the doublestar exclude patterns.
func CopyTree(src, dst string, excludes []string) error {
	return Walk(src, excludes, func(relPath string, info os.FileInfo) error {
		return CopyFile(filepath.Join(src, relPath), filepath.Join(dst, relPath))
	})
}

// Exists reports whether path exists, swallowing stat errors other than
// not-exist.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
