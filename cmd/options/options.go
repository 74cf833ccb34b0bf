// Package options implements `mob options` / `mob inis` / `mob version`:
// introspection commands that print the effective config, the loaded config
// file paths, and version metadata.
package options

import (
	"bytes"
	"fmt"
	"io"
	"runtime/debug"

	"github.com/jesseduffield/yaml"
	"github.com/samber/lo"

	"github.com/ModOrganizer2/mob/internal/config"
)

// PrintOptions writes the effective config tree as YAML.
func PrintOptions(w io.Writer, tree *config.Tree) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	defer enc.Close()
	if err := enc.Encode(tree); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// PrintInis writes the list of config files that were actually loaded.
func PrintInis(w io.Writer, loadedFiles []string) {
	if len(loadedFiles) == 0 {
		fmt.Fprintln(w, "(no config files loaded)")
		return
	}
	for _, f := range loadedFiles {
		fmt.Fprintln(w, f)
	}
}

// Version metadata populated at link time via -ldflags; falls back to
// debug.ReadBuildInfo()'s VCS settings when unset, mirroring the teacher's
// updateBuildInfo.
var (
	Version = "unversioned"
	Commit  string
	Date    string
)

// PrintVersion writes version/commit/date, resolving unset fields from the
// build-info VCS settings the way the teacher's main.go does.
func PrintVersion(w io.Writer) {
	resolveFromBuildInfo()
	fmt.Fprintf(w, "mob %s\ncommit: %s\ndate: %s\n", Version, Commit, Date)
}

func resolveFromBuildInfo() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	if Commit == "" {
		if rev, found := lo.Find(info.Settings, func(s debug.BuildSetting) bool {
			return s.Key == "vcs.revision"
		}); found {
			Commit = rev.Value
		}
	}
	if Date == "" {
		if t, found := lo.Find(info.Settings, func(s debug.BuildSetting) bool {
			return s.Key == "vcs.time"
		}); found {
			Date = t.Value
		}
	}
}
