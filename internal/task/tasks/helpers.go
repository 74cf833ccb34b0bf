package tasks

import (
	"os"

	"github.com/ModOrganizer2/mob/internal/task"
)

// removeFileIfDry deletes path, or just logs the intent in dry-run, matching
// the "dry-run discipline" contract in SPEC_FULL.md §4.6: no filesystem
// mutation occurs when DryRun is set.
func removeFileIfDry(tc *task.Context, path string) error {
	if tc.DryRun {
		tc.Log.Infof("[dry-run] remove %s", path)
		return nil
	}
	if err := os.RemoveAll(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
