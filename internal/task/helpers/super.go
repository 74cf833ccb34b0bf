// Package helpers holds small pieces of task-building-block logic shared
// across the concrete tasks in internal/task/tasks, grounded on SPEC_FULL.md
// §4.8 (the "super" meta-project once-initialiser, branch-fallback probing).
package helpers

import (
	"context"
	"os"
	"sync"

	"github.com/ModOrganizer2/mob/internal/git"
)

var superOnce sync.Once
var superErr error

// EnsureSuperRepo initialises the parent "super" repository exactly once
// across all main-application tasks in a process lifetime, per SPEC_FULL.md
// §4.8 ("First task to run initialises the parent 'super' repository
// (mkdir + init) via a once-initialiser").
func EnsureSuperRepo(ctx context.Context, mutator git.Mutator, path string) error {
	superOnce.Do(func() {
		if err := os.MkdirAll(path, 0o755); err != nil {
			superErr = err
			return
		}
		superErr = mutator.Init(ctx, path)
	})
	return superErr
}

// ProbeBranch tries each candidate branch in order against remote via the
// query backend's CurrentBranch-adjacent ls-remote-style check, returning
// the first that exists. Grounded on the installer/main-app tasks' "branch
// fallback by remote probe" contract.
func ProbeBranch(exists func(branch string) bool, candidates ...string) (string, bool) {
	for _, branch := range candidates {
		if exists(branch) {
			return branch, true
		}
	}
	return "", false
}
