// Package git implements `mob git set-remotes|add-remote|ignore-ts|branches`:
// per-repository VCS maintenance operations run across every task's
// checkout path. Grounded on SPEC_FULL.md §6's command-surface table and
// the original's git.rs maintenance-command set.
package git

import (
	"context"
	"fmt"

	"github.com/ModOrganizer2/mob/internal/app"
)

// SetRemotesOptions renames origin to upstream (best-effort, per §7's
// recovery policy) and adds a new origin across every task's repo path.
type SetRemotesOptions struct {
	NewOriginURL string
}

func SetRemotes(ctx context.Context, a *app.App, opts SetRemotesOptions) error {
	for _, path := range repoPaths(a) {
		if err := a.Mutator.RenameRemote(ctx, path, "origin", "upstream"); err != nil {
			a.Log.Debugf("git set-remotes: rename origin->upstream skipped for %s: %v", path, err)
		}
		if err := a.Mutator.AddRemote(ctx, path, "origin", opts.NewOriginURL); err != nil {
			return fmt.Errorf("git set-remotes: add origin for %s: %w", path, err)
		}
	}
	return nil
}

// AddRemoteOptions adds a single named remote across every task's repo path.
type AddRemoteOptions struct {
	Name string
	URL  string
}

func AddRemote(ctx context.Context, a *app.App, opts AddRemoteOptions) error {
	for _, path := range repoPaths(a) {
		if err := a.Mutator.AddRemote(ctx, path, opts.Name, opts.URL); err != nil {
			return fmt.Errorf("git add-remote: %s for %s: %w", opts.Name, path, err)
		}
	}
	return nil
}

// IgnoreTS marks translation source files assume-unchanged across every
// task's repo path, so local lrelease compilation doesn't dirty the tree.
func IgnoreTS(ctx context.Context, a *app.App, relFiles []string) error {
	for _, path := range repoPaths(a) {
		for _, rel := range relFiles {
			if err := a.Mutator.SetAssumeUnchanged(ctx, path, rel, true); err != nil {
				return fmt.Errorf("git ignore-ts: %s in %s: %w", rel, path, err)
			}
		}
	}
	return nil
}

// Branches returns the current branch of every task's repo path, keyed by
// path, with "(unknown)" where the branch cannot be read.
func Branches(ctx context.Context, a *app.App) (map[string]string, error) {
	out := make(map[string]string, len(a.Tasks))
	for _, path := range repoPaths(a) {
		branch, err := a.Query.CurrentBranch(path)
		if err != nil {
			out[path] = "(unknown)"
			continue
		}
		out[path] = branch
	}
	return out, nil
}

func repoPaths(a *app.App) []string {
	paths := make([]string, 0, len(a.Tasks))
	for _, t := range a.Tasks {
		paths = append(paths, a.Tree.Paths.Prefix+"/build/"+t.Name())
	}
	return paths
}
