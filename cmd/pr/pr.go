// Package pr implements `mob pr find|pull|revert`: inspecting and applying
// an external pull request's changes across the affected local checkout.
package pr

import (
	"context"
	"fmt"

	"github.com/ModOrganizer2/mob/internal/app"
	"github.com/ModOrganizer2/mob/internal/pr"
)

// Find lists every open pull request against the configured upstream.
func Find(ctx context.Context, a *app.App) ([]*pr.Info, error) {
	return a.PRClient.Find(ctx)
}

// Pull fetches and checks out a PR's head ref into the named task's repo.
func Pull(ctx context.Context, a *app.App, number int, taskName string) error {
	path, err := repoPathFor(a, taskName)
	if err != nil {
		return err
	}
	if _, err := a.PRClient.Inspect(ctx, number); err != nil {
		return err
	}
	return a.PRClient.Apply(ctx, a.Mutator, path, number)
}

// Revert checks the named task's repo back onto baseRef, undoing Pull.
func Revert(ctx context.Context, a *app.App, taskName, baseRef string) error {
	path, err := repoPathFor(a, taskName)
	if err != nil {
		return err
	}
	return a.PRClient.Revert(ctx, a.Mutator, path, baseRef)
}

func repoPathFor(a *app.App, taskName string) (string, error) {
	for _, t := range a.Tasks {
		if t.Name() == taskName {
			return a.Tree.Paths.Prefix + "/build/" + taskName, nil
		}
	}
	return "", fmt.Errorf("pr: unknown task %q", taskName)
}
