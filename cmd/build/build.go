// Package build implements the `mob build` command: resolve the requested
// task patterns against the registry, then drive them through the task
// manager. Grounded on SPEC_FULL.md §6's command-surface table. The clean
// and phase flags are handed to the manager directly as a task.CleanFlags
// bitset and task.Phases; they are not turned into config overrides, and no
// per-task `task/enabled` overrides are produced for the requested patterns.
package build

import (
	"context"
	"fmt"

	"github.com/ModOrganizer2/mob/internal/app"
	"github.com/ModOrganizer2/mob/internal/task"
	"github.com/ModOrganizer2/mob/internal/task/manager"
)

// Options captures the flags specific to `mob build`.
type Options struct {
	Patterns    []string
	Redownload  bool
	Reextract   bool
	Reconfigure bool
	Rebuild     bool
	Full        bool
	NoClean     bool
	NoFetch     bool
	NoBuild     bool
}

func (o Options) cleanFlags() task.CleanFlags {
	if o.Full {
		return task.Full
	}
	var f task.CleanFlags
	if o.Redownload {
		f |= task.Redownload
	}
	if o.Reextract {
		f |= task.Reextract
	}
	if o.Reconfigure {
		f |= task.Reconfigure
	}
	if o.Rebuild {
		f |= task.Rebuild
	}
	return f
}

func (o Options) phases() task.Phases {
	return task.Phases{
		Clean: !o.NoClean,
		Fetch: !o.NoFetch,
		Build: !o.NoBuild,
	}
}

// Run resolves opts.Patterns against a's registry (all tasks if empty) and
// drives the result through the task manager.
func Run(ctx context.Context, a *app.App, opts Options) error {
	names := opts.Patterns
	if len(names) == 0 {
		names = []string{"*"}
	}
	resolved := a.Registry.Resolve(names)
	if len(resolved) == 0 {
		return fmt.Errorf("build: no task matched %v", names)
	}

	selected := make([]task.Task, 0, len(resolved))
	byName := map[string]task.Task{}
	for _, t := range a.Tasks {
		byName[t.Name()] = t
	}
	for _, name := range resolved {
		t, ok := byName[name]
		if !ok {
			continue
		}
		selected = append(selected, t)
	}

	mgr := manager.New(a.Log, a.DryRun, opts.cleanFlags(), opts.phases(), selected...)
	return mgr.Run(ctx)
}
