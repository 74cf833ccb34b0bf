// Package tx implements `mob tx get|build`: direct invocation of the
// translation-service client outside of the translations task's own
// fetch/build phases, for operators who want to pull or compile
// translations without running the full pipeline.
package tx

import (
	"context"
	"fmt"

	"github.com/ModOrganizer2/mob/internal/app"
	"github.com/ModOrganizer2/mob/internal/task"
	"github.com/ModOrganizer2/mob/internal/task/manager"
)

// Get drives only the translations task's Fetch phase (tx init/configure/pull).
func Get(ctx context.Context, a *app.App) error {
	return runTranslationsPhase(ctx, a, task.Phases{Fetch: true})
}

// Build drives only the translations task's Build phase (lrelease compile +
// toolkit .qm copy).
func Build(ctx context.Context, a *app.App) error {
	return runTranslationsPhase(ctx, a, task.Phases{Build: true})
}

func runTranslationsPhase(ctx context.Context, a *app.App, phases task.Phases) error {
	for _, t := range a.Tasks {
		if t.Name() != "translations" {
			continue
		}
		mgr := manager.New(a.Log, a.DryRun, 0, phases, t)
		return mgr.Run(ctx)
	}
	return fmt.Errorf("tx: translations task not registered")
}
