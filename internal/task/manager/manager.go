// Package manager implements the task orchestrator (C6): sequential driver,
// cancellation plumbing, and dry-run propagation. Grounded on SPEC_FULL.md
// §4.6's contract, generalized to Go's context.Context/os/signal idioms.
package manager

import (
	"context"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"

	"github.com/ModOrganizer2/mob/internal/task"
)

// Manager runs an ordered task list to completion or first error.
type Manager struct {
	Tasks      []task.Task
	Log        *logrus.Entry
	DryRun     bool
	CleanFlags task.CleanFlags
	Phases     task.Phases
}

func New(log *logrus.Entry, dryRun bool, cleanFlags task.CleanFlags, phases task.Phases, tasks ...task.Task) *Manager {
	return &Manager{Tasks: tasks, Log: log, DryRun: dryRun, CleanFlags: cleanFlags, Phases: phases}
}

// Run drives every task in sequence, wiring a shared cancellable context to
// an interrupt-signal listener. The first task error stops the pipeline.
func (m *Manager) Run(parent context.Context) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case <-sigCh:
			m.Log.Info("interrupt received, cancelling pipeline")
			cancel()
		case <-ctx.Done():
		}
	}()

	for _, t := range m.Tasks {
		tc := &task.Context{
			Ctx:        ctx,
			Log:        m.Log.WithField("task", t.Name()),
			DryRun:     m.DryRun,
			CleanFlags: m.CleanFlags,
			Phases:     m.Phases,
		}

		if err := task.Run(t, tc); err != nil {
			if interrupted, ok := err.(*task.InterruptedError); ok {
				m.Log.Info(interrupted.Error())
				return err
			}
			m.Log.Errorf("task %s failed: %v", t.Name(), err)
			return err
		}
	}
	return nil
}
