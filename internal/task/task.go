// Package task defines the closed task-variant interface (C5), the
// three-phase lifecycle contract, and the clean-flag bitset. Grounded on the
// original's task model generalized to a Go interface whose methods the
// orchestrator calls through Run, per SPEC_FULL.md §4.5.
package task

import (
	"context"

	"github.com/sirupsen/logrus"
)

// CleanFlags is the independent clean-operation bitset.
type CleanFlags uint8

const (
	Redownload CleanFlags = 1 << iota
	Reextract
	Reconfigure
	Rebuild
)

// Full is the "full" shorthand that sets every clean bit.
const Full = Redownload | Reextract | Reconfigure | Rebuild

// Phases is the phase-enable triple.
type Phases struct {
	Clean bool
	Fetch bool
	Build bool
}

// Context is the task-context (§3): tool-context fields plus clean-flag
// bitset and phase-enable triple.
type Context struct {
	Ctx        context.Context
	Log        *logrus.Entry
	DryRun     bool
	CleanFlags CleanFlags
	Phases     Phases
}

// Task is implemented by exactly the variants SPEC_FULL.md §3 names: the
// closed set is enforced by convention (only this package's own types
// implement it), not by a sealed-interface trick Go doesn't have.
type Task interface {
	Name() string
	Enabled(tc *Context) bool
	DoClean(tc *Context) error
	DoFetch(tc *Context) error
	DoBuildAndInstall(tc *Context) error
}

// Run executes a task's three phases under the policy in SPEC_FULL.md §4.5:
// skip entirely if disabled; check cancellation before an enabled phase;
// run phases strictly in order, stopping on the first error.
func Run(t Task, tc *Context) error {
	if !t.Enabled(tc) {
		return nil
	}

	if tc.Phases.Clean && tc.CleanFlags != 0 {
		if err := checkCancelled(tc, t.Name(), "clean"); err != nil {
			return err
		}
		if err := t.DoClean(tc); err != nil {
			return err
		}
	}

	if tc.Phases.Fetch {
		if err := checkCancelled(tc, t.Name(), "fetch"); err != nil {
			return err
		}
		if err := t.DoFetch(tc); err != nil {
			return err
		}
	}

	if tc.Phases.Build {
		if err := checkCancelled(tc, t.Name(), "build"); err != nil {
			return err
		}
		if err := t.DoBuildAndInstall(tc); err != nil {
			return err
		}
	}

	return nil
}

func checkCancelled(tc *Context, name, phase string) error {
	select {
	case <-tc.Ctx.Done():
		return &InterruptedError{Task: name, Phase: phase}
	default:
		return nil
	}
}

// InterruptedError reports that a task's context was cancelled before a
// given phase could begin.
type InterruptedError struct {
	Task  string
	Phase string
}

func (e *InterruptedError) Error() string {
	return "interrupted before " + e.Phase + " phase of " + e.Task
}
