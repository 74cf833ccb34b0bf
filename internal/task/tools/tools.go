// Package tools implements the uniform tool layer (C3): builder-configured
// wrappers over external tools, each honoring dry-run, cancellation, and
// environment injection by emitting invocations through internal/core/process.
// Grounded on the original's task/tools/mod.rs Tool trait and task/tools/cmake
// for the canonical builder+operation-enum+do_X shape, generalized across the
// nine concrete tools.
package tools

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Context is the tool-context (§3): shared config, cancellation, dry-run.
type Context struct {
	Ctx    context.Context
	Log    *logrus.Entry
	DryRun bool
}

// Tool is implemented by every concrete tool wrapper.
type Tool interface {
	Name() string
	Run(tc *Context) error
	// Interrupt is a no-op by default; the shared cancellation context
	// already suffices for cooperative shutdown.
	Interrupt()
}

// BaseTool supplies the default no-op Interrupt so concrete tools need only
// embed it and implement Name/Run.
type BaseTool struct{}

func (BaseTool) Interrupt() {}
