package tools

import (
	"fmt"

	"github.com/ModOrganizer2/mob/internal/git"
)

// VcsOperation selects which VCS-tool operation to run.
type VcsOperation int

const (
	VcsClone VcsOperation = iota
	VcsPull
	VcsFetch
	VcsCheckout
	VcsSubmoduleUpdate
	VcsReset
)

// VcsTool wraps the VCS adapter (C4): external backend for mutation, in-
// process backend for the pre-operation safety check. Grounded on
// SPEC_FULL.md §4.4's "higher-level VCS-tool always uses the external
// backend for mutation and the in-process backend for the pre-operation
// safety check."
type VcsTool struct {
	BaseTool

	Mutator git.Mutator
	Query   git.Querier

	Operation VcsOperation
	URL       string
	Path      string
	Branch    string
	Remote    string
	Target    string
	Shallow   bool
	Force     bool
	Recursive bool
}

func NewVcsTool(mutator git.Mutator, query git.Querier) *VcsTool {
	return &VcsTool{Mutator: mutator, Query: query, Remote: "origin"}
}

func (t *VcsTool) Name() string { return "vcs" }

func (t *VcsTool) Run(tc *Context) error {
	switch t.Operation {
	case VcsClone:
		return t.Mutator.Clone(tc.Ctx, t.URL, t.Path, t.Branch)
	case VcsPull:
		return t.Mutator.Pull(tc.Ctx, t.Path)
	case VcsFetch:
		return t.Mutator.Fetch(tc.Ctx, t.Path)
	case VcsCheckout:
		return t.doCheckout(tc)
	case VcsSubmoduleUpdate:
		return t.Mutator.Fetch(tc.Ctx, t.Path)
	case VcsReset:
		return t.Mutator.Checkout(tc.Ctx, t.Path, t.Target)
	default:
		return fmt.Errorf("vcs: unknown operation")
	}
}

// doCheckout warns but does not refuse when the working tree has
// uncommitted changes, unless Force is set, in which case it proceeds
// silently -- verbatim from SPEC_FULL.md §4.3.
func (t *VcsTool) doCheckout(tc *Context) error {
	if !t.Force && t.Query != nil {
		dirty, err := t.Query.HasUncommittedChanges(t.Path)
		if err == nil && dirty {
			tc.Log.Warnf("vcs: checking out %s with uncommitted changes in %s", t.Target, t.Path)
		}
	}
	return t.Mutator.Checkout(tc.Ctx, t.Path, t.Target)
}
