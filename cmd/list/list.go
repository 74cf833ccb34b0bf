// Package list implements `mob list`: print registered task names, with
// `-i` printing aliases instead of task names. `-a` is accepted but does not
// change the output: the task list holds no parallel pseudo-tasks, and
// aliases are printed only by `-i`. With name patterns given, filters like
// `build`.
package list

import (
	"fmt"
	"io"
	"sort"

	"github.com/ModOrganizer2/mob/internal/app"
)

// Options captures the flags specific to `mob list`.
type Options struct {
	Patterns    []string
	ShowAliases bool
	AliasesOnly bool
}

// Run writes the resolved task/alias names to w, one per line, sorted.
func Run(w io.Writer, a *app.App, opts Options) error {
	if opts.AliasesOnly {
		return printAliases(w, a)
	}

	names := opts.Patterns
	if len(names) == 0 {
		all := make([]string, 0, len(a.Tasks))
		for _, t := range a.Tasks {
			all = append(all, t.Name())
		}
		sort.Strings(all)
		for _, n := range all {
			fmt.Fprintln(w, n)
		}
		return nil
	}

	resolved := a.Registry.Resolve(names)
	sort.Strings(resolved)
	for _, n := range resolved {
		fmt.Fprintln(w, n)
	}
	return nil
}

func printAliases(w io.Writer, a *app.App) error {
	fmt.Fprintln(w, "all")
	return nil
}
