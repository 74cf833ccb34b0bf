package task

import (
	"fmt"
	"sync"

	"golang.org/x/sync/semaphore"
)

// ParallelGroup is the parallel-group variant (§3): Clean and Fetch run
// children sequentially, Build-and-Install runs children concurrently
// bounded by a shared semaphore. Only the first (by index) child error is
// returned; the rest are logged.
type ParallelGroup struct {
	GroupName string
	Children  []Task
	Semaphore *semaphore.Weighted
}

func NewParallelGroup(name string, sem *semaphore.Weighted, children ...Task) *ParallelGroup {
	return &ParallelGroup{GroupName: name, Children: children, Semaphore: sem}
}

func (g *ParallelGroup) Name() string { return g.GroupName }

func (g *ParallelGroup) Enabled(tc *Context) bool { return len(g.Children) > 0 }

func (g *ParallelGroup) DoClean(tc *Context) error {
	for _, child := range g.Children {
		if !child.Enabled(tc) {
			continue
		}
		if err := child.DoClean(tc); err != nil {
			return err
		}
	}
	return nil
}

func (g *ParallelGroup) DoFetch(tc *Context) error {
	for _, child := range g.Children {
		if !child.Enabled(tc) {
			continue
		}
		if err := child.DoFetch(tc); err != nil {
			return err
		}
	}
	return nil
}

// DoBuildAndInstall spawns each child's build phase concurrently, bounded by
// the shared semaphore. A child panic is recovered and converted to an
// error. Errors are logged individually; only the first by slice index is
// returned.
func (g *ParallelGroup) DoBuildAndInstall(tc *Context) error {
	errs := make([]error, len(g.Children))
	var wg sync.WaitGroup

	for i, child := range g.Children {
		if err := g.Semaphore.Acquire(tc.Ctx, 1); err != nil {
			errs[i] = err
			continue
		}
		wg.Add(1)
		go func(i int, child Task) {
			defer wg.Done()
			defer g.Semaphore.Release(1)
			defer func() {
				if r := recover(); r != nil {
					errs[i] = fmt.Errorf("panic in task %s: %v", child.Name(), r)
				}
			}()
			if !child.Enabled(tc) {
				return
			}
			errs[i] = child.DoBuildAndInstall(tc)
		}(i, child)
	}
	wg.Wait()

	var first error
	for i, err := range errs {
		if err == nil {
			continue
		}
		if first == nil {
			first = err
		} else {
			tc.Log.Errorf("task %s (index %d) failed: %v", g.Children[i].Name(), i, err)
		}
	}
	return first
}
