//go:build !windows

package tasks

import "github.com/ModOrganizer2/mob/internal/task/tools"

// newSolutionBuilder returns nil on non-native platforms: the
// solution-builder tool is native-platform only per SPEC_FULL.md §4.3.
func newSolutionBuilder(solution, config string) tools.Tool {
	return nil
}
