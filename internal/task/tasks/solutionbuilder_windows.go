//go:build windows

package tasks

import "github.com/ModOrganizer2/mob/internal/task/tools"

func newSolutionBuilder(solution, config string) tools.Tool {
	m := tools.NewMsbuildTool()
	m.Solution = solution
	m.Configuration = config
	m.Operation = tools.MsbuildBuild
	m.MaxCPUCount = true
	return m
}
