//go:build !windows

package app

import "github.com/ModOrganizer2/mob/internal/task"

func newInstallerTask(a *App) []task.Task { return nil }
