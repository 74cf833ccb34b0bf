//go:build windows

package app

import (
	"path/filepath"

	"github.com/ModOrganizer2/mob/internal/task"
	"github.com/ModOrganizer2/mob/internal/task/tasks"
)

func newInstallerTask(a *App) []task.Task {
	return []task.Task{&tasks.InstallerTask{
		RepoDir:        filepath.Join(a.superDir(), "installer"),
		RepoURL:        "https://github.com/ModOrganizer2/modorganizer-installer.git",
		PrimaryBranch:  "master",
		FallbackBranch: "main",
		Script:         filepath.Join(a.superDir(), "installer", "Installer.iss"),
		Defines:        map[string]string{},
		InstallDir:     filepath.Join(a.prefixPath(), "install"),
		OutputName:     "Mod.Organizer",
		Mutator:        a.Mutator,
		Query:          a.Query,
	}}
}
