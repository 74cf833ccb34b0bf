// Package cmakeconfig implements `mob cmake-config prefix-path|install-prefix`:
// emits configure variables for external CMake consumers that build against
// this pipeline's install tree without going through `mob build` itself.
package cmakeconfig

import "github.com/ModOrganizer2/mob/internal/app"

// PrefixPath returns the composite CMAKE_PREFIX_PATH value (Qt install,
// vcpkg, install-libs, in that order), joined with the platform path-list
// separator.
func PrefixPath(a *app.App, sep string) string {
	return a.Tree.PrefixPathList(sep)
}

// InstallPrefix returns the configured install prefix.
func InstallPrefix(a *app.App) string {
	return a.Tree.Paths.Prefix + "/install"
}
