//go:build !windows

package process

import (
	"os/exec"
	"syscall"
)

// job is a no-op container on non-native platforms: process-group based
// kill (via processGroupFlags/forceKill) already bounds the descendant tree well
// enough without a kernel job object.
type job struct{}

func newJob() (*job, error) { return &job{}, nil }

func (j *job) assign(cmd *exec.Cmd) error { return nil }

func (j *job) close() {}

// processGroupFlags places the child in its own process group (Setpgid) so
// an interrupt signal can be delivered to the group without affecting the
// parent, mirroring the teacher's PrepareForChildren use of
// github.com/jesseduffield/kill.
func processGroupFlags() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setpgid: true}
}
