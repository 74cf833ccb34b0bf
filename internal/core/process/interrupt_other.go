//go:build !windows

package process

import (
	"os/exec"
	"syscall"

	"github.com/jesseduffield/kill"
)

func sendGracefulInterrupt(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	return syscall.Kill(-cmd.Process.Pid, syscall.SIGINT)
}

// forceKill terminates the whole process group, grounded on the teacher's
// use of github.com/jesseduffield/kill for group-aware termination.
func forceKill(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	return kill.Kill(cmd)
}
