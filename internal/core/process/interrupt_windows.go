//go:build windows

package process

import (
	"os/exec"

	"golang.org/x/sys/windows"
)

// sendGracefulInterrupt delivers a console-break event to the child's
// process group, the native-platform equivalent of SIGINT.
func sendGracefulInterrupt(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	return windows.GenerateConsoleCtrlEvent(windows.CTRL_BREAK_EVENT, uint32(cmd.Process.Pid))
}

// forceKill terminates the process outright; on the native platform this is
// superseded in practice by the job object's KILL_ON_JOB_CLOSE, but is kept
// as a direct fallback for processes that escape job assignment.
func forceKill(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	return cmd.Process.Kill()
}
