//go:build windows

package process

import (
	"fmt"
	"os/exec"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

// job wraps a Windows job object configured with
// JOB_OBJECT_LIMIT_KILL_ON_JOB_CLOSE so that closing the handle (on child
// exit or abnormal parent exit) terminates every process ever assigned to
// it, guaranteeing no descendant outlives the parent. Grounded on the
// original's core/job/mod.rs.
type job struct {
	handle windows.Handle
}

const (
	jobObjectExtendedLimitInformation = 9
	jobObjectLimitKillOnJobClose      = 0x2000
)

type jobObjectBasicLimitInformation struct {
	PerProcessUserTimeLimit int64
	PerJobUserTimeLimit     int64
	LimitFlags              uint32
	MinimumWorkingSetSize   uintptr
	MaximumWorkingSetSize   uintptr
	ActiveProcessLimit      uint32
	Affinity                uintptr
	PriorityClass           uint32
	SchedulingClass         uint32
}

type ioCounters struct {
	ReadOperationCount  uint64
	WriteOperationCount uint64
	OtherOperationCount uint64
	ReadTransferCount   uint64
	WriteTransferCount  uint64
	OtherTransferCount  uint64
}

type jobObjectExtendedLimitInfo struct {
	BasicLimitInformation jobObjectBasicLimitInformation
	IoInfo                ioCounters
	ProcessMemoryLimit    uintptr
	JobMemoryLimit        uintptr
	PeakProcessMemoryUsed uintptr
	PeakJobMemoryUsed     uintptr
}

func newJob() (*job, error) {
	handle, err := windows.CreateJobObject(nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create job object: %w", err)
	}

	info := jobObjectExtendedLimitInfo{
		BasicLimitInformation: jobObjectBasicLimitInformation{
			LimitFlags: jobObjectLimitKillOnJobClose,
		},
	}
	_, err = windows.SetInformationJobObject(
		handle,
		jobObjectExtendedLimitInformation,
		uintptr(unsafe.Pointer(&info)),
		uint32(unsafe.Sizeof(info)),
	)
	if err != nil {
		windows.CloseHandle(handle)
		return nil, fmt.Errorf("failed to configure job object: %w", err)
	}

	return &job{handle: handle}, nil
}

// assign adopts cmd's process into the job object once it has been started.
func (j *job) assign(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return fmt.Errorf("cannot assign unstarted process to job")
	}
	procHandle, err := windows.OpenProcess(windows.PROCESS_SET_QUOTA|windows.PROCESS_TERMINATE, false, uint32(cmd.Process.Pid))
	if err != nil {
		return fmt.Errorf("failed to open process (PID %d): %w", cmd.Process.Pid, err)
	}
	defer windows.CloseHandle(procHandle)

	if err := windows.AssignProcessToJobObject(j.handle, procHandle); err != nil {
		return fmt.Errorf("failed to assign process (PID %d) to job: %w", cmd.Process.Pid, err)
	}
	return nil
}

// close releases the job object handle; because the job was created with
// KILL_ON_JOB_CLOSE, this terminates every process ever assigned to it.
func (j *job) close() {
	windows.CloseHandle(j.handle)
}

// processGroupFlags returns the SysProcAttr flags used to spawn children
// into their own process group so graceful-interrupt signals can target
// them specifically.
func processGroupFlags() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{CreationFlags: windows.CREATE_NEW_PROCESS_GROUP}
}
