package process

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"sync"
	"time"

	"github.com/mgutz/str"
	"github.com/sirupsen/logrus"
)

const gracePeriod = 500 * time.Millisecond

// Run blocks until the child exits or the descriptor's timeout elapses. A
// timeout triggers kill-and-wait and returns the post-kill exit status
// without setting Interrupted.
func (b *Builder) Run(ctx context.Context, log *logrus.Entry, dryRun bool) (*Result, error) {
	return b.run(ctx, log, dryRun)
}

// RunWithCancellation is Run with an explicit cancellation-aware ctx; kept
// as a distinct name for fidelity with the two entry points named in
// SPEC_FULL.md §4.1 (plain Run does not require ctx to carry cancellation,
// but both paths share one implementation here).
func (b *Builder) RunWithCancellation(ctx context.Context, log *logrus.Entry, dryRun bool) (*Result, error) {
	return b.run(ctx, log, dryRun)
}

func (b *Builder) run(ctx context.Context, log *logrus.Entry, dryRun bool) (*Result, error) {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	if dryRun {
		log.Infof("[dry-run] would run: %s", b.commandLine())
		return &Result{ExitCode: 0}, nil
	}

	exePath := b.exe
	if !b.raw && exePath != "" {
		if resolved, err := lookupCached(exePath); err == nil {
			exePath = resolved
		}
	}

	var cmd *exec.Cmd
	if b.raw {
		cmd = rawShellCmd(b.args[0])
	} else {
		cmd = exec.Command(exePath, b.args...)
	}
	cmd.Dir = b.dir
	if b.env != nil {
		cmd.Env = b.env.Strings()
	}
	cmd.SysProcAttr = processGroupFlags()

	if b.hasStdin {
		cmd.Stdin = bytes.NewReader(b.stdin)
	}

	var stdoutPipe, stderrPipe io.ReadCloser
	var err error

	switch b.stdoutPlan.policy {
	case ForwardToLog, Capture:
		stdoutPipe, err = cmd.StdoutPipe()
		if err != nil {
			return nil, fmt.Errorf("failed to spawn process '%s': %w", b.commandLine(), err)
		}
	case Inherit:
		cmd.Stdout = os.Stdout
	case Discard:
		cmd.Stdout = io.Discard
	}

	switch b.stderrPlan.policy {
	case ForwardToLog, Capture:
		stderrPipe, err = cmd.StderrPipe()
		if err != nil {
			return nil, fmt.Errorf("failed to spawn process '%s': %w", b.commandLine(), err)
		}
	case Inherit:
		cmd.Stderr = os.Stderr
	case Discard:
		cmd.Stderr = io.Discard
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to spawn process '%s': %w", b.commandLine(), err)
	}

	j, jobErr := newJob()
	if jobErr == nil {
		_ = j.assign(cmd)
		defer j.close()
	}

	var wg sync.WaitGroup
	var stdoutCaptured, stderrCaptured *string

	if stdoutPipe != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stdoutCaptured = pumpStream(stdoutPipe, b.stdoutPlan, log, "stdout")
		}()
	}
	if stderrPipe != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stderrCaptured = pumpStream(stderrPipe, b.stderrPlan, log, "stderr")
		}()
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	var timeoutCh <-chan time.Time
	if b.hasTimeout {
		timer := time.NewTimer(b.timeout)
		defer timer.Stop()
		timeoutCh = timer.C
	}

	interrupted := false
	var waitErr error

	select {
	case waitErr = <-done:
	case <-timeoutCh:
		_ = forceKill(cmd)
		waitErr = <-done
	case <-ctx.Done():
		_ = sendGracefulInterrupt(cmd)
		select {
		case waitErr = <-done:
		case <-time.After(gracePeriod):
			_ = forceKill(cmd)
			waitErr = <-done
		}
		interrupted = true
	}

	wg.Wait()

	result := &Result{Interrupted: interrupted}
	if stdoutCaptured != nil {
		result.Stdout = *stdoutCaptured
	}
	if stderrCaptured != nil {
		result.Stderr = *stderrCaptured
	}
	result.ExitCode = exitCodeOf(cmd, waitErr)

	if result.Interrupted {
		return result, nil
	}

	if b.flags&AllowFailure == 0 {
		if _, ok := b.successCode[result.ExitCode]; !ok {
			return result, fmt.Errorf("process '%s' exited with code %d", b.commandLine(), result.ExitCode)
		}
	}

	if b.flags&IgnoreOutputOnSuccess != 0 {
		if _, ok := b.successCode[result.ExitCode]; ok {
			result.Stdout, result.Stderr = "", ""
		}
	}

	return result, nil
}

func exitCodeOf(cmd *exec.Cmd, waitErr error) int {
	if cmd.ProcessState != nil {
		return cmd.ProcessState.ExitCode()
	}
	if waitErr != nil {
		return -1
	}
	return 0
}

// FromShellString tokenizes a shell-style command string into argv the way
// the teacher's ExecutableFromString does, via mgutz/str.ToArgv.
func FromShellString(command string) *Builder {
	argv := str.ToArgv(command)
	if len(argv) == 0 {
		return New("")
	}
	return New(argv[0]).Arg(argv[1:]...)
}

func rawShellCmd(command string) *exec.Cmd {
	if runtime.GOOS == "windows" {
		return exec.Command("pwsh", "-NoProfile", "-NonInteractive", "-Command", command)
	}
	return exec.Command("/bin/sh", "-c", command)
}
