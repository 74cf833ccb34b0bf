// Package process implements the asynchronous subprocess runtime: process
// descriptors/builders, per-stream encoding-aware readers, cooperative
// cancellation (graceful-interrupt-then-force-kill), exit-code gating, and,
// on Windows, job-object containment. Grounded on the teacher's
// pkg/commands/os.go (OSCommand/ExecutableFromString/RunCommandWithOutput)
// generalized to the descriptor+builder+streaming contract this domain
// needs.
package process

import (
	"time"

	"github.com/ModOrganizer2/mob/internal/core/env"
)

// StreamPolicy selects how a stream's output is handled.
type StreamPolicy int

const (
	// ForwardToLog streams lines to the logger as they arrive (default).
	ForwardToLog StreamPolicy = iota
	// Capture buffers lines into the process Result.
	Capture
	// Discard wires the stream to a null sink.
	Discard
	// Inherit connects the stream directly to the parent process.
	Inherit
)

// Encoding selects the per-stream text decoding strategy.
type Encoding int

const (
	// EncodingUTF8 and EncodingUnknown both use the line-based UTF-8 path.
	EncodingUTF8 Encoding = iota
	EncodingUnknown
	// EncodingWindows1252 decodes via the Windows-1252 legacy code page.
	EncodingWindows1252
	// EncodingIBM866 decodes via the IBM866 legacy code page.
	EncodingIBM866
	// EncodingUTF16LE decodes UTF-16 little-endian.
	EncodingUTF16LE
)

// Flags are behavior bits on a Descriptor.
type Flags uint8

const (
	// AllowFailure disables exit-code gating.
	AllowFailure Flags = 1 << iota
	// TerminateOnInterrupt marks a child for the graceful-interrupt-then-kill
	// sequence on cancellation. Run applies that sequence to every child
	// whose context is cancelled, whether or not this flag is set.
	TerminateOnInterrupt
	// IgnoreOutputOnSuccess discards captured output once the command is
	// known to have exited successfully, keeping only failure output.
	IgnoreOutputOnSuccess
)

// Builder constructs a process Descriptor and runs it. Method chaining
// mirrors the teacher's fluent OSCommand helpers and the original's
// ProcessBuilder.
type Builder struct {
	exe         string
	raw         bool
	args        []string
	dir         string
	env         *env.Map
	stdin       []byte
	hasStdin    bool
	stdoutPlan  streamPlan
	stderrPlan  streamPlan
	flags       Flags
	timeout     time.Duration
	hasTimeout  bool
	displayName string
	successCode map[int]struct{}
}

type streamPlan struct {
	policy   StreamPolicy
	encoding Encoding
}

// New creates a Builder for the given executable path or bare name.
// Bare names are resolved lazily at Run time through the executable cache.
func New(exe string) *Builder {
	return &Builder{
		exe:         exe,
		stdoutPlan:  streamPlan{policy: ForwardToLog, encoding: EncodingUTF8},
		stderrPlan:  streamPlan{policy: ForwardToLog, encoding: EncodingUTF8},
		successCode: map[int]struct{}{0: {}},
	}
}

// Which resolves name through the process-wide executable cache immediately,
// returning an error if it cannot be found on PATH.
func Which(name string) (*Builder, error) {
	resolved, err := lookupCached(name)
	if err != nil {
		return nil, err
	}
	return New(resolved), nil
}

// Raw wraps command so it is executed by a platform shell: `pwsh -NoProfile
// -NonInteractive -Command ...` on the native platform, `/bin/sh -c ...`
// elsewhere.
func Raw(command string) *Builder {
	b := New("")
	b.raw = true
	b.args = []string{command}
	return b
}

func (b *Builder) Arg(args ...string) *Builder {
	b.args = append(b.args, args...)
	return b
}

func (b *Builder) Dir(path string) *Builder {
	b.dir = path
	return b
}

func (b *Builder) Env(e *env.Map) *Builder {
	b.env = e
	return b
}

func (b *Builder) Stdin(payload []byte) *Builder {
	b.stdin = payload
	b.hasStdin = true
	return b
}

func (b *Builder) StdoutPolicy(policy StreamPolicy, encoding Encoding) *Builder {
	b.stdoutPlan = streamPlan{policy: policy, encoding: encoding}
	return b
}

func (b *Builder) StderrPolicy(policy StreamPolicy, encoding Encoding) *Builder {
	b.stderrPlan = streamPlan{policy: policy, encoding: encoding}
	return b
}

func (b *Builder) AllowFailure() *Builder {
	b.flags |= AllowFailure
	return b
}

func (b *Builder) WithFlags(f Flags) *Builder {
	b.flags |= f
	return b
}

func (b *Builder) Timeout(d time.Duration) *Builder {
	b.timeout = d
	b.hasTimeout = true
	return b
}

func (b *Builder) DisplayName(name string) *Builder {
	b.displayName = name
	return b
}

// SuccessCodes overrides the default {0} success-code set.
func (b *Builder) SuccessCodes(codes ...int) *Builder {
	b.successCode = make(map[int]struct{}, len(codes))
	for _, c := range codes {
		b.successCode[c] = struct{}{}
	}
	return b
}

func (b *Builder) commandLine() string {
	if b.displayName != "" {
		return b.displayName
	}
	if b.raw {
		return b.args[0]
	}
	s := b.exe
	for _, a := range b.args {
		s += " " + a
	}
	return s
}

// Result is the outcome of a process invocation.
type Result struct {
	ExitCode    int
	Stdout      string
	Stderr      string
	Interrupted bool
}
