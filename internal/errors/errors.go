// Package errors implements the closed error taxonomy consumed throughout
// mob: a small set of typed sub-errors (VCS, network, config, task, process,
// filesystem, job-container, I/O, other) plus a fatal "bail" variant, each
// wrapping an underlying cause and carrying enough context to print a useful
// chain at the top level.
package errors

import (
	"fmt"

	goerrors "github.com/go-errors/errors"
)

// Kind identifies which branch of the taxonomy an error belongs to.
type Kind int

const (
	KindBailed Kind = iota
	KindGit
	KindNetwork
	KindConfig
	KindTask
	KindProcess
	KindFs
	KindJob
	KindIO
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindBailed:
		return "fatal"
	case KindGit:
		return "git"
	case KindNetwork:
		return "network"
	case KindConfig:
		return "config"
	case KindTask:
		return "task"
	case KindProcess:
		return "process"
	case KindFs:
		return "filesystem"
	case KindJob:
		return "job"
	case KindIO:
		return "io"
	default:
		return "other"
	}
}

// MobError is the top-level error type. It wraps a Kind-specific cause and
// attaches a stack trace at the boundary where it was first constructed, in
// the same spirit as the teacher's commands.WrapError.
type MobError struct {
	Kind  Kind
	Msg   string
	Cause error
	stack *goerrors.Error
}

func (e *MobError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s error: %s: %v", e.Kind, e.Msg, e.Cause)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Msg)
}

func (e *MobError) Unwrap() error { return e.Cause }

// ErrorStack renders the full cause chain plus the stack trace captured at
// construction, mirroring go-errors/errors.Error.ErrorStack() used by the
// teacher for its top-level Fatalf path.
func (e *MobError) ErrorStack() string {
	if e.stack != nil {
		return e.stack.ErrorStack()
	}
	return e.Error()
}

func newErr(kind Kind, msg string, cause error) *MobError {
	e := &MobError{Kind: kind, Msg: msg, Cause: cause}
	e.stack = goerrors.Wrap(e, 1)
	return e
}

// Bail constructs a fatal error that should terminate the application.
func Bail(format string, args ...any) *MobError {
	return newErr(KindBailed, fmt.Sprintf(format, args...), nil)
}

func Git(msg string, cause error) *MobError     { return newErr(KindGit, msg, cause) }
func Network(msg string, cause error) *MobError { return newErr(KindNetwork, msg, cause) }
func Config(msg string, cause error) *MobError  { return newErr(KindConfig, msg, cause) }
func Task(msg string, cause error) *MobError    { return newErr(KindTask, msg, cause) }
func Process(msg string, cause error) *MobError { return newErr(KindProcess, msg, cause) }
func Fs(msg string, cause error) *MobError      { return newErr(KindFs, msg, cause) }
func Job(msg string, cause error) *MobError     { return newErr(KindJob, msg, cause) }
func IO(msg string, cause error) *MobError      { return newErr(KindIO, msg, cause) }
func Other(msg string, cause error) *MobError   { return newErr(KindOther, msg, cause) }

// Is reports whether err is a MobError of the given kind, unwrapping any
// wrapping along the way.
func Is(err error, kind Kind) bool {
	var me *MobError
	for err != nil {
		if m, ok := err.(*MobError); ok {
			me = m
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return me != nil && me.Kind == kind
}

// Wrap attaches a stack trace to an arbitrary error the way the teacher's
// WrapError does, returning nil for a nil input.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	return goerrors.Wrap(err, 1)
}
