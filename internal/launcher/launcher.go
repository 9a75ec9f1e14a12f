// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/matt-FFFFFF/shell322/internal/ctxlog"
	"github.com/matt-FFFFFF/shell322/internal/tokenizer"
)

var (
	// ErrEmptyCommand is returned when asked to launch a command with no tokens.
	ErrEmptyCommand = errors.New("empty command")
	// ErrCouldNotStartProcess is returned when the operating system could not create a process.
	ErrCouldNotStartProcess = errors.New("could not start process")
)

// startProcess is replaced in tests to simulate process creation failures.
var startProcess = os.StartProcess

// Streams are the standard streams handed to a child.
// A nil entry is replaced by the shell's own stream.
type Streams struct {
	Stdin  *os.File
	Stdout *os.File
	Stderr *os.File
}

// StdStreams returns the shell's own standard streams.
func StdStreams() Streams {
	return Streams{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

func (s Streams) withDefaults() Streams {
	if s.Stdin == nil {
		s.Stdin = os.Stdin
	}

	if s.Stdout == nil {
		s.Stdout = os.Stdout
	}

	if s.Stderr == nil {
		s.Stderr = os.Stderr
	}

	return s
}

// Launcher starts external programs.
// The zero value inherits the shell's environment and working directory and
// announces background processes on os.Stdout.
type Launcher struct {
	Out io.Writer // Receives the background process announcement.
	Env []string  // Child environment, nil means the current environment at spawn time.
	Dir string    // Child working directory, empty means the current directory.
}

// Spawn starts cmd and returns a handle that owns the new process.
//
// If the program cannot be found or executed, the reason is written to
// streams.Stderr and a failed handle carrying exit status 127 or 126 is returned
// with a nil error, as if a child had reported the problem and exited.
// An error is returned only for an empty command or when no process could be created.
func (l *Launcher) Spawn(ctx context.Context, cmd tokenizer.Command, streams Streams) (*Handle, error) {
	if cmd.IsEmpty() {
		return nil, ErrEmptyCommand
	}

	streams = streams.withDefaults()
	logger := ctxlog.Logger(ctx).With("command", cmd.Name())

	env := l.environ()

	path, err := LookPath(cmd.Name(), lookupEnv(env, "PATH"))
	if err != nil {
		return l.execFailed(ctx, cmd, streams, err), nil
	}

	logger.Debug("starting process", "path", path, "args", cmd.Args())

	ps, err := startProcess(path, cmd.Argv(), &os.ProcAttr{
		Dir:   l.Dir,
		Env:   env,
		Files: []*os.File{streams.Stdin, streams.Stdout, streams.Stderr},
	})
	if err != nil {
		if isResourceExhausted(err) {
			logger.Error("process creation failed", "error", err)
			return nil, errors.Join(ErrCouldNotStartProcess, err)
		}

		return l.execFailed(ctx, cmd, streams, err), nil
	}

	logger.Debug("process started", "pid", ps.Pid)

	return newHandle(ps, cmd), nil
}

// Run spawns cmd. With wait set it blocks until the child terminates and returns
// its status. Without wait it prints "[BG] Process ID: <pid>", detaches the child
// and returns at once with a zero status.
func (l *Launcher) Run(ctx context.Context, cmd tokenizer.Command, streams Streams, wait bool) (ExitStatus, error) {
	h, err := l.Spawn(ctx, cmd, streams)
	if err != nil {
		return ExitStatus{}, err
	}

	if wait {
		return h.Wait(ctx)
	}

	if h.State() == StateFailed {
		return ExitStatus{}, nil
	}

	fmt.Fprintf(l.out(), "[BG] Process ID: %d\n", h.Pid()) //nolint:errcheck

	return ExitStatus{}, h.Detach(ctx)
}

func (l *Launcher) execFailed(ctx context.Context, cmd tokenizer.Command, streams Streams, err error) *Handle {
	msg, code := describeExecError(err)

	ctxlog.Debug(ctx, "exec failed", "command", cmd.Name(), "error", err, "exitCode", code)
	fmt.Fprintf(streams.Stderr, "%s: %s\n", cmd.Name(), msg) //nolint:errcheck

	return newFailedHandle(cmd, code)
}

func (l *Launcher) out() io.Writer {
	if l.Out == nil {
		return os.Stdout
	}

	return l.Out
}

func (l *Launcher) environ() []string {
	if l.Env == nil {
		return os.Environ()
	}

	return l.Env
}

func lookupEnv(env []string, key string) string {
	prefix := key + "="

	for i := len(env) - 1; i >= 0; i-- {
		if len(env[i]) >= len(prefix) && env[i][:len(prefix)] == prefix {
			return env[i][len(prefix):]
		}
	}

	return ""
}

// isResourceExhausted reports whether err means the process could not be
// duplicated at all, as opposed to the program failing to execute.
func isResourceExhausted(err error) bool {
	return errors.Is(err, syscall.EAGAIN) || errors.Is(err, syscall.ENOMEM)
}
