// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package launcher

import (
	"context"
	"errors"
	"os"
	"sync"

	"github.com/matt-FFFFFF/shell322/internal/ctxlog"
	"github.com/matt-FFFFFF/shell322/internal/tokenizer"
)

var (
	// ErrDetached is returned when waiting on a handle whose process was detached.
	ErrDetached = errors.New("process was detached")
	// ErrAlreadyWaiting is returned when a second caller waits on a handle that is being waited on.
	ErrAlreadyWaiting = errors.New("process is already being waited on")
	// ErrNotRunning is returned when detaching a handle that does not own a live process.
	ErrNotRunning = errors.New("process is not running")
	// ErrWait is returned when the operating system could not report the process status.
	ErrWait = errors.New("failed to wait for process")
)

// State is the ownership state of a Handle.
type State int

const (
	// StateUntaken means the process is running and nobody has waited on or detached it yet.
	StateUntaken State = iota
	// StateWaiting means a caller is blocked waiting for the process to terminate.
	StateWaiting
	// StateReaped means the termination status has been collected.
	StateReaped
	// StateDetached means ownership was relinquished; the status will never be reported.
	StateDetached
	// StateFailed means the program could not be executed; the status is synthetic.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUntaken:
		return "untaken"
	case StateWaiting:
		return "waiting"
	case StateReaped:
		return "reaped"
	case StateDetached:
		return "detached"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Handle represents one spawned child.
type Handle struct {
	mu      sync.Mutex
	process *os.Process
	command tokenizer.Command
	state   State
	status  ExitStatus
}

func newHandle(process *os.Process, cmd tokenizer.Command) *Handle {
	return &Handle{
		process: process,
		command: cmd,
		state:   StateUntaken,
	}
}

func newFailedHandle(cmd tokenizer.Command, code int) *Handle {
	return &Handle{
		command: cmd,
		state:   StateFailed,
		status:  exitedWith(code),
	}
}

// Pid returns the process id, or 0 when the program never started.
func (h *Handle) Pid() int {
	if h.process == nil {
		return 0
	}

	return h.process.Pid
}

// Command returns the command the handle was spawned for.
func (h *Handle) Command() tokenizer.Command {
	return h.command
}

// State returns the current ownership state.
func (h *Handle) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.state
}

// Wait blocks until the process terminates and returns its status.
// There is no timeout: ctx only supplies the logger.
// Waiting on an already reaped or failed handle returns the recorded status.
func (h *Handle) Wait(ctx context.Context) (ExitStatus, error) {
	h.mu.Lock()

	switch h.state {
	case StateReaped, StateFailed:
		defer h.mu.Unlock()
		return h.status, nil
	case StateDetached:
		h.mu.Unlock()
		return ExitStatus{}, ErrDetached
	case StateWaiting:
		h.mu.Unlock()
		return ExitStatus{}, ErrAlreadyWaiting
	}

	h.state = StateWaiting
	h.mu.Unlock()

	logger := ctxlog.Logger(ctx).With("pid", h.process.Pid, "command", h.command.Name())
	logger.Debug("waiting for process to finish")

	ps, err := h.process.Wait()

	h.mu.Lock()
	defer h.mu.Unlock()

	h.state = StateReaped
	h.status = statusFromState(ps)

	if err != nil {
		logger.Error("wait failed", "error", err)
		return h.status, errors.Join(ErrWait, err)
	}

	logger.Debug("process finished", "status", h.status.String())

	return h.status, nil
}

// Detach relinquishes ownership of the process. The caller will never learn its
// status; a background reaper collects it so the child does not linger as a zombie.
func (h *Handle) Detach(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.state != StateUntaken {
		return ErrNotRunning
	}

	h.state = StateDetached

	go reap(ctx, h.process, h.command)

	return nil
}

func reap(ctx context.Context, process *os.Process, cmd tokenizer.Command) {
	ps, err := process.Wait()
	if err != nil {
		ctxlog.Debug(ctx, "background reap failed", "pid", process.Pid, "error", err)
		return
	}

	ctxlog.Debug(ctx, "background process finished",
		"pid", process.Pid,
		"command", cmd.Name(),
		"status", statusFromState(ps).String())
}
