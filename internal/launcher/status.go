// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package launcher

import (
	"fmt"
	"os"
	"syscall"
)

const (
	// ExitCodeNotExecutable is the status of a child whose program was found but could not be executed.
	ExitCodeNotExecutable = 126
	// ExitCodeNotFound is the status of a child whose program could not be found.
	ExitCodeNotFound = 127
)

// ExitStatus describes how a process terminated.
type ExitStatus struct {
	Exited bool   // True if the process terminated normally.
	Code   int    // Exit code, -1 when terminated by a signal.
	Signal string // Name of the terminating signal, empty on normal termination.
}

// Success reports whether the process terminated normally with code zero.
func (s ExitStatus) Success() bool {
	return s.Exited && s.Code == 0
}

func (s ExitStatus) String() string {
	switch {
	case s.Signal != "":
		return "signal: " + s.Signal
	case s.Exited:
		return fmt.Sprintf("exit status %d", s.Code)
	default:
		return "unknown"
	}
}

func exitedWith(code int) ExitStatus {
	return ExitStatus{Exited: true, Code: code}
}

func statusFromState(state *os.ProcessState) ExitStatus {
	if state == nil {
		return ExitStatus{Code: -1}
	}

	status := ExitStatus{
		Exited: state.Exited(),
		Code:   state.ExitCode(),
	}

	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		status.Signal = ws.Signal().String()
	}

	return status
}
