// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package andexec

import (
	"context"

	"github.com/matt-FFFFFF/shell322/internal/ctxlog"
	"github.com/matt-FFFFFF/shell322/internal/launcher"
	"github.com/matt-FFFFFF/shell322/internal/tokenizer"
)

// Runner runs a command to completion.
type Runner interface {
	Run(ctx context.Context, cmd tokenizer.Command, streams launcher.Streams, wait bool) (launcher.ExitStatus, error)
}

// Executor runs two commands strictly one after the other.
type Executor struct {
	Runner    Runner
	Tokenizer tokenizer.Tokenizer
}

// New returns an Executor that runs commands through l.
func New(l *launcher.Launcher, t tokenizer.Tokenizer) *Executor {
	return &Executor{Runner: l, Tokenizer: t}
}

// Run executes left in the foreground and, if it succeeded, right in the
// foreground. The status of the last command that ran is returned.
// An empty left side counts as a failure and nothing runs.
func (e *Executor) Run(ctx context.Context, left, right string, streams launcher.Streams) (launcher.ExitStatus, error) {
	leftCmd := e.Tokenizer.Split(left)
	if leftCmd.IsEmpty() {
		ctxlog.Debug(ctx, "left side of && is empty, skipping")
		return launcher.ExitStatus{}, nil
	}

	status, err := e.Runner.Run(ctx, leftCmd, streams, true)
	if err != nil {
		return status, err
	}

	if !status.Success() {
		ctxlog.Debug(ctx, "left side of && failed, skipping right side",
			"command", leftCmd.Name(), "status", status.String())
		return status, nil
	}

	rightCmd := e.Tokenizer.Split(right)
	if rightCmd.IsEmpty() {
		return status, nil
	}

	return e.Runner.Run(ctx, rightCmd, streams, true)
}
