// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package pipeexec

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/shell322/internal/ctxlog"
	"github.com/matt-FFFFFF/shell322/internal/launcher"
	"github.com/matt-FFFFFF/shell322/internal/tokenizer"
)

// ErrFailedToCreatePipe is returned when the pipe channel cannot be created.
var ErrFailedToCreatePipe = errors.New("failed to create pipe")

var newPipe = os.Pipe

// Spawner starts a command and hands back a handle to wait on.
type Spawner interface {
	Spawn(ctx context.Context, cmd tokenizer.Command, streams launcher.Streams) (*launcher.Handle, error)
}

// Executor runs `left | right`.
type Executor struct {
	Spawner   Spawner
	Tokenizer tokenizer.Tokenizer
}

// New returns an Executor that spawns through l.
func New(l *launcher.Launcher, t tokenizer.Tokenizer) *Executor {
	return &Executor{Spawner: l, Tokenizer: t}
}

// Run tokenizes both sides, connects the standard output of left to the standard
// input of right and waits for both children. Both are spawned before either is
// waited on, and the shell's copies of the pipe ends are closed in between.
// A side that cannot be spawned does not stop the other one; the problems of
// both sides are returned together.
func (e *Executor) Run(ctx context.Context, left, right string, streams launcher.Streams) error {
	leftCmd := e.Tokenizer.Split(left)
	rightCmd := e.Tokenizer.Split(right)

	r, w, err := newPipe()
	if err != nil {
		return errors.Join(ErrFailedToCreatePipe, err)
	}

	ends := &pipeEnds{r: r, w: w}
	defer ends.Close() //nolint:errcheck

	var result *multierror.Error

	leftStreams := streams
	leftStreams.Stdout = w

	lh, err := e.Spawner.Spawn(ctx, leftCmd, leftStreams)
	if err != nil {
		result = multierror.Append(result, fmt.Errorf("left side of pipe: %w", err))
	}

	rightStreams := streams
	rightStreams.Stdin = r

	rh, err := e.Spawner.Spawn(ctx, rightCmd, rightStreams)
	if err != nil {
		result = multierror.Append(result, fmt.Errorf("right side of pipe: %w", err))
	}

	if err := ends.Close(); err != nil {
		ctxlog.Debug(ctx, "closing pipe ends", "error", err)
	}

	for _, h := range []*launcher.Handle{lh, rh} {
		if h == nil {
			continue
		}

		status, err := h.Wait(ctx)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", h.Command().Name(), err))
			continue
		}

		ctxlog.Debug(ctx, "pipe stage finished", "command", h.Command().Name(), "status", status.String())
	}

	if result != nil {
		result.ErrorFormat = joinErrors
	}

	return result.ErrorOrNil()
}

func joinErrors(errs []error) string {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}

	return strings.Join(msgs, "; ")
}

// pipeEnds releases the shell's side of the pipe exactly once.
type pipeEnds struct {
	once sync.Once
	r, w *os.File
	err  error
}

func (p *pipeEnds) Close() error {
	p.once.Do(func() {
		p.err = errors.Join(p.w.Close(), p.r.Close())
	})

	return p.err
}
