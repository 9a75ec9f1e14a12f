// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package dispatch

import (
	"context"
	"io"
	"os"

	"github.com/matt-FFFFFF/shell322/internal/andexec"
	"github.com/matt-FFFFFF/shell322/internal/builtin"
	"github.com/matt-FFFFFF/shell322/internal/ctxlog"
	"github.com/matt-FFFFFF/shell322/internal/history"
	"github.com/matt-FFFFFF/shell322/internal/launcher"
	"github.com/matt-FFFFFF/shell322/internal/pipeexec"
	"github.com/matt-FFFFFF/shell322/internal/tokenizer"
)

// Outcome reports what a dispatched line did.
type Outcome struct {
	Form   Form
	Status launcher.ExitStatus // Status of the last foreground command, zero for pipes and background jobs.
	Exit   bool                // Set when the line asked the shell to stop.
}

// Dispatcher routes lines to built-ins and executors.
type Dispatcher struct {
	Launcher  *launcher.Launcher
	Tokenizer tokenizer.Tokenizer
	Builtins  *builtin.Registry
	History   *history.Ring
	Streams   launcher.Streams
}

// New returns a Dispatcher wired to the shell's standard streams.
func New(l *launcher.Launcher, t tokenizer.Tokenizer, builtins *builtin.Registry, h *history.Ring) *Dispatcher {
	return &Dispatcher{
		Launcher:  l,
		Tokenizer: t,
		Builtins:  builtins,
		History:   h,
		Streams:   launcher.StdStreams(),
	}
}

// Dispatch parses line and runs it. Blank commands are ignored without error.
// Built-ins are recognised in the plain and background forms and always run in
// the shell process in the foreground.
func (d *Dispatcher) Dispatch(ctx context.Context, line string) (Outcome, error) {
	p, err := Parse(line)
	if err != nil {
		return Outcome{}, err
	}

	ctx = ctxlog.New(ctx, ctxlog.Logger(ctx).With("form", p.Form.String()))
	out := Outcome{Form: p.Form}

	switch p.Form {
	case FormAnd:
		out.Status, err = andexec.New(d.Launcher, d.Tokenizer).Run(ctx, p.Left, p.Right, d.Streams)
		return out, err
	case FormPipe:
		return out, pipeexec.New(d.Launcher, d.Tokenizer).Run(ctx, p.Left, p.Right, d.Streams)
	}

	cmd := d.Tokenizer.Split(p.Left)
	if cmd.IsEmpty() {
		return out, nil
	}

	if b, ok := d.Builtins.Lookup(cmd.Name()); ok {
		return d.runBuiltin(ctx, b, cmd, out)
	}

	out.Status, err = d.Launcher.Run(ctx, cmd, d.Streams, p.Form == FormPlain)

	return out, err
}

func (d *Dispatcher) runBuiltin(ctx context.Context, b builtin.Builtin, cmd tokenizer.Command, out Outcome) (Outcome, error) {
	ctxlog.Debug(ctx, "running built-in", "name", cmd.Name())

	env := &builtin.Env{
		Stdout:   writerOr(d.Streams.Stdout, os.Stdout),
		Stderr:   writerOr(d.Streams.Stderr, os.Stderr),
		History:  d.History,
		Builtins: d.Builtins,
	}

	code := b.Run(ctx, env, cmd.Argv())
	out.Status = launcher.ExitStatus{Exited: true, Code: code}
	out.Exit = env.ExitRequested()

	return out, nil
}

func writerOr(f *os.File, fallback *os.File) io.Writer {
	if f == nil {
		return fallback
	}

	return f
}
