// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/matt-FFFFFF/shell322/internal/ctxlog"
	"github.com/matt-FFFFFF/shell322/internal/dispatch"
	"github.com/matt-FFFFFF/shell322/internal/history"
	"github.com/peterh/liner"
)

// DefaultPrompt is shown before each line.
const DefaultPrompt = "shell322> "

// ErrRead is returned when the input could not be read for a reason other than end of input.
var ErrRead = errors.New("error reading line")

// LineReader supplies input lines. *liner.State satisfies it.
type LineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(line string)
	Close() error
}

var _ LineReader = (*liner.State)(nil)

// Dispatcher runs a single line.
type Dispatcher interface {
	Dispatch(ctx context.Context, line string) (dispatch.Outcome, error)
}

// NewTerminalReader returns a line editor on the process terminal.
// Ctrl+C abandons the current line. Without a terminal it reads plain lines.
func NewTerminalReader() *liner.State {
	l := liner.NewLiner()
	l.SetCtrlCAborts(true)

	return l
}

// Shell ties a reader to a dispatcher.
type Shell struct {
	Reader     LineReader
	Dispatcher Dispatcher
	History    *history.Ring
	Prompt     string
	Stderr     io.Writer
}

// Run reads and executes lines until the exit built-in runs or input ends.
// Both end the loop with a nil error.
func (s *Shell) Run(ctx context.Context) error {
	for {
		line, err := s.Reader.Prompt(s.prompt())

		switch {
		case errors.Is(err, io.EOF):
			ctxlog.Debug(ctx, "end of input")
			return nil
		case errors.Is(err, liner.ErrPromptAborted):
			continue
		case err != nil:
			return errors.Join(ErrRead, err)
		}

		if s.RunLine(ctx, line) {
			return nil
		}
	}
}

// RunLine records line in the history and executes it. Errors are reported on
// the error stream. It returns true when the line asked the shell to stop.
func (s *Shell) RunLine(ctx context.Context, line string) bool {
	line = strings.TrimRight(line, "\r\n")

	if strings.TrimSpace(line) != "" {
		if s.History != nil {
			s.History.Add(line)
		}

		if s.Reader != nil {
			s.Reader.AppendHistory(line)
		}
	}

	out, err := s.Dispatcher.Dispatch(ctx, line)
	if err != nil {
		ctxlog.Debug(ctx, "dispatch failed", "line", line, "error", err)
		fmt.Fprintf(s.stderr(), "shell322: %v\n", err) //nolint:errcheck
	}

	return out.Exit
}

func (s *Shell) prompt() string {
	if s.Prompt == "" {
		return DefaultPrompt
	}

	return s.Prompt
}

func (s *Shell) stderr() io.Writer {
	if s.Stderr == nil {
		return os.Stderr
	}

	return s.Stderr
}
