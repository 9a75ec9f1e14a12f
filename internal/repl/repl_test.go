// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package repl

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/matt-FFFFFF/shell322/internal/ctxlog"
	"github.com/matt-FFFFFF/shell322/internal/dispatch"
	"github.com/matt-FFFFFF/shell322/internal/history"
	"github.com/peterh/liner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type step struct {
	line string
	err  error
}

// scriptedReader replays steps and then reports end of input.
type scriptedReader struct {
	steps    []step
	prompts  []string
	appended []string
}

func (r *scriptedReader) Prompt(prompt string) (string, error) {
	r.prompts = append(r.prompts, prompt)

	if len(r.steps) == 0 {
		return "", io.EOF
	}

	s := r.steps[0]
	r.steps = r.steps[1:]

	return s.line, s.err
}

func (r *scriptedReader) AppendHistory(line string) {
	r.appended = append(r.appended, line)
}

func (r *scriptedReader) Close() error {
	return nil
}

type fakeDispatcher struct {
	lines []string
	exit  map[string]bool
	errs  map[string]error
}

func (d *fakeDispatcher) Dispatch(_ context.Context, line string) (dispatch.Outcome, error) {
	d.lines = append(d.lines, line)
	return dispatch.Outcome{Exit: d.exit[line]}, d.errs[line]
}

func lines(ls ...string) []step {
	steps := make([]step, len(ls))
	for i, l := range ls {
		steps[i] = step{line: l}
	}

	return steps
}

func testContext() context.Context {
	return ctxlog.New(context.Background(), ctxlog.DefaultLogger)
}

func TestRun_UntilEOF(t *testing.T) {
	r := &scriptedReader{steps: lines("echo a", "", "ls -l\n")}
	d := &fakeDispatcher{}
	h := history.New(10)

	s := &Shell{Reader: r, Dispatcher: d, History: h}

	require.NoError(t, s.Run(testContext()))
	assert.Equal(t, []string{"echo a", "", "ls -l"}, d.lines)
	assert.Equal(t, []string{"echo a", "ls -l"}, h.Entries())
	assert.Equal(t, []string{"echo a", "ls -l"}, r.appended)
	assert.Len(t, r.prompts, 4)
	assert.Equal(t, DefaultPrompt, r.prompts[0])
}

func TestRun_StopsOnExit(t *testing.T) {
	r := &scriptedReader{steps: lines("echo a", "exit", "echo never")}
	d := &fakeDispatcher{exit: map[string]bool{"exit": true}}

	s := &Shell{Reader: r, Dispatcher: d, History: history.New(10), Prompt: "$ "}

	require.NoError(t, s.Run(testContext()))
	assert.Equal(t, []string{"echo a", "exit"}, d.lines)
	assert.Equal(t, []string{"$ ", "$ "}, r.prompts)
}

func TestRun_AbortedPromptContinues(t *testing.T) {
	r := &scriptedReader{steps: []step{
		{err: liner.ErrPromptAborted},
		{line: "echo after"},
	}}
	d := &fakeDispatcher{}

	s := &Shell{Reader: r, Dispatcher: d, History: history.New(10)}

	require.NoError(t, s.Run(testContext()))
	assert.Equal(t, []string{"echo after"}, d.lines)
}

func TestRun_ReadError(t *testing.T) {
	boom := errors.New("input/output error")
	r := &scriptedReader{steps: []step{{err: boom}}}

	s := &Shell{Reader: r, Dispatcher: &fakeDispatcher{}}

	err := s.Run(testContext())
	require.ErrorIs(t, err, ErrRead)
	require.ErrorIs(t, err, boom)
}

func TestRun_DispatchErrorIsReported(t *testing.T) {
	var stderr bytes.Buffer

	r := &scriptedReader{steps: lines("a | b | c", "echo ok")}
	d := &fakeDispatcher{errs: map[string]error{"a | b | c": dispatch.ErrSyntax}}

	s := &Shell{Reader: r, Dispatcher: d, History: history.New(10), Stderr: &stderr}

	require.NoError(t, s.Run(testContext()))
	assert.Equal(t, "shell322: syntax error\n", stderr.String())
	assert.Equal(t, []string{"a | b | c", "echo ok"}, d.lines, "loop continues after an error")
}

func TestRunLine_HistoryWindow(t *testing.T) {
	d := &fakeDispatcher{}
	h := history.New(2)
	s := &Shell{Dispatcher: d, History: h}

	for _, l := range []string{"one", "two", "three"} {
		assert.False(t, s.RunLine(testContext(), l))
	}

	assert.Equal(t, []string{"two", "three"}, h.Entries())
}
