// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package builtin

import (
	"context"
	"io"
	"maps"
	"slices"

	"github.com/matt-FFFFFF/shell322/internal/history"
)

// Env is what a built-in may touch while it runs.
type Env struct {
	Stdout   io.Writer
	Stderr   io.Writer
	History  *history.Ring
	Builtins *Registry

	quit bool
}

// RequestExit asks the read loop to stop after the current line.
func (e *Env) RequestExit() {
	e.quit = true
}

// ExitRequested reports whether a built-in asked the shell to stop.
func (e *Env) ExitRequested() bool {
	return e.quit
}

// Builtin is a command executed inside the shell process.
// args includes the command name at index zero.
type Builtin interface {
	Run(ctx context.Context, env *Env, args []string) int
}

// Func adapts a plain function to Builtin.
type Func func(ctx context.Context, env *Env, args []string) int

// Run calls f.
func (f Func) Run(ctx context.Context, env *Env, args []string) int {
	return f(ctx, env, args)
}

var _ Builtin = (Func)(nil)

type entry struct {
	builtin  Builtin
	synopsis string
	summary  string
}

// Registry maps names to built-ins.
type Registry struct {
	entries map[string]entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Register adds b under name, replacing any previous registration.
// synopsis and summary are shown by help.
func (r *Registry) Register(name, synopsis, summary string, b Builtin) {
	r.entries[name] = entry{builtin: b, synopsis: synopsis, summary: summary}
}

// Lookup returns the built-in registered under name.
func (r *Registry) Lookup(name string) (Builtin, bool) {
	if r == nil {
		return nil, false
	}

	e, ok := r.entries[name]

	return e.builtin, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}

	return slices.Sorted(maps.Keys(r.entries))
}

// Default returns a registry holding every built-in of the shell.
func Default() *Registry {
	r := NewRegistry()
	r.Register("cd", "cd [dir]", "change the working directory (default $HOME)", Func(Cd))
	r.Register("exit", "exit", "leave the shell", Func(Exit))
	r.Register("help", "help", "show this help", Func(Help))
	r.Register("history", "history [-c]", "list recent command lines, -c clears the list", Func(History))
	r.Register("pwd", "pwd", "print the working directory", Func(Pwd))

	return r
}
