// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package builtin

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/matt-FFFFFF/shell322/internal/ctxlog"
	"github.com/pborman/getopt/v2"
)

// EnvHome is the variable cd falls back to without an argument.
const EnvHome = "HOME"

// ErrHomeNotSet is reported by cd when no directory is given and HOME is empty.
var ErrHomeNotSet = errors.New("HOME not set")

var (
	chdir = os.Chdir
	getwd = os.Getwd
)

// Cd changes the working directory of the shell and updates PWD.
func Cd(ctx context.Context, env *Env, args []string) int {
	var dir string

	switch len(args) {
	case 1:
		dir = os.Getenv(EnvHome)
		if dir == "" {
			fmt.Fprintf(env.Stderr, "%s: %v\n", args[0], ErrHomeNotSet) //nolint:errcheck
			return 1
		}
	case 2:
		dir = args[1]
	default:
		fmt.Fprintf(env.Stderr, "%s: too many arguments\n", args[0]) //nolint:errcheck
		return 1
	}

	if err := chdir(dir); err != nil {
		fmt.Fprintf(env.Stderr, "%s: %v\n", args[0], err) //nolint:errcheck
		return 1
	}

	cwd, err := getwd()
	if err != nil {
		ctxlog.Warn(ctx, "cannot determine new working directory", "error", err)
		return 0
	}

	if err := os.Setenv("PWD", cwd); err != nil {
		ctxlog.Warn(ctx, "cannot update PWD", "error", err)
	}

	ctxlog.Debug(ctx, "changed directory", "dir", cwd)

	return 0
}

// Pwd prints the working directory of the shell.
func Pwd(_ context.Context, env *Env, args []string) int {
	cwd, err := getwd()
	if err != nil {
		fmt.Fprintf(env.Stderr, "%s: %v\n", args[0], err) //nolint:errcheck
		return 1
	}

	fmt.Fprintln(env.Stdout, cwd) //nolint:errcheck

	return 0
}

// Exit stops the shell.
func Exit(_ context.Context, env *Env, _ []string) int {
	env.RequestExit()
	return 0
}

// History lists the recorded command lines as "[n] line", oldest first.
// With -c the list is cleared instead.
func History(_ context.Context, env *Env, args []string) int {
	opts := getopt.New()
	clearOpt := opts.Bool('c', "clear the history by deleting all entries")
	helpOpt := opts.BoolLong("help", 'h', "show help and exit")

	if err := opts.Getopt(args, nil); err != nil || *helpOpt {
		w := env.Stderr
		if err != nil {
			fmt.Fprintln(w, err) //nolint:errcheck
		}

		fmt.Fprintln(w, "usage: history [-c]")                         //nolint:errcheck
		fmt.Fprintln(w, "Display the history list with line numbers.") //nolint:errcheck
		fmt.Fprintln(w, "  -c  clear the history list")                //nolint:errcheck

		if err != nil {
			return 1
		}

		return 0
	}

	if env.History == nil {
		return 0
	}

	if *clearOpt {
		env.History.Clear()
		return 0
	}

	for i, line := range env.History.Entries() {
		fmt.Fprintf(env.Stdout, "[%d] %s\n", i+1, line) //nolint:errcheck
	}

	return 0
}

// Help describes the control forms and lists the built-ins.
func Help(_ context.Context, env *Env, _ []string) int {
	w := env.Stdout

	fmt.Fprintln(w, "shell322, a minimal command interpreter.") //nolint:errcheck
	fmt.Fprintln(w)                                             //nolint:errcheck
	fmt.Fprintln(w, "Control forms:")                           //nolint:errcheck

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  cmd\trun cmd in the foreground")                               //nolint:errcheck
	fmt.Fprintln(tw, "  cmd &\trun cmd in the background")                             //nolint:errcheck
	fmt.Fprintln(tw, "  cmdA | cmdB\tconnect the output of cmdA to the input of cmdB") //nolint:errcheck
	fmt.Fprintln(tw, "  cmdA && cmdB\trun cmdB only if cmdA succeeds")                 //nolint:errcheck
	tw.Flush()                                                                         //nolint:errcheck

	if env.Builtins == nil {
		return 0
	}

	fmt.Fprintln(w)                       //nolint:errcheck
	fmt.Fprintln(w, "Built-in commands:") //nolint:errcheck

	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, name := range env.Builtins.Names() {
		e := env.Builtins.entries[name]
		fmt.Fprintf(tw, "  %s\t%s\n", e.synopsis, e.summary) //nolint:errcheck
	}
	tw.Flush() //nolint:errcheck

	return 0
}
