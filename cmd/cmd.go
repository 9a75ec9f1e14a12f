// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmd contains the command-line interface (CLI) for the shell.
package cmd

import (
	"context"
	"fmt"

	"github.com/matt-FFFFFF/shell322/internal/builtin"
	"github.com/matt-FFFFFF/shell322/internal/config"
	"github.com/matt-FFFFFF/shell322/internal/ctxlog"
	"github.com/matt-FFFFFF/shell322/internal/dispatch"
	"github.com/matt-FFFFFF/shell322/internal/history"
	"github.com/matt-FFFFFF/shell322/internal/launcher"
	"github.com/matt-FFFFFF/shell322/internal/repl"
	"github.com/matt-FFFFFF/shell322/internal/tokenizer"
	"github.com/urfave/cli/v3"
)

const (
	configFlag      = "config"
	promptFlag      = "prompt"
	historySizeFlag = "history-size"
	maxArgsFlag     = "max-args"
	commandFlag     = "command"
)

// newReader opens the interactive line reader.
var newReader = func() repl.LineReader {
	return repl.NewTerminalReader()
}

// RootCmd is the root command for the CLI.
var RootCmd = NewRootCmd()

// NewRootCmd builds a fresh root command.
func NewRootCmd() *cli.Command {
	return &cli.Command{
		Name:        "shell322",
		Usage:       "a minimal interactive command interpreter",
		Description: "Reads command lines and runs them as child processes. Supports `cmd`, `cmd &`, `cmdA | cmdB` and `cmdA && cmdB`.",
		Version:     fmt.Sprintf("%s (%s)", Version, Commit),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:      configFlag,
				Usage:     "Read settings from a YAML (.yaml, .yml) or HCL (.hcl) file",
				TakesFile: true,
			},
			&cli.StringFlag{
				Name:  promptFlag,
				Usage: "Prompt shown before each line",
			},
			&cli.IntFlag{
				Name:  historySizeFlag,
				Usage: "Number of command lines kept by the history built-in",
			},
			&cli.IntFlag{
				Name:  maxArgsFlag,
				Usage: "Maximum number of tokens kept from a command",
			},
			&cli.StringFlag{
				Name:  commandFlag,
				Usage: "Run a single line and exit",
			},
		},
		Action: actionFunc,
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if cfg.LogLevel != "" {
		level, _ := ctxlog.ParseLevel(cfg.LogLevel)
		ctxlog.LevelVar.Set(level)
	}

	ctxlog.Debug(ctx, "starting shell",
		"prompt", cfg.Prompt,
		"historySize", cfg.HistorySize,
		"maxArgs", cfg.MaxArgs)

	h := history.New(cfg.HistorySize)
	d := dispatch.New(&launcher.Launcher{}, tokenizer.Tokenizer{MaxTokens: cfg.MaxArgs}, builtin.Default(), h)
	shell := &repl.Shell{
		Dispatcher: d,
		History:    h,
		Prompt:     cfg.Prompt,
	}

	if cmd.IsSet(commandFlag) {
		shell.RunLine(ctx, cmd.String(commandFlag))
		return nil
	}

	reader := newReader()
	defer reader.Close() //nolint:errcheck

	shell.Reader = reader

	return shell.Run(ctx)
}

// resolveConfig layers command line flags over the configuration file over the defaults.
func resolveConfig(cmd *cli.Command) (config.Config, error) {
	cfg := config.Default()

	if path := cmd.String(configFlag); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to load configuration %s: %w", path, err)
		}

		cfg = loaded
	}

	if cmd.IsSet(promptFlag) {
		cfg.Prompt = cmd.String(promptFlag)
	}

	if cmd.IsSet(historySizeFlag) {
		cfg.HistorySize = cmd.Int(historySizeFlag)
	}

	if cmd.IsSet(maxArgsFlag) {
		cfg.MaxArgs = cmd.Int(maxArgsFlag)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}
