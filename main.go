// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main is the entry point for the shell322 command interpreter.
package main

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/shell322/cmd"
	"github.com/matt-FFFFFF/shell322/internal/ctxlog"
)

func main() {
	ctx := ctxlog.New(context.Background(), ctxlog.DefaultLogger)

	if err := cmd.RootCmd.Run(ctx, os.Args); err != nil {
		ctxlog.Error(ctx, "command failed", "error", err)
		os.Exit(1)
	}

	ctxlog.Debug(ctx, "shell exited")
	os.Exit(0)
}
