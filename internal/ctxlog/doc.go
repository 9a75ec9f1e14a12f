// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog provides a context-aware logger for the shell.
// It uses the slog package for structured logging and supports different log levels.
//
// Diagnostics are written to stderr so they never interleave with the output of
// child processes, which inherit the shell's stdout.
// The default is a pretty console handler to format the log messages in a human-readable way.
package ctxlog
