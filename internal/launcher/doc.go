// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package launcher spawns external programs for the shell.
//
// A program is resolved through PATH the way execvp does it and started with
// the three standard streams chosen by the caller. The returned Handle owns the
// process until it is either waited on or detached. Failures to find or execute
// the program behave like a child that reported the problem on its own error
// stream and exited with 127 or 126; only failures to create a process at all
// are returned as errors.
package launcher
