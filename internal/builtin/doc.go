// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package builtin implements the commands the shell runs in its own process:
// cd, pwd, history, exit and help.
//
// Built-ins follow the shell's exit status convention: zero on success, one on
// failure, with a diagnostic written to the error stream.
package builtin
