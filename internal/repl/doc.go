// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package repl is the shell's read loop: prompt, read a line, record it in the
// history and hand it to the dispatcher until exit or end of input.
package repl
