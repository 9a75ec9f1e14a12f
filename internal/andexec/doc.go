// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package andexec runs `left && right`: the right command runs only when the
// left one terminated normally with exit code zero.
package andexec
