// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package dispatch classifies an input line into one of the shell's control
// forms and routes it to the matching executor.
//
// Operators are recognised in a fixed order: "&&" first, then "|", then a
// trailing "&". Each line may use at most one operator; anything else is a
// syntax error.
package dispatch
