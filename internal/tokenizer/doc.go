// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package tokenizer splits a raw input line into a Command, the argument vector
// handed to the process launcher. Splitting happens on runs of whitespace only:
// there is no quoting or escaping, so quote characters are ordinary characters.
package tokenizer
