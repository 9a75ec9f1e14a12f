// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tokenizer

import (
	"slices"
	"strings"
)

// DefaultMaxTokens is the token limit used by the zero value of Tokenizer.
const DefaultMaxTokens = 64

// Command is an immutable argument vector. The first token is the program name.
// Its length marks the end of the argument list; there is no sentinel entry.
type Command struct {
	argv []string
}

// NewCommand builds a Command from already split tokens. The slice is copied.
func NewCommand(argv ...string) Command {
	return Command{argv: slices.Clone(argv)}
}

// Name returns the program name, or "" for an empty command.
func (c Command) Name() string {
	if len(c.argv) == 0 {
		return ""
	}

	return c.argv[0]
}

// Args returns a copy of the arguments following the program name.
func (c Command) Args() []string {
	if len(c.argv) < 2 {
		return nil
	}

	return slices.Clone(c.argv[1:])
}

// Argv returns a copy of the full argument vector including the program name.
func (c Command) Argv() []string {
	return slices.Clone(c.argv)
}

// Len returns the number of tokens.
func (c Command) Len() int {
	return len(c.argv)
}

// IsEmpty reports whether the command has no tokens.
func (c Command) IsEmpty() bool {
	return len(c.argv) == 0
}

// String joins the tokens with single spaces.
func (c Command) String() string {
	return strings.Join(c.argv, " ")
}

// Tokenizer splits lines into commands.
type Tokenizer struct {
	// MaxTokens bounds the number of tokens kept from a line. Excess tokens are
	// dropped silently. Zero selects DefaultMaxTokens, a negative value means no limit.
	MaxTokens int
}

// Split breaks line on runs of space, tab, carriage return and newline.
func (t Tokenizer) Split(line string) Command {
	fields := strings.FieldsFunc(line, isSeparator)

	if limit := t.limit(); limit > 0 && len(fields) > limit {
		fields = fields[:limit]
	}

	return Command{argv: fields}
}

func (t Tokenizer) limit() int {
	if t.MaxTokens == 0 {
		return DefaultMaxTokens
	}

	return t.MaxTokens
}

// Split tokenizes line with the default token limit.
func Split(line string) Command {
	return Tokenizer{}.Split(line)
}

func isSeparator(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r':
		return true
	default:
		return false
	}
}
