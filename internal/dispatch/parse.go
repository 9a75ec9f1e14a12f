// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package dispatch

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSyntax is returned for lines that combine or repeat operators.
var ErrSyntax = errors.New("syntax error")

const (
	opAnd        = "&&"
	opPipe       = "|"
	opBackground = "&"
)

// Form is the control form of a line.
type Form int

const (
	// FormPlain runs one command in the foreground.
	FormPlain Form = iota
	// FormBackground runs one command without waiting for it.
	FormBackground
	// FormPipe connects two commands with a pipe.
	FormPipe
	// FormAnd runs the second command only if the first succeeds.
	FormAnd
)

func (f Form) String() string {
	switch f {
	case FormPlain:
		return "plain"
	case FormBackground:
		return "background"
	case FormPipe:
		return "pipe"
	case FormAnd:
		return "and"
	default:
		return "unknown"
	}
}

// Parsed is a classified line. Right is only set for FormPipe and FormAnd.
type Parsed struct {
	Form  Form
	Left  string
	Right string
}

// Parse classifies line. The operator text is removed; the command text on
// either side is returned untokenized.
func Parse(line string) (Parsed, error) {
	switch {
	case strings.Contains(line, opAnd):
		return parseAnd(line)
	case strings.Contains(line, opPipe):
		return parsePipe(line)
	case strings.Contains(line, opBackground):
		return parseBackground(line)
	default:
		return Parsed{Form: FormPlain, Left: line}, nil
	}
}

func parseAnd(line string) (Parsed, error) {
	if strings.Count(line, opAnd) > 1 {
		return Parsed{}, syntaxError("only one %q is allowed", opAnd)
	}

	left, right, _ := strings.Cut(line, opAnd)

	if strings.Contains(line, opPipe) {
		return Parsed{}, syntaxError("%q cannot be combined with %q", opAnd, opPipe)
	}

	if strings.Contains(left, opBackground) || strings.Contains(right, opBackground) {
		return Parsed{}, syntaxError("%q cannot be combined with %q", opAnd, opBackground)
	}

	return Parsed{Form: FormAnd, Left: left, Right: right}, nil
}

func parsePipe(line string) (Parsed, error) {
	if strings.Count(line, opPipe) > 1 {
		return Parsed{}, syntaxError("only one %q is allowed", opPipe)
	}

	if strings.Contains(line, opBackground) {
		return Parsed{}, syntaxError("%q cannot be combined with %q", opPipe, opBackground)
	}

	left, right, _ := strings.Cut(line, opPipe)

	return Parsed{Form: FormPipe, Left: left, Right: right}, nil
}

func parseBackground(line string) (Parsed, error) {
	if strings.Count(line, opBackground) > 1 {
		return Parsed{}, syntaxError("only one %q is allowed", opBackground)
	}

	cmd, rest, _ := strings.Cut(line, opBackground)
	if strings.TrimSpace(rest) != "" {
		return Parsed{}, syntaxError("%q must end the line", opBackground)
	}

	return Parsed{Form: FormBackground, Left: cmd}, nil
}

func syntaxError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrSyntax, fmt.Sprintf(format, args...))
}
