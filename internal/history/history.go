// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package history keeps the most recent command lines in a fixed-size ring.
package history

import "sync"

// DefaultCapacity is the number of lines kept when no capacity is given.
const DefaultCapacity = 10

// Ring is a bounded, insertion-ordered list of lines.
// Once full, each Add overwrites the oldest entry.
type Ring struct {
	mu    sync.Mutex
	lines []string
	next  int
	count int
}

// New returns a ring holding at most capacity lines.
// A capacity below one selects DefaultCapacity.
func New(capacity int) *Ring {
	if capacity < 1 {
		capacity = DefaultCapacity
	}

	return &Ring{lines: make([]string, capacity)}
}

// Add records line, evicting the oldest entry when the ring is full.
func (r *Ring) Add(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lines[r.next] = line
	r.next = (r.next + 1) % len(r.lines)

	if r.count < len(r.lines) {
		r.count++
	}
}

// Entries returns the stored lines, oldest first.
func (r *Ring) Entries() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0, r.count)
	start := (r.next - r.count + len(r.lines)) % len(r.lines)

	for i := range r.count {
		out = append(out, r.lines[(start+i)%len(r.lines)])
	}

	return out
}

// Len returns the number of stored lines.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.count
}

// Cap returns the maximum number of lines the ring holds.
func (r *Ring) Cap() int {
	return len(r.lines)
}

// Clear removes every entry.
func (r *Ring) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	clear(r.lines)
	r.next = 0
	r.count = 0
}
