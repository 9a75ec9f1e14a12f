// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package builtin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	r := Default()
	assert.Equal(t, []string{"cd", "exit", "help", "history", "pwd"}, r.Names())

	for _, name := range r.Names() {
		b, ok := r.Lookup(name)
		require.True(t, ok, name)
		assert.NotNil(t, b, name)
	}

	_, ok := r.Lookup("ls")
	assert.False(t, ok)
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()

	called := 0
	r.Register("noop", "noop", "does nothing", Func(func(_ context.Context, _ *Env, args []string) int {
		called++
		return len(args)
	}))

	b, ok := r.Lookup("noop")
	require.True(t, ok)
	assert.Equal(t, 2, b.Run(testContext(), &Env{}, []string{"noop", "x"}))
	assert.Equal(t, 1, called)
}

func TestRegistry_Nil(t *testing.T) {
	var r *Registry

	_, ok := r.Lookup("cd")
	assert.False(t, ok)
	assert.Empty(t, r.Names())
}
