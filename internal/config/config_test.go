// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"testing"

	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubFs(t *testing.T, files map[string]string) {
	t.Helper()

	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
	}

	stubs := gostub.Stub(&FsFactory, func() afero.Fs {
		return fs
	})
	t.Cleanup(stubs.Reset)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "shell322> ", cfg.Prompt)
	assert.Equal(t, 10, cfg.HistorySize)
	assert.Equal(t, 64, cfg.MaxArgs)
	assert.Empty(t, cfg.LogLevel)
	require.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	stubFs(t, map[string]string{
		"/etc/shell322.yaml": `
prompt: "$ "
history_size: 25
log_level: debug
`,
		"/etc/shell322.yml": `max_args: 8`,
		"/etc/shell322.hcl": `
prompt       = "hcl> "
history_size = 3
max_args     = 16
`,
	})

	tests := []struct {
		name string
		path string
		want Config
	}{
		{"yaml", "/etc/shell322.yaml", Config{Prompt: "$ ", HistorySize: 25, MaxArgs: 64, LogLevel: "debug"}},
		{"yml keeps defaults", "/etc/shell322.yml", Config{Prompt: "shell322> ", HistorySize: 10, MaxArgs: 8}},
		{"hcl", "/etc/shell322.hcl", Config{Prompt: "hcl> ", HistorySize: 3, MaxArgs: 16}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Load(tc.path)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	stubFs(t, map[string]string{
		"/bad/unknown.yaml": "colour: true\n",
		"/bad/broken.yaml":  "prompt: [unterminated\n",
		"/bad/unknown.hcl":  "colour = true\n",
		"/bad/config.toml":  "prompt = \"x\"\n",
		"/bad/range.yaml":   "history_size: 0\nmax_args: -1\nlog_level: loud\n",
	})

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{"missing file", "/bad/missing.yaml", ErrReadConfig},
		{"unknown yaml field", "/bad/unknown.yaml", ErrDecodeConfig},
		{"malformed yaml", "/bad/broken.yaml", ErrDecodeConfig},
		{"unknown hcl attribute", "/bad/unknown.hcl", ErrDecodeConfig},
		{"unsupported extension", "/bad/config.toml", ErrUnsupportedFormat},
		{"out of range", "/bad/range.yaml", ErrInvalidConfig},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(tc.path)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	cfg := Config{HistorySize: 0, MaxArgs: 0, LogLevel: "loud"}

	err := cfg.Validate()
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "history_size must be at least 1")
	assert.Contains(t, err.Error(), "max_args must be at least 1")
	assert.Contains(t, err.Error(), `unknown log_level "loud"`)
}
