// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package builtin

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/matt-FFFFFF/shell322/internal/ctxlog"
	"github.com/matt-FFFFFF/shell322/internal/history"
	"github.com/prashantv/gostub"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext() context.Context {
	return ctxlog.New(context.Background(), ctxlog.DefaultLogger)
}

func newEnv() (*Env, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer

	return &Env{
		Stdout:   &stdout,
		Stderr:   &stderr,
		History:  history.New(3),
		Builtins: Default(),
	}, &stdout, &stderr
}

func newGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()

	return goldie.New(
		t,
		goldie.WithFixtureDir(filepath.Join("testdata", "golden")),
		goldie.WithDiffEngine(goldie.ColoredDiff),
	)
}

func realPath(t *testing.T, p string) string {
	t.Helper()

	r, err := filepath.EvalSymlinks(p)
	require.NoError(t, err)

	return r
}

func TestCd(t *testing.T) {
	home := t.TempDir()
	target := t.TempDir()

	tests := []struct {
		name     string
		args     []string
		home     string
		wantDir  string
		wantCode int
		wantErr  string
	}{
		{"explicit dir", []string{"cd", target}, home, target, 0, ""},
		{"defaults to home", []string{"cd"}, home, home, 0, ""},
		{"home unset", []string{"cd"}, "", "", 1, "cd: HOME not set\n"},
		{"too many args", []string{"cd", target, home}, home, "", 1, "cd: too many arguments\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			start := t.TempDir()
			t.Chdir(start)
			t.Setenv(EnvHome, tc.home)
			t.Setenv("PWD", start)

			env, _, stderr := newEnv()

			code := Cd(testContext(), env, tc.args)
			assert.Equal(t, tc.wantCode, code)
			assert.Equal(t, tc.wantErr, stderr.String())

			cwd, err := os.Getwd()
			require.NoError(t, err)

			if tc.wantDir == "" {
				assert.Equal(t, realPath(t, start), realPath(t, cwd), "directory must not change on failure")
				assert.Equal(t, start, os.Getenv("PWD"))
				return
			}

			assert.Equal(t, realPath(t, tc.wantDir), realPath(t, cwd))
			assert.Equal(t, cwd, os.Getenv("PWD"))
		})
	}
}

func TestCd_MissingDirectory(t *testing.T) {
	t.Chdir(t.TempDir())

	env, _, stderr := newEnv()
	missing := filepath.Join(t.TempDir(), "missing")

	assert.Equal(t, 1, Cd(testContext(), env, []string{"cd", missing}))
	assert.Contains(t, stderr.String(), "cd: ")
	assert.Contains(t, stderr.String(), missing)
}

func TestPwd(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	env, stdout, stderr := newEnv()

	assert.Equal(t, 0, Pwd(testContext(), env, []string{"pwd"}))
	assert.Equal(t, realPath(t, dir), realPath(t, stdout.String()[:stdout.Len()-1]))
	assert.Empty(t, stderr.String())
}

func TestPwd_Error(t *testing.T) {
	stubs := gostub.Stub(&getwd, func() (string, error) {
		return "", errors.New("getwd: no such file or directory")
	})
	defer stubs.Reset()

	env, stdout, stderr := newEnv()

	assert.Equal(t, 1, Pwd(testContext(), env, []string{"pwd"}))
	assert.Empty(t, stdout.String())
	assert.Equal(t, "pwd: getwd: no such file or directory\n", stderr.String())
}

func TestExit(t *testing.T) {
	env, _, _ := newEnv()
	assert.False(t, env.ExitRequested())

	assert.Equal(t, 0, Exit(testContext(), env, []string{"exit"}))
	assert.True(t, env.ExitRequested())
}

func TestHistory(t *testing.T) {
	env, stdout, stderr := newEnv()

	for _, line := range []string{"echo one", "echo two", "echo three", "pwd", "false && echo hi"} {
		env.History.Add(line)
	}

	assert.Equal(t, 0, History(testContext(), env, []string{"history"}))
	assert.Empty(t, stderr.String())

	newGoldie(t).Assert(t, "history", stdout.Bytes())
}

func TestHistory_Clear(t *testing.T) {
	env, stdout, _ := newEnv()
	env.History.Add("echo one")

	assert.Equal(t, 0, History(testContext(), env, []string{"history", "-c"}))
	assert.Empty(t, stdout.String())
	assert.Equal(t, 0, env.History.Len())

	assert.Equal(t, 0, History(testContext(), env, []string{"history"}))
	assert.Empty(t, stdout.String())
}

func TestHistory_BadOption(t *testing.T) {
	env, stdout, stderr := newEnv()
	env.History.Add("echo one")

	assert.Equal(t, 1, History(testContext(), env, []string{"history", "-z"}))
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "usage: history [-c]")
	assert.Equal(t, 1, env.History.Len())
}

func TestHistory_NoRing(t *testing.T) {
	env, stdout, _ := newEnv()
	env.History = nil

	assert.Equal(t, 0, History(testContext(), env, []string{"history"}))
	assert.Empty(t, stdout.String())
}

func TestHelp(t *testing.T) {
	env, stdout, _ := newEnv()

	assert.Equal(t, 0, Help(testContext(), env, []string{"help"}))
	newGoldie(t).Assert(t, "help", stdout.Bytes())
}
