// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package launcher

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

var (
	// ErrNotFound is returned when no executable with the given name exists in PATH.
	ErrNotFound = errors.New("command not found")
	// ErrNotExecutable is returned when a matching file exists but cannot be executed.
	ErrNotExecutable = errors.New("permission denied")
	// ErrIsDirectory is returned when a path given with a slash names a directory.
	ErrIsDirectory = errors.New("is a directory")
)

// LookPath resolves name to an executable path using the directories in pathEnv.
// A name containing a slash is checked as-is and PATH is not consulted.
// An empty PATH element means the current directory.
func LookPath(name, pathEnv string) (string, error) {
	if name == "" {
		return "", ErrNotFound
	}

	if strings.ContainsRune(name, '/') {
		if err := checkExecutable(name); err != nil {
			return "", err
		}

		return name, nil
	}

	sawNotExecutable := false

	for _, dir := range filepath.SplitList(pathEnv) {
		if dir == "" {
			dir = "."
		}

		candidate := filepath.Join(dir, name)

		err := checkExecutable(candidate)
		switch {
		case err == nil:
			return candidate, nil
		case errors.Is(err, ErrNotExecutable):
			sawNotExecutable = true
		}
	}

	if sawNotExecutable {
		return "", ErrNotExecutable
	}

	return "", ErrNotFound
}

func checkExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	if info.IsDir() {
		return ErrIsDirectory
	}

	if runtime.GOOS != "windows" && info.Mode()&0o111 == 0 {
		return ErrNotExecutable
	}

	return nil
}

// describeExecError maps a lookup or exec error to the message a shell prints
// and the exit status of a child that failed to exec.
func describeExecError(err error) (string, int) {
	var pathErr *fs.PathError

	switch {
	case errors.Is(err, ErrNotFound):
		return ErrNotFound.Error(), ExitCodeNotFound
	case errors.Is(err, fs.ErrNotExist):
		return "no such file or directory", ExitCodeNotFound
	case errors.Is(err, ErrNotExecutable), errors.Is(err, fs.ErrPermission):
		return ErrNotExecutable.Error(), ExitCodeNotExecutable
	case errors.Is(err, ErrIsDirectory):
		return ErrIsDirectory.Error(), ExitCodeNotExecutable
	case errors.As(err, &pathErr):
		return pathErr.Err.Error(), ExitCodeNotExecutable
	default:
		return err.Error(), ExitCodeNotExecutable
	}
}
