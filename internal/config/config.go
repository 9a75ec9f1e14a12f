// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/matt-FFFFFF/shell322/internal/ctxlog"
	"github.com/matt-FFFFFF/shell322/internal/history"
	"github.com/matt-FFFFFF/shell322/internal/repl"
	"github.com/matt-FFFFFF/shell322/internal/tokenizer"
	"github.com/spf13/afero"
)

var (
	// ErrReadConfig is returned when the configuration file cannot be read.
	ErrReadConfig = errors.New("failed to read configuration file")
	// ErrDecodeConfig is returned when the configuration file is malformed.
	ErrDecodeConfig = errors.New("failed to decode configuration file")
	// ErrUnsupportedFormat is returned for file extensions other than .yaml, .yml and .hcl.
	ErrUnsupportedFormat = errors.New("unsupported configuration file format")
	// ErrInvalidConfig is returned when a setting is out of range.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// FsFactory returns the filesystem configuration files are read from.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// Config holds the shell settings.
type Config struct {
	Prompt      string `yaml:"prompt" hcl:"prompt,optional"`
	HistorySize int    `yaml:"history_size" hcl:"history_size,optional"`
	MaxArgs     int    `yaml:"max_args" hcl:"max_args,optional"`
	LogLevel    string `yaml:"log_level" hcl:"log_level,optional"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Prompt:      repl.DefaultPrompt,
		HistorySize: history.DefaultCapacity,
		MaxArgs:     tokenizer.DefaultMaxTokens,
	}
}

// Load reads path on top of the defaults and validates the result.
// The format is chosen by extension. Settings missing from the file keep their default.
func Load(path string) (Config, error) {
	cfg := Default()

	content, err := afero.ReadFile(FsFactory(), path)
	if err != nil {
		return cfg, errors.Join(ErrReadConfig, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.UnmarshalWithOptions(content, &cfg, yaml.DisallowUnknownField()); err != nil {
			return cfg, errors.Join(ErrDecodeConfig, err)
		}
	case ".hcl":
		if err := hclsimple.Decode(path, content, nil, &cfg); err != nil {
			return cfg, errors.Join(ErrDecodeConfig, err)
		}
	default:
		return cfg, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Validate reports every out-of-range setting at once.
func (c Config) Validate() error {
	var result *multierror.Error

	if c.HistorySize < 1 {
		result = multierror.Append(result, fmt.Errorf("%w: history_size must be at least 1, got %d", ErrInvalidConfig, c.HistorySize))
	}

	if c.MaxArgs < 1 {
		result = multierror.Append(result, fmt.Errorf("%w: max_args must be at least 1, got %d", ErrInvalidConfig, c.MaxArgs))
	}

	if c.LogLevel != "" {
		if _, ok := ctxlog.ParseLevel(c.LogLevel); !ok {
			result = multierror.Append(result, fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, c.LogLevel))
		}
	}

	return result.ErrorOrNil()
}
