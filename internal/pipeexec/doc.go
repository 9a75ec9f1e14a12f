// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package pipeexec runs two commands connected by a single anonymous pipe.
package pipeexec
