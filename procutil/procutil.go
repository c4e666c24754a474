// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package procutil launches programs from argument vectors.
//
// Element 0 of an argument vector is the program and the remaining elements
// are passed through unchanged. No shell is involved, so quoting has already
// been resolved by the caller (see package shellutil).
package procutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// ErrEmptyArgv is returned when there is no program to run.
var ErrEmptyArgv = errors.New("empty argument vector")

// Runner starts programs.
type Runner interface {
	// Start launches argv and returns once the process has started.
	// The process is not waited for.
	Start(ctx context.Context, argv []string) error
	// Run launches argv and waits for it to exit. A process that runs and
	// exits non-zero reports its exit code with a nil error; err is set only
	// when the process could not be started or waited for.
	Run(ctx context.Context, argv []string) (exitCode int, err error)
}

// ExecRunner runs programs with os/exec.
type ExecRunner struct {
	// Dir is the working directory; empty means the current one.
	Dir string
	// Env is appended to the current environment.
	Env []string
	// Stdout and Stderr default to the launcher's own streams for Run.
	// Start only honors them when they are files.
	Stdout io.Writer
	Stderr io.Writer
}

// Start implements Runner.
func (r ExecRunner) Start(ctx context.Context, argv []string) error {
	if len(argv) == 0 {
		return ErrEmptyArgv
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	// Not tied to ctx: the started program outlives the launcher.
	// #nosec G204 -- argv comes from the browser association of this machine
	cmd := exec.Command(argv[0], argv[1:]...)
	r.configure(cmd)
	// Nothing drains a pipe once the launcher exits, so only files are
	// passed to a detached child.
	if _, ok := cmd.Stdout.(*os.File); !ok {
		cmd.Stdout = nil
	}
	if _, ok := cmd.Stderr.(*os.File); !ok {
		cmd.Stderr = nil
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", argv[0], err)
	}
	return cmd.Process.Release()
}

// Run implements Runner.
func (r ExecRunner) Run(ctx context.Context, argv []string) (int, error) {
	if len(argv) == 0 {
		return -1, ErrEmptyArgv
	}

	// #nosec G204 -- argv comes from configuration or the browser association
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	r.configure(cmd)
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	cmd.Stdin = os.Stdin

	err := cmd.Run()
	flush(r.Stdout, r.Stderr)
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	if err != nil {
		return -1, fmt.Errorf("failed to run %s: %w", argv[0], err)
	}
	return 0, nil
}

func (r ExecRunner) configure(cmd *exec.Cmd) {
	cmd.Dir = r.Dir
	if len(r.Env) > 0 {
		cmd.Env = append(os.Environ(), r.Env...)
	}
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
}

// flush passes on partial lines held by writers such as LineWriter.
func flush(writers ...io.Writer) {
	for _, w := range writers {
		if f, ok := w.(interface{ Flush() }); ok {
			f.Flush()
		}
	}
}

// ExitCode extracts a process exit code from an error returned by os/exec.
// It returns 0 for nil and -1 when err carries no exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
