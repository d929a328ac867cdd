// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package runner launches the external decoder and encoder processes and
// classifies how they ended: could not be launched, exited non-zero, or was
// cancelled.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os/exec"
	"strings"
	"time"
)

// waitDelay bounds how long Wait blocks on inherited pipes after the child
// is killed.
const waitDelay = 2 * time.Second

// Runner executes external programs.
type Runner interface {
	// Run executes name with args and waits for it. It returns nil only on
	// a zero exit status.
	Run(ctx context.Context, name string, args ...string) error

	// Probe launches name with args and reports only whether the program
	// could be started. A non-zero exit is not an error.
	Probe(ctx context.Context, name string, args ...string) error
}

// NotFoundError reports a program that could not be located or launched.
type NotFoundError struct {
	Command string
	Err     error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("command not found: %s", e.Command)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// ExitError reports a program that ran and exited with a non-zero status.
type ExitError struct {
	Command string
	Code    int
	// Stderr is the trimmed standard error output of the process.
	Stderr string
}

func (e *ExitError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("%s exited with status %d", e.Command, e.Code)
	}
	return fmt.Sprintf("%s exited with status %d: %s", e.Command, e.Code, e.Stderr)
}

// IsNotFound reports whether err is, or wraps, a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// Exec is the production Runner backed by os/exec. Standard output of the
// child is discarded; standard error is captured for error reporting.
type Exec struct {
	// Stdout receives the child's standard output when set.
	Stdout io.Writer
}

// New returns a Runner that executes real processes.
func New() *Exec {
	return &Exec{}
}

func (x *Exec) Run(ctx context.Context, name string, args ...string) error {
	return x.run(ctx, false, name, args)
}

func (x *Exec) Probe(ctx context.Context, name string, args ...string) error {
	return x.run(ctx, true, name, args)
}

func (x *Exec) run(ctx context.Context, probe bool, name string, args []string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay
	if x.Stdout != nil {
		cmd.Stdout = x.Stdout
	}

	err := cmd.Run()
	if err == nil {
		return nil
	}

	// A killed child looks like an exit error, so check the context first.
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("running %s: %w", name, ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if probe {
			return nil
		}
		return &ExitError{
			Command: name,
			Code:    exitErr.ExitCode(),
			Stderr:  strings.TrimSpace(stderr.String()),
		}
	}

	if launchFailed(err) {
		return &NotFoundError{Command: name, Err: err}
	}
	return fmt.Errorf("running %s: %w", name, err)
}

// launchFailed reports errors returned by exec when the program could not be
// resolved or started at all.
func launchFailed(err error) bool {
	return errors.Is(err, exec.ErrNotFound) ||
		errors.Is(err, exec.ErrDot) ||
		errors.Is(err, fs.ErrNotExist) ||
		errors.Is(err, fs.ErrPermission)
}
