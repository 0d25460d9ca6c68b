// Package command runs external binaries and classifies their exit status.
package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"
)

// interruptGrace is how long a cancelled process gets to exit after SIGINT
// before it is killed.
const interruptGrace = 5 * time.Second

// Cmd describes one subprocess invocation.
// When Stdout or Stderr is nil the stream is buffered and returned in Result;
// otherwise it is streamed to the writer (the install step inherits the
// terminal this way).
type Cmd struct {
	Name   string
	Args   []string
	Dir    string
	Stdout io.Writer
	Stderr io.Writer
}

func (c Cmd) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Result is what a finished process left behind.
type Result struct {
	ExitCode int // -1 when the process could not be started
	Stdout   string
	Stderr   string
}

// ExitError is returned when the process ran but exited non-zero.
type ExitError struct {
	Cmd    string
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		return fmt.Sprintf("%s: exit status %d", e.Cmd, e.Code)
	}
	return fmt.Sprintf("%s: exit status %d: %s", e.Cmd, e.Code, msg)
}

// Runner abstracts process execution so callers can be tested without the
// real formatter and package manager installed.
type Runner interface {
	Run(ctx context.Context, cmd Cmd) (Result, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// NewExecRunner returns a Runner backed by os/exec.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run starts cmd and waits for it. A zero exit returns a nil error, a
// non-zero exit returns *ExitError, and a start failure (binary missing,
// permission denied) returns the underlying error with ExitCode -1.
// Cancelling ctx sends SIGINT; the process is killed only if it is still
// running interruptGrace later.
func (r *ExecRunner) Run(ctx context.Context, cmd Cmd) (Result, error) {
	//nolint:gosec // binaries come from the provisioned tools directory
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	// Interrupt rather than kill on cancellation so a tool rewriting a file
	// in place can finish or abandon the write cleanly.
	c.Cancel = func() error {
		return c.Process.Signal(os.Interrupt)
	}
	c.WaitDelay = interruptGrace

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	if cmd.Stdout != nil {
		c.Stdout = cmd.Stdout
	}
	c.Stderr = &stderr
	if cmd.Stderr != nil {
		c.Stderr = cmd.Stderr
	}

	err := c.Run()
	res := Result{
		ExitCode: 0,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}
	if err == nil {
		return res, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, &ExitError{Cmd: cmd.String(), Code: res.ExitCode, Stderr: res.Stderr}
	}

	res.ExitCode = -1
	return res, fmt.Errorf("%s: %w", cmd.String(), err)
}
