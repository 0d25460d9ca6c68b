// Package commandtest provides a scripted command.Runner for tests.
package commandtest

import (
	"context"
	"path/filepath"
	"sync"

	"brew-formatter/internal/command"
)

// Fake answers Run calls with Handler and records every invocation.
// A nil Handler makes every command succeed.
type Fake struct {
	Handler func(cmd command.Cmd) (command.Result, error)

	mu    sync.Mutex
	calls []command.Cmd
}

func (f *Fake) Run(_ context.Context, cmd command.Cmd) (command.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, cmd)
	f.mu.Unlock()

	if f.Handler == nil {
		return command.Result{}, nil
	}
	return f.Handler(cmd)
}

// Calls returns a copy of the recorded invocations in order.
func (f *Fake) Calls() []command.Cmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]command.Cmd(nil), f.calls...)
}

// Invocation is a compact view of a call: binary base name, first flag, and
// target file (the last argument).
type Invocation struct {
	Tool string
	Flag string
	File string
}

// Invocations summarises Calls for easy comparison in assertions.
func (f *Fake) Invocations() []Invocation {
	calls := f.Calls()
	out := make([]Invocation, 0, len(calls))
	for _, c := range calls {
		inv := Invocation{Tool: filepath.Base(c.Name)}
		if len(c.Args) > 0 {
			inv.Flag = c.Args[0]
			inv.File = c.Args[len(c.Args)-1]
		}
		out = append(out, inv)
	}
	return out
}

// Exit builds the error a real process exiting with code would produce.
func Exit(cmd command.Cmd, code int) (command.Result, error) {
	return command.Result{ExitCode: code}, &command.ExitError{Cmd: cmd.String(), Code: code}
}
