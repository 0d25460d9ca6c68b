package command

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipWithoutShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires /bin/sh")
	}
}

func TestExecRunner_Success(t *testing.T) {
	t.Parallel()
	skipWithoutShell(t)

	res, err := NewExecRunner().Run(context.Background(), Cmd{
		Name: "sh",
		Args: []string{"-c", "echo out; echo err >&2"},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "out\n", res.Stdout)
	assert.Equal(t, "err\n", res.Stderr)
}

func TestExecRunner_NonZeroExit(t *testing.T) {
	t.Parallel()
	skipWithoutShell(t)

	res, err := NewExecRunner().Run(context.Background(), Cmd{
		Name: "sh",
		Args: []string{"-c", "echo broken >&2; exit 2"},
	})
	require.Error(t, err)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
	assert.Equal(t, 2, res.ExitCode)
	assert.Contains(t, err.Error(), "exit status 2: broken")
}

func TestExecRunner_MissingBinary(t *testing.T) {
	t.Parallel()

	res, err := NewExecRunner().Run(context.Background(), Cmd{
		Name: filepath.Join(t.TempDir(), "does-not-exist"),
	})
	require.Error(t, err)
	assert.Equal(t, -1, res.ExitCode)

	var exitErr *ExitError
	assert.False(t, errors.As(err, &exitErr))
}

func TestExecRunner_StreamsAndDir(t *testing.T) {
	t.Parallel()
	skipWithoutShell(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "marker"), nil, 0o600))

	var stdout bytes.Buffer
	res, err := NewExecRunner().Run(context.Background(), Cmd{
		Name:   "sh",
		Args:   []string{"-c", "ls"},
		Dir:    dir,
		Stdout: &stdout,
	})
	require.NoError(t, err)
	assert.Equal(t, "marker\n", stdout.String())
	assert.Empty(t, res.Stdout)
}

func TestExecRunner_CancelInterrupts(t *testing.T) {
	t.Parallel()
	skipWithoutShell(t)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	start := time.Now()
	res, err := NewExecRunner().Run(ctx, Cmd{
		Name: "sh",
		Args: []string{"-c", `trap 'kill $pid; echo interrupted; exit 3' INT; sleep 10 & pid=$!; wait $pid`},
	})
	require.Error(t, err)
	assert.Equal(t, "interrupted\n", res.Stdout)
	assert.Less(t, time.Since(start), interruptGrace)
}

func TestCmdString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "npm install", Cmd{Name: "npm", Args: []string{"install"}}.String())
	assert.Equal(t, "npm", Cmd{Name: "npm"}.String())
}
