// Package formatter runs the external formatter and linters on a single file.
package formatter

import (
	"context"
	"errors"
	"fmt"

	"brew-formatter/internal/command"
	"brew-formatter/internal/config"
	"brew-formatter/internal/logger"
)

// exitDiffers is the formatter's --check exit code for "would reformat".
const exitDiffers = 1

// Tool locates a provisioned binary and the config file passed to it.
type Tool struct {
	Bin    string
	Config string
}

// Toolchain is the set of binaries the dispatcher drives.
type Toolchain struct {
	Prettier  Tool
	ESLint    Tool
	Stylelint Tool
}

// Dispatcher formats and lints one file at a time.
type Dispatcher struct {
	Config *config.Config
	Tools  Toolchain
	Runner command.Runner
}

// NewDispatcher returns a Dispatcher using cfg to decide which linters apply.
func NewDispatcher(cfg *config.Config, tools Toolchain, runner command.Runner) *Dispatcher {
	return &Dispatcher{Config: cfg, Tools: tools, Runner: runner}
}

// Check asks the formatter whether path is already formatted.
// The returned error is only set for CheckFailed.
func (d *Dispatcher) Check(ctx context.Context, path string) (CheckResult, error) {
	_, err := d.Runner.Run(ctx, command.Cmd{
		Name: d.Tools.Prettier.Bin,
		Args: []string{"--check", "--config", d.Tools.Prettier.Config, path},
	})
	if err == nil {
		return CheckClean, nil
	}

	var exitErr *command.ExitError
	if errors.As(err, &exitErr) && exitErr.Code == exitDiffers {
		return CheckNeedsWrite, nil
	}
	return CheckFailed, err
}

// Write rewrites path in place.
func (d *Dispatcher) Write(ctx context.Context, path string) error {
	_, err := d.Runner.Run(ctx, command.Cmd{
		Name: d.Tools.Prettier.Bin,
		Args: []string{"--write", "--config", d.Tools.Prettier.Config, path},
	})
	return err
}

// Lint runs each applicable linter with --fix. Failures are returned as
// warnings; they never fail the file.
func (d *Dispatcher) Lint(ctx context.Context, path string) []error {
	var warnings []error

	if d.Config.ESLint.Matches(path) {
		if err := d.fix(ctx, d.Tools.ESLint, path); err != nil {
			warnings = append(warnings, fmt.Errorf("eslint: %w", err))
		}
	}
	if d.Config.Stylelint.Matches(path) {
		if err := d.fix(ctx, d.Tools.Stylelint, path); err != nil {
			warnings = append(warnings, fmt.Errorf("stylelint: %w", err))
		}
	}
	return warnings
}

func (d *Dispatcher) fix(ctx context.Context, tool Tool, path string) error {
	_, err := d.Runner.Run(ctx, command.Cmd{
		Name: tool.Bin,
		Args: []string{"--fix", "--config", tool.Config, path},
	})
	return err
}

// Format drives one file through check, write and lint.
//
// A clean check marks the file skipped and nothing else runs. A check that
// reports differences, or that fails outright, falls through to the write
// step; a failed write marks the file errored and linting is not attempted.
func (d *Dispatcher) Format(ctx context.Context, path string) Outcome {
	out := Outcome{Path: path}

	out.Check, out.CheckErr = d.Check(ctx, path)
	switch out.Check {
	case CheckClean:
		out.Status = Skipped
		logger.Debug("[DEBUG] Already formatted: %s\n", path)
		return out
	case CheckFailed:
		logger.Debug("[DEBUG] Check failed for %s, writing anyway: %v\n", path, out.CheckErr)
	}

	if err := d.Write(ctx, path); err != nil {
		out.Status = Errored
		out.Err = err
		logger.Error("[ERROR] Failed to format %s: %v\n", path, err)
		return out
	}

	out.Status = Formatted
	out.LintWarnings = d.Lint(ctx, path)
	for _, w := range out.LintWarnings {
		logger.Warn("[WARN] Lint warning for %s: %v\n", path, w)
	}
	logger.Success("[OK] Formatted: %s\n", path)
	return out
}
