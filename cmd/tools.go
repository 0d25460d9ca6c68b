package cmd

import (
	"context"
	"fmt"

	"brew-formatter/internal/config"
	"brew-formatter/internal/logger"
	"brew-formatter/internal/setup"
)

// runTools provisions every tool the configuration needs. With force, the
// selected tools are removed first so they are installed from scratch.
func (a *app) runTools(ctx context.Context, force bool) error {
	paths, err := a.paths()
	if err != nil {
		return fmt.Errorf("locating data directory: %w", err)
	}
	cfg, _ := config.Load(paths.ConfigFile)

	inst, err := a.installer(paths)
	if err != nil {
		return err
	}

	a.printf("\n=== Installing tools ===\n")
	if force {
		for _, tool := range inst.Selected(cfg) {
			if err := inst.Remove(tool); err != nil {
				return err
			}
		}
	}

	if err := inst.InstallAll(ctx, cfg); err != nil {
		return fmt.Errorf("tool installation failed: %w", err)
	}
	logger.Success("[OK] All tools are installed and configured\n")
	return nil
}

// printVersion reports the program version followed by each tool's installed
// version.
func (a *app) printVersion() error {
	a.printf("Homebrew Code Formatter v%s\n", Version)

	paths, err := a.paths()
	if err != nil {
		logger.Debug("[DEBUG] Cannot locate tools: %v\n", err)
		return nil
	}
	inst, err := a.installer(paths)
	if err != nil {
		return err
	}
	for _, tool := range inst.Catalog.Tools {
		version := "not installed"
		if inst.Installed(tool) {
			version = inst.InstalledVersion(tool)
			if version == "" {
				version = "unknown"
			}
		}
		a.printf("  %-10s %s\n", tool.Name, version)
	}
	return nil
}

// runSetup runs the interactive configuration and saves the result.
func (a *app) runSetup() error {
	paths, err := a.paths()
	if err != nil {
		return fmt.Errorf("locating data directory: %w", err)
	}
	cfg, _ := config.Load(paths.ConfigFile)
	return setup.Run(a.stdin, a.stdout, cfg, paths.ConfigFile)
}
