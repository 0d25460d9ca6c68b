package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"brew-formatter/internal/config"
	"brew-formatter/internal/formatter"
	"brew-formatter/internal/installer"
	"brew-formatter/internal/logger"
	"brew-formatter/internal/scanner"
	"brew-formatter/internal/watcher"
)

// runFormat is the default action: make sure the tools exist, scan root,
// print the summary and, with --watch, keep formatting until interrupted.
func (a *app) runFormat(ctx context.Context, root string, opts options) error {
	paths, err := a.paths()
	if err != nil {
		return fmt.Errorf("locating data directory: %w", err)
	}
	cfg, _ := config.Load(paths.ConfigFile)

	inst, err := a.installer(paths)
	if err != nil {
		return err
	}

	// First run: nothing has been provisioned yet.
	prettier := inst.Catalog.MustLookup(installer.Prettier)
	if !inst.Installed(prettier) {
		logger.Info("[INFO] First run detected, installing tools...\n")
		if err := inst.InstallAll(ctx, cfg); err != nil {
			logger.Warn("[WARN] Some tools failed to install: %v\n", err)
		}
		if !inst.Installed(prettier) {
			return fmt.Errorf("prettier is not installed; run brew-formatter --tools")
		}
	}

	dispatcher := formatter.NewDispatcher(cfg, toolchain(inst), a.runner)

	a.printf("%s\n", Banner)
	a.printf("Scanning directory: %s\n", root)
	a.printf("Extensions: %s\n", strings.Join(cfg.Extensions, ", "))

	s := scanner.New(cfg, dispatcher)
	if !opts.noProgress && a.progress() {
		s.Progress = a.stderr
	}

	start := time.Now()
	stats, err := s.Scan(ctx, root)

	// A missing root is reported, not fatal: the summary still prints with
	// zero counts and the run exits cleanly.
	var notFound *scanner.RootNotFoundError
	switch {
	case errors.As(err, &notFound):
		logger.Error("[ERROR] %v\n", notFound)
	case err != nil:
		return err
	}
	stats.WriteSummary(a.stdout, time.Since(start))

	if !opts.watch || notFound != nil {
		return nil
	}
	return a.watch(ctx, root, cfg, dispatcher)
}

// watch re-formats files under root as they change, until ctx is cancelled.
func (a *app) watch(ctx context.Context, root string, cfg *config.Config, d *formatter.Dispatcher) error {
	abs, err := filepath.Abs(root)
	if err != nil {
		return err
	}

	w := watcher.New(cfg, d)
	var stats scanner.Stats
	err = w.Run(ctx, abs, func(out formatter.Outcome) {
		stats.Scanned++
		stats.Record(out)
	})
	logger.Info("[INFO] Watch stopped after %d file(s): %d formatted, %d errors\n",
		stats.Scanned, stats.Formatted, stats.Errors)
	return err
}

// installer builds the provisioner over the embedded tool catalog, streaming
// npm output to the command's stdout/stderr.
func (a *app) installer(paths config.Paths) (*installer.Installer, error) {
	catalog, err := installer.LoadCatalog()
	if err != nil {
		return nil, err
	}
	inst := installer.New(paths, catalog, a.runner)
	inst.Stdout = a.stdout
	inst.Stderr = a.stderr
	return inst, nil
}

// toolchain locates each provisioned binary and the config file it reads.
func toolchain(inst *installer.Installer) formatter.Toolchain {
	tool := func(name string) formatter.Tool {
		t := inst.Catalog.MustLookup(name)
		return formatter.Tool{
			Bin:    t.BinPath(inst.Paths.ToolsDir),
			Config: t.ConfigPath(inst.Paths.ToolsDir),
		}
	}
	return formatter.Toolchain{
		Prettier:  tool(installer.Prettier),
		ESLint:    tool(installer.ESLint),
		Stylelint: tool(installer.Stylelint),
	}
}
