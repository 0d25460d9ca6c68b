package installer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"brew-formatter/internal/command"
	"brew-formatter/internal/config"
	"brew-formatter/internal/logger"
	"brew-formatter/internal/state"
)

// DefaultInstallCommand is the package-manager invocation run inside each tool directory.
var DefaultInstallCommand = []string{"npm", "install"}

// Installer provisions the catalog's tools into per-tool directories.
type Installer struct {
	Paths   config.Paths
	Catalog *Catalog
	Runner  command.Runner

	// Command is the install invocation; DefaultInstallCommand when empty.
	Command []string

	// Install output goes straight to these, like an inherited terminal.
	Stdout io.Writer
	Stderr io.Writer

	now func() time.Time
}

// New returns an Installer streaming package-manager output to the process's stdout/stderr.
func New(paths config.Paths, catalog *Catalog, runner command.Runner) *Installer {
	return &Installer{
		Paths:   paths,
		Catalog: catalog,
		Runner:  runner,
		Command: DefaultInstallCommand,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		now:     time.Now,
	}
}

// Install provisions a single tool. A tool whose directory already exists is
// left untouched and reported as not installed (false, nil). Otherwise the
// directory is created, package.json and the tool config are written, and the
// install command runs synchronously in that directory.
//
// Partially written directories are not cleaned up on failure; use Remove
// before retrying.
func (i *Installer) Install(ctx context.Context, tool Tool, cfg *config.Config) (bool, error) {
	dir := tool.Dir(i.Paths.ToolsDir)
	if _, err := os.Stat(dir); err == nil {
		logger.Debug("[DEBUG] %s already provisioned in %s. Skipping.\n", tool.Name, dir)
		return false, nil
	}

	logger.Info("[INFO] Installing %s...\n", tool.Name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, fmt.Errorf("install %s: create directory: %w", tool.Name, err)
	}

	if err := writeManifest(dir, tool); err != nil {
		return false, fmt.Errorf("install %s: %w", tool.Name, err)
	}
	if err := writeToolConfig(dir, tool, cfg); err != nil {
		return false, fmt.Errorf("install %s: %w", tool.Name, err)
	}

	args := i.Command
	if len(args) == 0 {
		args = DefaultInstallCommand
	}
	cmd := command.Cmd{
		Name:   args[0],
		Args:   args[1:],
		Dir:    dir,
		Stdout: i.Stdout,
		Stderr: i.Stderr,
	}
	logger.Debug("[DEBUG] Running command: %s (in %s)\n", cmd, dir)
	if _, err := i.Runner.Run(ctx, cmd); err != nil {
		return false, fmt.Errorf("install %s: %w", tool.Name, err)
	}

	logger.Success("[OK] %s installed\n", tool.Name)
	return true, nil
}

// Selected returns the tools cfg needs: the formatter always, each linter
// only while enabled.
func (i *Installer) Selected(cfg *config.Config) []Tool {
	var tools []Tool
	for _, t := range i.Catalog.Tools {
		switch t.Name {
		case ESLint:
			if !cfg.ESLint.Enabled {
				continue
			}
		case Stylelint:
			if !cfg.Stylelint.Enabled {
				continue
			}
		}
		tools = append(tools, t)
	}
	return tools
}

// InstallAll provisions every selected tool in catalog order. A failing tool
// is logged and provisioning moves on to the next one; all failures are
// returned joined. Successful installs are recorded in the state file.
func (i *Installer) InstallAll(ctx context.Context, cfg *config.Config) error {
	if err := os.MkdirAll(i.Paths.ToolsDir, 0o755); err != nil {
		return fmt.Errorf("create tools directory: %w", err)
	}

	st := state.Load(i.Paths.StateFile)
	var errs []error

	for _, tool := range i.Selected(cfg) {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		installed, err := i.Install(ctx, tool, cfg)
		if err != nil {
			logger.Error("[ERROR] %v\n", err)
			errs = append(errs, err)
			continue
		}
		if installed {
			st.Record(tool.Name, state.ToolState{
				Version:     i.InstalledVersion(tool),
				InstallPath: tool.Dir(i.Paths.ToolsDir),
				InstalledAt: i.clock(),
			})
		}
	}

	state.Save(i.Paths.StateFile, st)
	return errors.Join(errs...)
}

// Installed reports whether tool's executable is present.
func (i *Installer) Installed(tool Tool) bool {
	info, err := os.Stat(tool.BinPath(i.Paths.ToolsDir))
	return err == nil && !info.IsDir()
}

func (i *Installer) clock() time.Time {
	if i.now == nil {
		return time.Now()
	}
	return i.now()
}
