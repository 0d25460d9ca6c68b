package config

import (
	"os"
	"path/filepath"
)

// HomeEnvVar overrides the per-user data directory.
const HomeEnvVar = "BREW_FORMATTER_HOME"

const (
	dirName    = ".brew-formatter"
	configName = "config.json"
	stateName  = "state.json"
	toolsName  = "tools"
)

// Paths locates everything the tool keeps on disk.
type Paths struct {
	Root       string // ~/.brew-formatter
	ConfigFile string // <root>/config.json
	StateFile  string // <root>/state.json
	ToolsDir   string // <root>/tools, one subdirectory per provisioned tool
}

// NewPaths builds Paths under root.
func NewPaths(root string) Paths {
	return Paths{
		Root:       root,
		ConfigFile: filepath.Join(root, configName),
		StateFile:  filepath.Join(root, stateName),
		ToolsDir:   filepath.Join(root, toolsName),
	}
}

// DefaultPaths resolves the data directory from BREW_FORMATTER_HOME, falling
// back to ~/.brew-formatter.
func DefaultPaths() (Paths, error) {
	if root := os.Getenv(HomeEnvVar); root != "" {
		return NewPaths(root), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return Paths{}, err
	}
	return NewPaths(filepath.Join(home, dirName)), nil
}
