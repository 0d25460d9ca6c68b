package state

import (
	"encoding/json" // For JSON encoding and decoding of the state file
	"os"            // For file system operations like reading and writing files
	"path/filepath"
	"time"

	"brew-formatter/internal/logger" // Colored logger for errors and debug info
)

// ToolState records a provisioned tool.
// Version is what the package manager actually installed (read back from the
// installed package.json), not the pinned range from the catalog.
type ToolState struct {
	Version     string    `json:"version"`      // Installed version string, e.g. "3.2.5"
	InstallPath string    `json:"install_path"` // Directory holding the tool's package.json and node_modules
	InstalledAt time.Time `json:"installed_at"` // When provisioning finished
}

// State holds what the provisioner has installed, keyed by tool name.
type State struct {
	Tools map[string]ToolState `json:"tools"`
}

// New returns an empty, ready-to-use State.
func New() *State {
	return &State{Tools: make(map[string]ToolState)}
}

// Record stores the outcome of a successful install.
func (s *State) Record(name string, ts ToolState) {
	s.Tools[name] = ts
}

// Forget drops a tool, typically after its directory was removed.
func (s *State) Forget(name string) {
	delete(s.Tools, name)
}

// Load loads the saved state from a JSON file at the given path.
// If the file does not exist or cannot be parsed, it returns an empty State.
func Load(path string) *State {
	file, err := os.ReadFile(path)
	if err != nil {
		return New()
	}

	var st State
	if err := json.Unmarshal(file, &st); err != nil {
		logger.Warn("[WARN] Ignoring unreadable state file %s: %v\n", path, err)
		return New()
	}

	// The file may contain "tools": null
	if st.Tools == nil {
		st.Tools = make(map[string]ToolState)
	}

	return &st
}

// Save writes the state to path as indented JSON.
// Errors are logged but not propagated; losing the record never blocks formatting.
func Save(path string, st *State) {
	file, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		logger.Error("[ERROR] Failed to marshal state: %v\n", err)
		return
	}

	logger.Debug("[DEBUG] Writing state to %s:\n%s\n", path, string(file))

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		logger.Error("[ERROR] Failed to create state directory: %v\n", err)
		return
	}
	if err := os.WriteFile(path, file, 0o644); err != nil {
		logger.Error("[ERROR] Failed to write state file %s: %v\n", path, err)
	}
}
