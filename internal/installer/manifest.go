package installer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"brew-formatter/internal/config"
)

// manifestPrefix names the generated package.json so it is recognisable on disk.
const manifestPrefix = "brew-formatter-"

// packageManifest is the minimal package.json the package manager needs.
type packageManifest struct {
	Name         string            `json:"name"`
	Version      string            `json:"version"`
	Private      bool              `json:"private"`
	Dependencies map[string]string `json:"dependencies"`
}

// writeManifest writes package.json for tool into dir.
func writeManifest(dir string, tool Tool) error {
	return writeJSON(filepath.Join(dir, "package.json"), packageManifest{
		Name:         manifestPrefix + tool.Name,
		Version:      "1.0.0",
		Private:      true,
		Dependencies: tool.Dependencies,
	})
}

// writeToolConfig writes the tool's own config file. The formatter's options
// come from the user's configuration; linters use the catalog's fixed body.
func writeToolConfig(dir string, tool Tool, cfg *config.Config) error {
	var body any
	switch {
	case tool.Name == Prettier:
		body = cfg.Prettier
	case tool.Config != nil:
		body = tool.Config
	default:
		body = map[string]any{}
	}
	return writeJSON(filepath.Join(dir, tool.ConfigFile), body)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
