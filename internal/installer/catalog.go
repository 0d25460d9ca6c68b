package installer

import (
	_ "embed"
	"fmt"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Tool names as they appear in catalog.yaml.
const (
	Prettier  = "prettier"
	ESLint    = "eslint"
	Stylelint = "stylelint"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Tool describes one externally provisioned binary.
// - Package: npm package whose package.json carries the installed version.
// - Bin: executable name under node_modules/.bin.
// - ConfigFile: tool config written next to package.json.
// - Config: fixed config body for linters; nil for the formatter, whose
//   config is derived from the user's preferences.
type Tool struct {
	Name         string            `yaml:"name"`
	Package      string            `yaml:"package"`
	Bin          string            `yaml:"bin"`
	ConfigFile   string            `yaml:"configFile"`
	Dependencies map[string]string `yaml:"dependencies"`
	Config       map[string]any    `yaml:"config"`
}

// Dir is the tool's isolated install directory.
func (t Tool) Dir(toolsDir string) string {
	return filepath.Join(toolsDir, t.Name)
}

// BinPath is where the package manager places the tool's executable.
func (t Tool) BinPath(toolsDir string) string {
	return filepath.Join(t.Dir(toolsDir), "node_modules", ".bin", t.Bin)
}

// ConfigPath is the tool-specific configuration file passed via --config.
func (t Tool) ConfigPath(toolsDir string) string {
	return filepath.Join(t.Dir(toolsDir), t.ConfigFile)
}

// Catalog is the ordered set of provisionable tools.
type Catalog struct {
	Tools []Tool `yaml:"tools"`
}

// Lookup returns the named tool.
func (c *Catalog) Lookup(name string) (Tool, bool) {
	for _, t := range c.Tools {
		if t.Name == name {
			return t, true
		}
	}
	return Tool{}, false
}

// MustLookup is Lookup for names known to be in the embedded catalog.
func (c *Catalog) MustLookup(name string) Tool {
	t, ok := c.Lookup(name)
	if !ok {
		panic(fmt.Sprintf("tool %q missing from catalog", name))
	}
	return t
}

// LoadCatalog parses the embedded catalog.yaml.
func LoadCatalog() (*Catalog, error) {
	return parseCatalog(catalogYAML)
}

func parseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing tool catalog: %w", err)
	}
	for i, t := range c.Tools {
		if t.Name == "" || t.Bin == "" || t.ConfigFile == "" {
			return nil, fmt.Errorf("tool catalog entry %d is missing name, bin or configFile", i)
		}
		if len(t.Dependencies) == 0 {
			return nil, fmt.Errorf("tool %s has no dependencies", t.Name)
		}
	}
	return &c, nil
}
