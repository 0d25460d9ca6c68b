package installer

import (
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
)

// InstalledVersion reads the version the package manager actually installed
// from node_modules/<package>/package.json. It returns "" when the tool is
// not installed or the manifest has no version.
func (i *Installer) InstalledVersion(tool Tool) string {
	pkg := tool.Package
	if pkg == "" {
		pkg = tool.Name
	}
	path := filepath.Join(tool.Dir(i.Paths.ToolsDir), "node_modules", pkg, "package.json")

	data, err := os.ReadFile(path)
	if err != nil || !gjson.ValidBytes(data) {
		return ""
	}
	return gjson.GetBytes(data, "version").String()
}
