package config

import (
	"path/filepath"
	"regexp"
	"slices"
	"strings"
)

// Config is the user's formatting preferences as persisted in config.json.
// The JSON field names match the file written by earlier releases so existing
// configuration files keep loading.
type Config struct {
	Extensions []string        `json:"extensions"`      // File extensions to format, with leading dot
	IgnoreDirs []string        `json:"ignoreDirs"`      // Directory names skipped during traversal
	Prettier   PrettierOptions `json:"prettierConfig"`  // Options written to the formatter's .prettierrc
	ESLint     LinterConfig    `json:"eslintConfig"`    // JS/TS-family linter
	Stylelint  LinterConfig    `json:"stylelintConfig"` // Stylesheet-family linter
}

// PrettierOptions mirrors the subset of Prettier options the tool manages.
// It is serialized as-is into the provisioned .prettierrc.
type PrettierOptions struct {
	PrintWidth     int    `json:"printWidth"`
	TabWidth       int    `json:"tabWidth"`
	UseTabs        bool   `json:"useTabs"`
	Semi           bool   `json:"semi"`
	SingleQuote    bool   `json:"singleQuote"`
	TrailingComma  string `json:"trailingComma"`
	BracketSpacing bool   `json:"bracketSpacing"`
	ArrowParens    string `json:"arrowParens"`
	EndOfLine      string `json:"endOfLine"`
}

// LinterConfig toggles a linter and restricts it to an extension family.
type LinterConfig struct {
	Enabled    bool     `json:"enabled"`
	Extensions []string `json:"extensions,omitempty"`
}

// Matches reports whether the linter is enabled and path has one of its extensions.
func (l LinterConfig) Matches(path string) bool {
	return l.Enabled && containsExt(l.Extensions, path)
}

// HasExtension reports whether path's extension (case-insensitive) is in the
// configured extension set.
func (c *Config) HasExtension(path string) bool {
	return containsExt(c.Extensions, path)
}

// IsIgnoredDir reports whether a directory with this exact name is excluded.
// Matching is by name only, never by path or glob.
func (c *Config) IsIgnoredDir(name string) bool {
	return slices.Contains(c.IgnoreDirs, name)
}

// extensionPattern matches config.schema.json's extension items: a dot
// followed by a single segment.
var extensionPattern = regexp.MustCompile(`^\.[^./\\]+$`)

// ValidExtension reports whether ext can be stored in an extension list,
// e.g. ".rb" but not "rb", "." or ".tar.gz".
func ValidExtension(ext string) bool {
	return extensionPattern.MatchString(ext)
}

func containsExt(exts []string, path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return false
	}
	return slices.ContainsFunc(exts, func(e string) bool {
		return strings.ToLower(e) == ext
	})
}
