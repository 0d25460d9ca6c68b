package config

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"brew-formatter/internal/logger"
)

// Load reads the configuration file at path and decodes it over the built-in
// defaults, so any field missing from the file keeps its default value.
// It returns the resulting configuration and whether a file was found and
// applied. Read and parse failures are logged and the defaults are returned.
func Load(path string) (*Config, bool) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Error("[ERROR] Failed to read configuration %s: %v\n", path, err)
		}
		return cfg, false
	}

	if err := Validate(data); err != nil {
		logger.Error("[ERROR] Invalid configuration %s: %v\n", path, err)
		return cfg, false
	}

	// Decode into a scratch copy so a half-applied document never leaks out.
	loaded := Default()
	if err := json.Unmarshal(data, loaded); err != nil {
		logger.Error("[ERROR] Failed to parse configuration %s: %v\n", path, err)
		return cfg, false
	}

	restoreNilLists(loaded)
	logger.Debug("[DEBUG] Loaded configuration from %s\n", path)
	return loaded, true
}

// restoreNilLists puts back the default for any list the file set to null.
// An explicit empty list is kept.
func restoreNilLists(cfg *Config) {
	def := Default()
	if cfg.Extensions == nil {
		cfg.Extensions = def.Extensions
	}
	if cfg.IgnoreDirs == nil {
		cfg.IgnoreDirs = def.IgnoreDirs
	}
	if cfg.ESLint.Extensions == nil {
		cfg.ESLint.Extensions = def.ESLint.Extensions
	}
	if cfg.Stylelint.Extensions == nil {
		cfg.Stylelint.Extensions = def.Stylelint.Extensions
	}
}

// Save writes cfg to path as indented JSON, creating the parent directory
// when needed. Failures are logged and reported through the return value.
func Save(path string, cfg *Config) bool {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		logger.Error("[ERROR] Failed to create configuration directory: %v\n", err)
		return false
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		logger.Error("[ERROR] Failed to marshal configuration: %v\n", err)
		return false
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		logger.Error("[ERROR] Failed to write configuration %s: %v\n", path, err)
		return false
	}

	logger.Debug("[DEBUG] Saved configuration to %s\n", path)
	return true
}
