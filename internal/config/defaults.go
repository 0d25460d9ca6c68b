package config

// Default returns the built-in configuration. Each call returns a fresh copy,
// so callers may mutate the result freely.
func Default() *Config {
	return &Config{
		Extensions: []string{
			// JavaScript and TypeScript
			".js", ".jsx", ".ts", ".tsx",
			// Web
			".html", ".css", ".scss", ".sass", ".less", ".vue", ".svelte",
			// Data and docs
			".json", ".yaml", ".yml", ".md", ".mdx",
			// Ruby (Homebrew formulae)
			".rb",
		},
		IgnoreDirs: []string{
			"node_modules", ".git", "vendor", "tmp", "cache", "dist", "build", "Caskroom", "Cellar",
		},
		Prettier: PrettierOptions{
			PrintWidth:     100,
			TabWidth:       2,
			UseTabs:        false,
			Semi:           true,
			SingleQuote:    true,
			TrailingComma:  "es5",
			BracketSpacing: true,
			ArrowParens:    "avoid",
			EndOfLine:      "lf",
		},
		ESLint: LinterConfig{
			Enabled:    true,
			Extensions: []string{".js", ".jsx", ".ts", ".tsx", ".vue"},
		},
		Stylelint: LinterConfig{
			Enabled:    true,
			Extensions: []string{".css", ".scss", ".sass", ".less"},
		},
	}
}
