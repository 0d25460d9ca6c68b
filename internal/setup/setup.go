// Package setup walks the user through editing the configuration.
package setup

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"brew-formatter/internal/config"
	"brew-formatter/internal/logger"
)

// Field is one prompt in the setup sequence.
type Field struct {
	Prompt  string
	Current func() string
	// Apply parses a non-empty answer and stores it. On error the field keeps
	// its current value.
	Apply func(answer string) error
}

// Fields returns the prompts for cfg, in the order they are asked.
func Fields(cfg *config.Config) []Field {
	return []Field{
		{
			Prompt:  "Extensions to format",
			Current: func() string { return strings.Join(cfg.Extensions, ", ") },
			Apply: func(s string) error {
				exts, err := parseExtensions(s)
				if err != nil {
					return err
				}
				cfg.Extensions = exts
				return nil
			},
		},
		{
			Prompt:  "Directories to ignore",
			Current: func() string { return strings.Join(cfg.IgnoreDirs, ", ") },
			Apply: func(s string) error {
				dirs := parseList(s)
				if len(dirs) == 0 {
					return fmt.Errorf("%q names no directories", s)
				}
				cfg.IgnoreDirs = dirs
				return nil
			},
		},
		intField("Print width (printWidth)", &cfg.Prettier.PrintWidth),
		intField("Tab width (tabWidth)", &cfg.Prettier.TabWidth),
		boolField("Use tabs (true/false)", &cfg.Prettier.UseTabs),
		boolField("Single quotes (true/false)", &cfg.Prettier.SingleQuote),
		boolField("Enable ESLint (true/false)", &cfg.ESLint.Enabled),
		boolField("Enable Stylelint (true/false)", &cfg.Stylelint.Enabled),
	}
}

func intField(prompt string, dst *int) Field {
	return Field{
		Prompt:  prompt,
		Current: func() string { return strconv.Itoa(*dst) },
		Apply: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil {
				return fmt.Errorf("%q is not a whole number", s)
			}
			if n < 1 {
				return fmt.Errorf("%d must be at least 1", n)
			}
			*dst = n
			return nil
		},
	}
}

// boolField accepts "true" in any case as true and anything else as false.
func boolField(prompt string, dst *bool) Field {
	return Field{
		Prompt:  prompt,
		Current: func() string { return strconv.FormatBool(*dst) },
		Apply: func(s string) error {
			*dst = strings.EqualFold(s, "true")
			return nil
		},
	}
}

// parseList splits comma-separated text, trimming blanks and dropping empty items.
func parseList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// parseExtensions is parseList with a leading dot added where it was left off.
// The whole answer is rejected if it names no extension or any item is not a
// single-segment extension.
func parseExtensions(s string) ([]string, error) {
	exts := parseList(s)
	if len(exts) == 0 {
		return nil, fmt.Errorf("%q names no extensions", s)
	}
	for i, e := range exts {
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if !config.ValidExtension(e) {
			return nil, fmt.Errorf("%q is not a file extension like .rb", exts[i])
		}
		exts[i] = e
	}
	return exts, nil
}

// Ask runs fields in order, reading one answer line per field from in.
// Empty answers keep the current value. End of input stops early and is not
// an error.
func Ask(in io.Reader, out io.Writer, fields []Field) error {
	r := bufio.NewReader(in)
	for _, f := range fields {
		fmt.Fprintf(out, "%s [%s]: ", f.Prompt, f.Current())

		line, err := r.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("reading answer: %w", err)
		}
		answer := strings.TrimSpace(line)
		if answer != "" {
			if aErr := f.Apply(answer); aErr != nil {
				logger.Warn("[WARN] %v, keeping %s\n", aErr, f.Current())
			}
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(out)
			return nil
		}
	}
	return nil
}

// Run asks every configuration question and saves the result to path.
func Run(in io.Reader, out io.Writer, cfg *config.Config, path string) error {
	fmt.Fprintln(out, "\n=== Homebrew Formatter configuration ===")
	if err := Ask(in, out, Fields(cfg)); err != nil {
		return err
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding configuration: %w", err)
	}
	if err := config.Validate(data); err != nil {
		return fmt.Errorf("configuration not saved: %w", err)
	}
	if !config.Save(path, cfg) {
		return fmt.Errorf("could not save configuration to %s", path)
	}
	logger.Success("[OK] Configuration saved to %s\n", path)
	return nil
}
