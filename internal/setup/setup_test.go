package setup

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brew-formatter/internal/config"
	"brew-formatter/internal/logger"
)

func TestMain(m *testing.M) {
	logger.SetOutput(io.Discard, io.Discard)
	os.Exit(m.Run())
}

func answers(lines ...string) io.Reader {
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}

func TestRun_AppliesAnswersAndSaves(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")
	cfg := config.Default()
	var out bytes.Buffer

	err := Run(answers(
		".js, .RB ,, .md", // extensions
		"",                // ignore dirs unchanged
		"80",              // printWidth
		"",                // tabWidth unchanged
		"TRUE",            // useTabs
		"no",              // singleQuote -> false
		"False",           // eslint
		"",                // stylelint unchanged
	), &out, cfg, path)
	require.NoError(t, err)

	assert.Equal(t, []string{".js", ".RB", ".md"}, cfg.Extensions)
	assert.Equal(t, config.Default().IgnoreDirs, cfg.IgnoreDirs)
	assert.Equal(t, 80, cfg.Prettier.PrintWidth)
	assert.Equal(t, 2, cfg.Prettier.TabWidth)
	assert.True(t, cfg.Prettier.UseTabs)
	assert.False(t, cfg.Prettier.SingleQuote)
	assert.False(t, cfg.ESLint.Enabled)
	assert.True(t, cfg.Stylelint.Enabled)

	saved, found := config.Load(path)
	require.True(t, found)
	assert.Equal(t, cfg, saved)
}

func TestAsk_ShowsCurrentValues(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	var out bytes.Buffer
	require.NoError(t, Ask(answers("", "", ""), &out, Fields(cfg)[:3]))

	prompts := out.String()
	assert.Contains(t, prompts, "Extensions to format [.js, .jsx, .ts")
	assert.Contains(t, prompts, "Directories to ignore [node_modules, .git,")
	assert.Contains(t, prompts, "Print width (printWidth) [100]: ")
}

func TestAsk_MalformedNumberKeepsCurrent(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	var out bytes.Buffer
	require.NoError(t, Ask(answers("", "", "wide", "4"), &out, Fields(cfg)))

	assert.Equal(t, 100, cfg.Prettier.PrintWidth)
	assert.Equal(t, 4, cfg.Prettier.TabWidth)
}

func TestAsk_NormalisesAndRangeChecks(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	require.NoError(t, Ask(answers("rb, .md,yml", "", "0", "-3"), io.Discard, Fields(cfg)))

	assert.Equal(t, []string{".rb", ".md", ".yml"}, cfg.Extensions)
	assert.Equal(t, 100, cfg.Prettier.PrintWidth)
	assert.Equal(t, 2, cfg.Prettier.TabWidth)
}

func TestAsk_RejectsUnusableLists(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		extensions string
		ignoreDirs string
	}{
		{"multi-dot extension", "tar.gz, .js", ""},
		{"bare dot", ".", ""},
		{"only separators", ",", " , "},
		{"path-like extension", ".js/x", ","},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := config.Default()
			require.NoError(t, Ask(answers(tt.extensions, tt.ignoreDirs), io.Discard, Fields(cfg)))
			assert.Equal(t, config.Default().Extensions, cfg.Extensions)
			assert.Equal(t, config.Default().IgnoreDirs, cfg.IgnoreDirs)
		})
	}
}

func TestRun_SavedFileReloadsWithAnswers(t *testing.T) {
	t.Parallel()

	for _, exts := range []string{"tar.gz, .js", ".", ","} {
		path := filepath.Join(t.TempDir(), "config.json")
		cfg := config.Default()
		require.NoError(t, Run(answers(exts, "", "77"), io.Discard, cfg, path))

		saved, found := config.Load(path)
		require.True(t, found, exts)
		assert.Equal(t, 77, saved.Prettier.PrintWidth, exts)
		assert.Equal(t, config.Default().Extensions, saved.Extensions, exts)
		assert.True(t, saved.HasExtension("a.js"), exts)
	}
}

func TestRun_RefusesToSaveInvalidConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")
	cfg := config.Default()
	cfg.Extensions = []string{"js"}

	err := Run(strings.NewReader(""), io.Discard, cfg, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration not saved")
	assert.NoFileExists(t, path)
}

func TestAsk_EOFStopsEarly(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	var out bytes.Buffer
	// Last answer has no trailing newline.
	require.NoError(t, Ask(strings.NewReader("\n\n120"), &out, Fields(cfg)))

	assert.Equal(t, 120, cfg.Prettier.PrintWidth)
	assert.True(t, cfg.ESLint.Enabled)
	assert.NotContains(t, out.String(), "Tab width")
}

func TestAsk_EmptyInput(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	require.NoError(t, Ask(strings.NewReader(""), io.Discard, Fields(cfg)))
	assert.Equal(t, config.Default(), cfg)
}

func TestRun_SaveFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	err := Run(strings.NewReader(""), io.Discard, config.Default(), filepath.Join(blocker, "config.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not save configuration")
}

func TestParseList(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"a", "b"}, parseList(" a ,b,, "))
	assert.Nil(t, parseList(" , "))
}
