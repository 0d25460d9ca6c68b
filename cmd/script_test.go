package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"brew-formatter": func() int {
			if err := Run(context.Background(), os.Args, os.Stdin, os.Stdout, os.Stderr); err != nil {
				return 1
			}
			return 0
		},
	}))
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/script",
		Setup: func(env *testscript.Env) error {
			env.Setenv("BREW_FORMATTER_HOME", filepath.Join(env.WorkDir, "home"))
			return nil
		},
	})
}
