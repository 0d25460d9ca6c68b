// Package scanner walks a directory tree and hands eligible files to the
// formatter dispatcher one at a time.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"

	"brew-formatter/internal/config"
	"brew-formatter/internal/formatter"
	"brew-formatter/internal/logger"
)

// RootNotFoundError is returned when the scan root does not exist.
type RootNotFoundError struct {
	Path string
}

func (e *RootNotFoundError) Error() string {
	return fmt.Sprintf("directory %s does not exist", e.Path)
}

// Dispatcher formats one file. *formatter.Dispatcher satisfies it.
type Dispatcher interface {
	Format(ctx context.Context, path string) formatter.Outcome
}

// Scanner walks a tree using Config's ignore-list and extension set.
type Scanner struct {
	Config     *config.Config
	Dispatcher Dispatcher

	// Progress, when non-nil, receives a progress bar sized by a counting
	// pass over the tree before formatting starts.
	Progress io.Writer
}

// New returns a Scanner without a progress bar.
func New(cfg *config.Config, d Dispatcher) *Scanner {
	return &Scanner{Config: cfg, Dispatcher: d}
}

// Walk visits every eligible file under root depth-first, in lexical order.
// Directories whose name is on the ignore-list are skipped with their whole
// subtree; the root itself is never skipped, and is followed when it is a
// symlink. fn receives paths under root as given. fn returning an error stops
// the walk with that error.
func (s *Scanner) Walk(root string, fn func(path string) error) error {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &RootNotFoundError{Path: root}
		}
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", root)
	}

	// WalkDir does not follow a symlinked root, so walk its target and hand
	// out paths under the name the caller used.
	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		return err
	}

	return filepath.WalkDir(resolved, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subdirectory: report it and keep going.
			if path != resolved {
				logger.Warn("[WARN] Cannot read %s: %v\n", path, err)
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			return err
		}
		if d.IsDir() {
			if path != resolved && s.Config.IsIgnoredDir(d.Name()) {
				logger.Debug("[DEBUG] Ignoring directory %s\n", path)
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || !s.Config.HasExtension(path) {
			return nil
		}
		rel, err := filepath.Rel(resolved, path)
		if err != nil {
			return err
		}
		return fn(filepath.Join(root, rel))
	})
}

// Count returns how many files Walk would visit.
func (s *Scanner) Count(root string) (int, error) {
	n := 0
	err := s.Walk(root, func(string) error {
		n++
		return nil
	})
	return n, err
}

// Scan formats every eligible file under root, sequentially: each file's
// check, write and lint steps finish before the next file is visited.
// A missing root returns *RootNotFoundError with zero stats. Cancelling ctx
// stops the scan between files and returns the counts so far.
func (s *Scanner) Scan(ctx context.Context, root string) (Stats, error) {
	var stats Stats

	var bar *progressbar.ProgressBar
	if s.Progress != nil {
		total, err := s.Count(root)
		if err != nil {
			return stats, err
		}
		bar = newBar(s.Progress, total)
	}

	err := s.Walk(root, func(path string) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		stats.Scanned++
		if bar != nil {
			// Clear the bar so per-file log lines print on a clean line.
			_ = bar.Clear()
		}
		stats.Record(s.Dispatcher.Format(ctx, path))
		if bar != nil {
			_ = bar.Add(1)
		}
		return nil
	})
	if bar != nil {
		_ = bar.Finish()
	}
	return stats, err
}

func newBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("Formatting"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionClearOnFinish(),
	)
}
