// Package watcher re-formats files as they change on disk.
package watcher

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"

	"brew-formatter/internal/config"
	"brew-formatter/internal/formatter"
	"brew-formatter/internal/logger"
)

// DefaultDebounce is how long a path must stay quiet before it is dispatched.
// Editors often write a file several times in quick succession.
const DefaultDebounce = 200 * time.Millisecond

// Dispatcher formats one file. *formatter.Dispatcher satisfies it.
type Dispatcher interface {
	Format(ctx context.Context, path string) formatter.Outcome
}

// Watcher monitors a tree and dispatches eligible files after they change.
// Dispatch is sequential: one consumer drains the queue of settled paths.
type Watcher struct {
	Config     *config.Config
	Dispatcher Dispatcher
	Debounce   time.Duration

	// Ready is closed once the initial watches are in place.
	Ready chan struct{}

	newWatcher func() (*fsnotify.Watcher, error)
}

// New returns a Watcher with the default debounce.
func New(cfg *config.Config, d Dispatcher) *Watcher {
	return &Watcher{
		Config:     cfg,
		Dispatcher: d,
		Debounce:   DefaultDebounce,
		Ready:      make(chan struct{}),
		newWatcher: fsnotify.NewWatcher,
	}
}

// Run watches root until ctx is cancelled, calling onOutcome after each
// dispatched file. Cancellation is a normal stop and returns nil.
func (w *Watcher) Run(ctx context.Context, root string, onOutcome func(formatter.Outcome)) error {
	fw, err := w.newWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := w.addRecursive(fw, root); err != nil {
		return err
	}
	logger.Info("[INFO] Watching %s for changes (Ctrl+C to stop)\n", root)
	if w.Ready != nil {
		close(w.Ready)
	}

	queue := make(chan string)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(queue)
		return w.collect(gctx, fw, queue)
	})
	g.Go(func() error {
		for path := range queue {
			out := w.Dispatcher.Format(gctx, path)
			if onOutcome != nil {
				onOutcome(out)
			}
		}
		return nil
	})

	err = g.Wait()
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// collect turns raw fsnotify events into settled paths on queue.
func (w *Watcher) collect(ctx context.Context, fw *fsnotify.Watcher, queue chan<- string) error {
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	tick := time.NewTicker(debounce / 2)
	defer tick.Stop()

	pending := make(map[string]time.Time)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("[WARN] Watcher error: %v\n", err)

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if path := w.handleEvent(fw, event); path != "" {
				pending[path] = time.Now().Add(debounce)
			}

		case now := <-tick.C:
			for _, path := range due(pending, now) {
				delete(pending, path)
				select {
				case queue <- path:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}
	}
}

// handleEvent returns the path to dispatch for event, or "" when it is not
// relevant. New directories are added to the watch as they appear.
func (w *Watcher) handleEvent(fw *fsnotify.Watcher, event fsnotify.Event) string {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return ""
	}

	info, err := os.Stat(event.Name)
	if err != nil {
		return ""
	}
	if info.IsDir() {
		if event.Has(fsnotify.Create) && !w.Config.IsIgnoredDir(info.Name()) {
			if err := w.addRecursive(fw, event.Name); err != nil {
				logger.Warn("[WARN] Failed to watch new directory %s: %v\n", event.Name, err)
			}
		}
		return ""
	}
	if !info.Mode().IsRegular() || !w.Config.HasExtension(event.Name) {
		return ""
	}
	return event.Name
}

// addRecursive watches root and every non-ignored directory below it. A
// symlinked root is resolved first, since WalkDir would not descend into it.
func (w *Watcher) addRecursive(fw *fsnotify.Watcher, root string) error {
	root, err := filepath.EvalSymlinks(root)
	if err != nil {
		return err
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.Config.IsIgnoredDir(d.Name()) {
			return filepath.SkipDir
		}
		logger.Debug("[DEBUG] Watching %s\n", path)
		return fw.Add(path)
	})
}

// due returns the pending paths whose quiet period has elapsed, sorted.
func due(pending map[string]time.Time, now time.Time) []string {
	var ready []string
	for path, at := range pending {
		if !now.Before(at) {
			ready = append(ready, path)
		}
	}
	sort.Strings(ready)
	return ready
}
