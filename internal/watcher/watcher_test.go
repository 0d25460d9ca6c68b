package watcher

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brew-formatter/internal/config"
	"brew-formatter/internal/formatter"
	"brew-formatter/internal/logger"
)

func TestMain(m *testing.M) {
	logger.SetOutput(io.Discard, io.Discard)
	os.Exit(m.Run())
}

type recorder struct {
	mu   sync.Mutex
	seen []string
}

func (r *recorder) Format(_ context.Context, path string) formatter.Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, path)
	return formatter.Outcome{Path: path, Status: formatter.Formatted}
}

func (r *recorder) paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.seen...)
}

// tempDir returns a fresh directory with symlinks resolved, matching the
// paths fsnotify reports once the root has been resolved.
func tempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir
}

func startWatcher(t *testing.T, root string, rec *recorder) (cancel func(), done <-chan error) {
	t.Helper()

	w := New(config.Default(), rec)
	w.Debounce = 20 * time.Millisecond

	ctx, cancelFn := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- w.Run(ctx, root, nil)
	}()

	select {
	case <-w.Ready:
	case err := <-errCh:
		cancelFn()
		t.Fatalf("watcher stopped before ready: %v", err)
	case <-time.After(5 * time.Second):
		cancelFn()
		t.Fatal("watcher never became ready")
	}
	return cancelFn, errCh
}

func TestWatcher_DispatchesChangedEligibleFiles(t *testing.T) {
	t.Parallel()

	root := tempDir(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "node_modules"), 0o755))

	rec := &recorder{}
	cancel, done := startWatcher(t, root, rec)

	target := filepath.Join(root, "a.js")
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "node_modules", "dep.js"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o600))
	// A burst of writes settles into a single dispatch.
	require.NoError(t, os.WriteFile(target, []byte("xy"), 0o600))

	require.Eventually(t, func() bool {
		return len(rec.paths()) >= 1
	}, 5*time.Second, 10*time.Millisecond)

	// Give stray events a chance to show up before asserting.
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, []string{target}, rec.paths())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}

func TestWatcher_FollowsNewDirectories(t *testing.T) {
	t.Parallel()

	root := tempDir(t)
	rec := &recorder{}
	cancel, done := startWatcher(t, root, rec)
	defer func() {
		cancel()
		<-done
	}()

	sub := filepath.Join(root, "Formula")
	require.NoError(t, os.Mkdir(sub, 0o755))
	// Let the create event be handled so the new directory is watched.
	time.Sleep(150 * time.Millisecond)

	target := filepath.Join(sub, "wget.rb")
	require.NoError(t, os.WriteFile(target, []byte("class Wget; end"), 0o600))

	require.Eventually(t, func() bool {
		for _, p := range rec.paths() {
			if p == target {
				return true
			}
		}
		return false
	}, 5*time.Second, 10*time.Millisecond)
}

func TestWatcher_FollowsSymlinkedRoot(t *testing.T) {
	t.Parallel()

	target := tempDir(t)
	link := filepath.Join(tempDir(t), "link")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	rec := &recorder{}
	cancel, done := startWatcher(t, link, rec)
	defer func() {
		cancel()
		<-done
	}()

	file := filepath.Join(target, "a.js")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	require.Eventually(t, func() bool {
		return len(rec.paths()) == 1 && rec.paths()[0] == file
	}, 5*time.Second, 10*time.Millisecond)
}

func TestWatcher_MissingRoot(t *testing.T) {
	t.Parallel()

	w := New(config.Default(), &recorder{})
	err := w.Run(context.Background(), filepath.Join(t.TempDir(), "missing"), nil)
	assert.Error(t, err)
}

func TestDue(t *testing.T) {
	t.Parallel()

	now := time.Now()
	pending := map[string]time.Time{
		"b.js": now.Add(-time.Millisecond),
		"a.js": now,
		"c.js": now.Add(time.Second),
	}
	assert.Equal(t, []string{"a.js", "b.js"}, due(pending, now))
}
