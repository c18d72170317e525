package operation

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/swcfix/pkg/log"
)

func TestWatcher(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"existing.ts":               entitySource,
		"node_modules/lib/index.ts": plainSource,
	})

	w, err := NewWatcher(Options{Root: root})
	require.NoError(t, err)

	console := &bytes.Buffer{}
	ctx, cancel := context.WithCancel(log.NewContext(testContext(t), log.New(console, zerolog.Nop())))
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- w.Execute(ctx) }()

	select {
	case <-w.Ready():
	case err := <-done:
		t.Fatalf("watcher exited early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher never became ready")
	}

	assert.Equal(t, entityFixed, readFile(t, filepath.Join(root, "existing.ts")), "initial batch fixes existing files")

	fixed := func(path string) func() bool {
		return func() bool {
			data, err := os.ReadFile(path)
			return err == nil && string(data) == entityFixed
		}
	}

	t.Run("new_file", func(t *testing.T) {
		path := filepath.Join(root, "created.ts")
		require.NoError(t, os.WriteFile(path, []byte(entitySource), 0644))
		assert.Eventually(t, fixed(path), 5*time.Second, 20*time.Millisecond)
	})

	t.Run("rewritten_file", func(t *testing.T) {
		path := filepath.Join(root, "existing.ts")
		require.NoError(t, os.WriteFile(path, []byte(entitySource), 0644))
		assert.Eventually(t, fixed(path), 5*time.Second, 20*time.Millisecond)
	})

	t.Run("new_directory", func(t *testing.T) {
		dir := filepath.Join(root, "modules", "orders")
		require.NoError(t, os.MkdirAll(dir, 0755))
		path := filepath.Join(dir, "order.entity.ts")
		require.NoError(t, os.WriteFile(path, []byte(entitySource), 0644))
		assert.Eventually(t, fixed(path), 5*time.Second, 20*time.Millisecond)
	})

	t.Run("other_extension_untouched", func(t *testing.T) {
		path := filepath.Join(root, "notes.md")
		require.NoError(t, os.WriteFile(path, []byte(entitySource), 0644))
		time.Sleep(200 * time.Millisecond)
		assert.Equal(t, entitySource, readFile(t, path))
	})

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err, "cancellation is a clean shutdown")
		assert.Contains(t, console.String(), "watching "+root+" for changes")
		assert.Contains(t, console.String(), "stopped watching")
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
