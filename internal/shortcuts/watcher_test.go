package shortcuts

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReportsNewShortcuts(t *testing.T) {
	root := t.TempDir()
	idx := NewIndex([]string{root}, IndexOptions{})

	added := make(chan []string, 4)
	w := NewWatcher(idx, WatcherOptions{
		Debounce: 50 * time.Millisecond,
		OnAdded:  func(paths []string) { added <- paths },
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the watcher a moment to establish watches before writing.
	time.Sleep(200 * time.Millisecond)

	path := filepath.Join(root, "fresh.lnk")
	if err := os.WriteFile(path, []byte("Target=/usr/bin/true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case paths := <-added:
		if len(paths) != 1 || paths[0] != path {
			t.Fatalf("OnAdded got %v, want [%s]", paths, path)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for shortcut notification")
	}

	if _, ok := idx.ShortcutFor("fresh"); !ok {
		t.Fatal("index was not updated")
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}

func TestWatcherNoRoots(t *testing.T) {
	idx := NewIndex([]string{filepath.Join(t.TempDir(), "absent")}, IndexOptions{})
	w := NewWatcher(idx, WatcherOptions{})

	if err := w.Run(context.Background()); err == nil {
		t.Fatal("expected error when no roots exist")
	}
}

func TestWatcherIgnoresUnrelatedFiles(t *testing.T) {
	root := t.TempDir()
	idx := NewIndex([]string{root}, IndexOptions{})

	added := make(chan []string, 4)
	w := NewWatcher(idx, WatcherOptions{
		Debounce: 50 * time.Millisecond,
		OnAdded:  func(paths []string) { added <- paths },
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()
	time.Sleep(200 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case paths := <-added:
		t.Fatalf("unexpected notification for %v", paths)
	case <-time.After(400 * time.Millisecond):
	}
}
