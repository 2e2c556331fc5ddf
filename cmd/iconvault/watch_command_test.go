package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"iconvault/internal/testsupport"
)

func TestCLIWatchExtractsNewShortcuts(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithShortcutRoot(), testsupport.WithDebounceMS(50))
	root := env.cfg.Shortcuts.Roots[0]

	target := filepath.Join(t.TempDir(), "editor.png")
	testsupport.WritePNG(t, target, 4)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cmd := newRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", env.configPath, "watch"})
	cmd.SetContext(ctx)

	done := make(chan error, 1)
	go func() {
		done <- cmd.Execute()
	}()

	// Give the watcher time to register the roots before the shortcut
	// lands, otherwise the create event is never seen.
	time.Sleep(150 * time.Millisecond)
	testsupport.WriteShortcut(t, filepath.Join(root, "Editor.lnk"), target)

	waitFor(t, 5*time.Second, func() bool {
		data, err := os.ReadFile(env.cfg.Store.PackPath)
		return err == nil && strings.Contains(string(data), "Editor.lnk")
	})

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("watch execute: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not exit after cancel")
	}
}

func TestCLIWatchRequiresShortcutRoots(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"watch"}, env.configPath)
	if err == nil {
		t.Fatal("expected watch without roots to fail")
	}
	requireContains(t, err.Error(), "no shortcut roots configured")
}
