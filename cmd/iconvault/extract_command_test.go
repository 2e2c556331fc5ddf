package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"iconvault/internal/config"
	"iconvault/internal/testsupport"
)

func TestCLIExtractListRemoveClear(t *testing.T) {
	env := setupCLITestEnv(t)

	pngPath := filepath.Join(t.TempDir(), "chart.png")
	testsupport.WritePNG(t, pngPath, 8)

	out, _, err := runCLI(t, []string{"extract", pngPath}, env.configPath)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	requireContains(t, out, pngPath+" -> ")

	out, _, err = runCLI(t, []string{"list"}, env.configPath)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	requireContains(t, out, "png")
	requireContains(t, out, "static")

	out, _, err = runCLI(t, []string{"remove", "png"}, env.configPath)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	requireContains(t, out, `Removed "png"`)

	out, _, err = runCLI(t, []string{"list"}, env.configPath)
	if err != nil {
		t.Fatalf("list after remove: %v", err)
	}
	requireContains(t, out, "Icon cache is empty")

	out, _, err = runCLI(t, []string{"remove", "png"}, env.configPath)
	if err != nil {
		t.Fatalf("remove missing entry: %v", err)
	}
	requireContains(t, out, `No cache entry for "png"`)

	if _, _, err := runCLI(t, []string{"extract", pngPath}, env.configPath); err != nil {
		t.Fatalf("re-extract: %v", err)
	}

	out, _, err = runCLI(t, []string{"clear", "--purge"}, env.configPath)
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	requireContains(t, out, "Cleared 1 entries and purged vault assets")

	if assets := vaultAssets(t, env); len(assets) != 0 {
		t.Fatalf("expected purged vault, found %v", assets)
	}
}

func TestCLIExtractSecondRunHitsCache(t *testing.T) {
	env := setupCLITestEnv(t)

	pngPath := filepath.Join(t.TempDir(), "notes.png")
	testsupport.WritePNG(t, pngPath, 4)

	if _, _, err := runCLI(t, []string{"extract", pngPath}, env.configPath); err != nil {
		t.Fatalf("extract: %v", err)
	}
	if assets := vaultAssets(t, env); len(assets) != 1 {
		t.Fatalf("expected one vault asset, found %v", assets)
	}

	if _, _, err := runCLI(t, []string{"extract", pngPath}, env.configPath); err != nil {
		t.Fatalf("repeat extract: %v", err)
	}
	if assets := vaultAssets(t, env); len(assets) != 1 {
		t.Fatalf("expected cache hit to add no assets, found %v", assets)
	}

	if _, _, err := runCLI(t, []string{"extract", "--force", pngPath}, env.configPath); err != nil {
		t.Fatalf("forced extract: %v", err)
	}
	if assets := vaultAssets(t, env); len(assets) != 2 {
		t.Fatalf("expected forced extraction to write a fresh asset, found %v", assets)
	}
}

func TestCLIExtractPersistsToSQLiteBackend(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithBackend(config.BackendSQLite))

	pngPath := filepath.Join(t.TempDir(), "chart.png")
	testsupport.WritePNG(t, pngPath, 8)

	if _, _, err := runCLI(t, []string{"extract", pngPath}, env.configPath); err != nil {
		t.Fatalf("extract: %v", err)
	}

	store := testsupport.MustOpenStore(t, env.cfg)
	snap, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load pack database: %v", err)
	}
	desc, ok := snap.Files["png"]
	if !ok {
		t.Fatalf("png entry missing from pack database, files: %v", snap.Files)
	}
	if desc.File == "" {
		t.Fatal("persisted descriptor has no asset name")
	}
}

func TestCLIExtractDepthBoundStopsChains(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithMaxDepth(1))

	dir := t.TempDir()
	target := filepath.Join(dir, "icon.png")
	testsupport.WritePNG(t, target, 8)
	link := filepath.Join(dir, "icon.lnk")
	testsupport.WriteShortcut(t, link, target)

	out, _, err := runCLI(t, []string{"extract", link}, env.configPath)
	if err == nil {
		t.Fatal("expected extraction past the depth bound to fail")
	}
	requireContains(t, err.Error(), "1 of 1 paths failed")
	requireContains(t, out, "chain exceeds depth bound")
}

func TestCLIExtractSkipsExtensionlessPath(t *testing.T) {
	env := setupCLITestEnv(t)

	bare := filepath.Join(t.TempDir(), "README")
	if err := os.WriteFile(bare, []byte("plain text"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	out, _, err := runCLI(t, []string{"extract", bare}, env.configPath)
	if err != nil {
		t.Fatalf("extract extensionless: %v", err)
	}
	requireContains(t, out, "nothing to extract")
}

func TestCLIExtractReportsMissingFile(t *testing.T) {
	env := setupCLITestEnv(t)

	missing := filepath.Join(t.TempDir(), "ghost.png")
	out, _, err := runCLI(t, []string{"extract", missing}, env.configPath)
	if err == nil {
		t.Fatal("expected extract of a missing file to fail")
	}
	requireContains(t, err.Error(), "1 of 1 paths failed")
	requireContains(t, out, missing)
}

func TestCLIExtractSharesInternetShortcutPlaceholder(t *testing.T) {
	env := setupCLITestEnv(t)

	dir := t.TempDir()
	first := filepath.Join(dir, "news.url")
	second := filepath.Join(dir, "mail.url")
	body := []byte("[InternetShortcut]\nURL=https://example.com\n")
	for _, path := range []string{first, second} {
		if err := os.WriteFile(path, body, 0o644); err != nil {
			t.Fatalf("write internet shortcut: %v", err)
		}
	}

	out, _, err := runCLI(t, []string{"extract", first, second}, env.configPath)
	if err != nil {
		t.Fatalf("extract internet shortcuts: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected two output lines, got %q", out)
	}
	firstAsset := lines[0][strings.LastIndex(lines[0], " ")+1:]
	secondAsset := lines[1][strings.LastIndex(lines[1], " ")+1:]
	if firstAsset != secondAsset {
		t.Fatalf("expected both shortcuts to share one placeholder asset, got %q and %q", firstAsset, secondAsset)
	}

	if assets := vaultAssets(t, env); len(assets) != 1 {
		t.Fatalf("expected one shared placeholder asset, found %v", assets)
	}

	out, _, err = runCLI(t, []string{"list"}, env.configPath)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	requireContains(t, out, "url")
}
